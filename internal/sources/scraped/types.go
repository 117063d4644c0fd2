package scraped

// Bundle is one scraped subject: its units, lessons and exercises.
type Bundle struct {
	ID          string   `json:"id"`
	Subject     string   `json:"subject"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Grades      []string `json:"grades,omitempty"`
	Units       []Unit   `json:"units"`
	ScrapedAt   string   `json:"scrapedAt,omitempty"`
}

// Unit groups lesson entries and exercises. Each unit becomes one lesson.
type Unit struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	Prerequisites []string      `json:"prerequisites,omitempty"`
	Lessons       []LessonEntry `json:"lessons"`
	Exercises     []Exercise    `json:"exercises"`
}

// LessonEntry is a video, article or quiz inside a unit.
type LessonEntry struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	ContentKind    string   `json:"contentKind"`
	VideoURL       string   `json:"videoUrl,omitempty"`
	ArticleContent string   `json:"articleContent,omitempty"`
	Difficulty     string   `json:"difficulty,omitempty"`
	Prerequisites  []string `json:"prerequisites,omitempty"`
	Duration       float64  `json:"duration,omitempty"` // seconds

	// PerseusContent carries the question payload of a Quiz entry.
	PerseusContent string `json:"perseusContent,omitempty"`
}

// Exercise is a scraped practice item with a Perseus question payload.
type Exercise struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	PerseusContent string   `json:"perseusContent"`
	QuestionTypes  []string `json:"questionTypes,omitempty"`
	Difficulty     string   `json:"difficulty,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Hints          []string `json:"hints,omitempty"`
	Solutions      []string `json:"solutions,omitempty"`
}
