package roster

// Syllabus is the payload returned by the roster syllabus endpoint.
type Syllabus struct {
	Course *Course `json:"course"`
}

// Course is the root of the component tree.
type Course struct {
	SourcedID   string      `json:"sourcedId"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Grades      []string    `json:"grades,omitempty"`
	Subjects    []string    `json:"subjects,omitempty"`
	Components  []Component `json:"components"`
}

// Component is a unit or sub-unit of a course. Components nest arbitrarily.
type Component struct {
	SourcedID          string              `json:"sourcedId"`
	Title              string              `json:"title"`
	Description        string              `json:"description,omitempty"`
	SortOrder          int                 `json:"sortOrder,omitempty"`
	Prerequisites      []string            `json:"prerequisites,omitempty"`
	LearningObjectives []string            `json:"learningObjectives,omitempty"`
	SubComponents      []Component         `json:"subComponents,omitempty"`
	Resources          []ComponentResource `json:"componentResources,omitempty"`
}

// ComponentResource attaches a resource to a component at a position.
type ComponentResource struct {
	SourcedID string    `json:"sourcedId"`
	Title     string    `json:"title,omitempty"`
	SortOrder int       `json:"sortOrder,omitempty"`
	Resource  *Resource `json:"resource"`
}

// Resource is a piece of deliverable content.
type Resource struct {
	SourcedID string    `json:"sourcedId"`
	Title     string    `json:"title"`
	Metadata  *Metadata `json:"metadata"`
}

// Metadata tags a resource with its type and payload details.
type Metadata struct {
	Type        string   `json:"type"`
	SubType     string   `json:"subType,omitempty"`
	URL         string   `json:"url,omitempty"`
	Text        string   `json:"text,omitempty"`
	Duration    float64  `json:"duration,omitempty"` // seconds
	Hints       []string `json:"hints,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
	Question    *Item    `json:"question,omitempty"`
}

// Item is an inline QTI assessment item, already reduced to its answer key.
type Item struct {
	Identifier    string    `json:"identifier,omitempty"`
	Prompt        string    `json:"prompt"`
	Choices       []string  `json:"choices,omitempty"`
	CorrectChoice *int      `json:"correctChoice,omitempty"`
	CorrectNumber *float64  `json:"correctNumber,omitempty"`
	CorrectText   []string  `json:"correctText,omitempty"`
	Tolerance     *float64  `json:"tolerance,omitempty"`
	CaseSensitive bool      `json:"caseSensitive,omitempty"`
	Points        *int      `json:"points,omitempty"`
	Feedback      *Feedback `json:"feedback,omitempty"`
}

// Feedback is the optional per-item feedback text.
type Feedback struct {
	Correct     string `json:"correct,omitempty"`
	Incorrect   string `json:"incorrect,omitempty"`
	Hint        string `json:"hint,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}
