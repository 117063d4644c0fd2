package progress

import (
	"time"

	"github.com/google/uuid"
)

// DefaultUsername names a profile created without one.
const DefaultUsername = "Learner"

// UserProfile is the learner aggregate. It changes only through
// Engine.CompleteLesson and Engine.Reset.
type UserProfile struct {
	ID               string         `json:"id"`
	Username         string         `json:"username"`
	TotalXP          int            `json:"total_xp"`
	CurrentLevel     int            `json:"current_level"`
	CurrentStreak    int            `json:"current_streak"`
	LongestStreak    int            `json:"longest_streak"`
	LessonsCompleted int            `json:"lessons_completed"`
	TotalStudyTime   time.Duration  `json:"total_study_time"`
	Achievements     []Achievement  `json:"achievements"`
	LastStudyDate    *time.Time     `json:"last_study_date,omitempty"`
	Records          []LessonRecord `json:"records"`
	CreatedAt        time.Time      `json:"created_at"`
}

// LessonRecord is one completed lesson. Records are append-only.
type LessonRecord struct {
	ID            string        `json:"id"`
	LessonID      string        `json:"lesson_id"`
	LessonTitle   string        `json:"lesson_title"`
	Subject       string        `json:"subject"`
	CompletedAt   time.Time     `json:"completed_at"`
	TimeSpent     time.Duration `json:"time_spent"`
	Score         int           `json:"score"`
	TotalPossible int           `json:"total_possible"`
	XPEarned      int           `json:"xp_earned"`
}

// Percentage is the record's score as a fraction of the total.
func (r LessonRecord) Percentage() float64 {
	return ScorePercentage(r.Score, r.TotalPossible)
}

// NewProfile returns a freshly initialized profile.
func NewProfile(username string, now time.Time) UserProfile {
	if username == "" {
		username = DefaultUsername
	}
	return UserProfile{
		ID:           uuid.NewString(),
		Username:     username,
		CurrentLevel: 1,
		Achievements: []Achievement{},
		Records:      []LessonRecord{},
		CreatedAt:    now,
	}
}

// HasAchievement reports whether kind with param is already unlocked.
func (p *UserProfile) HasAchievement(kind AchievementKind, param int) bool {
	for _, a := range p.Achievements {
		if a.Kind == kind && a.Param == param {
			return true
		}
	}
	return false
}

// AverageScore is the mean score percentage over all records.
func (p *UserProfile) AverageScore() float64 {
	if len(p.Records) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range p.Records {
		sum += r.Percentage()
	}
	return sum / float64(len(p.Records))
}

// Clone returns a deep copy.
func (p UserProfile) Clone() UserProfile {
	c := p
	c.Achievements = append([]Achievement{}, p.Achievements...)
	c.Records = append([]LessonRecord{}, p.Records...)
	if p.LastStudyDate != nil {
		t := *p.LastStudyDate
		c.LastStudyDate = &t
	}
	return c
}
