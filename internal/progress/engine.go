package progress

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/session"
	"github.com/abhisek/learnpath/internal/store"
)

// DefaultProfileKey is the store key of the single local profile.
const DefaultProfileKey = "default"

// Completion summarizes what one CompleteLesson call changed.
type Completion struct {
	Record          LessonRecord
	XPEarned        int
	PreviousLevel   int
	LeveledUp       bool
	NewAchievements []Achievement
}

// Engine serializes every profile mutation and persists the profile after
// each one. Use NewEngine.
type Engine struct {
	mu       sync.Mutex
	repo     store.ProfileRepo
	key      string
	username string
	log      *logger.Logger
	now      func() time.Time
	loc      *time.Location
	profile  UserProfile
	loaded   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithKey sets the store key of the profile.
func WithKey(key string) Option {
	return func(e *Engine) { e.key = key }
}

// WithUsername names the profile created when none is stored.
func WithUsername(name string) Option {
	return func(e *Engine) { e.username = name }
}

// WithLogger sets the logger for load fallbacks and save failures.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation sets the time zone that defines a calendar day for streaks.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.loc = loc }
}

// NewEngine creates an engine over repo. The profile is loaded lazily.
func NewEngine(repo store.ProfileRepo, opts ...Option) *Engine {
	e := &Engine{
		repo: repo,
		key:  DefaultProfileKey,
		now:  time.Now,
		loc:  time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = logger.OrNop(e.log)
	if e.loc == nil {
		e.loc = time.UTC
	}
	return e
}

// Load reads the stored profile. Any failure falls back to a fresh profile;
// Load never returns an error.
func (e *Engine) Load(ctx context.Context) UserProfile {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.load(ctx)
	return e.profile.Clone()
}

// Profile returns a snapshot of the current profile, loading it on first use.
func (e *Engine) Profile(ctx context.Context) UserProfile {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		e.load(ctx)
	}
	return e.profile.Clone()
}

func (e *Engine) load(ctx context.Context) {
	e.loaded = true
	data, err := e.repo.Load(ctx, e.key)
	if err == nil {
		p, derr := Decode(data)
		if derr == nil {
			e.profile = p
			return
		}
		err = derr
	}
	if !errors.Is(err, store.ErrNotFound) {
		e.log.Warn("profile load failed, starting fresh", "key", e.key, "error", err)
	}
	e.profile = NewProfile(e.username, e.now())
}

// CompleteLesson records a finished lesson: XP, level, streak, history and
// achievements. The updated profile is saved before returning; a failed save
// is logged and otherwise ignored.
func (e *Engine) CompleteLesson(ctx context.Context, lesson content.Lesson, score, totalPossible int, timeSpent time.Duration) (UserProfile, Completion) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		e.load(ctx)
	}

	now := e.now()
	if timeSpent < 0 {
		timeSpent = 0
	}
	if score < 0 {
		score = 0
	}
	p := &e.profile
	prevLevel := LevelForXP(p.TotalXP)

	pct := ScorePercentage(score, totalPossible)
	xp := XPEarned(pct, timeSpent)

	record := LessonRecord{
		ID:            uuid.NewString(),
		LessonID:      lesson.ID,
		LessonTitle:   lesson.Title,
		Subject:       lesson.Subject,
		CompletedAt:   now,
		TimeSpent:     timeSpent,
		Score:         score,
		TotalPossible: totalPossible,
		XPEarned:      xp,
	}
	p.Records = append(p.Records, record)
	p.LessonsCompleted++
	p.TotalStudyTime += timeSpent

	UpdateStreak(p, now, e.loc)
	p.TotalXP += xp
	p.CurrentLevel = LevelForXP(p.TotalXP)

	unlocked := unlockAchievements(p, prevLevel, now)

	e.save(ctx)

	return p.Clone(), Completion{
		Record:          record,
		XPEarned:        xp,
		PreviousLevel:   prevLevel,
		LeveledUp:       p.CurrentLevel > prevLevel,
		NewAchievements: unlocked,
	}
}

// Observe returns a session completion hook that forwards results here.
func (e *Engine) Observe(ctx context.Context, done func(UserProfile, Completion)) session.CompleteFunc {
	return func(lesson content.Lesson, r session.Result) {
		p, c := e.CompleteLesson(ctx, lesson, r.Score, r.TotalPossible, r.TimeSpent)
		if done != nil {
			done(p, c)
		}
	}
}

// Reset reinitializes the profile, keeping only the username.
func (e *Engine) Reset(ctx context.Context) UserProfile {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		e.load(ctx)
	}
	e.profile = NewProfile(e.profile.Username, e.now())
	e.save(ctx)
	return e.profile.Clone()
}

func (e *Engine) save(ctx context.Context) {
	data, err := Encode(e.profile)
	if err == nil {
		err = e.repo.Save(ctx, e.key, data)
	}
	if err != nil {
		e.log.Error("profile save failed", "key", e.key, "error", err)
	}
}
