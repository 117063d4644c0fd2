package progress

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/session"
	"github.com/abhisek/learnpath/internal/store"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

var lesson = content.Lesson{ID: "l1", Title: "Fractions", Subject: "math"}

func day(d, hour int) time.Time {
	return time.Date(2024, 3, d, hour, 0, 0, 0, time.UTC)
}

func newEngine(t *testing.T, repo store.ProfileRepo, opts ...Option) (*Engine, *clock) {
	t.Helper()
	c := &clock{now: day(10, 9)}
	opts = append([]Option{WithClock(c.Now), WithLocation(time.UTC)}, opts...)
	return NewEngine(repo, opts...), c
}

func TestLevelCurve(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{175, 2},
		{224, 2},
		{225, 3},
		{375, 4},
	}
	for _, tt := range tests {
		if got := LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}

	assert.Equal(t, 100, XPForLevel(2))
	assert.Equal(t, 0, CumulativeXP(1))
	assert.Equal(t, 225, CumulativeXP(3))

	into, span := LevelProgress(175)
	assert.Equal(t, 75, into)
	assert.Equal(t, 125, span)

	for xp := 0; xp < 5000; xp += 37 {
		l := LevelForXP(xp)
		assert.LessOrEqual(t, CumulativeXP(l), xp)
		assert.Greater(t, CumulativeXP(l+1), xp)
	}
}

func TestLevelForXP_Extremes(t *testing.T) {
	done := make(chan int, 1)
	go func() { done <- LevelForXP(math.MaxInt) }()

	select {
	case got := <-done:
		assert.Equal(t, LevelForXP(MaxTotalXP), got)
		assert.LessOrEqual(t, CumulativeXP(got), MaxTotalXP)
		assert.Greater(t, CumulativeXP(got+1), MaxTotalXP)
	case <-time.After(2 * time.Second):
		t.Fatal("LevelForXP(math.MaxInt) did not return")
	}

	assert.Equal(t, 1, LevelForXP(-5))
	for _, l := range []int{2, 10, 1000, 123456} {
		xp := CumulativeXP(l)
		assert.Equal(t, l, LevelForXP(xp), "at %d", xp)
		assert.Equal(t, l-1, LevelForXP(xp-1), "below %d", xp)
	}
}

func TestXPEarned(t *testing.T) {
	tests := []struct {
		name         string
		score, total int
		spent        time.Duration
		want         int
	}{
		{"perfect and fast", 100, 100, 45 * time.Second, 175},
		{"half under two minutes", 5, 10, 90 * time.Second, 115},
		{"zero total", 0, 0, 4 * time.Minute, 60},
		{"slow", 1, 3, 10 * time.Minute, 50 + 33 + 5},
		{"score above total clamps", 30, 20, time.Hour, 155},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, XPEarned(ScorePercentage(tt.score, tt.total), tt.spent))
		})
	}

	assert.Equal(t, 0, PerformanceBonus(math.NaN()))
	assert.Equal(t, 0, PerformanceBonus(math.Inf(-1)))
}

func TestScenarioA_FirstPerfectLesson(t *testing.T) {
	e, _ := newEngine(t, store.NewMemoryRepo())

	p, c := e.CompleteLesson(context.Background(), lesson, 100, 100, 45*time.Second)
	assert.Equal(t, 175, c.XPEarned)
	assert.Equal(t, 175, p.TotalXP)
	assert.Equal(t, 2, p.CurrentLevel)
	assert.True(t, c.LeveledUp)
	assert.Equal(t, 1, p.LessonsCompleted)
	assert.Equal(t, 45*time.Second, p.TotalStudyTime)
	assert.Equal(t, 1, p.CurrentStreak)
	require.Len(t, p.Records, 1)
	assert.Equal(t, "l1", p.Records[0].LessonID)
	assert.NotEmpty(t, p.Records[0].ID)

	assert.True(t, p.HasAchievement(AchievementFirstLesson, 0))
	assert.True(t, p.HasAchievement(AchievementLevelReached, 2))
	assert.Len(t, c.NewAchievements, 2)
}

func TestScenarioB_StreakResetsAfterGap(t *testing.T) {
	repo := store.NewMemoryRepo()
	last := day(8, 20)
	seed := NewProfile("sam", day(1, 0))
	seed.CurrentStreak = 5
	seed.LongestStreak = 5
	seed.LastStudyDate = &last
	data, err := Encode(seed)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), DefaultProfileKey, data))

	e, _ := newEngine(t, repo)
	p, _ := e.CompleteLesson(context.Background(), lesson, 1, 1, time.Minute)
	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 5, p.LongestStreak)
	assert.Equal(t, "sam", p.Username)
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name        string
		last        *time.Time
		now         time.Time
		streak      int
		wantStreak  int
		wantLongest int
	}{
		{"first study", nil, day(10, 9), 0, 1, 1},
		{"same day", ptr(day(10, 1)), day(10, 23), 2, 2, 2},
		{"next day", ptr(day(9, 23)), day(10, 0), 2, 3, 3},
		{"gap", ptr(day(7, 12)), day(10, 12), 4, 1, 4},
		{"clock went back", ptr(day(12, 12)), day(10, 12), 3, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := UserProfile{CurrentStreak: tt.streak, LongestStreak: tt.streak, LastStudyDate: tt.last}
			UpdateStreak(&p, tt.now, time.UTC)
			assert.Equal(t, tt.wantStreak, p.CurrentStreak)
			assert.Equal(t, tt.wantLongest, p.LongestStreak)
		})
	}
}

func TestDaysBetween_Location(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// 23:00 and 01:00 UTC are the same New York evening.
	a := time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(a, b, time.UTC))
	assert.Equal(t, 0, DaysBetween(a, b, ny))
}

func TestScenarioC_TenLessonsOnce(t *testing.T) {
	e, _ := newEngine(t, store.NewMemoryRepo())
	ctx := context.Background()

	for i := 0; i < 9; i++ {
		e.CompleteLesson(ctx, lesson, 0, 10, 10*time.Minute)
	}
	p := e.Profile(ctx)
	assert.Equal(t, 9, p.LessonsCompleted)
	assert.False(t, p.HasAchievement(AchievementTenLessons, 0))

	p, c := e.CompleteLesson(ctx, lesson, 0, 10, 10*time.Minute)
	assert.Equal(t, 10, p.LessonsCompleted)
	assert.Contains(t, kinds(c.NewAchievements), AchievementTenLessons)

	p, c = e.CompleteLesson(ctx, lesson, 0, 10, 10*time.Minute)
	assert.NotContains(t, kinds(c.NewAchievements), AchievementTenLessons)
	assertNoDuplicateAchievements(t, p)
}

func TestPerfectionistAndMilestones(t *testing.T) {
	e, c := newEngine(t, store.NewMemoryRepo())
	ctx := context.Background()

	var p UserProfile
	for i := 0; i < 7; i++ {
		c.Set(day(1+i, 12))
		p, _ = e.CompleteLesson(ctx, lesson, 19, 20, 30*time.Second)
	}
	assert.True(t, p.HasAchievement(AchievementPerfectionist, 0))
	assert.True(t, p.HasAchievement(AchievementThreeDayStreak, 0))
	assert.True(t, p.HasAchievement(AchievementWeekStreak, 0))
	assert.True(t, p.HasAchievement(AchievementXPMilestone, 1000))
	assert.Equal(t, 7, p.CurrentStreak)
	assert.InDelta(t, 0.95, p.AverageScore(), 1e-9)
	assertNoDuplicateAchievements(t, p)
}

func TestLevelReached_EveryLevelCrossed(t *testing.T) {
	p := NewProfile("kid", day(10, 9))
	p.TotalXP = CumulativeXP(4)
	p.CurrentLevel = LevelForXP(p.TotalXP)

	got := unlockAchievements(&p, 1, day(10, 9))
	var levels []int
	for _, a := range got {
		if a.Kind == AchievementLevelReached {
			levels = append(levels, a.Param)
		}
	}
	assert.Equal(t, []int{2, 3, 4}, levels)

	again := unlockAchievements(&p, 1, day(10, 10))
	assert.Empty(t, again)
}

func TestMonotonicity(t *testing.T) {
	e, c := newEngine(t, store.NewMemoryRepo())
	ctx := context.Background()

	prev := e.Profile(ctx)
	days := []int{1, 1, 2, 5, 4, 6, 6, 7}
	for i, d := range days {
		c.Set(day(d, 8))
		p, _ := e.CompleteLesson(ctx, lesson, i, 7, time.Duration(i*40)*time.Second)

		assert.GreaterOrEqual(t, p.TotalXP, prev.TotalXP)
		assert.Equal(t, prev.LessonsCompleted+1, p.LessonsCompleted)
		assert.GreaterOrEqual(t, p.TotalStudyTime, prev.TotalStudyTime)
		assert.GreaterOrEqual(t, p.LongestStreak, prev.LongestStreak)
		assert.Equal(t, LevelForXP(p.TotalXP), p.CurrentLevel)
		assertNoDuplicateAchievements(t, p)
		prev = p
	}
}

func TestConcurrentCompletions(t *testing.T) {
	e, _ := newEngine(t, store.NewMemoryRepo())
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.CompleteLesson(ctx, lesson, 10, 10, 30*time.Second)
		}()
	}
	wg.Wait()

	p := e.Profile(ctx)
	assert.Equal(t, n, p.LessonsCompleted)
	assert.Equal(t, n*175, p.TotalXP)
	assert.Len(t, p.Records, n)
	assertNoDuplicateAchievements(t, p)
}

func TestPersistenceRoundTrip(t *testing.T) {
	repo := store.NewMemoryRepo()
	ctx := context.Background()
	e, _ := newEngine(t, repo, WithUsername("ada"))
	want, _ := e.CompleteLesson(ctx, lesson, 8, 10, 2*time.Minute)

	e2, _ := newEngine(t, repo)
	got := e2.Load(ctx)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, "ada", got.Username)
	assert.Equal(t, want.TotalXP, got.TotalXP)
	assert.Equal(t, want.CurrentLevel, got.CurrentLevel)
	assert.Len(t, got.Records, 1)
}

func TestLoadFallback(t *testing.T) {
	tests := []struct {
		name    string
		blob    string
		wantLog bool
	}{
		{"missing", "", false},
		{"garbage", "{{{", true},
		{"future major", `{"format_version":"v2.0.0","profile":{"username":"x","total_xp":900}}`, true},
		{"no version", `{"profile":{"username":"x"}}`, true},
		{"xp out of range", `{"format_version":"v1.0.0","profile":{"username":"x","total_xp":9223372036854775807}}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := store.NewMemoryRepo()
			if tt.blob != "" {
				require.NoError(t, repo.Save(context.Background(), DefaultProfileKey, []byte(tt.blob)))
			}
			core, logs := observer.New(zapcore.WarnLevel)
			log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

			e, _ := newEngine(t, repo, WithLogger(log), WithUsername("kid"))
			p := e.Load(context.Background())
			assert.Equal(t, "kid", p.Username)
			assert.Equal(t, 0, p.TotalXP)
			assert.Equal(t, 1, p.CurrentLevel)
			assert.Equal(t, tt.wantLog, logs.Len() > 0)
		})
	}
}

type failingRepo struct{ store.ProfileRepo }

func (failingRepo) Save(context.Context, string, []byte) error { return errors.New("disk full") }

func TestSaveFailureIsSwallowed(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}
	e, _ := newEngine(t, failingRepo{store.NewMemoryRepo()}, WithLogger(log))

	p, c := e.CompleteLesson(context.Background(), lesson, 1, 1, time.Second)
	assert.Equal(t, 175, c.XPEarned)
	assert.Equal(t, 175, p.TotalXP)
	assert.Equal(t, 1, logs.FilterMessage("profile save failed").Len())
}

func TestReset_KeepsUsername(t *testing.T) {
	repo := store.NewMemoryRepo()
	ctx := context.Background()
	e, _ := newEngine(t, repo, WithUsername("max"))
	before, _ := e.CompleteLesson(ctx, lesson, 1, 1, time.Second)

	p := e.Reset(ctx)
	assert.Equal(t, "max", p.Username)
	assert.NotEqual(t, before.ID, p.ID)
	assert.Zero(t, p.TotalXP)
	assert.Empty(t, p.Records)
	assert.Empty(t, p.Achievements)
	assert.Nil(t, p.LastStudyDate)

	stored, err := repo.Load(ctx, DefaultProfileKey)
	require.NoError(t, err)
	decoded, err := Decode(stored)
	require.NoError(t, err)
	assert.Equal(t, p.ID, decoded.ID)
}

func TestDecode_RecomputesLevel(t *testing.T) {
	blob := `{"format_version":"v1.3.0","profile":{"username":"x","total_xp":230,"current_level":9}}`
	p, err := Decode([]byte(blob))
	require.NoError(t, err)
	assert.Equal(t, 3, p.CurrentLevel)

	_, err = Decode([]byte(`{"format_version":"v2.0.0","profile":{}}`))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = Decode([]byte(`{"format_version":"v1.0.0","profile":{"total_xp":9223372036854775807}}`))
	assert.ErrorIs(t, err, ErrCorruptProfile)
}

func TestObserve_SessionHook(t *testing.T) {
	e, _ := newEngine(t, store.NewMemoryRepo())
	var got Completion
	hook := e.Observe(context.Background(), func(_ UserProfile, c Completion) { got = c })

	hook(lesson, session.Result{LessonID: "l1", Score: 10, TotalPossible: 20, TimeSpent: 3 * time.Minute})
	assert.Equal(t, 50+50+10, got.XPEarned)
	assert.Equal(t, 1, e.Profile(context.Background()).LessonsCompleted)
}

func kinds(as []Achievement) []AchievementKind {
	var out []AchievementKind
	for _, a := range as {
		out = append(out, a.Kind)
	}
	return out
}

func assertNoDuplicateAchievements(t *testing.T, p UserProfile) {
	t.Helper()
	seen := map[Achievement]bool{}
	for _, a := range p.Achievements {
		key := Achievement{Kind: a.Kind, Param: a.Param}
		assert.False(t, seen[key], "duplicate achievement %s/%d", a.Kind, a.Param)
		seen[key] = true
	}
}

func ptr(t time.Time) *time.Time { return &t }
