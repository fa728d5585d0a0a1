package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Yashgithub77/lifeeloopp/models"
	"github.com/Yashgithub77/lifeeloopp/store"
)

func task(start, status string, opts ...func(*models.Task)) models.Task {
	t := models.Task{
		ID:               "task-" + start + "-" + status,
		Title:            "task",
		DayIndex:         0,
		StartTime:        start,
		EstimatedMinutes: 30,
		Status:           status,
		Difficulty:       models.DifficultyMedium,
	}
	for _, o := range opts {
		o(&t)
	}
	return t
}

func withActual(mins int) func(*models.Task) {
	return func(t *models.Task) { t.ActualMinutes = mins }
}

func withDifficulty(d string) func(*models.Task) {
	return func(t *models.Task) { t.Difficulty = d }
}

func withDayIndex(i int) func(*models.Task) {
	return func(t *models.Task) { t.DayIndex = i }
}

func patternOf(t *testing.T, patterns []models.BehaviorPattern, patternType string) *models.BehaviorPattern {
	t.Helper()
	for i := range patterns {
		if patterns[i].Type == patternType {
			return &patterns[i]
		}
	}
	return nil
}

func TestProductivityPeakMorning(t *testing.T) {
	now := time.Now()
	tasks := []models.Task{
		task("09:00", models.TaskStatusDone),
		task("09:30", models.TaskStatusDone),
		task("19:00", models.TaskStatusPending),
	}

	patterns := AnalyzeProductivityPatterns(tasks, now)
	peak := patternOf(t, patterns, models.PatternProductivityPeak)
	require.NotNil(t, peak)
	assert.Equal(t, "morning", peak.Period)
	assert.Contains(t, peak.Insight, "morning")
	assert.InDelta(t, 0.9, peak.Confidence, 1e-9) // min(0.9, 110/100)
	assert.Equal(t, 3, peak.DataPoints)
}

func TestProductivityPeakOmittedWithoutCompletions(t *testing.T) {
	tasks := []models.Task{
		task("09:00", models.TaskStatusPending),
		task("14:00", models.TaskStatusPending),
	}
	patterns := AnalyzeProductivityPatterns(tasks, time.Now())
	assert.Nil(t, patternOf(t, patterns, models.PatternProductivityPeak))
}

func TestProductivityPeakTieBreak(t *testing.T) {
	// Evening and morning are both at 100%; the fixed priority order
	// makes morning win.
	tasks := []models.Task{
		task("21:00", models.TaskStatusDone),
		task("08:00", models.TaskStatusDone),
	}
	patterns := AnalyzeProductivityPatterns(tasks, time.Now())
	peak := patternOf(t, patterns, models.PatternProductivityPeak)
	require.NotNil(t, peak)
	assert.Equal(t, "morning", peak.Period)
}

func TestCompletionRateAlwaysEmitted(t *testing.T) {
	patterns := AnalyzeProductivityPatterns(nil, time.Now())
	require.Len(t, patterns, 1)
	rate := patterns[0]
	assert.Equal(t, models.PatternCompletionRate, rate.Type)
	assert.Equal(t, 0, rate.DataPoints)
	assert.InDelta(t, 0.5, rate.Confidence, 1e-9) // (50+0)/100
	assert.Contains(t, rate.Insight, "0%")
}

func TestCompletionRateConfidenceCapped(t *testing.T) {
	var tasks []models.Task
	for i := 0; i < 10; i++ {
		tasks = append(tasks, task("10:00", models.TaskStatusDone))
	}
	patterns := AnalyzeProductivityPatterns(tasks, time.Now())
	rate := patternOf(t, patterns, models.PatternCompletionRate)
	require.NotNil(t, rate)
	assert.InDelta(t, 0.95, rate.Confidence, 1e-9) // capped below (50+50)/100
	assert.Contains(t, rate.Insight, "Great consistency!")
}

func TestConfidenceAlwaysInRange(t *testing.T) {
	cases := [][]models.Task{
		nil,
		{task("09:00", models.TaskStatusDone)},
		{task("09:00", models.TaskStatusPending), task("23:00", models.TaskStatusDone)},
		{task("13:00", models.TaskStatusSkipped, withDifficulty(models.DifficultyHard))},
		{task("18:00", models.TaskStatusDone, withActual(50))},
	}
	for _, tasks := range cases {
		for _, p := range AnalyzeProductivityPatterns(tasks, time.Now()) {
			assert.GreaterOrEqual(t, p.Confidence, 0.0)
			assert.LessOrEqual(t, p.Confidence, 1.0)
		}
	}
}

func TestSkipPatternHardMajority(t *testing.T) {
	tasks := []models.Task{
		task("09:00", models.TaskStatusSkipped, withDifficulty(models.DifficultyHard)),
		task("10:00", models.TaskStatusRescheduled, withDifficulty(models.DifficultyHard)),
		task("11:00", models.TaskStatusSkipped, withDifficulty(models.DifficultyEasy)),
		task("12:00", models.TaskStatusDone),
	}
	patterns := AnalyzeProductivityPatterns(tasks, time.Now())
	skip := patternOf(t, patterns, models.PatternSkip)
	require.NotNil(t, skip)
	assert.Contains(t, skip.Insight, "smaller chunks")
	assert.InDelta(t, 0.75, skip.Confidence, 1e-9)
	assert.Equal(t, 3, skip.DataPoints)
}

func TestSkipPatternRescheduleMessage(t *testing.T) {
	tasks := []models.Task{
		task("09:00", models.TaskStatusRescheduled, withDifficulty(models.DifficultyEasy)),
		task("10:00", models.TaskStatusSkipped, withDifficulty(models.DifficultyMedium)),
	}
	patterns := AnalyzeProductivityPatterns(tasks, time.Now())
	skip := patternOf(t, patterns, models.PatternSkip)
	require.NotNil(t, skip)
	assert.Contains(t, skip.Insight, "daily load")
}

func TestSkipPatternOmittedWithoutSkips(t *testing.T) {
	tasks := []models.Task{task("09:00", models.TaskStatusDone)}
	patterns := AnalyzeProductivityPatterns(tasks, time.Now())
	assert.Nil(t, patternOf(t, patterns, models.PatternSkip))
}

func TestFocusDurationOverrun(t *testing.T) {
	tasks := []models.Task{
		task("09:00", models.TaskStatusDone, withActual(45)),
		task("10:00", models.TaskStatusDone, withActual(50)),
		task("11:00", models.TaskStatusDone), // no actual, excluded
	}
	patterns := AnalyzeProductivityPatterns(tasks, time.Now())
	focus := patternOf(t, patterns, models.PatternFocusDuration)
	require.NotNil(t, focus)
	assert.Equal(t, 2, focus.DataPoints)
	assert.Contains(t, focus.Insight, "48 mins") // round((45+50)/2)
	assert.Contains(t, focus.Insight, "longer")
	assert.InDelta(t, 0.8, focus.Confidence, 1e-9)
}

func TestFocusDurationFaster(t *testing.T) {
	tasks := []models.Task{
		task("09:00", models.TaskStatusDone, withActual(20)),
	}
	patterns := AnalyzeProductivityPatterns(tasks, time.Now())
	focus := patternOf(t, patterns, models.PatternFocusDuration)
	require.NotNil(t, focus)
	assert.Contains(t, focus.Insight, "faster")
	assert.NotContains(t, focus.Insight, "longer")
}

func TestFocusDurationOmittedWithoutActuals(t *testing.T) {
	tasks := []models.Task{
		task("09:00", models.TaskStatusDone),
		task("10:00", models.TaskStatusPending, withActual(15)), // not done
	}
	patterns := AnalyzeProductivityPatterns(tasks, time.Now())
	assert.Nil(t, patternOf(t, patterns, models.PatternFocusDuration))
}

func TestPatternIDsUniqueWithinRun(t *testing.T) {
	tasks := []models.Task{
		task("09:00", models.TaskStatusDone, withActual(40)),
		task("10:00", models.TaskStatusSkipped),
	}
	now := time.Now()
	patterns := AnalyzeProductivityPatterns(tasks, now)
	require.Len(t, patterns, 4)
	seen := make(map[string]bool)
	for _, p := range patterns {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		assert.True(t, p.DetectedAt.Equal(now))
	}
}

func fitness(steps, goal int) models.FitnessData {
	return models.FitnessData{
		Date:      time.Now().Format(dateLayout),
		Steps:     steps,
		StepsGoal: goal,
	}
}

func TestDailyInsightAllPending(t *testing.T) {
	tasks := []models.Task{
		task("09:00", models.TaskStatusPending),
		task("10:00", models.TaskStatusPending),
		task("11:00", models.TaskStatusPending),
		task("12:00", models.TaskStatusPending),
	}
	in := CalculateDailyInsight(tasks, fitness(2000, 10000), nil, time.Now())
	assert.Equal(t, 0, in.TasksCompleted)
	assert.Equal(t, 4, in.TasksTotal)
	assert.Zero(t, in.CompletionRate)
	assert.Zero(t, in.FocusMinutes)
	assert.Equal(t, models.MoodTired, in.Mood) // 0 < 30 and 20 < 30
	assert.Equal(t, models.EnergyLow, in.EnergyLevel)

	recs := GenerateRecommendations(nil, in)
	assert.Contains(t, recs, "Try reducing daily task count to build consistency.")
	assert.Contains(t, recs, "Consider shorter 25-minute focus sessions (Pomodoro technique).")
}

func TestDailyInsightIgnoresFutureDays(t *testing.T) {
	tasks := []models.Task{
		task("09:00", models.TaskStatusDone),
		task("10:00", models.TaskStatusDone, withDayIndex(1)),
		task("11:00", models.TaskStatusPending, withDayIndex(2)),
	}
	in := CalculateDailyInsight(tasks, fitness(0, 10000), nil, time.Now())
	assert.Equal(t, 1, in.TasksTotal)
	assert.Equal(t, 1, in.TasksCompleted)
	assert.InDelta(t, 100.0, in.CompletionRate, 1e-9)
}

func TestDailyInsightFocusMinutesPreferActual(t *testing.T) {
	tasks := []models.Task{
		task("09:00", models.TaskStatusDone, withActual(45)), // actual wins
		task("10:00", models.TaskStatusDone),                 // falls back to estimate 30
		task("11:00", models.TaskStatusPending, withActual(99)),
	}
	in := CalculateDailyInsight(tasks, fitness(0, 10000), nil, time.Now())
	assert.Equal(t, 75, in.FocusMinutes)
}

func TestDailyInsightMoodBranches(t *testing.T) {
	cases := []struct {
		name   string
		done   int
		total  int
		steps  int
		mood   string
		energy string
	}{
		{"great", 4, 5, 9000, models.MoodGreat, models.EnergyHigh},
		{"good via tasks", 3, 5, 0, models.MoodGood, models.EnergyLow},
		{"good via steps", 0, 5, 7000, models.MoodGood, models.EnergyLow},
		{"tired", 0, 5, 2000, models.MoodTired, models.EnergyLow},
		{"okay default", 2, 5, 4000, models.MoodOkay, models.EnergyMedium},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var tasks []models.Task
			for i := 0; i < tc.done; i++ {
				tasks = append(tasks, task("09:00", models.TaskStatusDone))
			}
			for i := tc.done; i < tc.total; i++ {
				tasks = append(tasks, task("10:00", models.TaskStatusPending))
			}
			in := CalculateDailyInsight(tasks, fitness(tc.steps, 10000), nil, time.Now())
			assert.Equal(t, tc.mood, in.Mood)
			assert.Equal(t, tc.energy, in.EnergyLevel)
			assert.LessOrEqual(t, in.TasksCompleted, in.TasksTotal)
		})
	}
}

func TestDailyInsightNoTasksNoSteps(t *testing.T) {
	in := CalculateDailyInsight(nil, models.FitnessData{}, nil, time.Now())
	assert.Zero(t, in.CompletionRate)
	assert.Equal(t, models.MoodTired, in.Mood)
}

func TestStreakDays(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(dateLayout)
	}
	history := []models.DailyInsight{
		{Date: day(-1), TasksCompleted: 2},
		{Date: day(-2), TasksCompleted: 1},
		{Date: day(-4), TasksCompleted: 3}, // gap at -3 ends the streak
	}

	assert.Equal(t, 3, streakDays(history, 1, now))
	// No completion today yet: streak anchors at yesterday.
	assert.Equal(t, 2, streakDays(history, 0, now))
	assert.Equal(t, 0, streakDays(nil, 0, now))
	assert.Equal(t, 1, streakDays(nil, 2, now))
}

func TestRecommendationsNeverEmpty(t *testing.T) {
	in := models.DailyInsight{CompletionRate: 65, EnergyLevel: models.EnergyMedium}
	recs := GenerateRecommendations(nil, in)
	require.Len(t, recs, 2)
	assert.Contains(t, recs[0], "consistency")
	assert.Contains(t, recs[1], "stretch break")
}

func TestRecommendationsUsePeakPeriod(t *testing.T) {
	patterns := []models.BehaviorPattern{{
		Type:   models.PatternProductivityPeak,
		Period: "afternoon",
	}}
	in := models.DailyInsight{CompletionRate: 65}
	recs := GenerateRecommendations(patterns, in)
	require.NotEmpty(t, recs)
	assert.Contains(t, recs[0], "afternoon")
}

func TestRecommendationsHighCompletion(t *testing.T) {
	in := models.DailyInsight{CompletionRate: 85}
	recs := GenerateRecommendations(nil, in)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "stretch goal")
}

func TestRecommendationsBufferAndRest(t *testing.T) {
	patterns := []models.BehaviorPattern{{
		Type:    models.PatternFocusDuration,
		Insight: "Your average focus session is 50 mins (planned: 30 mins). Tasks take longer - consider adding buffer time.",
	}}
	in := models.DailyInsight{CompletionRate: 60, EnergyLevel: models.EnergyLow}
	recs := GenerateRecommendations(patterns, in)
	require.Len(t, recs, 2)
	assert.Contains(t, recs[0], "buffer")
	assert.Contains(t, recs[1], "rest")
}

func TestAnalyzePersistsAndReturns(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewBehaviorService(st, zap.NewNop())
	ctx := context.Background()

	tasks := []models.Task{
		task("09:00", models.TaskStatusDone, withActual(25)),
		task("10:00", models.TaskStatusPending),
	}

	result, err := svc.Analyze(ctx, "u1", tasks, fitness(8000, 10000))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Patterns)
	assert.NotEmpty(t, result.Recommendations)
	assert.Equal(t, "u1", result.Insights.UserID)

	stored, err := st.GetBehaviorPatterns(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Len(t, stored, len(result.Patterns))

	insights, err := st.GetDailyInsights(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, insights, 1)

	actions, err := st.GetAgentActions(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "analyze_behavior", actions[0].Type)
	assert.Equal(t, "completed", actions[0].Status)
	assert.Contains(t, actions[0].Input, "2 tasks")
}

// failingStore drops every analysis write.
type failingStore struct {
	*store.MemoryStore
}

func (f *failingStore) AppendBehaviorPattern(context.Context, models.BehaviorPattern) error {
	return errors.New("write failed")
}

func (f *failingStore) AppendDailyInsight(context.Context, models.DailyInsight) error {
	return errors.New("write failed")
}

func (f *failingStore) AppendAgentAction(context.Context, models.AgentAction) error {
	return errors.New("write failed")
}

func TestAnalyzeReturnsResultWhenPersistenceFails(t *testing.T) {
	svc := NewBehaviorService(&failingStore{store.NewMemoryStore()}, zap.NewNop())

	tasks := []models.Task{task("09:00", models.TaskStatusDone)}
	result, err := svc.Analyze(context.Background(), "u1", tasks, fitness(5000, 10000))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Patterns)
	assert.NotEmpty(t, result.Recommendations)
}
