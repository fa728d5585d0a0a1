package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Yashgithub77/lifeeloopp/models"
	"github.com/Yashgithub77/lifeeloopp/store"
)

const dateLayout = "2006-01-02"

// Periods in tie-break priority order: when two periods share the best
// completion rate, the earlier one here wins.
var periods = []string{"morning", "afternoon", "evening", "night"}

func periodOf(hour int) string {
	switch {
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	case hour < 20:
		return "evening"
	default:
		return "night"
	}
}

func startHour(startTime string) int {
	h, _ := strconv.Atoi(strings.SplitN(startTime, ":", 2)[0])
	return h
}

// BehaviorService runs the behavior-analysis pipeline and persists its
// output. The store is injected by the hosting application.
type BehaviorService struct {
	store store.Store
	log   *zap.Logger
}

func NewBehaviorService(st store.Store, log *zap.Logger) *BehaviorService {
	return &BehaviorService{store: st, log: log}
}

// AnalyzeProductivityPatterns scans the full task list and derives the
// fixed set of behavior patterns, in detection order. All patterns of
// one run share the run's start time as detectedAt.
func AnalyzeProductivityPatterns(tasks []models.Task, now time.Time) []models.BehaviorPattern {
	var patterns []models.BehaviorPattern

	// Pattern 1: productivity peak time.
	type periodCount struct{ done, total int }
	perf := make(map[string]*periodCount)
	for _, t := range tasks {
		p := periodOf(startHour(t.StartTime))
		if perf[p] == nil {
			perf[p] = &periodCount{}
		}
		perf[p].total++
		if t.Status == models.TaskStatusDone {
			perf[p].done++
		}
	}

	bestPeriod := ""
	bestRate := 0.0
	for _, p := range periods {
		c := perf[p]
		if c == nil || c.total == 0 {
			continue
		}
		rate := float64(c.done) / float64(c.total) * 100
		if rate > bestRate {
			bestRate = rate
			bestPeriod = p
		}
	}

	if bestRate > 0 {
		patterns = append(patterns, models.BehaviorPattern{
			ID:          "pattern-" + uuid.NewString(),
			Type:        models.PatternProductivityPeak,
			Title:       "Peak Productivity Time",
			Description: fmt.Sprintf("Your %s sessions are most effective", bestPeriod),
			Insight: fmt.Sprintf("Your most productive time is %s with %d%% task completion rate.",
				bestPeriod, int(math.Round(bestRate))),
			Confidence: math.Min(0.9, (bestRate+10)/100),
			DetectedAt: now,
			DataPoints: len(tasks),
			Period:     bestPeriod,
		})
	}

	// Pattern 2: overall completion rate. Always emitted.
	completed := 0
	for _, t := range tasks {
		if t.Status == models.TaskStatusDone {
			completed++
		}
	}
	completionRate := 0.0
	if len(tasks) > 0 {
		completionRate = float64(completed) / float64(len(tasks)) * 100
	}
	rateVerdict := "Room for improvement - try smaller tasks."
	rateDesc := "Room for improvement"
	if completionRate >= 70 {
		rateVerdict = "Great consistency!"
		rateDesc = "Great consistency!"
	}
	patterns = append(patterns, models.BehaviorPattern{
		ID:          "pattern-" + uuid.NewString(),
		Type:        models.PatternCompletionRate,
		Title:       "Task Completion Rate",
		Description: rateDesc,
		Insight: fmt.Sprintf("Your overall completion rate is %d%%. %s",
			int(math.Round(completionRate)), rateVerdict),
		Confidence: math.Min(0.95, (50+completionRate/2)/100),
		DetectedAt: now,
		DataPoints: len(tasks),
	})

	// Pattern 3: skipped and rescheduled tasks.
	var skipped []models.Task
	for _, t := range tasks {
		if t.Status == models.TaskStatusSkipped || t.Status == models.TaskStatusRescheduled {
			skipped = append(skipped, t)
		}
	}
	if len(skipped) > 0 {
		hardSkipped := 0
		for _, t := range skipped {
			if t.Difficulty == models.DifficultyHard {
				hardSkipped++
			}
		}
		reason := "Some tasks are being rescheduled. Try adjusting your daily load."
		if hardSkipped > len(skipped)/2 {
			reason = "You tend to skip harder tasks. Consider breaking them into smaller chunks."
		}
		patterns = append(patterns, models.BehaviorPattern{
			ID:          "pattern-" + uuid.NewString(),
			Type:        models.PatternSkip,
			Title:       "Task Skipping Pattern",
			Description: "Some tasks are being skipped",
			Insight:     reason,
			Confidence:  0.75,
			DetectedAt:  now,
			DataPoints:  len(skipped),
		})
	}

	// Pattern 4: focus duration vs. plan, over done tasks with a
	// recorded actual duration.
	var withActual []models.Task
	for _, t := range tasks {
		if t.Status == models.TaskStatusDone && t.ActualMinutes > 0 {
			withActual = append(withActual, t)
		}
	}
	if len(withActual) > 0 {
		sumActual, sumPlanned := 0, 0
		for _, t := range withActual {
			sumActual += t.ActualMinutes
			sumPlanned += t.EstimatedMinutes
		}
		avgActual := int(math.Round(float64(sumActual) / float64(len(withActual))))
		avgPlanned := int(math.Round(float64(sumPlanned) / float64(len(withActual))))
		verdict := "Tasks take longer - consider adding buffer time."
		if avgActual < avgPlanned {
			verdict = "You finish faster than expected!"
		}
		patterns = append(patterns, models.BehaviorPattern{
			ID:          "pattern-" + uuid.NewString(),
			Type:        models.PatternFocusDuration,
			Title:       "Focus Session Duration",
			Description: fmt.Sprintf("Average session: %d mins", avgActual),
			Insight: fmt.Sprintf("Your average focus session is %d mins (planned: %d mins). %s",
				avgActual, avgPlanned, verdict),
			Confidence: 0.8,
			DetectedAt: now,
			DataPoints: len(withActual),
		})
	}

	return patterns
}

// CalculateDailyInsight reduces today's tasks and the day's fitness
// snapshot into one mood/energy/completion rollup. history is prior
// DailyInsight records, used for the streak count.
func CalculateDailyInsight(tasks []models.Task, fitness models.FitnessData, history []models.DailyInsight, now time.Time) models.DailyInsight {
	var today []models.Task
	for _, t := range tasks {
		if t.DayIndex == 0 {
			today = append(today, t)
		}
	}

	completed := 0
	focusMinutes := 0
	for _, t := range today {
		if t.Status != models.TaskStatusDone {
			continue
		}
		completed++
		if t.ActualMinutes > 0 {
			focusMinutes += t.ActualMinutes
		} else {
			focusMinutes += t.EstimatedMinutes
		}
	}

	completionRate := 0.0
	if len(today) > 0 {
		completionRate = float64(completed) / float64(len(today)) * 100
	}
	stepsAchieved := 0.0
	if fitness.StepsGoal > 0 {
		stepsAchieved = float64(fitness.Steps) / float64(fitness.StepsGoal) * 100
	}

	// First matching branch wins.
	mood := models.MoodOkay
	switch {
	case completionRate >= 80 && stepsAchieved >= 80:
		mood = models.MoodGreat
	case completionRate >= 60 || stepsAchieved >= 60:
		mood = models.MoodGood
	case completionRate < 30 && stepsAchieved < 30:
		mood = models.MoodTired
	}

	energy := models.EnergyMedium
	energyScore := (completionRate + stepsAchieved) / 2
	if energyScore >= 70 {
		energy = models.EnergyHigh
	} else if energyScore < 40 {
		energy = models.EnergyLow
	}

	return models.DailyInsight{
		Date:           now.Format(dateLayout),
		TasksCompleted: completed,
		TasksTotal:     len(today),
		CompletionRate: completionRate,
		FocusMinutes:   focusMinutes,
		StreakDays:     streakDays(history, completed, now),
		Mood:           mood,
		EnergyLevel:    energy,
	}
}

// streakDays counts consecutive calendar days with at least one
// completed task, ending today. Today's count comes from the run in
// progress, prior days from stored insight history. When today has no
// completions yet the streak anchors at yesterday instead of dropping
// to zero mid-morning.
func streakDays(history []models.DailyInsight, todayCompleted int, now time.Time) int {
	productive := make(map[string]bool)
	for _, in := range history {
		if in.TasksCompleted > 0 {
			productive[in.Date] = true
		}
	}
	if todayCompleted > 0 {
		productive[now.Format(dateLayout)] = true
	}

	day := now
	if !productive[day.Format(dateLayout)] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for productive[day.Format(dateLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// GenerateRecommendations maps the detected patterns and the daily
// insight onto a prioritized list of suggestions. Never returns an
// empty list.
func GenerateRecommendations(patterns []models.BehaviorPattern, insight models.DailyInsight) []string {
	var recs []string

	if peak := findPattern(patterns, models.PatternProductivityPeak); peak != nil {
		period := peak.Period
		if period == "" {
			period = "evening"
		}
		recs = append(recs, fmt.Sprintf("Schedule important tasks during %s for best results.", period))
	}

	if insight.CompletionRate < 50 {
		recs = append(recs, "Try reducing daily task count to build consistency.")
		recs = append(recs, "Consider shorter 25-minute focus sessions (Pomodoro technique).")
	} else if insight.CompletionRate >= 80 {
		recs = append(recs, "You're doing great! Consider adding one stretch goal.")
	}

	if focus := findPattern(patterns, models.PatternFocusDuration); focus != nil && strings.Contains(focus.Insight, "longer") {
		recs = append(recs, "Add 10-minute buffer to task estimates.")
	}

	if insight.EnergyLevel == models.EnergyLow {
		recs = append(recs, "Your energy seems low - prioritize rest and lighter tasks tomorrow.")
	}

	if len(recs) == 0 {
		recs = append(recs, "Keep up your current routine - consistency is key!")
		recs = append(recs, "Take a 5-minute stretch break between tasks.")
	}

	return recs
}

func findPattern(patterns []models.BehaviorPattern, patternType string) *models.BehaviorPattern {
	for i := range patterns {
		if patterns[i].Type == patternType {
			return &patterns[i]
		}
	}
	return nil
}

// Analyze is the replan entry point: it runs pattern detection, the
// daily insight and the recommendation rules, then persists every new
// pattern, the insight and one audit action. Persistence is best
// effort: a failed write is logged and the computed result is still
// returned.
func (s *BehaviorService) Analyze(ctx context.Context, userID string, tasks []models.Task, fitness models.FitnessData) (*models.AnalysisResult, error) {
	start := time.Now()

	history, err := s.store.GetDailyInsights(ctx, userID, 60)
	if err != nil {
		s.log.Warn("could not load insight history, streak starts fresh",
			zap.String("user_id", userID), zap.Error(err))
		history = nil
	}

	patterns := AnalyzeProductivityPatterns(tasks, start)
	insight := CalculateDailyInsight(tasks, fitness, history, start)
	recommendations := GenerateRecommendations(patterns, insight)

	for i := range patterns {
		patterns[i].UserID = userID
		if err := s.store.AppendBehaviorPattern(ctx, patterns[i]); err != nil {
			s.log.Warn("failed to persist behavior pattern",
				zap.String("pattern_id", patterns[i].ID), zap.Error(err))
		}
	}
	insight.UserID = userID
	if err := s.store.AppendDailyInsight(ctx, insight); err != nil {
		s.log.Warn("failed to persist daily insight",
			zap.String("date", insight.Date), zap.Error(err))
	}

	action := models.AgentAction{
		ID:        "action-" + uuid.NewString(),
		UserID:    userID,
		Type:      "analyze_behavior",
		Timestamp: start,
		Input:     fmt.Sprintf("Analyzed %d tasks and fitness data", len(tasks)),
		Output: fmt.Sprintf("Detected %d patterns, generated %d recommendations",
			len(patterns), len(recommendations)),
		Status:   "completed",
		Duration: time.Since(start).Milliseconds(),
	}
	if err := s.store.AppendAgentAction(ctx, action); err != nil {
		s.log.Warn("failed to persist agent action", zap.Error(err))
	}

	return &models.AnalysisResult{
		Patterns:        patterns,
		Insights:        insight,
		Recommendations: recommendations,
	}, nil
}

// AnalyzeForUser loads the user's tasks and latest fitness snapshot
// and runs Analyze over them.
func (s *BehaviorService) AnalyzeForUser(ctx context.Context, userID string) (*models.AnalysisResult, error) {
	tasks, err := s.store.GetTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	fitness := models.FitnessData{
		Date:      time.Now().Format(dateLayout),
		StepsGoal: DefaultStepsGoal,
	}
	if history, err := s.store.GetFitnessHistory(ctx, userID, 7); err != nil {
		s.log.Warn("could not load fitness history, analyzing without it",
			zap.String("user_id", userID), zap.Error(err))
	} else if len(history) > 0 {
		fitness = history[len(history)-1]
	}
	return s.Analyze(ctx, userID, tasks, fitness)
}
