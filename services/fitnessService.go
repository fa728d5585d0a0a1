package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/Yashgithub77/lifeeloopp/models"
	"github.com/Yashgithub77/lifeeloopp/store"
)

// ErrEmptyHistory is returned when the trend analyzer is given no data
// to work with. Callers must supply at least one day.
var ErrEmptyHistory = errors.New("fitness history is empty")

const (
	DefaultStepsGoal = 10000
	// Average stride used to derive distance from a step count.
	metersPerStep = 0.762
)

const (
	TrendImproving = "improving"
	TrendStable    = "stable"
	TrendDeclining = "declining"
)

// AnalyzeFitnessProgress reduces a chronological fitness history
// (typically the last 7 days) into weekly aggregates and a trend
// classification.
func AnalyzeFitnessProgress(history []models.FitnessData) (*models.FitnessReport, error) {
	if len(history) == 0 {
		return nil, ErrEmptyHistory
	}

	weeklySteps := 0
	goalDays := 0
	for _, d := range history {
		weeklySteps += d.Steps
		if d.Steps >= d.StepsGoal {
			goalDays++
		}
	}
	avgDaily := int(math.Round(float64(weeklySteps) / float64(len(history))))

	// Compare the mean of the first half against the second half.
	mid := len(history) / 2
	trend := TrendStable
	if mid > 0 {
		firstAvg := meanSteps(history[:mid])
		secondAvg := meanSteps(history[mid:])
		if secondAvg > firstAvg*1.1 {
			trend = TrendImproving
		} else if secondAvg < firstAvg*0.9 {
			trend = TrendDeclining
		}
	}

	var message string
	switch {
	case goalDays >= 5:
		message = fmt.Sprintf("Excellent! You hit your step goal %d/7 days this week. 🎉", goalDays)
	case goalDays >= 3:
		message = fmt.Sprintf("Good progress! %d days at goal. Keep building that momentum!", goalDays)
	default:
		message = fmt.Sprintf("You reached your goal %d days. Try breaking walks into 3 short sessions.", goalDays)
	}

	return &models.FitnessReport{
		WeeklySteps:         weeklySteps,
		AvgDailySteps:       avgDaily,
		GoalAchievementDays: goalDays,
		Trend:               trend,
		Message:             message,
	}, nil
}

func meanSteps(days []models.FitnessData) float64 {
	sum := 0
	for _, d := range days {
		sum += d.Steps
	}
	return float64(sum) / float64(len(days))
}

// FitnessService records day snapshots and reports weekly progress.
type FitnessService struct {
	store store.Store
	log   *zap.Logger
}

func NewFitnessService(st store.Store, log *zap.Logger) *FitnessService {
	return &FitnessService{store: st, log: log}
}

// Sync records one day's snapshot. Missing fields get defaults: the
// date is today, the goal is the standard 10k steps and distance is
// derived from the step count.
func (s *FitnessService) Sync(ctx context.Context, userID string, d models.FitnessData) (models.FitnessData, error) {
	d.UserID = userID
	if d.Date == "" {
		d.Date = time.Now().Format(dateLayout)
	}
	if d.StepsGoal == 0 {
		d.StepsGoal = DefaultStepsGoal
	}
	if d.DistanceKm == 0 && d.Steps > 0 {
		d.DistanceKm = math.Round(float64(d.Steps)*metersPerStep/10) / 100
	}
	if err := s.store.AppendFitnessData(ctx, d); err != nil {
		return models.FitnessData{}, err
	}
	return d, nil
}

// History returns the last `days` recorded snapshots in chronological
// order.
func (s *FitnessService) History(ctx context.Context, userID string, days int64) ([]models.FitnessData, error) {
	return s.store.GetFitnessHistory(ctx, userID, days)
}

// Progress runs the trend analyzer over the last week of history.
func (s *FitnessService) Progress(ctx context.Context, userID string) (*models.FitnessReport, error) {
	history, err := s.store.GetFitnessHistory(ctx, userID, 7)
	if err != nil {
		return nil, err
	}
	return AnalyzeFitnessProgress(history)
}
