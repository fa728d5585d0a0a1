package store

import (
	"context"
	"errors"

	"github.com/Yashgithub77/lifeeloopp/models"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrGoalNotFound = errors.New("goal not found")
	ErrUserNotFound = errors.New("user not found")
)

// Store is the persistence collaborator for the planner. The analysis
// collections (patterns, insights, agent actions) are append-only:
// every Append call adds a new record, prior history is never rewritten.
// Implementations are owned by the hosting application and injected
// once at startup.
type Store interface {
	// Analysis history.
	AppendBehaviorPattern(ctx context.Context, p models.BehaviorPattern) error
	AppendDailyInsight(ctx context.Context, in models.DailyInsight) error
	AppendAgentAction(ctx context.Context, a models.AgentAction) error
	GetBehaviorPatterns(ctx context.Context, userID string, limit int64) ([]models.BehaviorPattern, error)
	GetDailyInsights(ctx context.Context, userID string, limit int64) ([]models.DailyInsight, error)
	GetAgentActions(ctx context.Context, userID string, limit int64) ([]models.AgentAction, error)

	// Tasks and goals.
	GetTasks(ctx context.Context, userID string) ([]models.Task, error)
	GetTask(ctx context.Context, userID, taskID string) (*models.Task, error)
	AddTask(ctx context.Context, t models.Task) error
	UpdateTask(ctx context.Context, t models.Task) error
	GetGoals(ctx context.Context, userID string) ([]models.Goal, error)
	AddGoal(ctx context.Context, g models.Goal) error
	// UpdateGoal applies merge-patch semantics: only the given fields
	// are written, everything else is left untouched.
	UpdateGoal(ctx context.Context, userID, goalID string, fields map[string]interface{}) error

	// Fitness history. A day's snapshot is immutable once recorded:
	// appending a second record for the same date is a no-op.
	AppendFitnessData(ctx context.Context, d models.FitnessData) error
	GetFitnessHistory(ctx context.Context, userID string, days int64) ([]models.FitnessData, error)

	// Users (auth).
	SaveUser(ctx context.Context, u models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	UpdateUserTokens(ctx context.Context, userID, token, refreshToken string) error
	CountUsersByEmail(ctx context.Context, email string) (int64, error)
}
