package models

import "time"

// Task statuses as they move through planning and replanning.
const (
	TaskStatusPending     = "pending"
	TaskStatusInProgress  = "in_progress"
	TaskStatusDone        = "done"
	TaskStatusSkipped     = "skipped"
	TaskStatusRescheduled = "rescheduled"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type Task struct {
	ID               string     `bson:"id" json:"id"`
	UserID           string     `bson:"user_id" json:"userId"`
	GoalID           string     `bson:"goal_id" json:"goalId"`
	Title            string     `bson:"title" json:"title"`
	Description      string     `bson:"description" json:"description"`
	DayIndex         int        `bson:"day_index" json:"dayIndex"`   // 0 = today
	Date             string     `bson:"date" json:"date"`            // YYYY-MM-DD
	StartTime        string     `bson:"start_time" json:"startTime"` // HH:MM
	EstimatedMinutes int        `bson:"estimated_minutes" json:"estimatedMinutes"`
	ActualMinutes    int        `bson:"actual_minutes,omitempty" json:"actualMinutes,omitempty"`
	Status           string     `bson:"status" json:"status"`
	Difficulty       string     `bson:"difficulty" json:"difficulty"`
	Notes            string     `bson:"notes,omitempty" json:"notes,omitempty"`
	CompletedAt      *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	CreatedAt        time.Time  `bson:"created_at" json:"createdAt"`
}

type Goal struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"user_id" json:"userId"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description" json:"description"`
	Category     string    `bson:"category" json:"category"`
	TargetValue  int       `bson:"target_value" json:"targetValue"`
	CurrentValue int       `bson:"current_value" json:"currentValue"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}
