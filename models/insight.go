package models

import "time"

// Behavior pattern types, in detection order.
const (
	PatternProductivityPeak = "productivity_peak"
	PatternCompletionRate   = "completion_rate"
	PatternSkip             = "skip_pattern"
	PatternFocusDuration    = "focus_duration"
)

const (
	MoodGreat = "great"
	MoodGood  = "good"
	MoodOkay  = "okay"
	MoodTired = "tired"
)

const (
	EnergyHigh   = "high"
	EnergyMedium = "medium"
	EnergyLow    = "low"
)

// BehaviorPattern is a structured observation about task-completion
// behavior. Confidence is always in [0, 1]. Period is set only for
// productivity_peak patterns.
type BehaviorPattern struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"user_id" json:"userId"`
	Type        string    `bson:"type" json:"type"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Insight     string    `bson:"insight" json:"insight"`
	Confidence  float64   `bson:"confidence" json:"confidence"`
	DetectedAt  time.Time `bson:"detected_at" json:"detectedAt"`
	DataPoints  int       `bson:"data_points" json:"dataPoints"`
	Period      string    `bson:"period,omitempty" json:"period,omitempty"`
}

// DailyInsight is the per-day rollup of completion, focus time, mood
// and energy. Appended to history on every analysis run, never mutated.
type DailyInsight struct {
	UserID         string  `bson:"user_id" json:"userId"`
	Date           string  `bson:"date" json:"date"` // YYYY-MM-DD
	TasksCompleted int     `bson:"tasks_completed" json:"tasksCompleted"`
	TasksTotal     int     `bson:"tasks_total" json:"tasksTotal"`
	CompletionRate float64 `bson:"completion_rate" json:"completionRate"` // 0-100, fractional
	FocusMinutes   int     `bson:"focus_minutes" json:"focusMinutes"`
	StreakDays     int     `bson:"streak_days" json:"streakDays"`
	Mood           string  `bson:"mood" json:"mood"`
	EnergyLevel    string  `bson:"energy_level" json:"energyLevel"`
}

// AgentAction is an append-only audit record of an agent invocation.
type AgentAction struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Type      string    `bson:"type" json:"type"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Input     string    `bson:"input" json:"input"`
	Output    string    `bson:"output" json:"output"`
	Status    string    `bson:"status" json:"status"`
	Duration  int64     `bson:"duration" json:"duration"` // milliseconds
}

// AnalysisResult is what the replan flow gets back from one run.
type AnalysisResult struct {
	Patterns        []BehaviorPattern `json:"patterns"`
	Insights        DailyInsight      `json:"insights"`
	Recommendations []string          `json:"recommendations"`
}
