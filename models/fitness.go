package models

// FitnessData is one day's activity snapshot. Immutable once recorded
// for a given date; a chronological sequence forms fitness history.
type FitnessData struct {
	UserID         string  `bson:"user_id" json:"userId"`
	Date           string  `bson:"date" json:"date"` // YYYY-MM-DD
	Steps          int     `bson:"steps" json:"steps"`
	StepsGoal      int     `bson:"steps_goal" json:"stepsGoal"`
	DistanceKm     float64 `bson:"distance_km" json:"distanceKm"`
	ActiveMinutes  int     `bson:"active_minutes" json:"activeMinutes"`
	CaloriesBurned int     `bson:"calories_burned" json:"caloriesBurned"`
}

// FitnessReport is the weekly rollup produced by the trend analyzer.
type FitnessReport struct {
	WeeklySteps         int    `json:"weeklySteps"`
	AvgDailySteps       int    `json:"avgDailySteps"`
	GoalAchievementDays int    `json:"goalAchievementDays"`
	Trend               string `json:"trend"` // improving | stable | declining
	Message             string `json:"message"`
}
