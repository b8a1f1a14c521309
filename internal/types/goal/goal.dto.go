package goal

import "time"

type CreateGoalRequest struct {
	Name        string    `json:"name" validate:"required"`
	Description *string   `json:"description"`
	GoalType    GoalType  `json:"goal_type" validate:"required"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
}

// UpdateGoalRequest carries partial edits. A nil field means "unchanged".
// Progress, when present, replaces the stored map wholesale; when absent and
// the date range or type changed, the service regenerates the key set.
type UpdateGoalRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	GoalType    *GoalType       `json:"goal_type"`
	Status      *GoalStatus     `json:"status"`
	StartDate   *time.Time      `json:"start_date"`
	EndDate     *time.Time      `json:"end_date"`
	Progress    map[string]bool `json:"progress"`
}

// WindowedGoal is a goal decorated for one of the dashboard windows.
// ActiveKey is the progress key the user would be toggling; it is empty when
// no tracked period covers the window's reference date. Actionable is true
// only for the today window.
type WindowedGoal struct {
	Goal
	ActiveKey  string `json:"active_key"`
	Actionable bool   `json:"actionable"`
}
