package goal

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type GoalType string

const (
	TypeOneTime GoalType = "ONE_TIME"
	TypeDaily   GoalType = "DAILY"
	TypeWeekly  GoalType = "WEEKLY"
)

type GoalStatus string

const (
	StatusActive             GoalStatus = "ACTIVE"
	StatusCompleted          GoalStatus = "COMPLETED"
	StatusFailed             GoalStatus = "FAILED"
	StatusPartiallyCompleted GoalStatus = "PARTIALLY_COMPLETED"
)

var (
	ErrNotFound     = errors.New("goal not found")
	ErrForbidden    = errors.New("forbidden request")
	ErrInvalidRange = errors.New("end date is before start date")
	ErrPersistence  = errors.New("persistence failure")
)

// Goal tracks a one-time, daily or weekly personal goal. Progress maps a
// date key (one per trackable period, see internal/recurrence) to whether
// that period was completed.
type Goal struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      uuid.UUID       `json:"user_id" db:"user_id"`
	Name        string          `json:"name" db:"name"`
	Description *string         `json:"description" db:"description"`
	GoalType    GoalType        `json:"goal_type" db:"goal_type"`
	Status      GoalStatus      `json:"status" db:"status"`
	StartDate   time.Time       `json:"start_date" db:"start_date"`
	EndDate     time.Time       `json:"end_date" db:"end_date"`
	Progress    map[string]bool `json:"progress" db:"progress"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}
