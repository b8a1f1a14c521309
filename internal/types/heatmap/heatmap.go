package heatmap

import "github.com/google/uuid"

// Entry is the per-user, per-day counter behind the calendar heatmap.
// At most one entry exists per (user_id, date_key); TasksCompleted never
// goes below zero.
type Entry struct {
	ID             uuid.UUID `json:"id" db:"id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	DateKey        string    `json:"date_key" db:"date_key"`
	TasksCompleted int       `json:"tasks_completed" db:"tasks_completed"`
}
