package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alaminShaheen/PrepTracker/internal/recurrence"
	"github.com/alaminShaheen/PrepTracker/internal/types/heatmap"
)

type VisualizationService struct {
	db *pgxpool.Pool
}

func NewVisualizationService(db *pgxpool.Pool) *VisualizationService {
	return &VisualizationService{db: db}
}

// GetHeatmap returns every heatmap entry for the user, oldest first. Days the
// user never completed anything on have no entry.
func (s *VisualizationService) GetHeatmap(ctx context.Context, clerkID string) ([]heatmap.Entry, error) {
	query := `
	SELECT h.id, h.user_id, h.date_key, h.tasks_completed
	FROM heatmap_entries h
	JOIN users u ON u.id = h.user_id
	WHERE u.clerk_id = $1
	ORDER BY to_date(h.date_key, 'DD-MM-YYYY')
	`

	rows, err := s.db.Query(ctx, query, clerkID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch heatmap: %w", err)
	}
	defer rows.Close()

	entries := []heatmap.Entry{}
	for rows.Next() {
		var e heatmap.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.DateKey, &e.TasksCompleted); err != nil {
			return nil, fmt.Errorf("failed to scan heatmap entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ApplyDeltas folds progress deltas into the per-day counters. An increment
// creates the day's entry on first completion; a decrement only updates an
// existing entry and never drives the counter below zero.
func (s *VisualizationService) ApplyDeltas(ctx context.Context, userID uuid.UUID, deltas []recurrence.Delta) error {
	for _, d := range deltas {
		var err error
		if d.Change > 0 {
			query := `
			INSERT INTO heatmap_entries (id, user_id, date_key, tasks_completed)
			VALUES ($1, $2, $3, 1)
			ON CONFLICT (user_id, date_key)
			DO UPDATE SET tasks_completed = heatmap_entries.tasks_completed + 1
			`
			_, err = s.db.Exec(ctx, query, uuid.New(), userID, d.DateKey)
		} else {
			query := `
			UPDATE heatmap_entries
			SET tasks_completed = GREATEST(tasks_completed - 1, 0)
			WHERE user_id = $1 AND date_key = $2
			`
			_, err = s.db.Exec(ctx, query, userID, d.DateKey)
		}
		if err != nil {
			return fmt.Errorf("failed to apply heatmap delta for %s: %w", d.DateKey, err)
		}
	}
	return nil
}
