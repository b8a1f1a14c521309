package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alaminShaheen/PrepTracker/internal/dates"
	"github.com/alaminShaheen/PrepTracker/internal/recurrence"
	"github.com/alaminShaheen/PrepTracker/internal/types/goal"
)

type GoalService struct {
	db                   *pgxpool.Pool
	visualizationService *VisualizationService
	now                  func() time.Time
}

func NewGoalService(db *pgxpool.Pool, visualizationService *VisualizationService) *GoalService {
	return &GoalService{
		db:                   db,
		visualizationService: visualizationService,
		now:                  time.Now,
	}
}

// SetClock overrides the service clock. Tests pin it to a fixed instant.
func (s *GoalService) SetClock(now func() time.Time) {
	s.now = now
}

const goalColumns = `id, user_id, name, description, goal_type, status, start_date, end_date, progress, created_at, updated_at`

func scanGoal(row pgx.Row) (*goal.Goal, error) {
	var g goal.Goal
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.Description, &g.GoalType, &g.Status,
		&g.StartDate, &g.EndDate, &g.Progress, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *GoalService) resolveUserID(ctx context.Context, clerkID string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("unknown user: %w", goal.ErrForbidden)
		}
		return uuid.Nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return userID, nil
}

// CreateGoal validates the date range, generates the goal's progress key set
// and stores the goal in ACTIVE status with every key unchecked.
func (s *GoalService) CreateGoal(ctx context.Context, clerkID string, req *goal.CreateGoalRequest) (*goal.Goal, error) {
	userID, err := s.resolveUserID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	start := dates.Normalize(req.StartDate)
	end := dates.Normalize(req.EndDate)
	if end.Before(start) {
		return nil, goal.ErrInvalidRange
	}

	progress := recurrence.BuildProgress(req.GoalType, start, end)

	query := `
	INSERT INTO goals (id, user_id, name, description, goal_type, status, start_date, end_date, progress)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + goalColumns

	created, err := scanGoal(s.db.QueryRow(ctx, query,
		uuid.New(), userID, req.Name, req.Description, req.GoalType, goal.StatusActive, start, end, progress))
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return created, nil
}

// GetGoal fetches a goal and enforces ownership.
func (s *GoalService) GetGoal(ctx context.Context, clerkID string, goalID uuid.UUID) (*goal.Goal, error) {
	userID, err := s.resolveUserID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	g, err := scanGoal(s.db.QueryRow(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = $1`, goalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, goal.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch goal: %w", err)
	}
	if g.UserID != userID {
		return nil, goal.ErrForbidden
	}
	return g, nil
}

// UpdateGoal applies a partial edit. An explicit progress map in the request
// replaces the stored one wholesale. Without one, a change to the goal's type
// or date range regenerates the key set, carrying over the values of keys
// that survive. Either way the before/after progress maps are diffed and the
// resulting deltas folded into the heatmap.
func (s *GoalService) UpdateGoal(ctx context.Context, clerkID string, goalID uuid.UUID, req *goal.UpdateGoalRequest) (*goal.Goal, error) {
	g, err := s.GetGoal(ctx, clerkID, goalID)
	if err != nil {
		return nil, err
	}

	before := g.Progress

	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.Description != nil {
		g.Description = req.Description
	}
	if req.Status != nil {
		g.Status = *req.Status
	}

	scheduleChanged := false
	if req.GoalType != nil && *req.GoalType != g.GoalType {
		g.GoalType = *req.GoalType
		scheduleChanged = true
	}
	if req.StartDate != nil && !dates.Normalize(*req.StartDate).Equal(g.StartDate) {
		g.StartDate = dates.Normalize(*req.StartDate)
		scheduleChanged = true
	}
	if req.EndDate != nil && !dates.Normalize(*req.EndDate).Equal(g.EndDate) {
		g.EndDate = dates.Normalize(*req.EndDate)
		scheduleChanged = true
	}
	if g.EndDate.Before(g.StartDate) {
		return nil, goal.ErrInvalidRange
	}

	switch {
	case req.Progress != nil:
		g.Progress = req.Progress
	case scheduleChanged:
		regenerated := recurrence.BuildProgress(g.GoalType, g.StartDate, g.EndDate)
		for key := range regenerated {
			if prev, ok := before[key]; ok {
				regenerated[key] = prev
			}
		}
		g.Progress = regenerated
	}

	deltas := recurrence.DiffProgress(g.GoalType, before, g.Progress)

	query := `
	UPDATE goals
	SET name = $1, description = $2, goal_type = $3, status = $4,
	    start_date = $5, end_date = $6, progress = $7, updated_at = NOW()
	WHERE id = $8
	RETURNING ` + goalColumns

	updated, err := scanGoal(s.db.QueryRow(ctx, query,
		g.Name, g.Description, g.GoalType, g.Status, g.StartDate, g.EndDate, g.Progress, g.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("goal vanished during update: %w", goal.ErrPersistence)
		}
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	if len(deltas) > 0 {
		if err := s.visualizationService.ApplyDeltas(ctx, g.UserID, deltas); err != nil {
			return nil, err
		}
	}

	return updated, nil
}

// ToggleGoal flips the goal's progress flag for today. Weekly goals flip the
// bucket covering today. Returns ErrNotFound when no tracked period covers
// today, so the client cannot check off a goal outside its schedule.
func (s *GoalService) ToggleGoal(ctx context.Context, clerkID string, goalID uuid.UUID) (*goal.Goal, error) {
	g, err := s.GetGoal(ctx, clerkID, goalID)
	if err != nil {
		return nil, err
	}

	key := recurrence.ActiveKey(g, recurrence.WindowToday, s.now())
	if key == "" {
		return nil, fmt.Errorf("goal has no trackable period today: %w", goal.ErrNotFound)
	}

	progress := make(map[string]bool, len(g.Progress))
	for k, v := range g.Progress {
		progress[k] = v
	}
	progress[key] = !progress[key]

	return s.UpdateGoal(ctx, clerkID, goalID, &goal.UpdateGoalRequest{Progress: progress})
}

func (s *GoalService) DeleteGoal(ctx context.Context, clerkID string, goalID uuid.UUID) error {
	g, err := s.GetGoal(ctx, clerkID, goalID)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, `DELETE FROM goals WHERE id = $1`, g.ID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

func (s *GoalService) getActiveGoals(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 AND status = $2 ORDER BY created_at`

	rows, err := s.db.Query(ctx, query, userID, goal.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return goals, nil
}

// GoalsForWindow returns the user's active goals relevant to a dashboard
// window, each decorated with its active key and whether it accepts toggles.
func (s *GoalService) GoalsForWindow(ctx context.Context, clerkID string, window recurrence.Window) ([]goal.WindowedGoal, error) {
	userID, err := s.resolveUserID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	goals, err := s.getActiveGoals(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	windowed := []goal.WindowedGoal{}
	for _, g := range goals {
		if !recurrence.InWindow(g, window, now) {
			continue
		}
		key := recurrence.ActiveKey(g, window, now)
		windowed = append(windowed, goal.WindowedGoal{
			Goal:       *g,
			ActiveKey:  key,
			Actionable: recurrence.Actionable(window, key),
		})
	}

	return windowed, nil
}

// EmailGoals collects the user's goals due today, grouped by type for the
// daily digest.
func (s *GoalService) EmailGoals(ctx context.Context, userID uuid.UUID) (daily, weekly, oneTime []*goal.Goal, err error) {
	goals, err := s.getActiveGoals(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}

	now := s.now()
	for _, g := range goals {
		if !recurrence.InWindow(g, recurrence.WindowToday, now) {
			continue
		}
		switch g.GoalType {
		case goal.TypeDaily:
			daily = append(daily, g)
		case goal.TypeWeekly:
			weekly = append(weekly, g)
		default:
			oneTime = append(oneTime, g)
		}
	}

	return daily, weekly, oneTime, nil
}

// CleanExpiredGoals removes the user's goals whose end date has passed.
// Today itself still counts as in range.
func (s *GoalService) CleanExpiredGoals(ctx context.Context, userID uuid.UUID) (int, error) {
	today := dates.Normalize(s.now())

	tag, err := s.db.Exec(ctx, `DELETE FROM goals WHERE user_id = $1 AND end_date < $2`, userID, today)
	if err != nil {
		return 0, fmt.Errorf("failed to clean expired goals: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
