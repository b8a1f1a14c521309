package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alaminShaheen/PrepTracker/internal/types/user"
)

type UserService struct {
	db *pgxpool.Pool
}

func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{db: db}
}

const userColumns = `id, clerk_id, email, firstname, lastname, subscribed, created_at`

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.ClerkID, &u.Email, &u.Firstname, &u.Lastname, &u.Subscribed, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserService) GetUserByClerkID(ctx context.Context, clerkID string) (*user.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE clerk_id = $1`, clerkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return u, nil
}

// CreateUser registers a user provisioned by the Clerk webhook. Users start
// subscribed to the daily digest.
func (s *UserService) CreateUser(ctx context.Context, clerkID, email, firstname, lastname string) (*user.User, error) {
	query := `
	INSERT INTO users (id, clerk_id, email, firstname, lastname, subscribed)
	VALUES ($1, $2, $3, $4, $5, TRUE)
	ON CONFLICT (clerk_id) DO UPDATE SET email = $3, firstname = $4, lastname = $5
	RETURNING ` + userColumns

	u, err := scanUser(s.db.QueryRow(ctx, query, uuid.New(), clerkID, email, firstname, lastname))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// DeleteUserByClerkID removes the user; goals, heatmap entries and device
// tokens cascade in the schema.
func (s *UserService) DeleteUserByClerkID(ctx context.Context, clerkID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM users WHERE clerk_id = $1`, clerkID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// UpdateSubscription flips the daily digest opt-in.
func (s *UserService) UpdateSubscription(ctx context.Context, clerkID string, subscribed bool) (*user.User, error) {
	query := `UPDATE users SET subscribed = $1 WHERE clerk_id = $2 RETURNING ` + userColumns

	u, err := scanUser(s.db.QueryRow(ctx, query, subscribed, clerkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	return u, nil
}

// RegisterDevice stores an FCM device token for push reminders.
func (s *UserService) RegisterDevice(ctx context.Context, clerkID string, req *user.RegisterDeviceRequest) error {
	query := `
	INSERT INTO device_tokens (user_id, token, platform)
	SELECT id, $2, $3 FROM users WHERE clerk_id = $1
	ON CONFLICT (token) DO UPDATE SET platform = $3
	`
	tag, err := s.db.Exec(ctx, query, clerkID, req.Token, req.Platform)
	if err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

// GetAllUsers lists every user; the midnight worker walks this.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*user.User, error) {
	rows, err := s.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (s *UserService) GetDeviceTokens(ctx context.Context, userID uuid.UUID) ([]user.DeviceToken, error) {
	rows, err := s.db.Query(ctx, `SELECT token, platform FROM device_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []user.DeviceToken
	for rows.Next() {
		var t user.DeviceToken
		if err := rows.Scan(&t.Token, &t.Platform); err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		tokens = append(tokens, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tokens, nil
}
