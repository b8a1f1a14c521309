package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ClerkID    string    `json:"clerk_id" db:"clerk_id"`
	Email      string    `json:"email" db:"email"`
	Firstname  string    `json:"firstname" db:"firstname"`
	Lastname   string    `json:"lastname" db:"lastname"`
	Subscribed bool      `json:"subscribed" db:"subscribed"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type DeviceToken struct {
	Token    string `json:"token" db:"token"`
	Platform string `json:"platform" db:"platform"`
}

type UpdateSubscriptionRequest struct {
	Subscribed bool `json:"subscribed"`
}

type RegisterDeviceRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform"`
}
