package models

import (
	"time"
)

// Model defines the base interface for persistent models.
// Implementations include User and QSO.
type Model interface {
	Validate() error // Validate checks if the model's data is valid and returns an error if not
}

// User is a registered operator. The callsign doubles as the user identity
// and as the key for the per-user QSO collection.
type User struct {
	ID           string
	Sequence     int
	Callsign     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// NewUser creates a User with timestamps set to now.
func NewUser(callsign, passwordHash string) *User {
	now := time.Now()
	return &User{
		Callsign:     callsign,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate checks required user fields.
func (u *User) Validate() error {
	if u.Callsign == "" {
		return errEmptyField("callsign")
	}
	if u.PasswordHash == "" {
		return errEmptyField("password_hash")
	}
	return nil
}
