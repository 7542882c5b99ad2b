package domain

import "time"

// User represents a registered account of the marketplace.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the verified claim resolved from a session credential.
// It is derived on every request and never persisted.
type Identity struct {
	UserID int64
	Email  string
}
