package domain

import "time"

// User represents a registered portfolio owner. Users are created at
// registration and never mutated or deleted through this API.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Identity is the decoded claim set of a verified bearer token, attached to
// the request context by the auth middleware.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
