package model

import (
	"context"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a registered user. PasswordHash is the only stored
// credential material, the plaintext password never leaves the auth flow.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
}
