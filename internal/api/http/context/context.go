package context

import (
	"context"

	"github.com/todoweb/todoweb/internal/model"
)

type contextKey int

// userKey is the context key under which the authenticated user is stored.
const userKey contextKey = iota

// Manager represents an HTTP request context manager for the authenticated
// user. The user is placed into the context by the authenticate middleware
// and read back by handlers.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserToContext returns a child context carrying the authenticated user.
func (m *Manager) SetUserToContext(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext retrieves the authenticated user from the context.
func (m *Manager) GetUserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}
