package model

import "context"

// ContextManager moves the authenticated user between middleware and
// handlers through the request context.
type ContextManager interface {
	SetUserToContext(ctx context.Context, user User) context.Context
	GetUserFromContext(ctx context.Context) (User, bool)
}
