package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/todoweb/todoweb/internal/logger"
	"github.com/todoweb/todoweb/internal/model"
)

// SessionGate resolves the current user from an inbound session token. It
// is the single authentication gate: every protected page and mutation goes
// through CurrentUser first.
type SessionGate struct {
	userStore    model.UserStore
	tokenManager model.TokenManager
	logger       *logger.Logger
}

// NewSessionGate creates a new SessionGate.
func NewSessionGate(userStore model.UserStore, tokenManager model.TokenManager, logger *logger.Logger) *SessionGate {
	return &SessionGate{
		userStore:    userStore,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// CurrentUser verifies the token and re-reads the referenced user. The
// token carries only the id, so the returned record is always a fresh read.
// An absent or invalid token, or a user that no longer exists, yields
// model.ErrUnauthenticated.
func (g *SessionGate) CurrentUser(ctx context.Context, tokenString string) (model.User, error) {
	if tokenString == "" {
		return model.User{}, model.ErrUnauthenticated
	}

	userID, err := g.tokenManager.Parse(tokenString)
	if err != nil {
		return model.User{}, model.ErrUnauthenticated
	}

	user, err := g.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		g.logger.Info("Session gate: token references missing user",
			"user_id", userID)
		return model.User{}, model.ErrUnauthenticated
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}
