package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/todoweb/todoweb/internal/api/http/session"
	"github.com/todoweb/todoweb/internal/logger"
	"github.com/todoweb/todoweb/internal/model"
)

// SessionGate resolves the current user from a session token.
type SessionGate interface {
	CurrentUser(ctx context.Context, token string) (model.User, error)
}

// Authenticate guards protected routes: it resolves the session cookie to a
// user and injects it into the request context, or redirects anonymous
// requests to the login page.
type Authenticate struct {
	gate           SessionGate
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(gate SessionGate, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{gate: gate, contextManager: contextManager, logger: logger}
}

// Handle reads the session cookie, resolves the user and passes the request
// on with the user in context. Unauthenticated requests are redirected, not
// failed, so an expired session lands on the login form.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.gate.CurrentUser(r.Context(), session.Token(r))
		if errors.Is(err, model.ErrUnauthenticated) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err != nil {
			m.logger.Error("Authenticate middleware: failed to resolve user",
				"path", r.URL.Path,
				"error", err.Error())
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		ctx := m.contextManager.SetUserToContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
