package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/todoweb/todoweb/internal/logger"
	"github.com/todoweb/todoweb/internal/model"
)

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hashed string) bool
}

// Auth orchestrates signup, login and logout. Both flows end in an issued
// session token; logout has no server-side state to clear because sessions
// live entirely in the token.
type Auth struct {
	userStore    model.UserStore
	hasher       PasswordHasher
	tokenManager model.TokenManager
	logger       *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(
	userStore model.UserStore,
	hasher PasswordHasher,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// SignupParams carries the signup form input.
type SignupParams struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Session is an established session: the signed token, its expiry and the
// user it references.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      model.User
}

// Signup validates the input, rejects duplicate emails, hashes the password
// and creates the user, then issues a session for it.
func (a *Auth) Signup(ctx context.Context, params SignupParams) (Session, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Email = strings.TrimSpace(params.Email)

	fieldErrs := model.FieldErrors{}
	validateName(fieldErrs, params.Name)
	validateEmail(fieldErrs, params.Email)
	validatePassword(fieldErrs, params.Password)
	if params.ConfirmPassword != params.Password {
		fieldErrs.Add("confirm_password", "passwords do not match")
	}
	if len(fieldErrs) > 0 {
		return Session{}, fieldErrs
	}

	existingUser, err := a.userStore.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", params.Email,
			"error", err.Error())
		return Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if existingUser.ID != 0 {
		a.logger.Info("Auth service: email already registered",
			"email", params.Email)
		return Session{}, model.ErrDuplicateEmail
	}

	passwordHash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		// The uniqueness pre-check is racy, a concurrent signup can still
		// trip the constraint here.
		if errors.Is(err, model.ErrDuplicateEmail) {
			return Session{}, model.ErrDuplicateEmail
		}
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"user_id", user.ID,
		"email", user.Email)

	return a.issueSession(user)
}

// Login verifies the credentials and issues a session. Lookup is an exact,
// case-sensitive email match.
func (a *Auth) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)

	fieldErrs := model.FieldErrors{}
	validateEmail(fieldErrs, email)
	if password == "" {
		fieldErrs.Add("password", "password is required")
	}
	if len(fieldErrs) > 0 {
		return Session{}, fieldErrs
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return Session{}, model.ErrUnknownEmail
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		a.logger.Info("Auth service: password mismatch",
			"user_id", user.ID)
		return Session{}, model.ErrInvalidPassword
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID)

	return a.issueSession(user)
}

func (a *Auth) issueSession(user model.User) (Session, error) {
	tokenString, expiresAt, err := a.tokenManager.Issue(user.ID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to issue session token: %w", err)
	}
	return Session{Token: tokenString, ExpiresAt: expiresAt, User: user}, nil
}

func validateName(fieldErrs model.FieldErrors, name string) {
	switch {
	case name == "":
		fieldErrs.Add("name", "name is required")
	case len(name) > 255:
		fieldErrs.Add("name", "name must be 255 characters or fewer")
	}
}

func validateEmail(fieldErrs model.FieldErrors, email string) {
	switch {
	case email == "":
		fieldErrs.Add("email", "email is required")
	case len(email) > 255:
		fieldErrs.Add("email", "email must be 255 characters or fewer")
	default:
		if _, err := mail.ParseAddress(email); err != nil {
			fieldErrs.Add("email", "email is not a valid address")
		}
	}
}

func validatePassword(fieldErrs model.FieldErrors, password string) {
	switch {
	case password == "":
		fieldErrs.Add("password", "password is required")
	case len(password) < 8:
		fieldErrs.Add("password", "password must be at least 8 characters")
	case len(password) > 100:
		fieldErrs.Add("password", "password must be 100 characters or fewer")
	}
}
