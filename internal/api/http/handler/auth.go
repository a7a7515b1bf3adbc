package handler

import (
	"context"
	"net/http"

	"github.com/todoweb/todoweb/internal/api/http/session"
	"github.com/todoweb/todoweb/internal/logger"
	"github.com/todoweb/todoweb/internal/service"
	"github.com/todoweb/todoweb/web"
)

// AuthService defines the signup and login flows.
type AuthService interface {
	Signup(ctx context.Context, params service.SignupParams) (service.Session, error)
	Login(ctx context.Context, email, password string) (service.Session, error)
}

// Auth handles the signup, login and logout endpoints.
type Auth struct {
	authService  AuthService
	renderer     *web.Renderer
	secureCookie bool
	logger       *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, renderer *web.Renderer, secureCookie bool, logger *logger.Logger) *Auth {
	return &Auth{
		authService:  authService,
		renderer:     renderer,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

type authPageData struct {
	Form web.Form
}

// ShowSignup renders the empty signup form.
func (h *Auth) ShowSignup(w http.ResponseWriter, r *http.Request) {
	h.render(w, "signup.html", authPageData{Form: web.NewForm()})
}

// Signup runs the signup flow. Success sets the session cookie and
// redirects to the todo list, failure re-renders the form with the
// submitted values and errors.
func (h *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	params := service.SignupParams{
		Name:            r.PostFormValue("name"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	established, err := h.authService.Signup(r.Context(), params)
	if err != nil {
		form := web.NewForm()
		form.Values["name"] = params.Name
		form.Values["email"] = params.Email
		formStateFromError(&form, err)
		h.render(w, "signup.html", authPageData{Form: form})
		return
	}

	session.Set(w, established.Token, established.ExpiresAt, h.secureCookie)
	http.Redirect(w, r, "/todos", http.StatusSeeOther)
}

// ShowLogin renders the empty login form.
func (h *Auth) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login.html", authPageData{Form: web.NewForm()})
}

// Login runs the login flow.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("email")
	established, err := h.authService.Login(r.Context(), email, r.PostFormValue("password"))
	if err != nil {
		form := web.NewForm()
		form.Values["email"] = email
		formStateFromError(&form, err)
		h.render(w, "login.html", authPageData{Form: form})
		return
	}

	session.Set(w, established.Token, established.ExpiresAt, h.secureCookie)
	http.Redirect(w, r, "/todos", http.StatusSeeOther)
}

// Logout clears the session cookie and redirects to the login page. There
// is no precondition, an anonymous logout is a no-op redirect.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w, h.secureCookie)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Auth) render(w http.ResponseWriter, name string, data authPageData) {
	if err := h.renderer.Render(w, name, data); err != nil {
		h.logger.Error("Auth handler: failed to render page",
			"template", name,
			"error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
