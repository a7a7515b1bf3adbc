package router

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/todoweb/todoweb/internal/api/http/handler"
	"github.com/todoweb/todoweb/internal/api/http/middleware"
	"github.com/todoweb/todoweb/internal/logger"
	"github.com/todoweb/todoweb/internal/model"
	"github.com/todoweb/todoweb/web"
)

// Router wires handlers and middleware into the HTTP route table.
type Router struct {
	authService    handler.AuthService
	todoService    handler.TodoService
	sessionGate    middleware.SessionGate
	contextManager model.ContextManager
	renderer       *web.Renderer
	secureCookie   bool
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	todoService handler.TodoService,
	sessionGate middleware.SessionGate,
	contextManager model.ContextManager,
	renderer *web.Renderer,
	secureCookie bool,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		todoService:    todoService,
		sessionGate:    sessionGate,
		contextManager: contextManager,
		renderer:       renderer,
		secureCookie:   secureCookie,
		logger:         logger,
	}
}

// Register builds the route table. Auth pages are open, the todo subtree is
// behind the authenticate middleware, everything is behind request logging.
func (r *Router) Register() *mux.Router {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.sessionGate, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.renderer, r.secureCookie, r.logger)
	todoHandler := handler.NewTodo(r.todoService, r.contextManager, r.renderer, r.logger)

	m := mux.NewRouter()
	m.Use(logging.Handle)

	m.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)

	m.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/todos", http.StatusSeeOther)
	}).Methods(http.MethodGet)

	m.HandleFunc("/signup", authHandler.ShowSignup).Methods(http.MethodGet)
	m.HandleFunc("/signup", authHandler.Signup).Methods(http.MethodPost)
	m.HandleFunc("/login", authHandler.ShowLogin).Methods(http.MethodGet)
	m.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	m.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	todos := m.PathPrefix("/todos").Subrouter()
	todos.Use(authenticate.Handle)
	todos.HandleFunc("", todoHandler.List).Methods(http.MethodGet)
	todos.HandleFunc("", todoHandler.Add).Methods(http.MethodPost)
	todos.HandleFunc("/{id:[0-9]+}/toggle", todoHandler.Toggle).Methods(http.MethodPost)
	todos.HandleFunc("/{id:[0-9]+}/title", todoHandler.UpdateTitle).Methods(http.MethodPost)
	todos.HandleFunc("/{id:[0-9]+}/delete", todoHandler.Delete).Methods(http.MethodPost)

	return m
}
