package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/todoweb/todoweb/internal/logger"
	"github.com/todoweb/todoweb/internal/model"
	"github.com/todoweb/todoweb/web"
)

// TodoService defines the owner-scoped todo operations.
type TodoService interface {
	List(ctx context.Context, ownerID int64, page int) (model.TodoPage, error)
	Add(ctx context.Context, ownerID int64, title string) (model.Todo, error)
	Toggle(ctx context.Context, ownerID, todoID int64) (bool, error)
	UpdateTitle(ctx context.Context, ownerID, todoID int64, title string) error
	Delete(ctx context.Context, ownerID, todoID int64) error
}

// Todo handles the todo list page and its mutations. All routes sit behind
// the authenticate middleware, so the current user is always in context.
type Todo struct {
	todoService    TodoService
	contextManager model.ContextManager
	renderer       *web.Renderer
	logger         *logger.Logger
}

// NewTodo creates a new Todo handler.
func NewTodo(todoService TodoService, contextManager model.ContextManager, renderer *web.Renderer, logger *logger.Logger) *Todo {
	return &Todo{
		todoService:    todoService,
		contextManager: contextManager,
		renderer:       renderer,
		logger:         logger,
	}
}

type todoPageData struct {
	User model.User
	Page model.TodoPage
	Form web.Form
}

func (d todoPageData) PrevPage() int { return d.Page.Page - 1 }
func (d todoPageData) NextPage() int { return d.Page.Page + 1 }

// List renders one page of the current user's todos.
func (h *Todo) List(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	todoPage, err := h.todoService.List(r.Context(), user.ID, page)
	if err != nil {
		h.logger.Error("Todo handler: failed to list todos",
			"user_id", user.ID,
			"error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, todoPageData{User: user, Page: todoPage, Form: web.NewForm()})
}

// Add creates a todo from the form and redirects back to the list. A
// validation failure re-renders the list with the field error and the
// submitted title.
func (h *Todo) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	title := r.PostFormValue("title")
	if _, err := h.todoService.Add(r.Context(), user.ID, title); err != nil {
		h.renderListWithError(w, r, user, err, title)
		return
	}

	http.Redirect(w, r, "/todos", http.StatusSeeOther)
}

// Toggle flips the completed flag of one todo.
func (h *Todo) Toggle(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, ownerID, todoID int64) error {
		_, err := h.todoService.Toggle(ctx, ownerID, todoID)
		return err
	})
}

// UpdateTitle replaces the title of one todo.
func (h *Todo) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	todoID, ok := todoIDFromRequest(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	title := r.PostFormValue("title")
	err := h.todoService.UpdateTitle(r.Context(), user.ID, todoID, title)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		h.renderListWithError(w, r, user, err, title)
		return
	}

	// A vanished todo silently no-ops back to the refreshed list.
	http.Redirect(w, r, "/todos", http.StatusSeeOther)
}

// Delete removes one todo.
func (h *Todo) Delete(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.todoService.Delete)
}

func (h *Todo) mutate(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, ownerID, todoID int64) error) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	todoID, ok := todoIDFromRequest(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	err := op(r.Context(), user.ID, todoID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		h.logger.Error("Todo handler: mutation failed",
			"user_id", user.ID,
			"todo_id", todoID,
			"error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/todos", http.StatusSeeOther)
}

func (h *Todo) renderListWithError(w http.ResponseWriter, r *http.Request, user model.User, opErr error, title string) {
	todoPage, err := h.todoService.List(r.Context(), user.ID, 1)
	if err != nil {
		h.logger.Error("Todo handler: failed to re-read list",
			"user_id", user.ID,
			"error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	form := web.NewForm()
	form.Values["title"] = title
	formStateFromError(&form, opErr)
	h.render(w, todoPageData{User: user, Page: todoPage, Form: form})
}

func (h *Todo) render(w http.ResponseWriter, data todoPageData) {
	if err := h.renderer.Render(w, "todos.html", data); err != nil {
		h.logger.Error("Todo handler: failed to render page",
			"error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func todoIDFromRequest(r *http.Request) (int64, bool) {
	raw, ok := mux.Vars(r)["id"]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
