package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/todoweb/todoweb/internal/api/http/context"
	"github.com/todoweb/todoweb/internal/model"
	"github.com/todoweb/todoweb/internal/testutil"
	"github.com/todoweb/todoweb/web"
)

// MockTodoService mocks the TodoService interface
type MockTodoService struct {
	mock.Mock
}

func (m *MockTodoService) List(ctx context.Context, ownerID int64, page int) (model.TodoPage, error) {
	args := m.Called(ctx, ownerID, page)
	return args.Get(0).(model.TodoPage), args.Error(1)
}

func (m *MockTodoService) Add(ctx context.Context, ownerID int64, title string) (model.Todo, error) {
	args := m.Called(ctx, ownerID, title)
	return args.Get(0).(model.Todo), args.Error(1)
}

func (m *MockTodoService) Toggle(ctx context.Context, ownerID, todoID int64) (bool, error) {
	args := m.Called(ctx, ownerID, todoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTodoService) UpdateTitle(ctx context.Context, ownerID, todoID int64, title string) error {
	args := m.Called(ctx, ownerID, todoID, title)
	return args.Error(0)
}

func (m *MockTodoService) Delete(ctx context.Context, ownerID, todoID int64) error {
	args := m.Called(ctx, ownerID, todoID)
	return args.Error(0)
}

var ctxMgr = httpctx.NewManager()

func newTodoHandler(t *testing.T, todoService TodoService) *Todo {
	t.Helper()
	renderer, err := web.NewRenderer()
	require.NoError(t, err)
	return NewTodo(todoService, ctxMgr, renderer, testutil.MakeNoopLogger())
}

func authedRequest(r *http.Request, user model.User) *http.Request {
	return r.WithContext(ctxMgr.SetUserToContext(r.Context(), user))
}

func withVars(r *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(r, vars)
}

func TestTodo_List_RendersItems(t *testing.T) {
	todoService := &MockTodoService{}
	todoService.On("List", mock.Anything, int64(1), 1).Return(model.TodoPage{
		Items: []model.Todo{
			{ID: 1, OwnerID: 1, Title: "buy milk", Completed: false},
			{ID: 2, OwnerID: 1, Title: "walk the dog", Completed: true},
		},
		Page:  1,
		Total: 2,
	}, nil)

	h := newTodoHandler(t, todoService)

	w := httptest.NewRecorder()
	r := authedRequest(httptest.NewRequest(http.MethodGet, "/todos", nil), model.User{ID: 1, Name: "Alice"})
	h.List(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "buy milk")
	assert.Contains(t, w.Body.String(), "walk the dog")
	assert.Contains(t, w.Body.String(), "Alice")
}

func TestTodo_List_PageQuery(t *testing.T) {
	todoService := &MockTodoService{}
	todoService.On("List", mock.Anything, int64(1), 3).
		Return(model.TodoPage{Page: 3, Total: 25, HasPrev: true}, nil)

	h := newTodoHandler(t, todoService)

	w := httptest.NewRecorder()
	r := authedRequest(httptest.NewRequest(http.MethodGet, "/todos?page=3", nil), model.User{ID: 1})
	h.List(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	todoService.AssertCalled(t, "List", mock.Anything, int64(1), 3)
}

func TestTodo_Add_Redirects(t *testing.T) {
	todoService := &MockTodoService{}
	todoService.On("Add", mock.Anything, int64(1), "buy milk").
		Return(model.Todo{ID: 5, OwnerID: 1, Title: "buy milk"}, nil)

	h := newTodoHandler(t, todoService)

	w := httptest.NewRecorder()
	r := authedRequest(postForm("/todos", url.Values{"title": {"buy milk"}}), model.User{ID: 1})
	h.Add(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/todos", w.Header().Get("Location"))
}

func TestTodo_Add_ValidationRendersFieldError(t *testing.T) {
	todoService := &MockTodoService{}
	todoService.On("Add", mock.Anything, int64(1), "").
		Return(model.Todo{}, model.FieldErrors{"title": {"title is required"}})
	todoService.On("List", mock.Anything, int64(1), 1).Return(model.TodoPage{Page: 1}, nil)

	h := newTodoHandler(t, todoService)

	w := httptest.NewRecorder()
	r := authedRequest(postForm("/todos", url.Values{"title": {""}}), model.User{ID: 1})
	h.Add(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "title is required")
}

func TestTodo_Toggle_Redirects(t *testing.T) {
	todoService := &MockTodoService{}
	todoService.On("Toggle", mock.Anything, int64(1), int64(5)).Return(true, nil)

	h := newTodoHandler(t, todoService)

	w := httptest.NewRecorder()
	r := authedRequest(httptest.NewRequest(http.MethodPost, "/todos/5/toggle", nil), model.User{ID: 1})
	h.Toggle(w, withVars(r, map[string]string{"id": "5"}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/todos", w.Header().Get("Location"))
}

func TestTodo_Toggle_NotFoundSilentlyRedirects(t *testing.T) {
	todoService := &MockTodoService{}
	todoService.On("Toggle", mock.Anything, int64(1), int64(99)).Return(false, model.ErrNotFound)

	h := newTodoHandler(t, todoService)

	w := httptest.NewRecorder()
	r := authedRequest(httptest.NewRequest(http.MethodPost, "/todos/99/toggle", nil), model.User{ID: 1})
	h.Toggle(w, withVars(r, map[string]string{"id": "99"}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/todos", w.Header().Get("Location"))
}

func TestTodo_UpdateTitle_Redirects(t *testing.T) {
	todoService := &MockTodoService{}
	todoService.On("UpdateTitle", mock.Anything, int64(1), int64(5), "renamed").Return(nil)

	h := newTodoHandler(t, todoService)

	w := httptest.NewRecorder()
	r := authedRequest(postForm("/todos/5/title", url.Values{"title": {"renamed"}}), model.User{ID: 1})
	h.UpdateTitle(w, withVars(r, map[string]string{"id": "5"}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/todos", w.Header().Get("Location"))
}

func TestTodo_UpdateTitle_ValidationRendersFieldError(t *testing.T) {
	todoService := &MockTodoService{}
	todoService.On("UpdateTitle", mock.Anything, int64(1), int64(5), "").
		Return(model.FieldErrors{"title": {"title is required"}})
	todoService.On("List", mock.Anything, int64(1), 1).Return(model.TodoPage{Page: 1}, nil)

	h := newTodoHandler(t, todoService)

	w := httptest.NewRecorder()
	r := authedRequest(postForm("/todos/5/title", url.Values{"title": {""}}), model.User{ID: 1})
	h.UpdateTitle(w, withVars(r, map[string]string{"id": "5"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "title is required")
}

func TestTodo_Delete_Redirects(t *testing.T) {
	todoService := &MockTodoService{}
	todoService.On("Delete", mock.Anything, int64(1), int64(5)).Return(nil)

	h := newTodoHandler(t, todoService)

	w := httptest.NewRecorder()
	r := authedRequest(httptest.NewRequest(http.MethodPost, "/todos/5/delete", nil), model.User{ID: 1})
	h.Delete(w, withVars(r, map[string]string{"id": "5"}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/todos", w.Header().Get("Location"))
}

func TestTodo_Delete_NotFoundSilentlyRedirects(t *testing.T) {
	todoService := &MockTodoService{}
	todoService.On("Delete", mock.Anything, int64(1), int64(99)).Return(model.ErrNotFound)

	h := newTodoHandler(t, todoService)

	w := httptest.NewRecorder()
	r := authedRequest(httptest.NewRequest(http.MethodPost, "/todos/99/delete", nil), model.User{ID: 1})
	h.Delete(w, withVars(r, map[string]string{"id": "99"}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/todos", w.Header().Get("Location"))
}

func TestTodo_List_NoUserInContext(t *testing.T) {
	h := newTodoHandler(t, &MockTodoService{})

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/todos", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
