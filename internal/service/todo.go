package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/todoweb/todoweb/internal/logger"
	"github.com/todoweb/todoweb/internal/model"
)

// PageSize is the fixed number of todos per list page.
const PageSize = 10

// Todo provides owner-scoped operations on a user's todos. Every mutation
// takes the owner id; a todo owned by someone else is indistinguishable
// from one that does not exist.
type Todo struct {
	todoStore model.TodoStore
	logger    *logger.Logger
}

// NewTodo creates a new Todo service.
func NewTodo(todoStore model.TodoStore, logger *logger.Logger) *Todo {
	return &Todo{
		todoStore: todoStore,
		logger:    logger,
	}
}

// List returns one page of the owner's todos ordered by id ascending.
// HasNext is derived from the total count so the last page reports it
// correctly even when it is exactly full.
func (s *Todo) List(ctx context.Context, ownerID int64, page int) (model.TodoPage, error) {
	if page < 1 {
		page = 1
	}

	items, err := s.todoStore.ListByOwner(ctx, ownerID, PageSize, (page-1)*PageSize)
	if err != nil {
		return model.TodoPage{}, fmt.Errorf("failed to list todos: %w", err)
	}

	total, err := s.todoStore.CountByOwner(ctx, ownerID)
	if err != nil {
		return model.TodoPage{}, fmt.Errorf("failed to count todos: %w", err)
	}

	return model.TodoPage{
		Items:   items,
		Page:    page,
		Total:   total,
		HasNext: page*PageSize < total,
		HasPrev: page > 1,
	}, nil
}

// Add validates the title and creates a new incomplete todo for the owner.
func (s *Todo) Add(ctx context.Context, ownerID int64, title string) (model.Todo, error) {
	if err := validateTitle(title); err != nil {
		return model.Todo{}, err
	}

	todo, err := s.todoStore.Create(ctx, model.Todo{
		OwnerID:   ownerID,
		Title:     title,
		Completed: false,
	})
	if err != nil {
		s.logger.Error("Todo service: failed to create todo",
			"owner_id", ownerID,
			"error", err.Error())
		return model.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	s.logger.Info("Todo service: todo created",
		"todo_id", todo.ID,
		"owner_id", ownerID)

	return todo, nil
}

// Toggle flips the completed flag and returns its new value. Concurrent
// toggles race last-write-wins, which is acceptable here.
func (s *Todo) Toggle(ctx context.Context, ownerID, todoID int64) (bool, error) {
	todo, err := s.getOwned(ctx, ownerID, todoID)
	if err != nil {
		return false, err
	}

	completed := !todo.Completed
	if err := s.todoStore.SetCompleted(ctx, todoID, ownerID, completed); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, model.ErrNotFound
		}
		return false, fmt.Errorf("failed to toggle todo: %w", err)
	}

	return completed, nil
}

// UpdateTitle validates the new title and persists it.
func (s *Todo) UpdateTitle(ctx context.Context, ownerID, todoID int64, title string) error {
	if err := validateTitle(title); err != nil {
		return err
	}

	if err := s.todoStore.UpdateTitle(ctx, todoID, ownerID, title); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to update todo title: %w", err)
	}

	return nil
}

// Delete removes the todo permanently.
func (s *Todo) Delete(ctx context.Context, ownerID, todoID int64) error {
	if err := s.todoStore.Delete(ctx, todoID, ownerID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	s.logger.Info("Todo service: todo deleted",
		"todo_id", todoID,
		"owner_id", ownerID)

	return nil
}

func (s *Todo) getOwned(ctx context.Context, ownerID, todoID int64) (model.Todo, error) {
	todo, err := s.todoStore.GetByID(ctx, todoID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Todo{}, model.ErrNotFound
	}
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to get todo by id: %w", err)
	}
	if todo.OwnerID != ownerID {
		return model.Todo{}, model.ErrNotFound
	}
	return todo, nil
}

func validateTitle(title string) error {
	fieldErrs := model.FieldErrors{}
	switch {
	case strings.TrimSpace(title) == "":
		fieldErrs.Add("title", "title is required")
	case len(title) > 255:
		fieldErrs.Add("title", "title must be 255 characters or fewer")
	}
	if len(fieldErrs) > 0 {
		return fieldErrs
	}
	return nil
}
