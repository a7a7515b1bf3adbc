package model

import (
	"context"
)

// TodoStore defines persistence operations for todos. Mutations take the
// owner id and match it in the query, so a foreign todo behaves like a
// missing one.
type TodoStore interface {
	GetByID(ctx context.Context, id int64) (Todo, error)
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]Todo, error)
	CountByOwner(ctx context.Context, ownerID int64) (int, error)
	Create(ctx context.Context, todo Todo) (Todo, error)
	UpdateTitle(ctx context.Context, id, ownerID int64, title string) error
	SetCompleted(ctx context.Context, id, ownerID int64, completed bool) error
	Delete(ctx context.Context, id, ownerID int64) error
}

// Todo represents a single task owned by exactly one user.
type Todo struct {
	ID        int64
	OwnerID   int64
	Title     string
	Completed bool
}

// TodoPage is one page of a user's todo list.
type TodoPage struct {
	Items   []Todo
	Page    int
	Total   int
	HasNext bool
	HasPrev bool
}
