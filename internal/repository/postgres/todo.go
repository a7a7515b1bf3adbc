package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/todoweb/todoweb/internal/model"
)

var _ model.TodoStore = (*TodoRepository)(nil)

type TodoRepository struct {
	db *Connection
}

func NewTodoRepository(db *Connection) *TodoRepository {
	return &TodoRepository{
		db: db,
	}
}

func (r *TodoRepository) GetByID(ctx context.Context, id int64) (model.Todo, error) {
	var todo model.Todo
	var completed int
	query := `SELECT id, user_id, title, completed FROM todos WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&todo.ID, &todo.OwnerID, &todo.Title, &completed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Todo{}, model.ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to get todo by id: %w", err)
	}

	todo.Completed = completed != 0
	return todo, nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]model.Todo, error) {
	query := `SELECT id, user_id, title, completed
			  FROM todos
			  WHERE user_id = $1
			  ORDER BY id ASC
			  LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		var todo model.Todo
		var completed int
		if err := rows.Scan(&todo.ID, &todo.OwnerID, &todo.Title, &completed); err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todo.Completed = completed != 0
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return todos, nil
}

func (r *TodoRepository) CountByOwner(ctx context.Context, ownerID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM todos WHERE user_id = $1`

	if err := r.db.QueryRow(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count todos: %w", err)
	}

	return count, nil
}

func (r *TodoRepository) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	query := `INSERT INTO todos (user_id, title, completed)
			  VALUES ($1, $2, $3)
			  RETURNING id, user_id, title, completed`

	var savedTodo model.Todo
	var completed int
	err := r.db.QueryRow(ctx, query,
		todo.OwnerID, todo.Title, boolToInt(todo.Completed),
	).Scan(
		&savedTodo.ID, &savedTodo.OwnerID, &savedTodo.Title, &completed,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	savedTodo.Completed = completed != 0
	return savedTodo, nil
}

func (r *TodoRepository) UpdateTitle(ctx context.Context, id, ownerID int64, title string) error {
	query := `UPDATE todos SET title = $1 WHERE id = $2 AND user_id = $3`

	cmd, err := r.db.Exec(ctx, query, title, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to update todo title: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *TodoRepository) SetCompleted(ctx context.Context, id, ownerID int64, completed bool) error {
	query := `UPDATE todos SET completed = $1 WHERE id = $2 AND user_id = $3`

	cmd, err := r.db.Exec(ctx, query, boolToInt(completed), id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to update todo completed flag: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id, ownerID int64) error {
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2`

	cmd, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// completed persists as 0/1, the representation the schema inherited.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
