package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sakif/taskboard/internal/apperror"
	"github.com/sakif/taskboard/internal/model"
	"github.com/sakif/taskboard/internal/repository"
)

// TaskStore is the task-rows view of the database.
type TaskStore struct {
	conn *sql.DB
}

// compile-time check that *TaskStore implements repository.TaskRepository
var _ repository.TaskRepository = (*TaskStore)(nil)

// Create inserts a new task row, generating a v4 UUID id and writing it back
// into the passed model. UserID is taken on trust: foreign keys are not
// enforced, and the reference is never re-validated after creation.
func (s *TaskStore) Create(ctx context.Context, task *model.Task) error {
	task.ID = uuid.NewString()

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO tasks (id, name, completed, user_id) VALUES (?, ?, ?, ?)`,
		task.ID,
		task.Name,
		task.Completed,
		task.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting task (owner=%s): %w", task.UserID, err)
	}

	return nil
}

// GetByID retrieves a task by primary key.
// Returns a wrapped apperror.ErrNotFound on zero rows.
func (s *TaskStore) GetByID(ctx context.Context, id string) (*model.Task, error) {
	var t model.Task
	err := s.conn.QueryRowContext(ctx,
		`SELECT id, name, completed, user_id FROM tasks WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Completed, &t.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("this task not exists")
		}
		return nil, fmt.Errorf("sqlite: getting task %s: %w", id, err)
	}
	return &t, nil
}

// ListByOwner returns the given user's tasks, each paired with the owner's
// user row from the join. Tasks come back in storage order; each row of this
// join carries exactly one task (the WHERE clause pins one existing user),
// so no assembly pass is needed here.
func (s *TaskStore) ListByOwner(ctx context.Context, userID string) ([]model.TaskOwner, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT tasks.id, tasks.name, tasks.completed, tasks.user_id,
		        users.id, users.firstname, users.lastname, users.email, users.password
		 FROM tasks LEFT OUTER JOIN users ON users.id = tasks.user_id
		 WHERE users.id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing tasks for user %s: %w", userID, err)
	}
	defer rows.Close()

	out := []model.TaskOwner{}
	for rows.Next() {
		var to model.TaskOwner
		if err := rows.Scan(
			&to.Task.ID,
			&to.Task.Name,
			&to.Task.Completed,
			&to.Task.UserID,
			&to.Owner.ID,
			&to.Owner.Firstname,
			&to.Owner.Lastname,
			&to.Owner.Email,
			&to.Owner.PasswordHash,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning task row: %w", err)
		}
		out = append(out, to)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: reading task rows: %w", err)
	}

	return out, nil
}

// Update rewrites the mutable columns (name, completed). Ownership is
// immutable and not part of the statement.
func (s *TaskStore) Update(ctx context.Context, task *model.Task) error {
	_, err := s.conn.ExecContext(ctx,
		`UPDATE tasks SET name = ?, completed = ? WHERE id = ?`,
		task.Name,
		task.Completed,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating task %s: %w", task.ID, err)
	}
	return nil
}

// Delete removes a task row. Zero rows affected is success, as with users.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	_, err := s.conn.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting task %s: %w", id, err)
	}
	return nil
}
