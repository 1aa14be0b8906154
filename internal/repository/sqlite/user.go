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

// UserStore is the user-rows view of the database.
type UserStore struct {
	conn *sql.DB
}

// compile-time check that *UserStore implements repository.UserRepository
var _ repository.UserRepository = (*UserStore)(nil)

// Create inserts a new user row, generating a v4 UUID id and writing it back
// into the passed model. Email uniqueness is NOT enforced here — the service
// layer pre-checks with GetByEmail (see the package comment on the race).
func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	user.ID = uuid.NewString()

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO users (id, firstname, lastname, email, password)
		 VALUES (?, ?, ?, ?, ?)`,
		user.ID,
		user.Firstname,
		user.Lastname,
		user.Email,
		user.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user (email=%s): %w", user.Email, err)
	}

	return nil
}

// GetByID retrieves a user by primary key.
// Returns a wrapped apperror.ErrNotFound on zero rows.
func (s *UserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.getUser(ctx,
		`SELECT id, firstname, lastname, email, password FROM users WHERE id = ?`, id)
}

// GetByEmail retrieves a user by email. Email is unique by convention
// (enforced at registration), so the first row is the row.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUser(ctx,
		`SELECT id, firstname, lastname, email, password FROM users WHERE email = ?`, email)
}

func (s *UserStore) getUser(ctx context.Context, query, arg string) (*model.User, error) {
	var u model.User
	err := s.conn.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Firstname,
		&u.Lastname,
		&u.Email,
		&u.PasswordHash,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("this user not exists")
		}
		return nil, fmt.Errorf("sqlite: getting user: %w", err)
	}
	return &u, nil
}

// Update rewrites every mutable column from the passed model. Partial-update
// semantics (only supplied fields change) are the service's job: it fetches
// the row, overlays the supplied fields, and hands the merged record here.
func (s *UserStore) Update(ctx context.Context, user *model.User) error {
	_, err := s.conn.ExecContext(ctx,
		`UPDATE users SET firstname = ?, lastname = ?, email = ?, password = ?
		 WHERE id = ?`,
		user.Firstname,
		user.Lastname,
		user.Email,
		user.PasswordHash,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating user %s: %w", user.ID, err)
	}
	return nil
}

// Delete removes a user row. Deleting an absent id is not an error — the
// statement simply affects zero rows, and callers treat that as success.
// Tasks owned by the user are left in place (no cascade).
func (s *UserStore) Delete(ctx context.Context, id string) error {
	_, err := s.conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %s: %w", id, err)
	}
	return nil
}

// ListWithTasks returns every user with their tasks, assembled from the
// LEFT OUTER JOIN. Users with no tasks appear with an empty task list.
func (s *UserStore) ListWithTasks(ctx context.Context) ([]model.UserTasks, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT users.id, users.firstname, users.lastname, users.email, users.password,
		        tasks.id, tasks.name, tasks.completed
		 FROM users LEFT OUTER JOIN tasks ON tasks.user_id = users.id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users with tasks: %w", err)
	}
	defer rows.Close()

	flat, err := scanUserTaskRows(rows)
	if err != nil {
		return nil, fmt.Errorf("sqlite: scanning user rows: %w", err)
	}

	return assembleUserTasks(flat), nil
}

// GetWithTasks returns one user with their tasks, or a wrapped
// apperror.ErrNotFound if the join produced no rows.
func (s *UserStore) GetWithTasks(ctx context.Context, id string) (*model.UserTasks, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT users.id, users.firstname, users.lastname, users.email, users.password,
		        tasks.id, tasks.name, tasks.completed
		 FROM users LEFT OUTER JOIN tasks ON tasks.user_id = users.id
		 WHERE users.id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting user %s with tasks: %w", id, err)
	}
	defer rows.Close()

	flat, err := scanUserTaskRows(rows)
	if err != nil {
		return nil, fmt.Errorf("sqlite: scanning user rows: %w", err)
	}

	assembled := assembleUserTasks(flat)
	if len(assembled) == 0 {
		return nil, apperror.NotFound("this user is not exists")
	}

	return &assembled[0], nil
}
