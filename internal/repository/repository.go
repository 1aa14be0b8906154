// Package repository declares the storage interfaces the service layer
// programs against. The concrete implementation lives in repository/sqlite;
// tests substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/sakif/taskboard/internal/model"
)

// UserRepository is the storage contract for user rows.
//
// GetByEmail and GetByID return apperror.ErrNotFound (wrapped) on zero rows.
// Create generates the id and writes it back into the passed model.
// ListWithTasks and GetWithTasks run the users→tasks LEFT OUTER JOIN and
// return assembled, deduplicated entries (see sqlite/join.go).
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
	ListWithTasks(ctx context.Context) ([]model.UserTasks, error)
	GetWithTasks(ctx context.Context, id string) (*model.UserTasks, error)
}

// TaskRepository is the storage contract for task rows.
//
// ListByOwner joins each task with its owner row for the embedded-owner
// listing. GetByID returns apperror.ErrNotFound (wrapped) on zero rows.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id string) (*model.Task, error)
	ListByOwner(ctx context.Context, userID string) ([]model.TaskOwner, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string) error
}
