package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/taskboard/internal/apperror"
	"github.com/sakif/taskboard/internal/model"
	"github.com/sakif/taskboard/internal/repository"
)

// TaskService owns task CRUD. Every operation takes the caller's identity
// (set by the auth gate) and starts by re-resolving it against storage —
// see AuthService.ResolveIdentity for why that re-check is mandatory.
type TaskService struct {
	tasks  repository.TaskRepository
	users  repository.UserRepository
	logger *slog.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(tasks repository.TaskRepository, users repository.UserRepository, logger *slog.Logger) *TaskService {
	return &TaskService{tasks: tasks, users: users, logger: logger}
}

// TaskUpdate carries the optional fields of a partial task update.
// nil means "leave unchanged".
type TaskUpdate struct {
	Name      *string `json:"name"`
	Completed *bool   `json:"completed"`
}

// resolveCaller re-checks that the identity still names a stored user.
// Zero rows → "this user not exists", regardless of how valid the token was.
func (s *TaskService) resolveCaller(ctx context.Context, identity string) error {
	_, err := s.users.GetByID(ctx, identity)
	return err
}

// ListForOwner returns the caller's tasks, each with the owner row attached
// for the embedded-owner view.
func (s *TaskService) ListForOwner(ctx context.Context, identity string) ([]model.TaskOwner, error) {
	if err := s.resolveCaller(ctx, identity); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByOwner(ctx, identity)
	if err != nil {
		s.logger.Error("failed to list tasks",
			slog.String("userID", identity),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

// Create inserts a new, uncompleted task owned by the caller. name is a
// pointer because its absence in the request body is a validation failure
// ("data invalid"), distinct from an empty name, which is accepted.
func (s *TaskService) Create(ctx context.Context, identity string, name *string) error {
	if err := s.resolveCaller(ctx, identity); err != nil {
		return err
	}

	if name == nil {
		return apperror.ValidationFailed("data invalid")
	}

	task := &model.Task{
		Name:      *name,
		Completed: 0,
		UserID:    identity,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task",
			slog.String("userID", identity),
			slog.String("error", err.Error()),
		)
		return apperror.StorageFailed("not is possible create this task")
	}

	s.logger.Info("task created",
		slog.String("taskID", task.ID),
		slog.String("userID", identity),
	)
	return nil
}

// Update applies a partial update to a task.
//
// NOTE ON OWNERSHIP: the caller must exist, but nothing verifies the caller
// OWNS the task — any authenticated user can mutate any task. Long-standing
// behavior that clients and tests observe; do not tighten it quietly.
//
// Order is contractual: the task existence check runs before the
// no-fields check, so an empty update on a missing task reports
// "this task not exists", not "data invalid".
func (s *TaskService) Update(ctx context.Context, identity, taskID string, upd TaskUpdate) error {
	if err := s.resolveCaller(ctx, identity); err != nil {
		return err
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if upd.Name == nil && upd.Completed == nil {
		return apperror.ValidationFailed("data invalid")
	}

	if upd.Name != nil {
		task.Name = *upd.Name
	}
	if upd.Completed != nil {
		if *upd.Completed {
			task.Completed = 1
		} else {
			task.Completed = 0
		}
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		s.logger.Error("failed to update task",
			slog.String("taskID", taskID),
			slog.String("error", err.Error()),
		)
		return apperror.StorageFailed("error on update this task")
	}

	s.logger.Info("task updated", slog.String("taskID", taskID))
	return nil
}

// Delete removes a task after confirming it exists. Same ownership caveat
// as Update: any authenticated caller may delete any task.
func (s *TaskService) Delete(ctx context.Context, identity, taskID string) error {
	if err := s.resolveCaller(ctx, identity); err != nil {
		return err
	}

	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		s.logger.Error("failed to delete task",
			slog.String("taskID", taskID),
			slog.String("error", err.Error()),
		)
		return apperror.StorageFailed("error on delete this task")
	}

	s.logger.Info("task deleted", slog.String("taskID", taskID))
	return nil
}
