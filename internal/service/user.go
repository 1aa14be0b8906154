package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/taskboard/internal/apperror"
	"github.com/sakif/taskboard/internal/model"
	"github.com/sakif/taskboard/internal/repository"
)

// UserService owns user listing, partial update, and deletion. Registration
// and login live on AuthService.
type UserService struct {
	users     repository.UserRepository
	passwords passwordHasher
	logger    *slog.Logger
}

// passwordHasher is the one capability UserService needs from the password
// service. Declaring the interface at the point of use (Go convention:
// "accept interfaces, return structs") keeps the dependency minimal and
// trivially fakeable in tests.
type passwordHasher interface {
	Hash(plaintext string) (string, error)
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository, passwords passwordHasher, logger *slog.Logger) *UserService {
	return &UserService{users: users, passwords: passwords, logger: logger}
}

// UserUpdate carries the optional fields of a partial update. nil means
// "leave unchanged" — an empty string is a legitimate new value, which is
// why these are pointers and not zero-value checks.
type UserUpdate struct {
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

func (u UserUpdate) empty() bool {
	return u.Firstname == nil && u.Lastname == nil && u.Email == nil && u.Password == nil
}

// ListAll returns every user with their assembled task lists. This endpoint
// is public — redaction happens in the view layer, not here.
func (s *UserService) ListAll(ctx context.Context) ([]model.UserTasks, error) {
	users, err := s.users.ListWithTasks(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// GetWithTasks returns one user with their tasks. Absence surfaces as
// "this user is not exists" (the variant message this endpoint has always
// used, distinct from the resolver's "this user not exists").
func (s *UserService) GetWithTasks(ctx context.Context, id string) (*model.UserTasks, error) {
	return s.users.GetWithTasks(ctx, id)
}

// Update applies a partial update: only supplied fields change.
//
// Order matters and is part of the contract: the existence check runs
// BEFORE the no-fields check, so updating a vanished user reports
// "this user not exists" even when the body is empty. A supplied password
// is re-hashed; the other fields are stored as given.
func (s *UserService) Update(ctx context.Context, id string, upd UserUpdate) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if upd.empty() {
		return apperror.ValidationFailed("data invalid")
	}

	if upd.Firstname != nil {
		user.Firstname = *upd.Firstname
	}
	if upd.Lastname != nil {
		user.Lastname = *upd.Lastname
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.Password != nil {
		hash, err := s.passwords.Hash(*upd.Password)
		if err != nil {
			return fmt.Errorf("hashing new password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("failed to update user",
			slog.String("userID", id),
			slog.String("error", err.Error()),
		)
		return apperror.StorageFailed("error on update user")
	}

	s.logger.Info("user updated", slog.String("userID", id))
	return nil
}

// Delete removes a user row. No existence pre-check and no cascade: deleting
// an absent user still succeeds, and tasks the user owned stay behind with a
// dangling owner id. Both inherited behaviors.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user",
			slog.String("userID", id),
			slog.String("error", err.Error()),
		)
		return apperror.StorageFailed("error on delete this user")
	}

	s.logger.Info("user deleted", slog.String("userID", id))
	return nil
}
