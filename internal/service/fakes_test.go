package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/sakif/taskboard/internal/apperror"
	"github.com/sakif/taskboard/internal/model"
)

// fakeUserRepo is an in-memory UserRepository keyed by id, with the same
// not-found messages as the sqlite implementation.
type fakeUserRepo struct {
	users   map[string]*model.User
	nextID  int
	failAll error // when set, every call returns this
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if f.failAll != nil {
		return f.failAll
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("this user not exists")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("this user not exists")
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	if f.failAll != nil {
		return f.failAll
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if f.failAll != nil {
		return f.failAll
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) ListWithTasks(_ context.Context) ([]model.UserTasks, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := []model.UserTasks{}
	for _, u := range f.users {
		out = append(out, model.UserTasks{User: *u, Tasks: []model.Task{}})
	}
	return out, nil
}

func (f *fakeUserRepo) GetWithTasks(_ context.Context, id string) (*model.UserTasks, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("this user is not exists")
	}
	return &model.UserTasks{User: *u, Tasks: []model.Task{}}, nil
}

// fakeTaskRepo is an in-memory TaskRepository preserving insertion order.
type fakeTaskRepo struct {
	tasks   []*model.Task
	nextID  int
	users   *fakeUserRepo // for the owner row in ListByOwner
	failAll error
}

func newFakeTaskRepo(users *fakeUserRepo) *fakeTaskRepo {
	return &fakeTaskRepo{users: users}
}

func (f *fakeTaskRepo) Create(_ context.Context, task *model.Task) error {
	if f.failAll != nil {
		return f.failAll
	}
	f.nextID++
	task.ID = fmt.Sprintf("task-%d", f.nextID)
	cp := *task
	f.tasks = append(f.tasks, &cp)
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id string) (*model.Task, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	for _, t := range f.tasks {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("this task not exists")
}

func (f *fakeTaskRepo) ListByOwner(ctx context.Context, userID string) ([]model.TaskOwner, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	owner, err := f.users.GetByID(ctx, userID)
	if err != nil {
		return []model.TaskOwner{}, nil
	}
	out := []model.TaskOwner{}
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, model.TaskOwner{Task: *t, Owner: *owner})
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *model.Task) error {
	if f.failAll != nil {
		return f.failAll
	}
	for i, t := range f.tasks {
		if t.ID == task.ID {
			cp := *task
			f.tasks[i] = &cp
			return nil
		}
	}
	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if f.failAll != nil {
		return f.failAll
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strptr(s string) *string { return &s }

func boolptr(b bool) *bool { return &b }
