package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/taskboard/internal/apperror"
	"github.com/sakif/taskboard/internal/model"
)

// newTestDB returns a *DB backed by an in-memory database, torn down with
// the test.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(:memory:): %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser inserts a user and fails the test on error.
func createTestUser(t *testing.T, db *DB, firstname, email string) *model.User {
	t.Helper()
	user := &model.User{
		Firstname:    firstname,
		Lastname:     "Tester",
		Email:        email,
		PasswordHash: "$2a$04$fakefakefakefakefakefakefakefakefakefakefakefakefake",
	}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// createTestTask inserts a task for the given owner.
func createTestTask(t *testing.T, db *DB, ownerID, name string, completed int) *model.Task {
	t.Helper()
	task := &model.Task{Name: name, Completed: completed, UserID: ownerID}
	if err := db.Tasks().Create(context.Background(), task); err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

func TestUserCreate(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{
		Firstname:    "Ada",
		Lastname:     "Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "hash",
	}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if user.ID == "" {
		t.Error("Create() did not set user.ID")
	}

	found, err := db.Users().GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByID() after Create: %v", err)
	}
	if found.Email != "ada@example.com" {
		t.Errorf("Email = %q, want ada@example.com", found.Email)
	}
	if found.PasswordHash != "hash" {
		t.Errorf("PasswordHash not stored")
	}
}

func TestUserCreate_DistinctIDs(t *testing.T) {
	db := newTestDB(t)

	a := createTestUser(t, db, "A", "a@example.com")
	b := createTestUser(t, db, "B", "b@example.com")

	if a.ID == b.ID {
		t.Error("two created users share an ID")
	}
}

func TestUserGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Users().GetByID(context.Background(), "missing")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
	if err.Error() != "this user not exists" {
		t.Errorf("message = %q, want %q", err.Error(), "this user not exists")
	}
}

func TestUserGetByEmail(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "Ada", "ada@example.com")

	found, err := db.Users().GetByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %q, want %q", found.ID, created.ID)
	}

	if _, err := db.Users().GetByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByEmail(missing) error = %v, want ErrNotFound", err)
	}
}

func TestUserUpdate(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "Ada", "ada@example.com")

	user.Firstname = "Augusta"
	user.Email = "augusta@example.com"
	if err := db.Users().Update(context.Background(), user); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := db.Users().GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByID() after Update: %v", err)
	}
	if found.Firstname != "Augusta" || found.Email != "augusta@example.com" {
		t.Errorf("update not persisted: %+v", found)
	}
	if found.Lastname != "Tester" {
		t.Errorf("Lastname changed unexpectedly: %q", found.Lastname)
	}
}

func TestUserDelete(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "Ada", "ada@example.com")

	if err := db.Users().Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := db.Users().GetByID(context.Background(), user.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("user still present after Delete")
	}
}

func TestUserDelete_AbsentIDSucceeds(t *testing.T) {
	db := newTestDB(t)

	// Deleting a row that isn't there affects zero rows and is not an error.
	if err := db.Users().Delete(context.Background(), "missing"); err != nil {
		t.Errorf("Delete(missing) error = %v, want nil", err)
	}
}

func TestUserDelete_LeavesTasksBehind(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "Ada", "ada@example.com")
	task := createTestTask(t, db, user.ID, "orphan-to-be", 0)

	if err := db.Users().Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// No cascade: the task survives with a dangling owner id.
	found, err := db.Tasks().GetByID(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("task gone after owner delete: %v", err)
	}
	if found.UserID != user.ID {
		t.Errorf("task owner id = %q, want the deleted user's id", found.UserID)
	}
}

func TestListWithTasks(t *testing.T) {
	db := newTestDB(t)
	busy := createTestUser(t, db, "Busy", "busy@example.com")
	idle := createTestUser(t, db, "Idle", "idle@example.com")
	first := createTestTask(t, db, busy.ID, "first", 0)
	second := createTestTask(t, db, busy.ID, "second", 1)

	got, err := db.Users().ListWithTasks(context.Background())
	if err != nil {
		t.Fatalf("ListWithTasks() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d users, want 2", len(got))
	}

	byID := map[string]model.UserTasks{}
	for _, ut := range got {
		byID[ut.User.ID] = ut
	}

	busyTasks := byID[busy.ID].Tasks
	if len(busyTasks) != 2 {
		t.Fatalf("busy user has %d tasks, want 2", len(busyTasks))
	}
	if busyTasks[0].ID != first.ID || busyTasks[1].ID != second.ID {
		t.Errorf("task order = [%s %s], want insertion order [%s %s]",
			busyTasks[0].ID, busyTasks[1].ID, first.ID, second.ID)
	}

	idleTasks := byID[idle.ID].Tasks
	if idleTasks == nil {
		t.Fatal("idle user's task list is nil, want empty slice")
	}
	if len(idleTasks) != 0 {
		t.Errorf("idle user has %d tasks, want 0", len(idleTasks))
	}
}

func TestGetWithTasks(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "Ada", "ada@example.com")
	createTestTask(t, db, user.ID, "only", 1)

	got, err := db.Users().GetWithTasks(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetWithTasks() error = %v", err)
	}
	if got.User.ID != user.ID {
		t.Errorf("User.ID = %q, want %q", got.User.ID, user.ID)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].Name != "only" {
		t.Errorf("tasks = %+v, want the single task", got.Tasks)
	}
}

func TestGetWithTasks_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Users().GetWithTasks(context.Background(), "missing")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetWithTasks() error = %v, want ErrNotFound", err)
	}
	// This endpoint's variant message, distinct from the resolver's.
	if err.Error() != "this user is not exists" {
		t.Errorf("message = %q, want %q", err.Error(), "this user is not exists")
	}
}
