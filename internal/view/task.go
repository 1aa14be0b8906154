package view

import "github.com/sakif/taskboard/internal/model"

// Task is the public projection of a task: the stored 0/1 completion flag
// becomes a bool and the owner reference is omitted. This is the shape
// embedded under a user view.
type Task struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// TaskOwner is the projection returned by GET /tasks: the task fields plus
// the owner as a public User view. The embedded User has no task list, so
// the nesting stops here.
type TaskOwner struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	User      User   `json:"user"`
}

// NewTask projects a task. Any non-zero completion value maps to true.
func NewTask(t model.Task) Task {
	return Task{
		ID:        t.ID,
		Name:      t.Name,
		Completed: t.Completed != 0,
	}
}

// NewTaskOwner projects a task together with its owner.
func NewTaskOwner(to model.TaskOwner) TaskOwner {
	return TaskOwner{
		ID:        to.Task.ID,
		Name:      to.Task.Name,
		Completed: to.Task.Completed != 0,
		User:      NewUser(to.Owner),
	}
}
