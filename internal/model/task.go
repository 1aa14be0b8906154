package model

// Task represents a to-do item owned by exactly one user.
//
// Completed is stored as an INTEGER (0/1) in sqlite and kept as an int here
// so the model mirrors the row exactly. The view layer normalizes it to a
// bool (0 → false, anything else → true) on the way out; the repository
// writes whatever int it is handed on the way in.
//
// UserID references users(id) and is set once at creation. There is no
// cascade: deleting a user leaves their tasks behind.
type Task struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Completed int    `json:"completed"`
	UserID    string `json:"userId"`
}

// TaskOwner pairs a task with its owner's user row, as produced by the
// tasks⋈users join behind GET /tasks. The view layer turns it into a task
// projection with an embedded, redacted owner.
type TaskOwner struct {
	Task  Task
	Owner User
}
