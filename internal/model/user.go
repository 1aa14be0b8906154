// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other
// languages, but without inheritance. Go favours composition over inheritance.
package model

// User represents a registered account as stored in the database.
//
// WHY PasswordHash ON THE MODEL?
// The repository layer works with complete rows, and login needs the stored
// bcrypt hash to verify credentials. The hash must never reach a client, but
// that redaction is the view layer's job (see internal/view) — the model is
// the internal, unredacted record. The json:"-" tag is a second line of
// defence: even if a handler accidentally serialized a model.User directly,
// encoding/json would skip the hash.
//
// The ID is an opaque v4 UUID generated at insert time. It carries no
// semantic structure and is immutable for the lifetime of the row.
type User struct {
	ID           string `json:"id"`
	Firstname    string `json:"firstname"`
	Lastname     string `json:"lastname"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// UserTasks pairs a user with the tasks they own. It is the output of the
// row assembler: one entry per distinct user, tasks in the order their join
// rows arrived. Tasks is always non-nil — a user with no tasks gets an empty
// slice, so it serializes as [] rather than null.
type UserTasks struct {
	User  User
	Tasks []Task
}
