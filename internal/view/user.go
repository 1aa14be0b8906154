// Package view holds the client-facing projections of the internal models.
//
// WHY A SEPARATE VIEW LAYER?
// Models mirror database rows, and rows contain things clients must never
// see (the bcrypt password hash) or in representations clients should not
// deal with (completed stored as 0/1). Instead of serializing models with
// ad-hoc field filtering, every response body is built from one of these
// immutable projection types. The mapping is one-directional by design:
// a User view embeds Task views that carry no owner back-reference, which is
// what breaks the user→tasks→user cycle — there is simply no type through
// which the recursion could occur.
package view

import "github.com/sakif/taskboard/internal/model"

// User is the public projection of a user record. Note there is no password
// field at all — redaction is structural, not a serialization option.
type User struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
}

// UserTasks is the user projection used by GET /users and GET /user/{id}:
// the public user fields plus the user's tasks, owner-free.
type UserTasks struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Tasks     []Task `json:"tasks"`
}

// NewUser builds the public projection of a user, dropping the hash.
func NewUser(u model.User) User {
	return User{
		ID:        u.ID,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Email:     u.Email,
	}
}

// NewUserTasks projects an assembled user+tasks pair. The task list is
// always non-nil so an empty one serializes as [] rather than null.
func NewUserTasks(ut model.UserTasks) UserTasks {
	tasks := make([]Task, 0, len(ut.Tasks))
	for _, t := range ut.Tasks {
		tasks = append(tasks, NewTask(t))
	}
	return UserTasks{
		ID:        ut.User.ID,
		Firstname: ut.User.Firstname,
		Lastname:  ut.User.Lastname,
		Email:     ut.User.Email,
		Tasks:     tasks,
	}
}
