package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/taskboard/internal/apperror"
	"github.com/sakif/taskboard/internal/auth"
	"github.com/sakif/taskboard/internal/service"
	"github.com/sakif/taskboard/internal/view"
)

// UserHandler serves the /users and /user/{id} surface.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// usersResponse wraps the public listing; the contract is an object with a
// "users" key, not a bare array.
type usersResponse struct {
	Users []view.UserTasks `json:"users"`
}

// HandleList returns every user with their nested tasks.
//
// HTTP: GET /users — the one unauthenticated read. Redaction happens in
// the view projection; the password hash never crosses this boundary.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	assembled, err := h.users.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]view.UserTasks, 0, len(assembled))
	for _, ut := range assembled {
		out = append(out, view.NewUserTasks(ut))
	}

	writeJSON(w, http.StatusOK, usersResponse{Users: out})
}

// HandleGet returns a single user with nested tasks.
//
// HTTP: GET /user/{id} — auth required, and the path id must equal the
// token identity. A mismatch is the API's only 401.
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if !h.callerOwns(w, r, userID) {
		return
	}

	ut, err := h.users.GetWithTasks(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view.NewUserTasks(*ut))
}

// HandleUpdate applies a partial update to the caller's own record.
//
// HTTP: PUT /user/{id} — only supplied fields change; a body carrying none
// of the optional fields is "data invalid" and mutates nothing.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if !h.callerOwns(w, r, userID) {
		return
	}

	var upd service.UserUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeError(w, err)
		return
	}

	if err := h.users.Update(r.Context(), userID, upd); err != nil {
		writeError(w, err)
		return
	}

	writeEmpty(w, http.StatusOK)
}

// HandleDelete removes the caller's own record.
//
// HTTP: DELETE /user/{id} — succeeds (200, empty body) even if the row is
// already gone. Owned tasks are left behind.
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if !h.callerOwns(w, r, userID) {
		return
	}

	if err := h.users.Delete(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}

	writeEmpty(w, http.StatusOK)
}

// callerOwns enforces the single-owner authorization rule: the token
// identity must equal the path id. On mismatch it writes the 401 and
// returns false. The message string is part of the wire contract, verbatim.
func (h *UserHandler) callerOwns(w http.ResponseWriter, r *http.Request, userID string) bool {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok || identity != userID {
		writeError(w, apperror.OwnershipMismatch("you not have permission for to follow"))
		return false
	}
	return true
}
