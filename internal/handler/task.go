package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/taskboard/internal/auth"
	"github.com/sakif/taskboard/internal/service"
	"github.com/sakif/taskboard/internal/view"
)

// TaskHandler serves the /tasks and /task/{id} surface. All four routes sit
// behind the auth gate; the service re-checks the caller still exists.
type TaskHandler struct {
	tasks  *service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(tasks *service.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger}
}

// createTaskRequest is the POST /tasks body. Name is a pointer so a body
// without the field fails validation rather than silently creating a task
// named "".
type createTaskRequest struct {
	Name *string `json:"name"`
}

// HandleList returns the caller's tasks, each with the owner embedded as a
// redacted user view.
//
// HTTP: GET /tasks → 200 bare array (possibly empty, never null).
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	tasks, err := h.tasks.ListForOwner(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]view.TaskOwner, 0, len(tasks))
	for _, to := range tasks {
		out = append(out, view.NewTaskOwner(to))
	}

	writeJSON(w, http.StatusOK, out)
}

// HandleCreate inserts a new task owned by the caller.
//
// HTTP: POST /tasks, body {"name": "..."} → 201 empty.
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var req createTaskRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.tasks.Create(r.Context(), identity, req.Name); err != nil {
		writeError(w, err)
		return
	}

	writeEmpty(w, http.StatusCreated)
}

// HandleUpdate partially updates a task (name and/or completed).
//
// HTTP: PUT /task/{id} → 200 empty. Note: no ownership check beyond caller
// existence — see service.TaskService.Update.
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	taskID := chi.URLParam(r, "id")

	var upd service.TaskUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeError(w, err)
		return
	}

	if err := h.tasks.Update(r.Context(), identity, taskID, upd); err != nil {
		writeError(w, err)
		return
	}

	writeEmpty(w, http.StatusOK)
}

// HandleDelete removes a task.
//
// HTTP: DELETE /task/{id} → 200 empty. Same ownership caveat as update.
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	taskID := chi.URLParam(r, "id")

	if err := h.tasks.Delete(r.Context(), identity, taskID); err != nil {
		writeError(w, err)
		return
	}

	writeEmpty(w, http.StatusOK)
}
