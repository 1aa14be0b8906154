// Package handler contains the HTTP layer: request parsing, ownership
// checks, and response shaping. Handlers never touch SQL and never build
// business rules — they translate between HTTP and the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/taskboard/internal/apperror"
)

// genericMessage is substituted whenever an error reaches the client with no
// specific reason string. It leaks nothing about the underlying failure.
const genericMessage = "Internal Server Error"

// errorResponse is the single wire shape for every failure:
// {"error": "<message>"}.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON sends a JSON body with the given status. Headers must be set
// before the first Write, hence the fixed order here.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already gone; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeEmpty sends a bare status with no body — the success shape for
// create (201), update (200), and delete (200).
func writeEmpty(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// writeError translates a domain error to the wire.
//
// STATUS MAPPING (inherited, deliberately non-idiomatic):
// ownership mismatch → 401; EVERYTHING else → 400, including not-found and
// storage failures. An empty or missing message becomes the generic one, so
// internals (SQL text, file paths) never reach the body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	message := genericMessage

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if errors.Is(err, apperror.ErrOwnership) {
			status = http.StatusUnauthorized
		}
		if appErr.Message != "" {
			message = appErr.Message
		}
	}

	writeJSON(w, status, errorResponse{Error: message})
}

// decodeBody parses a JSON request body into dst. Any failure — empty body,
// malformed JSON, wrong types — comes back as an ordinary validation error;
// body parsing must never panic a request.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.ValidationFailed("data invalid")
	}
	return nil
}
