package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// contextKey is an unexported type used for context keys in this package.
// Using a package-private type (instead of a plain string) means no other
// package can collide with or shadow the identity value.
type contextKey string

const identityKey contextKey = "identity"

// RequireAuth is the authentication gate on protected routes.
//
// It reads the Authorization header ("<scheme> <token>", conventionally
// "Bearer <jwt>"), validates the token, and stores the identity it carries
// in the request context. On failure the request stops here with the wire
// error shape.
//
// FAILURE MAPPING (inherited contract — every auth failure is a 400, never
// a 401; 401 is reserved for ownership mismatches in the handlers):
//   - header absent, or fewer than two space-separated parts
//     → 400 {"error":"token is necessary"}
//   - bad signature, undecodable claims, or expired
//     → 400 with the generic message
//
// Only the SECOND space-separated part is the token; the scheme itself is
// not checked, matching what clients already send.
//
// The gate confirms nothing about storage. A token can validate here for a
// user deleted minutes ago — per-request existence is re-checked further
// down (service.ResolveIdentity), because tokens are stateless and are not
// revoked on deletion.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeAuthError(w, "token is necessary")
				return
			}

			parts := strings.Fields(header)
			if len(parts) < 2 {
				writeAuthError(w, "token is necessary")
				return
			}

			identity, err := tokens.Validate(parts[1])
			if err != nil {
				// Signature, claim, and expiry failures all surface the
				// generic message — the distinction is internal only.
				writeAuthError(w, "")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext retrieves the authenticated identity set by
// RequireAuth. Returns ("", false) on routes the gate did not run on.
func IdentityFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey).(string)
	return id, ok && id != ""
}

// writeAuthError emits the wire error shape for a gate rejection. The gate
// cannot reach the handler package's response helpers without an import
// cycle, so the few lines live here too. An empty message becomes the
// generic one, as everywhere else.
func writeAuthError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal Server Error"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
