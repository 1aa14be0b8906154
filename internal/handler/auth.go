package handler

import (
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/sakif/taskboard/internal/apperror"
	"github.com/sakif/taskboard/internal/auth"
	"github.com/sakif/taskboard/internal/service"
)

// AuthHandler serves registration, login, and the optional GitHub OAuth
// login. github may be nil, in which case the OAuth routes are simply not
// registered by the server.
type AuthHandler struct {
	auth   *service.AuthService
	github *auth.GitHubProvider
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc *service.AuthService, github *auth.GitHubProvider, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: authSvc, github: github, logger: logger}
}

// registerRequest is the POST /register body. All four fields are required;
// pointers distinguish "absent" from "empty", and any absence is the same
// "data invalid" a malformed body produces.
type registerRequest struct {
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

// loginRequest is the POST /login body.
type loginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /register → 201 empty on success;
// 400 "data invalid" on a bad body, 400 "this email already in use" on a
// duplicate (modulo the documented check-then-insert race).
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Firstname == nil || req.Lastname == nil || req.Email == nil || req.Password == nil {
		writeError(w, apperror.ValidationFailed("data invalid"))
		return
	}

	err := h.auth.Register(r.Context(), *req.Firstname, *req.Lastname, *req.Email, *req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeEmpty(w, http.StatusCreated)
}

// HandleLogin verifies credentials and issues a token.
//
// HTTP: POST /login → 200 {"id": "...", "token": "..."}.
// A malformed or incomplete body gets the GENERIC message here, not
// "data invalid" — an asymmetry with /register that clients observe, so it
// stays.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, apperror.ValidationFailed(""))
		return
	}
	if req.Email == nil || req.Password == nil {
		writeError(w, apperror.ValidationFailed(""))
		return
	}

	result, err := h.auth.Login(r.Context(), *req.Email, *req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleGitHubLogin redirects the browser to GitHub's authorization page,
// with a random single-use state pinned in a short-lived HttpOnly cookie
// for CSRF protection.
//
// HTTP: GET /auth/github/login
func (h *AuthHandler) HandleGitHubLogin(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10 minutes — enough to approve, short enough to limit replay
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.github.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGitHubCallback completes the OAuth flow: verify the state, exchange
// the code for a profile, map it onto a local account, and answer with the
// same {"id","token"} body the password login returns.
//
// HTTP: GET /auth/github/callback?code=xxx&state=yyy
func (h *AuthHandler) HandleGitHubCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("github callback: state missing or mismatched")
		writeError(w, apperror.ValidationFailed("invalid oauth state"))
		return
	}

	// The state is single-use.
	http.SetCookie(w, &http.Cookie{
		Name:   "oauth_state",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("github callback: authorization denied", slog.String("error", errParam))
		writeError(w, apperror.ValidationFailed("authorization denied"))
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, apperror.ValidationFailed("missing oauth code"))
		return
	}

	ghUser, err := h.github.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("github callback: exchange failed", slog.String("error", err.Error()))
		writeError(w, apperror.AuthFailed(""))
		return
	}

	result, err := h.auth.LoginOrRegisterGitHub(r.Context(), ghUser)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
