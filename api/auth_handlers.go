package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gatehouse-dev/gatehouse/auth"
	"github.com/gatehouse-dev/gatehouse/store"
)

// Status handles GET /status.
func (a *API) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "OK"})
}

// Unauthorized handles GET /unauthorized. It exists to exercise the 401
// error body end to end.
func (a *API) Unauthorized(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusUnauthorized, "Unauthorized")
}

// Forbidden handles GET /forbidden. It exists to exercise the 403 error body
// end to end.
func (a *API) Forbidden(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusForbidden, "Forbidden")
}

// Welcome handles GET /.
func (a *API) Welcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Bienvenue"})
}

// Me handles GET /users/me, returning the principal resolved by the request
// gate.
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	user := PrincipalFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// SessionLogin handles POST /auth_session/login. It authenticates email and
// password, opens a strategy-side session, and sets the session cookie.
func (a *API) SessionLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[LoginRequest](w, r, maxBodySize)
	if !ok {
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email missing")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password missing")
		return
	}

	user, err := a.users.UserByEmail(req.Email)
	if err != nil {
		a.metrics.recordLogin("unknown_user")
		a.audit.logFailure(AuditLoginFailure, r, "no user for email")
		writeError(w, http.StatusNotFound, "no user found for this email")
		return
	}
	if !auth.VerifyPassword(req.Password, string(user.PasswordHash)) {
		a.metrics.recordLogin("wrong_password")
		a.audit.logFailure(AuditLoginFailure, r, "wrong password")
		writeError(w, http.StatusUnauthorized, "wrong password")
		return
	}
	if a.sessions == nil {
		writeError(w, http.StatusInternalServerError, "session login unavailable")
		return
	}

	sessionID, ok := a.sessions.CreateSession(user.ID)
	if !ok {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	a.metrics.recordLogin("success")
	a.audit.logUser(AuditLoginSuccess, r, user.ID)
	a.writeSessionCookie(w, r, sessionID, time.Time{})
	writeJSON(w, http.StatusOK, UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// SessionLogout handles DELETE /auth_session/logout. Destroying an absent or
// expired session is a 404, matching the destroy contract's true/false
// reporting.
func (a *API) SessionLogout(w http.ResponseWriter, r *http.Request) {
	if a.sessions == nil || !a.sessions.DestroySession(r) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	a.audit.log(AuditLogout, r)
	a.clearSessionCookie(w, r)
	writeJSON(w, http.StatusOK, struct{}{})
}

// Register handles POST /users.
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[RegisterRequest](w, r, maxBodySize)
	if !ok {
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email missing")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password missing")
		return
	}

	user, err := a.service.Register(req.Email, req.Password)
	if errors.Is(err, auth.ErrDuplicateEmail) {
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "email already registered"})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to register user")
		return
	}
	a.audit.logUser(AuditRegister, r, user.ID)
	writeJSON(w, http.StatusOK, RegisterResponse{Email: user.Email, Message: "user created"})
}

// Login handles POST /sessions, the service-side login that records the
// session id on the user record.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[LoginRequest](w, r, maxBodySize)
	if !ok {
		return
	}
	if !a.service.ValidLogin(req.Email, req.Password) {
		a.metrics.recordLogin("invalid")
		a.audit.logFailure(AuditLoginFailure, r, "invalid credentials")
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sessionID, ok := a.service.CreateSession(req.Email)
	if !ok {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	a.metrics.recordLogin("success")
	a.audit.log(AuditLoginSuccess, r)
	a.writeSessionCookie(w, r, sessionID, time.Time{})
	writeJSON(w, http.StatusOK, LoginResponse{Email: req.Email, Message: "logged in"})
}

// Logout handles DELETE /sessions. A request without a live session is
// forbidden; success clears the cookie and redirects to the welcome page.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	user := a.userFromSessionCookie(r)
	if user == nil {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}
	a.service.DestroySession(user.ID)
	a.audit.logUser(AuditLogout, r, user.ID)
	a.clearSessionCookie(w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Profile handles GET /profile.
func (a *API) Profile(w http.ResponseWriter, r *http.Request) {
	user := a.userFromSessionCookie(r)
	if user == nil {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{Email: user.Email})
}

// ResetToken handles POST /reset_password, issuing a single-use reset token.
func (a *API) ResetToken(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[ResetTokenRequest](w, r, maxBodySize)
	if !ok {
		return
	}
	token, err := a.service.ResetPasswordToken(req.Email)
	if errors.Is(err, auth.ErrUnknownUser) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue reset token")
		return
	}
	a.audit.log(AuditPasswordResetRequested, r)
	writeJSON(w, http.StatusOK, ResetTokenResponse{Email: req.Email, ResetToken: token})
}

// UpdatePassword handles PUT /reset_password, consuming a reset token.
func (a *API) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[UpdatePasswordRequest](w, r, maxBodySize)
	if !ok {
		return
	}
	err := a.service.UpdatePassword(req.ResetToken, req.NewPassword)
	if errors.Is(err, auth.ErrInvalidToken) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update password")
		return
	}
	a.audit.log(AuditPasswordUpdated, r)
	writeJSON(w, http.StatusOK, UpdatePasswordResponse{Email: req.Email, Message: "Password updated"})
}

func (a *API) userFromSessionCookie(r *http.Request) *store.User {
	sessionID, ok := auth.SessionCookie(r, a.cookieName)
	if !ok {
		return nil
	}
	return a.service.UserBySession(sessionID)
}
