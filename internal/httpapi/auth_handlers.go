package httpapi

import (
	"errors"
	"net/http"

	"civictrack.org/internal/audit"
	"civictrack.org/internal/auth"
	"civictrack.org/internal/obs"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success  bool          `json:"success"`
	Role     auth.RoleName `json:"role"`
	Ward     *int          `json:"ward,omitempty"`
	Redirect string        `json:"redirect"`
}

type logoutResponse struct {
	Success  bool   `json:"success"`
	Redirect string `json:"redirect"`
}

// LoginPage describes the login form. Signed-in visitors never reach it; the
// session middleware sends them home.
func (a *API) LoginPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"page":   "login",
		"action": loginPath,
		"method": http.MethodPost,
		"fields": []string{"email", "password"},
	})
}

// Login verifies credentials, sets the session cookie and tells the client
// where its role lands.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session, principal, err := a.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			obs.ObserveLogin("invalid")
			_ = audit.LogEvent(r.Context(), "auth.login.failed", map[string]any{
				"remote_ip": clientIP(r),
			})
		case errors.Is(err, auth.ErrInvalidInput):
			obs.ObserveLogin("invalid")
		default:
			obs.ObserveLogin("error")
		}
		respondErr(w, r, err)
		return
	}

	obs.ObserveLogin("success")
	a.setSessionCookie(w, session)
	ctx := auth.ContextWithPrincipal(r.Context(), principal)
	_ = audit.LogEvent(ctx, "auth.login.succeeded", map[string]any{
		"remote_ip": clientIP(r),
	})
	resp := loginResponse{
		Success:  true,
		Role:     principal.Role.Name(),
		Redirect: homeFor(principal.Role),
	}
	if ward, ok := principal.Ward(); ok {
		resp.Ward = &ward
	}
	writeJSON(w, http.StatusOK, resp)
}

// Logout expires the session cookie. It succeeds with or without a session.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.PrincipalFromContext(r.Context()); ok {
		_ = audit.LogEvent(r.Context(), "auth.logout", nil)
	}
	a.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, logoutResponse{Success: true, Redirect: loginPath})
}
