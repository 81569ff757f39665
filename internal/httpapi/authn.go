package httpapi

import (
	"net/http"
	"strings"

	"civictrack.org/internal/auth"
)

const (
	loginPath   = "/login"
	adminHome   = "/dashboard/admin"
	officerHome = "/dashboard/officer"
)

// Route table. Requests under a protected prefix need a session; explicit
// public paths skip session decoding entirely; everything else is open but
// carries the principal when a valid cookie is presented.
var (
	protectedPrefixes = []string{"/dashboard"}
	publicPaths       = []string{"/", "/submit", "/track", "/healthz", "/readyz", "/metrics"}
	publicPrefixes    = []string{"/submit/success"}
)

// roleScopes restricts role-specific dashboard subtrees.
var roleScopes = []struct {
	prefix string
	allows func(auth.Role) bool
}{
	{prefix: adminHome, allows: isAdmin},
	{prefix: officerHome, allows: isOfficer},
}

type routeClass int

const (
	routeOpen routeClass = iota
	routePublic
	routeLogin
	routeProtected
)

func classify(path string) routeClass {
	if path == loginPath {
		return routeLogin
	}
	for _, p := range protectedPrefixes {
		if hasPathPrefix(path, p) {
			return routeProtected
		}
	}
	if isPublicPath(path) {
		return routePublic
	}
	return routeOpen
}

// withSession is the access control middleware. It never refreshes the token.
func (a *API) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		class := classify(r.URL.Path)
		if class == routePublic {
			next.ServeHTTP(w, r)
			return
		}

		principal, ok := a.sessionFrom(r)
		switch class {
		case routeProtected:
			if !ok {
				redirect(w, r, loginPath)
				return
			}
			if target, denied := scopeRedirect(r.URL.Path, principal.Role); denied {
				redirect(w, r, target)
				return
			}
		case routeLogin:
			if ok && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
				redirect(w, r, homeFor(principal.Role))
				return
			}
		}

		if ok {
			r = r.WithContext(auth.ContextWithPrincipal(r.Context(), principal))
		}
		next.ServeHTTP(w, r)
	})
}

// sessionFrom decodes the session cookie. A missing cookie and a rejected
// token are the same outcome.
func (a *API) sessionFrom(r *http.Request) (auth.Principal, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return auth.Principal{}, false
	}
	return a.auth.Codec().Decode(c.Value)
}

func scopeRedirect(path string, role auth.Role) (string, bool) {
	for _, s := range roleScopes {
		if hasPathPrefix(path, s.prefix) && !s.allows(role) {
			return homeFor(role), true
		}
	}
	return "", false
}

func homeFor(role auth.Role) string {
	return auth.MatchRole(role,
		func(auth.Admin) string { return adminHome },
		func(auth.Officer) string { return officerHome },
		func(auth.Citizen) string { return loginPath },
	)
}

func isAdmin(role auth.Role) bool {
	return auth.MatchRole(role,
		func(auth.Admin) bool { return true },
		func(auth.Officer) bool { return false },
		func(auth.Citizen) bool { return false },
	)
}

func isOfficer(role auth.Role) bool {
	return auth.MatchRole(role,
		func(auth.Admin) bool { return false },
		func(auth.Officer) bool { return true },
		func(auth.Citizen) bool { return false },
	)
}

func isStaff(role auth.Role) bool { return isAdmin(role) || isOfficer(role) }

// requireRole is the API-side check: no session or the wrong role is a 401.
func requireRole(w http.ResponseWriter, r *http.Request, allows func(auth.Role) bool) (auth.Principal, bool) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok || !allows(p.Role) {
		writeError(w, r, http.StatusUnauthorized, "unauthorized")
		return auth.Principal{}, false
	}
	return p, true
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}

func hasPathPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range publicPrefixes {
		if hasPathPrefix(path, prefix) {
			return true
		}
	}
	return false
}
