package httpapi

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestSessionRedirectMatrix(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(adminEmail, adminPassword)
	officer := env.login("officer1@civic.com", officerPassword)

	cases := []struct {
		name   string
		path   string
		cookie *http.Cookie
		want   int
		target string
	}{
		{"anonymous admin home", "/dashboard/admin", nil, http.StatusTemporaryRedirect, loginPath},
		{"anonymous officer home", "/dashboard/officer", nil, http.StatusTemporaryRedirect, loginPath},
		{"anonymous dashboard root", "/dashboard", nil, http.StatusTemporaryRedirect, loginPath},
		{"anonymous admin subpage", "/dashboard/admin/users", nil, http.StatusTemporaryRedirect, loginPath},
		{"officer on admin", "/dashboard/admin", officer, http.StatusTemporaryRedirect, officerHome},
		{"officer on admin subpage", "/dashboard/admin/analytics", officer, http.StatusTemporaryRedirect, officerHome},
		{"admin on officer", "/dashboard/officer", admin, http.StatusTemporaryRedirect, adminHome},
		{"admin dashboard root", "/dashboard", admin, http.StatusTemporaryRedirect, adminHome},
		{"officer dashboard root", "/dashboard", officer, http.StatusTemporaryRedirect, officerHome},
		{"admin home", "/dashboard/admin", admin, http.StatusOK, ""},
		{"admin wards", "/dashboard/admin/wards", admin, http.StatusOK, ""},
		{"officer home", "/dashboard/officer", officer, http.StatusOK, ""},
		{"login page anonymous", loginPath, nil, http.StatusOK, ""},
		{"login page as admin", loginPath, admin, http.StatusTemporaryRedirect, adminHome},
		{"login page as officer", loginPath, officer, http.StatusTemporaryRedirect, officerHome},
		{"public submit", "/submit", nil, http.StatusOK, ""},
		{"public track", "/track", officer, http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := env.do(http.MethodGet, tc.path, nil, tc.cookie)
			if rr.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rr.Code, rr.Body.String())
			}
			if tc.target != "" && rr.Header().Get("Location") != tc.target {
				t.Fatalf("expected redirect to %s, got %q", tc.target, rr.Header().Get("Location"))
			}
		})
	}
}

func TestOfficerNeverSeesAdminData(t *testing.T) {
	env := newTestEnv(t)
	env.submit(2)
	officer := env.login("officer1@civic.com", officerPassword)
	for _, path := range []string{"/dashboard/admin", "/dashboard/admin/users", "/dashboard/admin/wards"} {
		rr := env.do(http.MethodGet, path, nil, officer)
		body := rr.Body.String()
		if strings.Contains(body, "overview") || strings.Contains(body, "officer2@civic.com") || strings.Contains(body, "byWard") {
			t.Fatalf("%s leaked admin data: %s", path, body)
		}
	}
}

func TestPostLoginWithSessionProceeds(t *testing.T) {
	env := newTestEnv(t)
	officer := env.login("officer1@civic.com", officerPassword)
	rr := env.do(http.MethodPost, loginPath, map[string]string{"email": adminEmail, "password": adminPassword}, officer)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body loginResponse
	decodeBody(t, rr, &body)
	if body.Redirect != adminHome {
		t.Fatalf("expected fresh admin session, got %+v", body)
	}
}

func TestInvalidSessionCountsAsAnonymous(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(adminEmail, adminPassword)

	parts := strings.Split(admin.Value, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape %q", admin.Value)
	}
	tampered := *admin
	tampered.Value = parts[0] + "." + parts[1] + "x." + parts[2]
	garbage := &http.Cookie{Name: sessionCookieName, Value: "not-a-token"}
	for _, c := range []*http.Cookie{&tampered, garbage} {
		rr := env.do(http.MethodGet, adminHome, nil, c)
		if rr.Code != http.StatusTemporaryRedirect || rr.Header().Get("Location") != loginPath {
			t.Fatalf("expected redirect to login, got %d %q", rr.Code, rr.Header().Get("Location"))
		}
		if rr := env.do(http.MethodGet, "/api/dashboard/admin", nil, c); rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 from API, got %d", rr.Code)
		}
	}

	env.now = env.now.Add(24 * time.Hour)
	rr := env.do(http.MethodGet, adminHome, nil, admin)
	if rr.Code != http.StatusTemporaryRedirect || rr.Header().Get("Location") != loginPath {
		t.Fatalf("expired session: expected redirect to login, got %d %q", rr.Code, rr.Header().Get("Location"))
	}
	if rr := env.do(http.MethodGet, loginPath, nil, admin); rr.Code != http.StatusOK {
		t.Fatalf("expired session on login page: expected 200, got %d", rr.Code)
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]routeClass{
		"/":                     routePublic,
		"/submit":               routePublic,
		"/submit/success":       routePublic,
		"/track":                routePublic,
		"/healthz":              routePublic,
		"/login":                routeLogin,
		"/dashboard":            routeProtected,
		"/dashboard/admin":      routeProtected,
		"/dashboard/officer/x":  routeProtected,
		"/dashboards":           routeOpen,
		"/api/dashboard/admin":  routeOpen,
		"/api/officers":         routeOpen,
		"/submitted":            routeOpen,
		"/dashboard/admin-copy": routeProtected,
	}
	for path, want := range cases {
		if got := classify(path); got != want {
			t.Fatalf("classify(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestHasPathPrefix(t *testing.T) {
	if !hasPathPrefix("/dashboard/admin", "/dashboard/admin") {
		t.Fatal("exact path must match")
	}
	if !hasPathPrefix("/dashboard/admin/users", "/dashboard/admin") {
		t.Fatal("subpath must match")
	}
	if hasPathPrefix("/dashboard/administrator", "/dashboard/admin") {
		t.Fatal("sibling path must not match")
	}
}
