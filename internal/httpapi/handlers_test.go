package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"net/url"
	"strings"
	"testing"
	"time"

	"civictrack.org/internal/auth"
	"civictrack.org/internal/complaint"
	"civictrack.org/internal/ratelimit"
)

const (
	testSecret      = "httpapi-test-secret-0123456789abcd"
	adminEmail      = "admin@civic.com"
	adminPassword   = "admin123"
	officerPassword = "officer123"
)

type testEnv struct {
	t          *testing.T
	api        *API
	auth       *auth.Service
	complaints *complaint.Service
	now        time.Time
}

type envOption func(*Options)

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	env := &testEnv{t: t, now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return env.now }

	users := auth.NewInMemoryUsers()
	hasher := auth.NewHasher(4)
	codec, err := auth.NewCodec(testSecret, auth.WithClock(clock))
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	env.auth, err = auth.NewService(users, hasher, codec)
	if err != nil {
		t.Fatalf("auth.NewService: %v", err)
	}
	if _, _, err := auth.EnsureAdmin(context.Background(), users, hasher, auth.AdminInput{
		Name: "System Admin", Email: adminEmail, Password: adminPassword,
	}); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	for ward, email := range map[int]string{1: "officer1@civic.com", 2: "officer2@civic.com"} {
		if _, err := env.auth.CreateOfficer(context.Background(), auth.OfficerInput{
			Name: "Officer", Email: email, Password: officerPassword, Ward: ward,
		}); err != nil {
			t.Fatalf("CreateOfficer: %v", err)
		}
	}
	env.complaints = complaint.NewService(complaint.NewInMemory(), complaint.WithClock(clock))

	o := Options{Auth: env.auth, Complaints: env.complaints, Version: "test"}
	for _, fn := range opts {
		fn(&o)
	}
	env.api, err = New(o)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return env
}

func (e *testEnv) do(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			e.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	e.api.Handler().ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) login(email, password string) *http.Cookie {
	e.t.Helper()
	rr := e.do(http.MethodPost, "/login", map[string]string{"email": email, "password": password}, nil)
	if rr.Code != http.StatusOK {
		e.t.Fatalf("login %s: expected 200, got %d: %s", email, rr.Code, rr.Body.String())
	}
	c := sessionCookie(rr)
	if c == nil {
		e.t.Fatalf("login %s: no session cookie", email)
	}
	return c
}

func (e *testEnv) submit(ward int) submitResponse {
	e.t.Helper()
	rr := e.do(http.MethodPost, "/api/complaints", map[string]any{
		"name": "Asha", "phone": "9876543210", "ward": ward,
		"category": "Water", "description": "pipe burst near the school",
	}, nil)
	if rr.Code != http.StatusCreated {
		e.t.Fatalf("submit: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var out submitResponse
	decodeBody(e.t, rr, &out)
	return out
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
}

func TestHealthAndReady(t *testing.T) {
	env := newTestEnv(t)
	if rr := env.do(http.MethodGet, "/healthz", nil, nil); rr.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rr.Code)
	}
	if rr := env.do(http.MethodGet, "/readyz", nil, nil); rr.Code != http.StatusOK {
		t.Fatalf("readyz: %d", rr.Code)
	}
}

func TestReadyzReportsStoreFailure(t *testing.T) {
	env := newTestEnv(t, func(o *Options) {
		o.Ready = StoreReadiness{Store: pingerFunc(func(context.Context) error {
			return errors.New("dial tcp 10.20.0.5:5432: connection refused")
		})}
	})
	rr := env.do(http.MethodGet, "/readyz", nil, nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	var body map[string]any
	decodeBody(t, rr, &body)
	if len(body) != 1 || body["status"] != "not_ready" {
		t.Fatalf("unexpected readiness body: %v", body)
	}
	if strings.Contains(rr.Body.String(), "10.20.0.5") {
		t.Fatalf("readiness body leaks store error: %s", rr.Body.String())
	}
}

func TestNewRequiresServices(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("expected error without services")
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(http.MethodPost, "/login", map[string]string{"email": "Admin@Civic.com", "password": adminPassword}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var body loginResponse
	decodeBody(t, rr, &body)
	if !body.Success || body.Role != auth.RoleAdmin || body.Redirect != adminHome || body.Ward != nil {
		t.Fatalf("unexpected login body: %+v", body)
	}

	c := sessionCookie(rr)
	if c == nil {
		t.Fatal("expected session cookie")
	}
	if !c.HttpOnly || c.Secure || c.SameSite != http.SameSiteLaxMode || c.Path != "/" {
		t.Fatalf("unexpected cookie attributes: %+v", c)
	}
	if c.MaxAge != int((24 * time.Hour).Seconds()) {
		t.Fatalf("unexpected max age %d", c.MaxAge)
	}

	officer := env.do(http.MethodPost, "/api/login", map[string]string{"email": "officer2@civic.com", "password": officerPassword}, nil)
	decodeBody(t, officer, &body)
	if body.Role != auth.RoleOfficer || body.Redirect != officerHome {
		t.Fatalf("unexpected officer login body: %+v", body)
	}
}

func TestLoginSecureCookieInProduction(t *testing.T) {
	env := newTestEnv(t, func(o *Options) { o.SecureCookies = true })
	rr := env.do(http.MethodPost, "/login", map[string]string{"email": adminEmail, "password": adminPassword}, nil)
	if c := sessionCookie(rr); c == nil || !c.Secure {
		t.Fatalf("expected Secure cookie, got %+v", c)
	}
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t)
	cases := []struct {
		name string
		body any
		want int
	}{
		{"missing password", map[string]string{"email": adminEmail}, http.StatusBadRequest},
		{"missing email", map[string]string{"password": adminPassword}, http.StatusBadRequest},
		{"wrong password", map[string]string{"email": adminEmail, "password": "nope"}, http.StatusUnauthorized},
		{"unknown email", map[string]string{"email": "ghost@civic.com", "password": adminPassword}, http.StatusUnauthorized},
		{"not json", nil, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := env.do(http.MethodPost, "/login", tc.body, nil)
			if rr.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rr.Code, rr.Body.String())
			}
			if sessionCookie(rr) != nil {
				t.Fatal("failed login must not set a cookie")
			}
		})
	}
}

func TestLoginReportsOfficerWard(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(http.MethodPost, "/login", map[string]string{"email": "officer2@civic.com", "password": officerPassword}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var body loginResponse
	decodeBody(t, rr, &body)
	if body.Role != auth.RoleOfficer || body.Ward == nil || *body.Ward != 2 {
		t.Fatalf("unexpected login body: %+v", body)
	}
}

func TestLoginRateLimited(t *testing.T) {
	env := newTestEnv(t, func(o *Options) { o.LoginLimiter = ratelimit.NewTokenBucket(2, time.Minute) })
	body := map[string]string{"email": adminEmail, "password": "wrong"}
	for i := 0; i < 2; i++ {
		if rr := env.do(http.MethodPost, "/login", body, nil); rr.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i, rr.Code)
		}
	}
	rr := env.do(http.MethodPost, "/login", body, nil)
	if rr.Code != http.StatusTooManyRequests || rr.Header().Get("Retry-After") == "" {
		t.Fatalf("expected 429 with Retry-After, got %d", rr.Code)
	}
}

func TestLoginRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	env := newTestEnv(t, func(o *Options) { o.LoginLimiter = ratelimit.NewTokenBucket(2, time.Minute) })
	payload, _ := json.Marshal(map[string]string{"email": adminEmail, "password": "wrong"})

	throttled := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		rr := httptest.NewRecorder()
		env.api.Handler().ServeHTTP(rr, req)
		if rr.Code == http.StatusTooManyRequests {
			throttled++
		}
	}
	if throttled != 18 {
		t.Fatalf("expected 18 throttled attempts from one socket, got %d", throttled)
	}
}

func TestLoginRateLimitHonoursTrustedProxy(t *testing.T) {
	env := newTestEnv(t, func(o *Options) {
		o.LoginLimiter = ratelimit.NewTokenBucket(1, time.Minute)
		o.TrustedProxies = []netip.Prefix{netip.MustParsePrefix("192.0.2.0/24")}
	})
	payload, _ := json.Marshal(map[string]string{"email": adminEmail, "password": "wrong"})
	send := func(xff string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", xff)
		rr := httptest.NewRecorder()
		env.api.Handler().ServeHTTP(rr, req)
		return rr.Code
	}
	if code := send("203.0.113.5"); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if code := send("203.0.113.6"); code != http.StatusUnauthorized {
		t.Fatalf("a different client behind the proxy must have its own bucket, got %d", code)
	}
	if code := send("203.0.113.5"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for a repeated client, got %d", code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(adminEmail, adminPassword)
	rr := env.do(http.MethodPost, "/logout", nil, cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body logoutResponse
	decodeBody(t, rr, &body)
	if !body.Success || body.Redirect != loginPath {
		t.Fatalf("unexpected logout body: %+v", body)
	}
	c := sessionCookie(rr)
	if c == nil || c.Value != "" || c.MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got %+v", c)
	}
}

func TestOfficersRequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	officer := env.login("officer1@civic.com", officerPassword)
	payload := map[string]any{"name": "New", "email": "new@civic.com", "password": "pw", "ward": 5}

	for _, path := range []string{"/officers", "/api/officers"} {
		if rr := env.do(http.MethodGet, path, nil, nil); rr.Code != http.StatusUnauthorized {
			t.Fatalf("GET %s anonymous: expected 401, got %d", path, rr.Code)
		}
		if rr := env.do(http.MethodPost, path, payload, officer); rr.Code != http.StatusUnauthorized {
			t.Fatalf("POST %s as officer: expected 401, got %d", path, rr.Code)
		}
	}
}

func TestCreateAndListOfficers(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(adminEmail, adminPassword)

	rr := env.do(http.MethodPost, "/api/officers", map[string]any{
		"name": "Officer Ravi", "email": "ravi@civic.com", "password": "secret-pw", "ward": "3",
	}, admin)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "secret-pw") || strings.Contains(rr.Body.String(), "password") {
		t.Fatalf("password leaked: %s", rr.Body.String())
	}
	var created officerView
	decodeBody(t, rr, &created)
	if created.Ward == nil || *created.Ward != 3 || created.Email != "ravi@civic.com" {
		t.Fatalf("unexpected officer: %+v", created)
	}

	dup := env.do(http.MethodPost, "/officers", map[string]any{
		"name": "Other", "email": "RAVI@civic.com", "password": "pw", "ward": 4,
	}, admin)
	if dup.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email: expected 400, got %d", dup.Code)
	}
	missing := env.do(http.MethodPost, "/officers", map[string]any{"name": "No Ward", "email": "nw@civic.com", "password": "pw"}, admin)
	if missing.Code != http.StatusBadRequest {
		t.Fatalf("missing ward: expected 400, got %d", missing.Code)
	}
	badWard := env.do(http.MethodPost, "/officers", map[string]any{"name": "Bad", "email": "bad@civic.com", "password": "pw", "ward": "north"}, admin)
	if badWard.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric ward: expected 400, got %d", badWard.Code)
	}

	list := env.do(http.MethodGet, "/officers", nil, admin)
	if list.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", list.Code)
	}
	var officers []officerView
	decodeBody(t, list, &officers)
	if len(officers) != 3 {
		t.Fatalf("expected 3 officers, got %d", len(officers))
	}
	if officers[0].Email != "ravi@civic.com" {
		t.Fatalf("expected newest first, got %s", officers[0].Email)
	}
}

func TestSubmitAndTrack(t *testing.T) {
	env := newTestEnv(t)
	created := env.submit(2)
	if created.Status != complaint.StatusOpen || created.ComplaintID == "" || created.ID == "" {
		t.Fatalf("unexpected submit response: %+v", created)
	}

	rr := env.do(http.MethodGet, "/api/track/"+created.ComplaintID, nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("track: expected 200, got %d", rr.Code)
	}
	var view map[string]any
	decodeBody(t, rr, &view)
	if _, ok := view["name"]; ok {
		t.Fatal("public view exposes reporter name")
	}
	if _, ok := view["phone"]; ok {
		t.Fatal("public view exposes reporter phone")
	}
	if view["status"] != "OPEN" || view["isBreached"] != false || view["notes"] != nil {
		t.Fatalf("unexpected public view: %v", view)
	}

	page := env.do(http.MethodGet, "/track?id="+strings.ToLower(created.ComplaintID), nil, nil)
	if page.Code != http.StatusOK {
		t.Fatalf("track page: expected 200, got %d", page.Code)
	}
	if rr := env.do(http.MethodGet, "/api/track/NOPE", nil, nil); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404, got %d", rr.Code)
	}
	if rr := env.do(http.MethodPost, "/api/complaints", map[string]any{"name": "x", "ward": 1}, nil); rr.Code != http.StatusBadRequest {
		t.Fatalf("incomplete submission: expected 400, got %d", rr.Code)
	}
}

func TestSubmitFormRedirects(t *testing.T) {
	env := newTestEnv(t)
	form := url.Values{
		"name": {"Ravi"}, "phone": {"99999"}, "ward": {"4"},
		"category": {"Road"}, "description": {"pothole"},
	}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	env.api.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rr.Code, rr.Body.String())
	}
	loc := rr.Header().Get("Location")
	if !strings.HasPrefix(loc, "/submit/success?id=") {
		t.Fatalf("unexpected redirect %q", loc)
	}
	if page := env.do(http.MethodGet, loc, nil, nil); page.Code != http.StatusOK {
		t.Fatalf("success page: expected 200, got %d", page.Code)
	}
}

func TestUpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	created := env.submit(1)
	path := "/api/complaints/" + created.ID + "/status"
	officer1 := env.login("officer1@civic.com", officerPassword)
	officer2 := env.login("officer2@civic.com", officerPassword)
	admin := env.login(adminEmail, adminPassword)

	if rr := env.do(http.MethodPost, path, map[string]string{"status": "RESOLVED"}, nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", rr.Code)
	}
	if rr := env.do(http.MethodPost, path, map[string]string{"status": "RESOLVED"}, officer2); rr.Code != http.StatusNotFound {
		t.Fatalf("other ward: expected 404, got %d", rr.Code)
	}
	if rr := env.do(http.MethodPost, path, map[string]string{"status": "DONE"}, officer1); rr.Code != http.StatusBadRequest {
		t.Fatalf("invalid status: expected 400, got %d", rr.Code)
	}

	rr := env.do(http.MethodPost, path, map[string]any{"status": "in_progress", "notes": "crew dispatched"}, officer1)
	if rr.Code != http.StatusOK {
		t.Fatalf("own ward: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var view complaint.View
	decodeBody(t, rr, &view)
	if view.Status != complaint.StatusInProgress || view.Notes == nil || *view.Notes != "crew dispatched" {
		t.Fatalf("unexpected view: %+v", view)
	}

	rr = env.do(http.MethodPost, path, map[string]any{"status": "OPEN"}, admin)
	if rr.Code != http.StatusOK {
		t.Fatalf("admin regression: expected 200, got %d", rr.Code)
	}
	decodeBody(t, rr, &view)
	if view.Status != complaint.StatusOpen || view.Notes != nil {
		t.Fatalf("expected OPEN with cleared notes, got %+v", view)
	}

	if rr := env.do(http.MethodPost, "/api/complaints/missing/status", map[string]string{"status": "OPEN"}, admin); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown complaint: expected 404, got %d", rr.Code)
	}
}

func TestUpdateStatusPolicyConflict(t *testing.T) {
	policy, err := complaint.ForwardOnly()
	if err != nil {
		t.Fatalf("ForwardOnly: %v", err)
	}
	env := newTestEnv(t)
	env.complaints = complaint.NewService(complaint.NewInMemory(), complaint.WithPolicy(policy))
	env.api, err = New(Options{Auth: env.auth, Complaints: env.complaints})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	created := env.submit(1)
	path := "/api/complaints/" + created.ID + "/status"
	officer := env.login("officer1@civic.com", officerPassword)

	if rr := env.do(http.MethodPost, path, map[string]string{"status": "RESOLVED"}, officer); rr.Code != http.StatusOK {
		t.Fatalf("forward: expected 200, got %d", rr.Code)
	}
	if rr := env.do(http.MethodPost, path, map[string]string{"status": "OPEN"}, officer); rr.Code != http.StatusConflict {
		t.Fatalf("regression: expected 409, got %d", rr.Code)
	}
}

func TestDashboardsAPI(t *testing.T) {
	env := newTestEnv(t)
	first := env.submit(1)
	env.submit(1)
	env.submit(2)
	env.now = env.now.Add(3 * 24 * time.Hour)
	env.submit(2)

	admin := env.login(adminEmail, adminPassword)
	officer := env.login("officer1@civic.com", officerPassword)

	if rr := env.do(http.MethodPost, "/api/complaints/"+first.ID+"/status", map[string]string{"status": "CLOSED"}, officer); rr.Code != http.StatusOK {
		t.Fatalf("close: %d", rr.Code)
	}

	rr := env.do(http.MethodGet, "/api/dashboard/admin", nil, admin)
	if rr.Code != http.StatusOK {
		t.Fatalf("admin dashboard: expected 200, got %d", rr.Code)
	}
	var o complaint.Overview
	decodeBody(t, rr, &o)
	if o.Total != 4 || o.Resolved != 1 || o.Open != 3 || o.Breached != 2 {
		t.Fatalf("unexpected overview: %+v", o)
	}
	if len(o.ByWard) != 2 || o.ByWard[0].Ward != 1 || o.ByWard[0].ResolutionRate != 50 || !o.ByWard[0].NeedsAttention {
		t.Fatalf("unexpected byWard: %+v", o.ByWard)
	}

	if rr := env.do(http.MethodGet, "/api/dashboard/admin", nil, officer); rr.Code != http.StatusUnauthorized {
		t.Fatalf("officer on admin API: expected 401, got %d", rr.Code)
	}
	if rr := env.do(http.MethodGet, "/api/dashboard/officer", nil, admin); rr.Code != http.StatusUnauthorized {
		t.Fatalf("admin on officer API: expected 401, got %d", rr.Code)
	}

	rr = env.do(http.MethodGet, "/api/dashboard/officer?status=open", nil, officer)
	if rr.Code != http.StatusOK {
		t.Fatalf("officer dashboard: expected 200, got %d", rr.Code)
	}
	var d complaint.OfficerDashboard
	decodeBody(t, rr, &d)
	if d.Ward != 1 || d.Stats.Total != 1 || d.Stats.Open != 1 || d.Stats.Breached != 1 {
		t.Fatalf("unexpected officer dashboard: %+v", d)
	}
	for _, v := range d.Complaints {
		if v.Ward != 1 {
			t.Fatalf("officer saw ward %d", v.Ward)
		}
	}
	if rr := env.do(http.MethodGet, "/api/dashboard/officer?status=LATE", nil, officer); rr.Code != http.StatusBadRequest {
		t.Fatalf("bad status filter: expected 400, got %d", rr.Code)
	}
}

func TestWardValueAcceptsNumberOrString(t *testing.T) {
	cases := map[string]int{`3`: 3, `"7"`: 7, `" 2 "`: 2, `null`: 0, `""`: 0}
	for in, want := range cases {
		var w wardValue
		if err := json.Unmarshal([]byte(in), &w); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if int(w) != want {
			t.Fatalf("%s: got %d want %d", in, w, want)
		}
	}
	var w wardValue
	if err := json.Unmarshal([]byte(`"ward-3"`), &w); err == nil {
		t.Fatal("expected error for non-numeric ward")
	}
	if err := json.Unmarshal([]byte(`1.5`), &w); err == nil {
		t.Fatal("expected error for fractional ward")
	}
}
