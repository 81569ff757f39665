package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"

	"civictrack.org/internal/audit"
	"civictrack.org/internal/auth"
	"civictrack.org/internal/complaint"
	"civictrack.org/internal/obs"
	"civictrack.org/internal/ratelimit"
)

const (
	serviceName         = "civictrack-api"
	defaultMaxBodyBytes = 1 << 20
)

type readinessChecker interface {
	Check(ctx context.Context) error
}

// Pinger is anything that can answer a liveness ping, typically the store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreReadiness reports readiness by pinging the backing store. A nil store is
// always ready (in-memory mode).
type StoreReadiness struct {
	Store Pinger
}

func (sr StoreReadiness) Check(ctx context.Context) error {
	if sr.Store == nil {
		return nil
	}
	return sr.Store.Ping(ctx)
}

// Options wires the HTTP layer.
type Options struct {
	Auth       *auth.Service
	Complaints *complaint.Service
	Ready      readinessChecker
	Version    string
	// SecureCookies marks the session cookie Secure (production).
	SecureCookies bool
	// LoginLimiter throttles POST /login per client IP; nil disables throttling.
	LoginLimiter ratelimit.Limiter
	MaxBodyBytes int64
	// TrustedProxies lists the peers whose X-Forwarded-For is believed. Empty
	// means every request is keyed on its socket address.
	TrustedProxies []netip.Prefix
}

// API is the HTTP layer.
type API struct {
	router        chi.Router
	auth          *auth.Service
	complaints    *complaint.Service
	ready         readinessChecker
	version       string
	secureCookies bool
	loginLimiter  ratelimit.Limiter
	maxBodyBytes  int64
	proxies       []netip.Prefix
}

// New builds the router. Both services are required.
func New(opts Options) (*API, error) {
	if opts.Auth == nil {
		return nil, errors.New("httpapi: auth service is required")
	}
	if opts.Complaints == nil {
		return nil, errors.New("httpapi: complaint service is required")
	}
	a := &API{
		auth:          opts.Auth,
		complaints:    opts.Complaints,
		ready:         opts.Ready,
		version:       opts.Version,
		secureCookies: opts.SecureCookies,
		loginLimiter:  opts.LoginLimiter,
		maxBodyBytes:  opts.MaxBodyBytes,
		proxies:       opts.TrustedProxies,
	}
	if a.ready == nil {
		a.ready = StoreReadiness{}
	}
	if a.maxBodyBytes <= 0 {
		a.maxBodyBytes = defaultMaxBodyBytes
	}
	a.router = a.routes()
	return a, nil
}

func (a *API) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID, ClientAddr(a.proxies), LoggingJSON, SecurityHeaders, obs.Instrument, MaxBodyBytes(a.maxBodyBytes), a.withSession)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/", a.Index)
	r.Get("/healthz", a.Healthz)
	r.Get("/readyz", a.Ready)
	r.Handle("/metrics", obs.Handler())

	// session
	r.Get(loginPath, a.LoginPage)
	login := RateLimit(a.loginLimiter, "login")
	r.With(login).Post(loginPath, a.Login)
	r.With(login).Post("/api/login", a.Login)
	r.Post("/logout", a.Logout)
	r.Post("/api/logout", a.Logout)

	// officers
	for _, p := range []string{"/officers", "/api/officers"} {
		r.Get(p, a.ListOfficers)
		r.Post(p, a.CreateOfficer)
	}

	// citizen
	r.Get("/submit", a.SubmitPage)
	r.Post("/submit", a.SubmitForm)
	r.Get("/submit/success", a.SubmitSuccess)
	r.Get("/track", a.TrackPage)
	r.Post("/api/complaints", a.SubmitComplaint)
	r.Get("/api/track/{complaintID}", a.TrackComplaint)

	// staff
	r.Post("/api/complaints/{id}/status", a.UpdateStatus)
	r.Get("/api/dashboard/admin", a.AdminDashboardAPI)
	r.Get("/api/dashboard/officer", a.OfficerDashboardAPI)

	// pages
	r.Get("/dashboard", a.DashboardHome)
	r.Get(adminHome, a.AdminDashboardPage)
	r.Get(adminHome+"/users", a.AdminUsersPage)
	r.Get(adminHome+"/wards", a.AdminWardsPage)
	r.Get(adminHome+"/analytics", a.AdminAnalyticsPage)
	r.Get(officerHome, a.OfficerDashboardPage)

	return r
}

// Handler returns the root http.Handler.
func (a *API) Handler() http.Handler {
	return a.router
}

func (a *API) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    serviceName,
		"version": a.version,
		"links": map[string]string{
			"submit": "/submit",
			"track":  "/track",
			"login":  loginPath,
		},
	})
}

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": serviceName,
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := a.ready.Check(ctx); err != nil {
		obs.SetReady(false)
		obs.Error("readiness check failed", err, map[string]any{
			"request_id": audit.RequestIDFromContext(r.Context()),
		})
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
		})
		return
	}
	obs.SetReady(true)
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}
