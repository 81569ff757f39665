package complaint

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"civictrack.org/internal/audit"
	"civictrack.org/internal/auth"
	"civictrack.org/internal/ids"
	"civictrack.org/internal/obs"
)

// Service owns the complaint lifecycle: submission, scoped reads, status
// mutation and the SLA-derived aggregates.
type Service struct {
	store  Store
	policy TransitionPolicy
	now    func() time.Time
}

// Option configures Service behavior.
type Option func(*Service)

// WithClock overrides time source (useful for tests).
func WithClock(fn func() time.Time) Option {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// WithPolicy installs a transition policy. The default is Permissive.
func WithPolicy(p TransitionPolicy) Option {
	return func(s *Service) {
		if p != nil {
			s.policy = p
		}
	}
}

// NewService wires the complaint store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		policy: Permissive{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit records a citizen report as a new OPEN complaint.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Complaint, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	if in.Name == "" || in.Phone == "" || in.Category == "" || in.Description == "" {
		return Complaint{}, fmt.Errorf("%w: name, phone, category and description are required", ErrInvalidInput)
	}
	if in.Ward <= 0 {
		return Complaint{}, fmt.Errorf("%w: ward must be a positive integer", ErrInvalidInput)
	}

	now := s.now().UTC()
	c := Complaint{
		ID:          ids.New(),
		ComplaintID: ids.Tracking(),
		Name:        in.Name,
		Phone:       in.Phone,
		Ward:        in.Ward,
		Category:    in.Category,
		Description: in.Description,
		Status:      StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.ImageURL != "" {
		c.ImageURL = &in.ImageURL
	}
	created, err := s.store.CreateComplaint(ctx, c)
	if err != nil {
		return Complaint{}, fmt.Errorf("create complaint: %w", err)
	}
	_ = audit.LogEvent(ctx, "complaint.submitted", map[string]any{
		"complaint_id": created.ComplaintID,
		"ward":         created.Ward,
		"category":     created.Category,
	})
	return created, nil
}

// Track looks a complaint up by its public identifier.
func (s *Service) Track(ctx context.Context, complaintID string) (PublicView, error) {
	complaintID = strings.ToUpper(strings.TrimSpace(complaintID))
	if complaintID == "" {
		return PublicView{}, fmt.Errorf("%w: complaint id is required", ErrInvalidInput)
	}
	c, err := s.store.GetComplaintByTrackingID(ctx, complaintID)
	if err != nil {
		return PublicView{}, err
	}
	return publicView(c, BreachStatus(c.CreatedAt, c.Status, s.now())), nil
}

// List returns the complaints visible to actor, newest first. Officers are
// always confined to their ward regardless of f.Ward.
func (s *Service) List(ctx context.Context, actor auth.Principal, f Filter) ([]View, error) {
	ward, err := scopeOf(actor)
	if err != nil {
		return nil, err
	}
	if ward != nil {
		f.Ward = ward
	}
	items, err := s.store.ListComplaints(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	return s.evaluateAll(items), nil
}

// Get returns one complaint if actor may see it.
func (s *Service) Get(ctx context.Context, actor auth.Principal, id string) (View, error) {
	c, err := s.scopedGet(ctx, actor, id)
	if err != nil {
		return View{}, err
	}
	return Evaluate(c, s.now()), nil
}

// SetStatus writes status, notes and updatedAt as one record update. A nil
// notes clears any previous notes.
func (s *Service) SetStatus(ctx context.Context, actor auth.Principal, id string, to Status, notes *string) (View, error) {
	to, err := ParseStatus(string(to))
	if err != nil {
		return View{}, err
	}
	current, err := s.scopedGet(ctx, actor, id)
	if err != nil {
		return View{}, err
	}
	if err := s.policy.Allow(ctx, actor, current.Status, to); err != nil {
		return View{}, err
	}

	updated, err := s.store.UpdateComplaintStatus(ctx, current.ID, StatusUpdate{
		Status:    to,
		Notes:     notes,
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		return View{}, fmt.Errorf("update complaint status: %w", err)
	}
	obs.ObserveStatusChange(string(to))
	_ = audit.LogEvent(ctx, "complaint.status.updated", map[string]any{
		"complaint_id": updated.ComplaintID,
		"ward":         updated.Ward,
		"from":         string(current.Status),
		"to":           string(to),
	})
	return Evaluate(updated, s.now()), nil
}

// Overview computes the admin dashboard aggregates. Every call runs its own
// store scan, so the result reflects all writes committed before the call.
func (s *Service) Overview(ctx context.Context, actor auth.Principal) (Overview, error) {
	if !isAdmin(actor) {
		return Overview{}, fmt.Errorf("%w: overview requires an administrator", ErrForbidden)
	}
	items, err := s.store.ListComplaints(ctx, Filter{})
	if err != nil {
		return Overview{}, fmt.Errorf("list complaints: %w", err)
	}
	o := Summarize(s.evaluateAll(items))
	obs.SetBreached(o.Breached)
	return o, nil
}

// OfficerDashboard lists the officer's ward, optionally filtered by status,
// with headline counts over the listed complaints.
func (s *Service) OfficerDashboard(ctx context.Context, actor auth.Principal, status *Status) (OfficerDashboard, error) {
	ward, ok := actor.Ward()
	if !ok {
		return OfficerDashboard{}, fmt.Errorf("%w: dashboard requires an officer", ErrForbidden)
	}
	views, err := s.List(ctx, actor, Filter{Status: status})
	if err != nil {
		return OfficerDashboard{}, err
	}
	return OfficerDashboard{Ward: ward, Complaints: views, Stats: officerStats(views)}, nil
}

func (s *Service) scopedGet(ctx context.Context, actor auth.Principal, id string) (Complaint, error) {
	ward, err := scopeOf(actor)
	if err != nil {
		return Complaint{}, err
	}
	c, err := s.store.GetComplaint(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Complaint{}, err
		}
		return Complaint{}, fmt.Errorf("get complaint: %w", err)
	}
	if ward != nil && c.Ward != *ward {
		return Complaint{}, fmt.Errorf("%w: complaint %s is in another ward", ErrForbidden, id)
	}
	return c, nil
}

func (s *Service) evaluateAll(items []Complaint) []View {
	now := s.now()
	views := make([]View, len(items))
	for i, c := range items {
		views[i] = Evaluate(c, now)
	}
	return views
}

// scopeOf returns the ward actor is confined to; nil means unscoped.
func scopeOf(actor auth.Principal) (*int, error) {
	if actor.Role == nil {
		return nil, fmt.Errorf("%w: no principal", ErrForbidden)
	}
	type scope struct {
		ward *int
		err  error
	}
	sc := auth.MatchRole(actor.Role,
		func(auth.Admin) scope { return scope{} },
		func(o auth.Officer) scope {
			w := o.Ward
			return scope{ward: &w}
		},
		func(auth.Citizen) scope {
			return scope{err: fmt.Errorf("%w: citizens cannot manage complaints", ErrForbidden)}
		},
	)
	return sc.ward, sc.err
}

func isAdmin(actor auth.Principal) bool {
	if actor.Role == nil {
		return false
	}
	return auth.MatchRole(actor.Role,
		func(auth.Admin) bool { return true },
		func(auth.Officer) bool { return false },
		func(auth.Citizen) bool { return false },
	)
}
