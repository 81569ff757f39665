package httpapi

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"civictrack.org/internal/auth"
	"civictrack.org/internal/complaint"
)

type submitRequest struct {
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Ward        wardValue `json:"ward"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
}

type submitResponse struct {
	ComplaintID string           `json:"complaintId"`
	ID          string           `json:"id"`
	Status      complaint.Status `json:"status"`
}

type statusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// SubmitComplaint accepts a citizen report as JSON.
func (a *API) SubmitComplaint(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	c, err := a.complaints.Submit(r.Context(), complaint.SubmitInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Ward:        int(req.Ward),
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, submitResponse{ComplaintID: c.ComplaintID, ID: c.ID, Status: c.Status})
}

// SubmitPage describes the public submission form.
func (a *API) SubmitPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"page":       "submit",
		"action":     "/submit",
		"method":     http.MethodPost,
		"fields":     []string{"name", "phone", "ward", "category", "description", "imageUrl"},
		"categories": complaint.Categories,
	})
}

// SubmitForm accepts the urlencoded form and redirects to the success page.
func (a *API) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid form body")
		return
	}
	ward, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("ward")))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "ward must be a positive integer")
		return
	}
	c, err := a.complaints.Submit(r.Context(), complaint.SubmitInput{
		Name:        r.PostForm.Get("name"),
		Phone:       r.PostForm.Get("phone"),
		Ward:        ward,
		Category:    r.PostForm.Get("category"),
		Description: r.PostForm.Get("description"),
		ImageURL:    r.PostForm.Get("imageUrl"),
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	http.Redirect(w, r, "/submit/success?id="+url.QueryEscape(c.ComplaintID), http.StatusSeeOther)
}

func (a *API) SubmitSuccess(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "id is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"page":        "submit-success",
		"complaintId": id,
		"track":       "/track?id=" + url.QueryEscape(id),
	})
}

// TrackPage looks a complaint up by ?id=. Without an id it describes the form.
func (a *API) TrackPage(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"page":   "track",
			"action": "/track",
			"fields": []string{"id"},
		})
		return
	}
	a.track(w, r, id)
}

func (a *API) TrackComplaint(w http.ResponseWriter, r *http.Request) {
	a.track(w, r, chi.URLParam(r, "complaintID"))
}

func (a *API) track(w http.ResponseWriter, r *http.Request, id string) {
	v, err := a.complaints.Track(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// UpdateStatus sets status and notes on one complaint. Officers only reach
// their own ward; anything else looks like a missing complaint.
func (a *API) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, isStaff)
	if !ok {
		return
	}
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	v, err := a.complaints.SetStatus(r.Context(), actor, chi.URLParam(r, "id"), complaint.Status(req.Status), req.Notes)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (a *API) AdminDashboardAPI(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, isAdmin)
	if !ok {
		return
	}
	o, err := a.complaints.Overview(r.Context(), actor)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (a *API) OfficerDashboardAPI(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, isOfficer)
	if !ok {
		return
	}
	a.officerDashboard(w, r, actor)
}

func (a *API) officerDashboard(w http.ResponseWriter, r *http.Request, actor auth.Principal) {
	var status *complaint.Status
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		st, err := complaint.ParseStatus(raw)
		if err != nil {
			respondErr(w, r, err)
			return
		}
		status = &st
	}
	d, err := a.complaints.OfficerDashboard(r.Context(), actor, status)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// DashboardHome sends the signed-in user to their role's dashboard.
func (a *API) DashboardHome(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		redirect(w, r, loginPath)
		return
	}
	redirect(w, r, homeFor(p.Role))
}

// The page handlers below sit behind the session middleware, which has
// already confined each subtree to its role.

func (a *API) AdminDashboardPage(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, isAdmin)
	if !ok {
		return
	}
	o, err := a.complaints.Overview(r.Context(), actor)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"page":     "admin",
		"user":     actor.Name,
		"overview": o,
	})
}

func (a *API) AdminUsersPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, isAdmin); !ok {
		return
	}
	users, err := a.auth.ListOfficers(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	officers := make([]officerView, 0, len(users))
	for _, u := range users {
		officers = append(officers, toOfficerView(u))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"page":     "admin-users",
		"officers": officers,
	})
}

func (a *API) AdminWardsPage(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, isAdmin)
	if !ok {
		return
	}
	o, err := a.complaints.Overview(r.Context(), actor)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"page":  "admin-wards",
		"wards": o.ByWard,
	})
}

func (a *API) AdminAnalyticsPage(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, isAdmin)
	if !ok {
		return
	}
	o, err := a.complaints.Overview(r.Context(), actor)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"page":       "admin-analytics",
		"total":      o.Total,
		"byCategory": o.ByCategory,
		"byStatus":   o.ByStatus,
	})
}

func (a *API) OfficerDashboardPage(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, isOfficer)
	if !ok {
		return
	}
	a.officerDashboard(w, r, actor)
}
