package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"civictrack.org/internal/audit"
	"civictrack.org/internal/auth"
)

// wardValue accepts a ward as a JSON number or a numeric string.
type wardValue int

func (w *wardValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*w = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*w = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("ward %q is not a number", s)
		}
		*w = wardValue(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("ward must be an integer")
	}
	*w = wardValue(n)
	return nil
}

type createOfficerRequest struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Ward     wardValue `json:"ward"`
}

type officerView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Ward      *int      `json:"ward"`
	CreatedAt time.Time `json:"createdAt"`
}

func toOfficerView(u auth.User) officerView {
	return officerView{ID: u.ID, Name: u.Name, Email: u.Email, Ward: u.Ward, CreatedAt: u.CreatedAt}
}

func (a *API) ListOfficers(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, isAdmin); !ok {
		return
	}
	users, err := a.auth.ListOfficers(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	out := make([]officerView, 0, len(users))
	for _, u := range users {
		out = append(out, toOfficerView(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) CreateOfficer(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, isAdmin); !ok {
		return
	}
	var req createOfficerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	user, err := a.auth.CreateOfficer(r.Context(), auth.OfficerInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Ward:     int(req.Ward),
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "officer.created", map[string]any{
		"officer_id": user.ID,
		"ward":       user.Ward,
	})
	writeJSON(w, http.StatusCreated, toOfficerView(user))
}
