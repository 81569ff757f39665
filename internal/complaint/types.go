package complaint

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a complaint.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusClosed     Status = "CLOSED"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

// ParseStatus accepts a status name in any case.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Statuses {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
}

// Categories are the complaint categories offered on the submission form.
var Categories = []string{"Water", "Road", "Electricity", "Garbage", "Other"}

// Terminal reports whether the status stops the SLA clock.
func (s Status) Terminal() bool {
	return s == StatusResolved || s == StatusClosed
}

// Complaint is a citizen-reported civic issue.
type Complaint struct {
	ID          string    `json:"id"`
	ComplaintID string    `json:"complaintId"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Ward        int       `json:"ward"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	Status      Status    `json:"status"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SubmitInput is a citizen submission.
type SubmitInput struct {
	Name        string
	Phone       string
	Ward        int
	Category    string
	Description string
	ImageURL    string
}

// Filter narrows a complaint listing. Nil fields match everything.
type Filter struct {
	Ward   *int
	Status *Status
}

// StatusUpdate is the single-record write performed by SetStatus.
type StatusUpdate struct {
	Status    Status
	Notes     *string
	UpdatedAt time.Time
}

// View is a complaint together with its SLA state as of the read.
type View struct {
	Complaint
	SLA
}

// PublicView is what an anonymous tracker sees: no reporter name or phone.
type PublicView struct {
	ComplaintID string    `json:"complaintId"`
	Ward        int       `json:"ward"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	Status      Status    `json:"status"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	SLA
}

func publicView(c Complaint, sla SLA) PublicView {
	return PublicView{
		ComplaintID: c.ComplaintID,
		Ward:        c.Ward,
		Category:    c.Category,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		Status:      c.Status,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		SLA:         sla,
	}
}

func copyComplaint(c Complaint) Complaint {
	if c.ImageURL != nil {
		v := *c.ImageURL
		c.ImageURL = &v
	}
	if c.Notes != nil {
		v := *c.Notes
		c.Notes = &v
	}
	return c
}
