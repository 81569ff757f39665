package complaint

import "context"

// Store persists complaints. Writes are single-record and atomic; concurrent
// status updates to the same record resolve last-write-wins.
type Store interface {
	CreateComplaint(ctx context.Context, c Complaint) (Complaint, error)
	// GetComplaint and GetComplaintByTrackingID return ErrNotFound for unknown ids.
	GetComplaint(ctx context.Context, id string) (Complaint, error)
	GetComplaintByTrackingID(ctx context.Context, complaintID string) (Complaint, error)
	// ListComplaints returns matches newest first.
	ListComplaints(ctx context.Context, f Filter) ([]Complaint, error)
	UpdateComplaintStatus(ctx context.Context, id string, u StatusUpdate) (Complaint, error)
}
