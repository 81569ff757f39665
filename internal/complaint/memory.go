package complaint

import (
	"context"
	"sort"
	"sync"
)

var _ Store = (*InMemory)(nil)

// InMemory implements Store in process memory.
type InMemory struct {
	mu         sync.RWMutex
	byID       map[string]Complaint
	byTracking map[string]string
}

// NewInMemory creates an empty complaint store.
func NewInMemory() *InMemory {
	return &InMemory{
		byID:       make(map[string]Complaint),
		byTracking: make(map[string]string),
	}
}

func (s *InMemory) CreateComplaint(ctx context.Context, c Complaint) (Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[c.ID]; exists {
		return Complaint{}, ErrInvalidInput
	}
	if _, exists := s.byTracking[c.ComplaintID]; exists {
		return Complaint{}, ErrInvalidInput
	}
	c = copyComplaint(c)
	s.byID[c.ID] = c
	s.byTracking[c.ComplaintID] = c.ID
	return copyComplaint(c), nil
}

func (s *InMemory) GetComplaint(ctx context.Context, id string) (Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	if !ok {
		return Complaint{}, ErrNotFound
	}
	return copyComplaint(c), nil
}

func (s *InMemory) GetComplaintByTrackingID(ctx context.Context, complaintID string) (Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byTracking[complaintID]
	if !ok {
		return Complaint{}, ErrNotFound
	}
	return copyComplaint(s.byID[id]), nil
}

func (s *InMemory) ListComplaints(ctx context.Context, f Filter) ([]Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Complaint, 0, len(s.byID))
	for _, c := range s.byID {
		if f.Ward != nil && c.Ward != *f.Ward {
			continue
		}
		if f.Status != nil && c.Status != *f.Status {
			continue
		}
		out = append(out, copyComplaint(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemory) UpdateComplaintStatus(ctx context.Context, id string, u StatusUpdate) (Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return Complaint{}, ErrNotFound
	}
	c.Status = u.Status
	c.Notes = u.Notes
	c.UpdatedAt = u.UpdatedAt
	c = copyComplaint(c)
	s.byID[id] = c
	return copyComplaint(c), nil
}
