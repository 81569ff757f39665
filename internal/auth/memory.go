package auth

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"civictrack.org/internal/ids"
)

var _ UserStore = (*InMemoryUsers)(nil)

// InMemoryUsers implements UserStore with in-process concurrency safety.
type InMemoryUsers struct {
	mu      sync.RWMutex
	byEmail map[string]User
	now     func() time.Time
}

// NewInMemoryUsers creates an empty user store.
func NewInMemoryUsers() *InMemoryUsers {
	return &InMemoryUsers{
		byEmail: make(map[string]User),
		now:     time.Now,
	}
}

func (s *InMemoryUsers) FindUserByEmail(ctx context.Context, email string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return User{}, ErrNotFound
	}
	return copyUser(u), nil
}

func (s *InMemoryUsers) CreateUser(ctx context.Context, u User) (User, error) {
	key := normalizeEmail(u.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[key]; exists {
		return User{}, ErrAlreadyExists
	}
	if u.ID == "" {
		u.ID = ids.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now().UTC()
	}
	u.Email = key
	u = copyUser(u)
	s.byEmail[key] = u
	return copyUser(u), nil
}

func (s *InMemoryUsers) ListUsersByRole(ctx context.Context, role RoleName) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []User
	for _, u := range s.byEmail {
		if u.Role == role {
			out = append(out, copyUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func copyUser(u User) User {
	if u.Ward != nil {
		w := *u.Ward
		u.Ward = &w
	}
	return u
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
