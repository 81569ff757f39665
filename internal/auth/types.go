package auth

import "time"

// Principal is the authenticated identity carried by a session token.
type Principal struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

// Ward returns the principal's ward when the role is scoped to one.
func (p Principal) Ward() (int, bool) {
	if p.Role == nil {
		return 0, false
	}
	return WardOf(p.Role)
}

// User is a stored account row.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         RoleName  `json:"role"`
	Ward         *int      `json:"ward,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Principal converts a stored user into a Principal, validating the role invariants.
func (u User) Principal() (Principal, error) {
	role, err := ParseRole(string(u.Role), u.Ward)
	if err != nil {
		return Principal{}, err
	}
	return Principal{ID: u.ID, Name: u.Name, Email: u.Email, Role: role}, nil
}

// Session is an issued session token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// OfficerInput is the payload for creating an officer account.
type OfficerInput struct {
	Name     string
	Email    string
	Password string
	Ward     int
}
