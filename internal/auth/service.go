package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// Service authenticates staff and manages officer accounts.
type Service struct {
	users  UserStore
	hasher *Hasher
	codec  *Codec
}

// NewService wires the user store, credential verifier and session codec.
func NewService(users UserStore, hasher *Hasher, codec *Codec) (*Service, error) {
	if users == nil {
		return nil, errors.New("auth: user store is required")
	}
	if hasher == nil {
		return nil, errors.New("auth: hasher is required")
	}
	if codec == nil {
		return nil, ErrMissingSecret
	}
	return &Service{users: users, hasher: hasher, codec: codec}, nil
}

// Codec returns the session codec used for issued tokens.
func (s *Service) Codec() *Codec { return s.codec }

// Login verifies credentials and issues a session. Unknown email, wrong
// password and non-staff accounts all yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (Session, Principal, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, Principal{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.users.FindUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		s.hasher.Burn(password)
		return Session{}, Principal{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, Principal{}, fmt.Errorf("find user: %w", err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return Session{}, Principal{}, ErrInvalidCredentials
	}

	principal, err := user.Principal()
	if err != nil {
		return Session{}, Principal{}, fmt.Errorf("user %s: %v", user.ID, err)
	}
	if !CanSignIn(principal.Role) {
		return Session{}, Principal{}, ErrInvalidCredentials
	}

	session, err := s.codec.Encode(principal)
	if err != nil {
		return Session{}, Principal{}, err
	}
	return session, principal, nil
}

// CreateOfficer validates input, rejects duplicate emails and stores a new
// OFFICER account. The returned user never carries the password hash.
func (s *Service) CreateOfficer(ctx context.Context, in OfficerInput) (User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Ward == 0 {
		return User{}, fmt.Errorf("%w: all fields are required", ErrInvalidInput)
	}
	if in.Ward < 0 {
		return User{}, fmt.Errorf("%w: ward must be positive", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return User{}, fmt.Errorf("%w: email is malformed", ErrInvalidInput)
	}

	_, err := s.users.FindUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return User{}, fmt.Errorf("%w: email already in use", ErrAlreadyExists)
	case !errors.Is(err, ErrNotFound):
		return User{}, fmt.Errorf("find user: %w", err)
	}

	hash, err := s.hasher.HashPassword(in.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	ward := in.Ward
	created, err := s.users.CreateUser(ctx, User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         RoleOfficer,
		Ward:         &ward,
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return User{}, fmt.Errorf("%w: email already in use", ErrAlreadyExists)
		}
		return User{}, fmt.Errorf("create officer: %w", err)
	}
	created.PasswordHash = ""
	return created, nil
}

// ListOfficers returns officer accounts newest first, without password hashes.
func (s *Service) ListOfficers(ctx context.Context) ([]User, error) {
	users, err := s.users.ListUsersByRole(ctx, RoleOfficer)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// AdminInput is the bootstrap administrator account.
type AdminInput struct {
	Name     string
	Email    string
	Password string
}

// EnsureAdmin creates the administrator account unless the email is already
// registered. created reports whether a row was written.
func EnsureAdmin(ctx context.Context, users UserStore, hasher *Hasher, in AdminInput) (user User, created bool, err error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Email == "" || in.Password == "" {
		return User{}, false, fmt.Errorf("%w: admin email and password are required", ErrInvalidInput)
	}
	if in.Name == "" {
		in.Name = "System Admin"
	}
	existing, err := users.FindUserByEmail(ctx, in.Email)
	if err == nil {
		existing.PasswordHash = ""
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, false, err
	}
	hash, err := hasher.HashPassword(in.Password)
	if err != nil {
		return User{}, false, err
	}
	user, err = users.CreateUser(ctx, User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         RoleAdmin,
	})
	if err != nil {
		return User{}, false, err
	}
	user.PasswordHash = ""
	return user, true, nil
}
