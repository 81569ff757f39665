package auth

import (
	"fmt"
	"strings"
)

// RoleName is the wire and storage form of a role.
type RoleName string

const (
	RoleAdmin   RoleName = "ADMIN"
	RoleOfficer RoleName = "OFFICER"
	RoleCitizen RoleName = "CITIZEN"
)

// Role is a closed set: Admin, Officer or Citizen. The unexported method keeps
// other packages from adding variants; branch on a Role with MatchRole.
type Role interface {
	Name() RoleName
	sealed()
}

// Admin is unscoped.
type Admin struct{}

// Officer is scoped to exactly one ward.
type Officer struct {
	Ward int
}

// Citizen never holds a session.
type Citizen struct{}

func (Admin) Name() RoleName   { return RoleAdmin }
func (Officer) Name() RoleName { return RoleOfficer }
func (Citizen) Name() RoleName { return RoleCitizen }

func (Admin) sealed()   {}
func (Officer) sealed() {}
func (Citizen) sealed() {}

// MatchRole dispatches on the role variant. Every decision keyed on role goes
// through here so a new variant breaks each call site at compile time.
func MatchRole[T any](r Role, admin func(Admin) T, officer func(Officer) T, citizen func(Citizen) T) T {
	switch v := r.(type) {
	case Admin:
		return admin(v)
	case Officer:
		return officer(v)
	case Citizen:
		return citizen(v)
	default:
		panic(fmt.Sprintf("auth: unknown role variant %T", r))
	}
}

// ParseRole builds a Role from its stored name and optional ward, enforcing
// that officers carry a positive ward.
func ParseRole(name string, ward *int) (Role, error) {
	switch RoleName(strings.ToUpper(strings.TrimSpace(name))) {
	case RoleAdmin:
		return Admin{}, nil
	case RoleOfficer:
		if ward == nil || *ward <= 0 {
			return nil, fmt.Errorf("%w: officer requires a ward", ErrInvalidInput)
		}
		return Officer{Ward: *ward}, nil
	case RoleCitizen:
		return Citizen{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, name)
	}
}

// WardOf returns the officer ward; admins and citizens have none.
func WardOf(r Role) (int, bool) {
	type scoped struct {
		ward int
		ok   bool
	}
	s := MatchRole(r,
		func(Admin) scoped { return scoped{} },
		func(o Officer) scoped { return scoped{ward: o.Ward, ok: true} },
		func(Citizen) scoped { return scoped{} },
	)
	return s.ward, s.ok
}

// CanSignIn reports whether the role may hold a session.
func CanSignIn(r Role) bool {
	return MatchRole(r,
		func(Admin) bool { return true },
		func(Officer) bool { return true },
		func(Citizen) bool { return false },
	)
}
