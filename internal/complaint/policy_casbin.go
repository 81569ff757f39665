package complaint

import (
	"context"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"civictrack.org/internal/auth"
)

const transitionModel = `
[request_definition]
r = sub, from, to

[policy_definition]
p = sub, from, to

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && (p.from == "*" || r.from == p.from) && (p.to == "*" || r.to == p.to)
`

// CasbinPolicy evaluates transitions against (role, from, to) rules.
type CasbinPolicy struct {
	enforcer *casbin.SyncedEnforcer
}

// NewCasbinPolicy builds an empty rule set; add rules with AllowTransition.
func NewCasbinPolicy() (*CasbinPolicy, error) {
	m, err := model.NewModelFromString(transitionModel)
	if err != nil {
		return nil, fmt.Errorf("transition model: %w", err)
	}
	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("transition enforcer: %w", err)
	}
	return &CasbinPolicy{enforcer: e}, nil
}

// AllowTransition permits role to move from -> to. "*" matches any status.
func (p *CasbinPolicy) AllowTransition(role auth.RoleName, from, to string) error {
	_, err := p.enforcer.AddPolicy(string(role), from, to)
	return err
}

func (p *CasbinPolicy) Allow(_ context.Context, actor auth.Principal, from, to Status) error {
	if actor.Role == nil {
		return fmt.Errorf("%w: no actor", ErrTransitionDenied)
	}
	ok, err := p.enforcer.Enforce(string(actor.Role.Name()), string(from), string(to))
	if err != nil {
		return fmt.Errorf("enforce transition: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s may not move %s to %s", ErrTransitionDenied, actor.Role.Name(), from, to)
	}
	return nil
}

// ForwardOnly lets admins set any status and restricts officers to moves that
// never go back in the lifecycle. Same-status writes stay allowed so notes can
// be edited.
func ForwardOnly() (*CasbinPolicy, error) {
	p, err := NewCasbinPolicy()
	if err != nil {
		return nil, err
	}
	if err := p.AllowTransition(auth.RoleAdmin, "*", "*"); err != nil {
		return nil, err
	}
	for i, from := range Statuses {
		for _, to := range Statuses[i:] {
			if err := p.AllowTransition(auth.RoleOfficer, string(from), string(to)); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

// PolicyByName resolves a configured policy name.
func PolicyByName(name string) (TransitionPolicy, error) {
	switch name {
	case "", "permissive":
		return Permissive{}, nil
	case "forward-only":
		return ForwardOnly()
	default:
		return nil, fmt.Errorf("unknown transition policy %q", name)
	}
}
