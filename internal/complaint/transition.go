package complaint

import (
	"context"

	"civictrack.org/internal/auth"
)

// TransitionPolicy decides whether actor may move a complaint from one status
// to another. A non-nil error vetoes the write; implementations should wrap
// ErrTransitionDenied.
type TransitionPolicy interface {
	Allow(ctx context.Context, actor auth.Principal, from, to Status) error
}

// TransitionFunc adapts a function to TransitionPolicy.
type TransitionFunc func(ctx context.Context, actor auth.Principal, from, to Status) error

func (f TransitionFunc) Allow(ctx context.Context, actor auth.Principal, from, to Status) error {
	return f(ctx, actor, from, to)
}

// Permissive allows any status to follow any other, regressions included.
type Permissive struct{}

func (Permissive) Allow(context.Context, auth.Principal, Status, Status) error { return nil }
