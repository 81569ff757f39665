package complaint

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("complaint not found")
	ErrForbidden        = errors.New("complaint outside caller scope")
	ErrTransitionDenied = errors.New("status transition denied")
)
