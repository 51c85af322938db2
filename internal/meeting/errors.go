package meeting

import "errors"

var (
	// ErrValidation marks a schedule request that was rejected before any session existed.
	ErrValidation = errors.New("validation error")
	// ErrConflict marks a request whose id belongs to a session that is still active.
	ErrConflict = errors.New("meeting already scheduled")
)
