package store

import "errors"

var (
	// ErrNotFound means the referenced record does not exist. Also
	// returned by Authenticate on bad credentials so login fails closed
	// without revealing which half was wrong.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateUsername is returned by Register when the username is
	// already taken (exact, case-sensitive match).
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrValidation wraps missing-required-field failures.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden covers self-awards and attempts to remove admin users.
	ErrForbidden = errors.New("operation not permitted")
)
