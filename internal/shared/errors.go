package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a unique catalog constraint was violated.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrInUse indicates a delete blocked by references to the record.
	ErrInUse = errors.New("record in use")
	// ErrInvalid indicates a request that fails domain validation.
	ErrInvalid = errors.New("validation failed")
	// ErrInvalidToken indicates a malformed or unverifiable actor token.
	ErrInvalidToken = errors.New("invalid token")
)
