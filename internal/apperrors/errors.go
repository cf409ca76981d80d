package apperrors

import "errors"

// Sentinel errors shared by repositories and services. Handlers map these
// to HTTP status codes in pkg/utils.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidState      = errors.New("resource is in an invalid state")
	ErrValidation        = errors.New("invalid input data")
	ErrInsufficientStock = errors.New("not enough stock available")
	ErrStoreWrite        = errors.New("database write failed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("duplicate resource")
)

// Is reports whether err wraps target. Thin alias so callers don't need to
// import both errors and this package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
