// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input provided")
	ErrKidNotFound  = errors.New("kid not found")
	ErrEmptyName    = errors.New("name must not be empty")
	ErrUnknownColor = errors.New("color is not in the palette")
	ErrNotLoaded    = errors.New("state has not been loaded yet")
)

// IsError reports whether any error in err's chain matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
