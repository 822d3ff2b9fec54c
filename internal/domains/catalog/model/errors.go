package model

import "errors"

var (
	// Validation Errors
	ErrInvalidInput = errors.New("invalid input")

	// Lookup Errors
	ErrAuthorNotFound  = errors.New("author not found")
	ErrAuthorAmbiguous = errors.New("more than one author matches the given name")
)

// Error codes exposed to API clients.
const (
	CodeInvalidInput    = "INVALID_INPUT"
	CodeAuthorNotFound  = "AUTHOR_NOT_FOUND"
	CodeAuthorAmbiguous = "AUTHOR_AMBIGUOUS"
	CodeInternal        = "INTERNAL_ERROR"
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return CodeAuthorNotFound
	case errors.Is(err, ErrAuthorAmbiguous):
		return CodeAuthorAmbiguous
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	default:
		return CodeInternal
	}
}
