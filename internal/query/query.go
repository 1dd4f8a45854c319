// Package query turns raw request parameters into validated query intents.
// Nothing in this package touches storage: every failure it reports is a
// caller input problem detected before any statement is executed.
package query

import "errors"

// Validation errors. Callers match them with errors.Is; the wrapped detail
// names the offending parameter.
var (
	ErrInvalidQuery = errors.New("invalid query")
	ErrInvalidID    = errors.New("invalid id type")
	ErrWrongInput   = errors.New("wrong input")
	ErrInvalidInput = errors.New("invalid input")
)

// IsValidation reports whether err is one of the validation errors above.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidQuery) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrWrongInput) ||
		errors.Is(err, ErrInvalidInput)
}
