// Package apierr defines the error taxonomy shared by handlers, policies,
// and the aggregation engine.
//
// Taxonomy:
//   - ErrUnauthorized: no caller identity where one is required.
//   - ErrForbidden: identity present but the role/assignment/ownership
//     relation is missing (judge without an assignment, organizer reading
//     another organizer's event).
//   - ErrNotFound: a referenced event/team/evaluation does not exist.
//   - ErrValidation: malformed identifiers or out-of-range scores.
//
// Aggregation degradation is intentionally NOT an error value: dashboard
// reads that cannot complete return zeroed metrics with a Degraded flag
// instead of failing the whole response.
package apierr

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
)

// Validationf wraps ErrValidation with a caller-facing detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// Forbiddenf wraps ErrForbidden with a caller-facing detail message.
// Keep messages generic: authorization failures must not leak resource
// data in the error payload.
func Forbiddenf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrForbidden}, args...)...)
}

// NotFoundf wraps ErrNotFound with the missing resource's kind.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}
