// Package inputval validates caller-supplied identifiers and scores
// before they reach a store or the scoring engine.
package inputval

import (
	"net/mail"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsValidObjectID reports whether id is a well-formed 24-char hex Mongo
// ObjectID. Malformed identifiers are a ValidationFailure, not a NotFound.
func IsValidObjectID(id string) bool {
	_, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	return err == nil
}

// IsValidEmail reports whether s parses as a bare RFC 5322 address.
// Display-name forms ("Name <a@b>") are rejected.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

// InSubmissionRange reports whether a submission score is within 0-100.
func InSubmissionRange(score float64) bool {
	return score >= 0 && score <= 100
}

// InCriterionRange reports whether a judging sub-criterion is within 0-10.
// A nil pointer means "not scored" and is always acceptable.
func InCriterionRange(score *float64) bool {
	if score == nil {
		return true
	}
	return *score >= 0 && *score <= 10
}
