// Package httpjson holds the small JSON response helpers shared by the
// API handlers, including the apierr -> HTTP status mapping.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/hackhub/internal/app/system/apierr"
)

// Write encodes v as the JSON response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error body with the status implied by the error's
// place in the apierr taxonomy. Unknown errors become 500 with a generic
// message; the detailed error stays in the server log, not the payload.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apierr.ErrUnauthorized):
		Write(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	case errors.Is(err, apierr.ErrForbidden):
		Write(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	case errors.Is(err, apierr.ErrNotFound):
		Write(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, apierr.ErrValidation):
		Write(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		Write(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// Decode reads the request body into dst, returning a Validation error on
// malformed JSON so handlers surface a 400 instead of a 500.
func Decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return apierr.Validationf("empty request body")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierr.Validationf("malformed JSON body")
	}
	return nil
}
