// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/hackhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Caller is the resolved identity of the current request, as consumed by
// the view policy and handlers. For anonymous requests Role is
// RoleAnonymous and ID is the nil ObjectID.
type Caller struct {
	ID    primitive.ObjectID
	Role  Role
	Email string
	Name  string
}

// Anonymous reports whether the caller has no authenticated identity.
func (c Caller) Anonymous() bool {
	return c.Role == RoleAnonymous || c.ID.IsZero()
}

// CallerCtx resolves the request's caller. Unlike UserCtx it never
// fails: an absent or malformed session yields the anonymous caller,
// which is a legitimate identity for public dashboard reads.
func CallerCtx(r *http.Request) Caller {
	role, name, uid, ok := UserCtx(r)
	if !ok {
		return Caller{Role: RoleAnonymous}
	}
	email := ""
	if user, found := auth.CurrentUser(r); found {
		email = user.Email
	}
	return Caller{ID: uid, Role: ParseRole(role), Email: email, Name: name}
}

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID, and a
// found flag. If no user is present in context or the user ID is malformed,
// it returns "anonymous", "", NilObjectID, false. This ensures callers can
// trust that ok=true means a valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return string(RoleAnonymous), "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return string(RoleAnonymous), "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// IsOrganizer reports whether the current request's user is an organizer.
func IsOrganizer(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == string(RoleOrganizer)
}

// IsJudge reports whether the current request's user is a judge.
func IsJudge(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == string(RoleJudge)
}

// IsParticipant reports whether the current request's user is a participant.
func IsParticipant(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == string(RoleParticipant)
}
