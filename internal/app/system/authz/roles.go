// internal/app/system/authz/roles.go
package authz

// Role is the closed set of caller roles. Anonymous is the absence of a
// session; it still resolves to a usable (public) event view.
type Role string

const (
	RoleOrganizer   Role = "organizer"
	RoleParticipant Role = "participant"
	RoleJudge       Role = "judge"
	RoleAnonymous   Role = "anonymous"
)

// ParseRole normalizes a stored role string onto the closed enum.
// Unknown values collapse to Anonymous so a corrupted session can never
// widen access.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleOrganizer, RoleParticipant, RoleJudge:
		return Role(s)
	}
	return RoleAnonymous
}
