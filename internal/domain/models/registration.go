// internal/domain/models/registration.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Registration types.
const (
	RegistrationIndividual = "individual"
	RegistrationTeam       = "team"
)

// Registration is a signup record for one event. Registrations are
// immutable once created; there is no update path.
//
// EmailCI and MemberEmailsCI hold case-folded copies used for the
// participant visibility match (folded on both sides at write time so
// reads never need a case-insensitive scan).
type Registration struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID primitive.ObjectID `bson:"event_id" json:"event_id"`
	Type    string             `bson:"type" json:"type"` // individual | team

	Email   string `bson:"email" json:"email"`
	EmailCI string `bson:"email_ci" json:"email_ci"`

	TeamName       string   `bson:"team_name,omitempty" json:"team_name,omitempty"`
	MemberEmails   []string `bson:"member_emails,omitempty" json:"member_emails,omitempty"`
	MemberEmailsCI []string `bson:"member_emails_ci,omitempty" json:"member_emails_ci,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
