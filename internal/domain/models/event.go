// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event statuses. Status is set by the owning organizer; nothing in the
// analytics engine derives or advances it.
const (
	EventStatusDraft     = "draft"
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
)

// Event is a single hackathon.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"title_ci"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      string             `bson:"status" json:"status"`
	StartDate   time.Time          `bson:"start_date" json:"start_date"`
	EndDate     time.Time          `bson:"end_date" json:"end_date"`
	OrganizerID primitive.ObjectID `bson:"organizer_id" json:"organizer_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ValidEventStatus reports whether s is one of the recognized statuses.
func ValidEventStatus(s string) bool {
	switch s {
	case EventStatusDraft, EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted:
		return true
	}
	return false
}
