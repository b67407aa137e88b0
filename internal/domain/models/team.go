// internal/domain/models/team.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team belongs to one event. Score is the only field the scoring engine
// owns: it is a denormalized value recomputed from evaluations (or
// reviewed submissions) and always replaced wholesale, never incremented.
type Team struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	EventID   primitive.ObjectID   `bson:"event_id" json:"event_id"`
	Name      string               `bson:"name" json:"name"`
	NameCI    string               `bson:"name_ci" json:"name_ci"`
	MemberIDs []primitive.ObjectID `bson:"member_ids,omitempty" json:"member_ids,omitempty"`
	Score     float64              `bson:"score" json:"score"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
