// internal/domain/models/judgeassignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JudgeAssignment links a judge to an event. Existence of the pair is
// the sole authorization gate for judge access to that event's
// evaluations.
type JudgeAssignment struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	JudgeID primitive.ObjectID `bson:"judge_id" json:"judge_id"`
	EventID primitive.ObjectID `bson:"event_id" json:"event_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
