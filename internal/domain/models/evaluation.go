// internal/domain/models/evaluation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Evaluation statuses.
const (
	EvaluationStatusPending  = "pending"
	EvaluationStatusComplete = "complete"
)

// CriteriaScores holds the four judging sub-criteria, each on a 0-10
// scale. Pointers distinguish "not scored" from an explicit zero; a nil
// criterion is skipped during aggregation, never treated as 0.
type CriteriaScores struct {
	Innovation   *float64 `bson:"innovation,omitempty" json:"innovation,omitempty"`
	Impact       *float64 `bson:"impact,omitempty" json:"impact,omitempty"`
	Feasibility  *float64 `bson:"feasibility,omitempty" json:"feasibility,omitempty"`
	Presentation *float64 `bson:"presentation,omitempty" json:"presentation,omitempty"`
}

// Present returns the criterion values that have been scored, in a fixed
// order (innovation, impact, feasibility, presentation).
func (c CriteriaScores) Present() []float64 {
	var out []float64
	for _, p := range []*float64{c.Innovation, c.Impact, c.Feasibility, c.Presentation} {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// Evaluation is one judge's scored assessment of one team for one event.
// The (event_id, team_id, judge_id) triple is unique; records are only
// ever upserted, never deleted.
type Evaluation struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID primitive.ObjectID `bson:"event_id" json:"event_id"`
	TeamID  primitive.ObjectID `bson:"team_id" json:"team_id"`
	JudgeID primitive.ObjectID `bson:"judge_id" json:"judge_id"`

	Scores   CriteriaScores `bson:"scores" json:"scores"`
	Comments string         `bson:"comments,omitempty" json:"comments,omitempty"`
	Status   string         `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
