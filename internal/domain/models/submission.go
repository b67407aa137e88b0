// internal/domain/models/submission.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission statuses.
const (
	SubmissionStatusDraft     = "draft"
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusReviewed  = "reviewed"
)

// Submission is a team's project entry for one event. Score (0-100) is
// assigned directly by organizers or judges; it is the fallback input to
// team scoring when no evaluations exist yet.
type Submission struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID primitive.ObjectID `bson:"event_id" json:"event_id"`
	TeamID  primitive.ObjectID `bson:"team_id" json:"team_id"`

	Title    string  `bson:"title" json:"title"`
	RepoURL  string  `bson:"repo_url,omitempty" json:"repo_url,omitempty"`
	DemoURL  string  `bson:"demo_url,omitempty" json:"demo_url,omitempty"`
	Abstract string  `bson:"abstract,omitempty" json:"abstract,omitempty"`
	Score    float64 `bson:"score" json:"score"`
	Status   string  `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
