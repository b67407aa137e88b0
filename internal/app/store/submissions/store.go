// internal/app/store/submissions/store.go
package submissions

import (
	"context"
	"time"

	"github.com/dalemusser/hackhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages project submissions.
type Store struct {
	c *mongo.Collection
}

// New creates a new submissions Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("submissions")}
}

// Create inserts a new submission in draft status with a zero score.
func (s *Store) Create(ctx context.Context, sub models.Submission) (models.Submission, error) {
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = now
	}
	sub.UpdatedAt = now
	if sub.Status == "" {
		sub.Status = models.SubmissionStatusDraft
	}

	_, err := s.c.InsertOne(ctx, sub)
	return sub, err
}

// GetByID returns a submission, or (nil, nil) if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error) {
	var sub models.Submission
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// SetStatus moves a submission through draft -> submitted.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// SetScore records an organizer/judge score and marks the submission
// reviewed. Range validation happens in the handler before this runs.
func (s *Store) SetScore(ctx context.Context, id primitive.ObjectID, score float64) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"score":      score,
		"status":     models.SubmissionStatusReviewed,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ReviewedScoresForTeam returns the scores of a team's reviewed
// submissions. This is the scoring fallback when no evaluations exist.
func (s *Store) ReviewedScoresForTeam(ctx context.Context, eventID, teamID primitive.ObjectID) ([]float64, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"event_id": eventID,
		"team_id":  teamID,
		"status":   models.SubmissionStatusReviewed,
	}, options.Find().SetProjection(bson.M{"score": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []float64
	for cur.Next(ctx) {
		var row struct {
			Score float64 `bson:"score"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out = append(out, row.Score)
	}
	return out, cur.Err()
}

// Leaderboard returns an event's reviewed submissions ranked score desc
// with earlier creation winning ties. Drafts and unreviewed submissions
// carry no meaningful score and never rank.
func (s *Store) Leaderboard(ctx context.Context, eventID primitive.ObjectID, limit int64) ([]models.Submission, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "score", Value: -1},
		{Key: "created_at", Value: 1},
	})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{
		"event_id": eventID,
		"status":   models.SubmissionStatusReviewed,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Submission
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByEvent returns an event's submissions, newest first.
func (s *Store) ListByEvent(ctx context.Context, eventID primitive.ObjectID, limit int64) ([]models.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Submission
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
