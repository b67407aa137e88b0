// internal/app/store/evaluations/store.go
package evaluations

import (
	"context"
	"time"

	"github.com/dalemusser/hackhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages judge evaluations. Records are only ever upserted keyed
// on the unique (event_id, team_id, judge_id) triple; nothing deletes
// them.
type Store struct {
	c *mongo.Collection
}

// New creates a new evaluations Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("evaluations")}
}

// Upsert creates or replaces the judge's evaluation for (event, team).
// A second upsert for the same triple updates in place - the unique
// index guarantees the store never holds duplicates even under races.
func (s *Store) Upsert(ctx context.Context, eventID, teamID, judgeID primitive.ObjectID, scores models.CriteriaScores, comments string) (models.Evaluation, error) {
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"scores":     scores,
			"comments":   comments,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"event_id":   eventID,
			"team_id":    teamID,
			"judge_id":   judgeID,
			"status":     models.EvaluationStatusPending,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var ev models.Evaluation
	err := s.c.FindOneAndUpdate(ctx, bson.M{
		"event_id": eventID,
		"team_id":  teamID,
		"judge_id": judgeID,
	}, update, opts).Decode(&ev)
	return ev, err
}

// GetByID returns an evaluation, or (nil, nil) if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Evaluation, error) {
	var ev models.Evaluation
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ev)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// Complete marks an evaluation complete. The judge filter makes the
// ownership rule ("a judge may only complete their own evaluation") a
// property of the query, not just the handler.
func (s *Store) Complete(ctx context.Context, id, judgeID primitive.ObjectID) (*models.Evaluation, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ev models.Evaluation
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "judge_id": judgeID},
		bson.M{"$set": bson.M{
			"status":     models.EvaluationStatusComplete,
			"updated_at": time.Now().UTC(),
		}}, opts).Decode(&ev)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// ListForTeam returns every evaluation for (event, team). The score
// recalculator reads "all evaluations at the time of its own call"
// through this.
func (s *Store) ListForTeam(ctx context.Context, eventID, teamID primitive.ObjectID) ([]models.Evaluation, error) {
	cur, err := s.c.Find(ctx, bson.M{"event_id": eventID, "team_id": teamID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Evaluation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns evaluations matching the supplied filter (typically from
// viewpolicy.EvaluationFilter), newest update first.
func (s *Store) List(ctx context.Context, filter bson.M, limit int64) ([]models.Evaluation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Evaluation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
