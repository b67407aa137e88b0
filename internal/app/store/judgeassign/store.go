// internal/app/store/judgeassign/store.go
package judgeassign

import (
	"context"
	"time"

	"github.com/dalemusser/hackhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages judge/event assignments. Existence of a pair is the
// sole authorization gate for judge access to an event's evaluations.
type Store struct {
	c *mongo.Collection
}

// New creates a new judge assignments Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("judge_assignments")}
}

// Assign records the pair, tolerating repeats (the unique index makes a
// duplicate assign a no-op rather than an error surface for callers).
func (s *Store) Assign(ctx context.Context, judgeID, eventID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"judge_id": judgeID, "event_id": eventID},
		bson.M{"$setOnInsert": models.JudgeAssignment{
			ID:        primitive.NewObjectID(),
			JudgeID:   judgeID,
			EventID:   eventID,
			CreatedAt: time.Now().UTC(),
		}},
		options.Update().SetUpsert(true))
	return err
}

// Exists reports whether the judge is assigned to the event.
func (s *Store) Exists(ctx context.Context, judgeID, eventID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"judge_id": judgeID, "event_id": eventID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// EventIDsForJudge returns the events the judge is assigned to. An
// empty result is a legitimate answer (a judge with no assignments sees
// no events), not an error.
func (s *Store) EventIDsForJudge(ctx context.Context, judgeID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, bson.M{"judge_id": judgeID},
		options.Find().SetProjection(bson.M{"event_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []primitive.ObjectID
	for cur.Next(ctx) {
		var row struct {
			EventID primitive.ObjectID `bson:"event_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out = append(out, row.EventID)
	}
	return out, cur.Err()
}
