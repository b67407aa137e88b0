// internal/app/store/teams/store.go
package teams

import (
	"context"
	"time"

	"github.com/dalemusser/hackhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages teams. Score is the one field the scoring engine owns;
// it is replaced wholesale by SetScore and never incremented.
type Store struct {
	c *mongo.Collection
}

// New creates a new teams Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teams")}
}

// UpsertByName finds-or-creates the team identified by (event, folded
// name) and unions any new member ids onto it. Score is initialized to 0
// on insert and deliberately untouched on update.
func (s *Store) UpsertByName(ctx context.Context, eventID primitive.ObjectID, name string, memberIDs []primitive.ObjectID) (models.Team, error) {
	now := time.Now().UTC()
	nameCI := text.Fold(name)

	update := bson.M{
		"$setOnInsert": bson.M{
			"event_id":   eventID,
			"name":       name,
			"name_ci":    nameCI,
			"score":      float64(0),
			"created_at": now,
		},
		"$set": bson.M{"updated_at": now},
	}
	if len(memberIDs) > 0 {
		update["$addToSet"] = bson.M{"member_ids": bson.M{"$each": memberIDs}}
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var team models.Team
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"event_id": eventID, "name_ci": nameCI},
		update, opts).Decode(&team)
	return team, err
}

// GetByID returns a team, or (nil, nil) if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	var team models.Team
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// SetScore overwrites the team's cached score. Only the score
// recalculator calls this.
func (s *Store) SetScore(ctx context.Context, id primitive.ObjectID, score float64) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"score":      score,
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

// Leaderboard returns an event's teams ranked score desc with earlier
// creation winning ties.
func (s *Store) Leaderboard(ctx context.Context, eventID primitive.ObjectID, limit int64) ([]models.Team, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "score", Value: -1},
		{Key: "created_at", Value: 1},
	})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Team
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MemberIDsForEvent returns the union of member ids across an event's
// teams, optionally narrowed to specific team ids. Used by notification
// recipient resolution.
func (s *Store) MemberIDsForEvent(ctx context.Context, eventID primitive.ObjectID, teamIDs []primitive.ObjectID) ([]primitive.ObjectID, error) {
	filter := bson.M{"event_id": eventID}
	if len(teamIDs) > 0 {
		filter["_id"] = bson.M{"$in": teamIDs}
	}

	cur, err := s.c.Find(ctx, filter, options.Find().SetProjection(bson.M{"member_ids": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []primitive.ObjectID
	for cur.Next(ctx) {
		var row struct {
			MemberIDs []primitive.ObjectID `bson:"member_ids"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out = append(out, row.MemberIDs...)
	}
	return out, cur.Err()
}
