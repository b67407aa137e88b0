// internal/app/store/notifications/store.go
package notifications

import (
	"context"
	"time"

	"github.com/dalemusser/hackhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages notifications. The recipient set is a snapshot fixed at
// creation; it is never re-evaluated when team membership changes.
type Store struct {
	c *mongo.Collection
}

// New creates a new notifications Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notifications")}
}

// Create persists a notification. Callers must pass an already
// deduplicated recipient list (recipient resolution owns that).
func (s *Store) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	_, err := s.c.InsertOne(ctx, n)
	return n, err
}

// ListForUser returns notifications addressed to the user, newest first.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{"recipient_user_ids": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Notification
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead adds the user to the notification's read_by set. Only a
// recipient may mark it read; for anyone else this matches nothing.
func (s *Store) MarkRead(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "recipient_user_ids": userID},
		bson.M{"$addToSet": bson.M{"read_by": userID}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
