// internal/app/store/events/store.go
package events

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

// Store manages hackathon events.
type Store struct {
	c *mongo.Collection
}

// New creates a new events Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("events")}
}

// Create inserts a new event owned by the given organizer.
func (s *Store) Create(ctx context.Context, ev models.Event) (models.Event, error) {
	if ev.ID.IsZero() {
		ev.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = now
	}
	ev.UpdatedAt = now
	ev.TitleCI = text.Fold(ev.Title)
	if ev.Status == "" {
		ev.Status = models.EventStatusDraft
	}

	_, err := s.c.InsertOne(ctx, ev)
	return ev, err
}

// GetByID returns an event, or (nil, nil) if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var ev models.Event
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ev)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// SetStatus updates an event's lifecycle status. The engine never
// derives status; this is the organizer's explicit action.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// List returns events matching the supplied filter, newest start first.
// The filter typically comes from viewpolicy.EventFilter.
func (s *Store) List(ctx context.Context, filter bson.M, limit int64) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Event
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
