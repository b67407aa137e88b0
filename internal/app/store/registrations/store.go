// internal/app/store/registrations/store.go
package registrations

import (
	"context"
	"time"

	"github.com/dalemusser/hackhub/internal/app/system/normalize"
	"github.com/dalemusser/hackhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages event signups. Registrations are insert-only: there is
// no update or delete path in this engine.
type Store struct {
	c *mongo.Collection
}

// New creates a new registrations Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("registrations")}
}

// Create inserts a registration, deriving the folded email copies used
// for participant visibility matching.
func (s *Store) Create(ctx context.Context, reg models.Registration) (models.Registration, error) {
	if reg.ID.IsZero() {
		reg.ID = primitive.NewObjectID()
	}
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now().UTC()
	}
	reg.EmailCI = normalize.Email(reg.Email)
	reg.MemberEmailsCI = reg.MemberEmailsCI[:0]
	for _, m := range reg.MemberEmails {
		reg.MemberEmailsCI = append(reg.MemberEmailsCI, normalize.Email(m))
	}

	_, err := s.c.InsertOne(ctx, reg)
	return reg, err
}

// ListByEvent returns an event's registrations, newest first.
func (s *Store) ListByEvent(ctx context.Context, eventID primitive.ObjectID, limit int64) ([]models.Registration, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Registration
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EventIDsForEmail returns the ids of events where the folded email
// appears as the registrant's personal email or as a team-member email.
// This is the participant visibility rule.
func (s *Store) EventIDsForEmail(ctx context.Context, email string) ([]primitive.ObjectID, error) {
	ci := normalize.Email(email)
	filter := bson.M{"$or": []bson.M{
		{"email_ci": ci},
		{"member_emails_ci": ci},
	}}

	ids, err := s.c.Distinct(ctx, "event_id", filter)
	if err != nil {
		return nil, err
	}

	out := make([]primitive.ObjectID, 0, len(ids))
	for _, v := range ids {
		if oid, ok := v.(primitive.ObjectID); ok {
			out = append(out, oid)
		}
	}
	return out, nil
}

// EmailsForEvent returns every folded email attached to an event's
// registrations (personal + team members). Used by notification
// recipient resolution.
func (s *Store) EmailsForEvent(ctx context.Context, eventID primitive.ObjectID) ([]string, error) {
	cur, err := s.c.Find(ctx, bson.M{"event_id": eventID},
		options.Find().SetProjection(bson.M{"email_ci": 1, "member_emails_ci": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []string
	for cur.Next(ctx) {
		var row struct {
			EmailCI        string   `bson:"email_ci"`
			MemberEmailsCI []string `bson:"member_emails_ci"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		if row.EmailCI != "" {
			out = append(out, row.EmailCI)
		}
		out = append(out, row.MemberEmailsCI...)
	}
	return out, cur.Err()
}
