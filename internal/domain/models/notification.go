// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification carries a message to a recipient set that is resolved and
// deduplicated once, at creation time. The audience is a snapshot: later
// team membership changes do not alter who a notification was sent to.
type Notification struct {
	ID      primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title   string              `bson:"title" json:"title"`
	Message string              `bson:"message" json:"message"`
	Type    string              `bson:"type,omitempty" json:"type,omitempty"`
	Link    string              `bson:"link,omitempty" json:"link,omitempty"`
	EventID *primitive.ObjectID `bson:"event_id,omitempty" json:"event_id,omitempty"`

	RecipientUserIDs []primitive.ObjectID `bson:"recipient_user_ids" json:"recipient_user_ids"`
	ReadBy           []primitive.ObjectID `bson:"read_by,omitempty" json:"read_by,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
