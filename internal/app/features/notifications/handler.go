// internal/app/features/notifications/handler.go
package notifications

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/hackhub/internal/app/realtime"
	eventstore "github.com/dalemusser/hackhub/internal/app/store/events"
	notifstore "github.com/dalemusser/hackhub/internal/app/store/notifications"
	regstore "github.com/dalemusser/hackhub/internal/app/store/registrations"
	teamstore "github.com/dalemusser/hackhub/internal/app/store/teams"
	userstore "github.com/dalemusser/hackhub/internal/app/store/users"
	"github.com/dalemusser/hackhub/internal/app/system/apierr"
	"github.com/dalemusser/hackhub/internal/app/system/authz"
	"github.com/dalemusser/hackhub/internal/app/system/httpjson"
	"github.com/dalemusser/hackhub/internal/app/system/inputval"
	"github.com/dalemusser/hackhub/internal/app/system/timeouts"
	"github.com/dalemusser/hackhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	maxTitleLength   = 200
	maxMessageLength = 4000
)

// Handler serves notifications: creation with recipient resolution,
// per-user listing, and read receipts.
type Handler struct {
	Events        *eventstore.Store
	Teams         *teamstore.Store
	Registrations *regstore.Store
	Users         *userstore.Store
	Notifications *notifstore.Store
	Hub           *realtime.Hub
	sanitize      *bluemonday.Policy
	Log           *zap.Logger
}

// NewHandler creates a notifications Handler. Title and message are
// plain text, so the strict sanitizer strips all markup.
func NewHandler(db *mongo.Database, hub *realtime.Hub, logger *zap.Logger) *Handler {
	return &Handler{
		Events:        eventstore.New(db),
		Teams:         teamstore.New(db),
		Registrations: regstore.New(db),
		Users:         userstore.New(db),
		Notifications: notifstore.New(db),
		Hub:           hub,
		sanitize:      bluemonday.StrictPolicy(),
		Log:           logger,
	}
}

type createRequest struct {
	Title        string   `json:"title"`
	Message      string   `json:"message"`
	Type         string   `json:"type,omitempty"`
	Link         string   `json:"link,omitempty"`
	EventID      string   `json:"event_id,omitempty"`
	TeamIDs      []string `json:"team_ids,omitempty"`
	RecipientIDs []string `json:"recipient_ids,omitempty"`
}

// pushPayload is the live-push body. It mirrors the stored notification
// minus the recipient list, which is nobody's business but the sender's.
type pushPayload struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type,omitempty"`
	Link      string    `json:"link,omitempty"`
	EventID   string    `json:"event_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HandleCreate processes POST /api/notifications. Organizer only. The
// audience is the union of the event's team members, its registered
// emails that map to accounts, and any explicitly listed recipients,
// deduplicated once before persisting. Recipients without a live
// websocket just see it on their next list.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller := authz.CallerCtx(r)

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}

	req.Title = strings.TrimSpace(h.sanitize.Sanitize(req.Title))
	req.Message = strings.TrimSpace(h.sanitize.Sanitize(req.Message))
	if req.Title == "" {
		httpjson.Error(w, apierr.Validationf("title is required"))
		return
	}
	if len(req.Title) > maxTitleLength {
		httpjson.Error(w, apierr.Validationf("title too long (max %d chars)", maxTitleLength))
		return
	}
	if len(req.Message) > maxMessageLength {
		httpjson.Error(w, apierr.Validationf("message too long (max %d chars)", maxMessageLength))
		return
	}
	if req.EventID == "" && len(req.RecipientIDs) == 0 {
		httpjson.Error(w, apierr.Validationf("either event_id or recipient_ids is required"))
		return
	}

	explicit, err := parseObjectIDs(req.RecipientIDs, "recipient")
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	teamIDs, err := parseObjectIDs(req.TeamIDs, "team")
	if err != nil {
		httpjson.Error(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	n := models.Notification{
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Link:    req.Link,
	}

	if req.EventID != "" {
		if !inputval.IsValidObjectID(req.EventID) {
			httpjson.Error(w, apierr.Validationf("invalid event id"))
			return
		}
		eventID, _ := primitive.ObjectIDFromHex(req.EventID)

		ev, err := h.Events.GetByID(ctx, eventID)
		if err != nil {
			httpjson.Error(w, err)
			return
		}
		if ev == nil {
			httpjson.Error(w, apierr.NotFoundf("event"))
			return
		}
		if ev.OrganizerID != caller.ID {
			httpjson.Error(w, apierr.Forbiddenf("not your event"))
			return
		}
		n.EventID = &eventID
	}

	recipients, err := h.resolveRecipients(ctx, n.EventID, teamIDs, explicit)
	if err != nil {
		h.Log.Error("recipient resolution failed", zap.Error(err))
		httpjson.Error(w, err)
		return
	}
	if len(recipients) == 0 {
		httpjson.Error(w, apierr.Validationf("notification has no recipients"))
		return
	}
	n.RecipientUserIDs = recipients

	n, err = h.Notifications.Create(ctx, n)
	if err != nil {
		h.Log.Error("create notification failed", zap.Error(err))
		httpjson.Error(w, err)
		return
	}

	payload := pushPayload{
		ID:        n.ID.Hex(),
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Link:      n.Link,
		CreatedAt: n.CreatedAt,
	}
	if n.EventID != nil {
		payload.EventID = n.EventID.Hex()
	}
	h.Hub.SendNotification(n.RecipientUserIDs, payload)

	httpjson.Write(w, http.StatusCreated, n)
}

// HandleList processes GET /api/notifications: the caller's own
// notifications, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	caller := authz.CallerCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Notifications.ListForUser(ctx, caller.ID, 0)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	if list == nil {
		list = []models.Notification{}
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"notifications": list})
}

// HandleMarkRead processes POST /api/notifications/{notificationID}/read.
// Only a recipient can mark a notification read; everyone else gets
// NotFound, leaking nothing about notifications addressed to others.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	caller := authz.CallerCtx(r)

	id := chi.URLParam(r, "notificationID")
	if !inputval.IsValidObjectID(id) {
		httpjson.Error(w, apierr.Validationf("invalid notification id"))
		return
	}
	oid, _ := primitive.ObjectIDFromHex(id)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ok, err := h.Notifications.MarkRead(ctx, oid, caller.ID)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	if !ok {
		httpjson.Error(w, apierr.NotFoundf("notification"))
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]bool{"read": true})
}

func parseObjectIDs(raw []string, what string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		if !inputval.IsValidObjectID(s) {
			return nil, apierr.Validationf("invalid %s id %q", what, s)
		}
		oid, _ := primitive.ObjectIDFromHex(s)
		out = append(out, oid)
	}
	return out, nil
}
