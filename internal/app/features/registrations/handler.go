// internal/app/features/registrations/handler.go
package registrations

import (
	"context"
	"net/http"

	eventstore "github.com/dalemusser/hackhub/internal/app/store/events"
	regstore "github.com/dalemusser/hackhub/internal/app/store/registrations"
	teamstore "github.com/dalemusser/hackhub/internal/app/store/teams"
	userstore "github.com/dalemusser/hackhub/internal/app/store/users"
	"github.com/dalemusser/hackhub/internal/app/system/apierr"
	"github.com/dalemusser/hackhub/internal/app/system/authz"
	"github.com/dalemusser/hackhub/internal/app/system/httpjson"
	"github.com/dalemusser/hackhub/internal/app/system/inputval"
	"github.com/dalemusser/hackhub/internal/app/system/normalize"
	"github.com/dalemusser/hackhub/internal/app/system/timeouts"
	"github.com/dalemusser/hackhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const maxTeamMembers = 10

// Handler serves event signups.
type Handler struct {
	Events        *eventstore.Store
	Registrations *regstore.Store
	Teams         *teamstore.Store
	Users         *userstore.Store
	Log           *zap.Logger
}

// NewHandler creates a registrations Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Events:        eventstore.New(db),
		Registrations: regstore.New(db),
		Teams:         teamstore.New(db),
		Users:         userstore.New(db),
		Log:           logger,
	}
}

type createRequest struct {
	EventID      string   `json:"event_id"`
	Type         string   `json:"type"`
	Email        string   `json:"email"`
	TeamName     string   `json:"team_name,omitempty"`
	MemberEmails []string `json:"member_emails,omitempty"`
}

type createResponse struct {
	Registration models.Registration `json:"registration"`
	Team         *models.Team        `json:"team,omitempty"`
}

// HandleCreate processes POST /api/registrations. A team registration
// also finds-or-creates the named team for the event and unions any
// member accounts onto it; registering the same team name twice grows
// the one team instead of duplicating it.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}

	if !inputval.IsValidObjectID(req.EventID) {
		httpjson.Error(w, apierr.Validationf("invalid event id"))
		return
	}
	if req.Type != models.RegistrationIndividual && req.Type != models.RegistrationTeam {
		httpjson.Error(w, apierr.Validationf("type must be individual or team"))
		return
	}
	if !inputval.IsValidEmail(req.Email) {
		httpjson.Error(w, apierr.Validationf("invalid email address"))
		return
	}
	req.TeamName = normalize.Name(req.TeamName)
	if req.Type == models.RegistrationTeam {
		if req.TeamName == "" {
			httpjson.Error(w, apierr.Validationf("team_name is required for team registrations"))
			return
		}
		if len(req.MemberEmails) > maxTeamMembers {
			httpjson.Error(w, apierr.Validationf("too many team members (max %d)", maxTeamMembers))
			return
		}
		for _, m := range req.MemberEmails {
			if !inputval.IsValidEmail(m) {
				httpjson.Error(w, apierr.Validationf("invalid member email %q", m))
				return
			}
		}
	}

	eventID, _ := primitive.ObjectIDFromHex(req.EventID)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ev, err := h.Events.GetByID(ctx, eventID)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	if ev == nil {
		httpjson.Error(w, apierr.NotFoundf("event"))
		return
	}
	if ev.Status == models.EventStatusDraft || ev.Status == models.EventStatusCompleted {
		httpjson.Error(w, apierr.Validationf("event is not open for registration"))
		return
	}

	reg, err := h.Registrations.Create(ctx, models.Registration{
		EventID:      eventID,
		Type:         req.Type,
		Email:        req.Email,
		TeamName:     req.TeamName,
		MemberEmails: req.MemberEmails,
	})
	if err != nil {
		h.Log.Error("create registration failed", zap.Error(err))
		httpjson.Error(w, err)
		return
	}

	resp := createResponse{Registration: reg}

	if req.Type == models.RegistrationTeam {
		memberIDs, err := h.resolveMemberIDs(ctx, reg)
		if err != nil {
			// Member resolution failing must not lose the signup; the
			// team just starts without linked accounts.
			h.Log.Warn("member account resolution failed", zap.Error(err),
				zap.String("registration_id", reg.ID.Hex()))
			memberIDs = nil
		}
		team, err := h.Teams.UpsertByName(ctx, eventID, req.TeamName, memberIDs)
		if err != nil {
			h.Log.Error("team upsert failed", zap.Error(err),
				zap.String("registration_id", reg.ID.Hex()))
			httpjson.Error(w, err)
			return
		}
		resp.Team = &team
	}

	httpjson.Write(w, http.StatusCreated, resp)
}

// HandleList processes GET /api/registrations?eventId=. Only the
// event's organizer may read its signup roster.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	caller := authz.CallerCtx(r)

	id := query.Get(r, "eventId")
	if !inputval.IsValidObjectID(id) {
		httpjson.Error(w, apierr.Validationf("invalid event id"))
		return
	}
	eventID, _ := primitive.ObjectIDFromHex(id)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

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

	list, err := h.Registrations.ListByEvent(ctx, eventID, 0)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	if list == nil {
		list = []models.Registration{}
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"registrations": list})
}

// resolveMemberIDs maps the registration's emails (registrant plus
// members, already folded by the store) to existing account ids.
func (h *Handler) resolveMemberIDs(ctx context.Context, reg models.Registration) ([]primitive.ObjectID, error) {
	emails := make([]string, 0, len(reg.MemberEmailsCI)+1)
	if reg.EmailCI != "" {
		emails = append(emails, reg.EmailCI)
	}
	emails = append(emails, reg.MemberEmailsCI...)
	return h.Users.IDsByEmails(ctx, emails)
}
