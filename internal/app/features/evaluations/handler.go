// internal/app/features/evaluations/handler.go
package evaluations

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/hackhub/internal/app/policy/viewpolicy"
	"github.com/dalemusser/hackhub/internal/app/scoring"
	eventstore "github.com/dalemusser/hackhub/internal/app/store/events"
	evalstore "github.com/dalemusser/hackhub/internal/app/store/evaluations"
	teamstore "github.com/dalemusser/hackhub/internal/app/store/teams"
	"github.com/dalemusser/hackhub/internal/app/system/apierr"
	"github.com/dalemusser/hackhub/internal/app/system/authz"
	"github.com/dalemusser/hackhub/internal/app/system/httpjson"
	"github.com/dalemusser/hackhub/internal/app/system/inputval"
	"github.com/dalemusser/hackhub/internal/app/system/timeouts"
	"github.com/dalemusser/hackhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const maxCommentLength = 4000

// Handler serves judge evaluations.
type Handler struct {
	Events      *eventstore.Store
	Teams       *teamstore.Store
	Evaluations *evalstore.Store
	Policy      *viewpolicy.Resolver
	Scoring     *scoring.Recalculator
	sanitize    *bluemonday.Policy
	Log         *zap.Logger
}

// NewHandler creates an evaluations Handler. Comments are stored as
// plain text, so the strict sanitizer strips all markup.
func NewHandler(db *mongo.Database, recalc *scoring.Recalculator, logger *zap.Logger) *Handler {
	return &Handler{
		Events:      eventstore.New(db),
		Teams:       teamstore.New(db),
		Evaluations: evalstore.New(db),
		Policy:      viewpolicy.New(db),
		Scoring:     recalc,
		sanitize:    bluemonday.StrictPolicy(),
		Log:         logger,
	}
}

type upsertRequest struct {
	EventID  string                `json:"event_id"`
	TeamID   string                `json:"team_id"`
	Scores   models.CriteriaScores `json:"scores"`
	Comments string                `json:"comments,omitempty"`
}

// HandleUpsert processes POST /api/evaluations. The judge must hold an
// assignment for the event; a repeat call for the same (event, team)
// updates the judge's existing evaluation in place. Every write
// triggers a team score recompute.
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	caller := authz.CallerCtx(r)

	var req upsertRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}

	if !inputval.IsValidObjectID(req.EventID) {
		httpjson.Error(w, apierr.Validationf("invalid event id"))
		return
	}
	if !inputval.IsValidObjectID(req.TeamID) {
		httpjson.Error(w, apierr.Validationf("invalid team id"))
		return
	}
	for name, score := range map[string]*float64{
		"innovation":   req.Scores.Innovation,
		"impact":       req.Scores.Impact,
		"feasibility":  req.Scores.Feasibility,
		"presentation": req.Scores.Presentation,
	} {
		if !inputval.InCriterionRange(score) {
			httpjson.Error(w, apierr.Validationf("%s must be between 0 and 10", name))
			return
		}
	}
	if len(req.Comments) > maxCommentLength {
		httpjson.Error(w, apierr.Validationf("comments too long (max %d chars)", maxCommentLength))
		return
	}
	req.Comments = strings.TrimSpace(h.sanitize.Sanitize(req.Comments))

	eventID, _ := primitive.ObjectIDFromHex(req.EventID)
	teamID, _ := primitive.ObjectIDFromHex(req.TeamID)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Policy.RequireJudgeAssignment(ctx, caller, eventID); err != nil {
		httpjson.Error(w, err)
		return
	}

	team, err := h.Teams.GetByID(ctx, teamID)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	if team == nil || team.EventID != eventID {
		httpjson.Error(w, apierr.NotFoundf("team"))
		return
	}

	ev, err := h.Evaluations.Upsert(ctx, eventID, teamID, caller.ID, req.Scores, req.Comments)
	if err != nil {
		h.Log.Error("upsert evaluation failed", zap.Error(err),
			zap.String("event_id", eventID.Hex()), zap.String("team_id", teamID.Hex()))
		httpjson.Error(w, err)
		return
	}

	outcome := h.Scoring.Recompute(ctx, eventID, teamID, "evaluation")

	httpjson.Write(w, http.StatusOK, map[string]any{
		"evaluation": ev,
		"team_score": outcome,
	})
}

// HandleComplete processes POST /api/evaluations/{evaluationID}/complete.
// A judge may only complete their own evaluation; the store enforces
// that by matching on judge_id.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	caller := authz.CallerCtx(r)

	id := chi.URLParam(r, "evaluationID")
	if !inputval.IsValidObjectID(id) {
		httpjson.Error(w, apierr.Validationf("invalid evaluation id"))
		return
	}
	oid, _ := primitive.ObjectIDFromHex(id)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ev, err := h.Evaluations.Complete(ctx, oid, caller.ID)
	if err != nil {
		h.Log.Error("complete evaluation failed", zap.Error(err), zap.String("evaluation_id", id))
		httpjson.Error(w, err)
		return
	}
	if ev == nil {
		// Either the evaluation does not exist or it belongs to another
		// judge; distinguish so ownership failures read as Forbidden.
		existing, err := h.Evaluations.GetByID(ctx, oid)
		if err != nil {
			httpjson.Error(w, err)
			return
		}
		if existing == nil {
			httpjson.Error(w, apierr.NotFoundf("evaluation"))
			return
		}
		httpjson.Error(w, apierr.Forbiddenf("not your evaluation"))
		return
	}

	outcome := h.Scoring.Recompute(ctx, ev.EventID, ev.TeamID, "evaluation")

	httpjson.Write(w, http.StatusOK, map[string]any{
		"evaluation": ev,
		"team_score": outcome,
	})
}

// HandleList processes GET /api/evaluations?eventId=. Organizers see
// every evaluation for an event they own; judges only their own.
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

	filter, err := h.Policy.EvaluationFilter(ctx, caller, eventID, ev.OrganizerID)
	if err != nil {
		httpjson.Error(w, err)
		return
	}

	list, err := h.Evaluations.List(ctx, filter, 0)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	if list == nil {
		list = []models.Evaluation{}
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"evaluations": list})
}
