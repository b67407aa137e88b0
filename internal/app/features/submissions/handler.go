// internal/app/features/submissions/handler.go
package submissions

import (
	"context"
	"net/http"

	"github.com/dalemusser/hackhub/internal/app/policy/viewpolicy"
	"github.com/dalemusser/hackhub/internal/app/scoring"
	eventstore "github.com/dalemusser/hackhub/internal/app/store/events"
	substore "github.com/dalemusser/hackhub/internal/app/store/submissions"
	teamstore "github.com/dalemusser/hackhub/internal/app/store/teams"
	"github.com/dalemusser/hackhub/internal/app/system/apierr"
	"github.com/dalemusser/hackhub/internal/app/system/authz"
	"github.com/dalemusser/hackhub/internal/app/system/httpjson"
	"github.com/dalemusser/hackhub/internal/app/system/inputval"
	"github.com/dalemusser/hackhub/internal/app/system/normalize"
	"github.com/dalemusser/hackhub/internal/app/system/timeouts"
	"github.com/dalemusser/hackhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves project submissions and their review scores.
type Handler struct {
	Events      *eventstore.Store
	Teams       *teamstore.Store
	Submissions *substore.Store
	Policy      *viewpolicy.Resolver
	Scoring     *scoring.Recalculator
	Log         *zap.Logger
}

// NewHandler creates a submissions Handler. The recalculator is shared
// with the evaluations feature so both write paths refresh team scores
// the same way.
func NewHandler(db *mongo.Database, recalc *scoring.Recalculator, logger *zap.Logger) *Handler {
	return &Handler{
		Events:      eventstore.New(db),
		Teams:       teamstore.New(db),
		Submissions: substore.New(db),
		Policy:      viewpolicy.New(db),
		Scoring:     recalc,
		Log:         logger,
	}
}

type createRequest struct {
	EventID  string `json:"event_id"`
	TeamID   string `json:"team_id"`
	Title    string `json:"title"`
	RepoURL  string `json:"repo_url,omitempty"`
	DemoURL  string `json:"demo_url,omitempty"`
	Abstract string `json:"abstract,omitempty"`
}

type scoreRequest struct {
	Score float64 `json:"score"`
}

// HandleCreate processes POST /api/submissions. Participant only; the
// submission starts in draft with a zero score.
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
	if !inputval.IsValidObjectID(req.TeamID) {
		httpjson.Error(w, apierr.Validationf("invalid team id"))
		return
	}
	req.Title = normalize.Name(req.Title)
	if req.Title == "" {
		httpjson.Error(w, apierr.Validationf("title is required"))
		return
	}

	eventID, _ := primitive.ObjectIDFromHex(req.EventID)
	teamID, _ := primitive.ObjectIDFromHex(req.TeamID)

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
	team, err := h.Teams.GetByID(ctx, teamID)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	if team == nil || team.EventID != eventID {
		httpjson.Error(w, apierr.NotFoundf("team"))
		return
	}

	sub, err := h.Submissions.Create(ctx, models.Submission{
		EventID:  eventID,
		TeamID:   teamID,
		Title:    req.Title,
		RepoURL:  req.RepoURL,
		DemoURL:  req.DemoURL,
		Abstract: req.Abstract,
	})
	if err != nil {
		h.Log.Error("create submission failed", zap.Error(err))
		httpjson.Error(w, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, sub)
}

// HandleSubmit processes POST /api/submissions/{submissionID}/submit,
// moving a draft to submitted.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sub, err := h.loadSubmission(ctx, r)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	if sub.Status == models.SubmissionStatusReviewed {
		httpjson.Error(w, apierr.Validationf("submission has already been reviewed"))
		return
	}

	if err := h.Submissions.SetStatus(ctx, sub.ID, models.SubmissionStatusSubmitted); err != nil {
		h.Log.Error("submit failed", zap.Error(err), zap.String("submission_id", sub.ID.Hex()))
		httpjson.Error(w, err)
		return
	}

	sub.Status = models.SubmissionStatusSubmitted
	httpjson.Write(w, http.StatusOK, sub)
}

// HandleScore processes POST /api/submissions/{submissionID}/score.
// Only the event's organizer or one of its assigned judges may score;
// the check runs before anything is written. A successful score marks
// the submission reviewed and triggers a team score recompute.
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	caller := authz.CallerCtx(r)

	var req scoreRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}
	if !inputval.InSubmissionRange(req.Score) {
		httpjson.Error(w, apierr.Validationf("score must be between 0 and 100"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sub, err := h.loadSubmission(ctx, r)
	if err != nil {
		httpjson.Error(w, err)
		return
	}

	if err := h.authorizeScore(ctx, caller, sub.EventID); err != nil {
		httpjson.Error(w, err)
		return
	}

	if err := h.Submissions.SetScore(ctx, sub.ID, req.Score); err != nil {
		h.Log.Error("set submission score failed", zap.Error(err),
			zap.String("submission_id", sub.ID.Hex()))
		httpjson.Error(w, err)
		return
	}

	outcome := h.Scoring.Recompute(ctx, sub.EventID, sub.TeamID, "submission")

	sub.Score = req.Score
	sub.Status = models.SubmissionStatusReviewed
	httpjson.Write(w, http.StatusOK, map[string]any{
		"submission": sub,
		"team_score": outcome,
	})
}

// HandleList processes GET /api/submissions?eventId=. The event must be
// in the caller's role-scoped view.
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

	filter, err := h.Policy.EventFilter(ctx, caller, viewpolicy.Filters{})
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	filter["_id"] = eventID

	visible, err := h.Events.List(ctx, filter, 1)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	if len(visible) == 0 {
		httpjson.Error(w, apierr.NotFoundf("event"))
		return
	}

	list, err := h.Submissions.ListByEvent(ctx, eventID, 0)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	if list == nil {
		list = []models.Submission{}
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"submissions": list})
}

// authorizeScore enforces who may review: the owning organizer, or a
// judge holding an assignment for the event.
func (h *Handler) authorizeScore(ctx context.Context, caller authz.Caller, eventID primitive.ObjectID) error {
	switch caller.Role {
	case authz.RoleOrganizer:
		ev, err := h.Events.GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		if ev == nil {
			return apierr.NotFoundf("event")
		}
		if ev.OrganizerID != caller.ID {
			return apierr.Forbiddenf("not your event")
		}
		return nil

	case authz.RoleJudge:
		return h.Policy.RequireJudgeAssignment(ctx, caller, eventID)
	}

	if caller.Anonymous() {
		return apierr.ErrUnauthorized
	}
	return apierr.Forbiddenf("role cannot score submissions")
}

func (h *Handler) loadSubmission(ctx context.Context, r *http.Request) (*models.Submission, error) {
	id := chi.URLParam(r, "submissionID")
	if !inputval.IsValidObjectID(id) {
		return nil, apierr.Validationf("invalid submission id")
	}
	oid, _ := primitive.ObjectIDFromHex(id)

	sub, err := h.Submissions.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, apierr.NotFoundf("submission")
	}
	return sub, nil
}
