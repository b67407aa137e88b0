// internal/app/features/events/handler.go
package events

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/hackhub/internal/app/policy/viewpolicy"
	eventstore "github.com/dalemusser/hackhub/internal/app/store/events"
	"github.com/dalemusser/hackhub/internal/app/store/judgeassign"
	userstore "github.com/dalemusser/hackhub/internal/app/store/users"
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

const maxListLimit = 200

// Handler serves event management and listing.
type Handler struct {
	Events      *eventstore.Store
	Users       *userstore.Store
	Assignments *judgeassign.Store
	Policy      *viewpolicy.Resolver
	Log         *zap.Logger
}

// NewHandler creates an events Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Events:      eventstore.New(db),
		Users:       userstore.New(db),
		Assignments: judgeassign.New(db),
		Policy:      viewpolicy.New(db),
		Log:         logger,
	}
}

type createEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type assignJudgeRequest struct {
	JudgeEmail string `json:"judge_email"`
}

// HandleCreate processes POST /api/events. Organizer only.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller := authz.CallerCtx(r)

	var req createEventRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}

	req.Title = normalize.Name(req.Title)
	if req.Title == "" {
		httpjson.Error(w, apierr.Validationf("title is required"))
		return
	}
	if req.Status != "" && !models.ValidEventStatus(req.Status) {
		httpjson.Error(w, apierr.Validationf("unknown status %q", req.Status))
		return
	}
	if !req.EndDate.IsZero() && !req.StartDate.IsZero() && req.EndDate.Before(req.StartDate) {
		httpjson.Error(w, apierr.Validationf("end_date precedes start_date"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ev, err := h.Events.Create(ctx, models.Event{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		OrganizerID: caller.ID,
	})
	if err != nil {
		h.Log.Error("create event failed", zap.Error(err))
		httpjson.Error(w, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, ev)
}

// HandleSetStatus processes POST /api/events/{eventID}/status.
// Only the owning organizer may advance an event's lifecycle.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	caller := authz.CallerCtx(r)

	ev, err := h.loadOwnedEvent(r, caller)
	if err != nil {
		httpjson.Error(w, err)
		return
	}

	var req setStatusRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}
	if !models.ValidEventStatus(req.Status) {
		httpjson.Error(w, apierr.Validationf("unknown status %q", req.Status))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Events.SetStatus(ctx, ev.ID, req.Status); err != nil {
		h.Log.Error("set event status failed", zap.Error(err), zap.String("event_id", ev.ID.Hex()))
		httpjson.Error(w, err)
		return
	}

	ev.Status = req.Status
	httpjson.Write(w, http.StatusOK, ev)
}

// HandleAssignJudge processes POST /api/events/{eventID}/judges.
// Recording the pair is what grants the judge access to the event.
func (h *Handler) HandleAssignJudge(w http.ResponseWriter, r *http.Request) {
	caller := authz.CallerCtx(r)

	ev, err := h.loadOwnedEvent(r, caller)
	if err != nil {
		httpjson.Error(w, err)
		return
	}

	var req assignJudgeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}
	if !inputval.IsValidEmail(req.JudgeEmail) {
		httpjson.Error(w, apierr.Validationf("invalid judge email"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	judge, err := h.Users.GetByEmail(ctx, req.JudgeEmail)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	if judge == nil {
		httpjson.Error(w, apierr.NotFoundf("judge account"))
		return
	}
	if authz.ParseRole(judge.Role) != authz.RoleJudge {
		httpjson.Error(w, apierr.Validationf("account is not a judge"))
		return
	}

	if err := h.Assignments.Assign(ctx, judge.ID, ev.ID); err != nil {
		h.Log.Error("assign judge failed", zap.Error(err),
			zap.String("event_id", ev.ID.Hex()), zap.String("judge_id", judge.ID.Hex()))
		httpjson.Error(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{
		"event_id": ev.ID.Hex(),
		"judge_id": judge.ID.Hex(),
	})
}

// HandleList processes GET /api/events. The visible set is role-scoped;
// anonymous callers get the public view, optionally narrowed by status.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	caller := authz.CallerCtx(r)

	status := normalize.QueryParam(query.Get(r, "status"))
	if status != "" && !models.ValidEventStatus(status) {
		httpjson.Error(w, apierr.Validationf("unknown status %q", status))
		return
	}

	limit := parseLimit(query.Get(r, "limit"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter, err := h.Policy.EventFilter(ctx, caller, viewpolicy.Filters{Status: status})
	if err != nil {
		httpjson.Error(w, err)
		return
	}

	list, err := h.Events.List(ctx, filter, limit)
	if err != nil {
		h.Log.Error("list events failed", zap.Error(err))
		httpjson.Error(w, err)
		return
	}
	if list == nil {
		list = []models.Event{}
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"events": list})
}

// HandleGet processes GET /api/events/{eventID}, subject to the same
// role scoping as the list.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	caller := authz.CallerCtx(r)

	id := chi.URLParam(r, "eventID")
	if !inputval.IsValidObjectID(id) {
		httpjson.Error(w, apierr.Validationf("invalid event id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	filter, err := h.Policy.EventFilter(ctx, caller, viewpolicy.Filters{})
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	oid, _ := primitive.ObjectIDFromHex(id)
	filter["_id"] = oid

	list, err := h.Events.List(ctx, filter, 1)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	if len(list) == 0 {
		httpjson.Error(w, apierr.NotFoundf("event"))
		return
	}

	httpjson.Write(w, http.StatusOK, list[0])
}

// loadOwnedEvent parses the route's event id and checks the caller owns
// it. Non-owners get Forbidden, not the event data.
func (h *Handler) loadOwnedEvent(r *http.Request, caller authz.Caller) (*models.Event, error) {
	id := chi.URLParam(r, "eventID")
	if !inputval.IsValidObjectID(id) {
		return nil, apierr.Validationf("invalid event id")
	}
	oid, _ := primitive.ObjectIDFromHex(id)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ev, err := h.Events.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, apierr.NotFoundf("event")
	}
	if ev.OrganizerID != caller.ID {
		return nil, apierr.Forbiddenf("not your event")
	}
	return ev, nil
}

func parseLimit(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	if n > maxListLimit {
		return maxListLimit
	}
	return n
}
