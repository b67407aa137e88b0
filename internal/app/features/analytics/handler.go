// internal/app/features/analytics/handler.go
package analytics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/hackhub/internal/app/analytics"
	"github.com/dalemusser/hackhub/internal/app/policy/viewpolicy"
	eventstore "github.com/dalemusser/hackhub/internal/app/store/events"
	"github.com/dalemusser/hackhub/internal/app/system/apierr"
	"github.com/dalemusser/hackhub/internal/app/system/authz"
	"github.com/dalemusser/hackhub/internal/app/system/httpjson"
	"github.com/dalemusser/hackhub/internal/app/system/inputval"
	"github.com/dalemusser/hackhub/internal/app/system/normalize"
	"github.com/dalemusser/hackhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const maxRollupLimit = 200

// Handler serves the analytics read endpoints: per-event rollups,
// dashboard totals, and registration trends.
type Handler struct {
	Events     *eventstore.Store
	Policy     *viewpolicy.Resolver
	Aggregator *analytics.Aggregator
	Log        *zap.Logger
}

// NewHandler creates an analytics Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Events:     eventstore.New(db),
		Policy:     viewpolicy.New(db),
		Aggregator: analytics.New(db, logger),
		Log:        logger,
	}
}

// HandleEventRollups processes GET /api/analytics/events. The rollup set
// is role-scoped exactly like the event list; sorting and truncation
// happen after metrics are computed.
func (h *Handler) HandleEventRollups(w http.ResponseWriter, r *http.Request) {
	caller := authz.CallerCtx(r)

	status := normalize.QueryParam(query.Get(r, "status"))

	opts := analytics.RollupOptions{
		SortBy: normalize.QueryParam(query.Get(r, "sortBy")),
		Order:  normalize.QueryParam(query.Get(r, "order")),
	}
	if n, err := strconv.Atoi(query.Get(r, "limit")); err == nil && n > 0 {
		if n > maxRollupLimit {
			n = maxRollupLimit
		}
		opts.Limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	filter, err := h.Policy.EventFilter(ctx, caller, viewpolicy.Filters{Status: status})
	if err != nil {
		httpjson.Error(w, err)
		return
	}

	events, err := h.Events.List(ctx, filter, 0)
	if err != nil {
		h.Log.Error("list events for rollups failed", zap.Error(err))
		httpjson.Error(w, err)
		return
	}

	rollups, err := h.Aggregator.EventRollups(ctx, events, opts)
	if err != nil {
		h.Log.Error("event rollups failed", zap.Error(err))
		httpjson.Error(w, err)
		return
	}
	if rollups == nil {
		rollups = []analytics.EventRollup{}
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"events": rollups})
}

// HandleDashboard processes GET /api/analytics/dashboard, optionally
// scoped to one event via ?eventId=. Totals never fail; unreadable
// figures come back zeroed with the degraded flag set.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	eventID, err := optionalEventID(r)
	if err != nil {
		httpjson.Error(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	totals := h.Aggregator.DashboardTotals(ctx, eventID)
	httpjson.Write(w, http.StatusOK, totals)
}

// HandleTrend processes GET /api/analytics/trend?timeframe=24h|7d|30d,
// optionally scoped to one event. Like the dashboard, an unreadable
// store degrades the series to zeros; only a bad timeframe errors.
func (h *Handler) HandleTrend(w http.ResponseWriter, r *http.Request) {
	eventID, err := optionalEventID(r)
	if err != nil {
		httpjson.Error(w, err)
		return
	}

	timeframe := normalize.QueryParam(query.Get(r, "timeframe"))
	if timeframe == "" {
		timeframe = analytics.Timeframe7d
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	trend, err := h.Aggregator.Trend(ctx, eventID, timeframe)
	if err != nil {
		httpjson.Error(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, trend)
}

// optionalEventID parses ?eventId= when present; absence means platform
// scope.
func optionalEventID(r *http.Request) (*primitive.ObjectID, error) {
	id := query.Get(r, "eventId")
	if id == "" {
		return nil, nil
	}
	if !inputval.IsValidObjectID(id) {
		return nil, apierr.Validationf("invalid event id")
	}
	oid, _ := primitive.ObjectIDFromHex(id)
	return &oid, nil
}
