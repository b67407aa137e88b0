// internal/app/features/leaderboard/handler.go
package leaderboard

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/hackhub/internal/app/realtime"
	substore "github.com/dalemusser/hackhub/internal/app/store/submissions"
	teamstore "github.com/dalemusser/hackhub/internal/app/store/teams"
	"github.com/dalemusser/hackhub/internal/app/system/apierr"
	"github.com/dalemusser/hackhub/internal/app/system/auth"
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

const (
	typeTeam       = "team"
	typeSubmission = "submission"

	maxLeaderboardLimit = 100
)

// Handler serves ranked standings and issues websocket tickets for the
// live leaderboard feed.
type Handler struct {
	Teams       *teamstore.Store
	Submissions *substore.Store
	Tickets     *realtime.TicketCodec
	Log         *zap.Logger
}

// NewHandler creates a leaderboard Handler.
func NewHandler(db *mongo.Database, tickets *realtime.TicketCodec, logger *zap.Logger) *Handler {
	return &Handler{
		Teams:       teamstore.New(db),
		Submissions: substore.New(db),
		Tickets:     tickets,
		Log:         logger,
	}
}

// HandleGet processes GET /api/leaderboard?eventId=&type=team|submission.
// Ranking is score descending with earlier creation winning ties, so
// standings are stable while scores are equal.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := query.Get(r, "eventId")
	if !inputval.IsValidObjectID(id) {
		httpjson.Error(w, apierr.Validationf("invalid event id"))
		return
	}
	eventID, _ := primitive.ObjectIDFromHex(id)

	kind := normalize.QueryParam(query.Get(r, "type"))
	if kind == "" {
		kind = typeTeam
	}
	if kind != typeTeam && kind != typeSubmission {
		httpjson.Error(w, apierr.Validationf("type must be team or submission"))
		return
	}

	limit := parseLimit(query.Get(r, "limit"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	switch kind {
	case typeTeam:
		teams, err := h.Teams.Leaderboard(ctx, eventID, limit)
		if err != nil {
			h.Log.Error("team leaderboard failed", zap.Error(err))
			httpjson.Error(w, err)
			return
		}
		if teams == nil {
			teams = []models.Team{}
		}
		httpjson.Write(w, http.StatusOK, map[string]any{"type": kind, "teams": teams})

	case typeSubmission:
		subs, err := h.Submissions.Leaderboard(ctx, eventID, limit)
		if err != nil {
			h.Log.Error("submission leaderboard failed", zap.Error(err))
			httpjson.Error(w, err)
			return
		}
		if subs == nil {
			subs = []models.Submission{}
		}
		httpjson.Write(w, http.StatusOK, map[string]any{"type": kind, "submissions": subs})
	}
}

// HandleTicket processes GET /api/leaderboard/ticket. The signed-in
// caller trades their session for a short-lived websocket ticket.
func (h *Handler) HandleTicket(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, apierr.ErrUnauthorized)
		return
	}

	ticket, err := h.Tickets.Issue(realtime.Ticket{UserID: u.ID, Role: u.Role})
	if err != nil {
		h.Log.Error("ticket issue failed", zap.Error(err))
		httpjson.Error(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{"ticket": ticket})
}

func parseLimit(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	if n > maxLeaderboardLimit {
		return maxLeaderboardLimit
	}
	return n
}
