// internal/app/analytics/totals.go
package analytics

import (
	"context"
	"time"

	"github.com/dalemusser/hackhub/internal/app/system/stats"
	"github.com/dalemusser/hackhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DashboardTotals is the scalar KPI set for the platform or for a
// single event. Degraded is set when any backing read failed and the
// corresponding figure was zeroed; the response is still a success.
type DashboardTotals struct {
	ActiveEvents      int64   `json:"active_events"`
	TotalParticipants int64   `json:"total_participants"`
	TotalSubmissions  int64   `json:"total_submissions"`
	SuccessRate       float64 `json:"success_rate"`
	EngagementRate    float64 `json:"engagement_rate"`
	TeamsFormed       int64   `json:"teams_formed"`
	Degraded          bool    `json:"degraded,omitempty"`
}

// DashboardTotals computes platform-level KPIs, or event-level KPIs when
// eventID is non-nil.
//
// Intentionally tolerant: each figure that cannot be read counts as 0
// rather than failing the dashboard (the error is logged and the
// Degraded flag set).
func (a *Aggregator) DashboardTotals(ctx context.Context, eventID *primitive.ObjectID) DashboardTotals {
	var out DashboardTotals
	now := time.Now().UTC()

	degrade := func(what string, err error) {
		out.Degraded = true
		stats.DegradedAggregations.Inc()
		a.log.Warn("dashboard totals degraded", zap.String("figure", what), zap.Error(err))
	}

	scope := bson.M{}
	if eventID != nil {
		scope = bson.M{"event_id": *eventID}
	}

	// active events: ongoing and currently inside their window
	activeFilter := bson.M{
		"status":     models.EventStatusOngoing,
		"start_date": bson.M{"$lte": now},
		"end_date":   bson.M{"$gte": now},
	}
	if eventID != nil {
		activeFilter["_id"] = *eventID
	}
	if n, err := a.db.Collection("events").CountDocuments(ctx, activeFilter); err == nil {
		out.ActiveEvents = n
	} else {
		degrade("active_events", err)
	}

	// participants (registration records)
	var registrations int64
	if n, err := a.db.Collection("registrations").CountDocuments(ctx, scope); err == nil {
		registrations = n
		out.TotalParticipants = n
	} else {
		degrade("total_participants", err)
	}

	// submissions
	var submissions int64
	if n, err := a.db.Collection("submissions").CountDocuments(ctx, scope); err == nil {
		submissions = n
		out.TotalSubmissions = n
	} else {
		degrade("total_submissions", err)
	}

	// success rate: per-event this is plain conversion; globally it is
	// the share of non-draft events that attracted at least one
	// submission.
	if eventID != nil {
		out.SuccessRate = conversionRate(registrations, submissions)
	} else {
		out.SuccessRate = a.globalSuccessRate(ctx, degrade)
	}

	// engagement: registrations in the trailing 7 days over the total
	weekScope := bson.M{"created_at": bson.M{"$gte": now.Add(-7 * 24 * time.Hour)}}
	if eventID != nil {
		weekScope["event_id"] = *eventID
	}
	if recent, err := a.db.Collection("registrations").CountDocuments(ctx, weekScope); err == nil {
		out.EngagementRate = percentage(recent, registrations)
	} else {
		degrade("engagement_rate", err)
	}

	// teams formed: team registrations that actually named a team
	teamScope := bson.M{
		"type":      models.RegistrationTeam,
		"team_name": bson.M{"$nin": []any{"", nil}},
	}
	if eventID != nil {
		teamScope["event_id"] = *eventID
	}
	if n, err := a.db.Collection("registrations").CountDocuments(ctx, teamScope); err == nil {
		out.TeamsFormed = n
	} else {
		degrade("teams_formed", err)
	}

	return out
}

// globalSuccessRate: percentage of non-draft events with ≥1 submission.
func (a *Aggregator) globalSuccessRate(ctx context.Context, degrade func(string, error)) float64 {
	nonDraft, err := a.db.Collection("events").CountDocuments(ctx,
		bson.M{"status": bson.M{"$ne": models.EventStatusDraft}})
	if err != nil {
		degrade("success_rate", err)
		return 0
	}

	withSubs, err := a.db.Collection("submissions").Distinct(ctx, "event_id", bson.M{})
	if err != nil {
		degrade("success_rate", err)
		return 0
	}

	return percentage(int64(len(withSubs)), nonDraft)
}
