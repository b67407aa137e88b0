// internal/app/analytics/rollup.go
package analytics

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/hackhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rollup sort fields.
const (
	SortStartDate     = "startDate"
	SortTitle         = "title"
	SortRegistrations = "registrations"
	SortSubmissions   = "submissions"
	SortConversion    = "conversion"
	SortActivity24h   = "activity24h"
)

// RollupOptions select sorting and truncation for EventRollups.
// Zero values mean: sort by start date, descending, no limit.
type RollupOptions struct {
	SortBy string
	Order  string // "asc" | "desc"
	Limit  int
}

// Metrics is the derived figure set for one event.
type Metrics struct {
	Registrations int64   `json:"registrations"`
	Submissions   int64   `json:"submissions"`
	Conversion    float64 `json:"conversion"`
	Activity24h   int64   `json:"activity24h"`
}

// EventRollup combines an event's identity with its derived metrics.
type EventRollup struct {
	ID        primitive.ObjectID `json:"id"`
	Title     string             `json:"title"`
	Status    string             `json:"status"`
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
	Metrics   Metrics            `json:"metrics"`
}

// windowCounts is a per-event pair of totals from one grouped query.
type windowCounts struct {
	Total  int64
	Last24 int64
}

// EventRollups computes metrics for the given events. Counting is one
// grouped query per collection - not per event - so a dashboard of N
// events costs two aggregations, not 2N counts.
//
// Sorting happens after metric computation so metric-based sorts see
// final values; the optional limit truncates after sorting.
func (a *Aggregator) EventRollups(ctx context.Context, events []models.Event, opts RollupOptions) ([]EventRollup, error) {
	ids := make([]primitive.ObjectID, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}

	since := time.Now().UTC().Add(-24 * time.Hour)

	regCounts, err := a.groupedCounts(ctx, "registrations", ids, since)
	if err != nil {
		return nil, err
	}
	subCounts, err := a.groupedCounts(ctx, "submissions", ids, since)
	if err != nil {
		return nil, err
	}

	rollups := buildRollups(events, regCounts, subCounts)
	sortRollups(rollups, opts.SortBy, opts.Order)

	if opts.Limit > 0 && len(rollups) > opts.Limit {
		rollups = rollups[:opts.Limit]
	}
	return rollups, nil
}

// groupedCounts runs the single $group pipeline for one collection:
// total documents per event plus the count created within the window.
func (a *Aggregator) groupedCounts(ctx context.Context, coll string, eventIDs []primitive.ObjectID, since time.Time) (map[primitive.ObjectID]windowCounts, error) {
	out := make(map[primitive.ObjectID]windowCounts, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}

	pipeline := []bson.M{
		{"$match": bson.M{"event_id": bson.M{"$in": eventIDs}}},
		{"$group": bson.M{
			"_id":   "$event_id",
			"total": bson.M{"$sum": 1},
			"last24": bson.M{"$sum": bson.M{
				"$cond": []any{bson.M{"$gte": []any{"$created_at", since}}, 1, 0},
			}},
		}},
	}

	cur, err := a.db.Collection(coll).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			ID     primitive.ObjectID `bson:"_id"`
			Total  int64              `bson:"total"`
			Last24 int64              `bson:"last24"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.ID] = windowCounts{Total: row.Total, Last24: row.Last24}
	}
	return out, cur.Err()
}

// buildRollups assembles per-event metrics from the grouped counts.
// Events absent from a count map simply have zero records.
func buildRollups(events []models.Event, regs, subs map[primitive.ObjectID]windowCounts) []EventRollup {
	out := make([]EventRollup, 0, len(events))
	for _, ev := range events {
		r := regs[ev.ID]
		s := subs[ev.ID]
		out = append(out, EventRollup{
			ID:        ev.ID,
			Title:     ev.Title,
			Status:    ev.Status,
			StartDate: ev.StartDate,
			EndDate:   ev.EndDate,
			Metrics: Metrics{
				Registrations: r.Total,
				Submissions:   s.Total,
				Conversion:    conversionRate(r.Total, s.Total),
				Activity24h:   r.Last24 + s.Last24,
			},
		})
	}
	return out
}

// sortRollups orders rollups by the requested field. The sort is stable
// so equal keys keep their relative order and repeated calls over the
// same data produce identical output.
func sortRollups(rollups []EventRollup, sortBy, order string) {
	if sortBy == "" {
		sortBy = SortStartDate
	}
	desc := true
	if strings.EqualFold(order, "asc") {
		desc = false
	}

	less := func(i, j int) bool {
		a, b := rollups[i], rollups[j]
		switch sortBy {
		case SortTitle:
			return a.Title < b.Title
		case SortRegistrations:
			return a.Metrics.Registrations < b.Metrics.Registrations
		case SortSubmissions:
			return a.Metrics.Submissions < b.Metrics.Submissions
		case SortConversion:
			return a.Metrics.Conversion < b.Metrics.Conversion
		case SortActivity24h:
			return a.Metrics.Activity24h < b.Metrics.Activity24h
		default:
			return a.StartDate.Before(b.StartDate)
		}
	}

	if desc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(rollups, less)
}
