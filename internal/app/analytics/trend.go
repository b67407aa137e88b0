// internal/app/analytics/trend.go
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/hackhub/internal/app/system/apierr"
	"github.com/dalemusser/hackhub/internal/app/system/stats"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Trend timeframes.
const (
	Timeframe24h = "24h"
	Timeframe7d  = "7d"
	Timeframe30d = "30d"
)

// TrendPoint is one ordered bucket of registration activity.
type TrendPoint struct {
	Bucket string `json:"bucket"`
	Count  int64  `json:"count"`
}

// TrendResult is the bucketed registration series plus its sum.
// Degraded means the backing read failed and the buckets are zero-filled.
type TrendResult struct {
	Timeframe string       `json:"timeframe"`
	Points    []TrendPoint `json:"points"`
	Total     int64        `json:"total"`
	Degraded  bool         `json:"degraded,omitempty"`
}

// Trend buckets registration creation times by hour (24h), weekday
// (7d), or calendar day (30d) within the matching cutoff.
//
// Like DashboardTotals, this is a dashboard read: a failed store read
// degrades to a zero-filled series with Degraded set instead of failing
// the response. Only an unknown timeframe is an error.
func (a *Aggregator) Trend(ctx context.Context, eventID *primitive.ObjectID, timeframe string) (TrendResult, error) {
	now := time.Now().UTC()
	cutoff, err := trendCutoff(timeframe, now)
	if err != nil {
		return TrendResult{}, err
	}

	degrade := func(err error) TrendResult {
		stats.DegradedAggregations.Inc()
		a.log.Warn("trend degraded", zap.String("timeframe", timeframe), zap.Error(err))
		res := buildTrend(nil, timeframe, now)
		res.Degraded = true
		return res
	}

	filter := bson.M{"created_at": bson.M{"$gte": cutoff}}
	if eventID != nil {
		filter["event_id"] = *eventID
	}

	cur, err := a.db.Collection("registrations").Find(ctx, filter,
		options.Find().SetProjection(bson.M{"created_at": 1}))
	if err != nil {
		return degrade(err), nil
	}
	defer cur.Close(ctx)

	var times []time.Time
	for cur.Next(ctx) {
		var row struct {
			CreatedAt time.Time `bson:"created_at"`
		}
		if err := cur.Decode(&row); err != nil {
			return degrade(err), nil
		}
		times = append(times, row.CreatedAt)
	}
	if err := cur.Err(); err != nil {
		return degrade(err), nil
	}

	return buildTrend(times, timeframe, now), nil
}

// trendCutoff maps a timeframe onto its window start. Unknown
// timeframes are a validation failure, not a default.
func trendCutoff(timeframe string, now time.Time) (time.Time, error) {
	switch timeframe {
	case Timeframe24h:
		return now.Add(-24 * time.Hour), nil
	case Timeframe7d:
		return now.Add(-7 * 24 * time.Hour), nil
	case Timeframe30d:
		return now.Add(-30 * 24 * time.Hour), nil
	}
	return time.Time{}, apierr.Validationf("unknown timeframe %q", timeframe)
}

// buildTrend assembles the full zero-filled bucket sequence, oldest
// first, and counts each timestamp into its bucket. Timestamps outside
// the window (or in a bucket that rolled past) are dropped, not
// misfiled.
func buildTrend(times []time.Time, timeframe string, now time.Time) TrendResult {
	var (
		buckets []string
		keyFor  func(time.Time) string
		cutoff  time.Time
	)

	switch timeframe {
	case Timeframe7d:
		cutoff = now.Add(-7 * 24 * time.Hour)
		keyFor = func(t time.Time) string { return t.UTC().Weekday().String()[:3] }
		for i := 6; i >= 0; i-- {
			buckets = append(buckets, keyFor(now.AddDate(0, 0, -i)))
		}
	case Timeframe30d:
		// Month-day keys: plain day numbers would merge e.g. Feb 5 and
		// Mar 5 when the window spans a month boundary.
		cutoff = now.Add(-30 * 24 * time.Hour)
		keyFor = func(t time.Time) string { return t.UTC().Format("01-02") }
		for i := 29; i >= 0; i-- {
			buckets = append(buckets, keyFor(now.AddDate(0, 0, -i)))
		}
	default: // 24h
		cutoff = now.Add(-24 * time.Hour)
		keyFor = func(t time.Time) string { return fmt.Sprintf("%02d:00", t.UTC().Hour()) }
		for i := 23; i >= 0; i-- {
			buckets = append(buckets, keyFor(now.Add(-time.Duration(i)*time.Hour)))
		}
	}

	counts := make(map[string]int64, len(buckets))
	known := make(map[string]struct{}, len(buckets))
	for _, b := range buckets {
		known[b] = struct{}{}
	}

	var total int64
	for _, t := range times {
		if t.Before(cutoff) || t.After(now) {
			continue
		}
		key := keyFor(t)
		if _, ok := known[key]; !ok {
			continue
		}
		counts[key]++
		total++
	}

	points := make([]TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, TrendPoint{Bucket: b, Count: counts[b]})
	}

	return TrendResult{Timeframe: timeframe, Points: points, Total: total}
}
