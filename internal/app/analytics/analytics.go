// Package analytics derives event-level metrics on demand: per-event
// rollups, platform/event dashboard totals, and registration trends.
//
// Nothing here is persisted; every read recomputes from the record
// stores. Dashboard-style reads are tolerant in the metricsstore
// tradition: a failed store read degrades that figure to zero (and sets
// Degraded) instead of failing the response. Authorization-sensitive
// reads do NOT get that treatment - they surface real errors.
package analytics

import (
	"math"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Aggregator computes rollups, totals, and trends over the backing
// database.
type Aggregator struct {
	db  *mongo.Database
	log *zap.Logger
}

// New creates an Aggregator.
func New(db *mongo.Database, logger *zap.Logger) *Aggregator {
	return &Aggregator{db: db, log: logger}
}

// round1 rounds to one decimal place. Ratios are rounded once, at the
// end - never on intermediate values.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// conversionRate is submissions/registrations as a percentage, rounded
// to one decimal. The zero-guard is strict: zero registrations means a
// conversion of exactly 0, never NaN or Inf, regardless of submission
// count. 100 is not a cap; more submissions than registrations is legal.
func conversionRate(registrations, submissions int64) float64 {
	if registrations <= 0 {
		return 0
	}
	return round1(float64(submissions) / float64(registrations) * 100)
}

// percentage is part/whole*100 with the same zero-guard and rounding.
func percentage(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return round1(float64(part) / float64(whole) * 100)
}
