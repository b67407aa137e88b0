// Package stats exposes Prometheus collectors for the analytics and
// scoring engine. Everything here is best-effort observability; nothing
// in the request path depends on it.
package stats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScoreRecomputes counts recompute runs by outcome:
	// "evaluations", "submissions", "noop", "persist_error".
	ScoreRecomputes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hackhub",
		Subsystem: "scoring",
		Name:      "recomputes_total",
		Help:      "Team score recompute runs by outcome.",
	}, []string{"outcome"})

	// RecomputeDuration observes wall time of a recompute, including the
	// team persist but not the broadcast.
	RecomputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hackhub",
		Subsystem: "scoring",
		Name:      "recompute_seconds",
		Help:      "Duration of team score recomputation.",
		Buckets:   prometheus.DefBuckets,
	})

	// BroadcastsSent counts realtime frames fanned out, by kind:
	// "leaderboard", "notification".
	BroadcastsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hackhub",
		Subsystem: "realtime",
		Name:      "broadcasts_total",
		Help:      "Realtime frames sent to subscribers, by kind.",
	}, []string{"kind"})

	// Subscribers tracks currently connected websocket peers by channel
	// kind: "leaderboard", "user".
	Subscribers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hackhub",
		Subsystem: "realtime",
		Name:      "subscribers",
		Help:      "Currently connected websocket subscribers, by kind.",
	}, []string{"kind"})

	// DegradedAggregations counts dashboard/trend reads that fell back to
	// zeroed metrics because a store read failed.
	DegradedAggregations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hackhub",
		Subsystem: "analytics",
		Name:      "degraded_total",
		Help:      "Aggregation reads that returned zeroed/partial metrics.",
	})
)
