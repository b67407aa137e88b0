// Package scoring owns the cached team score. Recompute derives a fresh
// score from whatever judge evaluations exist at call time, falls back
// to reviewed submission scores when there are none, and leaves the
// stored score untouched when neither source has data.
//
// Recompute never fails the operation that triggered it: store errors
// are logged, counted, and swallowed, and the realtime broadcaster is
// signaled on every run regardless of outcome. Listeners re-fetch the
// leaderboard; the pushed frame carries no score.
package scoring

import (
	"context"
	"math"

	"github.com/dalemusser/hackhub/internal/app/store/evaluations"
	"github.com/dalemusser/hackhub/internal/app/store/submissions"
	"github.com/dalemusser/hackhub/internal/app/store/teams"
	"github.com/dalemusser/hackhub/internal/app/system/stats"
	"github.com/dalemusser/hackhub/internal/domain/models"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Score sources reported in Outcome and in metrics labels.
const (
	SourceEvaluations = "evaluations"
	SourceSubmissions = "submissions"
	SourceNone        = "noop"
)

// Broadcaster is the push side the recalculator signals after every
// run. The realtime hub implements it; tests substitute a recorder.
type Broadcaster interface {
	BroadcastLeaderboard(eventID primitive.ObjectID, reason string)
}

// NopBroadcaster discards signals. Used where no hub is wired.
type NopBroadcaster struct{}

func (NopBroadcaster) BroadcastLeaderboard(primitive.ObjectID, string) {}

// Outcome describes what one Recompute run did.
type Outcome struct {
	Source    string  `json:"source"`
	Score     float64 `json:"score"`
	Persisted bool    `json:"persisted"`
}

// Recalculator derives and persists team scores.
type Recalculator struct {
	teams *teams.Store
	subs  *submissions.Store
	evals *evaluations.Store
	bc    Broadcaster
	log   *zap.Logger
}

// New creates a Recalculator. A nil broadcaster gets the nop.
func New(db *mongo.Database, bc Broadcaster, logger *zap.Logger) *Recalculator {
	if bc == nil {
		bc = NopBroadcaster{}
	}
	return &Recalculator{
		teams: teams.New(db),
		subs:  submissions.New(db),
		evals: evaluations.New(db),
		bc:    bc,
		log:   logger,
	}
}

// Recompute recalculates the team's score from current data and
// persists it. reason names the trigger ("evaluation", "submission")
// and is forwarded verbatim in the broadcast frame.
//
// Concurrent runs race on the final write and the last one wins; each
// run's write is internally consistent with the data it read, which is
// the guarantee callers get.
func (r *Recalculator) Recompute(ctx context.Context, eventID, teamID primitive.ObjectID, reason string) Outcome {
	timer := prometheus.NewTimer(stats.RecomputeDuration)
	out := r.recompute(ctx, eventID, teamID)
	timer.ObserveDuration()

	// Signal listeners no matter what happened above; they re-fetch and
	// see whatever is currently stored.
	r.bc.BroadcastLeaderboard(eventID, reason)
	return out
}

func (r *Recalculator) recompute(ctx context.Context, eventID, teamID primitive.ObjectID) Outcome {
	evals, err := r.evals.ListForTeam(ctx, eventID, teamID)
	if err != nil {
		r.log.Error("recompute: evaluations read failed",
			zap.String("team_id", teamID.Hex()), zap.Error(err))
		evals = nil
	}

	score, ok := scoreFromEvaluations(evals)
	source := SourceEvaluations

	if !ok {
		scores, err := r.subs.ReviewedScoresForTeam(ctx, eventID, teamID)
		if err != nil {
			r.log.Error("recompute: submissions read failed",
				zap.String("team_id", teamID.Hex()), zap.Error(err))
			scores = nil
		}
		score, ok = scoreFromSubmissions(scores)
		source = SourceSubmissions
	}

	if !ok {
		// No scored data anywhere: keep the stored score as is. A team
		// must never be reset to 0 by a recompute that found nothing.
		stats.ScoreRecomputes.WithLabelValues(SourceNone).Inc()
		return Outcome{Source: SourceNone}
	}

	if err := r.teams.SetScore(ctx, teamID, score); err != nil {
		stats.ScoreRecomputes.WithLabelValues("persist_error").Inc()
		r.log.Error("recompute: score persist failed",
			zap.String("team_id", teamID.Hex()),
			zap.Float64("score", score),
			zap.Error(err))
		return Outcome{Source: source, Score: score, Persisted: false}
	}

	stats.ScoreRecomputes.WithLabelValues(source).Inc()
	return Outcome{Source: source, Score: score, Persisted: true}
}

// scoreFromEvaluations maps each usable evaluation to the mean of its
// present criteria scaled to 0-100, then averages across evaluations.
// Evaluations with no scored criteria are skipped entirely; reporting
// false means no usable evaluation existed.
func scoreFromEvaluations(evals []models.Evaluation) (float64, bool) {
	var sum float64
	var n int
	for _, ev := range evals {
		present := ev.Scores.Present()
		if len(present) == 0 {
			continue
		}
		sum += mean(present) * 10
		n++
	}
	if n == 0 {
		return 0, false
	}
	return round2(sum / float64(n)), true
}

// scoreFromSubmissions averages reviewed submission scores (already on
// the 0-100 scale).
func scoreFromSubmissions(scores []float64) (float64, bool) {
	if len(scores) == 0 {
		return 0, false
	}
	return round2(mean(scores)), true
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// round2 rounds to two decimals, applied once at the end of the
// pipeline, never to intermediate means.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
