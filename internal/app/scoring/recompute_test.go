package scoring

import (
	"sync"
	"testing"

	"github.com/dalemusser/hackhub/internal/domain/models"
	"github.com/dalemusser/hackhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type recordingBroadcaster struct {
	mu      sync.Mutex
	events  []primitive.ObjectID
	reasons []string
}

func (b *recordingBroadcaster) BroadcastLeaderboard(eventID primitive.ObjectID, reason string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, eventID)
	b.reasons = append(b.reasons, reason)
}

func teamScore(t *testing.T, fx *testutil.Fixtures, teamID primitive.ObjectID) float64 {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	var team models.Team
	if err := fx.DB().Collection("teams").FindOne(ctx, bson.M{"_id": teamID}).Decode(&team); err != nil {
		t.Fatalf("failed to load team: %v", err)
	}
	return team.Score
}

func TestRecomputePrefersEvaluations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	organizer := fx.CreateOrganizer(ctx, "Org", "org@test.com")
	event := fx.CreateEvent(ctx, "Event", models.EventStatusOngoing, organizer.ID)
	team := fx.CreateTeam(ctx, event.ID, "Rockets", nil)

	judgeA := fx.CreateJudge(ctx, "Judge A", "a@test.com")
	judgeB := fx.CreateJudge(ctx, "Judge B", "b@test.com")
	fx.CreateEvaluation(ctx, event.ID, team.ID, judgeA.ID, models.CriteriaScores{
		Innovation: testutil.Score(8), Impact: testutil.Score(6),
	})
	fx.CreateEvaluation(ctx, event.ID, team.ID, judgeB.ID, models.CriteriaScores{
		Innovation: testutil.Score(9), Impact: testutil.Score(7),
	})

	// A reviewed submission exists but must be ignored while evaluations do.
	fx.CreateSubmission(ctx, event.ID, team.ID, "Proj", models.SubmissionStatusReviewed, 10)

	bc := &recordingBroadcaster{}
	out := New(db, bc, zap.NewNop()).Recompute(ctx, event.ID, team.ID, "evaluation")

	if out.Source != SourceEvaluations || !out.Persisted {
		t.Fatalf("outcome: got %+v, want persisted evaluations source", out)
	}
	// ((8+6)/2*10 + (9+7)/2*10) / 2 = 75
	if out.Score != 75 {
		t.Errorf("score: got %v, want 75", out.Score)
	}
	if got := teamScore(t, fx, team.ID); got != 75 {
		t.Errorf("persisted score: got %v, want 75", got)
	}
	if len(bc.reasons) != 1 || bc.reasons[0] != "evaluation" {
		t.Errorf("broadcast reasons: got %v", bc.reasons)
	}
}

func TestRecomputeFallsBackToReviewedSubmissions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	organizer := fx.CreateOrganizer(ctx, "Org", "org@test.com")
	event := fx.CreateEvent(ctx, "Event", models.EventStatusOngoing, organizer.ID)
	team := fx.CreateTeam(ctx, event.ID, "Rockets", nil)

	fx.CreateSubmission(ctx, event.ID, team.ID, "One", models.SubmissionStatusReviewed, 60)
	fx.CreateSubmission(ctx, event.ID, team.ID, "Two", models.SubmissionStatusReviewed, 80)
	// Draft submissions never contribute to the fallback.
	fx.CreateSubmission(ctx, event.ID, team.ID, "Draft", models.SubmissionStatusDraft, 100)

	out := New(db, nil, zap.NewNop()).Recompute(ctx, event.ID, team.ID, "submission")

	if out.Source != SourceSubmissions || !out.Persisted {
		t.Fatalf("outcome: got %+v, want persisted submissions source", out)
	}
	if out.Score != 70 {
		t.Errorf("score: got %v, want 70", out.Score)
	}
	if got := teamScore(t, fx, team.ID); got != 70 {
		t.Errorf("persisted score: got %v, want 70", got)
	}
}

func TestRecomputeWithNoDataLeavesScoreUntouched(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	organizer := fx.CreateOrganizer(ctx, "Org", "org@test.com")
	event := fx.CreateEvent(ctx, "Event", models.EventStatusOngoing, organizer.ID)
	team := fx.CreateTeam(ctx, event.ID, "Rockets", nil)

	// Seed a previously computed score directly.
	if _, err := db.Collection("teams").UpdateOne(ctx,
		bson.M{"_id": team.ID}, bson.M{"$set": bson.M{"score": 42.5}}); err != nil {
		t.Fatalf("seed score: %v", err)
	}

	bc := &recordingBroadcaster{}
	out := New(db, bc, zap.NewNop()).Recompute(ctx, event.ID, team.ID, "evaluation")

	if out.Source != SourceNone {
		t.Fatalf("outcome source: got %q, want %q", out.Source, SourceNone)
	}
	if got := teamScore(t, fx, team.ID); got != 42.5 {
		t.Errorf("score was reset: got %v, want 42.5", got)
	}
	// The broadcaster is still signaled on a no-op run.
	if len(bc.events) != 1 {
		t.Errorf("broadcasts: got %d, want 1", len(bc.events))
	}
}
