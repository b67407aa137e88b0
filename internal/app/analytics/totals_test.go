// internal/app/analytics/totals_test.go
package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/hackhub/internal/domain/models"
	"github.com/dalemusser/hackhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func TestDashboardTotalsEventScope(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	a := New(db, zap.NewNop())

	organizer := fx.CreateOrganizer(ctx, "Org", "org@test.com")
	event := fx.CreateEvent(ctx, "Event", models.EventStatusOngoing, organizer.ID)

	// One named-team registration plus one individual: two participant
	// records, but only the named team counts as formed.
	fx.CreateTeamRegistration(ctx, event.ID, "captain@test.com", "Rockets", []string{"mate@test.com"})
	fx.CreateRegistration(ctx, event.ID, "solo@test.com")

	team := fx.CreateTeam(ctx, event.ID, "Rockets", nil)
	fx.CreateSubmission(ctx, event.ID, team.ID, "Project", models.SubmissionStatusReviewed, 80)

	out := a.DashboardTotals(ctx, &event.ID)

	if out.Degraded {
		t.Fatal("healthy store should not flag degraded")
	}
	if out.ActiveEvents != 1 {
		t.Errorf("active events = %d, want 1", out.ActiveEvents)
	}
	if out.TotalParticipants != 2 {
		t.Errorf("participants = %d, want 2 (one record per registration)", out.TotalParticipants)
	}
	if out.TotalSubmissions != 1 {
		t.Errorf("submissions = %d, want 1", out.TotalSubmissions)
	}
	if out.TeamsFormed != 1 {
		t.Errorf("teams formed = %d, want 1 (individual signup forms no team)", out.TeamsFormed)
	}
	if out.SuccessRate != 50 {
		t.Errorf("success rate = %v, want 50 (1 submission over 2 registrations)", out.SuccessRate)
	}
	if out.EngagementRate != 100 {
		t.Errorf("engagement = %v, want 100 (both registrations inside the week)", out.EngagementRate)
	}
}

func TestDashboardTotalsZeroRegistrationsGuard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	a := New(db, zap.NewNop())

	organizer := fx.CreateOrganizer(ctx, "Org", "org@test.com")
	event := fx.CreateEvent(ctx, "Empty", models.EventStatusOngoing, organizer.ID)
	team := fx.CreateTeam(ctx, event.ID, "Ghosts", nil)
	fx.CreateSubmission(ctx, event.ID, team.ID, "Orphan", models.SubmissionStatusSubmitted, 0)

	out := a.DashboardTotals(ctx, &event.ID)

	if out.SuccessRate != 0 {
		t.Errorf("success rate with zero registrations = %v, want 0", out.SuccessRate)
	}
	if out.EngagementRate != 0 {
		t.Errorf("engagement with zero registrations = %v, want 0", out.EngagementRate)
	}
}

func TestDashboardTotalsGlobalSuccessRate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	a := New(db, zap.NewNop())

	organizer := fx.CreateOrganizer(ctx, "Org", "org@test.com")
	funded := fx.CreateEvent(ctx, "Funded", models.EventStatusCompleted, organizer.ID)
	fx.CreateEvent(ctx, "Quiet", models.EventStatusOngoing, organizer.ID)
	fx.CreateEvent(ctx, "Unpublished", models.EventStatusDraft, organizer.ID)

	team := fx.CreateTeam(ctx, funded.ID, "Rockets", nil)
	fx.CreateSubmission(ctx, funded.ID, team.ID, "Project", models.SubmissionStatusSubmitted, 0)

	out := a.DashboardTotals(ctx, nil)

	// One of two non-draft events attracted a submission; the draft
	// event is out of the denominator entirely.
	if out.SuccessRate != 50 {
		t.Errorf("global success rate = %v, want 50", out.SuccessRate)
	}
	if out.ActiveEvents != 1 {
		t.Errorf("active events = %d, want 1 (only the ongoing event counts)", out.ActiveEvents)
	}
}

func TestDashboardTotalsDegradesWhenStoreUnavailable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(250*time.Millisecond).
		SetConnectTimeout(250*time.Millisecond))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Disconnect(context.Background())

	a := New(client.Database("hackhub_unreachable"), zap.NewNop())

	out := a.DashboardTotals(ctx, nil)

	if !out.Degraded {
		t.Error("failed reads should flag the response degraded")
	}
	if out.ActiveEvents != 0 || out.TotalParticipants != 0 || out.TotalSubmissions != 0 ||
		out.SuccessRate != 0 || out.EngagementRate != 0 || out.TeamsFormed != 0 {
		t.Errorf("degraded figures should zero, got %+v", out)
	}
}
