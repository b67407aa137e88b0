package submissions

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/hackhub/internal/app/scoring"
	"github.com/dalemusser/hackhub/internal/domain/models"
	"github.com/dalemusser/hackhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	recalc := scoring.New(db, nil, zap.NewNop())
	return NewHandler(db, recalc, zap.NewNop()), testutil.NewFixtures(t, db), db
}

func TestHandleCreateRejectsTeamFromAnotherEvent(t *testing.T) {
	h, fx, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	organizer := fx.CreateOrganizer(ctx, "Org", "org@test.com")
	event := fx.CreateEvent(ctx, "Event", models.EventStatusOngoing, organizer.ID)
	other := fx.CreateEvent(ctx, "Other", models.EventStatusOngoing, organizer.ID)
	foreignTeam := fx.CreateTeam(ctx, other.ID, "Rockets", nil)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/submissions", map[string]any{
		"event_id": event.ID.Hex(),
		"team_id":  foreignTeam.ID.Hex(),
		"title":    "Project",
	})
	req = testutil.WithUser(req, testutil.ParticipantUser())
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleSubmitRejectsReviewed(t *testing.T) {
	h, fx, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	organizer := fx.CreateOrganizer(ctx, "Org", "org@test.com")
	event := fx.CreateEvent(ctx, "Event", models.EventStatusOngoing, organizer.ID)
	team := fx.CreateTeam(ctx, event.ID, "Rockets", nil)
	sub := fx.CreateSubmission(ctx, event.ID, team.ID, "Done", models.SubmissionStatusReviewed, 80)

	req := testutil.NewAuthenticatedRequest(http.MethodPost,
		"/api/submissions/"+sub.ID.Hex()+"/submit", testutil.ParticipantUser())
	req = testutil.WithChiURLParam(req, "submissionID", sub.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleSubmit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleScoreRejectsUnassignedJudge(t *testing.T) {
	h, fx, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	organizer := fx.CreateOrganizer(ctx, "Org", "org@test.com")
	event := fx.CreateEvent(ctx, "Event", models.EventStatusOngoing, organizer.ID)
	team := fx.CreateTeam(ctx, event.ID, "Rockets", nil)
	sub := fx.CreateSubmission(ctx, event.ID, team.ID, "Proj", models.SubmissionStatusSubmitted, 0)
	judge := fx.CreateJudge(ctx, "Judge", "judge@test.com")

	req := testutil.NewJSONRequest(t, http.MethodPost,
		"/api/submissions/"+sub.ID.Hex()+"/score", map[string]float64{"score": 85})
	req = testutil.WithUser(req, testutil.AsUser(judge))
	req = testutil.WithChiURLParam(req, "submissionID", sub.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleScore(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("unassigned judge: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	// The rejected attempt must not have touched the submission.
	stored, err := h.Submissions.GetByID(ctx, sub.ID)
	if err != nil || stored == nil {
		t.Fatalf("reload submission: %v", err)
	}
	if stored.Status != models.SubmissionStatusSubmitted || stored.Score != 0 {
		t.Errorf("submission mutated by forbidden score: %+v", stored)
	}
}

func TestHandleScoreByAssignedJudgeMarksReviewed(t *testing.T) {
	h, fx, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	organizer := fx.CreateOrganizer(ctx, "Org", "org@test.com")
	event := fx.CreateEvent(ctx, "Event", models.EventStatusOngoing, organizer.ID)
	team := fx.CreateTeam(ctx, event.ID, "Rockets", nil)
	sub := fx.CreateSubmission(ctx, event.ID, team.ID, "Proj", models.SubmissionStatusSubmitted, 0)
	judge := fx.CreateJudge(ctx, "Judge", "judge@test.com")
	fx.AssignJudge(ctx, judge.ID, event.ID)

	req := testutil.NewJSONRequest(t, http.MethodPost,
		"/api/submissions/"+sub.ID.Hex()+"/score", map[string]float64{"score": 85})
	req = testutil.WithUser(req, testutil.AsUser(judge))
	req = testutil.WithChiURLParam(req, "submissionID", sub.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleScore(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body struct {
		Submission models.Submission `json:"submission"`
		TeamScore  scoring.Outcome   `json:"team_score"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if body.Submission.Status != models.SubmissionStatusReviewed || body.Submission.Score != 85 {
		t.Errorf("submission: got %+v, want reviewed with score 85", body.Submission)
	}
	// No evaluations exist, so the team score falls back to submissions.
	if body.TeamScore.Source != scoring.SourceSubmissions || body.TeamScore.Score != 85 {
		t.Errorf("team score: got %+v, want 85 from submissions", body.TeamScore)
	}
}

func TestHandleScoreRejectsOutOfRange(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost,
		"/api/submissions/000000000000000000000000/score", map[string]float64{"score": 101})
	req = testutil.WithUser(req, testutil.OrganizerUser())
	req = testutil.WithChiURLParam(req, "submissionID", "000000000000000000000000")
	rec := httptest.NewRecorder()

	h.HandleScore(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleListHidesEventsOutsideCallerView(t *testing.T) {
	h, fx, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateOrganizer(ctx, "Owner", "owner@test.com")
	event := fx.CreateEvent(ctx, "Private", models.EventStatusOngoing, owner.ID)

	req := testutil.NewAuthenticatedRequest(http.MethodGet,
		"/api/submissions?eventId="+event.ID.Hex(), testutil.OrganizerUser())
	rec := httptest.NewRecorder()

	h.HandleList(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign organizer: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}
