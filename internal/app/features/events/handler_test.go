package events

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/hackhub/internal/domain/models"
	"github.com/dalemusser/hackhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestHandleCreateRequiresTitle(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/events", map[string]any{
		"title": "   ",
	})
	req = testutil.WithUser(req, testutil.OrganizerUser())
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleCreateRejectsInvertedDates(t *testing.T) {
	h, _ := newTestHandler(t)

	start := time.Now().UTC()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/events", map[string]any{
		"title":      "Spring Hack",
		"start_date": start,
		"end_date":   start.Add(-time.Hour),
	})
	req = testutil.WithUser(req, testutil.OrganizerUser())
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleCreateSetsOrganizerFromSession(t *testing.T) {
	h, _ := newTestHandler(t)

	user := testutil.OrganizerUser()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/events", map[string]any{
		"title":  "Spring Hack",
		"status": models.EventStatusUpcoming,
	})
	req = testutil.WithUser(req, user)
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var ev models.Event
	testutil.DecodeJSON(t, rec, &ev)
	if ev.OrganizerID.Hex() != user.ID {
		t.Errorf("organizer_id: got %s, want %s", ev.OrganizerID.Hex(), user.ID)
	}
}

func TestHandleSetStatusForbiddenForNonOwner(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateOrganizer(ctx, "Owner", "owner@test.com")
	event := fx.CreateEvent(ctx, "Owned", models.EventStatusDraft, owner.ID)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/events/"+event.ID.Hex()+"/status",
		map[string]string{"status": models.EventStatusOngoing})
	req = testutil.WithUser(req, testutil.OrganizerUser())
	req = testutil.WithChiURLParam(req, "eventID", event.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleSetStatus(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestHandleAssignJudgeRejectsNonJudgeAccount(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateOrganizer(ctx, "Owner", "owner@test.com")
	event := fx.CreateEvent(ctx, "Owned", models.EventStatusOngoing, owner.ID)
	fx.CreateParticipant(ctx, "Not A Judge", "someone@test.com")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/events/"+event.ID.Hex()+"/judges",
		map[string]string{"judge_email": "someone@test.com"})
	req = testutil.WithUser(req, testutil.AsUser(owner))
	req = testutil.WithChiURLParam(req, "eventID", event.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleAssignJudge(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d (body %s)", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}

func TestHandleListScopesToOrganizer(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mine := fx.CreateOrganizer(ctx, "Mine", "mine@test.com")
	other := fx.CreateOrganizer(ctx, "Other", "other@test.com")
	fx.CreateEvent(ctx, "My Event", models.EventStatusOngoing, mine.ID)
	fx.CreateEvent(ctx, "Their Event", models.EventStatusOngoing, other.ID)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/events", testutil.AsUser(mine))
	rec := httptest.NewRecorder()

	h.HandleList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	var body struct {
		Events []models.Event `json:"events"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if len(body.Events) != 1 || body.Events[0].Title != "My Event" {
		t.Errorf("organizer list: got %d events, want exactly their own", len(body.Events))
	}
}

func TestHandleGetUnknownIDIsValidationError(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewRequest(http.MethodGet, "/api/events/not-an-id")
	req = testutil.WithChiURLParam(req, "eventID", "not-an-id")
	rec := httptest.NewRecorder()

	h.HandleGet(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
