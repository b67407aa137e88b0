package registrations

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/hackhub/internal/domain/models"
	"github.com/dalemusser/hackhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestHandleCreateRejectsDraftEvent(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	organizer := fx.CreateOrganizer(ctx, "Org", "org@test.com")
	event := fx.CreateEvent(ctx, "Unpublished", models.EventStatusDraft, organizer.ID)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/registrations", map[string]any{
		"event_id": event.ID.Hex(),
		"type":     models.RegistrationIndividual,
		"email":    "alice@test.com",
	})
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleCreateTeamRequiresName(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	organizer := fx.CreateOrganizer(ctx, "Org", "org@test.com")
	event := fx.CreateEvent(ctx, "Open", models.EventStatusUpcoming, organizer.ID)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/registrations", map[string]any{
		"event_id": event.ID.Hex(),
		"type":     models.RegistrationTeam,
		"email":    "captain@test.com",
	})
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleCreateTeamGrowsExistingTeam(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	organizer := fx.CreateOrganizer(ctx, "Org", "org@test.com")
	event := fx.CreateEvent(ctx, "Open", models.EventStatusOngoing, organizer.ID)
	alice := fx.CreateParticipant(ctx, "Alice", "alice@test.com")
	bob := fx.CreateParticipant(ctx, "Bob", "bob@test.com")

	post := func(email string, members []string) models.Team {
		t.Helper()
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/registrations", map[string]any{
			"event_id":      event.ID.Hex(),
			"type":          models.RegistrationTeam,
			"email":         email,
			"team_name":     "Rockets",
			"member_emails": members,
		})
		rec := httptest.NewRecorder()
		h.HandleCreate(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var resp struct {
			Registration models.Registration `json:"registration"`
			Team         *models.Team        `json:"team"`
		}
		testutil.DecodeJSON(t, rec, &resp)
		if resp.Team == nil {
			t.Fatal("team registration should return the team")
		}
		return *resp.Team
	}

	first := post("alice@test.com", nil)
	second := post("bob@test.com", nil)

	if first.ID != second.ID {
		t.Fatalf("same team name registered twice should reuse one team, got %s and %s",
			first.ID.Hex(), second.ID.Hex())
	}

	has := func(team models.Team, id primitive.ObjectID) bool {
		for _, m := range team.MemberIDs {
			if m == id {
				return true
			}
		}
		return false
	}
	if !has(second, alice.ID) || !has(second, bob.ID) {
		t.Errorf("team should hold both resolved members, got %v", second.MemberIDs)
	}
}

func TestHandleListRequiresOwnership(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateOrganizer(ctx, "Owner", "owner@test.com")
	event := fx.CreateEvent(ctx, "Owned", models.EventStatusOngoing, owner.ID)
	fx.CreateRegistration(ctx, event.ID, "alice@test.com")

	req := testutil.NewAuthenticatedRequest(http.MethodGet,
		"/api/registrations?eventId="+event.ID.Hex(), testutil.OrganizerUser())
	rec := httptest.NewRecorder()

	h.HandleList(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign organizer: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	req = testutil.NewAuthenticatedRequest(http.MethodGet,
		"/api/registrations?eventId="+event.ID.Hex(), testutil.AsUser(owner))
	rec = httptest.NewRecorder()

	h.HandleList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("owner: got %d, want %d", rec.Code, http.StatusOK)
	}
	var body struct {
		Registrations []models.Registration `json:"registrations"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if len(body.Registrations) != 1 {
		t.Errorf("registrations: got %d, want 1", len(body.Registrations))
	}
}
