package notifications

import (
	"testing"

	"github.com/dalemusser/hackhub/internal/domain/models"
	"github.com/dalemusser/hackhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestDedupeIDsPreservesFirstSeenOrder(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	got := dedupeIDs([]primitive.ObjectID{a, b, a, c, b, a})

	want := []primitive.ObjectID{a, b, c}
	if len(got) != len(want) {
		t.Fatalf("dedupe: got %d ids, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dedupe[%d]: got %s, want %s", i, got[i].Hex(), want[i].Hex())
		}
	}
}

func TestDedupeIDsEmpty(t *testing.T) {
	if got := dedupeIDs(nil); len(got) != 0 {
		t.Errorf("dedupe(nil): got %v, want empty", got)
	}
}

func TestResolveRecipientsUnionsMembersAndRegisteredAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	h := NewHandler(db, nil, zap.NewNop())

	organizer := fx.CreateOrganizer(ctx, "Org", "org@test.com")
	event := fx.CreateEvent(ctx, "Event", models.EventStatusOngoing, organizer.ID)

	alice := fx.CreateParticipant(ctx, "Alice", "alice@test.com")
	bob := fx.CreateParticipant(ctx, "Bob", "bob@test.com")
	carol := fx.CreateParticipant(ctx, "Carol", "carol@test.com")

	fx.CreateTeam(ctx, event.ID, "Rockets", []primitive.ObjectID{alice.ID, bob.ID})
	// Carol registered solo; her account is found via the email sweep.
	fx.CreateRegistration(ctx, event.ID, "Carol@Test.com")
	// Alice also registered; she must not appear twice.
	fx.CreateRegistration(ctx, event.ID, "alice@test.com")

	got, err := h.resolveRecipients(ctx, &event.ID, nil, nil)
	if err != nil {
		t.Fatalf("resolveRecipients failed: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("recipients: got %d, want 3 (%v)", len(got), got)
	}
	want := map[primitive.ObjectID]bool{alice.ID: true, bob.ID: true, carol.ID: true}
	for _, id := range got {
		if !want[id] {
			t.Errorf("unexpected recipient %s", id.Hex())
		}
	}
}

func TestResolveRecipientsTeamNarrowingSkipsEmailSweep(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	h := NewHandler(db, nil, zap.NewNop())

	organizer := fx.CreateOrganizer(ctx, "Org", "org@test.com")
	event := fx.CreateEvent(ctx, "Event", models.EventStatusOngoing, organizer.ID)

	alice := fx.CreateParticipant(ctx, "Alice", "alice@test.com")
	bob := fx.CreateParticipant(ctx, "Bob", "bob@test.com")
	fx.CreateParticipant(ctx, "Carol", "carol@test.com")

	rockets := fx.CreateTeam(ctx, event.ID, "Rockets", []primitive.ObjectID{alice.ID})
	fx.CreateTeam(ctx, event.ID, "Comets", []primitive.ObjectID{bob.ID})
	// Carol's registration would be swept in for a whole-event notification.
	fx.CreateRegistration(ctx, event.ID, "carol@test.com")

	got, err := h.resolveRecipients(ctx, &event.ID, []primitive.ObjectID{rockets.ID}, nil)
	if err != nil {
		t.Fatalf("resolveRecipients failed: %v", err)
	}

	if len(got) != 1 || got[0] != alice.ID {
		t.Errorf("narrowed recipients: got %v, want just %s", got, alice.ID.Hex())
	}
}
