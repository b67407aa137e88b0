package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/hackhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		EmailCI:    text.Fold(email),
		Role:       role,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateOrganizer creates a test organizer user.
func (f *Fixtures) CreateOrganizer(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, "organizer")
}

// CreateJudge creates a test judge user.
func (f *Fixtures) CreateJudge(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, "judge")
}

// CreateParticipant creates a test participant user.
func (f *Fixtures) CreateParticipant(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, "participant")
}

// CreateEvent creates a test event owned by the given organizer.
func (f *Fixtures) CreateEvent(ctx context.Context, title, status string, organizerID primitive.ObjectID) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	event := models.Event{
		ID:          primitive.NewObjectID(),
		Title:       title,
		TitleCI:     text.Fold(title),
		Status:      status,
		StartDate:   now.Add(-24 * time.Hour),
		EndDate:     now.Add(48 * time.Hour),
		OrganizerID: organizerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := f.db.Collection("events").InsertOne(ctx, event)
	if err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}

	return event
}

// CreateRegistration creates an individual registration for an event.
func (f *Fixtures) CreateRegistration(ctx context.Context, eventID primitive.ObjectID, email string) models.Registration {
	f.t.Helper()

	reg := models.Registration{
		ID:        primitive.NewObjectID(),
		EventID:   eventID,
		Type:      models.RegistrationIndividual,
		Email:     email,
		EmailCI:   text.Fold(email),
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("registrations").InsertOne(ctx, reg)
	if err != nil {
		f.t.Fatalf("failed to create test registration: %v", err)
	}

	return reg
}

// CreateTeamRegistration creates a team registration with member emails.
func (f *Fixtures) CreateTeamRegistration(ctx context.Context, eventID primitive.ObjectID, email, teamName string, memberEmails []string) models.Registration {
	f.t.Helper()

	memberCI := make([]string, 0, len(memberEmails))
	for _, m := range memberEmails {
		memberCI = append(memberCI, text.Fold(m))
	}

	reg := models.Registration{
		ID:             primitive.NewObjectID(),
		EventID:        eventID,
		Type:           models.RegistrationTeam,
		Email:          email,
		EmailCI:        text.Fold(email),
		TeamName:       teamName,
		MemberEmails:   memberEmails,
		MemberEmailsCI: memberCI,
		CreatedAt:      time.Now().UTC(),
	}

	_, err := f.db.Collection("registrations").InsertOne(ctx, reg)
	if err != nil {
		f.t.Fatalf("failed to create test team registration: %v", err)
	}

	return reg
}

// CreateTeam creates a test team for an event.
func (f *Fixtures) CreateTeam(ctx context.Context, eventID primitive.ObjectID, name string, memberIDs []primitive.ObjectID) models.Team {
	f.t.Helper()

	now := time.Now().UTC()
	team := models.Team{
		ID:        primitive.NewObjectID(),
		EventID:   eventID,
		Name:      name,
		NameCI:    text.Fold(name),
		MemberIDs: memberIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("teams").InsertOne(ctx, team)
	if err != nil {
		f.t.Fatalf("failed to create test team: %v", err)
	}

	return team
}

// CreateSubmission creates a test submission with the given status and score.
func (f *Fixtures) CreateSubmission(ctx context.Context, eventID, teamID primitive.ObjectID, title, status string, score float64) models.Submission {
	f.t.Helper()

	now := time.Now().UTC()
	sub := models.Submission{
		ID:        primitive.NewObjectID(),
		EventID:   eventID,
		TeamID:    teamID,
		Title:     title,
		Status:    status,
		Score:     score,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("submissions").InsertOne(ctx, sub)
	if err != nil {
		f.t.Fatalf("failed to create test submission: %v", err)
	}

	return sub
}

// CreateEvaluation creates a test evaluation for (event, team, judge).
func (f *Fixtures) CreateEvaluation(ctx context.Context, eventID, teamID, judgeID primitive.ObjectID, scores models.CriteriaScores) models.Evaluation {
	f.t.Helper()

	now := time.Now().UTC()
	ev := models.Evaluation{
		ID:        primitive.NewObjectID(),
		EventID:   eventID,
		TeamID:    teamID,
		JudgeID:   judgeID,
		Scores:    scores,
		Status:    models.EvaluationStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("evaluations").InsertOne(ctx, ev)
	if err != nil {
		f.t.Fatalf("failed to create test evaluation: %v", err)
	}

	return ev
}

// AssignJudge records a judge assignment for an event.
func (f *Fixtures) AssignJudge(ctx context.Context, judgeID, eventID primitive.ObjectID) models.JudgeAssignment {
	f.t.Helper()

	a := models.JudgeAssignment{
		ID:        primitive.NewObjectID(),
		JudgeID:   judgeID,
		EventID:   eventID,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("judge_assignments").InsertOne(ctx, a)
	if err != nil {
		f.t.Fatalf("failed to create test judge assignment: %v", err)
	}

	return a
}

// Score returns a pointer to v, for building CriteriaScores literals.
func Score(v float64) *float64 {
	return &v
}
