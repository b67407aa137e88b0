// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup (EnsureSchema hook). Each ensure* function
is idempotent. We aggregate errors so any problem is visible and startup
can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureEvents(ctx, db); err != nil {
		problems = append(problems, "events: "+err.Error())
	}
	if err := ensureRegistrations(ctx, db); err != nil {
		problems = append(problems, "registrations: "+err.Error())
	}
	if err := ensureTeams(ctx, db); err != nil {
		problems = append(problems, "teams: "+err.Error())
	}
	if err := ensureSubmissions(ctx, db); err != nil {
		problems = append(problems, "submissions: "+err.Error())
	}
	if err := ensureEvaluations(ctx, db); err != nil {
		problems = append(problems, "evaluations: "+err.Error())
	}
	if err := ensureJudgeAssignments(ctx, db); err != nil {
		problems = append(problems, "judge_assignments: "+err.Error())
	}
	if err := ensureNotifications(ctx, db); err != nil {
		problems = append(problems, "notifications: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func create(ctx context.Context, db *mongo.Database, coll string, models []mongo.IndexModel) error {
	_, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
	return err
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "users", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetName("uniq_users_email_ci").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index().SetName("idx_users_role"),
		},
	})
}

func ensureEvents(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "events", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organizer_id", Value: 1}, {Key: "start_date", Value: -1}},
			Options: options.Index().SetName("idx_events_organizer_start"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "start_date", Value: -1}},
			Options: options.Index().SetName("idx_events_status_start"),
		},
	})
}

func ensureRegistrations(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "registrations", []mongo.IndexModel{
		// Grouped rollup counts and the 24h window both scan by event + time.
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_registrations_event_created"),
		},
		// Participant visibility match on folded emails.
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetName("idx_registrations_email_ci"),
		},
		{
			Keys:    bson.D{{Key: "member_emails_ci", Value: 1}},
			Options: options.Index().SetName("idx_registrations_member_emails_ci"),
		},
	})
}

func ensureTeams(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "teams", []mongo.IndexModel{
		// Team registration upserts by (event, folded name).
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("uniq_teams_event_name_ci").SetUnique(true),
		},
		// Leaderboard sort: score desc, created_at asc tie-break.
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "score", Value: -1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_teams_event_score"),
		},
	})
}

func ensureSubmissions(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "submissions", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_submissions_event_created"),
		},
		{
			Keys:    bson.D{{Key: "team_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_submissions_team_status"),
		},
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "score", Value: -1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_submissions_event_score"),
		},
	})
}

func ensureEvaluations(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "evaluations", []mongo.IndexModel{
		// One evaluation per (event, team, judge) - the scoring invariant
		// depends on this uniqueness, so it is enforced by the database,
		// not just the upsert path.
		{
			Keys: bson.D{
				{Key: "event_id", Value: 1},
				{Key: "team_id", Value: 1},
				{Key: "judge_id", Value: 1},
			},
			Options: options.Index().SetName("uniq_evaluations_event_team_judge").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "judge_id", Value: 1}, {Key: "event_id", Value: 1}},
			Options: options.Index().SetName("idx_evaluations_judge_event"),
		},
	})
}

func ensureJudgeAssignments(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "judge_assignments", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "judge_id", Value: 1}, {Key: "event_id", Value: 1}},
			Options: options.Index().SetName("uniq_judge_assignments_pair").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().SetName("idx_judge_assignments_event"),
		},
	})
}

func ensureNotifications(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "notifications", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "recipient_user_ids", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_notifications_recipient_created"),
		},
	})
}
