// Package viewpolicy narrows which events and evaluations a caller may
// see, as a strategy keyed on the closed role enum.
//
// Authorization rules:
//   - Organizers see events they own; once ownership is established, no
//     further restriction applies to the event's sub-resources.
//   - Judges see events in their judge_assignments set; evaluation
//     listings are additionally pinned to their own judge_id.
//   - Participants see events where their account email appears on a
//     registration (personal or team-member, case-insensitive).
//   - Anonymous callers see everything, optionally narrowed by an
//     explicit status filter; this powers public dashboards.
//
// An empty resolved event set is a successful empty view, never an
// error: "no events yet" must not read as a failure.
package viewpolicy

import (
	"context"

	"github.com/dalemusser/hackhub/internal/app/store/judgeassign"
	"github.com/dalemusser/hackhub/internal/app/store/registrations"
	"github.com/dalemusser/hackhub/internal/app/system/apierr"
	"github.com/dalemusser/hackhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Filters is the request-level narrowing a caller may ask for on top of
// what their role allows.
type Filters struct {
	Status string
}

// Resolver builds role-scoped query filters. It reads judge assignments
// and registrations; it never mutates anything.
type Resolver struct {
	assignments   *judgeassign.Store
	registrations *registrations.Store
}

// New creates a Resolver over the backing database.
func New(db *mongo.Database) *Resolver {
	return &Resolver{
		assignments:   judgeassign.New(db),
		registrations: registrations.New(db),
	}
}

// EventFilter returns the Mongo filter selecting exactly the events the
// caller may see, with the optional request filters applied.
func (r *Resolver) EventFilter(ctx context.Context, caller authz.Caller, f Filters) (bson.M, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	switch caller.Role {
	case authz.RoleOrganizer:
		filter["organizer_id"] = caller.ID

	case authz.RoleJudge:
		ids, err := r.assignments.EventIDsForJudge(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		filter["_id"] = inSet(ids)

	case authz.RoleParticipant:
		ids, err := r.registrations.EventIDsForEmail(ctx, caller.Email)
		if err != nil {
			return nil, err
		}
		filter["_id"] = inSet(ids)

	case authz.RoleAnonymous:
		// Public view: status filter only.
	}

	return filter, nil
}

// EvaluationFilter returns the filter for listing an event's
// evaluations. Organizers must own the event; judges must be assigned
// to it and only ever see their own evaluations. Participants and
// anonymous callers have no evaluation view at all.
func (r *Resolver) EvaluationFilter(ctx context.Context, caller authz.Caller, eventID, organizerID primitive.ObjectID) (bson.M, error) {
	switch caller.Role {
	case authz.RoleOrganizer:
		if organizerID != caller.ID {
			return nil, apierr.Forbiddenf("not your event")
		}
		return bson.M{"event_id": eventID}, nil

	case authz.RoleJudge:
		assigned, err := r.assignments.Exists(ctx, caller.ID, eventID)
		if err != nil {
			return nil, err
		}
		if !assigned {
			return nil, apierr.Forbiddenf("no judge assignment for event")
		}
		return bson.M{"event_id": eventID, "judge_id": caller.ID}, nil
	}

	if caller.Anonymous() {
		return nil, apierr.ErrUnauthorized
	}
	return nil, apierr.Forbiddenf("role cannot view evaluations")
}

// RequireJudgeAssignment is the write-path gate: judges must hold an
// assignment for the event before touching its evaluations.
func (r *Resolver) RequireJudgeAssignment(ctx context.Context, caller authz.Caller, eventID primitive.ObjectID) error {
	if caller.Anonymous() {
		return apierr.ErrUnauthorized
	}
	if caller.Role != authz.RoleJudge {
		return apierr.Forbiddenf("judge role required")
	}
	assigned, err := r.assignments.Exists(ctx, caller.ID, eventID)
	if err != nil {
		return err
	}
	if !assigned {
		return apierr.Forbiddenf("no judge assignment for event")
	}
	return nil
}

// inSet builds the `_id ∈ ids` clause. The empty slice is deliberate:
// `$in: []` matches nothing, which turns "no visible events" into an
// empty-but-successful result.
func inSet(ids []primitive.ObjectID) bson.M {
	if ids == nil {
		ids = []primitive.ObjectID{}
	}
	return bson.M{"$in": ids}
}
