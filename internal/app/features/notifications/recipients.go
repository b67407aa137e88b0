// internal/app/features/notifications/recipients.go
package notifications

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// resolveRecipients builds the audience snapshot for a notification:
// team members of the event (optionally narrowed to specific teams),
// plus registered emails that map to existing accounts, plus any
// explicitly listed users. The result is deduplicated; registered
// emails without an account are simply unreachable and dropped.
func (h *Handler) resolveRecipients(ctx context.Context, eventID *primitive.ObjectID, teamIDs, explicit []primitive.ObjectID) ([]primitive.ObjectID, error) {
	var all []primitive.ObjectID

	if eventID != nil {
		members, err := h.Teams.MemberIDsForEvent(ctx, *eventID, teamIDs)
		if err != nil {
			return nil, err
		}
		all = append(all, members...)

		// Team narrowing means "just these teams"; the event-wide email
		// sweep only applies to whole-event notifications.
		if len(teamIDs) == 0 {
			emails, err := h.Registrations.EmailsForEvent(ctx, *eventID)
			if err != nil {
				return nil, err
			}
			ids, err := h.Users.IDsByEmails(ctx, emails)
			if err != nil {
				return nil, err
			}
			all = append(all, ids...)
		}
	}

	all = append(all, explicit...)
	return dedupeIDs(all), nil
}

// dedupeIDs removes duplicates preserving first-seen order, so a user on
// two teams receives one notification.
func dedupeIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
