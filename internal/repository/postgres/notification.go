package postgres

import (
	"context"

	"github.com/CoinLift/backend-coinlift/internal/model"
)

type notificationRepo struct {
	db DB
}

func newNotificationRepo(db DB) Notification {
	return &notificationRepo{
		db: db,
	}
}

func (r *notificationRepo) FindEventByType(ctx context.Context, eventType model.EventType) (*model.Event, error) {
	var event model.Event
	if err := r.db.QueryRow(ctx, "SELECT e.id, e.type, e.text FROM events e WHERE e.type = $1", eventType).Scan(
		&event.ID,
		&event.Type,
		&event.Text,
	); err != nil {
		return nil, err
	}

	return &event, nil
}

// SeedEvents inserts the static catalog rows on first boot; reruns are
// no-ops.
func (r *notificationRepo) SeedEvents(ctx context.Context) error {
	seed := map[model.EventType]string{
		model.EventTypeFollow: "started following you.",
		model.EventTypeComment: "commented on your post.",
		model.EventTypeReply: "replied to your comment.",
	}
	for eventType, text := range seed {
		if _, err := r.db.Exec(
			ctx,
			"INSERT INTO events(type, text) VALUES($1, $2) ON CONFLICT (type) DO NOTHING",
			eventType,
			text,
		); err != nil {
			return err
		}
	}

	return nil
}

// insertNotification rides the caller's transaction so a failed
// notification write aborts the triggering mutation.
func insertNotification(ctx context.Context, q DB, n *model.Notification) error {
	_, err := q.Exec(
		ctx,
		"INSERT INTO notifications(id, recipient_id, actor_username, event_id, seen_by_user, created_at) VALUES($1, $2, $3, $4, $5, $6)",
		n.ID,
		n.RecipientID,
		n.ActorUsername,
		n.EventID,
		n.SeenByUser,
		n.CreatedAt,
	)
	return err
}
