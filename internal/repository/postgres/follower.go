package postgres

import (
	"context"

	"github.com/CoinLift/backend-coinlift/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type followerRepo struct {
	db DB
}

func newFollowerRepo(db DB) Follower {
	return &followerRepo{
		db: db,
	}
}

func (r *followerRepo) Exists(ctx context.Context, from uuid.UUID, to uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM followers f WHERE f.from_id = $1 AND f.to_id = $2)", from, to).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *followerRepo) Follow(ctx context.Context, edge model.Follower, n *model.Notification) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "INSERT INTO followers(from_id, to_id) VALUES($1, $2)", edge.FromID, edge.ToID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "UPDATE users SET following_count = following_count + 1, updated_at = now() WHERE id = $1", edge.FromID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "UPDATE users SET followers_count = followers_count + 1, updated_at = now() WHERE id = $1", edge.ToID); err != nil {
		return err
	}
	if n != nil {
		if err := insertNotification(ctx, tx, n); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *followerRepo) Unfollow(ctx context.Context, edge model.Follower) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, "DELETE FROM followers WHERE from_id = $1 AND to_id = $2", edge.FromID, edge.ToID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	// The edge deletion above is the precondition that keeps both
	// counters non-negative.
	if _, err := tx.Exec(ctx, "UPDATE users SET following_count = following_count - 1, updated_at = now() WHERE id = $1 AND following_count > 0", edge.FromID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "UPDATE users SET followers_count = followers_count - 1, updated_at = now() WHERE id = $1 AND followers_count > 0", edge.ToID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *followerRepo) FindFollowers(ctx context.Context, userID uuid.UUID) ([]*model.FollowerSummary, error) {
	return r.findEdgeSummaries(ctx, "SELECT u.id, u.username FROM followers f JOIN users u ON u.id = f.from_id WHERE f.to_id = $1", userID)
}

func (r *followerRepo) FindFollowing(ctx context.Context, userID uuid.UUID) ([]*model.FollowerSummary, error) {
	return r.findEdgeSummaries(ctx, "SELECT u.id, u.username FROM followers f JOIN users u ON u.id = f.to_id WHERE f.from_id = $1", userID)
}

func (r *followerRepo) findEdgeSummaries(ctx context.Context, query string, userID uuid.UUID) ([]*model.FollowerSummary, error) {
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*model.FollowerSummary
	for rows.Next() {
		var summary model.FollowerSummary
		if err := rows.Scan(&summary.ID, &summary.Username); err != nil {
			return nil, err
		}

		summaries = append(summaries, &summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
