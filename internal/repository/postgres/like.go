package postgres

import (
	"context"

	"github.com/CoinLift/backend-coinlift/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type likeRepo struct {
	db DB
}

func newLikeRepo(db DB) Like {
	return &likeRepo{
		db: db,
	}
}

func (r *likeRepo) Exists(ctx context.Context, userID uuid.UUID, postID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM likes l WHERE l.user_id = $1 AND l.post_id = $2)", userID, postID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *likeRepo) Add(ctx context.Context, like model.Like) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "INSERT INTO likes(id, user_id, post_id) VALUES($1, $2, $3)", like.ID, like.UserID, like.PostID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "UPDATE posts SET like_count = like_count + 1, updated_at = now() WHERE id = $1", like.PostID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *likeRepo) Remove(ctx context.Context, userID uuid.UUID, postID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, "DELETE FROM likes WHERE user_id = $1 AND post_id = $2", userID, postID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, "UPDATE posts SET like_count = like_count - 1, updated_at = now() WHERE id = $1 AND like_count > 0", postID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
