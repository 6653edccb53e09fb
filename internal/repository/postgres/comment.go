package postgres

import (
	"context"
	"time"

	"github.com/CoinLift/backend-coinlift/internal/model"
	"github.com/google/uuid"
)

const commentColumns = "c.id, c.post_id, c.user_id, c.parent_comment_id, c.content, c.created_at, c.updated_at"

type commentRepo struct {
	db DB
}

func newCommentRepo(db DB) Comment {
	return &commentRepo{
		db: db,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment, n *model.Notification) (*model.Comment, error) {
	comment.ID = uuid.New()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx,
		"INSERT INTO comments(id, post_id, user_id, parent_comment_id, content, created_at, updated_at) VALUES($1, $2, $3, $4, $5, $6, $7)",
		comment.ID,
		comment.PostID,
		comment.UserID,
		comment.ParentCommentID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if n != nil {
		if err := insertNotification(ctx, tx, n); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &comment, nil
}

func scanComment(row interface{ Scan(dest ...any) error }) (*model.Comment, error) {
	var comment model.Comment
	if err := row.Scan(
		&comment.ID,
		&comment.PostID,
		&comment.UserID,
		&comment.ParentCommentID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	return scanComment(r.db.QueryRow(ctx, "SELECT "+commentColumns+" FROM comments c WHERE c.id = $1", id))
}

func (r *commentRepo) FindByPostAndID(ctx context.Context, postID uuid.UUID, commentID uuid.UUID) (*model.Comment, error) {
	return scanComment(r.db.QueryRow(ctx, "SELECT "+commentColumns+" FROM comments c WHERE c.post_id = $1 AND c.id = $2", postID, commentID))
}

func (r *commentRepo) FindByPost(ctx context.Context, postID uuid.UUID, viewerID uuid.UUID, limit int, offset int) ([]*model.CommentWithOwner, error) {
	return r.findWithOwner(
		ctx,
		"c.post_id = $1 AND c.parent_comment_id IS NULL",
		postID,
		viewerID,
		limit,
		offset,
	)
}

func (r *commentRepo) FindReplies(ctx context.Context, parentID uuid.UUID, viewerID uuid.UUID, limit int, offset int) ([]*model.CommentWithOwner, error) {
	return r.findWithOwner(
		ctx,
		"c.parent_comment_id = $1",
		parentID,
		viewerID,
		limit,
		offset,
	)
}

// Listings come back in creation order; no secondary sort key.
func (r *commentRepo) findWithOwner(ctx context.Context, where string, key uuid.UUID, viewerID uuid.UUID, limit int, offset int) ([]*model.CommentWithOwner, error) {
	maximumLimit(&limit)

	rows, err := r.db.Query(
		ctx,
		`
		SELECT
		`+commentColumns+`, u.username, u.avatar_key,
		EXISTS(SELECT 1 FROM comments r WHERE r.parent_comment_id = c.id) AS has_replies,
		EXISTS(SELECT 1 FROM followers f WHERE f.from_id = $2 AND f.to_id = c.user_id) AS viewer_follows_owner
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE `+where+`
		ORDER BY c.created_at
		LIMIT $3
		OFFSET $4
		`,
		key,
		viewerID,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*model.CommentWithOwner
	for rows.Next() {
		var comment model.CommentWithOwner
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.UserID,
			&comment.ParentCommentID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UpdatedAt,
			&comment.OwnerUsername,
			&comment.OwnerAvatarKey,
			&comment.HasReplies,
			&comment.ViewerFollowsOwner,
		); err != nil {
			return nil, err
		}

		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepo) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Comment, error) {
	return scanComment(r.db.QueryRow(
		ctx,
		"UPDATE comments SET content = $2, updated_at = now() WHERE id = $1 RETURNING id, post_id, user_id, parent_comment_id, content, created_at, updated_at",
		id,
		content,
	))
}

func (r *commentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Replies go first: the cascade is an explicit bulk delete, not a
	// schema-level one.
	if _, err := tx.Exec(ctx, "DELETE FROM comments WHERE parent_comment_id = $1", id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM comments WHERE id = $1", id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
