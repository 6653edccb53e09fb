package postgres

import (
	"context"
	"time"

	"github.com/CoinLift/backend-coinlift/internal/model"
	"github.com/google/uuid"
)

type postRepo struct {
	db DB
}

func newPostRepo(db DB) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.ID = uuid.New()
	post.LikeCount = 0
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO posts(id, user_id, content, image_key, like_count, created_at, updated_at) VALUES($1, $2, $3, $4, $5, $6, $7)",
		post.ID,
		post.UserID,
		post.Content,
		post.ImageKey,
		post.LikeCount,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.QueryRow(ctx, `
	SELECT p.id, p.user_id, p.content, p.image_key, p.like_count, p.created_at, p.updated_at
	FROM posts p
	WHERE p.id = $1
	`, id).Scan(
		&post.ID,
		&post.UserID,
		&post.Content,
		&post.ImageKey,
		&post.LikeCount,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM posts p WHERE p.id = $1)", id).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}
