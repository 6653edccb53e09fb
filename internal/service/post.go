package service

import (
	"context"
	"strings"

	"github.com/CoinLift/backend-coinlift/internal/dto"
	"github.com/CoinLift/backend-coinlift/internal/model"
	"github.com/CoinLift/backend-coinlift/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type postService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newPostService(logger *zap.Logger, repo *repository.Repository) Post {
	return &postService{
		logger: logger,
		repo:   repo,
	}
}

func (s *postService) CreatePost(ctx context.Context, p Principal, req dto.PostRequest) (uuid.UUID, error) {
	if p.IsAnonymous() {
		return uuid.Nil, ErrUnauthenticated
	}

	post, err := s.repo.Postgres.Post.Create(ctx, model.Post{
		UserID:   p.UserID,
		Content:  strings.TrimSpace(req.Content),
		ImageKey: req.ImageKey,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create post: %s", err.Error())
		return uuid.Nil, ErrInternal
	}

	return post.ID, nil
}

func (s *postService) GetPost(ctx context.Context, postID uuid.UUID) (*model.Post, error) {
	post, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post %s: %s", postID, err.Error())
		return nil, ErrInternal
	}

	return post, nil
}
