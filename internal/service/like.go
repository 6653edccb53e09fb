package service

import (
	"context"

	"github.com/CoinLift/backend-coinlift/internal/model"
	"github.com/CoinLift/backend-coinlift/internal/repository"
	"github.com/CoinLift/backend-coinlift/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type likeService struct {
	logger *zap.Logger
	repo *repository.Repository
}

func newLikeService(logger *zap.Logger, repo *repository.Repository) Like {
	return &likeService{
		logger: logger,
		repo: repo,
	}
}

func (s *likeService) AddLike(ctx context.Context, p Principal, postID uuid.UUID) error {
	if p.IsAnonymous() {
		return ErrUnauthenticated
	}

	postExists, err := s.repo.Postgres.Post.Exists(ctx, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check post(%s) existence: %s", postID.String(), err.Error())
		return ErrInternal
	}
	if !postExists {
		return ErrPostNotFound
	}

	liked, err := s.repo.Postgres.Like.Exists(ctx, p.UserID, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check like(%s, %s) existence: %s", p.UserID.String(), postID.String(), err.Error())
		return ErrInternal
	}
	if liked {
		return ErrAlreadyLiked
	}

	like := model.Like{
		ID: uuid.New(),
		UserID: p.UserID,
		PostID: postID,
	}
	if err := s.repo.Postgres.Like.Add(ctx, like); err != nil {
		// Concurrent duplicate add: exactly one wins.
		if postgres.IsUniqueViolation(err) {
			return ErrAlreadyLiked
		}

		s.logger.Sugar().Errorf("failed to add like(%s, %s): %s", p.UserID.String(), postID.String(), err.Error())
		return ErrInternal
	}

	return nil
}

func (s *likeService) RemoveLike(ctx context.Context, p Principal, postID uuid.UUID) error {
	if p.IsAnonymous() {
		return ErrUnauthenticated
	}

	postExists, err := s.repo.Postgres.Post.Exists(ctx, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check post(%s) existence: %s", postID.String(), err.Error())
		return ErrInternal
	}
	if !postExists {
		return ErrPostNotFound
	}

	if err := s.repo.Postgres.Like.Remove(ctx, p.UserID, postID); err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotLiked
		}

		s.logger.Sugar().Errorf("failed to remove like(%s, %s): %s", p.UserID.String(), postID.String(), err.Error())
		return ErrInternal
	}

	return nil
}
