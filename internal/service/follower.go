package service

import (
	"context"
	"time"

	"github.com/CoinLift/backend-coinlift/internal/dto"
	"github.com/CoinLift/backend-coinlift/internal/model"
	"github.com/CoinLift/backend-coinlift/internal/repository"
	"github.com/CoinLift/backend-coinlift/internal/repository/postgres"
	"github.com/CoinLift/backend-coinlift/internal/repository/redisrepo"
	"github.com/CoinLift/backend-coinlift/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	USER_CACHE_TTL  = time.Hour
	COUNT_CACHE_TTL = time.Minute * 10
)

type followerService struct {
	logger *zap.Logger
	repo *repository.Repository
	notifications Notification
	files storage.FileStorage
}

func newFollowerService(logger *zap.Logger, repo *repository.Repository, notifications Notification, files storage.FileStorage) Follower {
	return &followerService{
		logger: logger,
		repo: repo,
		notifications: notifications,
		files: files,
	}
}

func (s *followerService) FollowUser(ctx context.Context, p Principal, followingUsername string) error {
	if p.IsAnonymous() {
		return ErrUnauthenticated
	}

	from, err := s.findUser(ctx, p.UserID)
	if err != nil {
		return err
	}
	to, err := s.findUserByUsername(ctx, followingUsername)
	if err != nil {
		return err
	}

	if from.ID == to.ID {
		return ErrCannotFollowSelf
	}

	following, err := s.repo.Postgres.Follower.Exists(ctx, from.ID, to.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check follow edge(%s -> %s): %s", from.ID.String(), to.ID.String(), err.Error())
		return ErrInternal
	}
	if following {
		return ErrAlreadyFollowing
	}

	pn, err := s.notifications.Prepare(ctx, from.Username, to.ID, model.EventTypeFollow)
	if err != nil {
		return err
	}

	edge := model.Follower{FromID: from.ID, ToID: to.ID}
	if err := s.repo.Postgres.Follower.Follow(ctx, edge, pn.Row); err != nil {
		// Two racing follows: the loser hits the unique index.
		if postgres.IsUniqueViolation(err) {
			return ErrAlreadyFollowing
		}

		s.logger.Sugar().Errorf("failed to create follow edge(%s -> %s): %s", from.ID.String(), to.ID.String(), err.Error())
		return ErrInternal
	}

	s.invalidateCounters(ctx, from.ID, to.ID)
	s.notifications.Dispatch(pn)

	return nil
}

func (s *followerService) UnfollowUser(ctx context.Context, p Principal, followingUsername string) error {
	if p.IsAnonymous() {
		return ErrUnauthenticated
	}

	from, err := s.findUser(ctx, p.UserID)
	if err != nil {
		return err
	}
	to, err := s.findUserByUsername(ctx, followingUsername)
	if err != nil {
		return err
	}

	edge := model.Follower{FromID: from.ID, ToID: to.ID}
	if err := s.repo.Postgres.Follower.Unfollow(ctx, edge); err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFollowing
		}

		s.logger.Sugar().Errorf("failed to delete follow edge(%s -> %s): %s", from.ID.String(), to.ID.String(), err.Error())
		return ErrInternal
	}

	s.invalidateCounters(ctx, from.ID, to.ID)

	return nil
}

func (s *followerService) GetUserMainInfo(ctx context.Context, p Principal, userID uuid.UUID) (*dto.UserMainInfo, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if !p.IsAnonymous() {
		isFollowing, err = s.repo.Postgres.Follower.Exists(ctx, p.UserID, userID)
		if err != nil {
			s.logger.Sugar().Errorf("failed to check follow edge(%s -> %s): %s", p.UserID.String(), userID.String(), err.Error())
			return nil, ErrInternal
		}
	}

	image, err := s.files.GetObject(ctx, user.AvatarKey)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get avatar(%s) for user(%s): %s", user.AvatarKey, user.ID.String(), err.Error())
		return nil, ErrInternal
	}

	return &dto.UserMainInfo{
		UserID: user.ID,
		Username: user.Username,
		ProfileImage: image,
		IsFollowing: isFollowing,
	}, nil
}

func (s *followerService) GetFollowers(ctx context.Context, userID uuid.UUID) ([]*model.FollowerSummary, error) {
	followers, err := s.repo.Postgres.Follower.FindFollowers(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find followers of user(%s): %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return followers, nil
}

func (s *followerService) GetFollowing(ctx context.Context, userID uuid.UUID) ([]*model.FollowerSummary, error) {
	following, err := s.repo.Postgres.Follower.FindFollowing(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find following of user(%s): %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return following, nil
}

func (s *followerService) GetFollowerCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.count(ctx, userID, redisrepo.FollowerCountKey(userID.String()), func(u *model.User) int64 { return u.FollowersCount })
}

func (s *followerService) GetFollowingCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.count(ctx, userID, redisrepo.FollowingCountKey(userID.String()), func(u *model.User) int64 { return u.FollowingCount })
}

// count reads the denormalized counter through the redis cache; the
// mutation paths invalidate the keys inside follow/unfollow.
func (s *followerService) count(ctx context.Context, userID uuid.UUID, key string, pick func(*model.User) int64) (int64, error) {
	cached, err := s.repo.Redis.Default.Get(ctx, key).Int64()
	if err == nil {
		return cached, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get counter(%s) from redis: %s", key, err.Error())
	}

	user, err := s.repo.Postgres.User.FindByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s) in postgres: %s", userID.String(), err.Error())
		return 0, ErrInternal
	}

	value := pick(user)
	if err := s.repo.Redis.Default.Set(ctx, key, value, COUNT_CACHE_TTL); err != nil {
		s.logger.Sugar().Errorf("failed to cache counter(%s): %s", key, err.Error())
	}

	return value, nil
}

func (s *followerService) findUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	userCache, err := redisrepo.Get[model.User](s.repo.Redis.Default, ctx, redisrepo.UserKey(id.String()))
	if err == nil && userCache != nil {
		return userCache, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get user(%s) from redis: %s", id.String(), err.Error())
	}

	user, err := s.repo.Postgres.User.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s) in postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.UserKey(id.String()), user, USER_CACHE_TTL); err != nil {
		s.logger.Sugar().Errorf("failed to cache user(%s): %s", id.String(), err.Error())
	}

	return user, nil
}

func (s *followerService) findUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.Postgres.User.FindByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s) in postgres: %s", username, err.Error())
		return nil, ErrInternal
	}

	return user, nil
}

// invalidateCounters drops both users' cached rows and counters after a
// graph mutation; the next read repopulates from postgres.
func (s *followerService) invalidateCounters(ctx context.Context, from uuid.UUID, to uuid.UUID) {
	if err := s.repo.Redis.Default.Del(
		ctx,
		redisrepo.UserKey(from.String()),
		redisrepo.UserKey(to.String()),
		redisrepo.FollowingCountKey(from.String()),
		redisrepo.FollowerCountKey(to.String()),
	).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate counter cache(%s -> %s): %s", from.String(), to.String(), err.Error())
	}
}
