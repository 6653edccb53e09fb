package service

import (
	"context"

	"github.com/CoinLift/backend-coinlift/internal/dto"
	"github.com/CoinLift/backend-coinlift/internal/model"
	"github.com/CoinLift/backend-coinlift/internal/rabbitmq"
	"github.com/CoinLift/backend-coinlift/internal/realtime"
	"github.com/CoinLift/backend-coinlift/internal/repository"
	"github.com/CoinLift/backend-coinlift/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (string, error)
	Authenticate(ctx context.Context, req dto.AuthenticateRequest) (string, error)
	IssueToken(ctx context.Context, user *model.User) (string, error)
	Authorize(ctx context.Context, token string) (Principal, error)
}

type Follower interface {
	FollowUser(ctx context.Context, p Principal, followingUsername string) error
	UnfollowUser(ctx context.Context, p Principal, followingUsername string) error
	GetUserMainInfo(ctx context.Context, p Principal, userID uuid.UUID) (*dto.UserMainInfo, error)
	GetFollowers(ctx context.Context, userID uuid.UUID) ([]*model.FollowerSummary, error)
	GetFollowing(ctx context.Context, userID uuid.UUID) ([]*model.FollowerSummary, error)
	GetFollowerCount(ctx context.Context, userID uuid.UUID) (int64, error)
	GetFollowingCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type Post interface {
	CreatePost(ctx context.Context, p Principal, req dto.PostRequest) (uuid.UUID, error)
	GetPost(ctx context.Context, postID uuid.UUID) (*model.Post, error)
}

type Like interface {
	AddLike(ctx context.Context, p Principal, postID uuid.UUID) error
	RemoveLike(ctx context.Context, p Principal, postID uuid.UUID) error
}

type Comment interface {
	CreateComment(ctx context.Context, p Principal, content string, postID uuid.UUID) (uuid.UUID, error)
	CreateReply(ctx context.Context, p Principal, content string, commentID uuid.UUID) (uuid.UUID, error)
	GetComments(ctx context.Context, p Principal, postID uuid.UUID, page int, size int) ([]*dto.CommentView, error)
	GetReplies(ctx context.Context, p Principal, commentID uuid.UUID, page int, size int) ([]*dto.CommentView, error)
	UpdateComment(ctx context.Context, p Principal, content string, postID uuid.UUID, commentID uuid.UUID) (*dto.CommentView, error)
	DeleteComment(ctx context.Context, p Principal, postID uuid.UUID, commentID uuid.UUID) error
}

// Notification prepares durable notification rows that ride the
// triggering engine's transaction, then pushes them after commit.
type Notification interface {
	Prepare(ctx context.Context, actorUsername string, recipientID uuid.UUID, eventType model.EventType) (*PreparedNotification, error)
	Dispatch(pn *PreparedNotification)
}

type Service struct {
	Auth
	Follower
	Post
	Like
	Comment
	Notification
}

func New(logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.MQConn, hub *realtime.Hub, files storage.FileStorage) *Service {
	notifications := newNotificationService(logger, repo, mq, hub)
	return &Service{
		Auth: newAuthService(logger, repo),
		Follower: newFollowerService(logger, repo, notifications, files),
		Post: newPostService(logger, repo),
		Like: newLikeService(logger, repo),
		Comment: newCommentService(logger, repo, notifications, files),
		Notification: notifications,
	}
}
