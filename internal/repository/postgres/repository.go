package postgres

import (
	"context"
	"errors"

	"github.com/CoinLift/backend-coinlift/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const MAX_LIMIT = 50

// DB is the slice of pgxpool.Pool the repos need. Transactions opened
// by the atomic mutation methods also satisfy the query methods.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

var _ DB = (*pgxpool.Pool)(nil)

type User interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmailOrUsername(ctx context.Context, emailOrUsername string) (*model.User, error)
	ExistsWithUsername(ctx context.Context, username string) (bool, error)
	ExistsWithEmail(ctx context.Context, email string) (bool, error)
}

type Follower interface {
	Exists(ctx context.Context, from uuid.UUID, to uuid.UUID) (bool, error)
	// Follow atomically creates the edge, bumps both counters and, when
	// n is non-nil, persists the notification row in the same transaction.
	Follow(ctx context.Context, edge model.Follower, n *model.Notification) error
	// Unfollow atomically removes the edge and decrements both counters.
	// Returns pgx.ErrNoRows if the edge does not exist.
	Unfollow(ctx context.Context, edge model.Follower) error
	FindFollowers(ctx context.Context, userID uuid.UUID) ([]*model.FollowerSummary, error)
	FindFollowing(ctx context.Context, userID uuid.UUID) ([]*model.FollowerSummary, error)
}

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Like interface {
	Exists(ctx context.Context, userID uuid.UUID, postID uuid.UUID) (bool, error)
	// Add atomically creates the like and increments the post's like_count.
	Add(ctx context.Context, like model.Like) error
	// Remove atomically deletes the like and decrements like_count.
	// Returns pgx.ErrNoRows if the caller has no like on the post.
	Remove(ctx context.Context, userID uuid.UUID, postID uuid.UUID) error
}

type Comment interface {
	// Create persists the comment and, when n is non-nil, the notification
	// row in the same transaction.
	Create(ctx context.Context, comment model.Comment, n *model.Notification) (*model.Comment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	FindByPostAndID(ctx context.Context, postID uuid.UUID, commentID uuid.UUID) (*model.Comment, error)
	FindByPost(ctx context.Context, postID uuid.UUID, viewerID uuid.UUID, limit int, offset int) ([]*model.CommentWithOwner, error)
	FindReplies(ctx context.Context, parentID uuid.UUID, viewerID uuid.UUID, limit int, offset int) ([]*model.CommentWithOwner, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Comment, error)
	// Delete removes the comment and all of its replies.
	Delete(ctx context.Context, id uuid.UUID) error
}

type Token interface {
	// Replace revokes every valid token of the user and inserts the new
	// one as the sole valid token, in one transaction.
	Replace(ctx context.Context, token model.AuthToken) (*model.AuthToken, error)
	FindByToken(ctx context.Context, token string) (*model.AuthToken, error)
}

type Notification interface {
	FindEventByType(ctx context.Context, eventType model.EventType) (*model.Event, error)
	SeedEvents(ctx context.Context) error
}

type PostgresRepository struct {
	User
	Follower
	Post
	Like
	Comment
	Token
	Notification
}

func New(db DB) *PostgresRepository {
	return &PostgresRepository{
		User: newUserRepo(db),
		Follower: newFollowerRepo(db),
		Post: newPostRepo(db),
		Like: newLikeRepo(db),
		Comment: newCommentRepo(db),
		Token: newTokenRepo(db),
		Notification: newNotificationRepo(db),
	}
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. The unique indexes are the backstop for races the
// service-level existence checks cannot close.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// UniqueConstraint returns the name of the violated unique constraint,
// or "" when err is not a unique violation.
func UniqueConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName
	}

	return ""
}

func maximumLimit(l *int) {
	if *l > MAX_LIMIT {
		*l = MAX_LIMIT
	}
}
