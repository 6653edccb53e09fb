package service

import (
	"context"

	"github.com/CoinLift/backend-coinlift/internal/dto"
	"github.com/CoinLift/backend-coinlift/internal/model"
	"github.com/CoinLift/backend-coinlift/internal/repository"
	"github.com/CoinLift/backend-coinlift/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type commentService struct {
	logger *zap.Logger
	repo *repository.Repository
	notifications Notification
	files storage.FileStorage
}

func newCommentService(logger *zap.Logger, repo *repository.Repository, notifications Notification, files storage.FileStorage) Comment {
	return &commentService{
		logger: logger,
		repo: repo,
		notifications: notifications,
		files: files,
	}
}

func (s *commentService) CreateComment(ctx context.Context, p Principal, content string, postID uuid.UUID) (uuid.UUID, error) {
	if p.IsAnonymous() {
		return uuid.Nil, ErrUnauthenticated
	}

	author, err := s.findAuthor(ctx, p.UserID)
	if err != nil {
		return uuid.Nil, err
	}

	post, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return uuid.Nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%s) in postgres: %s", postID.String(), err.Error())
		return uuid.Nil, ErrInternal
	}

	// The post owner may be the commenter; self-notification is allowed.
	pn, err := s.notifications.Prepare(ctx, author.Username, post.UserID, model.EventTypeComment)
	if err != nil {
		return uuid.Nil, err
	}

	comment := model.Comment{
		PostID: post.ID,
		UserID: author.ID,
		Content: content,
	}
	created, err := s.repo.Postgres.Comment.Create(ctx, comment, pn.Row)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create comment on post(%s): %s", postID.String(), err.Error())
		return uuid.Nil, ErrInternal
	}

	s.notifications.Dispatch(pn)

	return created.ID, nil
}

func (s *commentService) CreateReply(ctx context.Context, p Principal, content string, commentID uuid.UUID) (uuid.UUID, error) {
	if p.IsAnonymous() {
		return uuid.Nil, ErrUnauthenticated
	}

	author, err := s.findAuthor(ctx, p.UserID)
	if err != nil {
		return uuid.Nil, err
	}

	parent, err := s.repo.Postgres.Comment.FindByID(ctx, commentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return uuid.Nil, ErrCommentNotFound
		}

		s.logger.Sugar().Errorf("failed to find comment(%s) in postgres: %s", commentID.String(), err.Error())
		return uuid.Nil, ErrInternal
	}

	pn, err := s.notifications.Prepare(ctx, author.Username, parent.UserID, model.EventTypeReply)
	if err != nil {
		return uuid.Nil, err
	}

	// The reply inherits the parent's post.
	reply := model.Comment{
		PostID: parent.PostID,
		UserID: author.ID,
		ParentCommentID: &parent.ID,
		Content: content,
	}
	created, err := s.repo.Postgres.Comment.Create(ctx, reply, pn.Row)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create reply to comment(%s): %s", commentID.String(), err.Error())
		return uuid.Nil, ErrInternal
	}

	s.notifications.Dispatch(pn)

	return created.ID, nil
}

func (s *commentService) GetComments(ctx context.Context, p Principal, postID uuid.UUID, page int, size int) ([]*dto.CommentView, error) {
	postExists, err := s.repo.Postgres.Post.Exists(ctx, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check post(%s) existence: %s", postID.String(), err.Error())
		return nil, ErrInternal
	}
	if !postExists {
		return nil, ErrPostNotFound
	}

	comments, err := s.repo.Postgres.Comment.FindByPost(ctx, postID, p.UserID, size, page*size)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find comments of post(%s): %s", postID.String(), err.Error())
		return nil, ErrInternal
	}

	return s.buildViews(ctx, comments, p.UserID), nil
}

func (s *commentService) GetReplies(ctx context.Context, p Principal, commentID uuid.UUID, page int, size int) ([]*dto.CommentView, error) {
	if _, err := s.repo.Postgres.Comment.FindByID(ctx, commentID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrCommentNotFound
		}

		s.logger.Sugar().Errorf("failed to find comment(%s) in postgres: %s", commentID.String(), err.Error())
		return nil, ErrInternal
	}

	replies, err := s.repo.Postgres.Comment.FindReplies(ctx, commentID, p.UserID, size, page*size)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find replies of comment(%s): %s", commentID.String(), err.Error())
		return nil, ErrInternal
	}

	return s.buildViews(ctx, replies, p.UserID), nil
}

func (s *commentService) UpdateComment(ctx context.Context, p Principal, content string, postID uuid.UUID, commentID uuid.UUID) (*dto.CommentView, error) {
	if p.IsAnonymous() {
		return nil, ErrUnauthenticated
	}

	comment, err := s.findOwned(ctx, p, postID, commentID)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Postgres.Comment.UpdateContent(ctx, comment.ID, content)
	if err != nil {
		s.logger.Sugar().Errorf("failed to update comment(%s): %s", commentID.String(), err.Error())
		return nil, ErrInternal
	}

	author, err := s.findAuthor(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	replies, err := s.repo.Postgres.Comment.FindReplies(ctx, updated.ID, uuid.Nil, 1, 0)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check replies of comment(%s): %s", updated.ID.String(), err.Error())
		return nil, ErrInternal
	}

	view := dto.CommentViewFromModel(&model.CommentWithOwner{
		Comment: *updated,
		OwnerUsername: author.Username,
		OwnerAvatarKey: author.AvatarKey,
		HasReplies: len(replies) > 0,
	}, p.UserID)
	view.Owner.ProfileImage = s.avatar(ctx, author.AvatarKey)

	return view, nil
}

func (s *commentService) DeleteComment(ctx context.Context, p Principal, postID uuid.UUID, commentID uuid.UUID) error {
	if p.IsAnonymous() {
		return ErrUnauthenticated
	}

	comment, err := s.findOwned(ctx, p, postID, commentID)
	if err != nil {
		return err
	}

	if err := s.repo.Postgres.Comment.Delete(ctx, comment.ID); err != nil {
		s.logger.Sugar().Errorf("failed to delete comment(%s): %s", commentID.String(), err.Error())
		return ErrInternal
	}

	return nil
}

// findOwned resolves the comment under the post and authorizes the
// caller as its creator.
func (s *commentService) findOwned(ctx context.Context, p Principal, postID uuid.UUID, commentID uuid.UUID) (*model.Comment, error) {
	comment, err := s.repo.Postgres.Comment.FindByPostAndID(ctx, postID, commentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrCommentNotFound
		}

		s.logger.Sugar().Errorf("failed to find comment(%s) of post(%s): %s", commentID.String(), postID.String(), err.Error())
		return nil, ErrInternal
	}

	if comment.UserID != p.UserID {
		return nil, ErrAccessDenied
	}

	return comment, nil
}

func (s *commentService) findAuthor(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.Postgres.User.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s) in postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	return user, nil
}

func (s *commentService) buildViews(ctx context.Context, comments []*model.CommentWithOwner, viewerID uuid.UUID) []*dto.CommentView {
	// Avatars are fetched once per distinct owner per request.
	avatars := make(map[string][]byte)

	views := make([]*dto.CommentView, 0, len(comments))
	for _, comment := range comments {
		view := dto.CommentViewFromModel(comment, viewerID)

		image, ok := avatars[comment.OwnerAvatarKey]
		if !ok {
			image = s.avatar(ctx, comment.OwnerAvatarKey)
			avatars[comment.OwnerAvatarKey] = image
		}
		view.Owner.ProfileImage = image

		views = append(views, view)
	}

	return views
}

// avatar is best-effort in listings: a missing blob degrades the view,
// it does not fail the request.
func (s *commentService) avatar(ctx context.Context, key string) []byte {
	image, err := s.files.GetObject(ctx, key)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get avatar(%s): %s", key, err.Error())
		return nil
	}

	return image
}
