package model

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID              uuid.UUID  `json:"id"`
	PostID          uuid.UUID  `json:"post_id"`
	UserID          uuid.UUID  `json:"user_id"`
	ParentCommentID *uuid.UUID `json:"parent_comment_id"`
	Content         string     `json:"content"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsReply reports whether the comment lives under a parent comment.
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil
}

// CommentWithOwner is a comment row joined with its owner and the
// viewer's follow-state, as produced by the listing queries.
type CommentWithOwner struct {
	Comment
	OwnerUsername      string `json:"owner_username"`
	OwnerAvatarKey     string `json:"owner_avatar_key"`
	HasReplies         bool   `json:"has_replies"`
	ViewerFollowsOwner bool   `json:"viewer_follows_owner"`
}
