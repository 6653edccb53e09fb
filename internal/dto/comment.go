package dto

import (
	"time"

	"github.com/CoinLift/backend-coinlift/internal/model"
	"github.com/google/uuid"
)

type CommentRequest struct {
	Content string `json:"content" binding:"required,max=2048"`
}

type CommentView struct {
	ID               uuid.UUID    `json:"id"`
	Content          string       `json:"content"`
	CommentTime      int64        `json:"comment_time"`
	IsCommentCreator bool         `json:"is_comment_creator"`
	IsRepliesExist   bool         `json:"is_replies_exist"`
	Owner            UserMainInfo `json:"owner"`
}

// CommentViewFromModel computes the elapsed-seconds annotation at read
// time; avatar bytes are filled in by the service.
func CommentViewFromModel(c *model.CommentWithOwner, viewerID uuid.UUID) *CommentView {
	return &CommentView{
		ID: c.ID,
		Content: c.Content,
		CommentTime: int64(time.Since(c.CreatedAt).Seconds()),
		IsCommentCreator: c.UserID == viewerID,
		IsRepliesExist: c.HasReplies,
		Owner: UserMainInfo{
			UserID: c.UserID,
			Username: c.OwnerUsername,
			IsFollowing: c.ViewerFollowsOwner,
		},
	}
}
