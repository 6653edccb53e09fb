package handler

import (
	"net/http"

	"github.com/CoinLift/backend-coinlift/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) repliesGetAll(c *gin.Context) {
	commentID, ok := h.pathID(c, "commentID")
	if !ok {
		return
	}
	page, size := pagination(c)

	replies, err := h.services.Comment.GetReplies(c.Request.Context(), h.getPrincipal(c), commentID, page, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, replies)
}

func (h *Handler) repliesCreate(c *gin.Context) {
	commentID, ok := h.pathID(c, "commentID")
	if !ok {
		return
	}

	var input dto.CommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	replyID, err := h.services.Comment.CreateReply(c.Request.Context(), h.getPrincipal(c), input.Content, commentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, replyID)
}
