package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/CoinLift/backend-coinlift/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) commentsGetAll(c *gin.Context) {
	postID, ok := h.pathID(c, "postID")
	if !ok {
		return
	}
	page, size := pagination(c)

	comments, err := h.services.Comment.GetComments(c.Request.Context(), h.getPrincipal(c), postID, page, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *Handler) commentsCreate(c *gin.Context) {
	postID, ok := h.pathID(c, "postID")
	if !ok {
		return
	}

	var input dto.CommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	commentID, err := h.services.Comment.CreateComment(c.Request.Context(), h.getPrincipal(c), input.Content, postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, commentID)
}

func (h *Handler) commentsUpdate(c *gin.Context) {
	postID, ok := h.pathID(c, "postID")
	if !ok {
		return
	}
	commentID, ok := h.pathID(c, "commentID")
	if !ok {
		return
	}

	var input dto.CommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	view, err := h.services.Comment.UpdateComment(c.Request.Context(), h.getPrincipal(c), input.Content, postID, commentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *Handler) commentsDelete(c *gin.Context) {
	postID, ok := h.pathID(c, "postID")
	if !ok {
		return
	}
	commentID, ok := h.pathID(c, "commentID")
	if !ok {
		return
	}

	if err := h.services.Comment.DeleteComment(c.Request.Context(), h.getPrincipal(c), postID, commentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "comment successfully deleted"))
}

func (h *Handler) pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return uuid.Nil, false
	}

	return id, true
}

func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size <= 0 {
		size = 10
	}

	return page, size
}
