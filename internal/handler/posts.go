package handler

import (
	"net/http"

	"github.com/CoinLift/backend-coinlift/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) postsCreate(c *gin.Context) {
	var input dto.PostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	postID, err := h.services.Post.CreatePost(c.Request.Context(), h.getPrincipal(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, postID)
}
