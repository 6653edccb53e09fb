package handler

import (
	"net/http"

	"github.com/CoinLift/backend-coinlift/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) likesAdd(c *gin.Context) {
	postID, ok := h.pathID(c, "postID")
	if !ok {
		return
	}

	if err := h.services.Like.AddLike(c.Request.Context(), h.getPrincipal(c), postID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "like added successfully"))
}

func (h *Handler) likesRemove(c *gin.Context) {
	postID, ok := h.pathID(c, "postID")
	if !ok {
		return
	}

	if err := h.services.Like.RemoveLike(c.Request.Context(), h.getPrincipal(c), postID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "like removed successfully"))
}
