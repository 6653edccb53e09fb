package handler

import (
	"net/http"
	"strings"

	"github.com/CoinLift/backend-coinlift/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) usersFollow(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errUsernameIsNotProvided.Error()))
		return
	}

	if err := h.services.Follower.FollowUser(c.Request.Context(), h.getPrincipal(c), username); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "user successfully followed"))
}

func (h *Handler) usersUnfollow(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errUsernameIsNotProvided.Error()))
		return
	}

	if err := h.services.Follower.UnfollowUser(c.Request.Context(), h.getPrincipal(c), username); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "user successfully unfollowed"))
}

func (h *Handler) usersGetMainInfo(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	info, err := h.services.Follower.GetUserMainInfo(c.Request.Context(), h.getPrincipal(c), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *Handler) usersGetFollowers(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	followers, err := h.services.Follower.GetFollowers(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, followers)
}

func (h *Handler) usersGetFollowing(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	following, err := h.services.Follower.GetFollowing(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, following)
}

func (h *Handler) usersGetFollowerCount(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	count, err := h.services.Follower.GetFollowerCount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, count)
}

func (h *Handler) usersGetFollowingCount(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	count, err := h.services.Follower.GetFollowingCount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, count)
}

func (h *Handler) userIDParam(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(strings.TrimSpace(c.Param("userID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return uuid.Nil, false
	}

	return userID, true
}
