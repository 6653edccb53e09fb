package handler

import (
	"errors"
	"net/http"

	"github.com/CoinLift/backend-coinlift/internal/dto"
	"github.com/CoinLift/backend-coinlift/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errNotAuthorized = errors.New("user is not authorized")
	errInvalidID = errors.New("provided an invalid ID")
	errUsernameIsNotProvided = errors.New("please provide username")
)

// respondError translates the service sentinels into stable HTTP
// outcomes; anything unknown is a 500.
func respondError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyFollowing),
		errors.Is(err, service.ErrNotFollowing),
		errors.Is(err, service.ErrCannotFollowSelf),
		errors.Is(err, service.ErrAlreadyLiked),
		errors.Is(err, service.ErrNotLiked),
		errors.Is(err, service.ErrUserWithUsernameAlreadyExists),
		errors.Is(err, service.ErrUserWithEmailAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrPasswordMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
