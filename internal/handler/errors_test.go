package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/CoinLift/backend-coinlift/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{service.ErrUnauthenticated, http.StatusUnauthorized},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrAccessDenied, http.StatusForbidden},
		{service.ErrUserNotFound, http.StatusNotFound},
		{service.ErrPostNotFound, http.StatusNotFound},
		{service.ErrCommentNotFound, http.StatusNotFound},
		{service.ErrAlreadyFollowing, http.StatusConflict},
		{service.ErrNotFollowing, http.StatusConflict},
		{service.ErrCannotFollowSelf, http.StatusConflict},
		{service.ErrAlreadyLiked, http.StatusConflict},
		{service.ErrNotLiked, http.StatusConflict},
		{service.ErrUserWithUsernameAlreadyExists, http.StatusConflict},
		{service.ErrUserWithEmailAlreadyExists, http.StatusConflict},
		{service.ErrPasswordMismatch, http.StatusBadRequest},
		{service.ErrInternal, http.StatusInternalServerError},
		{errors.New("something else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, statusFromError(tt.err), tt.err.Error())
	}
}
