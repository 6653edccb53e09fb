package handler

import (
	"net/http"
	"strings"

	"github.com/CoinLift/backend-coinlift/internal/dto"
	"github.com/gin-gonic/gin"
)

// authMiddleware requires a valid bearer token and stores the resolved
// principal on the context.
func (h *Handler) authMiddleware(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	p, err := h.services.Auth.Authorize(c.Request.Context(), token)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	c.Set("principal", p)

	c.Next()
}

// identityMiddleware resolves the caller when a token is present but
// lets anonymous requests through.
func (h *Handler) identityMiddleware(c *gin.Context) {
	token := bearerToken(c)
	if token != "" {
		if p, err := h.services.Auth.Authorize(c.Request.Context(), token); err == nil {
			c.Set("principal", p)
		}
	}

	c.Next()
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
