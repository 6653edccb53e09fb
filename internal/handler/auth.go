package handler

import (
	"net/http"

	"github.com/CoinLift/backend-coinlift/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) authRegister(c *gin.Context) {
	var input dto.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	token, err := h.services.Auth.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{Ok: true, Token: token})
}

func (h *Handler) authAuthenticate(c *gin.Context) {
	var input dto.AuthenticateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	token, err := h.services.Auth.Authenticate(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Ok: true, Token: token})
}
