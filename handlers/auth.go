package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nevta-digital/nevta-api/i18n"
	"github.com/nevta-digital/nevta-api/middleware"
	"github.com/nevta-digital/nevta-api/models"
	"github.com/nevta-digital/nevta-api/services"
)

type AuthHandler struct {
	Auth *services.AuthService
	Tr   *i18n.Translator
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.Auth.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.Auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.Auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Auth.Logout(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
