package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nevta-digital/nevta-api/i18n"
	"github.com/nevta-digital/nevta-api/middleware"
	"github.com/nevta-digital/nevta-api/services"
	"github.com/nevta-digital/nevta-api/store"
	"github.com/nevta-digital/nevta-api/utils"
)

// respondError maps service and store errors to a status and a localized message.
func respondError(c *gin.Context, tr *i18n.Translator, err error) {
	lang := middleware.GetLanguage(c)

	var (
		verr *services.ValidationError
		cerr *services.ConflictError
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": tr.T(lang, verr.Key), "code": verr.Key})
	case errors.As(err, &cerr):
		c.JSON(http.StatusConflict, gin.H{"error": tr.T(lang, cerr.Key), "code": cerr.Key})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": tr.T(lang, "notFound")})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": tr.T(lang, "somethingWentWrong")})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": tr.T(lang, "invalidCredentials")})
	case errors.Is(err, services.ErrTOTPRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": tr.T(lang, "totpRequired"), "requires_2fa": true})
	case errors.Is(err, services.ErrInvalidTOTP):
		c.JSON(http.StatusUnauthorized, gin.H{"error": tr.T(lang, "invalidTotp")})
	case errors.Is(err, services.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": tr.T(lang, "sessionExpired")})
	case errors.Is(err, services.ErrInsightsUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": tr.T(lang, "insightsUnavailable")})
	default:
		utils.SafeError("❌ %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": tr.T(lang, "somethingWentWrong")})
	}
}
