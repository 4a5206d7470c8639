package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nevta-digital/nevta-api/i18n"
	"github.com/nevta-digital/nevta-api/middleware"
	"github.com/nevta-digital/nevta-api/models"
	"github.com/nevta-digital/nevta-api/services"
)

const languageCookieMaxAge = 365 * 24 * 60 * 60

type UserHandler struct {
	Profile *services.ProfileService
	Auth    *services.AuthService
	QR      *services.QRService
	Tr      *i18n.Translator
	// MaxQRBytes caps multipart uploads before they reach the service.
	MaxQRBytes int
}

// ============================================================================
// PROFILE MANAGEMENT
// ============================================================================

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.Profile.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Profile.UpdateName(c.Request.Context(), middleware.GetUserID(c), req.Name)
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateLanguage stores the preference and mirrors it into the cookie.
func (h *UserHandler) UpdateLanguage(c *gin.Context) {
	var req models.UpdateLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lang, err := h.Profile.UpdateLanguage(c.Request.Context(), middleware.GetUserID(c), req.Language)
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(i18n.CookieName, string(lang), languageCookieMaxAge, "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{"language": lang})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Auth.ChangePassword(c.Request.Context(), middleware.GetUserID(c), req); err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// ============================================================================
// TWO-FACTOR AUTHENTICATION
// ============================================================================

func (h *UserHandler) SetupTOTP(c *gin.Context) {
	resp, err := h.Auth.SetupTOTP(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) VerifyTOTP(c *gin.Context) {
	var req models.VerifyTOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Auth.EnableTOTP(c.Request.Context(), middleware.GetUserID(c), req.Code); err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "2FA enabled successfully"})
}

func (h *UserHandler) DisableTOTP(c *gin.Context) {
	var req models.VerifyTOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Auth.DisableTOTP(c.Request.Context(), middleware.GetUserID(c), req.Code); err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "2FA disabled successfully"})
}

// ============================================================================
// ACCOUNT
// ============================================================================

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.Profile.DeleteAccount(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

// ExportUserData returns every record the user owns as a JSON download.
func (h *UserHandler) ExportUserData(c *gin.Context) {
	export, err := h.Profile.Export(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="nevta-data-export.json"`)
	c.JSON(http.StatusOK, export)
}

// ============================================================================
// UPI QR
// ============================================================================

func (h *UserHandler) GetQR(c *gin.Context) {
	qr, err := h.QR.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusOK, qr)
}

// UploadQR accepts either a multipart "qr" field or JSON {"image": "data:..."}.
func (h *UserHandler) UploadQR(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)

	var (
		qr  *models.UPIQR
		err error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, ferr := c.FormFile("qr")
		if ferr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": ferr.Error()})
			return
		}
		f, ferr := file.Open()
		if ferr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": ferr.Error()})
			return
		}
		defer f.Close()

		limit := int64(h.MaxQRBytes) + 1
		if h.MaxQRBytes <= 0 {
			limit = file.Size
		}
		data, ferr := io.ReadAll(io.LimitReader(f, limit))
		if ferr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": ferr.Error()})
			return
		}
		qr, err = h.QR.Upload(ctx, userID, file.Header.Get("Content-Type"), data)
	} else {
		var req models.UploadQRRequest
		if berr := c.ShouldBindJSON(&req); berr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": berr.Error()})
			return
		}
		qr, err = h.QR.UploadDataURI(ctx, userID, req.Image)
	}
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.Tr.T(middleware.GetLanguage(c), "qrUpdated"), "qr": qr})
}

func (h *UserHandler) GenerateQR(c *gin.Context) {
	var req models.GenerateQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	qr, err := h.QR.Generate(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.Tr.T(middleware.GetLanguage(c), "qrUpdated"), "qr": qr})
}

func (h *UserHandler) DeleteQR(c *gin.Context) {
	if err := h.QR.Delete(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.Status(http.StatusNoContent)
}
