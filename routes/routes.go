package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nevta-digital/nevta-api/handlers"
	"github.com/nevta-digital/nevta-api/middleware"
)

// OccasionsPath is where signed-in users are sent from the guest-only screens.
const OccasionsPath = "/api/v1/occasions"

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler, parser middleware.TokenParser) {
	guest := rg.Group("/auth")
	guest.Use(middleware.GuestOnly(parser, OccasionsPath))
	{
		guest.POST("/signup", h.Signup)
		guest.POST("/login", h.Login)
	}
	rg.POST("/auth/refresh", h.Refresh)
}

// SetupPublicRoutes sets up routes that need no session.
func SetupPublicRoutes(rg *gin.RouterGroup, h *handlers.I18nHandler) {
	rg.GET("/i18n/:lang", h.GetTable)
}

// SetupOccasionRoutes sets up protected occasion, contribution and report routes.
func SetupOccasionRoutes(rg *gin.RouterGroup, h *handlers.OccasionHandler) {
	rg.GET("/occasions", h.ListOccasions)
	rg.POST("/occasions", h.CreateOccasion)
	rg.GET("/occasions/summary", h.Summary)
	rg.GET("/occasions/:id", h.GetOccasion)
	rg.DELETE("/occasions/:id", h.DeleteOccasion)

	rg.POST("/occasions/:id/contributions", h.AddContribution)
	rg.DELETE("/occasions/:id/contributions/:contribution_id", h.DeleteContribution)
	rg.GET("/occasions/:id/locations", h.Locations)

	rg.GET("/occasions/:id/export.csv", h.ExportCSV)
	rg.GET("/occasions/:id/report", h.Report)
	rg.POST("/occasions/:id/insights", h.GetInsights)
}

// SetupUserRoutes sets up protected user routes.
func SetupUserRoutes(rg *gin.RouterGroup, h *handlers.UserHandler, auth *handlers.AuthHandler) {
	rg.POST("/auth/logout", auth.Logout)

	rg.GET("/user/profile", h.GetProfile)
	rg.PUT("/user/profile", h.UpdateProfile)
	rg.PUT("/user/language", h.UpdateLanguage)
	rg.POST("/user/password", h.ChangePassword)
	rg.POST("/user/2fa/setup", h.SetupTOTP)
	rg.POST("/user/2fa/verify", h.VerifyTOTP)
	rg.POST("/user/2fa/disable", h.DisableTOTP)
	rg.GET("/user/export", h.ExportUserData)
	rg.DELETE("/user/account", h.DeleteAccount)

	rg.GET("/user/upi-qr", h.GetQR)
	rg.PUT("/user/upi-qr", h.UploadQR)
	rg.POST("/user/upi-qr/generate", h.GenerateQR)
	rg.DELETE("/user/upi-qr", h.DeleteQR)
}

// SetupWSRoutes sets up the live update socket.
func SetupWSRoutes(rg *gin.RouterGroup, h *handlers.WSHandler) {
	rg.GET("/ws", h.HandleWS)
}
