package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nevta-digital/nevta-api/config"
	"github.com/nevta-digital/nevta-api/handlers"
	"github.com/nevta-digital/nevta-api/i18n"
	"github.com/nevta-digital/nevta-api/middleware"
	"github.com/nevta-digital/nevta-api/services"
	"github.com/nevta-digital/nevta-api/store"
	"github.com/nevta-digital/nevta-api/utils"
)

const Version = "1.0.0"

// Server is the assembled HTTP application.
type Server struct {
	Router *gin.Engine
	Hub    *handlers.WSHandler
	Auth   *services.AuthService
}

// NewServer wires services, handlers and routes. feed, when non-nil, receives
// every change event alongside the websocket hub.
func NewServer(ctx context.Context, cfg *config.Config, st store.Store, ai services.TextGenerator, feed services.Notifier) *Server {
	tr := i18n.New()
	jwtManager := utils.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	var encryptionKey []byte
	if cfg.DataEncryptionKey != "" {
		encryptionKey = []byte(cfg.DataEncryptionKey)
	}

	authService := services.NewAuthService(st, jwtManager, cfg.LoginDomain, cfg.RefreshTokenTTL, encryptionKey)
	profileService := services.NewProfileService(st)
	qrService := services.NewQRService(st, int(cfg.MaxQRBytes))
	insightsService := services.NewInsightsService(st, ai, tr)

	// the hub needs the occasion service for ownership checks, and the
	// service needs the hub to publish; close the loop through Notifiers
	notifiers := services.Notifiers{}
	occasionService := services.NewOccasionService(st, &notifiers)
	hub := handlers.NewWSHandler(occasionService, tr)
	notifiers = append(notifiers, hub)
	if feed != nil {
		notifiers = append(notifiers, feed)
	}

	authHandler := &handlers.AuthHandler{Auth: authService, Tr: tr}
	userHandler := &handlers.UserHandler{Profile: profileService, Auth: authService, QR: qrService, Tr: tr, MaxQRBytes: int(cfg.MaxQRBytes)}
	occasionHandler := &handlers.OccasionHandler{Occasions: occasionService, Insights: insightsService, Tr: tr}
	i18nHandler := &handlers.I18nHandler{Tr: tr}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	utils.SafeInfo("🌍 CORS: Allowing origins: %v", cfg.AllowedOrigins)
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	router.Use(middleware.RequestLogger())

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMin, time.Minute)
	limiter.StartCleanup(ctx)
	router.Use(limiter.Middleware())

	lookup := func(ctx context.Context, userID string) (string, error) {
		user, err := st.GetUserByID(ctx, userID)
		if err != nil {
			return "", err
		}
		return user.PreferredLanguage, nil
	}

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("/")
		public.Use(middleware.Language(nil))
		{
			SetupAuthRoutes(public, authHandler, authService)
			SetupPublicRoutes(public, i18nHandler)
		}

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(authService), middleware.Language(lookup))
		{
			SetupOccasionRoutes(protected, occasionHandler)
			SetupUserRoutes(protected, userHandler, authHandler)
			SetupWSRoutes(protected, hub)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if err := st.Ping(c.Request.Context()); err != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": Version,
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	return &Server{Router: router, Hub: hub, Auth: authService}
}
