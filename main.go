package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nevta-digital/nevta-api/config"
	"github.com/nevta-digital/nevta-api/migration"
	"github.com/nevta-digital/nevta-api/routes"
	"github.com/nevta-digital/nevta-api/services"
	"github.com/nevta-digital/nevta-api/store"
	"github.com/nevta-digital/nevta-api/utils"
)

func main() {
	configPath := flag.String("config", "", "optional config file (yaml, json or toml)")
	importFile := flag.String("import-legacy", "", "import a legacy JSON export and exit")
	ownerMobile := flag.String("owner-mobile", "", "mobile number of the account that receives the import")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		utils.SafeInfo("No .env file found, using environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		utils.Logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	utils.ConfigureLogging(os.Stdout, cfg.LogLevel, cfg.IsProduction())
	if err := cfg.Validate(); err != nil {
		utils.Logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(cfg)
	if err != nil {
		utils.Logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer st.Close()

	if *importFile != "" {
		if err := runImport(ctx, cfg, st, *importFile, *ownerMobile); err != nil {
			utils.Logger.Fatal().Err(err).Msg("legacy import failed")
		}
		return
	}

	var feed services.Notifier
	if cfg.AMQPURL != "" {
		changeFeed, err := services.NewChangeFeed(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			utils.SafeWarn("⚠️ Change feed disabled: %v", err)
		} else {
			defer changeFeed.Close()
			feed = changeFeed
		}
	}

	ai := services.NewClaudeAIService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	if cfg.AnthropicAPIKey == "" {
		utils.SafeWarn("⚠️ ANTHROPIC_API_KEY not set, insights will be unavailable")
	}

	server := routes.NewServer(ctx, cfg, st, ai, feed)
	defer server.Hub.Close()

	go scheduleSessionCleanup(ctx, st)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	utils.LogStartup("nevta-api", routes.Version, cfg.Port)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	utils.SafeInfo("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.SafeError("❌ Graceful shutdown failed: %v", err)
	}
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		utils.SafeWarn("⚠️ Using in-memory store, data is lost on restart")
		return store.NewMemoryStore(), nil
	}

	db, err := config.InitDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	utils.SafeInfo("✅ Database connected successfully")

	if err := config.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return store.NewPostgresStore(db), nil
}

func runImport(ctx context.Context, cfg *config.Config, st store.Store, path, mobile string) error {
	mobile, err := services.ValidateMobile(mobile)
	if err != nil {
		return fmt.Errorf("-owner-mobile: %w", err)
	}

	auth := services.NewAuthService(st, nil, cfg.LoginDomain, cfg.RefreshTokenTTL, nil)
	owner, err := st.GetUserByLoginID(ctx, auth.SynthesizeLoginID(mobile))
	if err != nil {
		return fmt.Errorf("find owner %s: %w", utils.MaskMobile(mobile), err)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	report, err := migration.ImportLegacyOccasions(ctx, st, owner.ID, f)
	if err != nil {
		return err
	}
	utils.SafeInfo("✅ Imported %d occasions and %d contributions (%d skipped, %d warnings)",
		report.Occasions, report.Contributions, report.Skipped, len(report.Warnings))
	return nil
}

func scheduleSessionCleanup(ctx context.Context, st store.Store) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	cleanExpiredSessions(ctx, st)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cleanExpiredSessions(ctx, st)
		}
	}
}

func cleanExpiredSessions(ctx context.Context, st store.Store) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	n, err := st.DeleteExpiredSessions(ctx, time.Now())
	if err != nil {
		utils.SafeError("❌ Session cleanup failed: %v", err)
		return
	}
	if n > 0 {
		utils.SafeInfo("🧹 Cleaned %d expired sessions", n)
	}
}
