package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fridgechef/backend/config"
	"github.com/fridgechef/backend/internal/api"
	"github.com/fridgechef/backend/internal/database"
	"github.com/fridgechef/backend/internal/logger"
	"github.com/fridgechef/backend/internal/middleware"
	"github.com/fridgechef/backend/internal/router"
	"github.com/fridgechef/backend/internal/server"
	"github.com/fridgechef/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.New(cfg)
	if err != nil {
		logger.L.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.L.Fatal("failed to migrate database", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.L.Fatal("failed to connect to Redis", zap.Error(err))
	}

	upstream, err := service.NewOpenRouterClient(cfg.OpenRouter)
	if err != nil {
		logger.L.Fatal("failed to create upstream model client", zap.Error(err))
	}

	authService := service.NewAuthService(db)
	sessionManager := service.NewSessionManager(redisClient, cfg.Session.TTL)
	profileService := service.NewProfileService(db)
	recipeService := service.NewRecipeService(db)
	visionService := service.NewVisionService(upstream, cfg.OpenRouter.VisionModel, cfg.Upload.MaxSizeBytes, redisClient)
	llmService := service.NewLLMService(upstream, cfg.OpenRouter.TextModel)

	engine := router.New(router.Handlers{
		Auth:              api.NewAuthHandler(authService, sessionManager, profileService, cfg.Session),
		Analyze:           api.NewAnalyzeHandler(visionService),
		Generate:          api.NewGenerateHandler(llmService, profileService, recipeService),
		Recipes:           api.NewRecipeHandler(recipeService),
		Profile:           api.NewProfileHandler(profileService),
		Health:            api.NewHealthHandler(db),
		Sessions:          sessionManager,
		RateLimit:         middleware.NewModelCallRateLimiter(redisClient),
		SessionCookieName: cfg.Session.CookieName,
		UploadMaxBytes:    cfg.Upload.MaxSizeBytes,
	})

	srv := server.New(cfg, engine)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.L.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.L.Info("received signal", zap.String("signal", sig.String()))
	}

	logger.L.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.L.Fatal("server shutdown error", zap.Error(err))
	}
	logger.L.Info("server stopped")
}
