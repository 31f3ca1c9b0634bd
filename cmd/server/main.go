package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"hirelink/docs" // swagger docs
	"hirelink/internal/access"
	"hirelink/internal/auth"
	"hirelink/internal/cache"
	"hirelink/internal/config"
	"hirelink/internal/db"
	"hirelink/internal/handler"
	"hirelink/internal/llm"
	"hirelink/internal/repository"
	"hirelink/internal/resume"
	"hirelink/internal/router"
	"hirelink/internal/service"
)

// @title HireLink API
// @version 1.0
// @description Talent marketplace API: authentication, resume extraction, bio generation and embeddings.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		return err
	}
	if cfg.ResetDB {
		logger.Warn("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		return err
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, caching disabled", slog.String("addr", cfg.RedisAddr), slog.Any("error", err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	resolver := auth.NewSessionResolver(jwtService, tokenStore)

	// Initialize the language model, if configured
	var (
		model  service.LanguageModel
		reader resume.DocumentReader
	)
	if cfg.AIEnabled() {
		llmService, err := llm.NewGoogleAI(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiEmbeddingModel)
		if err != nil {
			return err
		}
		model, reader = llmService, llmService
	} else {
		logger.Warn("GEMINI_API_KEY not set, AI endpoints will return 503")
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	aiService := service.NewAIService(model, resume.NewExtractor(reader), cacheClient, logger)
	profileService := service.NewProfileService(profileRepo, aiService)
	talentService := service.NewTalentService(profileRepo, aiService)

	paths := access.Paths{SignIn: cfg.SignInPath, Unauthorized: cfg.UnauthorizedPath}

	// Initialize handlers
	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authService, userService, paths, cfg.CookieSecure),
		AI:        handler.NewAIHandler(aiService),
		Dashboard: handler.NewDashboardHandler(access.NewRedirectOnDeny(resolver, "", paths, logger), profileService, talentService),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, logger, resolver, router.NewGates(resolver, paths, logger), handlers)

	if cfg.SwaggerHost != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
		docs.SwaggerInfo.Host = host
	}
	logger.Info("swagger documentation available", slog.String("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html"))

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info("server listening", slog.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}
