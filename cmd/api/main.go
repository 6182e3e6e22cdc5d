package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/intuitive-care/operadoras-api/internal/config"
	"github.com/intuitive-care/operadoras-api/internal/logging"
	"github.com/intuitive-care/operadoras-api/internal/observability"
	"github.com/intuitive-care/operadoras-api/internal/services"
	"github.com/intuitive-care/operadoras-api/internal/storage"
	"go.uber.org/zap"

	_ "github.com/intuitive-care/operadoras-api/docs"
)

// @title           Operadoras API
// @version         1.0
// @description     API somente leitura sobre operadoras de planos de saúde ativas na ANS, suas despesas trimestrais e estatísticas agregadas.

// @host      localhost:8080
// @BasePath  /api

// @tag.name operadoras
// @tag.description Consulta de operadoras e de suas despesas

// @tag.name estatisticas
// @tag.description Resumo estatístico das despesas agregadas

// @tag.name health
// @tag.description Verificação de saúde

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logging.Logger.Sync()

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}
	cfg := config.AppConfig

	// Initialize observability
	if err := observability.InitTracer(cfg); err != nil {
		logging.Logger.Warn("tracing unavailable, continuing without it", zap.Error(err))
	}
	defer observability.ShutdownTracer()

	if cfg.MigrateOnStart {
		if err := storage.RunMigrations(cfg.DatabaseURL); err != nil {
			logging.Logger.Fatal("failed to apply migrations", zap.Error(err))
		}
		logging.Logger.Info("migrations applied")
	}

	// Initialize database connections
	if err := config.InitPostgres(); err != nil {
		logging.Logger.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	config.InitRedis()
	defer config.CloseConnections()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	port := services.NewOperadoraService(config.DB, logging.Logger.Named("operadoras"), cfg.DBQueryTimeout)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var limiter *services.RateLimiter
	if cfg.RateLimitEnabled {
		var counter services.WindowCounter
		if config.Redis != nil {
			counter = config.Redis
		}
		limiter = services.NewRateLimiter(counter, cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.RateLimitWindow, logging.Logger.Named("ratelimit"))
		limiter.StartCleanup(ctx, 10*time.Minute)
	}

	router := newRouter(cfg, port, config.Redis, limiter, logging.Logger)

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("api_prefix", cfg.APIPrefix),
			zap.Bool("rate_limit", cfg.RateLimitEnabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Error("server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("server exited gracefully")
}
