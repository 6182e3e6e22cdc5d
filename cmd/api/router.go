package main

import (
	"github.com/gin-gonic/gin"
	"github.com/intuitive-care/operadoras-api/internal/config"
	"github.com/intuitive-care/operadoras-api/internal/handlers"
	"github.com/intuitive-care/operadoras-api/internal/logging"
	"github.com/intuitive-care/operadoras-api/internal/middleware"
	"github.com/intuitive-care/operadoras-api/internal/redisclient"
	"github.com/intuitive-care/operadoras-api/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// newRouter wires middleware and routes. limiter may be nil to disable rate
// limiting; redis may be nil when the service runs without it.
func newRouter(cfg *config.Config, port services.QueryPort, redis *redisclient.Client, limiter *services.RateLimiter, logger *logging.SafeLogger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestTiming(),
		middleware.RequestTracker(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	health := handlers.NewHealthHandler(port, redis, logger)
	router.GET("/health", health.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	operadoras := handlers.NewOperadoraHandlers(port, logger)
	api := router.Group(cfg.APIPrefix)
	if limiter != nil {
		api.Use(middleware.RateLimit(limiter))
	}
	{
		api.GET("/operadoras", operadoras.ListOperadoras)
		api.GET("/operadoras/:cnpj", operadoras.GetOperadora)
		api.GET("/operadoras/:cnpj/despesas", operadoras.ListDespesas)
		api.GET("/estatisticas", operadoras.GetEstatisticas)
	}

	return router
}
