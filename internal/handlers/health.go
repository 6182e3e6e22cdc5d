package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/intuitive-care/operadoras-api/internal/logging"
	"github.com/intuitive-care/operadoras-api/internal/redisclient"
	"github.com/intuitive-care/operadoras-api/internal/services"
	"github.com/intuitive-care/operadoras-api/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"
	statusDisabled  = "disabled"
)

// HealthHandler probes the store and, when configured, Redis
type HealthHandler struct {
	port    services.QueryPort
	redis   *redisclient.Client
	logger  *logging.SafeLogger
	timeout time.Duration
}

// NewHealthHandler creates a health handler. redis may be nil when the
// service runs without it.
func NewHealthHandler(port services.QueryPort, redis *redisclient.Client, logger *logging.SafeLogger) *HealthHandler {
	return &HealthHandler{port: port, redis: redis, logger: logger, timeout: 2 * time.Second}
}

// HealthCheck godoc
// @Summary Verificação de saúde
// @Description Verifica a API e suas dependências (PostgreSQL e Redis). O banco indisponível retorna 503; o Redis indisponível apenas degrada o serviço, pois o limite de requisições passa a ser local.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Serviço saudável ou degradado"
// @Failure 503 {object} HealthResponse "Banco de dados indisponível"
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "HealthCheck")
	defer span.End()
	span.SetAttributes(attribute.String("operation", "health_check"))

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	health := HealthResponse{
		Status:    statusHealthy,
		Timestamp: time.Now(),
		Services:  make(map[string]string, 2),
	}

	dbCtx, dbSpan := utils.TraceEndpointStep(ctx, "health.postgres", map[string]interface{}{"service.name": "postgres"})
	if err := h.port.Ping(dbCtx); err != nil {
		utils.RecordErrorInSpan(dbSpan, err, map[string]interface{}{"service.operation": "ping"})
		h.logger.Warn("database health check failed", zap.Error(err))
		health.Status = statusUnhealthy
		health.Services["postgres"] = statusUnhealthy
	} else {
		health.Services["postgres"] = statusHealthy
	}
	dbSpan.End()

	switch {
	case h.redis == nil:
		health.Services["redis"] = statusDisabled
	default:
		redisCtx, redisSpan := utils.TraceEndpointStep(ctx, "health.redis", map[string]interface{}{"service.name": "redis"})
		if err := h.redis.Ping(redisCtx).Err(); err != nil {
			utils.RecordErrorInSpan(redisSpan, err, map[string]interface{}{"service.operation": "ping"})
			h.logger.Warn("redis health check failed", zap.Error(err))
			health.Services["redis"] = statusUnhealthy
			if health.Status == statusHealthy {
				health.Status = statusDegraded
			}
		} else {
			health.Services["redis"] = statusHealthy
		}
		redisSpan.End()
	}

	utils.AddSpanAttribute(span, "health.status", health.Status)
	if health.Status == statusUnhealthy {
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}
	c.JSON(http.StatusOK, health)
}
