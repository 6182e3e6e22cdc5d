package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/intuitive-care/operadoras-api/internal/config"
	"github.com/intuitive-care/operadoras-api/internal/logging"
	"github.com/intuitive-care/operadoras-api/internal/models"
	"github.com/intuitive-care/operadoras-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{APIPrefix: "/api", CORSAllowedOrigins: []string{"*"}}
}

func testPort() services.QueryPort {
	return services.NewMemoryQueryService([]models.Operadora{
		{RegistroANS: "326305", CNPJ: "29309127000179", RazaoSocial: "AMIL", UF: "SP"},
	}, nil, nil)
}

func get(router *gin.Engine, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestNewRouter_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newRouter(testConfig(), testPort(), nil, nil, logging.NewSafeLogger(nil))

	tests := []struct {
		url    string
		status int
	}{
		{"/api/operadoras", http.StatusOK},
		{"/api/operadoras/29309127000179", http.StatusOK},
		{"/api/operadoras/29309127000179/despesas", http.StatusOK},
		{"/api/estatisticas", http.StatusOK},
		{"/health", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/swagger/doc.json", http.StatusOK},
		{"/api/operadoras/00000000000000", http.StatusNotFound},
		{"/operadoras", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			w := get(router, tt.url)
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestNewRouter_CustomPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.APIPrefix = "/v1"
	router := newRouter(cfg, testPort(), nil, nil, logging.NewSafeLogger(nil))

	assert.Equal(t, http.StatusOK, get(router, "/v1/operadoras").Code)
	assert.Equal(t, http.StatusNotFound, get(router, "/api/operadoras").Code)
}

func TestNewRouter_RateLimitOnlyOnAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := services.NewRateLimiter(nil, 0.1, 1, time.Minute, logging.NewSafeLogger(nil))
	router := newRouter(testConfig(), testPort(), nil, limiter, logging.NewSafeLogger(nil))

	require.Equal(t, http.StatusOK, get(router, "/api/estatisticas").Code)
	limited := get(router, "/api/estatisticas")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, get(router, "/health").Code, "health is never rate limited")
}
