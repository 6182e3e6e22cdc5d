package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/intuitive-care/operadoras-api/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequestTracker(t *testing.T) {
	router := gin.New()
	router.Use(RequestTracker())

	var during float64
	router.GET("/test", func(c *gin.Context) {
		during = testutil.ToFloat64(observability.ActiveConnections)
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	before := testutil.ToFloat64(observability.ActiveConnections)
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	w := serve(router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, before+1, during)
	assert.Equal(t, before, testutil.ToFloat64(observability.ActiveConnections))
}

func TestRequestID_Generated(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())

	var capturedID string
	router.GET("/test", func(c *gin.Context) {
		val, exists := c.Get("RequestID")
		require.True(t, exists, "RequestID not set in context")
		capturedID = val.(string)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	w := serve(router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	_, err := uuid.Parse(capturedID)
	assert.NoError(t, err, "generated request id is a UUID")
	assert.Equal(t, capturedID, w.Header().Get(RequestIDHeader))
}

func TestRequestID_WithProvidedID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		val, _ := c.Get("RequestID")
		assert.Equal(t, "custom-request-id-123", val)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "custom-request-id-123")
	w := serve(router, req)

	assert.Equal(t, "custom-request-id-123", w.Header().Get(RequestIDHeader))
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		id := serve(router, req).Header().Get(RequestIDHeader)
		assert.False(t, seen[id], "duplicate request id %s", id)
		seen[id] = true
	}
}

func TestCORS_AllowAll(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"*"}))
	router.GET("/api/operadoras", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodGet, "/api/operadoras", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := serve(router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_RestrictedOrigins(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"https://painel.example.com"}))
	router.GET("/api/operadoras", func(c *gin.Context) { c.Status(http.StatusOK) })

	allowed, _ := http.NewRequest(http.MethodGet, "/api/operadoras", nil)
	allowed.Header.Set("Origin", "https://painel.example.com")
	w := serve(router, allowed)
	assert.Equal(t, "https://painel.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	denied, _ := http.NewRequest(http.MethodGet, "/api/operadoras", nil)
	denied.Header.Set("Origin", "https://evil.example.com")
	w = serve(router, denied)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
