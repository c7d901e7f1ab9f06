package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func setupGinTest() (*gin.Engine, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)

	router := gin.New()
	router.Use(GinMiddleware(log))
	return router, logs
}

func TestGinMiddleware(t *testing.T) {
	t.Run("logs successful request at info", func(t *testing.T) {
		router, logs := setupGinTest()
		router.GET("/payables", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/payables?page=1", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zap.InfoLevel, entry.Level)
		fields := entry.ContextMap()
		assert.Equal(t, "/payables", fields["path"])
		assert.Equal(t, "GET", fields["method"])
		assert.Equal(t, "page=1", fields["query"])
		assert.EqualValues(t, http.StatusOK, fields["status"])
	})

	t.Run("logs client error at warn", func(t *testing.T) {
		router, logs := setupGinTest()
		router.GET("/missing", func(c *gin.Context) {
			c.Status(http.StatusNotFound)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zap.WarnLevel, logs.All()[0].Level)
	})

	t.Run("logs server error at error", func(t *testing.T) {
		router, logs := setupGinTest()
		router.GET("/boom", func(c *gin.Context) {
			c.Status(http.StatusInternalServerError)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zap.ErrorLevel, logs.All()[0].Level)
	})

	t.Run("stores request logger in gin context", func(t *testing.T) {
		router, _ := setupGinTest()
		var got *zap.Logger
		router.GET("/ctx", func(c *gin.Context) {
			got = GetGinLogger(c)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ctx", nil))
		require.NotNil(t, got)
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)

	router := gin.New()
	router.Use(Recovery(log))
	router.GET("/panic", func(c *gin.Context) {
		panic("something broke")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Panic recovered", entry.Message)
	assert.Equal(t, "something broke", entry.ContextMap()["error"])
}

func TestGetGinLoggerFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	log := GetGinLogger(c)
	require.NotNil(t, log)
}
