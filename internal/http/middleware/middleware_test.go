package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	echo "github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestRateLimitPassesWithoutRedis(t *testing.T) {
	e := echo.New()
	e.Use(RateLimitMiddleware(RateLimitConfig{RPS: 1}))
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/").Code)
	}
}

func TestRateLimitFailsOpenWhenRedisIsDown(t *testing.T) {
	rds := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rds.Close() })

	e := echo.New()
	e.Use(RateLimitMiddleware(RateLimitConfig{Redis: rds, RPS: 1}))
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/").Code)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/").Code)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	e := echo.New()
	e.Use(RequestLogger(zap.New(core)))
	e.GET("/items/:id", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError, "boom")
	})

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/items/7").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(e, http.MethodGet, "/boom").Code)

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "/items/7", first["path"])
	assert.Equal(t, "/items/:id", first["route"])
	assert.EqualValues(t, http.StatusOK, first["status"])

	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.EqualValues(t, http.StatusInternalServerError, entries[1].ContextMap()["status"])
}
