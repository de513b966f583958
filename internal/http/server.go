package http

import (
	"context"
	"net/http"
	"time"

	"github.com/jmehdipour/customer-lab/internal/config"
	"github.com/jmehdipour/customer-lab/internal/http/middleware"
	"github.com/jmehdipour/customer-lab/internal/logger"
	"github.com/jmehdipour/customer-lab/internal/model"
	"github.com/jmehdipour/customer-lab/internal/repository"
	"github.com/jmehdipour/customer-lab/internal/service/search"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	gommonLog "github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Seeder interface {
	Reload(ctx context.Context) (int, error)
	Source() string
}

type Searcher interface {
	Search(ctx context.Context, f model.Filters, mask bool) (search.Result, error)
}

type PlanComparer interface {
	Compare(ctx context.Context, f model.Filters) (model.Comparison, error)
}

type Analyzer interface {
	Analyze(ctx context.Context) (model.Report, error)
}

// Deps are the services behind the routes. History and Redis may be nil.
type Deps struct {
	Seeder  Seeder
	Schema  repository.SchemaManager
	Search  Searcher
	Perf    PlanComparer
	DQ      Analyzer
	History repository.HistoryRepository
	Redis   *redis.Client
}

type Server struct {
	e   *echo.Echo
	log *zap.Logger
}

func NewServer(cfg config.Config, d Deps, log *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(echoLogLevel(cfg.Log.Level))
	e.Use(echoMid.Recover(), middleware.RequestLogger(log))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          d.Redis,
		RPS:            cfg.RateLimit.RPS,
		KeyPrefix:      "rl:ip:",
		Window:         time.Second,
		RetryAfterHint: true,
	})

	// routes
	api := e.Group("", rlMW)
	api.GET("/", rootHandler(d.Schema, d.History != nil))
	api.POST("/seed", seedHandler(d.Seeder, log))
	api.POST("/index", indexHandler(d.Schema, log))
	api.GET("/search", searchHandler(d.Search, log))
	api.GET("/perf", perfHandler(d.Perf, log))
	api.GET("/dq/analyze", analyzeHandler(d.DQ, log))
	api.GET("/perf/history", perfHistoryHandler(d.History, log))
	api.GET("/dq/history", dqHistoryHandler(d.History, log))

	return &Server{e: e, log: log}
}

func (s *Server) Handler() http.Handler { return s.e }

func (s *Server) Start(addr string) error {
	s.log.Info("http: listening", zap.String("addr", addr))
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }

func echoLogLevel(level string) gommonLog.Lvl {
	switch logger.ParseLevel(level) {
	case zapcore.DebugLevel:
		return gommonLog.DEBUG
	case zapcore.WarnLevel:
		return gommonLog.WARN
	case zapcore.ErrorLevel:
		return gommonLog.ERROR
	default:
		return gommonLog.INFO
	}
}

// errorJSON is the body of every failed request.
func errorJSON(c echo.Context, code int, err error) error {
	return c.JSON(code, map[string]any{"ok": false, "error": err.Error()})
}
