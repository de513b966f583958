package http

import (
	"net/http"
	"strconv"

	"github.com/jmehdipour/customer-lab/internal/repository"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func analyzeHandler(a Analyzer, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		rep, err := a.Analyze(c.Request().Context())
		if err != nil {
			log.Error("dq analysis failed", zap.Error(err))
			return errorJSON(c, http.StatusInternalServerError, err)
		}
		return c.JSON(http.StatusOK, rep)
	}
}

func historyLimit(c echo.Context) int {
	n, _ := strconv.Atoi(c.QueryParam("limit"))
	return repository.HistoryLimit(n)
}

func disabledHistory(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"enabled": false,
		"count":   0,
		"results": []any{},
	})
}

func perfHistoryHandler(h repository.HistoryRepository, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h == nil {
			return disabledHistory(c)
		}
		limit := historyLimit(c)
		runs, err := h.ListPerf(c.Request().Context(), limit)
		if err != nil {
			log.Error("clickhouse list perf runs failed", zap.Error(err))
			return errorJSON(c, http.StatusInternalServerError, err)
		}
		return c.JSON(http.StatusOK, map[string]any{
			"enabled": true,
			"limit":   limit,
			"count":   len(runs),
			"results": runs,
		})
	}
}

func dqHistoryHandler(h repository.HistoryRepository, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h == nil {
			return disabledHistory(c)
		}
		limit := historyLimit(c)
		reports, err := h.ListReports(c.Request().Context(), limit)
		if err != nil {
			log.Error("clickhouse list dq reports failed", zap.Error(err))
			return errorJSON(c, http.StatusInternalServerError, err)
		}
		return c.JSON(http.StatusOK, map[string]any{
			"enabled": true,
			"limit":   limit,
			"count":   len(reports),
			"results": reports,
		})
	}
}
