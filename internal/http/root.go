package http

import (
	"net/http"

	"github.com/jmehdipour/customer-lab/internal/repository"
	"github.com/labstack/echo/v4"
)

var endpoints = []string{
	"POST /seed",
	"POST /index",
	"GET /search?city=&status=&name=&mask=",
	"GET /perf?city=&status=&name=",
	"GET /dq/analyze",
	"GET /perf/history?limit=",
	"GET /dq/history?limit=",
	"GET /healthz",
	"GET /metrics",
}

func rootHandler(schema repository.SchemaManager, historyEnabled bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		body := map[string]any{
			"service":         "customer-lab",
			"description":     "Customer search, index performance and data-quality lab",
			"endpoints":       endpoints,
			"history_enabled": historyEnabled,
		}
		// best effort; the table may not exist yet
		if idx, err := schema.ListIndexes(c.Request().Context()); err == nil {
			body["indexes"] = idx
		} else {
			body["indexes"] = []string{}
		}
		return c.JSON(http.StatusOK, body)
	}
}
