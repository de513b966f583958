package http

import (
	"net/http"
	"strings"

	"github.com/jmehdipour/customer-lab/internal/model"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// filtersFromQuery keeps absent parameters nil so they are echoed as null.
func filtersFromQuery(c echo.Context) model.Filters {
	q := c.QueryParams()
	param := func(key string) *string {
		vs, ok := q[key]
		if !ok || len(vs) == 0 {
			return nil
		}
		v := vs[0]
		return &v
	}
	return model.Filters{
		City:   param("city"),
		Status: param("status"),
		Name:   param("name"),
	}
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

func searchHandler(s Searcher, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := s.Search(c.Request().Context(), filtersFromQuery(c), truthy(c.QueryParam("mask")))
		if err != nil {
			log.Error("search failed", zap.Error(err))
			return errorJSON(c, http.StatusInternalServerError, err)
		}
		return c.JSON(http.StatusOK, res)
	}
}

func perfHandler(p PlanComparer, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		cmp, err := p.Compare(c.Request().Context(), filtersFromQuery(c))
		if err != nil {
			log.Error("perf comparison failed", zap.Error(err))
			return errorJSON(c, http.StatusInternalServerError, err)
		}
		return c.JSON(http.StatusOK, cmp)
	}
}
