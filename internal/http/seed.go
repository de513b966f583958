package http

import (
	"errors"
	"net/http"

	"github.com/jmehdipour/customer-lab/internal/repository"
	"github.com/jmehdipour/customer-lab/internal/service/seed"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func seedHandler(s Seeder, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		inserted, err := s.Reload(c.Request().Context())
		if err != nil {
			var verr *seed.ValidationError
			switch {
			case errors.Is(err, seed.ErrDatasetMissing), errors.Is(err, seed.ErrDatasetMalformed), errors.As(err, &verr):
				log.Warn("seed rejected", zap.Error(err))
			default:
				log.Error("seed failed", zap.Error(err))
			}
			// the table is untouched on every failure path
			return errorJSON(c, http.StatusBadRequest, err)
		}

		return c.JSON(http.StatusOK, map[string]any{
			"ok":       true,
			"inserted": inserted,
			"source":   s.Source(),
		})
	}
}

func indexHandler(schema repository.SchemaManager, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := schema.EnsureTable(ctx); err != nil {
			log.Error("ensure table failed", zap.Error(err))
			return errorJSON(c, http.StatusInternalServerError, err)
		}
		if err := schema.EnsureIndexes(ctx); err != nil {
			log.Error("create indexes failed", zap.Error(err))
			return errorJSON(c, http.StatusInternalServerError, err)
		}
		return c.JSON(http.StatusOK, map[string]any{
			"ok":      true,
			"message": "Indexes created (city, status).",
		})
	}
}
