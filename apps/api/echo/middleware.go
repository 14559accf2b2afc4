package echoapi

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/etasha-dev/scheduler/services/metrics"
)

// schedulerMiddleware restricts a route to trainers with the scheduler role.
func schedulerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsScheduler() {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

func metricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}

			metrics.RequestDurationSeconds.Observe(time.Since(start).Seconds())
			metrics.RequestsTotal.WithLabelValues(
				ctx.Request().Method,
				ctx.Path(),
				strconv.Itoa(ctx.Response().Status),
			).Inc()
			return nil
		}
	}
}
