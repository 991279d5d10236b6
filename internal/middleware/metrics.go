package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"movie-recommendation-service/internal/metrics"
)

// Metrics records the duration of every request by method, route pattern
// and status.
func Metrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(c.Method(), route, status, time.Since(start))
		return err
	}
}
