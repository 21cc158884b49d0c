package observability

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UnmatchedRoute is the metrics key for requests no route handled.
const UnmatchedRoute = "unmatched"

const unmatchedLocal = "route_unmatched"

// MarkUnmatched flags c as not served by any route.
func MarkUnmatched(c *fiber.Ctx) {
	c.Locals(unmatchedLocal, true)
}

// RouteKey names the route template that served c. Metrics are keyed on it
// rather than the raw path so the key set is bounded by the route table.
func RouteKey(c *fiber.Ctx) string {
	if unmatched, _ := c.Locals(unmatchedLocal).(bool); unmatched {
		return UnmatchedRoute
	}
	if route := c.Route(); route != nil && route.Path != "" {
		return route.Path
	}
	return UnmatchedRoute
}

// RequestLogger logs every request and counts it. Requests slower than
// slowThreshold are logged at WARN; a zero threshold disables that.
func RequestLogger(logger *zap.Logger, metrics *Metrics, slowThreshold time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			if fe.Code == fiber.StatusNotFound {
				MarkUnmatched(c)
			}
		}

		route := RouteKey(c)
		metrics.RecordRequest(route, c.Method(), status, duration)

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
		}
		if rid, ok := c.Locals("request_id").(string); ok && rid != "" {
			fields = append(fields, zap.String("request_id", rid))
		}

		if slowThreshold > 0 && duration > slowThreshold {
			metrics.RecordSlowRequest(route, c.Method())
			logger.Warn("slow request", append(fields, zap.Duration("threshold", slowThreshold))...)
		} else {
			logger.Info("request completed", fields...)
		}
		return err
	}
}
