package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/observability"
	"github.com/spec-kit/portfolio-service/internal/security"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util/errorutil"
)

const requestIDHeader = "X-Request-ID"

// MiddlewareConfig bundles dependencies of the global middleware chain.
type MiddlewareConfig struct {
	Logger        *zap.Logger
	Metrics       *observability.Metrics
	Timeout       time.Duration
	SlowThreshold time.Duration
	// Inspector is optional; nil disables request inspection.
	Inspector *security.Inspector
	Sink      security.Sink
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	app.Use(requestIDMiddleware())
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
	app.Use(observability.RequestLogger(logger, cfg.Metrics, cfg.SlowThreshold))
	app.Use(errorHandlingMiddleware(logger, cfg.Metrics))
	if cfg.Inspector != nil && cfg.Sink != nil {
		app.Use(inspectionMiddleware(cfg.Inspector, cfg.Sink, logger))
	}
}

func requestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals("request_id", id)
		c.Set(requestIDHeader, id)
		return c.Next()
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := toDomainError(err)
				var fe *fiber.Error
				if errors.As(err, &fe) && fe.Code == fiber.StatusNotFound {
					observability.MarkUnmatched(c)
				}
				metrics.RecordError(observability.RouteKey(c), c.Method(), domainErr.Code)
				response := fiber.Map{"error": fiber.Map{
					"code":    domainErr.Code,
					"message": domainErr.Message,
				}}
				if len(domainErr.Details) > 0 {
					response["error"].(fiber.Map)["details"] = domainErr.Details
				}
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(response)
				err = nil
			}
		}()
		return c.Next()
	}
}

// toDomainError also understands fiber's own errors such as unknown routes.
func toDomainError(err error) *apperrors.DomainError {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return &apperrors.DomainError{
			Code:       codeForStatus(fe.Code),
			Message:    strings.ToLower(fe.Message),
			HTTPStatus: fe.Code,
			Err:        err,
		}
	}
	return apperrors.ToDomainError(err)
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return apperrors.CodeValidationFailed
	case fiber.StatusUnauthorized:
		return apperrors.CodeUnauthorized
	case fiber.StatusForbidden:
		return apperrors.CodeForbidden
	case fiber.StatusNotFound:
		return apperrors.CodeNotFound
	case fiber.StatusConflict:
		return apperrors.CodeConflict
	}
	if status >= 500 {
		return apperrors.CodeInternal
	}
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

// inspectionMiddleware reports attack signatures without ever changing the response.
func inspectionMiddleware(inspector *security.Inspector, sink security.Sink, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inspect(c, inspector, sink, logger)
		return c.Next()
	}
}

func inspect(c *fiber.Ctx, inspector *security.Inspector, sink security.Sink, logger *zap.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("request inspection failed", zap.Any("panic", r))
		}
	}()
	for _, ev := range inspector.Inspect(snapshotRequest(c)) {
		sink.Record(c.UserContext(), ev)
	}
}

func snapshotRequest(c *fiber.Ctx) security.Request {
	req := security.Request{
		Method:    c.Method(),
		URL:       c.BaseURL() + c.OriginalURL(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
		IP:        c.IP(),
		Body:      requestBody(c),
		Query:     map[string][]string{},
		Headers:   map[string][]string{},
	}
	c.Request().URI().QueryArgs().VisitAll(func(k, v []byte) {
		key := string(k)
		req.Query[key] = append(req.Query[key], string(v))
	})
	c.Request().Header.VisitAll(func(k, v []byte) {
		key := string(k)
		req.Headers[key] = append(req.Headers[key], string(v))
	})
	return req
}

func requestBody(c *fiber.Ctx) map[string]any {
	body := map[string]any{}
	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))
	switch {
	case strings.HasPrefix(contentType, fiber.MIMEApplicationJSON):
		if raw := c.Body(); len(raw) > 0 {
			_ = json.Unmarshal(raw, &body)
		}
	case strings.HasPrefix(contentType, fiber.MIMEApplicationForm):
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			appendValue(body, string(k), string(v))
		})
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		if form, err := c.MultipartForm(); err == nil {
			for k, vs := range form.Value {
				body[k] = append([]string(nil), vs...)
			}
		}
	}
	return body
}

func appendValue(body map[string]any, key, value string) {
	switch existing := body[key].(type) {
	case nil:
		body[key] = value
	case string:
		body[key] = []string{existing, value}
	case []string:
		body[key] = append(existing, value)
	}
}
