package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/xid"

	"rns-image/internal/config"
	"rns-image/internal/infra/logging"
)

const (
	LivenessPath  = "/ops/health"
	ReadinessPath = "/ops/ready"
)

// Register attaches global middleware to the app. ready backs the readiness
// probe; nil means always ready.
func Register(app *fiber.App, cfg config.Config, ready func() bool) {
	app.Use(recover.New())

	app.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return xid.New().String()
		},
	}))

	app.Use(healthcheck.New(healthcheck.Config{
		LivenessEndpoint:  LivenessPath,
		ReadinessEndpoint: ReadinessPath,
		ReadinessProbe: func(c *fiber.Ctx) bool {
			return ready == nil || ready()
		},
	}))

	app.Use(requestLogger(cfg))
}

// requestLogger logs one line per request. Scrapes of the metrics endpoint
// are skipped.
func requestLogger(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.Metrics.Enabled && c.Path() == cfg.Metrics.Path {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}
		logging.Info("Request handled",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		)
		return err
	}
}
