package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rns-image/internal/config"
	"rns-image/internal/http/handlers"
	"rns-image/internal/http/middleware"
	"rns-image/internal/infra/logging"
)

// Deps are the process-scoped values handed to every request.
type Deps struct {
	Config   config.Config
	Renderer handlers.Renderer
	// Ready backs the readiness probe. Nil means ready.
	Ready func() bool
}

// New creates and configures a new Fiber app instance
func New(deps Deps) *fiber.App {
	cfg := deps.Config
	app := fiber.New(fiber.Config{
		Prefork:               cfg.Server.Prefork,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			logging.Warn("Request failed", "path", c.Path(), "status", code, "error_message", msg)

			return c.Status(code).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    code,
					"message": msg,
				},
			})
		},
	})

	middleware.Register(app, cfg, deps.Ready)
	RegisterRoutes(app, deps)

	// Ensure all responses, including 404s, return JSON
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not Found")
	})

	return app
}

// RegisterRoutes mounts all route handlers to the app
func RegisterRoutes(app *fiber.App, deps Deps) {
	if deps.Config.Metrics.Enabled {
		app.Get(deps.Config.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	svc := handlers.NewImageService(deps.Renderer)
	app.Get("/:name?", svc.HandleImage)
}
