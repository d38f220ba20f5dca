package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/assessly-platform/assessly-api/internal/config"
	"github.com/assessly-platform/assessly-api/internal/handler"
	"github.com/assessly-platform/assessly-api/internal/middleware"
	"github.com/assessly-platform/assessly-api/internal/models"
	"github.com/assessly-platform/assessly-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	UserHandler        *handler.UserHandler
	ExamHandler        *handler.ExamHandler
	CourseHandler      *handler.CourseHandler
	BlogHandler        *handler.BlogHandler
	PaymentHandler     *handler.PaymentHandler
	ExamSessionHandler *handler.ExamSessionHandler
	ResultHandler      *handler.ResultHandler
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application. The route shapes
// match the public surface the frontend already consumes.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil.
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	public := app.Group("")
	protected := app.Group("", jwtMiddleware)
	admin := app.Group("", jwtMiddleware, middleware.RequireRole(models.UserRoleAdmin))

	if deps.UserHandler != nil {
		deps.UserHandler.Register(public, admin)
	}
	if deps.ExamHandler != nil {
		deps.ExamHandler.Register(public, admin)
	}
	if deps.CourseHandler != nil {
		deps.CourseHandler.Register(public, protected, admin)
	}
	if deps.BlogHandler != nil {
		deps.BlogHandler.Register(public, admin)
	}
	if deps.PaymentHandler != nil {
		deps.PaymentHandler.Register(public, protected)
	}
	if deps.ExamSessionHandler != nil {
		deps.ExamSessionHandler.Register(protected)
	}
	if deps.ResultHandler != nil {
		deps.ResultHandler.Register(public, protected, admin)
	}
}
