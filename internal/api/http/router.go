package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/catalog-service/internal/api/http/handlers"
	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Customers      *handlers.CustomersHandler
	Stock          *handlers.StockHandler
	AuthMiddleware *auth.Middleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/confirm", cfg.Auth.Confirm)
	authGroup.Post("/signin", cfg.Auth.SignIn)
	authGroup.Post("/signout", cfg.Auth.SignOut)
	authGroup.Get("/protected", cfg.AuthMiddleware.Authenticate, cfg.Auth.Protected)

	customers := app.Group("/customer", cfg.AuthMiddleware.Extract)
	customers.Get("/", cfg.Customers.List)
	customers.Post("/", cfg.Customers.Create)
	customers.Get("/:customerID/:name", cfg.Customers.Get)
	customers.Put("/:customerID/:name", cfg.Customers.Update)
	customers.Delete("/:customerID/:name", cfg.Customers.Delete)

	stock := app.Group("/stock", cfg.AuthMiddleware.Extract)
	stock.Get("/", cfg.Stock.List)
	stock.Post("/", cfg.Stock.Create)
	stock.Get("/:iceCreamID", cfg.Stock.Get)
	stock.Put("/:iceCreamID", cfg.Stock.Update)
	stock.Delete("/:iceCreamID", cfg.Stock.Delete)
}
