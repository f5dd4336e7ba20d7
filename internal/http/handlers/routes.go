package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"beautyshop/internal/apperr"
	"beautyshop/internal/config"
	applog "beautyshop/internal/log"
)

// NewApp builds the fiber app with middleware and every route mounted.
func NewApp(cfg config.Config, d *Deps) *fiber.App {
	bodyLimit := cfg.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = 1 << 20 // 1 MiB
	}
	app := fiber.New(fiber.Config{
		AppName:      "beautyshop",
		BodyLimit:    bodyLimit,
		ErrorHandler: ErrorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(applog.Access())
	app.Use(d.Metrics.Middleware())
	app.Use(recover.New())
	app.Use(helmet.New())
	if cfg.RateLimitPerMinute > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitPerMinute,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				p := c.Path()
				return p == "/healthz" || p == "/metrics"
			},
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.global.hit", nil)
				return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded, retry soon")
			},
		}))
	}

	// ---------- Ops ----------
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := d.Store.DB().PingContext(c.UserContext()); err != nil {
			applog.Error(c, "health.db", err, nil)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"ok": false})
		}
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/metrics", d.Metrics.Handler())

	api := app.Group("/api")

	// Auth routes (login throttled)
	auth := api.Group("/auth")
	auth.Post("/register", d.AuthHandler.Register)
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return fiber.NewError(fiber.StatusTooManyRequests, "too many attempts, please try again later")
		},
	}), d.AuthHandler.Login)

	// Catalog
	api.Get("/products", d.CatalogHandler.ListProducts)
	api.Get("/products/:id", d.CatalogHandler.GetProduct)
	api.Get("/services", d.CatalogHandler.ListServices)

	// Orders & bookings
	api.Post("/orders", d.OrderHandler.Place)
	api.Get("/orders/:id", d.OrderHandler.Get)
	api.Post("/orders/:id/cancel", d.OrderHandler.Cancel)
	api.Get("/customers/:id/orders", d.OrderHandler.ListByCustomer)
	api.Post("/bookings", d.BookingHandler.Create)

	// Admin
	admin := api.Group("/admin", RequireAdmin(cfg.AdminKey))
	admin.Post("/products", d.CatalogHandler.CreateProduct)
	admin.Post("/services", d.CatalogHandler.CreateService)
	admin.Get("/orders", d.OrderHandler.ListLatest)
	admin.Post("/orders/:id/status", d.OrderHandler.UpdateStatus)
	admin.Post("/bookings/:id/status", d.BookingHandler.UpdateStatus)
	admin.Post("/bookings/:id/pay", d.BookingHandler.MarkPaid)
	admin.Post("/sales", d.AdminHandler.RecordSale)
	admin.Get("/sales", d.AdminHandler.ListSales)
	admin.Get("/reports/sales", d.AdminHandler.SalesSummary)
	admin.Get("/reports/profit-loss", d.AdminHandler.ProfitLoss)
	admin.Get("/summary", d.AdminHandler.Summary)
	admin.Get("/alerts", d.AdminHandler.Alerts)

	// 404
	app.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			applog.Info(c, "route.not_found", nil)
		}
		return apperr.NotFound("route", c.Method()+" "+c.Path())
	})
	return app
}
