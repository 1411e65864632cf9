package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/christale-kib/taxiconnect-backend/internal/handlers"
	"github.com/christale-kib/taxiconnect-backend/internal/middleware"
	"github.com/christale-kib/taxiconnect-backend/internal/models"
	"github.com/christale-kib/taxiconnect-backend/internal/services"
)

// Handlers bundles everything SetupRoutes wires up.
type Handlers struct {
	Auth    *handlers.AuthHandler
	BA      *handlers.BAHandler
	Taxi    *handlers.TaxiHandler
	Manager *handlers.ManagerHandler
	Health  *handlers.HealthHandler
}

// SetupRoutes configures all API routes.
func SetupRoutes(app *fiber.App, h *Handlers, auth *services.AuthService) {

	// Root endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to TaxiConnect Backend!",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"health":  "/health",
				"auth":    "/api/auth",
				"ba":      "/api/ba",
				"taxi":    "/api/taxi",
				"manager": "/api/manager",
			},
		})
	})

	app.Get("/health", h.Health.Check)

	api := app.Group("/api")

	// Public auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register/ba", h.Auth.RegisterBA)
	authGroup.Post("/register/taxi", h.Auth.RegisterTaxi)
	authGroup.Post("/login", h.Auth.Login)

	// Ambassador routes
	ba := api.Group("/ba", middleware.RequireAuth(auth), middleware.RequireRole(models.RoleAmbassador))
	ba.Get("/dashboard", h.BA.Dashboard)
	ba.Get("/leaderboard", h.BA.Leaderboard)
	ba.Get("/recruits", h.BA.RecentRecruits)
	ba.Get("/zones", h.BA.Zones)
	ba.Get("/challenges", h.BA.Challenges)
	ba.Post("/enroll/driver", h.BA.EnrollDriver)
	ba.Post("/enroll/passenger", h.BA.EnrollPassenger)
	ba.Get("/balance", h.BA.Balance)
	ba.Post("/withdrawals", h.BA.RequestWithdrawal)
	ba.Get("/withdrawals", h.BA.Withdrawals)

	// Driver routes
	taxi := api.Group("/taxi", middleware.RequireAuth(auth), middleware.RequireRole(models.RoleTaxi))
	taxi.Get("/dashboard", h.Taxi.Dashboard)
	taxi.Get("/leaderboard", h.Taxi.Leaderboard)
	taxi.Get("/recruits", h.Taxi.RecentRecruits)
	taxi.Post("/enroll", h.Taxi.EnrollPeer)
	taxi.Get("/payments", h.Taxi.Payments)
	taxi.Post("/payments", h.Taxi.CreatePayment)

	// Manager routes
	manager := api.Group("/manager", middleware.RequireAuth(auth), middleware.RequireRole(models.RoleManager))
	manager.Get("/dashboard", h.Manager.Dashboard)
	manager.Get("/ambassadors", h.Manager.Ambassadors)
	manager.Get("/drivers", h.Manager.Drivers)
	manager.Get("/alerts", h.Manager.Alerts)
	manager.Get("/config", h.Manager.Config)
	manager.Put("/config", h.Manager.UpdateConfig)
}
