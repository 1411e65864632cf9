package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/christale-kib/taxiconnect-backend/internal/services"
)

// ManagerHandler serves the manager dashboard endpoints.
type ManagerHandler struct {
	managers *services.ManagerService
}

func NewManagerHandler(managers *services.ManagerService) *ManagerHandler {
	return &ManagerHandler{managers: managers}
}

// Dashboard returns the full manager dashboard in one payload.
func (h *ManagerHandler) Dashboard(c *fiber.Ctx) error {
	payload, err := h.managers.Dashboard()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", payload)
}

// Ambassadors lists every BA with derived stats.
func (h *ManagerHandler) Ambassadors(c *fiber.Ctx) error {
	out, err := h.managers.AllAmbassadors()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", out)
}

// Drivers lists every driver with derived stats.
func (h *ManagerHandler) Drivers(c *fiber.Ctx) error {
	out, err := h.managers.AllDrivers()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", out)
}

// Alerts returns the current coaching alerts.
func (h *ManagerHandler) Alerts(c *fiber.Ctx) error {
	ambassadors, err := h.managers.AllAmbassadors()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", services.DeriveAlerts(ambassadors))
}

// Config returns the objective configuration.
func (h *ManagerHandler) Config(c *fiber.Ctx) error {
	payload, err := h.managers.ObjectiveConfig()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", payload)
}

// UpdateConfig applies a partial objective-config update.
func (h *ManagerHandler) UpdateConfig(c *fiber.Ctx) error {
	var update services.ConfigUpdate
	if err := c.BodyParser(&update); err != nil {
		return badRequest(c, "Corps de requête invalide.")
	}
	if err := h.managers.UpdateObjectiveConfig(&update); err != nil {
		return fail(c, err)
	}
	payload, err := h.managers.ObjectiveConfig()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Configuration enregistrée.", payload)
}
