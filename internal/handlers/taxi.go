package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/christale-kib/taxiconnect-backend/internal/middleware"
	"github.com/christale-kib/taxiconnect-backend/internal/models"
	"github.com/christale-kib/taxiconnect-backend/internal/services"
)

// TaxiHandler serves the driver-facing endpoints.
type TaxiHandler struct {
	auth       *services.AuthService
	taxis      *services.TaxiService
	enrollment *services.EnrollmentService
}

func NewTaxiHandler(auth *services.AuthService, taxis *services.TaxiService, enrollment *services.EnrollmentService) *TaxiHandler {
	return &TaxiHandler{auth: auth, taxis: taxis, enrollment: enrollment}
}

func (h *TaxiHandler) driver(c *fiber.Ctx) (*models.Driver, error) {
	return h.auth.DriverForAccount(middleware.Account(c))
}

// Dashboard returns the driver dashboard stats.
func (h *TaxiHandler) Dashboard(c *fiber.Ctx) error {
	driver, err := h.driver(c)
	if err != nil {
		return fail(c, err)
	}
	payload, err := h.taxis.Dashboard(driver)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", payload)
}

// Leaderboard ranks drivers by payment count.
func (h *TaxiHandler) Leaderboard(c *fiber.Ctx) error {
	entries, err := h.taxis.Leaderboard()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", entries)
}

// RecentRecruits lists the taxis this driver enrolled.
func (h *TaxiHandler) RecentRecruits(c *fiber.Ctx) error {
	driver, err := h.driver(c)
	if err != nil {
		return fail(c, err)
	}
	items, err := h.taxis.RecentRecruits(driver)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", items)
}

// EnrollPeer records a driver recruited by this driver.
func (h *TaxiHandler) EnrollPeer(c *fiber.Ctx) error {
	driver, err := h.driver(c)
	if err != nil {
		return fail(c, err)
	}
	var req models.DriverEnrollment
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Corps de requête invalide.")
	}
	recruit, err := h.enrollment.EnrollPeerDriver(driver, &req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Chauffeur enrôlé.", recruit)
}

// Payments lists the driver's latest transactions.
func (h *TaxiHandler) Payments(c *fiber.Ctx) error {
	driver, err := h.driver(c)
	if err != nil {
		return fail(c, err)
	}
	items, err := h.taxis.RecentPayments(driver)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", items)
}

// CreatePayment records a ride payment.
func (h *TaxiHandler) CreatePayment(c *fiber.Ctx) error {
	driver, err := h.driver(c)
	if err != nil {
		return fail(c, err)
	}
	var req models.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Corps de requête invalide.")
	}
	tx, err := h.taxis.CreatePayment(driver, &req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Paiement enregistré.", fiber.Map{"reference": tx.Reference})
}
