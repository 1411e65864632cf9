package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/christale-kib/taxiconnect-backend/internal/middleware"
	"github.com/christale-kib/taxiconnect-backend/internal/models"
	"github.com/christale-kib/taxiconnect-backend/internal/services"
)

// BAHandler serves the ambassador-facing endpoints.
type BAHandler struct {
	auth        *services.AuthService
	ambassadors *services.AmbassadorService
	enrollment  *services.EnrollmentService
	withdrawals *services.WithdrawalService
}

func NewBAHandler(
	auth *services.AuthService,
	ambassadors *services.AmbassadorService,
	enrollment *services.EnrollmentService,
	withdrawals *services.WithdrawalService,
) *BAHandler {
	return &BAHandler{
		auth:        auth,
		ambassadors: ambassadors,
		enrollment:  enrollment,
		withdrawals: withdrawals,
	}
}

// ambassador resolves the BA profile of the authenticated account.
func (h *BAHandler) ambassador(c *fiber.Ctx) (*models.Ambassador, error) {
	return h.auth.AmbassadorForAccount(middleware.Account(c))
}

// Dashboard returns the BA dashboard stats.
func (h *BAHandler) Dashboard(c *fiber.Ctx) error {
	amb, err := h.ambassador(c)
	if err != nil {
		return fail(c, err)
	}
	payload, err := h.ambassadors.Dashboard(amb)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", payload)
}

// Leaderboard returns the top ambassadors by referral count.
func (h *BAHandler) Leaderboard(c *fiber.Ctx) error {
	entries, err := h.ambassadors.Leaderboard()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", entries)
}

// RecentRecruits lists the BA's latest enrollments.
func (h *BAHandler) RecentRecruits(c *fiber.Ctx) error {
	amb, err := h.ambassador(c)
	if err != nil {
		return fail(c, err)
	}
	items, err := h.ambassadors.RecentRecruits(amb)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", items)
}

// Challenges lists the currently open challenges with the BA's progress.
func (h *BAHandler) Challenges(c *fiber.Ctx) error {
	amb, err := h.ambassador(c)
	if err != nil {
		return fail(c, err)
	}
	items, err := h.ambassadors.Challenges(amb)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", items)
}

// Zones lists the operating zones for the enrollment form.
func (h *BAHandler) Zones(c *fiber.Ctx) error {
	zones, err := h.ambassadors.Zones()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", zones)
}

// EnrollDriver records a new driver under the BA.
func (h *BAHandler) EnrollDriver(c *fiber.Ctx) error {
	amb, err := h.ambassador(c)
	if err != nil {
		return fail(c, err)
	}
	var req models.DriverEnrollment
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Corps de requête invalide.")
	}
	driver, err := h.enrollment.EnrollDriver(amb, &req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Chauffeur enrôlé.", driver)
}

// EnrollPassenger records a new passenger under the BA.
func (h *BAHandler) EnrollPassenger(c *fiber.Ctx) error {
	amb, err := h.ambassador(c)
	if err != nil {
		return fail(c, err)
	}
	var req models.PassengerEnrollment
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Corps de requête invalide.")
	}
	passenger, err := h.enrollment.EnrollPassenger(amb, &req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Passager enrôlé.", passenger)
}

// Balance returns the BA's withdrawable balance.
func (h *BAHandler) Balance(c *fiber.Ctx) error {
	amb, err := h.ambassador(c)
	if err != nil {
		return fail(c, err)
	}
	available, err := h.withdrawals.AvailableBalance(amb)
	if err != nil {
		return fail(c, err)
	}
	availableFloat, _ := available.Float64()
	return ok(c, "", fiber.Map{"available": availableFloat})
}

// withdrawalRequest is the payout request body.
type withdrawalRequest struct {
	Amount float64 `json:"amount"`
	Phone  string  `json:"phone"`
}

// RequestWithdrawal records a payout request against the balance.
func (h *BAHandler) RequestWithdrawal(c *fiber.Ctx) error {
	amb, err := h.ambassador(c)
	if err != nil {
		return fail(c, err)
	}
	var req withdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Corps de requête invalide.")
	}
	reference, err := h.withdrawals.Create(amb, req.Amount, req.Phone)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Demande de retrait enregistrée.", fiber.Map{"reference": reference})
}

// Withdrawals lists the BA's withdrawal history.
func (h *BAHandler) Withdrawals(c *fiber.Ctx) error {
	amb, err := h.ambassador(c)
	if err != nil {
		return fail(c, err)
	}
	items, err := h.withdrawals.History(amb)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", items)
}
