package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/christale-kib/taxiconnect-backend/internal/models"
	"github.com/christale-kib/taxiconnect-backend/internal/services"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterBA signs up a new brand ambassador.
func (h *AuthHandler) RegisterBA(c *fiber.Ctx) error {
	var req models.AmbassadorRegistration
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Corps de requête invalide.")
	}
	result, err := h.auth.RegisterAmbassador(&req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Compte créé.", result)
}

// RegisterTaxi signs up a new driver.
func (h *AuthHandler) RegisterTaxi(c *fiber.Ctx) error {
	var req models.TaxiRegistration
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Corps de requête invalide.")
	}
	result, err := h.auth.RegisterTaxi(&req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Compte créé.", result)
}

// Login authenticates any role.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var creds models.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return badRequest(c, "Corps de requête invalide.")
	}
	result, err := h.auth.Login(&creds)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Connexion réussie.", result)
}
