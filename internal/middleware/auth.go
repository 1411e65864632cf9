package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/christale-kib/taxiconnect-backend/internal/models"
	"github.com/christale-kib/taxiconnect-backend/internal/services"
)

// Locals keys set by RequireAuth.
const (
	LocalAccount = "account"
	LocalClaims  = "claims"
)

// RequireAuth validates the bearer token and loads the account behind
// it into the request locals.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authentification requise.",
			})
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Session expirée. Reconnectez-vous.",
			})
		}

		account, err := auth.AccountByEmail(claims.Email)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Compte introuvable.",
			})
		}

		c.Locals(LocalClaims, claims)
		c.Locals(LocalAccount, account)
		return c.Next()
	}
}

// RequireRole rejects authenticated requests whose account carries a
// different role. Must run after RequireAuth.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		account, ok := c.Locals(LocalAccount).(*models.Account)
		if !ok || account.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Accès refusé.",
			})
		}
		return c.Next()
	}
}

// Account returns the authenticated account from the request locals.
func Account(c *fiber.Ctx) *models.Account {
	account, _ := c.Locals(LocalAccount).(*models.Account)
	return account
}
