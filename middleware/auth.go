package middleware

import (
	"os"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"github.com/bookaslot/booking-platform/db"
	"github.com/bookaslot/booking-platform/models"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return []byte(secret)
}

// Protected validates the bearer token and stashes the acting identity in
// the request locals: userID, email and isVendor.
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtSecret(),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token",
				})
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token claims",
				})
			}

			id, ok := claims["id"].(float64)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token claims",
				})
			}
			c.Locals("userID", uint(id))

			if email, ok := claims["email"].(string); ok {
				c.Locals("email", email)
			}
			if isVendor, ok := claims["is_vendor"].(bool); ok {
				c.Locals("isVendor", isVendor)
			}
			return c.Next()
		},
	})
}

// RequireVendor resolves the vendor profile owned by the authenticated user
// and stores it in locals. Every /vendor route goes through here, so the
// ownership check happens once at the boundary instead of inside each
// handler.
func RequireVendor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(uint)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User ID not found in context",
			})
		}

		var vendor models.VendorProfile
		if err := db.DB.Where("user_id = ?", userID).First(&vendor).Error; err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied. Only vendors can access this endpoint.",
			})
		}

		c.Locals("vendor", &vendor)
		return c.Next()
	}
}

// CurrentVendor returns the vendor resolved by RequireVendor.
func CurrentVendor(c *fiber.Ctx) *models.VendorProfile {
	vendor, _ := c.Locals("vendor").(*models.VendorProfile)
	return vendor
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing or malformed JWT",
		})
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Invalid or expired JWT",
	})
}
