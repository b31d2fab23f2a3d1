package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bookaslot/booking-platform/controllers/client"
	"github.com/bookaslot/booking-platform/middleware"
)

// SetupClientRoutes configures the logged-in client routes.
func SetupClientRoutes(app *fiber.App) {
	clientGroup := app.Group("/client", middleware.Protected())
	clientGroup.Get("/bookings", client.GetBookings)
	clientGroup.Post("/bookings/:id/cancel", client.CancelBooking)
}
