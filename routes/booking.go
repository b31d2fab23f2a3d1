package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bookaslot/booking-platform/controllers"
	"github.com/bookaslot/booking-platform/middleware"
)

// SetupBookingRoutes configures the public booking page and payment routes.
func SetupBookingRoutes(app *fiber.App) {
	vendors := app.Group("/vendors")
	vendors.Get("/:slug", controllers.GetVendor)
	vendors.Get("/:slug/slots", controllers.GetAvailableSlots)
	vendors.Get("/:slug/dates", controllers.GetAvailableDates)
	vendors.Post("/:slug/guest-link", controllers.RequestGuestLink)
	vendors.Post("/:slug/guest/:token/bookings", controllers.CreateGuestBooking)
	vendors.Post("/:slug/bookings", middleware.Protected(), controllers.CreateBooking)

	bookings := app.Group("/bookings")
	bookings.Get("/:id", controllers.GetBooking)
	bookings.Post("/:id/payment", controllers.SimulatePayment)
}
