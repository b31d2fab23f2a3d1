package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bookaslot/booking-platform/controllers/vendors"
	"github.com/bookaslot/booking-platform/middleware"
)

// SetupVendorRoutes configures the vendor dashboard routes. Every route
// resolves the vendor profile once via RequireVendor.
func SetupVendorRoutes(app *fiber.App) {
	vendor := app.Group("/vendor", middleware.Protected(), middleware.RequireVendor())

	vendor.Get("/bookings", vendors.GetBookings)
	vendor.Get("/calendar", vendors.GetCalendar)
	vendor.Post("/bookings/:id/accept", vendors.AcceptBooking)
	vendor.Post("/bookings/:id/reject", vendors.RejectBooking)
	vendor.Patch("/bookings/:id/meeting", vendors.UpdateMeetingDetails)

	vendor.Get("/availability", vendors.GetAvailabilities)
	vendor.Post("/availability", vendors.CreateAvailability)
	vendor.Patch("/availability/:id", vendors.UpdateAvailability)
	vendor.Delete("/availability/:id", vendors.DeleteAvailability)

	vendor.Get("/services", vendors.GetServices)
	vendor.Post("/services", vendors.CreateService)
	vendor.Patch("/services/:id", vendors.UpdateService)
	vendor.Delete("/services/:id", vendors.DeleteService)
}
