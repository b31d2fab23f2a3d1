package client

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/bookaslot/booking-platform/db"
	"github.com/bookaslot/booking-platform/models"
	"github.com/bookaslot/booking-platform/utils"
)

func actingEmail(c *fiber.Ctx) (string, bool) {
	email, ok := c.Locals("email").(string)
	return email, ok && email != ""
}

// GetBookings lists the bookings made with the client's email, most recent
// date first. Guest bookings made with the same address show up too; there
// is no separate account linkage.
func GetBookings(c *fiber.Ctx) error {
	email, ok := actingEmail(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "No acting email in session",
		})
	}

	var bookings []models.Booking
	if err := db.DB.Preload("Vendor").Preload("Service").Preload("Payment").
		Where("customer_email = ?", email).
		Order("date desc, time desc").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch bookings",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// CancelBooking lets a client cancel their own pending booking. Anything
// past pending is off-limits, so the vendor's schedule stays predictable
// once a booking has been confirmed.
func CancelBooking(c *fiber.Ctx) error {
	email, ok := actingEmail(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "No acting email in session",
		})
	}

	var booking models.Booking
	if err := db.DB.Preload("Vendor").Preload("Service").
		Where("customer_email = ?", email).
		First(&booking, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
		})
	}

	if err := booking.CancelByClient(db.DB); err != nil {
		if errors.Is(err, models.ErrNotPending) {
			return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
				Message: "You can only cancel pending bookings.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to cancel booking",
			Error:   err.Error(),
		})
	}

	utils.Notify(utils.NotifyCancelled, &booking, "Booking cancelled by client.")

	return c.JSON(booking)
}
