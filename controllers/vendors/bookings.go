package vendors

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bookaslot/booking-platform/db"
	"github.com/bookaslot/booking-platform/middleware"
	"github.com/bookaslot/booking-platform/models"
	"github.com/bookaslot/booking-platform/utils"
)

// GetBookings returns the vendor's bookings, newest first.
func GetBookings(c *fiber.Ctx) error {
	vendor := middleware.CurrentVendor(c)

	query := db.DB.Preload("Service").Preload("Payment").
		Where("vendor_id = ?", vendor.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Order("created_at desc").Find(&bookings).Error; err != nil {
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

// GetCalendar groups the vendor's bookings for the coming week by date.
func GetCalendar(c *fiber.Ctx) error {
	vendor := middleware.CurrentVendor(c)
	today := time.Now()

	calendar := make([]fiber.Map, 0, 7)
	for i := 0; i < 7; i++ {
		date := today.AddDate(0, 0, i).Format("2006-01-02")

		var bookings []models.Booking
		if err := db.DB.Preload("Service").
			Where("vendor_id = ? AND date = ?", vendor.ID, date).
			Order("time asc").
			Find(&bookings).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to fetch calendar",
				Error:   err.Error(),
			})
		}

		calendar = append(calendar, fiber.Map{
			"date":     date,
			"bookings": bookings,
		})
	}

	return c.JSON(fiber.Map{"week": calendar})
}

func ownBooking(c *fiber.Ctx) (*models.Booking, error) {
	vendor := middleware.CurrentVendor(c)

	var booking models.Booking
	err := db.DB.Preload("Vendor").Preload("Service").
		Where("vendor_id = ?", vendor.ID).
		First(&booking, c.Params("id")).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// AcceptBooking confirms a pending booking and notifies both sides. A
// booking that already left pending is returned unchanged.
func AcceptBooking(c *fiber.Ctx) error {
	booking, err := ownBooking(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
		})
	}

	changed, err := booking.Confirm(db.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to confirm booking",
			Error:   err.Error(),
		})
	}

	if changed {
		utils.Notify(utils.NotifyConfirmed, booking, "")
	}

	return c.JSON(fiber.Map{
		"booking": booking,
		"changed": changed,
	})
}

// RejectBooking cancels a pending booking on the vendor's behalf and lets
// the customer know.
func RejectBooking(c *fiber.Ctx) error {
	booking, err := ownBooking(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
		})
	}

	changed, err := booking.Reject(db.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to reject booking",
			Error:   err.Error(),
		})
	}

	if changed {
		utils.Notify(utils.NotifyCancelled, booking, "Booking rejected by vendor.")
	}

	return c.JSON(fiber.Map{
		"booking": booking,
		"changed": changed,
	})
}

// UpdateMeetingDetails attaches a meeting link and notes to a booking.
// Allowed at any status.
func UpdateMeetingDetails(c *fiber.Ctx) error {
	booking, err := ownBooking(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
		})
	}

	var input struct {
		MeetingURL     string `json:"meeting_url"`
		MeetingDetails string `json:"meeting_details"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if err := booking.SetMeetingDetails(db.DB, input.MeetingURL, input.MeetingDetails); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update meeting details",
			Error:   err.Error(),
		})
	}

	return c.JSON(booking)
}
