package vendors

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/bookaslot/booking-platform/db"
	"github.com/bookaslot/booking-platform/middleware"
	"github.com/bookaslot/booking-platform/models"
	"github.com/bookaslot/booking-platform/redis"
	"github.com/bookaslot/booking-platform/utils"
)

type availabilityInput struct {
	Weekday   *models.Weekday `json:"weekday"`
	StartTime string          `json:"start_time"`
	EndTime   string          `json:"end_time"`
}

// validate checks the input and rewrites both times to their zero-padded
// spelling, so "9:00" and "09:00" count as the same window.
func (in *availabilityInput) validate() string {
	if in.Weekday == nil || *in.Weekday < models.Monday || *in.Weekday > models.Sunday {
		return "Weekday must be between 0 (Monday) and 6 (Sunday)"
	}
	start, err := time.Parse("15:04", in.StartTime)
	if err != nil {
		return "Invalid start time, use HH:MM"
	}
	end, err := time.Parse("15:04", in.EndTime)
	if err != nil {
		return "Invalid end time, use HH:MM"
	}
	in.StartTime = start.Format("15:04")
	in.EndTime = end.Format("15:04")
	return ""
}

// GetAvailabilities lists the vendor's weekly windows.
func GetAvailabilities(c *fiber.Ctx) error {
	vendor := middleware.CurrentVendor(c)

	var windows []models.Availability
	if err := db.DB.Where("vendor_id = ?", vendor.ID).
		Order("weekday asc, start_time asc").
		Find(&windows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch availability",
			Error:   err.Error(),
		})
	}
	return c.JSON(windows)
}

// CreateAvailability adds a weekly window. The same (weekday, start, end)
// triple can only exist once per vendor; a duplicate gets a 409.
func CreateAvailability(c *fiber.Ctx) error {
	vendor := middleware.CurrentVendor(c)

	var input availabilityInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if msg := input.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{Message: msg})
	}

	window := models.Availability{
		VendorID:  vendor.ID,
		Weekday:   *input.Weekday,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
	}
	if err := db.DB.Create(&window).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "An identical availability window already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create availability",
			Error:   err.Error(),
		})
	}

	redis.InvalidateVendorSlots(vendor.ID)
	return c.Status(fiber.StatusCreated).JSON(window)
}

// UpdateAvailability edits a window the vendor owns.
func UpdateAvailability(c *fiber.Ctx) error {
	vendor := middleware.CurrentVendor(c)

	var window models.Availability
	if err := db.DB.Where("vendor_id = ?", vendor.ID).
		First(&window, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Availability window not found",
		})
	}

	var input availabilityInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if msg := input.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{Message: msg})
	}

	window.Weekday = *input.Weekday
	window.StartTime = input.StartTime
	window.EndTime = input.EndTime
	if err := db.DB.Save(&window).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "An identical availability window already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update availability",
			Error:   err.Error(),
		})
	}

	redis.InvalidateVendorSlots(vendor.ID)
	return c.JSON(window)
}

// DeleteAvailability removes a window. Existing bookings are untouched.
func DeleteAvailability(c *fiber.Ctx) error {
	vendor := middleware.CurrentVendor(c)

	var window models.Availability
	if err := db.DB.Where("vendor_id = ?", vendor.ID).
		First(&window, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Availability window not found",
		})
	}

	if err := db.DB.Delete(&window).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete availability",
			Error:   err.Error(),
		})
	}

	redis.InvalidateVendorSlots(vendor.ID)
	return c.SendStatus(fiber.StatusNoContent)
}
