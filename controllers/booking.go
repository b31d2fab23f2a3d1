package controllers

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bookaslot/booking-platform/db"
	"github.com/bookaslot/booking-platform/models"
	"github.com/bookaslot/booking-platform/redis"
	"github.com/bookaslot/booking-platform/utils"
)

// guestSigner verifies the capability tokens in guest booking links. It is
// injected from main so tests can install a signer with a known key.
var guestSigner *utils.GuestSigner

func UseGuestSigner(s *utils.GuestSigner) {
	guestSigner = s
}

func vendorBySlug(c *fiber.Ctx) (*models.VendorProfile, error) {
	var vendor models.VendorProfile
	if err := db.DB.Where("slug = ?", c.Params("slug")).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// GetVendor returns the public booking page data: the vendor profile and
// its active services.
func GetVendor(c *fiber.Ctx) error {
	vendor, err := vendorBySlug(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Vendor not found",
		})
	}

	var services []models.Service
	if err := db.DB.Where("vendor_id = ? AND is_active = ?", vendor.ID, true).
		Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch services",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"vendor":   vendor,
		"services": services,
	})
}

// GetAvailableSlots returns the free "HH:MM" slots for a vendor on a date.
func GetAvailableSlots(c *fiber.Ctx) error {
	vendor, err := vendorBySlug(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Vendor not found",
		})
	}

	dateStr := c.Query("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date format, use YYYY-MM-DD",
		})
	}

	if slots, ok := redis.GetCachedSlots(vendor.ID, dateStr); ok {
		return c.JSON(fiber.Map{"date": dateStr, "slots": slots})
	}

	slots, err := utils.ComputeAvailableSlots(db.DB, vendor.ID, date, utils.DefaultSlotLength)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to compute slots",
			Error:   err.Error(),
		})
	}
	redis.CacheSlots(vendor.ID, dateStr, slots)

	return c.JSON(fiber.Map{"date": dateStr, "slots": slots})
}

// GetAvailableDates returns the upcoming dates with at least one free slot.
func GetAvailableDates(c *fiber.Ctx) error {
	vendor, err := vendorBySlug(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Vendor not found",
		})
	}

	days := c.QueryInt("days", 14)
	if days < 1 || days > 90 {
		days = 14
	}

	dates, err := utils.NextAvailableDates(db.DB, vendor, days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to compute available dates",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"dates": dates})
}

// RequestGuestLink emails a signed booking link to a guest, binding their
// email to this vendor for 24 hours.
func RequestGuestLink(c *fiber.Ctx) error {
	vendor, err := vendorBySlug(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Vendor not found",
		})
	}

	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil || input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Email is required",
		})
	}

	token, err := guestSigner.Sign(vendor.ID, input.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create booking link",
			Error:   err.Error(),
		})
	}

	link := fmt.Sprintf("%s/vendors/%s/guest/%s", os.Getenv("BASE_URL"), vendor.Slug, token)
	utils.SendGuestMagicLink(vendor, input.Email, link)

	return c.JSON(fiber.Map{
		"message": "Booking link sent",
		"email":   input.Email,
	})
}

// CreateBooking books a slot as the authenticated client. The acting email
// comes from the session, never from the request body.
func CreateBooking(c *fiber.Ctx) error {
	vendor, err := vendorBySlug(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Vendor not found",
		})
	}

	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "No acting email in session",
		})
	}

	return createBookingFor(c, vendor, email)
}

// CreateGuestBooking books a slot for a guest identified by a signed link.
// The token's signature and embedded vendor must check out before the
// embedded email is trusted.
func CreateGuestBooking(c *fiber.Ctx) error {
	vendor, err := vendorBySlug(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Vendor not found",
		})
	}

	email, err := guestSigner.UnsignFor(c.Params("token"), vendor.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid or expired booking link.",
		})
	}

	return createBookingFor(c, vendor, email)
}

func createBookingFor(c *fiber.Ctx, vendor *models.VendorProfile, customerEmail string) error {
	var input struct {
		ServiceID     uint   `json:"service_id"`
		Date          string `json:"date"`
		Time          string `json:"time"`
		CustomerName  string `json:"customer_name"`
		CustomerPhone string `json:"customer_phone"`
		Notes         string `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.CustomerName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Customer name is required",
		})
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date format, use YYYY-MM-DD",
		})
	}
	slotTime, err := time.Parse("15:04", input.Time)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid time format, use HH:MM",
		})
	}

	var service models.Service
	if err := db.DB.Where("id = ? AND vendor_id = ? AND is_active = ?",
		input.ServiceID, vendor.ID, true).First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found or not offered by this vendor",
		})
	}

	// Form-level check only: the unique index is what actually guards the
	// slot at write time.
	slots, err := utils.ComputeAvailableSlots(db.DB, vendor.ID, date, utils.DefaultSlotLength)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to compute slots",
			Error:   err.Error(),
		})
	}
	if len(slots) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Sorry, this vendor isn't available on that date. Please choose another day.",
		})
	}

	booking := models.Booking{
		VendorID:      vendor.ID,
		ServiceID:     service.ID,
		CustomerName:  input.CustomerName,
		CustomerEmail: customerEmail,
		CustomerPhone: input.CustomerPhone,
		Date:          date.Format("2006-01-02"),
		Time:          slotTime.Format("15:04"),
		Notes:         input.Notes,
		Status:        models.StatusPending,
	}

	if err := models.CreateBooking(db.DB, &booking); err != nil {
		if errors.Is(err, models.ErrSlotTaken) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "That slot was just taken, please pick another time.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create booking",
			Error:   err.Error(),
		})
	}

	redis.InvalidateSlots(vendor.ID, booking.Date)

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// SimulatePayment records the simulated payment for a fresh booking and
// then tells the vendor a request is waiting. Card payments auto-succeed,
// eft stays pending.
func SimulatePayment(c *fiber.Ctx) error {
	var booking models.Booking
	if err := db.DB.Preload("Vendor").Preload("Service").
		First(&booking, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
		})
	}

	var existing models.Payment
	if db.DB.Where("booking_id = ?", booking.ID).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Payment already recorded for this booking",
		})
	}

	var input struct {
		Method    string `json:"method"`
		Reference string `json:"reference"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	payment, err := models.RecordPayment(db.DB, &booking, models.PaymentMethod(input.Method), input.Reference)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to record payment",
			Error:   err.Error(),
		})
	}

	// The booking only becomes vendor-visible work once payment is in.
	utils.Notify(utils.NotifyPendingCreated, &booking, "")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"booking": booking,
		"payment": payment,
	})
}

// GetBooking returns the confirmation details for a booking.
func GetBooking(c *fiber.Ctx) error {
	var booking models.Booking
	if err := db.DB.Preload("Vendor").Preload("Service").Preload("Payment").
		First(&booking, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
		})
	}
	return c.JSON(booking)
}
