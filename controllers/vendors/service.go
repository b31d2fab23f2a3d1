package vendors

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bookaslot/booking-platform/db"
	"github.com/bookaslot/booking-platform/middleware"
	"github.com/bookaslot/booking-platform/models"
	"github.com/bookaslot/booking-platform/utils"
)

// GetServices lists every service the vendor offers, inactive ones
// included; the public booking page filters those out.
func GetServices(c *fiber.Ctx) error {
	vendor := middleware.CurrentVendor(c)

	var services []models.Service
	if err := db.DB.Where("vendor_id = ?", vendor.ID).Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch services",
			Error:   err.Error(),
		})
	}
	return c.JSON(services)
}

type serviceInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Duration    uint     `json:"duration"`
	Price       *float64 `json:"price"`
	IsActive    *bool    `json:"is_active"`
}

// CreateService adds a service to the vendor's catalogue.
func CreateService(c *fiber.Ctx) error {
	vendor := middleware.CurrentVendor(c)

	var input serviceInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Name == "" || input.Duration == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Name and duration are required",
		})
	}

	service := models.Service{
		VendorID:    vendor.ID,
		Name:        input.Name,
		Description: input.Description,
		Duration:    input.Duration,
		IsActive:    true,
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := db.DB.Create(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create service",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(service)
}

// UpdateService edits a service the vendor owns. Deactivating a service
// hides it from new bookings but keeps historical ones valid.
func UpdateService(c *fiber.Ctx) error {
	vendor := middleware.CurrentVendor(c)

	var service models.Service
	if err := db.DB.Where("vendor_id = ?", vendor.ID).
		First(&service, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found",
		})
	}

	var input serviceInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.Name != "" {
		service.Name = input.Name
	}
	if input.Description != "" {
		service.Description = input.Description
	}
	if input.Duration != 0 {
		service.Duration = input.Duration
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := db.DB.Save(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update service",
			Error:   err.Error(),
		})
	}
	return c.JSON(service)
}

// DeleteService soft-deletes a service from the catalogue.
func DeleteService(c *fiber.Ctx) error {
	vendor := middleware.CurrentVendor(c)

	var service models.Service
	if err := db.DB.Where("vendor_id = ?", vendor.ID).
		First(&service, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found",
		})
	}

	if err := db.DB.Delete(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete service",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
