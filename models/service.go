package models

import (
	"gorm.io/gorm"
)

type Service struct {
	gorm.Model
	VendorID    uint          `json:"vendor_id"`
	Vendor      VendorProfile `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Duration    uint          `json:"duration"` // minutes
	Price       float64       `json:"price"`
	IsActive    bool          `json:"is_active" gorm:"default:true"`
}
