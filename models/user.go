package models

import (
	"time"
)

type User struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Name          string         `json:"name"`
	Email         string         `json:"email" gorm:"unique"`
	Password      string         `json:"password,omitempty"`
	IsVendor      bool           `json:"is_vendor"`
	IsClient      bool           `json:"is_client"`
	VendorProfile *VendorProfile `json:"vendor_profile,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
