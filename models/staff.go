package models

import (
	"gorm.io/gorm"
)

// StaffMember links an account to a vendor's team. Scheduling is still
// vendor-wide; staff are not assigned to bookings yet.
type StaffMember struct {
	gorm.Model
	UserID   uint          `json:"user_id"`
	User     User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	VendorID uint          `json:"vendor_id"`
	Vendor   VendorProfile `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	Role     string        `json:"role"`
	Phone    string        `json:"phone"`
}
