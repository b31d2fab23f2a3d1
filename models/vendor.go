package models

import (
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// VendorProfile is the tenant boundary: services, availability windows and
// bookings all hang off a vendor.
type VendorProfile struct {
	gorm.Model
	UserID         uint           `json:"user_id"`
	BusinessName   string         `json:"business_name"`
	Slug           string         `json:"slug" gorm:"unique"`
	ContactEmail   string         `json:"contact_email"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	Timezone       string         `json:"timezone" gorm:"default:Africa/Johannesburg"`
	Services       []Service      `json:"services,omitempty" gorm:"foreignKey:VendorID"`
	Availabilities []Availability `json:"availabilities,omitempty" gorm:"foreignKey:VendorID"`
	Bookings       []Booking      `json:"bookings,omitempty" gorm:"foreignKey:VendorID"`
}

func (v *VendorProfile) BeforeCreate(tx *gorm.DB) error {
	if v.Slug == "" {
		v.Slug = Slugify(v.BusinessName)
	}
	return nil
}

// Slugify lowercases the name and collapses anything that is not a letter
// or digit into single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
