package models

import "time"

// Weekday index used across the booking domain: 0=Monday .. 6=Sunday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// WeekdayOf maps a date to the domain weekday index (Go's time.Weekday
// starts the week on Sunday).
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// Availability is a recurring weekly window during which a vendor accepts
// bookings. A vendor may have several windows on the same weekday, and
// windows are allowed to overlap. Deletes are hard deletes; a soft-deleted
// row would keep occupying the unique triple and block re-creating the
// same window.
type Availability struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	VendorID  uint          `json:"vendor_id" gorm:"uniqueIndex:idx_vendor_window"`
	Vendor    VendorProfile `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	Weekday   Weekday       `json:"weekday" gorm:"uniqueIndex:idx_vendor_window"`
	StartTime string        `json:"start_time" gorm:"uniqueIndex:idx_vendor_window"` // "HH:MM" 24h
	EndTime   string        `json:"end_time" gorm:"uniqueIndex:idx_vendor_window"`   // "HH:MM" 24h
}
