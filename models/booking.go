package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	// StatusCompleted is part of the lifecycle but nothing transitions into
	// it yet; kept so historical data and future flows have a terminal state.
	StatusCompleted BookingStatus = "completed"
)

var (
	// ErrSlotTaken is returned when another booking already holds the
	// (vendor, service, date, time) slot. It is an expected outcome of two
	// clients racing for the same slot, not a fault.
	ErrSlotTaken = errors.New("slot already booked")

	// ErrNotPending is returned when a client tries to cancel a booking
	// that has already been confirmed, cancelled or completed.
	ErrNotPending = errors.New("only pending bookings can be cancelled")
)

// Booking is a claim on a single slot. The unique index spans every status,
// so a cancelled booking keeps blocking its slot.
type Booking struct {
	gorm.Model
	VendorID       uint          `json:"vendor_id" gorm:"uniqueIndex:idx_booking_slot"`
	Vendor         VendorProfile `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	ServiceID      uint          `json:"service_id" gorm:"uniqueIndex:idx_booking_slot"`
	Service        Service       `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	CustomerName   string        `json:"customer_name"`
	CustomerEmail  string        `json:"customer_email"`
	CustomerPhone  string        `json:"customer_phone"`
	Date           string        `json:"date" gorm:"uniqueIndex:idx_booking_slot"` // "YYYY-MM-DD"
	Time           string        `json:"time" gorm:"uniqueIndex:idx_booking_slot"` // "HH:MM" 24h
	Notes          string        `json:"notes"`
	Status         BookingStatus `json:"status"`
	MeetingURL     string        `json:"meeting_url"`
	MeetingDetails string        `json:"meeting_details"`
	ReminderSentAt *time.Time    `json:"reminder_sent_at,omitempty"`
	Payment        *Payment      `json:"payment,omitempty" gorm:"foreignKey:BookingID"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusPending
	}
	return nil
}

// CreateBooking inserts a booking inside a transaction. The slot engine's
// availability read and this write are not atomic, so the unique index on
// (vendor, service, date, time) is the source of truth; a duplicate insert
// surfaces as ErrSlotTaken.
func CreateBooking(db *gorm.DB, booking *Booking) error {
	// Slots are compared as strings, so "9:00" and "09:00" must land on the
	// same key before they reach the index.
	if t, err := time.Parse("15:04", booking.Time); err == nil {
		booking.Time = t.Format("15:04")
	}
	if d, err := time.Parse("2006-01-02", booking.Date); err == nil {
		booking.Date = d.Format("2006-01-02")
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing Booking
		probe := tx.Where(
			"vendor_id = ? AND service_id = ? AND date = ? AND time = ?",
			booking.VendorID, booking.ServiceID, booking.Date, booking.Time,
		).Take(&existing)
		if probe.Error == nil {
			return ErrSlotTaken
		}
		if !errors.Is(probe.Error, gorm.ErrRecordNotFound) {
			return probe.Error
		}
		return tx.Create(booking).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlotTaken
	}
	return err
}

// Confirm moves a pending booking to confirmed. Any other starting status
// is left untouched; the bool reports whether a transition happened.
func (b *Booking) Confirm(tx *gorm.DB) (bool, error) {
	if b.Status != StatusPending {
		return false, nil
	}
	b.Status = StatusConfirmed
	if err := tx.Save(b).Error; err != nil {
		return false, err
	}
	return true, nil
}

// Reject is the vendor-side cancellation of a pending booking. Like
// Confirm it is a no-op from any other status.
func (b *Booking) Reject(tx *gorm.DB) (bool, error) {
	if b.Status != StatusPending {
		return false, nil
	}
	b.Status = StatusCancelled
	if err := tx.Save(b).Error; err != nil {
		return false, err
	}
	return true, nil
}

// CancelByClient cancels a pending booking on behalf of the customer.
// Clients may not cancel confirmed bookings; that is a product rule, so the
// caller gets ErrNotPending rather than a silent no-op.
func (b *Booking) CancelByClient(tx *gorm.DB) error {
	if b.Status != StatusPending {
		return ErrNotPending
	}
	b.Status = StatusCancelled
	return tx.Save(b).Error
}

// SetMeetingDetails attaches or replaces the meeting link for a booking.
// Allowed at any status and implies no transition.
func (b *Booking) SetMeetingDetails(tx *gorm.DB, url, details string) error {
	b.MeetingURL = url
	b.MeetingDetails = details
	return tx.Save(b).Error
}
