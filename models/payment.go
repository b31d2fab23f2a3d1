package models

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentEFT  PaymentMethod = "eft"
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

// Payment records the simulated payment attached to a booking. There is no
// gateway behind it: card payments succeed immediately, eft and cash stay
// pending until reconciled by hand.
type Payment struct {
	gorm.Model
	BookingID uint          `json:"booking_id" gorm:"uniqueIndex"`
	Booking   Booking       `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	Method    PaymentMethod `json:"method"`
	Reference string        `json:"reference"`
	Status    PaymentStatus `json:"status"`
}

// RecordPayment simulates payment processing for a booking and persists the
// result. A booking carries at most one payment.
func RecordPayment(db *gorm.DB, booking *Booking, method PaymentMethod, reference string) (*Payment, error) {
	switch method {
	case PaymentEFT, PaymentCard, PaymentCash:
	default:
		return nil, fmt.Errorf("unknown payment method %q", method)
	}

	payment := &Payment{
		BookingID: booking.ID,
		Method:    method,
		Reference: reference,
		Status:    PaymentPending,
	}
	if method == PaymentCard {
		payment.Status = PaymentSuccess
		if payment.Reference == "" {
			payment.Reference = uuid.NewString()
		}
	}
	if err := db.Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}
