package utils

import (
	"fmt"
	"time"

	"github.com/bookaslot/booking-platform/models"
	"gorm.io/gorm"
)

// DefaultSlotLength is the step used when the caller does not ask for a
// specific slot size.
const DefaultSlotLength = 30 * time.Minute

// ComputeAvailableSlots returns the bookable "HH:MM" slots for a vendor on
// targetDate. For every availability window on that weekday it steps from
// the window start in slotLength increments and keeps each step that still
// fits inside the window and is not already booked.
//
// The booked set is every booking time the vendor holds on that date, in
// any status and for any service: a cancelled booking keeps its slot, and
// two services cannot share a time. Overlapping windows are not merged, so
// a time covered by two windows shows up twice.
func ComputeAvailableSlots(db *gorm.DB, vendorID uint, targetDate time.Time, slotLength time.Duration) ([]string, error) {
	var windows []models.Availability
	if err := db.Where("vendor_id = ? AND weekday = ?", vendorID, models.WeekdayOf(targetDate)).
		Find(&windows).Error; err != nil {
		return nil, err
	}

	var times []string
	if err := db.Model(&models.Booking{}).
		Where("vendor_id = ? AND date = ?", vendorID, targetDate.Format("2006-01-02")).
		Pluck("time", &times).Error; err != nil {
		return nil, err
	}
	booked := make(map[string]bool, len(times))
	for _, t := range times {
		booked[t] = true
	}

	step := int(slotLength.Minutes())
	if step <= 0 {
		return nil, fmt.Errorf("slot length must be positive, got %v", slotLength)
	}

	slots := []string{}
	for _, window := range windows {
		start, err := minutesOfDay(window.StartTime)
		if err != nil {
			return nil, fmt.Errorf("window %d: %w", window.ID, err)
		}
		end, err := minutesOfDay(window.EndTime)
		if err != nil {
			return nil, fmt.Errorf("window %d: %w", window.ID, err)
		}
		for current := start; current+step <= end; current += step {
			slot := fmt.Sprintf("%02d:%02d", current/60, current%60)
			if !booked[slot] {
				slots = append(slots, slot)
			}
		}
	}
	return slots, nil
}

// IsDateAvailable reports whether the vendor has at least one free slot on
// the date. A weekday without any availability windows is never available.
func IsDateAvailable(db *gorm.DB, vendorID uint, targetDate time.Time) (bool, error) {
	var count int64
	if err := db.Model(&models.Availability{}).
		Where("vendor_id = ? AND weekday = ?", vendorID, models.WeekdayOf(targetDate)).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}

	slots, err := ComputeAvailableSlots(db, vendorID, targetDate, DefaultSlotLength)
	if err != nil {
		return false, err
	}
	return len(slots) > 0, nil
}

// NextAvailableDates walks the next `days` dates starting from the vendor's
// local today and returns, ascending, those with at least one free slot.
func NextAvailableDates(db *gorm.DB, vendor *models.VendorProfile, days int) ([]string, error) {
	today := time.Now().In(vendorLocation(vendor))

	dates := []string{}
	for i := 0; i < days; i++ {
		d := today.AddDate(0, 0, i)
		ok, err := IsDateAvailable(db, vendor.ID, d)
		if err != nil {
			return nil, err
		}
		if ok {
			dates = append(dates, d.Format("2006-01-02"))
		}
	}
	return dates, nil
}

func vendorLocation(vendor *models.VendorProfile) *time.Location {
	loc, err := time.LoadLocation(vendor.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func minutesOfDay(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
