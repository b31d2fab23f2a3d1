package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/bookaslot/booking-platform/db"
	"github.com/bookaslot/booking-platform/models"
	"github.com/bookaslot/booking-platform/utils"
)

// StartCronJobs initializes and starts the cron scheduler for booking reminders
func StartCronJobs() {
	c := cron.New()
	// Run every minute to check for bookings starting in the next hour
	_, err := c.AddFunc("* * * * *", sendBookingReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for booking reminders")
}

// sendBookingReminders mails clients whose confirmed booking starts in
// roughly one hour. A booking sits inside the 55-65 minute window for
// several consecutive ticks, so ReminderSentAt guards against mailing the
// same client every minute.
func sendBookingReminders() {
	now := time.Now()
	bookings, err := dueForReminder(db.DB, now)
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	for i := range bookings {
		booking := &bookings[i]
		utils.Notify(utils.NotifyReminder, booking, "")
		if err := markReminded(db.DB, booking, now); err != nil {
			log.Printf("Failed to mark booking %d as reminded: %v", booking.ID, err)
			continue
		}
		log.Printf("Sent reminder for booking %d to %s", booking.ID, booking.CustomerEmail)
	}
}

// dueForReminder returns the confirmed, not-yet-reminded bookings starting
// 55-65 minutes after now.
func dueForReminder(dbc *gorm.DB, now time.Time) ([]models.Booking, error) {
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	var candidates []models.Booking
	err := dbc.Preload("Vendor").Preload("Service").
		Where("status = ? AND reminder_sent_at IS NULL AND date IN ?",
			models.StatusConfirmed, datesIn(startWindow, endWindow)).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	due := candidates[:0]
	for _, booking := range candidates {
		start, err := time.ParseInLocation("2006-01-02 15:04",
			fmt.Sprintf("%s %s", booking.Date, booking.Time), now.Location())
		if err != nil {
			log.Printf("Skipping reminder for booking %d: bad date/time: %v", booking.ID, err)
			continue
		}
		if start.Before(startWindow) || start.After(endWindow) {
			continue
		}
		due = append(due, booking)
	}
	return due, nil
}

// markReminded stamps the booking so later ticks skip it.
func markReminded(dbc *gorm.DB, booking *models.Booking, now time.Time) error {
	booking.ReminderSentAt = &now
	return dbc.Model(booking).Update("reminder_sent_at", now).Error
}

// datesIn returns the distinct "YYYY-MM-DD" dates the window touches (two
// when it straddles midnight).
func datesIn(from, to time.Time) []string {
	dates := []string{from.Format("2006-01-02")}
	if d := to.Format("2006-01-02"); d != dates[0] {
		dates = append(dates, d)
	}
	return dates
}
