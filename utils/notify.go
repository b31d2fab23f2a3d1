package utils

import (
	"fmt"
	"log"

	"github.com/bookaslot/booking-platform/models"
)

type NotificationKind string

const (
	NotifyPendingCreated NotificationKind = "pending-created"
	NotifyConfirmed      NotificationKind = "confirmed"
	NotifyCancelled      NotificationKind = "cancelled"
	NotifyReminder       NotificationKind = "reminder"
)

// Notify sends the emails for a booking event. Delivery is best-effort:
// the state transition that triggered the event has already been committed,
// so failures are logged and never bubble back to the request.
// The booking must have Vendor and Service preloaded.
func Notify(kind NotificationKind, booking *models.Booking, reason string) {
	switch kind {
	case NotifyPendingCreated:
		sendOrLog(booking.Vendor.ContactEmail,
			fmt.Sprintf("New booking request from %s", booking.CustomerName),
			pendingVendorBody(booking))
	case NotifyConfirmed:
		sendOrLog(booking.Vendor.ContactEmail,
			fmt.Sprintf("Booking confirmed for %s", booking.CustomerName),
			confirmedVendorBody(booking))
		sendOrLog(booking.CustomerEmail,
			"Your booking is confirmed",
			confirmedClientBody(booking))
	case NotifyCancelled:
		sendOrLog(booking.CustomerEmail,
			"Your booking was cancelled",
			cancelledClientBody(booking, reason))
	case NotifyReminder:
		sendOrLog(booking.CustomerEmail,
			"Reminder: Your appointment is coming up",
			reminderClientBody(booking))
	default:
		log.Printf("unknown notification kind %q for booking %d", kind, booking.ID)
	}
}

// SendGuestMagicLink emails a guest the signed link that lets them book
// with the vendor without an account.
func SendGuestMagicLink(vendor *models.VendorProfile, email, link string) {
	body := fmt.Sprintf(`
		<p>Hi,</p>
		<p>Use the link below to book an appointment with %s. The link is
		valid for 24 hours.</p>
		<p><a href="%s">Book your appointment</a></p>
		<p>If you did not request this, you can ignore this email.</p>
	`, vendor.BusinessName, link)
	sendOrLog(email, fmt.Sprintf("Your booking link for %s", vendor.BusinessName), body)
}

func sendOrLog(to, subject, body string) {
	if to == "" {
		log.Printf("skipping notification %q: no recipient address", subject)
		return
	}
	if err := SendEmail(to, subject, body); err != nil {
		log.Printf("failed to send %q to %s: %v", subject, to, err)
	}
}

func pendingVendorBody(b *models.Booking) string {
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have a new booking request.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Customer:</strong> %s (%s)</li>
			<li><strong>Date:</strong> %s at %s</li>
			<li><strong>Notes:</strong> %s</li>
		</ul>
		<p>Accept or reject it from your bookings dashboard.</p>
	`, b.Vendor.BusinessName, b.Service.Name, b.CustomerName, b.CustomerEmail,
		b.Date, b.Time, b.Notes)
}

func confirmedVendorBody(b *models.Booking) string {
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The booking below is now confirmed.</p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Customer:</strong> %s</li>
			<li><strong>Date:</strong> %s at %s</li>
		</ul>
	`, b.Vendor.BusinessName, b.Service.Name, b.CustomerName, b.Date, b.Time)
}

func confirmedClientBody(b *models.Booking) string {
	meeting := ""
	if b.MeetingURL != "" {
		meeting = fmt.Sprintf(`<li><strong>Meeting link:</strong> <a href="%s">%s</a></li>`,
			b.MeetingURL, b.MeetingURL)
	}
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your booking with %s has been confirmed.</p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Date:</strong> %s at %s</li>
			%s
		</ul>
		<p>Thank you for booking with us!</p>
	`, b.CustomerName, b.Vendor.BusinessName, b.Service.Name, b.Date, b.Time, meeting)
}

func cancelledClientBody(b *models.Booking, reason string) string {
	reasonLine := ""
	if reason != "" {
		reasonLine = fmt.Sprintf("<p><strong>Reason:</strong> %s</p>", reason)
	}
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your booking with %s on %s at %s was cancelled.</p>
		%s
		<p>You are welcome to pick another slot.</p>
	`, b.CustomerName, b.Vendor.BusinessName, b.Date, b.Time, reasonLine)
}

func reminderClientBody(b *models.Booking) string {
	meeting := ""
	if b.MeetingURL != "" {
		meeting = fmt.Sprintf(`<p><strong>Meeting link:</strong> <a href="%s">%s</a></p>`,
			b.MeetingURL, b.MeetingURL)
	}
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder that your appointment with %s starts in about
		one hour, at %s.</p>
		%s
		<p>If you need to cancel, please do so as soon as possible.</p>
	`, b.CustomerName, b.Vendor.BusinessName, b.Time, meeting)
}
