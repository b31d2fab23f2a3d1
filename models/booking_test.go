package models

import (
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A pooled :memory: database exists per connection; pin the pool to one
	// so every query and both sides of a race see the same schema.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&User{},
		&VendorProfile{},
		&Service{},
		&Availability{},
		&Booking{},
		&Payment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedVendorAndService(t *testing.T, db *gorm.DB) (*VendorProfile, *Service) {
	t.Helper()
	vendor := &VendorProfile{BusinessName: "Glow Studio", ContactEmail: "glow@studio.test"}
	if err := db.Create(vendor).Error; err != nil {
		t.Fatalf("seed vendor: %v", err)
	}
	service := &Service{VendorID: vendor.ID, Name: "Facial", Duration: 30, Price: 350}
	if err := db.Create(service).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	return vendor, service
}

func makeBooking(vendor *VendorProfile, service *Service, at string) *Booking {
	return &Booking{
		VendorID:      vendor.ID,
		ServiceID:     service.ID,
		CustomerName:  "Thandi",
		CustomerEmail: "thandi@example.test",
		Date:          "2025-03-10",
		Time:          at,
	}
}

func TestCreateBooking_DefaultsToPending(t *testing.T) {
	db := newTestDB(t)
	vendor, service := seedVendorAndService(t, db)

	booking := makeBooking(vendor, service, "09:00")
	if err := CreateBooking(db, booking); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if booking.Status != StatusPending {
		t.Fatalf("status = %s, want pending", booking.Status)
	}
}

func TestCreateBooking_SameSlotConflicts(t *testing.T) {
	db := newTestDB(t)
	vendor, service := seedVendorAndService(t, db)

	if err := CreateBooking(db, makeBooking(vendor, service, "09:00")); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	err := CreateBooking(db, makeBooking(vendor, service, "09:00"))
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestCreateBooking_CancelledBookingStillHoldsSlot(t *testing.T) {
	db := newTestDB(t)
	vendor, service := seedVendorAndService(t, db)

	first := makeBooking(vendor, service, "09:00")
	if err := CreateBooking(db, first); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if err := first.CancelByClient(db); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	err := CreateBooking(db, makeBooking(vendor, service, "09:00"))
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("cancelled booking should still hold the slot, got %v", err)
	}
}

func TestCreateBooking_TimeSpellingCanonicalized(t *testing.T) {
	db := newTestDB(t)
	vendor, service := seedVendorAndService(t, db)

	if err := CreateBooking(db, makeBooking(vendor, service, "09:00")); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// "9:00" is the same slot as "09:00" and must hit the same index key.
	err := CreateBooking(db, makeBooking(vendor, service, "9:00"))
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("non-padded spelling of a taken slot should conflict, got %v", err)
	}

	fresh := makeBooking(vendor, service, "9:30")
	if err := CreateBooking(db, fresh); err != nil {
		t.Fatalf("fresh booking: %v", err)
	}
	if fresh.Time != "09:30" {
		t.Fatalf("stored time = %q, want canonical %q", fresh.Time, "09:30")
	}
}

func TestCreateBooking_DifferentServiceSameTime(t *testing.T) {
	db := newTestDB(t)
	vendor, service := seedVendorAndService(t, db)
	other := &Service{VendorID: vendor.ID, Name: "Massage", Duration: 30}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("seed second service: %v", err)
	}

	if err := CreateBooking(db, makeBooking(vendor, service, "09:00")); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if err := CreateBooking(db, makeBooking(vendor, other, "09:00")); err != nil {
		t.Fatalf("different service at the same time should not conflict: %v", err)
	}
}

func TestCreateBooking_ConcurrentClaims(t *testing.T) {
	db := newTestDB(t)
	vendor, service := seedVendorAndService(t, db)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = CreateBooking(db, makeBooking(vendor, service, "10:00"))
		}(i)
	}
	wg.Wait()

	var taken, ok int
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrSlotTaken):
			taken++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || taken != 1 {
		t.Fatalf("want exactly one winner and one ErrSlotTaken, got ok=%d taken=%d", ok, taken)
	}
}

func TestConfirm_OnlyFromPending(t *testing.T) {
	db := newTestDB(t)
	vendor, service := seedVendorAndService(t, db)

	booking := makeBooking(vendor, service, "09:00")
	if err := CreateBooking(db, booking); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	changed, err := booking.Confirm(db)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if !changed || booking.Status != StatusConfirmed {
		t.Fatalf("confirm from pending: changed=%v status=%s", changed, booking.Status)
	}

	// Confirming again is a no-op, not an error.
	changed, err = booking.Confirm(db)
	if err != nil {
		t.Fatalf("second Confirm: %v", err)
	}
	if changed {
		t.Fatal("confirm from confirmed should be a no-op")
	}
}

func TestReject_OnlyFromPending(t *testing.T) {
	db := newTestDB(t)
	vendor, service := seedVendorAndService(t, db)

	booking := makeBooking(vendor, service, "09:00")
	if err := CreateBooking(db, booking); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	changed, err := booking.Reject(db)
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if !changed || booking.Status != StatusCancelled {
		t.Fatalf("reject from pending: changed=%v status=%s", changed, booking.Status)
	}

	changed, err = booking.Reject(db)
	if err != nil {
		t.Fatalf("second Reject: %v", err)
	}
	if changed {
		t.Fatal("reject from cancelled should be a no-op")
	}
}

func TestCancelByClient(t *testing.T) {
	db := newTestDB(t)
	vendor, service := seedVendorAndService(t, db)

	booking := makeBooking(vendor, service, "09:00")
	if err := CreateBooking(db, booking); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if err := booking.CancelByClient(db); err != nil {
		t.Fatalf("cancel pending booking: %v", err)
	}
	if booking.Status != StatusCancelled {
		t.Fatalf("status = %s, want cancelled", booking.Status)
	}

	confirmed := makeBooking(vendor, service, "09:30")
	if err := CreateBooking(db, confirmed); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if _, err := confirmed.Confirm(db); err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	err := confirmed.CancelByClient(db)
	if !errors.Is(err, ErrNotPending) {
		t.Fatalf("cancelling a confirmed booking should fail with ErrNotPending, got %v", err)
	}

	var reloaded Booking
	if err := db.First(&reloaded, confirmed.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != StatusConfirmed {
		t.Fatalf("status changed to %s on failed cancel", reloaded.Status)
	}
}

func TestSetMeetingDetails_AnyStatus(t *testing.T) {
	db := newTestDB(t)
	vendor, service := seedVendorAndService(t, db)

	booking := makeBooking(vendor, service, "09:00")
	if err := CreateBooking(db, booking); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if _, err := booking.Confirm(db); err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	if err := booking.SetMeetingDetails(db, "https://meet.example.test/abc", "Bring ID"); err != nil {
		t.Fatalf("SetMeetingDetails: %v", err)
	}
	if booking.Status != StatusConfirmed {
		t.Fatalf("meeting update must not change status, got %s", booking.Status)
	}
	if booking.MeetingURL != "https://meet.example.test/abc" {
		t.Fatalf("meeting url not saved: %q", booking.MeetingURL)
	}
}

func TestWeekdayOf(t *testing.T) {
	cases := []struct {
		date time.Time
		want Weekday
	}{
		{time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), Monday},
		{time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC), Friday},
		{time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), Saturday},
		{time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC), Sunday},
	}
	for _, tc := range cases {
		if got := WeekdayOf(tc.date); got != tc.want {
			t.Fatalf("WeekdayOf(%s) = %d, want %d", tc.date.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestRecordPayment(t *testing.T) {
	db := newTestDB(t)
	vendor, service := seedVendorAndService(t, db)

	booking := makeBooking(vendor, service, "09:00")
	if err := CreateBooking(db, booking); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	payment, err := RecordPayment(db, booking, PaymentCard, "")
	if err != nil {
		t.Fatalf("RecordPayment(card): %v", err)
	}
	if payment.Status != PaymentSuccess {
		t.Fatalf("card payment status = %s, want success", payment.Status)
	}
	if payment.Reference == "" {
		t.Fatal("card payment should get a generated reference")
	}

	eftBooking := makeBooking(vendor, service, "09:30")
	if err := CreateBooking(db, eftBooking); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	payment, err = RecordPayment(db, eftBooking, PaymentEFT, "EFT-123")
	if err != nil {
		t.Fatalf("RecordPayment(eft): %v", err)
	}
	if payment.Status != PaymentPending {
		t.Fatalf("eft payment status = %s, want pending", payment.Status)
	}

	if _, err := RecordPayment(db, booking, PaymentMethod("bitcoin"), ""); err == nil {
		t.Fatal("unknown payment method should be rejected")
	}
}

func TestAvailabilityUniqueTriple(t *testing.T) {
	db := newTestDB(t)
	vendor, _ := seedVendorAndService(t, db)

	window := Availability{VendorID: vendor.ID, Weekday: Monday, StartTime: "09:00", EndTime: "17:00"}
	if err := db.Create(&window).Error; err != nil {
		t.Fatalf("create window: %v", err)
	}

	dup := Availability{VendorID: vendor.ID, Weekday: Monday, StartTime: "09:00", EndTime: "17:00"}
	if err := db.Create(&dup).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicate-key error, got %v", err)
	}

	// Same weekday with different bounds is a second window, not a conflict.
	second := Availability{VendorID: vendor.ID, Weekday: Monday, StartTime: "18:00", EndTime: "20:00"}
	if err := db.Create(&second).Error; err != nil {
		t.Fatalf("second window on same weekday: %v", err)
	}
}

func TestAvailabilityDeleteFreesTriple(t *testing.T) {
	db := newTestDB(t)
	vendor, _ := seedVendorAndService(t, db)

	window := Availability{VendorID: vendor.ID, Weekday: Tuesday, StartTime: "09:00", EndTime: "12:00"}
	if err := db.Create(&window).Error; err != nil {
		t.Fatalf("create window: %v", err)
	}
	if err := db.Delete(&window).Error; err != nil {
		t.Fatalf("delete window: %v", err)
	}

	// The delete must release the unique triple so the vendor can bring the
	// same window back.
	again := Availability{VendorID: vendor.ID, Weekday: Tuesday, StartTime: "09:00", EndTime: "12:00"}
	if err := db.Create(&again).Error; err != nil {
		t.Fatalf("re-creating a deleted window should succeed, got %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Glow Studio":        "glow-studio",
		"Cut & Shave Co.":    "cut-shave-co",
		"  Année Folle!  ":   "année-folle",
		"already-slugged":    "already-slugged",
		"Multiple   Spaces!": "multiple-spaces",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
