package db

import (
	"fmt"
	"log"

	"github.com/bookaslot/booking-platform/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.VendorProfile{},
		&models.StaffMember{},
		&models.Service{},
		&models.Availability{},
		&models.Booking{},
		&models.Payment{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
