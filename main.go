package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/bookaslot/booking-platform/controllers"
	"github.com/bookaslot/booking-platform/cron"
	"github.com/bookaslot/booking-platform/db"
	"github.com/bookaslot/booking-platform/redis"
	"github.com/bookaslot/booking-platform/routes"
	"github.com/bookaslot/booking-platform/utils"
)

func main() {
	app := fiber.New()
	db.Init()
	redis.InitRedis()

	secret := os.Getenv("GUEST_LINK_SECRET")
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		log.Fatal("GUEST_LINK_SECRET or JWT_SECRET must be set")
	}
	controllers.UseGuestSigner(utils.NewGuestSigner([]byte(secret), utils.DefaultGuestLinkTTL))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	routes.SetupAuthRoutes(app)
	routes.SetupBookingRoutes(app)
	routes.SetupClientRoutes(app)
	routes.SetupVendorRoutes(app)

	cron.StartCronJobs()

	app.Listen(":8000")
}
