// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	scansession "hadirku_backend/internals/features/attendance/scan/session"
	middlewares "hadirku_backend/internals/middlewares"
	authmw "hadirku_backend/internals/middlewares/auth"
	routeDetails "hadirku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, sessions *scansession.Registry) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// bukti pembayaran tersimpan lokal → disajikan statis
	app.Static("/uploads", "./uploads")

	// ===================== ADMIN (organizer, JWT) =====================
	log.Println("[INFO] Setting up attendance admin routes...")
	admin := app.Group("/api/a", authmw.OrganizerOnly())
	routeDetails.AttendanceAdminRoutes(admin, db, sessions)

	// ===================== PUBLIC (walk-in, rate-limited) =====================
	log.Println("[INFO] Setting up walk-in public routes...")
	public := app.Group("/public", middlewares.WalkInRateLimiter())
	routeDetails.WalkInPublicRoutes(public, db)
}
