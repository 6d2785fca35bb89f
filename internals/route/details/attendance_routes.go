package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	qrCtrl "hadirku_backend/internals/features/attendance/qrtoken/controller"
	scanCtrl "hadirku_backend/internals/features/attendance/scan/controller"
	scansession "hadirku_backend/internals/features/attendance/scan/session"
	walkinCtrl "hadirku_backend/internals/features/attendance/walkin/controller"
)

func AttendanceAdminRoutes(r fiber.Router, db *gorm.DB, sessions *scansession.Registry) {
	sc := scanCtrl.NewScanController(db, sessions)
	qc := qrCtrl.NewQRTokenController(db)
	wc := walkinCtrl.NewWalkInAdminController(db)

	ev := r.Group("/events/:event_id")

	// =====================
	// Scan Session (kamera / manual toggle)
	// =====================
	ev.Get("/", sc.GetEvent)
	ev.Post("/scan", sc.Scan)
	ev.Delete("/scan-session", sc.EndSession)
	ev.Get("/participants", sc.Participants)
	ev.Post("/manual-attendance", sc.RecordManual)

	// =====================
	// QR Token Lifecycle
	// =====================
	ev.Post("/participants/:participant_id/qr", qc.Generate) // generate/refresh
	ev.Get("/participants/:participant_id/qr/image", qc.Image)

	// =====================
	// Walk-in Tokens (admin)
	// =====================
	ev.Post("/walkin-tokens", wc.Issue)
	ev.Get("/walkin-tokens", wc.List)
	ev.Patch("/walkin-tokens/:id/disable", wc.Disable)
}

func WalkInPublicRoutes(r fiber.Router, db *gorm.DB) {
	pc := walkinCtrl.NewWalkInPublicController(db)

	// =====================
	// Self-service Walk-in
	// =====================
	r.Get("/walkin/:token", pc.Validate)
	r.Post("/walkin/:token/register", pc.Register)
}
