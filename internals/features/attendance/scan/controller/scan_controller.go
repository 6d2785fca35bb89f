// file: internals/features/attendance/scan/controller/scan_controller.go
package controller

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/errs"
	eventDto "hadirku_backend/internals/features/attendance/events/dto"
	scanService "hadirku_backend/internals/features/attendance/scan/service"
	"hadirku_backend/internals/features/attendance/scan/session"
	helper "hadirku_backend/internals/helpers"
	authmw "hadirku_backend/internals/middlewares/auth"
)

type ScanController struct {
	DB       *gorm.DB
	Service  *scanService.ScanService
	Sessions *session.Registry
}

func NewScanController(db *gorm.DB, sessions *session.Registry) *ScanController {
	return &ScanController{DB: db, Service: scanService.NewScanService(db), Sessions: sessions}
}

// serviceGateway mengadaptasi ScanService ke kontrak session.Gateway.
type serviceGateway struct {
	svc *scanService.ScanService
}

func (g serviceGateway) WindowOpen(ctx context.Context, eventID uuid.UUID) (bool, error) {
	return g.svc.WindowOpen(ctx, eventID)
}

func (g serviceGateway) Scan(ctx context.Context, eventID uuid.UUID, rawToken string) (session.ScanOutcome, error) {
	res, err := g.svc.Scan(ctx, eventID, rawToken)
	if err != nil {
		return session.ScanOutcome{}, err
	}
	return session.ScanOutcome{
		ParticipantID:   res.Participant.EventParticipantID,
		Name:            res.Participant.EventParticipantName,
		Status:          string(res.Participant.EventParticipantStatus),
		AlreadyAttended: res.AlreadyAttended,
	}, nil
}

/* ===================== EVENT SNAPSHOT ===================== */
// GET /api/a/events/:event_id
func (ctrl *ScanController) GetEvent(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "event_id tidak valid")
	}
	ev, err := ctrl.Service.Event(c.UserContext(), eventID)
	if err != nil {
		return helper.JsonError(c, errs.HTTPStatus(err), err.Error())
	}
	return helper.JsonOK(c, "ok", eventDto.NewEventResponse(*ev))
}

/* ===================== SCAN ===================== */

type scanRequest struct {
	Token string `json:"token"`
}

// POST /api/a/events/:event_id/scan
// Dipakai kamera scanner maupun input teks manual — satu jalur submit.
func (ctrl *ScanController) Scan(c *fiber.Ctx) error {
	organizerID, err := authmw.UserIDFromLocals(c)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "event_id tidak valid")
	}

	var req scanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	sess := ctrl.Sessions.Get(organizerID, eventID, serviceGateway{ctrl.Service})
	res := sess.Submit(c.UserContext(), req.Token)

	switch res.Status {
	case session.SubmitDroppedEmpty, session.SubmitDroppedBusy, session.SubmitDroppedDuplicate:
		// no-op: deteksi dibuang, tidak ada panggilan ke service
		return helper.JsonOK(c, "Deteksi diabaikan", fiber.Map{
			"dropped": true,
			"reason":  dropReason(res.Status),
		})
	case session.SubmitFailed:
		return helper.JsonError(c, errs.HTTPStatus(res.Err), res.Err.Error())
	}

	// sukses → refresh roster untuk view scan
	roster, total, err := ctrl.Service.Participants(c.UserContext(), eventID, helper.Paging{Offset: 0, Limit: 50})
	if err != nil {
		// scan sudah tercatat; roster menyusul di request berikutnya
		roster, total = nil, 0
	}

	msg := "Kehadiran tercatat"
	if res.Outcome.AlreadyAttended {
		msg = "Peserta sudah tercatat hadir sebelumnya"
	}
	return helper.JsonOK(c, msg, fiber.Map{
		"participant":  res.Outcome,
		"roster":       roster,
		"roster_total": total,
	})
}

func dropReason(st session.SubmitStatus) string {
	switch st {
	case session.SubmitDroppedEmpty:
		return "empty_token"
	case session.SubmitDroppedBusy:
		return "in_flight"
	case session.SubmitDroppedDuplicate:
		return "duplicate_token"
	default:
		return "unknown"
	}
}

// DELETE /api/a/events/:event_id/scan-session
// Teardown view scan: batalkan timer & buang guard state.
func (ctrl *ScanController) EndSession(c *fiber.Ctx) error {
	organizerID, err := authmw.UserIDFromLocals(c)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "event_id tidak valid")
	}
	ctrl.Sessions.Remove(organizerID, eventID)
	return helper.JsonOK(c, "Sesi scan diakhiri", nil)
}

/* ===================== ROSTER ===================== */
// GET /api/a/events/:event_id/participants
func (ctrl *ScanController) Participants(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "event_id tidak valid")
	}
	paging := helper.ResolvePaging(c, 20, 200)
	rows, total, err := ctrl.Service.Participants(c.UserContext(), eventID, paging)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil roster")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* ===================== MANUAL ENTRY ===================== */

type manualEntryRequest struct {
	Name  string `json:"name"  validate:"required,min=2,max=120"`
	Email string `json:"email" validate:"required,email,max=254"`
}

// POST /api/a/events/:event_id/manual-attendance
// Bypass token: daftarkan yang hadir langsung sebagai 'attended'.
func (ctrl *ScanController) RecordManual(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "event_id tidak valid")
	}

	var req manualEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	p, err := ctrl.Service.RecordManual(c.UserContext(), eventID, req.Name, req.Email)
	if err != nil {
		return helper.JsonError(c, errs.HTTPStatus(err), err.Error())
	}
	return helper.JsonCreated(c, "Kehadiran manual tercatat", p)
}
