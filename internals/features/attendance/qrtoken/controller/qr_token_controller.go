// file: internals/features/attendance/qrtoken/controller/qr_token_controller.go
package controller

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/errs"
	"hadirku_backend/internals/features/attendance/qrtoken/service"
	helper "hadirku_backend/internals/helpers"
)

type QRTokenController struct {
	DB      *gorm.DB
	Service *service.QRTokenService
}

func NewQRTokenController(db *gorm.DB) *QRTokenController {
	return &QRTokenController{DB: db, Service: service.NewQRTokenService(db)}
}

func (ctrl *QRTokenController) parseIDs(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, helper.JsonError(c, fiber.StatusBadRequest, "event_id tidak valid")
	}
	participantID, err := uuid.Parse(c.Params("participant_id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, helper.JsonError(c, fiber.StatusBadRequest, "participant_id tidak valid")
	}
	return eventID, participantID, nil
}

/* ===================== GENERATE / REFRESH ===================== */
// POST /api/a/events/:event_id/participants/:participant_id/qr
// Refresh = generate ulang; token lama otomatis di-supersede server-side.
func (ctrl *QRTokenController) Generate(c *fiber.Ctx) error {
	eventID, participantID, err := ctrl.parseIDs(c)
	if err != nil {
		return err
	}

	issued, err := ctrl.Service.Generate(c.UserContext(), eventID, participantID)
	if err != nil {
		return helper.JsonError(c, errs.HTTPStatus(err), err.Error())
	}

	now := time.Now()
	remaining := service.Remaining(issued.EffectiveExpiresAt, now)
	return helper.JsonCreated(c, "Token QR diterbitkan", fiber.Map{
		"token":                issued.Token,
		"expires_at":           issued.ExpiresAt,
		"event_end_datetime":   issued.EventEndDatetime,
		"effective_expires_at": issued.EffectiveExpiresAt,
		"countdown":            service.FormatRemaining(remaining),
	})
}

/* ===================== QR IMAGE ===================== */
// GET /api/a/events/:event_id/participants/:participant_id/qr/image?size=256
// Setiap render menerbitkan token baru (rotasi), lalu encode PNG.
func (ctrl *QRTokenController) Image(c *fiber.Ctx) error {
	eventID, participantID, err := ctrl.parseIDs(c)
	if err != nil {
		return err
	}

	size, _ := strconv.Atoi(c.Query("size", "256"))
	if size < 64 {
		size = 64
	}
	if size > 1024 {
		size = 1024
	}

	issued, err := ctrl.Service.Generate(c.UserContext(), eventID, participantID)
	if err != nil {
		return helper.JsonError(c, errs.HTTPStatus(err), err.Error())
	}

	png, err := qrcode.Encode(issued.Token, qrcode.Medium, size)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat QR code")
	}

	c.Set("Content-Type", "image/png")
	c.Set("Cache-Control", "no-store") // token rotating, jangan di-cache
	return c.Send(png)
}
