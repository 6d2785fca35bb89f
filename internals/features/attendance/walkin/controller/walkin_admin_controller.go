// file: internals/features/attendance/walkin/controller/walkin_admin_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/errs"
	"hadirku_backend/internals/features/attendance/walkin/dto"
	"hadirku_backend/internals/features/attendance/walkin/service"
	helper "hadirku_backend/internals/helpers"
)

type WalkInAdminController struct {
	DB      *gorm.DB
	Service *service.WalkInService
}

func NewWalkInAdminController(db *gorm.DB) *WalkInAdminController {
	return &WalkInAdminController{DB: db, Service: service.NewWalkInService(db)}
}

/* ===================== ISSUE ===================== */
// POST /api/a/events/:event_id/walkin-tokens
func (ctrl *WalkInAdminController) Issue(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "event_id tidak valid")
	}

	var req dto.CreateWalkInTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	row, err := ctrl.Service.Issue(c.UserContext(), eventID, req.WalkInTokenLabel, req.WalkInTokenMaxUses)
	if err != nil {
		return helper.JsonError(c, errs.HTTPStatus(err), err.Error())
	}
	return helper.JsonCreated(c, "Link walk-in dibuat", dto.NewWalkInTokenResponse(*row))
}

/* ===================== LIST ===================== */
// GET /api/a/events/:event_id/walkin-tokens
// Token exhausted/inactive tetap tampil untuk audit.
func (ctrl *WalkInAdminController) List(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "event_id tidak valid")
	}

	rows, err := ctrl.Service.List(c.UserContext(), eventID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar link")
	}

	resp := make([]dto.WalkInTokenResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, dto.NewWalkInTokenResponse(r))
	}
	return helper.JsonList(c, "ok", resp, nil)
}

/* ===================== DISABLE ===================== */
// PATCH /api/a/events/:event_id/walkin-tokens/:id/disable
func (ctrl *WalkInAdminController) Disable(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "event_id tidak valid")
	}
	tokenID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	row, err := ctrl.Service.Disable(c.UserContext(), eventID, tokenID)
	if err != nil {
		return helper.JsonError(c, errs.HTTPStatus(err), err.Error())
	}
	return helper.JsonUpdated(c, "Link walk-in dinonaktifkan", dto.NewWalkInTokenResponse(*row))
}
