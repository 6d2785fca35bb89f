// file: internals/features/attendance/walkin/controller/walkin_public_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/errs"
	"hadirku_backend/internals/features/attendance/walkin/dto"
	"hadirku_backend/internals/features/attendance/walkin/service"
	helper "hadirku_backend/internals/helpers"
)

type WalkInPublicController struct {
	DB      *gorm.DB
	Service *service.WalkInService
}

func NewWalkInPublicController(db *gorm.DB) *WalkInPublicController {
	return &WalkInPublicController{DB: db, Service: service.NewWalkInService(db)}
}

/* ===================== VALIDATE (render form) ===================== */
// GET /public/walkin/:token
// Read-only: TIDAK menghitung pemakaian. Link tidak dikenal → layar
// terminal 404 tanpa tombol retry di sisi klien.
func (ctrl *WalkInPublicController) Validate(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Params("token"))
	if token == "" {
		return helper.JsonError(c, fiber.StatusNotFound, errs.ErrNotFound.Error())
	}

	snap, err := ctrl.Service.Validate(c.UserContext(), token)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat link")
	}
	return helper.JsonOK(c, "ok", snap)
}

/* ===================== REGISTER (consume) ===================== */
// POST /public/walkin/:token/register  (multipart: name, email, payment_proof?)
// Konsumsi kuota atomik di service; untuk max_uses = N, tepat N yang sukses.
func (ctrl *WalkInPublicController) Register(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Params("token"))
	if token == "" {
		return helper.JsonError(c, fiber.StatusNotFound, errs.ErrNotFound.Error())
	}

	var req dto.RegisterWalkInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	v := validator.New()
	if err := v.Struct(req); err != nil {
		fieldErrors := map[string][]string{}
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				fieldErrors[fe.Field()] = append(fieldErrors[fe.Field()], fe.Tag())
			}
		}
		return helper.JsonValidationError(c, fieldErrors)
	}

	// Bukti pembayaran opsional di wire; service yang menentukan wajib/tidak
	// (event berbayar). Klien menolak submit tanpa bukti hanya sebagai UX.
	var proof *service.ProofMeta
	if fh, err := c.FormFile("payment_proof"); err == nil && fh != nil {
		normalized, err := helper.NormalizeProofImage(fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		url, filename, err := helper.SaveProofImage(normalized, fh.Filename)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		proof = &service.ProofMeta{URL: url, Filename: filename, UploadedAt: time.Now()}
	}

	p, err := ctrl.Service.ConsumeAndRegister(c.UserContext(), token, service.Registrant{
		Name:  req.Name,
		Email: req.Email,
	}, proof)
	if err != nil {
		// registrasi gagal → bukti yang terlanjur tersimpan ikut dihapus
		if proof != nil {
			if rmErr := helper.RemoveProofImage(proof.Filename); rmErr != nil {
				log.Printf("gagal hapus bukti yatim %s: %v", proof.Filename, rmErr)
			}
		}
		return helper.JsonError(c, errs.HTTPStatus(err), err.Error())
	}

	return helper.JsonCreated(c, "Registrasi berhasil — kehadiran tercatat", p)
}
