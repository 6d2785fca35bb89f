// file: internals/features/attendance/walkin/service/walkin_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/errs"
	eventModel "hadirku_backend/internals/features/attendance/events/model"
	participantModel "hadirku_backend/internals/features/attendance/participants/model"
	"hadirku_backend/internals/features/attendance/walkin/dto"
	"hadirku_backend/internals/features/attendance/walkin/model"
	helper "hadirku_backend/internals/helpers"
)

// consumeStore memisahkan akses data jalur validate/consume supaya semantik
// kuota (tepat N sukses untuk max_uses = N) bisa diuji tanpa Postgres.
type consumeStore interface {
	TokenByValue(ctx context.Context, token string) (*model.WalkInTokenModel, error)
	EventByID(ctx context.Context, id uuid.UUID) (*eventModel.EventModel, error)
	// ConsumeAndInsert: increment kuota kondisional + insert peserta, SATU
	// unit atomik. 0 row pada increment → errs.Err{Exhausted,Inactive,NotFound};
	// duplikat email → errs.ErrAlreadyRegistered tanpa charge kuota.
	ConsumeAndInsert(ctx context.Context, tokenID uuid.UUID, p *participantModel.ParticipantModel) error
}

type WalkInService struct {
	DB    *gorm.DB
	store consumeStore
}

func NewWalkInService(db *gorm.DB) *WalkInService {
	return &WalkInService{DB: db, store: &gormConsumeStore{db: db}}
}

/* ===================== ISSUE / LIST / DISABLE ===================== */

func (s *WalkInService) Issue(ctx context.Context, eventID uuid.UUID, label *string, maxUses *int) (*model.WalkInTokenModel, error) {
	var ev eventModel.EventModel
	if err := s.DB.WithContext(ctx).Where("event_id = ?", eventID).First(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	// Token sharable: plaintext DISIMPAN — link harus bisa ditampilkan ulang
	// ke penyelenggara (beda dengan token QR peserta yang hash-only).
	token, err := helper.GenerateSecret(18)
	if err != nil {
		return nil, fmt.Errorf("gagal membuat token: %w", err)
	}

	row := model.WalkInTokenModel{
		WalkInTokenEventID: eventID,
		WalkInTokenToken:   token,
		WalkInTokenLabel:   label,
		WalkInTokenMaxUses: maxUses,
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *WalkInService) List(ctx context.Context, eventID uuid.UUID) ([]model.WalkInTokenModel, error) {
	var rows []model.WalkInTokenModel
	if err := s.DB.WithContext(ctx).
		Where("walkin_token_event_id = ?", eventID).
		Order("walkin_token_created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *WalkInService) Disable(ctx context.Context, eventID, tokenID uuid.UUID) (*model.WalkInTokenModel, error) {
	res := s.DB.WithContext(ctx).Model(&model.WalkInTokenModel{}).
		Where("walkin_token_id = ? AND walkin_token_event_id = ?", tokenID, eventID).
		Update("walkin_token_is_active", false)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errs.ErrNotFound
	}

	var row model.WalkInTokenModel
	if err := s.DB.WithContext(ctx).Where("walkin_token_id = ?", tokenID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

/* ===================== VALIDATE (read-only) ===================== */

// Validate merender snapshot form registrasi. Side-effect-free dan TIDAK
// menghitung pemakaian. Token tidak dikenal → terminal ErrNotFound.
func (s *WalkInService) Validate(ctx context.Context, token string) (*dto.EventSnapshot, error) {
	row, err := s.store.TokenByValue(ctx, token)
	if err != nil {
		return nil, err
	}
	ev, err := s.store.EventByID(ctx, row.WalkInTokenEventID)
	if err != nil {
		return nil, err
	}

	return &dto.EventSnapshot{
		EventID:              ev.EventID,
		EventTitle:           ev.EventTitle,
		EventIsPaid:          ev.EventIsPaid,
		EventStartDatetime:   ev.EventStartDatetime,
		EventEndDatetime:     ev.EventEndDatetime,
		AttendanceWindowOpen: ev.AttendanceWindowOpen(),
		TokenStatus:          row.Status(),
		RemainingUses:        row.RemainingUses(),
	}, nil
}

/* ===================== CONSUME & REGISTER ===================== */

type Registrant struct {
	Name  string
	Email string
}

type ProofMeta struct {
	URL        string    `json:"url"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ConsumeAndRegister: konsumsi token + buat peserta langsung 'attended',
// SATU transaksi. Penegakan kuota memakai conditional increment atomik
// (current_uses < max_uses di WHERE) — untuk max_uses = N, berapapun caller
// yang balapan, tepat N yang sukses dan sisanya ErrExhausted. Kalau insert
// peserta gagal, rollback ikut membatalkan increment (tidak double-charge).
func (s *WalkInService) ConsumeAndRegister(ctx context.Context, token string, reg Registrant, proof *ProofMeta) (*participantModel.ParticipantModel, error) {
	// Pre-checks read-only: window & syarat bukti. Gagal di sini = belum ada
	// satu pun tulisan.
	row, err := s.store.TokenByValue(ctx, token)
	if err != nil {
		return nil, err
	}
	ev, err := s.store.EventByID(ctx, row.WalkInTokenEventID)
	if err != nil {
		return nil, err
	}
	if !ev.AttendanceWindowOpen() {
		return nil, errs.ErrWindowClosed
	}
	if ev.EventIsPaid && proof == nil {
		return nil, errs.ErrProofRequired
	}

	var proofJSON datatypes.JSON
	if proof != nil {
		raw, err := json.Marshal(proof)
		if err != nil {
			return nil, err
		}
		proofJSON = datatypes.JSON(raw)
	}

	now := time.Now()
	participant := participantModel.ParticipantModel{
		EventParticipantEventID:      ev.EventID,
		EventParticipantName:         reg.Name,
		EventParticipantEmail:        participantModel.NormalizeEmail(reg.Email),
		EventParticipantStatus:       participantModel.StatusAttended,
		EventParticipantAttendedAt:   &now,
		EventParticipantPaymentProof: proofJSON,
	}

	if err := s.store.ConsumeAndInsert(ctx, row.WalkInTokenID, &participant); err != nil {
		return nil, err
	}
	return &participant, nil
}

// classifyConsumeFailure: increment 0 row → hasil baca ulang menentukan
// exhausted / inactive / hilang. Jangan pernah pre-check lalu commit.
func classifyConsumeFailure(row *model.WalkInTokenModel, findErr error) error {
	if findErr != nil {
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			return errs.ErrNotFound
		}
		return findErr
	}
	switch row.Status() {
	case model.WalkInStatusInactive:
		return errs.ErrInactive
	case model.WalkInStatusExhausted:
		return errs.ErrExhausted
	default:
		// race sempit: sudah bisa dipakai lagi — biarkan caller retry
		return errs.ErrExhausted
	}
}

/* ===================== GORM STORE ===================== */

type gormConsumeStore struct {
	db *gorm.DB
}

func (g *gormConsumeStore) TokenByValue(ctx context.Context, token string) (*model.WalkInTokenModel, error) {
	var row model.WalkInTokenModel
	if err := g.db.WithContext(ctx).Where("walkin_token_token = ?", token).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (g *gormConsumeStore) EventByID(ctx context.Context, id uuid.UUID) (*eventModel.EventModel, error) {
	var ev eventModel.EventModel
	if err := g.db.WithContext(ctx).Where("event_id = ?", id).First(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &ev, nil
}

// ===== TRANSACTION: increment atomik + insert peserta =====
func (g *gormConsumeStore) ConsumeAndInsert(ctx context.Context, tokenID uuid.UUID, p *participantModel.ParticipantModel) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.WalkInTokenModel{}).
			Where("walkin_token_id = ? AND walkin_token_is_active = TRUE", tokenID).
			Where("(walkin_token_max_uses IS NULL OR walkin_token_current_uses < walkin_token_max_uses)").
			Update("walkin_token_current_uses", gorm.Expr("walkin_token_current_uses + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var row model.WalkInTokenModel
			findErr := tx.Where("walkin_token_id = ?", tokenID).First(&row).Error
			return classifyConsumeFailure(&row, findErr)
		}
		return tx.Create(p).Error
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return errs.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}
