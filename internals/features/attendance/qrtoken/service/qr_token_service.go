// file: internals/features/attendance/qrtoken/service/qr_token_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hadirku_backend/internals/configs"
	"hadirku_backend/internals/features/attendance/errs"
	eventModel "hadirku_backend/internals/features/attendance/events/model"
	participantModel "hadirku_backend/internals/features/attendance/participants/model"
	"hadirku_backend/internals/features/attendance/qrtoken/model"
	helper "hadirku_backend/internals/helpers"
)

type QRTokenService struct {
	DB  *gorm.DB
	TTL time.Duration
}

func NewQRTokenService(db *gorm.DB) *QRTokenService {
	return &QRTokenService{DB: db, TTL: configs.QRTokenTTL}
}

// IssuedToken: hasil generate/refresh. Plain hanya ada di sini — DB cuma
// menyimpan hash-nya.
type IssuedToken struct {
	TokenID            uuid.UUID `json:"token_id"`
	Token              string    `json:"token"` // "<token_id>.<secret>" — isi QR
	ExpiresAt          time.Time `json:"expires_at"`
	EventEndDatetime   time.Time `json:"event_end_datetime"`
	EffectiveExpiresAt time.Time `json:"effective_expires_at"`
}

// Generate menerbitkan token baru dan men-supersede semua token aktif
// pasangan (event, participant) dalam satu transaksi. Refresh = Generate
// lagi; idempoten dan boleh dipanggil kapan saja, termasuk setelah expiry.
func (s *QRTokenService) Generate(ctx context.Context, eventID, participantID uuid.UUID) (*IssuedToken, error) {
	var ev eventModel.EventModel
	if err := s.DB.WithContext(ctx).
		Where("event_id = ?", eventID).
		First(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	var p participantModel.ParticipantModel
	if err := s.DB.WithContext(ctx).
		Where("event_participant_id = ? AND event_participant_event_id = ?", participantID, eventID).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	secret, err := helper.GenerateSecret(24)
	if err != nil {
		return nil, fmt.Errorf("gagal membuat secret: %w", err)
	}
	hashed, err := helper.HashSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("gagal meng-hash secret: %w", err)
	}

	now := time.Now()
	row := model.AttendanceTokenModel{
		AttendanceTokenEventID:       eventID,
		AttendanceTokenParticipantID: participantID,
		AttendanceTokenSecretHash:    hashed,
		AttendanceTokenExpiresAt:     now.Add(s.TTL),
	}

	// ===== TRANSACTION: supersede lama + terbitkan baru =====
	if err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.AttendanceTokenModel{}).
			Where("attendance_token_event_id = ? AND attendance_token_participant_id = ? AND attendance_token_revoked_at IS NULL",
				eventID, participantID).
			Update("attendance_token_revoked_at", now).Error; err != nil {
			return err
		}
		return tx.Create(&row).Error
	}); err != nil {
		return nil, err
	}

	return &IssuedToken{
		TokenID:            row.AttendanceTokenID,
		Token:              FormatToken(row.AttendanceTokenID, secret),
		ExpiresAt:          row.AttendanceTokenExpiresAt,
		EventEndDatetime:   ev.EventEndDatetime,
		EffectiveExpiresAt: row.EffectiveExpiry(ev.EventEndDatetime),
	}, nil
}

// FormatToken / ParseToken: wire format isi QR = "<token_id>.<secret>".
func FormatToken(id uuid.UUID, secret string) string {
	return id.String() + "." + secret
}

func ParseToken(raw string) (uuid.UUID, string, error) {
	id, secret, ok := strings.Cut(strings.TrimSpace(raw), ".")
	if !ok || secret == "" {
		return uuid.Nil, "", errs.ErrInvalidToken
	}
	tokenID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, "", errs.ErrInvalidToken
	}
	return tokenID, secret, nil
}
