// file: internals/features/attendance/scan/service/scan_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hadirku_backend/internals/features/attendance/errs"
	eventModel "hadirku_backend/internals/features/attendance/events/model"
	participantModel "hadirku_backend/internals/features/attendance/participants/model"
	qrModel "hadirku_backend/internals/features/attendance/qrtoken/model"
	qrService "hadirku_backend/internals/features/attendance/qrtoken/service"
	helper "hadirku_backend/internals/helpers"
)

type ScanService struct {
	DB *gorm.DB
}

func NewScanService(db *gorm.DB) *ScanService {
	return &ScanService{DB: db}
}

type ScanResult struct {
	Participant     participantModel.ParticipantModel
	AlreadyAttended bool
}

/* ===================== EVENT / WINDOW ===================== */

func (s *ScanService) Event(ctx context.Context, eventID uuid.UUID) (*eventModel.EventModel, error) {
	var ev eventModel.EventModel
	if err := s.DB.WithContext(ctx).Where("event_id = ?", eventID).First(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &ev, nil
}

// WindowOpen dievaluasi ulang setiap percobaan — tidak ada cache.
func (s *ScanService) WindowOpen(ctx context.Context, eventID uuid.UUID) (bool, error) {
	ev, err := s.Event(ctx, eventID)
	if err != nil {
		return false, err
	}
	return ev.AttendanceWindowOpen(), nil
}

/* ===================== SCAN ===================== */

// Scan: resolusi token → satu ParticipantRecord, atau error
// invalid_token | expired | window_closed. Token tidak dikenal/kadaluarsa
// TIDAK pernah memutasi record apa pun.
func (s *ScanService) Scan(ctx context.Context, eventID uuid.UUID, rawToken string) (*ScanResult, error) {
	tokenID, secret, err := qrService.ParseToken(rawToken)
	if err != nil {
		return nil, err
	}

	var tok qrModel.AttendanceTokenModel
	if err := s.DB.WithContext(ctx).
		Where("attendance_token_id = ? AND attendance_token_event_id = ? AND attendance_token_revoked_at IS NULL",
			tokenID, eventID).
		First(&tok).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// termasuk token yang sudah di-supersede oleh refresh
			return nil, errs.ErrInvalidToken
		}
		return nil, err
	}
	if !helper.CompareSecret(tok.AttendanceTokenSecretHash, secret) {
		return nil, errs.ErrInvalidToken
	}

	ev, err := s.Event(ctx, eventID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if now.After(tok.EffectiveExpiry(ev.EventEndDatetime)) {
		return nil, errs.ErrTokenExpired
	}
	if !ev.AttendanceWindowOpen() {
		return nil, errs.ErrWindowClosed
	}

	// Tulis 'attended' secara kondisional; 0 row → baca ulang untuk bedakan
	// idempoten (sudah hadir) vs tidak memenuhi syarat.
	var result ScanResult
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var updated participantModel.ParticipantModel
		res := tx.Model(&updated).
			Clauses(clause.Returning{}).
			Where("event_participant_id = ? AND event_participant_event_id = ?",
				tok.AttendanceTokenParticipantID, eventID).
			Where("event_participant_status IN ?", []participantModel.ParticipantStatus{
				participantModel.StatusInvited,
				participantModel.StatusPending,
				participantModel.StatusAccepted,
			}).
			Updates(map[string]any{
				"event_participant_status":      participantModel.StatusAttended,
				"event_participant_attended_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			result.Participant = updated
			return nil
		}

		var p participantModel.ParticipantModel
		if err := tx.Where("event_participant_id = ? AND event_participant_event_id = ?",
			tok.AttendanceTokenParticipantID, eventID).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrInvalidToken
			}
			return err
		}
		if err := participantModel.EnsureAttendTransition(p.EventParticipantStatus, participantModel.StatusAttended); err != nil {
			return err
		}
		// sudah attended sebelumnya → idempoten
		result.Participant = p
		result.AlreadyAttended = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

/* ===================== ROSTER ===================== */

func (s *ScanService) Participants(ctx context.Context, eventID uuid.UUID, paging helper.Paging) ([]participantModel.ParticipantModel, int64, error) {
	var total int64
	base := s.DB.WithContext(ctx).Model(&participantModel.ParticipantModel{}).
		Where("event_participant_event_id = ?", eventID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []participantModel.ParticipantModel
	if err := base.
		Order("event_participant_created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

/* ===================== MANUAL ENTRY ===================== */

// RecordManual: jalur bypass tanpa token — langsung tulis 'attended'.
// Dedupe per (event, lower(email)) ditegakkan oleh unique index, bukan pre-check.
func (s *ScanService) RecordManual(ctx context.Context, eventID uuid.UUID, name, email string) (*participantModel.ParticipantModel, error) {
	email = participantModel.NormalizeEmail(email)

	ev, err := s.Event(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !ev.AttendanceWindowOpen() {
		return nil, errs.ErrWindowClosed
	}

	now := time.Now()
	p := participantModel.ParticipantModel{
		EventParticipantEventID:    eventID,
		EventParticipantName:       name,
		EventParticipantEmail:      email,
		EventParticipantStatus:     participantModel.StatusAttended,
		EventParticipantAttendedAt: &now,
	}
	if err := s.DB.WithContext(ctx).Create(&p).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, errs.ErrAlreadyRegistered
		}
		return nil, err
	}
	return &p, nil
}
