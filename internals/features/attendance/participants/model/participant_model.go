package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NormalizeEmail: kunci dedupe adalah (event, lower(email)). SEMUA jalur
// tulis (walk-in, manual entry) wajib lewat sini sebelum insert supaya
// Foo@x.com dan foo@x.com tidak jadi dua baris.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type ParticipantModel struct {
	EventParticipantID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:event_participant_id" json:"event_participant_id"`

	EventParticipantEventID uuid.UUID  `gorm:"type:uuid;not null;column:event_participant_event_id;index" json:"event_participant_event_id"`
	EventParticipantUserID  *uuid.UUID `gorm:"type:uuid;column:event_participant_user_id" json:"event_participant_user_id,omitempty"` // NULL untuk walk-in

	EventParticipantName string `gorm:"not null;column:event_participant_name" json:"event_participant_name"`
	// Unique per (event, lower(email)) — index ekspresi uq_event_participant_email
	// dibuat di database.EnsureIndexes, bukan lewat tag (GORM tidak bisa).
	EventParticipantEmail string `gorm:"not null;column:event_participant_email" json:"event_participant_email"`

	EventParticipantStatus ParticipantStatus `gorm:"type:varchar(16);not null;default:'pending';column:event_participant_status" json:"event_participant_status"`

	EventParticipantAttendedAt *time.Time `gorm:"column:event_participant_attended_at" json:"event_participant_attended_at,omitempty"`

	// Bukti pembayaran walk-in: {url, filename, uploaded_at}
	EventParticipantPaymentProof datatypes.JSON `gorm:"column:event_participant_payment_proof" json:"event_participant_payment_proof,omitempty"`

	EventParticipantCreatedAt time.Time      `gorm:"column:event_participant_created_at;autoCreateTime" json:"event_participant_created_at"`
	EventParticipantUpdatedAt *time.Time     `gorm:"column:event_participant_updated_at;autoUpdateTime" json:"event_participant_updated_at,omitempty"`
	EventParticipantDeletedAt gorm.DeletedAt `gorm:"column:event_participant_deleted_at;index"          json:"event_participant_deleted_at,omitempty"`
}

func (ParticipantModel) TableName() string { return "event_participants" }
