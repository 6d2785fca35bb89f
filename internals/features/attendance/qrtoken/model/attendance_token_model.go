package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceTokenModel: token QR rotating per (event, participant).
// Secret di-hash bcrypt; plaintext hanya keluar sekali saat generate.
// Token lama di-supersede (revoked_at) setiap refresh.
type AttendanceTokenModel struct {
	AttendanceTokenID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_token_id" json:"attendance_token_id"`

	AttendanceTokenEventID       uuid.UUID `gorm:"type:uuid;not null;column:attendance_token_event_id;index"       json:"attendance_token_event_id"`
	AttendanceTokenParticipantID uuid.UUID `gorm:"type:uuid;not null;column:attendance_token_participant_id;index" json:"attendance_token_participant_id"`

	AttendanceTokenSecretHash string `gorm:"not null;column:attendance_token_secret_hash" json:"-"`

	// Dua sumber expiry sengaja DIPISAH (TTL token vs akhir event);
	// digabung hanya lewat EffectiveExpiry, tidak pernah pre-merge saat tulis.
	AttendanceTokenExpiresAt time.Time  `gorm:"not null;column:attendance_token_expires_at" json:"attendance_token_expires_at"`
	AttendanceTokenRevokedAt *time.Time `gorm:"column:attendance_token_revoked_at;index"    json:"attendance_token_revoked_at,omitempty"`

	AttendanceTokenCreatedAt time.Time `gorm:"column:attendance_token_created_at;autoCreateTime" json:"attendance_token_created_at"`
}

func (AttendanceTokenModel) TableName() string { return "attendance_tokens" }

func (t *AttendanceTokenModel) Revoked() bool { return t.AttendanceTokenRevokedAt != nil }

// EffectiveExpiry: yang lebih lambat antara TTL token dan akhir event.
// Update end_datetime event otomatis menggeser validitas tampilan tanpa reissue.
func (t *AttendanceTokenModel) EffectiveExpiry(eventEnd time.Time) time.Time {
	if eventEnd.After(t.AttendanceTokenExpiresAt) {
		return eventEnd
	}
	return t.AttendanceTokenExpiresAt
}
