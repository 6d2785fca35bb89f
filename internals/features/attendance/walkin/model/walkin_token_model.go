package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	WalkInStatusActive    = "active"
	WalkInStatusExhausted = "exhausted"
	WalkInStatusInactive  = "inactive"
)

type WalkInTokenModel struct {
	WalkInTokenID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:walkin_token_id" json:"walkin_token_id"`

	WalkInTokenEventID uuid.UUID `gorm:"type:uuid;not null;column:walkin_token_event_id;index" json:"walkin_token_event_id"`

	WalkInTokenToken string  `gorm:"uniqueIndex;not null;column:walkin_token_token" json:"walkin_token_token"`
	WalkInTokenLabel *string `gorm:"column:walkin_token_label"                      json:"walkin_token_label,omitempty"`

	// NULL = tanpa batas. current_uses hanya boleh berubah lewat
	// conditional increment atomik (lihat walkin/service), tidak pernah
	// read-then-write dari sisi klien.
	WalkInTokenMaxUses     *int `gorm:"column:walkin_token_max_uses"                json:"walkin_token_max_uses,omitempty"`
	WalkInTokenCurrentUses int  `gorm:"not null;default:0;column:walkin_token_current_uses" json:"walkin_token_current_uses"`

	WalkInTokenIsActive bool `gorm:"not null;default:true;column:walkin_token_is_active" json:"walkin_token_is_active"`

	WalkInTokenCreatedAt time.Time      `gorm:"column:walkin_token_created_at;autoCreateTime" json:"walkin_token_created_at"`
	WalkInTokenUpdatedAt *time.Time     `gorm:"column:walkin_token_updated_at;autoUpdateTime" json:"walkin_token_updated_at,omitempty"`
	WalkInTokenDeletedAt gorm.DeletedAt `gorm:"column:walkin_token_deleted_at;index"          json:"walkin_token_deleted_at,omitempty"`
}

func (WalkInTokenModel) TableName() string { return "walkin_tokens" }

// Status turunan: active → exhausted → inactive.
// exhausted/inactive terminal untuk konsumsi, tetap tampil untuk audit.
func (m *WalkInTokenModel) Status() string {
	if !m.WalkInTokenIsActive {
		return WalkInStatusInactive
	}
	if m.WalkInTokenMaxUses != nil && m.WalkInTokenCurrentUses >= *m.WalkInTokenMaxUses {
		return WalkInStatusExhausted
	}
	return WalkInStatusActive
}

// RemainingUses: nil = tanpa batas.
func (m *WalkInTokenModel) RemainingUses() *int {
	if m.WalkInTokenMaxUses == nil {
		return nil
	}
	left := *m.WalkInTokenMaxUses - m.WalkInTokenCurrentUses
	if left < 0 {
		left = 0
	}
	return &left
}
