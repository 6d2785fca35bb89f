package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RegistrationStatusDraft  = "draft"
	RegistrationStatusOpened = "opened"
	RegistrationStatusClosed = "closed"
)

type EventModel struct {
	EventID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:event_id" json:"event_id"`

	EventTitle string `gorm:"not null;column:event_title" json:"event_title"`
	EventSlug  string `gorm:"uniqueIndex;not null;column:event_slug" json:"event_slug"`

	EventRegistrationStatus  string `gorm:"type:varchar(20);not null;default:'draft';column:event_registration_status" json:"event_registration_status"`
	EventIsAttendanceEnabled bool   `gorm:"not null;default:false;column:event_is_attendance_enabled"                  json:"event_is_attendance_enabled"`
	EventIsPaid              bool   `gorm:"not null;default:false;column:event_is_paid"                                json:"event_is_paid"`

	EventStartDatetime time.Time `gorm:"not null;column:event_start_datetime" json:"event_start_datetime"`
	EventEndDatetime   time.Time `gorm:"not null;column:event_end_datetime"   json:"event_end_datetime"`

	EventCreatedAt time.Time      `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt *time.Time     `gorm:"column:event_updated_at;autoUpdateTime" json:"event_updated_at,omitempty"`
	EventDeletedAt gorm.DeletedAt `gorm:"column:event_deleted_at;index"          json:"event_deleted_at,omitempty"`
}

func (EventModel) TableName() string { return "events" }

// AttendanceWindowOpen: turunan, tidak pernah disimpan/di-cache.
// Dievaluasi ulang pada SETIAP percobaan scan/registrasi.
func (m *EventModel) AttendanceWindowOpen() bool {
	return m.EventRegistrationStatus == RegistrationStatusOpened && m.EventIsAttendanceEnabled
}
