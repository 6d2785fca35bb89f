// file: internals/features/attendance/walkin/dto/walkin_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "hadirku_backend/internals/features/attendance/walkin/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateWalkInTokenRequest struct {
	WalkInTokenLabel   *string `json:"walkin_token_label"    validate:"omitempty,max=120"`
	WalkInTokenMaxUses *int    `json:"walkin_token_max_uses" validate:"omitempty,min=1,max=10000"`
}

type RegisterWalkInRequest struct {
	Name  string `json:"name"  form:"name"  validate:"required,min=2,max=120"`
	Email string `json:"email" form:"email" validate:"required,email,max=254"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type WalkInTokenResponse struct {
	WalkInTokenID      uuid.UUID `json:"walkin_token_id"`
	WalkInTokenEventID uuid.UUID `json:"walkin_token_event_id"`
	WalkInTokenToken   string    `json:"walkin_token_token"`
	WalkInTokenLabel   *string   `json:"walkin_token_label,omitempty"`

	WalkInTokenMaxUses     *int `json:"walkin_token_max_uses,omitempty"`
	WalkInTokenCurrentUses int  `json:"walkin_token_current_uses"`
	RemainingUses          *int `json:"remaining_uses,omitempty"`

	WalkInTokenIsActive bool   `json:"walkin_token_is_active"`
	Status              string `json:"status"` // active | exhausted | inactive

	WalkInTokenCreatedAt time.Time `json:"walkin_token_created_at"`
}

func NewWalkInTokenResponse(mdl m.WalkInTokenModel) WalkInTokenResponse {
	return WalkInTokenResponse{
		WalkInTokenID:          mdl.WalkInTokenID,
		WalkInTokenEventID:     mdl.WalkInTokenEventID,
		WalkInTokenToken:       mdl.WalkInTokenToken,
		WalkInTokenLabel:       mdl.WalkInTokenLabel,
		WalkInTokenMaxUses:     mdl.WalkInTokenMaxUses,
		WalkInTokenCurrentUses: mdl.WalkInTokenCurrentUses,
		RemainingUses:          mdl.RemainingUses(),
		WalkInTokenIsActive:    mdl.WalkInTokenIsActive,
		Status:                 mdl.Status(),
		WalkInTokenCreatedAt:   mdl.WalkInTokenCreatedAt,
	}
}

// EventSnapshot: data render form registrasi mandiri. Read-only, TIDAK
// menghitung pemakaian.
type EventSnapshot struct {
	EventID              uuid.UUID `json:"event_id"`
	EventTitle           string    `json:"event_title"`
	EventIsPaid          bool      `json:"event_is_paid"`
	EventStartDatetime   time.Time `json:"event_start_datetime"`
	EventEndDatetime     time.Time `json:"event_end_datetime"`
	AttendanceWindowOpen bool      `json:"attendance_window_open"`

	TokenStatus   string `json:"token_status"` // active | exhausted | inactive
	RemainingUses *int   `json:"remaining_uses,omitempty"`
}
