package dto

import (
	"time"

	"github.com/google/uuid"

	m "hadirku_backend/internals/features/attendance/events/model"
)

type EventResponse struct {
	EventID                  uuid.UUID `json:"event_id"`
	EventTitle               string    `json:"event_title"`
	EventSlug                string    `json:"event_slug"`
	EventRegistrationStatus  string    `json:"event_registration_status"`
	EventIsAttendanceEnabled bool      `json:"event_is_attendance_enabled"`
	EventIsPaid              bool      `json:"event_is_paid"`
	EventStartDatetime       time.Time `json:"event_start_datetime"`
	EventEndDatetime         time.Time `json:"event_end_datetime"`

	// turunan — dihitung saat response dibentuk
	AttendanceWindowOpen bool `json:"attendance_window_open"`
}

func NewEventResponse(mdl m.EventModel) EventResponse {
	return EventResponse{
		EventID:                  mdl.EventID,
		EventTitle:               mdl.EventTitle,
		EventSlug:                mdl.EventSlug,
		EventRegistrationStatus:  mdl.EventRegistrationStatus,
		EventIsAttendanceEnabled: mdl.EventIsAttendanceEnabled,
		EventIsPaid:              mdl.EventIsPaid,
		EventStartDatetime:       mdl.EventStartDatetime,
		EventEndDatetime:         mdl.EventEndDatetime,
		AttendanceWindowOpen:     mdl.AttendanceWindowOpen(),
	}
}
