package model

import (
	"fmt"

	"hadirku_backend/internals/features/attendance/errs"
)

// ParticipantStatus: enum tertutup. Subsistem kehadiran HANYA boleh menulis
// arm 'attended'; transisi lain ditolak sebagai programming error.
type ParticipantStatus string

const (
	StatusInvited  ParticipantStatus = "invited"
	StatusPending  ParticipantStatus = "pending"
	StatusAccepted ParticipantStatus = "accepted"
	StatusRejected ParticipantStatus = "rejected"
	StatusAttended ParticipantStatus = "attended"
)

func (s ParticipantStatus) Valid() bool {
	switch s {
	case StatusInvited, StatusPending, StatusAccepted, StatusRejected, StatusAttended:
		return true
	}
	return false
}

// attendableFrom: status asal yang sah untuk transisi ke attended.
var attendableFrom = map[ParticipantStatus]bool{
	StatusInvited:  true,
	StatusPending:  true,
	StatusAccepted: true,
}

// EnsureAttendTransition menjaga tabel transisi:
//   - asal attended  → idempoten, bukan error (sudah tercatat hadir)
//   - asal rejected  → ErrNotEligible
//   - target selain attended → programming error
func EnsureAttendTransition(from, to ParticipantStatus) error {
	if to != StatusAttended {
		return fmt.Errorf("subsistem kehadiran hanya boleh menulis status %q, bukan %q", StatusAttended, to)
	}
	if !from.Valid() {
		return fmt.Errorf("status asal tidak dikenal: %q", from)
	}
	if from == StatusAttended {
		return nil // idempoten
	}
	if !attendableFrom[from] {
		return errs.ErrNotEligible
	}
	return nil
}
