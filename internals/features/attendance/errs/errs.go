// file: internals/features/attendance/errs/errs.go
package errs

import "errors"

/* =========================================================
 * Taksonomi error subsistem kehadiran
 * - validation : ditolak lokal, tidak pernah sampai ke DB
 * - state      : terminal untuk percobaan itu (pesan spesifik per sebab)
 * - transient  : boleh di-retry oleh penyelenggara
 * ========================================================= */

var (
	ErrInvalidToken      = errors.New("token tidak dikenal")
	ErrTokenExpired      = errors.New("token sudah kadaluarsa")
	ErrWindowClosed      = errors.New("kehadiran sedang tidak dibuka")
	ErrExhausted         = errors.New("kuota link walk-in sudah habis")
	ErrInactive          = errors.New("link walk-in sudah dinonaktifkan")
	ErrNotFound          = errors.New("link tidak ditemukan")
	ErrProofRequired     = errors.New("bukti pembayaran wajib diunggah")
	ErrAlreadyRegistered = errors.New("email sudah terdaftar di event ini")
	ErrNotEligible       = errors.New("peserta tidak memenuhi syarat kehadiran")
)

type Kind int

const (
	KindTransient Kind = iota // network/DB; satu-satunya yang layak retry otomatis
	KindValidation
	KindState
)

func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindTransient
	case errors.Is(err, ErrProofRequired):
		return KindValidation
	case errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrWindowClosed),
		errors.Is(err, ErrExhausted),
		errors.Is(err, ErrInactive),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrAlreadyRegistered),
		errors.Is(err, ErrNotEligible):
		return KindState
	default:
		return KindTransient
	}
}

// Retryable: hanya error transient yang boleh dicoba ulang tanpa perubahan input.
func Retryable(err error) bool {
	return Classify(err) == KindTransient
}

// HTTPStatus memetakan error subsistem ke status HTTP di boundary controller.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrProofRequired):
		return 422
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrTokenExpired), errors.Is(err, ErrInactive):
		return 410
	case errors.Is(err, ErrWindowClosed), errors.Is(err, ErrExhausted),
		errors.Is(err, ErrAlreadyRegistered), errors.Is(err, ErrNotEligible):
		return 409
	default:
		return 500
	}
}
