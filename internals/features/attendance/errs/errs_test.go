package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	if Classify(ErrProofRequired) != KindValidation {
		t.Errorf("proof_required harus validation")
	}
	for _, err := range []error{ErrInvalidToken, ErrTokenExpired, ErrWindowClosed, ErrExhausted, ErrInactive, ErrNotFound, ErrAlreadyRegistered, ErrNotEligible} {
		if Classify(err) != KindState {
			t.Errorf("%v harus state", err)
		}
	}
	if Classify(errors.New("connection refused")) != KindTransient {
		t.Errorf("error tak dikenal harus transient")
	}
}

// Hanya transient yang boleh retry otomatis; wrap tidak mengubah klasifikasi.
func TestRetryable(t *testing.T) {
	if Retryable(ErrExhausted) {
		t.Errorf("exhausted stabil/terminal, bukan retryable")
	}
	wrapped := fmt.Errorf("register gagal: %w", ErrWindowClosed)
	if Retryable(wrapped) {
		t.Errorf("wrap ErrWindowClosed tetap state")
	}
	if !Retryable(errors.New("i/o timeout")) {
		t.Errorf("network error harus retryable")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[error]int{
		ErrProofRequired:     422,
		ErrNotFound:          404,
		ErrInvalidToken:      404,
		ErrTokenExpired:      410,
		ErrInactive:          410,
		ErrWindowClosed:      409,
		ErrExhausted:         409,
		ErrAlreadyRegistered: 409,
		errors.New("boom"):   500,
	}
	for err, want := range cases {
		if got := HTTPStatus(err); got != want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", err, got, want)
		}
	}
}
