package model

import (
	"testing"
	"time"
)

// Dua sumber expiry digabung hanya lewat accessor — yang lebih lambat menang.
func TestEffectiveExpiry(t *testing.T) {
	tokenExp := time.Date(2026, 8, 28, 17, 30, 0, 0, time.UTC)
	eventEnd := time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC)

	tok := AttendanceTokenModel{AttendanceTokenExpiresAt: tokenExp}
	if got := tok.EffectiveExpiry(eventEnd); !got.Equal(eventEnd) {
		t.Errorf("EffectiveExpiry = %v, want event end %v", got, eventEnd)
	}

	// kebalikan: TTL token lebih lambat dari akhir event
	lateToken := eventEnd.Add(30 * time.Minute)
	tok.AttendanceTokenExpiresAt = lateToken
	if got := tok.EffectiveExpiry(eventEnd); !got.Equal(lateToken) {
		t.Errorf("EffectiveExpiry = %v, want token exp %v", got, lateToken)
	}
}

// Update end_datetime event menggeser validitas tanpa reissue token.
func TestEffectiveExpiryTracksEventEnd(t *testing.T) {
	tok := AttendanceTokenModel{
		AttendanceTokenExpiresAt: time.Date(2026, 8, 28, 17, 30, 0, 0, time.UTC),
	}
	before := tok.EffectiveExpiry(time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC))
	after := tok.EffectiveExpiry(time.Date(2026, 8, 28, 19, 0, 0, 0, time.UTC))
	if !after.After(before) {
		t.Errorf("perpanjangan event harus menggeser effective expiry (%v → %v)", before, after)
	}
}
