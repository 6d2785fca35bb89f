package model

import "testing"

func intPtr(n int) *int { return &n }

// Lifecycle turunan: active → exhausted → inactive.
func TestWalkInStatus(t *testing.T) {
	m := WalkInTokenModel{WalkInTokenIsActive: true, WalkInTokenMaxUses: intPtr(3)}

	if got := m.Status(); got != WalkInStatusActive {
		t.Errorf("status awal = %q", got)
	}

	m.WalkInTokenCurrentUses = 3
	if got := m.Status(); got != WalkInStatusExhausted {
		t.Errorf("current == max → %q, want exhausted", got)
	}

	m.WalkInTokenIsActive = false
	if got := m.Status(); got != WalkInStatusInactive {
		t.Errorf("disable → %q, want inactive", got)
	}
}

func TestWalkInStatusUnlimited(t *testing.T) {
	m := WalkInTokenModel{WalkInTokenIsActive: true, WalkInTokenCurrentUses: 9999}
	if got := m.Status(); got != WalkInStatusActive {
		t.Errorf("tanpa max_uses tidak pernah exhausted, dapat %q", got)
	}
	if m.RemainingUses() != nil {
		t.Errorf("tanpa max_uses sisa harus nil (unlimited)")
	}
}

func TestRemainingUsesClamped(t *testing.T) {
	m := WalkInTokenModel{WalkInTokenIsActive: true, WalkInTokenMaxUses: intPtr(2), WalkInTokenCurrentUses: 5}
	if left := m.RemainingUses(); left == nil || *left != 0 {
		t.Errorf("sisa harus clamp ke 0, dapat %v", left)
	}
}
