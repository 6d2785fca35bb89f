package model

import "testing"

// Window turunan: opened + attendance enabled, dievaluasi per percobaan.
func TestAttendanceWindowOpen(t *testing.T) {
	cases := []struct {
		status  string
		enabled bool
		want    bool
	}{
		{RegistrationStatusOpened, true, true},
		{RegistrationStatusOpened, false, false},
		{RegistrationStatusClosed, true, false},
		{RegistrationStatusDraft, true, false},
	}
	for _, tc := range cases {
		ev := EventModel{EventRegistrationStatus: tc.status, EventIsAttendanceEnabled: tc.enabled}
		if got := ev.AttendanceWindowOpen(); got != tc.want {
			t.Errorf("(%s, enabled=%v) = %v, want %v", tc.status, tc.enabled, got, tc.want)
		}
	}
}
