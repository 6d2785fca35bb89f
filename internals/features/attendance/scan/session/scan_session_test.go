package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"hadirku_backend/internals/features/attendance/errs"
)

type fakeGateway struct {
	mu          sync.Mutex
	open        bool
	windowErr   error
	scanErr     error
	windowCalls int
	scanCalls   int
	lastRaw     string
}

func (g *fakeGateway) WindowOpen(ctx context.Context, eventID uuid.UUID) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.windowCalls++
	return g.open, g.windowErr
}

func (g *fakeGateway) Scan(ctx context.Context, eventID uuid.UUID, rawToken string) (ScanOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scanCalls++
	g.lastRaw = rawToken
	if g.scanErr != nil {
		return ScanOutcome{}, g.scanErr
	}
	return ScanOutcome{ParticipantID: uuid.New(), Name: "Budi", Status: "attended"}, nil
}

func (g *fakeGateway) counts() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.windowCalls, g.scanCalls
}

func newTestSession(gw *fakeGateway) *ScanSession {
	return New(uuid.New(), gw, Config{
		ReleaseDelay:  5 * time.Millisecond,
		SuppressDelay: 80 * time.Millisecond,
	})
}

func TestSubmitAccepted(t *testing.T) {
	gw := &fakeGateway{open: true}
	s := newTestSession(gw)
	defer s.Close()

	res := s.Submit(context.Background(), "ABC123")
	if res.Status != SubmitAccepted {
		t.Fatalf("status = %v, want SubmitAccepted (err=%v)", res.Status, res.Err)
	}
	if res.Outcome.Name != "Budi" {
		t.Errorf("outcome name = %q", res.Outcome.Name)
	}
	if _, scans := gw.counts(); scans != 1 {
		t.Errorf("scan calls = %d, want 1", scans)
	}
}

func TestEmptyTokenDroppedSilently(t *testing.T) {
	gw := &fakeGateway{open: true}
	s := newTestSession(gw)
	defer s.Close()

	for _, raw := range []string{"", "   ", "\t\n"} {
		if res := s.Submit(context.Background(), raw); res.Status != SubmitDroppedEmpty {
			t.Errorf("Submit(%q).Status = %v, want SubmitDroppedEmpty", raw, res.Status)
		}
	}
	windows, scans := gw.counts()
	if windows != 0 || scans != 0 {
		t.Errorf("calls = (%d window, %d scan), want none", windows, scans)
	}
}

// Token yang sama terdeteksi dua kali dalam suppression window → tepat satu
// panggilan scan; deteksi kedua nol network call.
func TestDuplicateWithinSuppressionWindow(t *testing.T) {
	gw := &fakeGateway{open: true}
	s := newTestSession(gw)
	defer s.Close()

	if res := s.Submit(context.Background(), "ABC123"); res.Status != SubmitAccepted {
		t.Fatalf("first submit: %v (err=%v)", res.Status, res.Err)
	}
	time.Sleep(20 * time.Millisecond) // release delay lewat, suppress masih aktif

	if res := s.Submit(context.Background(), "ABC123"); res.Status != SubmitDroppedDuplicate {
		t.Fatalf("second submit: %v, want SubmitDroppedDuplicate", res.Status)
	}
	if _, scans := gw.counts(); scans != 1 {
		t.Errorf("scan calls = %d, want 1", scans)
	}
}

func TestSuppressionWindowExpires(t *testing.T) {
	gw := &fakeGateway{open: true}
	s := newTestSession(gw)
	defer s.Close()

	s.Submit(context.Background(), "ABC123")
	time.Sleep(120 * time.Millisecond) // suppress window lewat

	if res := s.Submit(context.Background(), "ABC123"); res.Status != SubmitAccepted {
		t.Fatalf("resubmit after window: %v (err=%v)", res.Status, res.Err)
	}
	if _, scans := gw.counts(); scans != 2 {
		t.Errorf("scan calls = %d, want 2", scans)
	}
}

// Deteksi yang datang saat masih in-flight dibuang, tidak di-queue.
func TestInFlightDrop(t *testing.T) {
	gw := &fakeGateway{open: true}
	s := New(uuid.New(), gw, Config{
		ReleaseDelay:  300 * time.Millisecond, // longgar supaya tidak flaky
		SuppressDelay: time.Second,
	})
	defer s.Close()

	s.Submit(context.Background(), "AAA")
	// in-flight flag masih ditahan sampai release delay
	if res := s.Submit(context.Background(), "BBB"); res.Status != SubmitDroppedBusy {
		t.Fatalf("second submit: %v, want SubmitDroppedBusy", res.Status)
	}
	if _, scans := gw.counts(); scans != 1 {
		t.Errorf("scan calls = %d, want 1", scans)
	}
}

// Window tertutup → error terlihat user, scan TIDAK pernah dipanggil,
// berapa pun deteksi yang masuk.
func TestWindowClosedNeverCallsScan(t *testing.T) {
	gw := &fakeGateway{open: false}
	s := newTestSession(gw)
	defer s.Close()

	for i := 0; i < 3; i++ {
		res := s.Submit(context.Background(), "ABC123")
		if res.Status != SubmitFailed || !errors.Is(res.Err, errs.ErrWindowClosed) {
			t.Fatalf("submit %d: status=%v err=%v", i, res.Status, res.Err)
		}
		time.Sleep(15 * time.Millisecond) // tunggu release supaya tidak busy-drop
	}
	if _, scans := gw.counts(); scans != 0 {
		t.Errorf("scan calls = %d, want 0", scans)
	}
}

// Kegagalan scan membersihkan guard duplikat seketika — retry token yang
// sama tidak perlu menunggu suppression window.
func TestFailureClearsDuplicateGuardImmediately(t *testing.T) {
	gw := &fakeGateway{open: true, scanErr: errors.New("timeout")}
	s := newTestSession(gw)
	defer s.Close()

	if res := s.Submit(context.Background(), "ABC123"); res.Status != SubmitFailed {
		t.Fatalf("first submit: %v", res.Status)
	}
	if !errs.Retryable(gw.scanErr) {
		t.Fatalf("network error harus transient/retryable")
	}

	gw.mu.Lock()
	gw.scanErr = nil
	gw.mu.Unlock()
	time.Sleep(15 * time.Millisecond) // hanya release delay, bukan suppress

	if res := s.Submit(context.Background(), "ABC123"); res.Status != SubmitAccepted {
		t.Fatalf("retry: %v (err=%v)", res.Status, res.Err)
	}
	if _, scans := gw.counts(); scans != 2 {
		t.Errorf("scan calls = %d, want 2", scans)
	}
}

// Badai frame: banyak callback deteksi paralel untuk token yang sama →
// tepat satu panggilan scan.
func TestConcurrentDetectionStorm(t *testing.T) {
	gw := &fakeGateway{open: true}
	s := newTestSession(gw)
	defer s.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Submit(context.Background(), "ABC123")
		}()
	}
	wg.Wait()

	if _, scans := gw.counts(); scans != 1 {
		t.Errorf("scan calls = %d, want 1", scans)
	}
}

// Close membatalkan timer: tidak ada mutasi state setelah teardown.
func TestCloseCancelsTimers(t *testing.T) {
	gw := &fakeGateway{open: true}
	s := newTestSession(gw)

	s.Submit(context.Background(), "ABC123")
	s.Close()

	time.Sleep(120 * time.Millisecond) // lebih lama dari kedua delay

	s.mu.Lock()
	last := s.lastToken
	s.mu.Unlock()
	if last != "ABC123" {
		t.Errorf("lastToken = %q setelah Close; timer masih jalan", last)
	}

	if res := s.Submit(context.Background(), "XYZ"); res.Status != SubmitDroppedBusy {
		t.Errorf("submit setelah Close: %v, want SubmitDroppedBusy", res.Status)
	}
	s.Close() // idempoten
}

func TestWindowClosedIsNotRetryable(t *testing.T) {
	gw := &fakeGateway{open: false}
	s := newTestSession(gw)
	defer s.Close()

	res := s.Submit(context.Background(), "ABC123")
	if errs.Retryable(res.Err) {
		t.Errorf("window_closed tidak boleh retryable otomatis")
	}
}
