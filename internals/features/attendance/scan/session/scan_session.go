// file: internals/features/attendance/scan/session/scan_session.go
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"hadirku_backend/internals/configs"
	"hadirku_backend/internals/features/attendance/errs"
)

/* =========================================================
 * ScanSession: dedup guard sisi sesi penyelenggara.
 *
 * Debounce dua skala waktu:
 *   - ReleaseDelay  (ref 1s): in-flight flag dilepas TERTUNDA, meredam
 *     badai frame kamera yang memicu ulang seketika (rate panggilan).
 *   - SuppressDelay (ref 3s): lastToken ditahan lebih lama, meredam
 *     submit logis duplikat atas identitas yang sama.
 *
 * Set/clear guard selalu di dalam mutex — atomik terhadap callback
 * deteksi yang datang paralel.
 * ========================================================= */

// ScanOutcome: hasil satu panggilan scan yang diterima gateway.
type ScanOutcome struct {
	ParticipantID   uuid.UUID
	Name            string
	Status          string
	AlreadyAttended bool
}

// Gateway: sisi Attendance Service yang dibutuhkan sesi scan.
type Gateway interface {
	// WindowOpen dievaluasi ulang di setiap percobaan.
	WindowOpen(ctx context.Context, eventID uuid.UUID) (bool, error)
	Scan(ctx context.Context, eventID uuid.UUID, rawToken string) (ScanOutcome, error)
}

type Config struct {
	ReleaseDelay  time.Duration
	SuppressDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		ReleaseDelay:  configs.ScanReleaseDelay,
		SuppressDelay: configs.ScanSuppressDelay,
	}
}

type SubmitStatus int

const (
	SubmitAccepted SubmitStatus = iota
	SubmitDroppedEmpty
	SubmitDroppedBusy
	SubmitDroppedDuplicate
	SubmitFailed
)

type Result struct {
	Status  SubmitStatus
	Outcome ScanOutcome
	Err     error
}

type ScanSession struct {
	eventID uuid.UUID
	gw      Gateway
	cfg     Config

	mu        sync.Mutex
	inFlight  bool
	lastToken string
	closed    bool

	releaseTimer  *time.Timer
	suppressTimer *time.Timer
}

func New(eventID uuid.UUID, gw Gateway, cfg Config) *ScanSession {
	if cfg.ReleaseDelay <= 0 {
		cfg.ReleaseDelay = time.Second
	}
	if cfg.SuppressDelay <= 0 {
		cfg.SuppressDelay = 3 * time.Second
	}
	return &ScanSession{eventID: eventID, gw: gw, cfg: cfg}
}

func (s *ScanSession) EventID() uuid.UUID { return s.eventID }

// Submit memproses satu deteksi mentah (kamera atau ketik manual).
// Deteksi yang datang saat masih in-flight DIBUANG, bukan di-queue.
func (s *ScanSession) Submit(ctx context.Context, rawToken string) Result {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return Result{Status: SubmitDroppedEmpty} // reject diam-diam
	}

	s.mu.Lock()
	if s.closed || s.inFlight {
		s.mu.Unlock()
		return Result{Status: SubmitDroppedBusy}
	}
	if rawToken == s.lastToken {
		// kamera mendeteksi ulang kode yang masih terlihat, tiap frame
		s.mu.Unlock()
		return Result{Status: SubmitDroppedDuplicate}
	}
	s.inFlight = true // reserve di critical section yang sama dengan cek
	s.mu.Unlock()

	open, err := s.gw.WindowOpen(ctx, s.eventID)
	if err != nil {
		s.scheduleRelease()
		return Result{Status: SubmitFailed, Err: err}
	}
	if !open {
		// error terlihat user, TANPA memanggil scan
		s.scheduleRelease()
		return Result{Status: SubmitFailed, Err: errs.ErrWindowClosed}
	}

	s.mu.Lock()
	s.lastToken = rawToken
	s.mu.Unlock()

	outcome, err := s.gw.Scan(ctx, s.eventID, rawToken)
	if err != nil {
		// bersihkan guard duplikat SEKARANG supaya retry tidak perlu
		// menunggu suppression window
		s.mu.Lock()
		if s.lastToken == rawToken {
			s.lastToken = ""
		}
		s.mu.Unlock()
		s.scheduleRelease()
		return Result{Status: SubmitFailed, Err: err}
	}

	s.scheduleSuppressClear(rawToken)
	s.scheduleRelease()
	return Result{Status: SubmitAccepted, Outcome: outcome}
}

// scheduleRelease melepas in-flight flag setelah ReleaseDelay — sengaja
// tidak langsung, apapun hasilnya.
func (s *ScanSession) scheduleRelease() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.inFlight = false
		return
	}
	if s.releaseTimer != nil {
		s.releaseTimer.Stop()
	}
	s.releaseTimer = time.AfterFunc(s.cfg.ReleaseDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		s.inFlight = false
	})
}

// scheduleSuppressClear menghapus lastToken setelah SuppressDelay supaya
// scan sah berikutnya atas badge yang mirip tidak terblokir permanen.
func (s *ScanSession) scheduleSuppressClear(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.suppressTimer != nil {
		s.suppressTimer.Stop()
	}
	s.suppressTimer = time.AfterFunc(s.cfg.SuppressDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		if s.lastToken == token {
			s.lastToken = ""
		}
	})
}

// Close membatalkan semua timer dan mematikan sesi. Timer yang terlanjur
// fire setelah Close tidak memutasi state (cek closed di dalam lock).
func (s *ScanSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.releaseTimer != nil {
		s.releaseTimer.Stop()
		s.releaseTimer = nil
	}
	if s.suppressTimer != nil {
		s.suppressTimer.Stop()
		s.suppressTimer = nil
	}
}

func (s *ScanSession) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
