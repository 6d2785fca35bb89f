package service

import (
	"fmt"
	"sync"
	"time"
)

/* =========================================================
 * Countdown tampilan validitas QR.
 * Murni derivasi display — otoritas validitas tetap di server
 * (scan/service), bukan di countdown ini.
 * ========================================================= */

// Remaining: sisa waktu sampai effective expiry, di-clamp >= 0.
func Remaining(effectiveExpiry, now time.Time) time.Duration {
	d := effectiveExpiry.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// FormatRemaining: label countdown. Terminal tepat saat sisa habis,
// tidak pernah lebih awal.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "ended"
	}
	if d >= time.Hour {
		h := int(d / time.Hour)
		m := int((d % time.Hour) / time.Minute)
		if m == 0 {
			return fmt.Sprintf("Valid for %dh", h)
		}
		return fmt.Sprintf("Valid for %dh %dm", h, m)
	}
	if d >= time.Minute {
		return fmt.Sprintf("Valid for %dm", int(d/time.Minute))
	}
	return fmt.Sprintf("Valid for %ds", int(d/time.Second))
}

type Tick struct {
	Remaining time.Duration
	Label     string
	Ended     bool
}

// CountdownTicker menghitung ulang label tiap interval (ref: 1s).
// WAJIB Stop() saat teardown supaya tidak ada goroutine/timer nyangkut.
type CountdownTicker struct {
	C <-chan Tick

	stopOnce sync.Once
	stop     chan struct{}
}

func NewCountdownTicker(effectiveExpiry time.Time, interval time.Duration) *CountdownTicker {
	if interval <= 0 {
		interval = time.Second
	}
	ch := make(chan Tick, 1)
	t := &CountdownTicker{C: ch, stop: make(chan struct{})}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		defer close(ch)
		for {
			select {
			case <-t.stop:
				return
			case now := <-ticker.C:
				d := Remaining(effectiveExpiry, now)
				tick := Tick{Remaining: d, Label: FormatRemaining(d), Ended: d <= 0}
				select {
				case ch <- tick:
				case <-t.stop:
					return
				}
				if tick.Ended {
					return // terminal; ticker berhenti sendiri
				}
			}
		}
	}()
	return t
}

func (t *CountdownTicker) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
}
