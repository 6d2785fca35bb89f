package session

import (
	"sync"

	"github.com/google/uuid"
)

// Registry memegang satu ScanSession per (organizer, event).
// Ditutup serempak saat shutdown (lihat main.go).
type Registry struct {
	cfg Config

	mu       sync.Mutex
	sessions map[string]*ScanSession
}

func NewRegistry(cfg Config) *Registry {
	return &Registry{cfg: cfg, sessions: make(map[string]*ScanSession)}
}

func key(organizerID, eventID uuid.UUID) string {
	return organizerID.String() + "/" + eventID.String()
}

// Get mengambil sesi yang ada atau membuat baru (lazy).
func (r *Registry) Get(organizerID, eventID uuid.UUID, gw Gateway) *ScanSession {
	k := key(organizerID, eventID)
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[k]; ok && !s.Closed() {
		return s
	}
	s := New(eventID, gw, r.cfg)
	r.sessions[k] = s
	return s
}

// Remove menutup dan membuang satu sesi (teardown view scan).
func (r *Registry) Remove(organizerID, eventID uuid.UUID) {
	k := key(organizerID, eventID)
	r.mu.Lock()
	s, ok := r.sessions[k]
	if ok {
		delete(r.sessions, k)
	}
	r.mu.Unlock()
	if ok {
		s.Close()
	}
}

func (r *Registry) CloseAll() {
	r.mu.Lock()
	all := make([]*ScanSession, 0, len(r.sessions))
	for k, s := range r.sessions {
		all = append(all, s)
		delete(r.sessions, k)
	}
	r.mu.Unlock()
	for _, s := range all {
		s.Close()
	}
}
