package server

import (
	"sync"

	"ficha-generator/models"
)

// Session owns the single "currently loaded record" slot. It is overwritten
// wholesale on every successful generation and cleared on failure; the
// composers only ever read it. It also gates exports: one at a time, no
// cancellation of an in-flight export.
type Session struct {
	mu        sync.Mutex
	record    *models.ListingRecord
	view      *models.NormalizedView
	exporting bool
}

func NewSession() *Session { return &Session{} }

// Replace installs a new record and its view, discarding the previous ones.
func (s *Session) Replace(rec *models.ListingRecord, view *models.NormalizedView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = rec
	s.view = view
}

// Clear empties the slot; sharing and export are disabled until the next
// successful generation.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = nil
	s.view = nil
}

// Current returns the loaded view, if any.
func (s *Session) Current() (*models.NormalizedView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view, s.view != nil
}

// BeginExport reserves the export gate. It reports false while another
// export is still running.
func (s *Session) BeginExport() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exporting {
		return false
	}
	s.exporting = true
	return true
}

// EndExport releases the gate, on success or failure alike.
func (s *Session) EndExport() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exporting = false
}
