package model

import (
	"sync"
	"time"
)

// PreviewModel tracks whether the preview is running and how long it has run.
// The zero value is stopped and usable. UI callbacks and loop ticks may race,
// so fields are guarded by mu.
type PreviewModel struct {
	mu          sync.Mutex
	enabled     bool
	active      bool
	started     time.Time
	lastSession time.Duration
	accumulated time.Duration
	sessions    int
}

// NewPreviewModel returns a ready-to-use PreviewModel.
func NewPreviewModel() *PreviewModel { return &PreviewModel{} }

// Enabled reports whether the preview is running.
func (m *PreviewModel) Enabled() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// SetEnabled stores the enabled flag. Timing follows on the next OnTick.
func (m *PreviewModel) SetEnabled(b bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.enabled = b
	m.mu.Unlock()
}

// OnTick advances session timing to now.
func (m *PreviewModel) OnTick(now time.Time) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case m.enabled && !m.active:
		m.active = true
		m.started = now
		m.lastSession = 0
		m.sessions++
	case m.enabled:
		m.lastSession = now.Sub(m.started)
	case m.active:
		m.lastSession = now.Sub(m.started)
		m.accumulated += m.lastSession
		m.active = false
	}
}

// Values returns the current (or last) session duration and the total
// including an ongoing session.
func (m *PreviewModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	session = m.lastSession
	total = m.accumulated
	if m.active {
		total += session
	}
	return
}

// Sessions counts how many times the preview has been started.
func (m *PreviewModel) Sessions() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions
}
