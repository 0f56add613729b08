package model

import (
	"testing"
	"time"
)

func TestPreviewModel_SessionLifecycle(t *testing.T) {
	m := NewPreviewModel()
	base := time.Unix(0, 0)

	m.SetEnabled(true)
	m.OnTick(base)
	m.OnTick(base.Add(5 * time.Second))
	session, total := m.Values()
	if session != 5*time.Second || total != 5*time.Second {
		t.Fatalf("expected 5s session & total; got session=%v total=%v", session, total)
	}

	m.SetEnabled(false)
	m.OnTick(base.Add(6 * time.Second))
	session, total = m.Values()
	if session != 6*time.Second || total != 6*time.Second {
		t.Fatalf("after stop expected 6s; got session=%v total=%v", session, total)
	}

	// Idle ticks change nothing.
	m.OnTick(base.Add(9 * time.Second))
	if s, tt := m.Values(); s != session || tt != total {
		t.Fatalf("idle tick changed durations: session=%v total=%v", s, tt)
	}

	m.SetEnabled(true)
	m.OnTick(base.Add(10 * time.Second))
	m.OnTick(base.Add(13 * time.Second))
	session, total = m.Values()
	if session != 3*time.Second || total != 9*time.Second {
		t.Fatalf("second session: session=%v total=%v", session, total)
	}
	if m.Sessions() != 2 {
		t.Fatalf("sessions=%d want 2", m.Sessions())
	}
}

func TestPreviewModel_NilSafe(t *testing.T) {
	var m *PreviewModel
	m.SetEnabled(true)
	m.OnTick(time.Now())
	if m.Enabled() || m.Sessions() != 0 {
		t.Fatalf("nil model should report stopped")
	}
	if s, tt := m.Values(); s != 0 || tt != 0 {
		t.Fatalf("nil model values: %v %v", s, tt)
	}
}
