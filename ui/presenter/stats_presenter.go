package presenter

import (
	"fmt"
	"time"

	"github.com/soocke/facecam-go/domain/analysis"
	"github.com/soocke/facecam-go/domain/capture"
	"github.com/soocke/facecam-go/domain/geometry"
)

// SessionModel advances and reports preview durations.
type SessionModel interface {
	OnTick(now time.Time)
	Values() (session, total time.Duration)
}

// GateStats exposes the analysis gate for display.
type GateStats interface {
	State() analysis.State
	Stats() analysis.Stats
}

// GeometrySource exposes the viewfinder state for display.
type GeometrySource interface {
	State() geometry.State
}

// CaptureStats exposes capture loop counters for display.
type CaptureStats interface {
	Stats() capture.Stats
}

// StatsView displays session durations and a one-line status.
type StatsView interface {
	SetSession(session, total time.Duration)
	SetStatus(text string)
}

// StatsPresenter formats session, geometry and analysis state for the status bar.
// Every source except the view is optional.
type StatsPresenter struct {
	session  SessionModel
	gate     GateStats
	geometry GeometrySource
	capture  CaptureStats
	view     StatsView

	lastStatus string
}

func NewStatsPresenter(session SessionModel, gate GateStats, geom GeometrySource, frames CaptureStats, view StatsView) *StatsPresenter {
	return &StatsPresenter{session: session, gate: gate, geometry: geom, capture: frames, view: view}
}

// Tick pushes fresh values to the view. The status text is only re-sent when it changes.
func (p *StatsPresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	if p.session != nil {
		p.session.OnTick(now)
		s, t := p.session.Values()
		p.view.SetSession(s, t)
	}
	status := p.Status()
	if status == p.lastStatus {
		return
	}
	p.lastStatus = status
	p.view.SetStatus(status)
}

// Status renders the current status line.
func (p *StatsPresenter) Status() string {
	if p == nil {
		return ""
	}
	var out string
	if p.geometry != nil {
		st := p.geometry.State()
		out = fmt.Sprintf("view %v @ %v | buffer %v @ %v",
			st.ViewfinderDimensions, st.ViewfinderRotation,
			st.BufferDimensions, st.BufferRotation)
	}
	if p.gate != nil {
		gs := p.gate.Stats()
		out = join(out, fmt.Sprintf("faces %v: %d ok, %d failed, %d dropped, last %v",
			p.gate.State(), gs.Completed, gs.Failed, gs.Dropped, gs.LastDuration.Round(time.Millisecond)))
	}
	if p.capture != nil {
		cs := p.capture.Stats()
		out = join(out, fmt.Sprintf("frames %d", cs.Captures))
	}
	return out
}

func join(a, b string) string {
	if a == "" {
		return b
	}
	return a + " | " + b
}
