package presenter

import (
	"time"

	"github.com/soocke/facecam-go/domain/geometry"
)

// Loop aggregates feature presenters and drives periodic updates.
//
// Each Tick polls the layout and buffer feeds, renders the viewfinder at the
// current layout, refreshes the status bar and invokes the scheduler callback.
// The zero value is usable (methods are nil-safe).
type Loop struct {
	Layout   *LayoutPresenter
	Preview  *PreviewPresenter
	Stats    *StatsPresenter
	Render   func(viewport geometry.Dimensions)
	Schedule func()
}

func NewLoop(layout *LayoutPresenter, preview *PreviewPresenter, stats *StatsPresenter, render func(geometry.Dimensions), schedule func()) *Loop {
	return &Loop{Layout: layout, Preview: preview, Stats: stats, Render: render, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	// Layout runs first so a buffer arriving in the same tick sees the new bounds.
	l.Layout.Tick()
	l.Preview.Tick()
	if l.Render != nil {
		l.Render(l.Layout.Last())
	}
	l.Stats.Tick(time.Now())
	if l.Schedule != nil {
		l.Schedule()
	}
}
