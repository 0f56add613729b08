package presenter

import (
	"github.com/soocke/facecam-go/domain/geometry"
	"github.com/soocke/facecam-go/ui/layout"
)

// LayoutSink receives viewfinder size changes.
type LayoutSink interface {
	OnLayout(dims geometry.Dimensions)
}

// LayoutPresenter is the layout feed. Tk has no resize callback we rely on, so
// it polls the window geometry and fires OnLayout when the viewfinder size
// changes. Unparseable geometry is skipped.
type LayoutPresenter struct {
	geom     func() string
	reserved func() int
	sink     LayoutSink

	last geometry.Dimensions
}

// NewLayoutPresenter polls geom (a Tk "WxH+X+Y" string). reserved
// returns the pixel rows not available to the viewfinder; nil means none.
func NewLayoutPresenter(geom func() string, reserved func() int, sink LayoutSink) *LayoutPresenter {
	return &LayoutPresenter{geom: geom, reserved: reserved, sink: sink}
}

// Tick reports whether a layout change was emitted.
func (p *LayoutPresenter) Tick() bool {
	if p == nil || p.geom == nil || p.sink == nil {
		return false
	}
	win, ok := layout.ParseGeometry(p.geom())
	if !ok {
		return false
	}
	rows := 0
	if p.reserved != nil {
		rows = p.reserved()
	}
	dims := layout.Viewfinder(win, rows)
	if dims == p.last {
		return false
	}
	p.last = dims
	p.sink.OnLayout(dims)
	return true
}

// Last returns the most recently emitted viewfinder size.
func (p *LayoutPresenter) Last() geometry.Dimensions {
	if p == nil {
		return geometry.Dimensions{}
	}
	return p.last
}

// Invalidate makes the next Tick re-emit the current size, e.g. after the
// viewfinder reattaches.
func (p *LayoutPresenter) Invalidate() {
	if p != nil {
		p.last = geometry.Dimensions{}
	}
}
