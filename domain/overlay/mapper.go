package overlay

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/soocke/facecam-go/domain/geometry"
)

// Renderer draws display-space points over the preview.
type Renderer interface {
	SetPoints(points []r2.Vec)
}

// Map projects buffer-space points into display space. Order and count are
// preserved; an empty input yields an empty, non-nil slice.
func Map(points []r2.Vec, t geometry.Transform) []r2.Vec {
	out := make([]r2.Vec, len(points))
	for i, p := range points {
		out[i] = t.Apply(p)
	}
	return out
}

// Mapper keeps the last successful detection and the freshest transform and
// re-renders whenever either changes. Points are mapped at render time, so a
// transform committed after the detection still wins.
type Mapper struct {
	mu        sync.Mutex
	renderer  Renderer
	transform geometry.Transform
	points    []r2.Vec
}

// NewMapper renders through r. Until the first transform arrives points are
// drawn through the identity.
func NewMapper(r Renderer) *Mapper {
	return &Mapper{renderer: r, transform: geometry.Identity(), points: []r2.Vec{}}
}

func (m *Mapper) SetTransform(t geometry.Transform) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transform = t
	m.render()
}

// SetPoints replaces the buffer-space point set.
func (m *Mapper) SetPoints(points []r2.Vec) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points = append(make([]r2.Vec, 0, len(points)), points...)
	m.render()
}

// Points returns a copy of the buffer-space points.
func (m *Mapper) Points() []r2.Vec {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]r2.Vec(nil), m.points...)
}

// Display returns the points mapped through the current transform.
func (m *Mapper) Display() []r2.Vec {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return Map(m.points, m.transform)
}

// Clear drops the point set, e.g. when the preview is stopped.
func (m *Mapper) Clear() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points = []r2.Vec{}
	m.render()
}

// render is called with mu held. The renderer must not call back into m.
func (m *Mapper) render() {
	if m.renderer == nil {
		return
	}
	m.renderer.SetPoints(Map(m.points, m.transform))
}
