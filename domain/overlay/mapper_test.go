package overlay

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/soocke/facecam-go/domain/geometry"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

type mockRenderer struct {
	calls int
	last  []r2.Vec
}

func (r *mockRenderer) SetPoints(p []r2.Vec) { r.calls++; r.last = p }

func TestMap_EmptyYieldsEmpty(t *testing.T) {
	tr := geometry.RotationAbout(-90, r2.Vec{X: 540, Y: 960})
	for _, in := range [][]r2.Vec{nil, {}} {
		out := Map(in, tr)
		if out == nil || len(out) != 0 {
			t.Fatalf("Map(%v) = %#v, want empty non-nil", in, out)
		}
	}
}

func TestMap_PivotIsFixed(t *testing.T) {
	pivot := r2.Vec{X: 540, Y: 960}
	tr := geometry.Identity().
		PostRotate(-90, pivot).
		PreScale(0.75, 1.5, pivot)
	out := Map([]r2.Vec{pivot}, tr)
	if diff := cmp.Diff([]r2.Vec{pivot}, out, approx); diff != "" {
		t.Fatalf("pivot moved (-want +got):\n%s", diff)
	}
}

func TestMap_PreservesOrderAndCount(t *testing.T) {
	in := []r2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	out := Map(in, geometry.Translation(5, -5))
	want := []r2.Vec{{X: 5, Y: -5}, {X: 15, Y: -5}, {X: 5, Y: 5}}
	if diff := cmp.Diff(want, out, approx); diff != "" {
		t.Fatalf("mapped points (-want +got):\n%s", diff)
	}
	if in[1] != (r2.Vec{X: 10, Y: 0}) {
		t.Fatalf("input mutated: %v", in)
	}
}

func TestMapper_FresherTransformWins(t *testing.T) {
	r := &mockRenderer{}
	m := NewMapper(r)
	m.SetPoints([]r2.Vec{{X: 1, Y: 2}})
	if diff := cmp.Diff([]r2.Vec{{X: 1, Y: 2}}, r.last, approx); diff != "" {
		t.Fatalf("identity render (-want +got):\n%s", diff)
	}

	// A rotation committed after the detection re-renders the same points.
	m.SetTransform(geometry.Scale(2, 3))
	if r.calls != 2 {
		t.Fatalf("renderer calls=%d want 2", r.calls)
	}
	if diff := cmp.Diff([]r2.Vec{{X: 2, Y: 6}}, r.last, approx); diff != "" {
		t.Fatalf("re-rendered points (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]r2.Vec{{X: 1, Y: 2}}, m.Points()); diff != "" {
		t.Fatalf("buffer-space points changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(r.last, m.Display(), approx); diff != "" {
		t.Fatalf("Display disagrees with last render (-want +got):\n%s", diff)
	}
}

func TestMapper_ClearRendersEmpty(t *testing.T) {
	r := &mockRenderer{}
	m := NewMapper(r)
	m.SetPoints([]r2.Vec{{X: 1, Y: 1}})
	m.Clear()
	if len(r.last) != 0 || len(m.Points()) != 0 {
		t.Fatalf("clear left points: rendered=%v stored=%v", r.last, m.Points())
	}
}

func TestMapper_NilSafe(t *testing.T) {
	var m *Mapper
	m.SetPoints(nil)
	m.SetTransform(geometry.Identity())
	m.Clear()
	if m.Points() != nil || m.Display() != nil {
		t.Fatalf("nil mapper returned points")
	}
	NewMapper(nil).SetPoints([]r2.Vec{{X: 1}})
}
