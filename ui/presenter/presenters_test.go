package presenter

import (
	"image"
	"strings"
	"testing"
	"time"

	"github.com/soocke/facecam-go/domain/analysis"
	"github.com/soocke/facecam-go/domain/capture"
	"github.com/soocke/facecam-go/domain/geometry"
)

type mockSource struct {
	running bool
	buf     capture.Buffer
}

func (s *mockSource) LatestFrame() capture.Buffer { return s.buf }
func (s *mockSource) Running() bool               { return s.running }

type bufferCall struct {
	rotation geometry.Rotation
	dims     geometry.Dimensions
	handle   any
}

type mockSink struct {
	buffers []bufferCall
	layouts []geometry.Dimensions
}

func (s *mockSink) OnNewBuffer(r geometry.Rotation, d geometry.Dimensions, h any) {
	s.buffers = append(s.buffers, bufferCall{r, d, h})
}
func (s *mockSink) OnLayout(d geometry.Dimensions) { s.layouts = append(s.layouts, d) }

type mockSubmitter struct{ submitted []uint64 }

func (m *mockSubmitter) TrySubmit(b capture.Buffer) bool {
	m.submitted = append(m.submitted, b.Sequence)
	return true
}

func buffer(seq uint64) capture.Buffer {
	return capture.Buffer{
		Image:      image.NewRGBA(image.Rect(0, 0, 8, 6)),
		Rotation:   geometry.Rotation90,
		Dimensions: geometry.Dims(8, 6),
		Sequence:   seq,
	}
}

func TestPreviewPresenter_ForwardsEachSequenceOnce(t *testing.T) {
	enabled := true
	src := &mockSource{running: true, buf: buffer(1)}
	sink := &mockSink{}
	gate := &mockSubmitter{}
	p := NewPreviewPresenter(func() bool { return enabled }, src, sink, gate)

	if !p.Tick() {
		t.Fatalf("first buffer not delivered")
	}
	if p.Tick() {
		t.Fatalf("same sequence delivered twice")
	}
	src.buf = buffer(2)
	p.Tick()
	if len(sink.buffers) != 2 || len(gate.submitted) != 2 {
		t.Fatalf("deliveries: sink=%d gate=%d", len(sink.buffers), len(gate.submitted))
	}
	got := sink.buffers[1]
	if got.rotation != geometry.Rotation90 || got.dims != geometry.Dims(8, 6) {
		t.Fatalf("buffer geometry not forwarded: %+v", got)
	}
	if h, ok := got.handle.(capture.Buffer); !ok || h.Sequence != 2 {
		t.Fatalf("handle should be the buffer itself: %#v", got.handle)
	}

	enabled = false
	src.buf = buffer(3)
	if p.Tick() {
		t.Fatalf("disabled presenter delivered a buffer")
	}
	enabled = true
	src.running = false
	if p.Tick() {
		t.Fatalf("stopped source delivered a buffer")
	}
}

func TestPreviewPresenter_SkipsEmptyAndResets(t *testing.T) {
	src := &mockSource{running: true}
	sink := &mockSink{}
	p := NewPreviewPresenter(func() bool { return true }, src, sink, nil)
	if p.Tick() {
		t.Fatalf("empty buffer delivered")
	}
	src.buf = buffer(5)
	p.Tick()
	p.Reset()
	if !p.Tick() {
		t.Fatalf("reset should allow redelivery")
	}
	if len(sink.buffers) != 2 {
		t.Fatalf("sink buffers=%d want 2", len(sink.buffers))
	}
}

func TestLayoutPresenter_FiresOnChange(t *testing.T) {
	geom := "800x600+10+10"
	reserved := 40
	sink := &mockSink{}
	p := NewLayoutPresenter(func() string { return geom }, func() int { return reserved }, sink)

	p.Tick()
	p.Tick()
	if len(sink.layouts) != 1 || sink.layouts[0] != geometry.Dims(800, 560) {
		t.Fatalf("layouts=%v want [800x560]", sink.layouts)
	}
	geom = "800x600+50+50" // moved, not resized
	p.Tick()
	if len(sink.layouts) != 1 {
		t.Fatalf("move fired a layout: %v", sink.layouts)
	}
	geom = "bogus"
	p.Tick()
	geom = "1024x768+0+0"
	p.Tick()
	if len(sink.layouts) != 2 || p.Last() != geometry.Dims(1024, 728) {
		t.Fatalf("resize not emitted: %v last=%v", sink.layouts, p.Last())
	}
	p.Invalidate()
	p.Tick()
	if len(sink.layouts) != 3 {
		t.Fatalf("invalidate should re-emit: %v", sink.layouts)
	}
}

type mockModel struct{ enabled bool }

func (m *mockModel) Enabled() bool     { return m.enabled }
func (m *mockModel) SetEnabled(b bool) { m.enabled = b }

type mockService struct{ started, stopped int }

func (s *mockService) Start()        { s.started++ }
func (s *mockService) Stop()         { s.stopped++ }
func (s *mockService) Running() bool { return s.started > s.stopped }

var _ capture.Lifecycle = (*mockService)(nil)

type mockAttacher struct{ attached, detached int }

func (a *mockAttacher) Attach() { a.attached++ }
func (a *mockAttacher) Detach() { a.detached++ }

type mockClearer struct{ cleared int }

func (c *mockClearer) Clear() { c.cleared++ }

type mockToggleView struct {
	reset, runningCalls int
	lastRunning         bool
}

func (v *mockToggleView) PreviewReset()     { v.reset++ }
func (v *mockToggleView) SetRunning(b bool) { v.runningCalls++; v.lastRunning = b }

func TestTogglePresenter_EnableDisable_Idempotent(t *testing.T) {
	m := &mockModel{}
	svc := &mockService{}
	vf := &mockAttacher{}
	ov := &mockClearer{}
	view := &mockToggleView{}
	enabledHook := 0
	p := NewTogglePresenter(m, svc, vf, ov, view, func() { enabledHook++ })

	p.Enable()
	if !m.Enabled() || svc.started != 1 || vf.attached != 1 || !view.lastRunning || enabledHook != 1 {
		t.Fatalf("enable failed: enabled=%v started=%d attached=%d running=%v hook=%d", m.Enabled(), svc.started, vf.attached, view.lastRunning, enabledHook)
	}
	p.Enable()
	if svc.started != 1 || vf.attached != 1 || enabledHook != 1 {
		t.Fatalf("enable not idempotent: started=%d attached=%d", svc.started, vf.attached)
	}

	p.Disable()
	if m.Enabled() || svc.stopped != 1 || vf.detached != 1 || ov.cleared != 1 || view.reset != 1 || view.lastRunning {
		t.Fatalf("disable failed: enabled=%v stopped=%d detached=%d cleared=%d reset=%d running=%v", m.Enabled(), svc.stopped, vf.detached, ov.cleared, view.reset, view.lastRunning)
	}
	p.Disable()
	if svc.stopped != 1 || vf.detached != 1 || view.reset != 1 {
		t.Fatalf("disable not idempotent: stopped=%d detached=%d reset=%d", svc.stopped, vf.detached, view.reset)
	}
}

func TestTogglePresenter_Toggle(t *testing.T) {
	m := &mockModel{}
	svc := &mockService{}
	vf := &mockAttacher{}
	view := &mockToggleView{}
	p := NewTogglePresenter(m, svc, vf, nil, view, nil)
	p.Toggle()
	if !m.Enabled() || svc.started != 1 || vf.attached != 1 {
		t.Fatalf("toggle enable failed")
	}
	p.Toggle()
	if m.Enabled() || svc.stopped != 1 || vf.detached != 1 || view.reset != 1 {
		t.Fatalf("toggle disable failed")
	}
	var nilPresenter *TogglePresenter
	nilPresenter.Toggle()
}

type mockSession struct{ ticks int }

func (s *mockSession) OnTick(time.Time)                       { s.ticks++ }
func (s *mockSession) Values() (session, total time.Duration) { return time.Second, 2 * time.Second }

type mockGate struct {
	state analysis.State
	stats analysis.Stats
}

func (g *mockGate) State() analysis.State { return g.state }
func (g *mockGate) Stats() analysis.Stats { return g.stats }

type mockGeometry struct{ state geometry.State }

func (g *mockGeometry) State() geometry.State { return g.state }

type mockStatsView struct {
	session, total time.Duration
	statuses       []string
}

func (v *mockStatsView) SetSession(s, t time.Duration) { v.session, v.total = s, t }
func (v *mockStatsView) SetStatus(s string)            { v.statuses = append(v.statuses, s) }

func TestStatsPresenter_StatusOnlyOnChange(t *testing.T) {
	sess := &mockSession{}
	gate := &mockGate{state: analysis.StateAnalyzing, stats: analysis.Stats{Completed: 3, Failed: 1, Dropped: 7}}
	geo := &mockGeometry{state: geometry.State{
		ViewfinderRotation:   geometry.Rotation90,
		ViewfinderDimensions: geometry.Dims(1080, 1920),
		BufferDimensions:     geometry.Dims(1920, 1080),
	}}
	view := &mockStatsView{}
	p := NewStatsPresenter(sess, gate, geo, nil, view)

	now := time.Unix(0, 0)
	p.Tick(now)
	p.Tick(now)
	if sess.ticks != 2 || view.session != time.Second || view.total != 2*time.Second {
		t.Fatalf("session not forwarded: ticks=%d session=%v total=%v", sess.ticks, view.session, view.total)
	}
	if len(view.statuses) != 1 {
		t.Fatalf("status re-sent without change: %v", view.statuses)
	}
	status := view.statuses[0]
	for _, want := range []string{"1080x1920 @ 90°", "1920x1080", "analyzing", "3 ok", "1 failed", "7 dropped"} {
		if !strings.Contains(status, want) {
			t.Fatalf("status %q missing %q", status, want)
		}
	}
	gate.state = analysis.StateIdle
	p.Tick(now)
	if len(view.statuses) != 2 || !strings.Contains(view.statuses[1], "idle") {
		t.Fatalf("state change not shown: %v", view.statuses)
	}
}

func TestLoop_TicksAndSchedules(t *testing.T) {
	src := &mockSource{running: true, buf: buffer(1)}
	sink := &mockSink{}
	view := &mockStatsView{}
	scheduled := 0
	var rendered []geometry.Dimensions
	l := NewLoop(
		NewLayoutPresenter(func() string { return "640x480+0+0" }, nil, sink),
		NewPreviewPresenter(func() bool { return true }, src, sink, nil),
		NewStatsPresenter(nil, &mockGate{}, nil, nil, view),
		func(vp geometry.Dimensions) { rendered = append(rendered, vp) },
		func() { scheduled++ },
	)
	l.Tick()
	if len(sink.layouts) != 1 || len(sink.buffers) != 1 || len(view.statuses) != 1 || scheduled != 1 {
		t.Fatalf("loop tick: layouts=%d buffers=%d statuses=%d scheduled=%d", len(sink.layouts), len(sink.buffers), len(view.statuses), scheduled)
	}
	if len(rendered) != 1 || rendered[0] != geometry.Dims(640, 480) {
		t.Fatalf("render saw %v, want one 640x480 viewport", rendered)
	}
	var zero Loop
	zero.Tick()
	var nilLoop *Loop
	nilLoop.Tick()
}
