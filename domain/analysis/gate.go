package analysis

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/soocke/facecam-go/domain/capture"
)

// ErrNilFrame is returned by detectors handed a buffer without an image.
var ErrNilFrame = errors.New("analysis: nil frame")

// Detector finds points of interest in a frame, in buffer coordinates.
// Detect blocks; the gate runs it off the caller's goroutine.
type Detector interface {
	Detect(frame capture.Buffer) ([]r2.Vec, error)
}

// DetectorFunc adapts a function to Detector.
type DetectorFunc func(frame capture.Buffer) ([]r2.Vec, error)

func (f DetectorFunc) Detect(frame capture.Buffer) ([]r2.Vec, error) { return f(frame) }

// State of a Gate.
type State int

const (
	StateIdle State = iota
	StateAnalyzing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnalyzing:
		return "analyzing"
	default:
		return "unknown"
	}
}

// Stats counts gate activity. Dropped frames are expected and only counted.
type Stats struct {
	Accepted     uint64
	Dropped      uint64
	Completed    uint64
	Failed       uint64
	LastDuration time.Duration
}

// Gate admits at most one frame into the detector at a time. Frames offered
// while a detection is in flight are dropped, never queued.
type Gate struct {
	detector Detector
	onPoints func([]r2.Vec)
	logger   *slog.Logger

	// OnError, when set before the first TrySubmit, receives every detection failure.
	OnError func(error)

	busy   atomic.Bool
	closed atomic.Bool

	// fwdMu orders deliveries; lastSeq is the newest frame forwarded.
	fwdMu   sync.Mutex
	lastSeq uint64

	accepted  atomic.Uint64
	dropped   atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
	lastNanos atomic.Int64
}

// NewGate wraps detector. onPoints receives each successful point set on the
// detection goroutine.
func NewGate(detector Detector, onPoints func([]r2.Vec), logger *slog.Logger) *Gate {
	return &Gate{detector: detector, onPoints: onPoints, logger: logger}
}

// TrySubmit hands frame to the detector if no detection is in flight and
// reports whether it was accepted. It never blocks.
func (g *Gate) TrySubmit(frame capture.Buffer) bool {
	if g == nil || g.detector == nil || g.closed.Load() || frame.Empty() {
		return false
	}
	if !g.busy.CompareAndSwap(false, true) {
		g.dropped.Add(1)
		return false
	}
	g.accepted.Add(1)
	go g.run(frame)
	return true
}

// State reports whether a detection is in flight.
func (g *Gate) State() State {
	if g == nil || !g.busy.Load() {
		return StateIdle
	}
	return StateAnalyzing
}

func (g *Gate) Stats() Stats {
	if g == nil {
		return Stats{}
	}
	return Stats{
		Accepted:     g.accepted.Load(),
		Dropped:      g.dropped.Load(),
		Completed:    g.completed.Load(),
		Failed:       g.failed.Load(),
		LastDuration: time.Duration(g.lastNanos.Load()),
	}
}

// Close ends the session. New frames are refused and an in-flight detection
// completes without forwarding its result.
func (g *Gate) Close() {
	if g == nil {
		return
	}
	g.closed.Store(true)
}

// Closed reports whether Close was called.
func (g *Gate) Closed() bool { return g != nil && g.closed.Load() }

func (g *Gate) run(frame capture.Buffer) {
	start := time.Now()
	points, err := g.detect(frame)
	g.lastNanos.Store(int64(time.Since(start)))
	g.busy.Store(false)

	if err != nil {
		g.failed.Add(1)
		if g.closed.Load() {
			return
		}
		if g.logger != nil {
			g.logger.Error("analysis.failure", "sequence", frame.Sequence, "error", err)
		}
		if g.OnError != nil {
			g.OnError(err)
		}
		return
	}
	g.completed.Add(1)
	g.forward(frame.Sequence, points)
}

// forward delivers points unless a newer frame's points were already
// delivered. It reports whether onPoints ran.
func (g *Gate) forward(seq uint64, points []r2.Vec) bool {
	if g.closed.Load() || g.onPoints == nil {
		return false
	}
	g.fwdMu.Lock()
	defer g.fwdMu.Unlock()
	if seq < g.lastSeq {
		if g.logger != nil {
			g.logger.Debug("analysis.stale", "sequence", seq, "newest", g.lastSeq)
		}
		return false
	}
	g.lastSeq = seq
	if points == nil {
		points = []r2.Vec{}
	}
	g.onPoints(points)
	return true
}

// detect converts a detector panic into an error.
func (g *Gate) detect(frame capture.Buffer) (points []r2.Vec, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analysis: detector panic: %v", r)
		}
	}()
	return g.detector.Detect(frame)
}
