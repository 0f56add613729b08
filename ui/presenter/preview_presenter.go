package presenter

import (
	"github.com/soocke/facecam-go/domain/capture"
	"github.com/soocke/facecam-go/domain/geometry"
)

// BufferSink receives every new camera buffer.
type BufferSink interface {
	OnNewBuffer(rotation geometry.Rotation, dims geometry.Dimensions, handle any)
}

// FrameSubmitter offers frames to analysis without blocking.
type FrameSubmitter interface {
	TrySubmit(frame capture.Buffer) bool
}

// PreviewPresenter is the buffer feed: on each tick it forwards a buffer
// it has not seen yet to the viewfinder and offers it to analysis.
type PreviewPresenter struct {
	enabled func() bool
	source  capture.FrameSource
	sink    BufferSink
	gate    FrameSubmitter

	lastSeq uint64
}

func NewPreviewPresenter(enabled func() bool, source capture.FrameSource, sink BufferSink, gate FrameSubmitter) *PreviewPresenter {
	return &PreviewPresenter{enabled: enabled, source: source, sink: sink, gate: gate}
}

// Tick forwards the latest buffer. It reports whether a new buffer was delivered.
func (p *PreviewPresenter) Tick() bool {
	if p == nil || p.enabled == nil || p.source == nil || p.sink == nil {
		return false
	}
	if !p.enabled() || !p.source.Running() {
		return false
	}
	b := p.source.LatestFrame()
	if b.Empty() || b.Sequence == 0 || b.Sequence == p.lastSeq {
		return false
	}
	p.lastSeq = b.Sequence
	p.sink.OnNewBuffer(b.Rotation, b.Dimensions, b)
	if p.gate != nil {
		p.gate.TrySubmit(b)
	}
	return true
}

// Reset forgets the last delivered sequence, e.g. after the capture restarts.
func (p *PreviewPresenter) Reset() {
	if p != nil {
		p.lastSeq = 0
	}
}
