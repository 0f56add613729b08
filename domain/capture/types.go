package capture

import (
	"image"
	"time"

	"github.com/soocke/facecam-go/domain/geometry"
)

// Buffer is one captured frame with the geometry it was produced in.
// Image is treated as an opaque handle by the viewfinder.
type Buffer struct {
	Image      image.Image
	Rotation   geometry.Rotation
	Dimensions geometry.Dimensions
	Sequence   uint64
	CapturedAt time.Time
}

// Empty reports whether the buffer carries no image.
func (b Buffer) Empty() bool { return b.Image == nil }

// Grabber produces raw frames. Grab may block until a frame is ready.
type Grabber interface {
	Grab() (image.Image, error)
}

// FrameSource provides read-only access to captured frames.
// LatestFrame returns the freshest buffer while Running reports activity.
type FrameSource interface {
	LatestFrame() Buffer
	Running() bool
}

// Lifecycle exposes basic control of a capture loop.
type Lifecycle interface {
	Start()
	Stop()
	Running() bool
}
