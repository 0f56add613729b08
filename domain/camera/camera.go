// Package camera reads frames from a local video device through OpenCV.
package camera

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// ErrOpen is returned when the video device cannot be opened.
var ErrOpen = errors.New("camera: open failed")

var errEmptyRead = errors.New("camera: empty read")

// Grabber implements capture.Grabber over a gocv VideoCapture.
type Grabber struct {
	mu     sync.Mutex
	cam    *gocv.VideoCapture
	mat    gocv.Mat
	closed bool
}

// Open opens device and requests width x height. Drivers may pick a
// different mode; frames carry their real size.
func Open(device, width, height int) (*Grabber, error) {
	cam, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("%w: device %d: %w", ErrOpen, device, err)
	}
	if !cam.IsOpened() {
		cam.Close()
		return nil, fmt.Errorf("%w: device %d", ErrOpen, device)
	}
	if width > 0 && height > 0 {
		cam.Set(gocv.VideoCaptureFrameWidth, float64(width))
		cam.Set(gocv.VideoCaptureFrameHeight, float64(height))
	}
	// Keep only the newest frame in the driver queue.
	cam.Set(gocv.VideoCaptureBufferSize, 1)
	return &Grabber{cam: cam, mat: gocv.NewMat()}, nil
}

// Grab blocks until the device delivers the next frame.
func (g *Grabber) Grab() (image.Image, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil, errors.New("camera: closed")
	}
	if ok := g.cam.Read(&g.mat); !ok || g.mat.Empty() {
		return nil, errEmptyRead
	}
	img, err := g.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("camera: convert frame: %w", err)
	}
	return img, nil
}

// Size reports the mode the driver settled on.
func (g *Grabber) Size() (width, height int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return 0, 0
	}
	return int(g.cam.Get(gocv.VideoCaptureFrameWidth)), int(g.cam.Get(gocv.VideoCaptureFrameHeight))
}

func (g *Grabber) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil
	}
	g.closed = true
	_ = g.mat.Close()
	return g.cam.Close()
}
