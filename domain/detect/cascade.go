// Package detect finds faces with an OpenCV Haar cascade.
package detect

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/soocke/facecam-go/domain/analysis"
	"github.com/soocke/facecam-go/domain/capture"
)

// ErrCascadeLoad is returned when the cascade file cannot be loaded.
var ErrCascadeLoad = errors.New("detect: cascade load failed")

// Cascade is an analysis.Detector emitting FacePoints for each face found.
// The classifier is not safe for concurrent use, so Detect serialises on mu.
type Cascade struct {
	mu         sync.Mutex
	classifier gocv.CascadeClassifier
	closed     bool
}

var errClosed = errors.New("detect: cascade closed")

// NewCascade loads the cascade XML at path.
func NewCascade(path string) (*Cascade, error) {
	c := gocv.NewCascadeClassifier()
	if !c.Load(path) {
		_ = c.Close()
		return nil, fmt.Errorf("%w: %s", ErrCascadeLoad, path)
	}
	return &Cascade{classifier: c}, nil
}

func (c *Cascade) Detect(frame capture.Buffer) ([]r2.Vec, error) {
	if frame.Empty() {
		return nil, analysis.ErrNilFrame
	}
	mat, err := gocv.ImageToMatRGB(frame.Image)
	if err != nil {
		return nil, fmt.Errorf("detect: convert frame: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)
	gocv.EqualizeHist(gray, &gray)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, errClosed
	}
	rects := c.classifier.DetectMultiScale(gray)
	c.mu.Unlock()
	return analysis.FacePoints(rects), nil
}

func (c *Cascade) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.classifier.Close()
}

var _ analysis.Detector = (*Cascade)(nil)
