package capture

import (
	"image"

	"github.com/vova616/screenshot"
)

// ScreenGrabber captures the primary monitor, or Rect when it is non-empty.
// It stands in for a camera when none is attached.
type ScreenGrabber struct {
	Rect image.Rectangle
}

func (g ScreenGrabber) Grab() (image.Image, error) {
	if !g.Rect.Empty() {
		img, err := screenshot.CaptureRect(g.Rect)
		if err != nil || img == nil {
			return nil, err
		}
		return img, nil
	}
	img, err := screenshot.CaptureScreen()
	if err != nil || img == nil {
		return nil, err
	}
	return img, nil
}
