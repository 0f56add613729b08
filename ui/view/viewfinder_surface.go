package view

import (
	"image"
	"image/color"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/soocke/facecam-go/domain/capture"
	"github.com/soocke/facecam-go/domain/geometry"
	"github.com/soocke/facecam-go/ui/images"
	"github.com/soocke/facecam-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	// Raw preview bounds used until the first layout is known.
	fallbackW = 640
	fallbackH = 360
)

// ViewfinderSurface is the Tk label that shows camera buffers under the
// viewfinder transform with face points on top.
//
// ApplyTransform, SetBuffer and SetPoints may be called from any goroutine;
// they only record state. Draw and Reset touch Tk and must run on the Tk thread.
type ViewfinderSurface struct {
	label      *LabelWidget
	logger     *slog.Logger
	radius     int
	pointColor color.RGBA
	letterbox  color.RGBA

	mu        sync.Mutex
	transform geometry.Transform
	buffer    capture.Buffer
	points    []r2.Vec
	dirty     bool
	viewport  geometry.Dimensions

	discarded atomic.Bool
	photo     *Img // Tk thread only
}

// NewViewfinderSurface creates and grids the viewfinder label at row.
// logger may be nil.
func NewViewfinderSurface(row, columns, pointRadius int, logger *slog.Logger) *ViewfinderSurface {
	if pointRadius <= 0 {
		pointRadius = 8
	}
	photo := NewPhoto(Data(images.EncodePNG(images.Placeholder(fallbackW, fallbackH, theme.ColorSurface))))
	label := Label(Image(photo), Borderwidth(0))
	Grid(label, Row(row), Column(0), Columnspan(columns), Sticky("nsew"))
	return &ViewfinderSurface{
		label:      label,
		logger:     logger,
		radius:     pointRadius,
		pointColor: images.Hex(theme.ColorPoint),
		letterbox:  images.Hex(theme.ColorSurface),
		transform:  geometry.Identity(),
		photo:      photo,
	}
}

func (s *ViewfinderSurface) ApplyTransform(t geometry.Transform) {
	s.mu.Lock()
	s.transform = t
	s.dirty = true
	s.mu.Unlock()
}

// SetBuffer accepts capture.Buffer handles; anything else is ignored.
func (s *ViewfinderSurface) SetBuffer(handle any) {
	b, ok := handle.(capture.Buffer)
	if !ok || b.Empty() {
		return
	}
	s.mu.Lock()
	s.buffer = b
	s.dirty = true
	s.mu.Unlock()
}

// SetPoints records overlay points in viewfinder coordinates.
func (s *ViewfinderSurface) SetPoints(points []r2.Vec) {
	cp := make([]r2.Vec, len(points))
	copy(cp, points)
	s.mu.Lock()
	s.points = cp
	s.dirty = true
	s.mu.Unlock()
}

// Discarded reports whether the widget has been torn down.
func (s *ViewfinderSurface) Discarded() bool { return s.discarded.Load() }

// Discard marks the surface gone and frees its photo.
func (s *ViewfinderSurface) Discard() {
	if s.discarded.Swap(true) {
		return
	}
	if s.photo != nil {
		func() { defer func() { _ = recover() }(); s.photo.Delete() }()
		s.photo = nil
	}
}

// Reset drops the current buffer and points and shows the placeholder.
func (s *ViewfinderSurface) Reset() {
	if s.discarded.Load() {
		return
	}
	s.mu.Lock()
	s.buffer = capture.Buffer{}
	s.points = nil
	s.dirty = false
	vp := s.viewport
	s.mu.Unlock()

	w, h := fallbackW, fallbackH
	if vp.Known() {
		w, h = vp.Width, vp.Height
	}
	s.show(images.Placeholder(w, h, theme.ColorSurface))
}

// Draw renders the latest buffer into viewport if anything changed since the last draw.
func (s *ViewfinderSurface) Draw(viewport geometry.Dimensions) {
	if s.discarded.Load() {
		return
	}
	s.mu.Lock()
	if !s.dirty && viewport == s.viewport {
		s.mu.Unlock()
		return
	}
	s.dirty = false
	s.viewport = viewport
	buf, t := s.buffer, s.transform
	points := s.points
	s.mu.Unlock()

	if buf.Empty() {
		return
	}
	if !viewport.Known() {
		s.show(images.ScaleToFit(buf.Image, fallbackW, fallbackH))
		return
	}
	display := t.Compose(geometry.ContentTransform(buf.Rotation, buf.Dimensions, viewport))
	img, err := s.compose(buf.Image, display, viewport, points)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("viewfinder.draw", "sequence", buf.Sequence, "viewport", viewport.String(), "error", err)
		}
		return
	}
	s.show(img)
}

// compose warps src by display into a viewport-sized frame and draws points.
func (s *ViewfinderSurface) compose(src image.Image, display geometry.Transform, viewport geometry.Dimensions, points []r2.Vec) (image.Image, error) {
	mat, err := gocv.ImageToMatRGB(src)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	m := display.Matrix()
	tm := gocv.NewMatWithSize(2, 3, gocv.MatTypeCV64F)
	defer tm.Close()
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			tm.SetDoubleAt(r, c, m[r][c])
		}
	}

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.WarpAffineWithParams(mat, &dst, tm, image.Point{X: viewport.Width, Y: viewport.Height},
		gocv.InterpolationLinear, gocv.BorderConstant, s.letterbox)

	for _, p := range points {
		center := image.Point{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
		gocv.Circle(&dst, center, s.radius, s.pointColor, -1)
	}
	return dst.ToImage()
}

// show swaps the label's photo, deleting the previous one.
func (s *ViewfinderSurface) show(img image.Image) {
	if img == nil || s.label == nil {
		return
	}
	defer func() { _ = recover() }()
	photo := NewPhoto(Data(images.EncodePNG(img)))
	s.label.Configure(Image(photo))
	if s.photo != nil {
		s.photo.Delete()
	}
	s.photo = photo
}
