package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ContentTransform maps raw buffer pixels to the viewfinder before any fit is
// applied: the buffer is turned upright by rotation and stretched to fill the
// viewfinder. Unknown dimensions yield Identity.
func ContentTransform(rotation Rotation, buffer, viewfinder Dimensions) Transform {
	if !buffer.Known() || !viewfinder.Known() {
		return Identity()
	}
	if !rotation.Valid() {
		rotation = Rotation0
	}
	rot := Rotate(rotation.Degrees())
	w, h := float64(buffer.Width), float64(buffer.Height)

	minX, minY := math.Inf(1), math.Inf(1)
	for _, p := range [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		q := rot.Apply(r2.Vec{X: p[0], Y: p[1]})
		minX = math.Min(minX, q.X)
		minY = math.Min(minY, q.Y)
	}

	upright := rotatedDims(rotation, buffer)
	sx := float64(viewfinder.Width) / float64(upright.Width)
	sy := float64(viewfinder.Height) / float64(upright.Height)
	return Scale(sx, sy).
		Compose(Translation(-minX, -minY)).
		Compose(rot)
}

// Display is the full raw-buffer to screen mapping for a validated state: the
// upright content followed by the center-crop fit.
func Display(s State) Transform {
	content := ContentTransform(s.BufferRotation, s.BufferDimensions, s.ViewfinderDimensions)
	return Fit(s).Compose(content)
}

func rotatedDims(r Rotation, d Dimensions) Dimensions {
	if r == Rotation90 || r == Rotation270 {
		return Dims(d.Height, d.Width)
	}
	return d
}
