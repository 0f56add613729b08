package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Recompute derives the viewfinder transform from the current state and a set
// of candidate inputs. It returns ok=false when nothing changed or any input is
// still invalid; in both cases the returned state equals cur. Inputs are
// committed together or not at all.
func Recompute(cur State, rotation Rotation, buffer, viewfinder Dimensions) (Transform, State, bool) {
	if rotation == cur.ViewfinderRotation &&
		buffer == cur.BufferDimensions &&
		viewfinder == cur.ViewfinderDimensions {
		return Transform{}, cur, false
	}
	if !rotation.Valid() {
		return Transform{}, cur, false
	}
	if !buffer.Known() {
		return Transform{}, cur, false
	}
	if !viewfinder.Known() {
		return Transform{}, cur, false
	}

	next := cur
	next.ViewfinderRotation = rotation
	next.BufferDimensions = buffer
	next.ViewfinderDimensions = viewfinder

	return Fit(next), next, true
}

// Fit builds the center-crop transform for an already validated state.
func Fit(s State) Transform {
	vf := s.ViewfinderDimensions
	pivot := Pivot(vf)
	xScale, yScale := CenterCropScale(s.BufferDimensions, vf)
	return Identity().
		PostRotate(-s.ViewfinderRotation.Degrees(), pivot).
		PreScale(xScale, yScale, pivot)
}

// Pivot is the centre of the viewfinder.
func Pivot(viewfinder Dimensions) r2.Vec {
	return r2.Vec{X: float64(viewfinder.Width) / 2, Y: float64(viewfinder.Height) / 2}
}

// CenterCropScale returns the relative scale that fills the viewfinder with
// the buffer, matching the longer viewfinder side. Buffers arrive rotated
// relative to the natural orientation, so their width and height are swapped.
// Both dimensions must be known.
func CenterCropScale(buffer, viewfinder Dimensions) (xScale, yScale float64) {
	ratio := float64(buffer.Height) / float64(buffer.Width)

	var scaledW, scaledH int
	if viewfinder.Width > viewfinder.Height {
		scaledH = viewfinder.Width
		scaledW = int(math.Round(float64(viewfinder.Width) * ratio))
	} else {
		scaledH = viewfinder.Height
		scaledW = int(math.Round(float64(viewfinder.Height) * ratio))
	}

	xScale = float64(scaledW) / float64(viewfinder.Width)
	yScale = float64(scaledH) / float64(viewfinder.Height)
	return xScale, yScale
}
