package analysis

import (
	"image"

	"gonum.org/v1/gonum/spatial/r2"
)

// PointsPerFace is the number of points FacePoints emits for each box.
const PointsPerFace = 5

// FacePoints flattens face boxes into a point set: for every box its centre
// followed by the top-left, top-right, bottom-right and bottom-left corners.
func FacePoints(rects []image.Rectangle) []r2.Vec {
	out := make([]r2.Vec, 0, len(rects)*PointsPerFace)
	for _, r := range rects {
		if r.Empty() {
			continue
		}
		minX, minY := float64(r.Min.X), float64(r.Min.Y)
		maxX, maxY := float64(r.Max.X), float64(r.Max.Y)
		out = append(out,
			r2.Vec{X: (minX + maxX) / 2, Y: (minY + maxY) / 2},
			r2.Vec{X: minX, Y: minY},
			r2.Vec{X: maxX, Y: minY},
			r2.Vec{X: maxX, Y: maxY},
			r2.Vec{X: minX, Y: maxY},
		)
	}
	return out
}
