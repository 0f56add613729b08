package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Transform is a 2x3 affine matrix in screen coordinates (y down).
//
//	[A B TX]
//	[C D TY]
//
// It is an immutable value; every operation returns a new Transform.
type Transform struct {
	A, B, TX float64
	C, D, TY float64
}

// Identity returns the identity transform.
func Identity() Transform { return Transform{A: 1, D: 1} }

// Translation returns a transform moving points by (tx, ty).
func Translation(tx, ty float64) Transform { return Transform{A: 1, D: 1, TX: tx, TY: ty} }

// Scale returns an anisotropic scale about the origin.
func Scale(sx, sy float64) Transform { return Transform{A: sx, D: sy} }

// Rotate returns a rotation about the origin. Positive degrees turn +X
// towards +Y, which is clockwise on screen.
func Rotate(deg float64) Transform {
	sin, cos := sincosDeg(deg)
	return Transform{A: cos, B: -sin, C: sin, D: cos}
}

// RotationAbout rotates by deg around pivot.
func RotationAbout(deg float64, pivot r2.Vec) Transform {
	return Translation(pivot.X, pivot.Y).
		Compose(Rotate(deg)).
		Compose(Translation(-pivot.X, -pivot.Y))
}

// ScaleAbout scales by (sx, sy) around pivot.
func ScaleAbout(sx, sy float64, pivot r2.Vec) Transform {
	return Translation(pivot.X, pivot.Y).
		Compose(Scale(sx, sy)).
		Compose(Translation(-pivot.X, -pivot.Y))
}

// Compose returns t * other: other is applied first, then t.
func (t Transform) Compose(other Transform) Transform {
	return Transform{
		A:  t.A*other.A + t.B*other.C,
		B:  t.A*other.B + t.B*other.D,
		TX: t.A*other.TX + t.B*other.TY + t.TX,
		C:  t.C*other.A + t.D*other.C,
		D:  t.C*other.B + t.D*other.D,
		TY: t.C*other.TX + t.D*other.TY + t.TY,
	}
}

// PostRotate appends a rotation about pivot, applied after t.
func (t Transform) PostRotate(deg float64, pivot r2.Vec) Transform {
	return RotationAbout(deg, pivot).Compose(t)
}

// PreScale prepends a scale about pivot, applied before t.
func (t Transform) PreScale(sx, sy float64, pivot r2.Vec) Transform {
	return t.Compose(ScaleAbout(sx, sy, pivot))
}

// Apply maps a single point.
func (t Transform) Apply(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: t.A*p.X + t.B*p.Y + t.TX,
		Y: t.C*p.X + t.D*p.Y + t.TY,
	}
}

// Inverse returns the inverse transform and false if t is singular.
func (t Transform) Inverse() (Transform, bool) {
	det := t.A*t.D - t.B*t.C
	if math.Abs(det) < 1e-12 {
		return Transform{}, false
	}
	inv := 1 / det
	return Transform{
		A:  t.D * inv,
		B:  -t.B * inv,
		TX: (t.B*t.TY - t.D*t.TX) * inv,
		C:  -t.C * inv,
		D:  t.A * inv,
		TY: (t.C*t.TX - t.A*t.TY) * inv,
	}, true
}

// Matrix returns the row-major 2x3 coefficients, the layout OpenCV expects.
func (t Transform) Matrix() [2][3]float64 {
	return [2][3]float64{
		{t.A, t.B, t.TX},
		{t.C, t.D, t.TY},
	}
}

// sincosDeg is exact for quarter turns so 90° rotations keep integral coordinates.
func sincosDeg(deg float64) (sin, cos float64) {
	if q := deg / 90; q == math.Trunc(q) {
		switch ((int(q) % 4) + 4) % 4 {
		case 0:
			return 0, 1
		case 1:
			return 1, 0
		case 2:
			return 0, -1
		case 3:
			return -1, 0
		}
	}
	return math.Sincos(deg * math.Pi / 180)
}
