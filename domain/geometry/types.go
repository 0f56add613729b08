package geometry

import "fmt"

// Rotation is a display or sensor rotation in degrees relative to the natural orientation.
type Rotation int

const (
	Rotation0   Rotation = 0
	Rotation90  Rotation = 90
	Rotation180 Rotation = 180
	Rotation270 Rotation = 270

	// RotationUnknown marks a rotation that has not been reported yet. It is
	// never coerced to Rotation0.
	RotationUnknown Rotation = -1
)

// ParseRotation maps degrees to a Rotation. Anything other than a quarter turn is unknown.
func ParseRotation(deg int) Rotation {
	switch deg {
	case 0, 90, 180, 270:
		return Rotation(deg)
	default:
		return RotationUnknown
	}
}

// Valid reports whether r is one of the four quarter turns.
func (r Rotation) Valid() bool {
	switch r {
	case Rotation0, Rotation90, Rotation180, Rotation270:
		return true
	default:
		return false
	}
}

// Degrees returns r as a float, for building transforms.
func (r Rotation) Degrees() float64 { return float64(r) }

func (r Rotation) String() string {
	if !r.Valid() {
		return "unknown"
	}
	return fmt.Sprintf("%d°", int(r))
}

// Dimensions is a width/height pair in pixels. The zero value means "not yet known".
type Dimensions struct {
	Width  int
	Height int
}

// Dims is shorthand for Dimensions{w, h}.
func Dims(w, h int) Dimensions { return Dimensions{Width: w, Height: h} }

// Known reports whether both components are non-zero.
func (d Dimensions) Known() bool { return d.Width > 0 && d.Height > 0 }

func (d Dimensions) String() string { return fmt.Sprintf("%dx%d", d.Width, d.Height) }

// State is the last validated geometry of one viewfinder session.
// Fields only ever move from one valid value to another.
type State struct {
	BufferRotation       Rotation
	BufferDimensions     Dimensions
	ViewfinderRotation   Rotation
	ViewfinderDimensions Dimensions
	DisplayID            int
}

// NewState returns the initial state for the given display. rotation may be
// RotationUnknown if the display has not reported yet.
func NewState(displayID int, rotation Rotation) State {
	if !rotation.Valid() {
		rotation = RotationUnknown
	}
	return State{
		BufferRotation:     Rotation0,
		ViewfinderRotation: rotation,
		DisplayID:          displayID,
	}
}
