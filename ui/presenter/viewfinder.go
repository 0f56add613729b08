package presenter

import (
	"errors"
	"log/slog"
	"sync"
	"weak"

	"github.com/google/uuid"

	"github.com/soocke/facecam-go/domain/feed"
	"github.com/soocke/facecam-go/domain/geometry"
)

// ErrInvalidReference is returned when the viewfinder surface is missing or
// already discarded at construction.
var ErrInvalidReference = errors.New("presenter: invalid surface reference")

// RenderingSurface shows camera buffers under a transform. Both calls are
// fire-and-forget.
type RenderingSurface interface {
	ApplyTransform(t geometry.Transform)
	SetBuffer(handle any)
}

// SurfaceRef is a non-owning reference to a RenderingSurface.
type SurfaceRef interface {
	// Surface returns the referent, or false once it is gone.
	Surface() (RenderingSurface, bool)
}

// discarder is implemented by surfaces that outlive their on-screen widget.
type discarder interface{ Discarded() bool }

type weakSurface[T any] struct{ p weak.Pointer[T] }

// WeakSurface references p without keeping it alive. The reference also
// reports gone once p.Discarded() returns true, if p has that method.
func WeakSurface[T any](p *T) SurfaceRef {
	if p == nil {
		return weakSurface[T]{}
	}
	return weakSurface[T]{p: weak.Make(p)}
}

func (w weakSurface[T]) Surface() (RenderingSurface, bool) {
	v := w.p.Value()
	if v == nil {
		return nil, false
	}
	s, ok := any(v).(RenderingSurface)
	if !ok {
		return nil, false
	}
	if d, ok := s.(discarder); ok && d.Discarded() {
		return nil, false
	}
	return s, true
}

// candidates are the latest raw feed values, valid or not. The committed state
// only ever moves to a full set of valid candidates.
type candidates struct {
	rotation   geometry.Rotation
	buffer     geometry.Dimensions
	viewfinder geometry.Dimensions
}

// ViewfinderController owns the geometry of one viewfinder session. It merges
// orientation, layout and buffer events into the current state, recomputes the
// center-crop transform and applies it to the surface when it changes.
//
// Event handlers may be called from any goroutine; state mutation and surface
// application are serialised.
type ViewfinderController struct {
	ref         SurfaceRef
	orientation feed.Orientation
	onTransform TransformListener
	logger      *slog.Logger
	session     string

	mu           sync.Mutex
	state        geometry.State
	pending      candidates
	transform    geometry.Transform
	hasTransform bool

	subMu    sync.Mutex
	sub      feed.Subscription
	attached bool
}

// TransformListener receives every applied transform together with the state
// it was derived from. It runs with the controller locked and must not call
// back into it.
type TransformListener func(t geometry.Transform, s geometry.State)

// NewViewfinderController builds a controller for the surface behind ref on
// displayID and attaches it to orientation. onTransform, if non-nil, receives
// every applied transform.
func NewViewfinderController(ref SurfaceRef, orientation feed.Orientation, displayID int, onTransform TransformListener, logger *slog.Logger) (*ViewfinderController, error) {
	if ref == nil {
		return nil, ErrInvalidReference
	}
	if _, ok := ref.Surface(); !ok {
		return nil, ErrInvalidReference
	}
	rotation := geometry.RotationUnknown
	if orientation != nil {
		rotation = orientation.Rotation(displayID)
	}
	session := uuid.NewString()
	if logger != nil {
		logger = logger.With("session", session)
	}
	c := &ViewfinderController{
		ref:         ref,
		orientation: orientation,
		onTransform: onTransform,
		logger:      logger,
		session:     session,
		state:       geometry.NewState(displayID, rotation),
		pending:     candidates{rotation: rotation},
	}
	c.Attach()
	return c, nil
}

// Attach subscribes to the orientation feed. Repeated calls are no-ops.
func (c *ViewfinderController) Attach() {
	if c == nil || c.orientation == nil {
		return
	}
	c.subMu.Lock()
	defer c.subMu.Unlock()
	if c.attached {
		return
	}
	c.sub = c.orientation.Subscribe(c.OnOrientation)
	c.attached = true
	if c.logger != nil {
		c.logger.Debug("viewfinder.attach", "display", c.displayID())
	}
}

// Detach unsubscribes from the orientation feed. Repeated calls are no-ops.
func (c *ViewfinderController) Detach() {
	if c == nil || c.orientation == nil {
		return
	}
	c.subMu.Lock()
	defer c.subMu.Unlock()
	if !c.attached {
		return
	}
	c.orientation.Unsubscribe(c.sub)
	c.sub = 0
	c.attached = false
	if c.logger != nil {
		c.logger.Debug("viewfinder.detach")
	}
}

// Attached reports whether the controller is subscribed to orientation.
func (c *ViewfinderController) Attached() bool {
	if c == nil {
		return false
	}
	c.subMu.Lock()
	defer c.subMu.Unlock()
	return c.attached
}

// OnOrientation handles a rotation change. Other displays are ignored, as are
// events delivered after Detach.
func (c *ViewfinderController) OnOrientation(displayID int, rotation geometry.Rotation) {
	if !c.Attached() {
		return
	}
	surface, ok := c.live()
	if !ok {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if displayID != c.state.DisplayID {
		return
	}
	c.pending.rotation = rotation
	c.recompute(surface, rotation)
}

// OnLayout handles a change of the viewfinder's on-screen size.
func (c *ViewfinderController) OnLayout(dims geometry.Dimensions) {
	surface, ok := c.live()
	if !ok {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending.viewfinder = dims
	c.recompute(surface, c.rotation())
}

// OnNewBuffer hands handle to the surface unmodified, then re-evaluates the
// transform with the buffer's geometry.
func (c *ViewfinderController) OnNewBuffer(rotation geometry.Rotation, dims geometry.Dimensions, handle any) {
	surface, ok := c.live()
	if !ok {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	surface.SetBuffer(handle)
	if rotation.Valid() {
		c.state.BufferRotation = rotation
	}
	c.pending.buffer = dims
	c.recompute(surface, c.rotation())
}

// State returns a snapshot of the session geometry.
func (c *ViewfinderController) State() geometry.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Transform returns the last applied transform, if any.
func (c *ViewfinderController) Transform() (geometry.Transform, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transform, c.hasTransform
}

// Session is the id attached to this controller's log records.
func (c *ViewfinderController) Session() string { return c.session }

func (c *ViewfinderController) live() (RenderingSurface, bool) {
	if c == nil || c.ref == nil {
		return nil, false
	}
	return c.ref.Surface()
}

// rotation is the display's current rotation, falling back to the last
// reported value when the feed has nothing. Called with mu held.
func (c *ViewfinderController) rotation() geometry.Rotation {
	if c.orientation != nil {
		if r := c.orientation.Rotation(c.state.DisplayID); r.Valid() {
			return r
		}
	}
	return c.pending.rotation
}

func (c *ViewfinderController) displayID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.DisplayID
}

// recompute merges rotation with the pending dimensions. Called with mu held.
func (c *ViewfinderController) recompute(surface RenderingSurface, rotation geometry.Rotation) {
	t, next, ok := geometry.Recompute(c.state, rotation, c.pending.buffer, c.pending.viewfinder)
	if !ok {
		return
	}
	c.state = next
	c.transform = t
	c.hasTransform = true
	surface.ApplyTransform(t)
	if c.onTransform != nil {
		c.onTransform(t, next)
	}
	if c.logger != nil {
		xs, ys := geometry.CenterCropScale(next.BufferDimensions, next.ViewfinderDimensions)
		c.logger.Debug("viewfinder.transform",
			"rotation", next.ViewfinderRotation.String(),
			"buffer", next.BufferDimensions.String(),
			"viewfinder", next.ViewfinderDimensions.String(),
			"x_scale", xs,
			"y_scale", ys,
		)
	}
}
