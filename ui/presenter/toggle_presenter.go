package presenter

import "github.com/soocke/facecam-go/domain/capture"

// PreviewModel provides enabled state access.
type PreviewModel interface {
	Enabled() bool
	SetEnabled(bool)
}

// Attacher is the viewfinder's subscription lifecycle.
type Attacher interface {
	Attach()
	Detach()
}

// PointClearer drops overlay points.
type PointClearer interface{ Clear() }

// ToggleView updates UI elements affected by starting or stopping the preview.
type ToggleView interface {
	PreviewReset()
	SetRunning(bool)
}

// TogglePresenter owns presentation logic for starting and stopping the preview.
type TogglePresenter struct {
	model      PreviewModel
	service    capture.Lifecycle
	viewfinder Attacher
	overlay    PointClearer
	view       ToggleView
	onEnable   func()
}

// NewTogglePresenter wires the toggle. overlay and onEnable may be nil.
func NewTogglePresenter(model PreviewModel, service capture.Lifecycle, viewfinder Attacher, overlay PointClearer, view ToggleView, onEnable func()) *TogglePresenter {
	return &TogglePresenter{model: model, service: service, viewfinder: viewfinder, overlay: overlay, view: view, onEnable: onEnable}
}

func (c *TogglePresenter) ready() bool {
	return c != nil && c.model != nil && c.service != nil && c.viewfinder != nil && c.view != nil
}

// Enable attaches the viewfinder and starts capture. Idempotent.
func (c *TogglePresenter) Enable() {
	if !c.ready() || c.model.Enabled() {
		return
	}
	c.viewfinder.Attach()
	c.service.Start()
	c.model.SetEnabled(true)
	if c.onEnable != nil {
		c.onEnable()
	}
	c.view.SetRunning(true)
}

// Disable stops capture, detaches the viewfinder and resets the preview. Idempotent.
func (c *TogglePresenter) Disable() {
	if !c.ready() || !c.model.Enabled() {
		return
	}
	c.service.Stop()
	c.viewfinder.Detach()
	c.model.SetEnabled(false)
	if c.overlay != nil {
		c.overlay.Clear()
	}
	c.view.PreviewReset()
	c.view.SetRunning(false)
}

// Toggle flips enabled state delegating to Enable/Disable.
func (c *TogglePresenter) Toggle() {
	if !c.ready() {
		return
	}
	if c.model.Enabled() {
		c.Disable()
		return
	}
	c.Enable()
}
