package app

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/soocke/facecam-go/config"
	"github.com/soocke/facecam-go/domain/analysis"
	"github.com/soocke/facecam-go/domain/camera"
	"github.com/soocke/facecam-go/domain/capture"
	"github.com/soocke/facecam-go/domain/detect"
	"github.com/soocke/facecam-go/domain/feed"
	"github.com/soocke/facecam-go/domain/geometry"
	"github.com/soocke/facecam-go/domain/overlay"
	"github.com/soocke/facecam-go/ui/model"
	"github.com/soocke/facecam-go/ui/presenter"
	"github.com/soocke/facecam-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config *config.Config
	Logger *slog.Logger

	Model       *model.PreviewModel
	Capture     *capture.Service
	Detector    analysis.Detector
	Gate        *analysis.Gate
	Orientation *feed.PollingOrientation
	Overlay     *overlay.Mapper
	Viewfinder  *presenter.ViewfinderController
	RootView    *view.RootView

	// Presenters
	Layout  *presenter.LayoutPresenter
	Preview *presenter.PreviewPresenter
	Toggle  *presenter.TogglePresenter
	Stats   *presenter.StatsPresenter
	Loop    *presenter.Loop
}

// BuildContainer constructs everything that does not need Tk: capture,
// analysis and the orientation feed. A missing camera falls back to screen
// capture and a missing cascade disables analysis; both are logged.
func BuildContainer(cfg *config.Config, logger *slog.Logger) *AppContainer {
	c := &AppContainer{Config: cfg, Logger: logger}
	c.Model = model.NewPreviewModel()

	grabber := openGrabber(cfg, logger)
	c.Capture = capture.NewService(grabber, geometry.ParseRotation(cfg.SensorRotation),
		time.Duration(cfg.CaptureMs)*time.Millisecond, logger)

	if cascade, err := detect.NewCascade(cfg.CascadePath); err != nil {
		logger.Warn("face analysis disabled", "path", cfg.CascadePath, "error", err)
	} else {
		c.Detector = cascade
	}
	c.Gate = analysis.NewGate(c.Detector, func(points []r2.Vec) { c.Overlay.SetPoints(points) }, logger)

	probe := feed.SystemProbe(geometry.ParseRotation(cfg.DisplayRotation))
	c.Orientation = feed.NewPollingOrientation(probe,
		time.Duration(cfg.OrientationPollMs)*time.Millisecond, logger, cfg.DisplayID)
	return c
}

func openGrabber(cfg *config.Config, logger *slog.Logger) capture.Grabber {
	if cfg.Source == config.SourceScreen {
		return capture.ScreenGrabber{}
	}
	cam, err := camera.Open(cfg.CameraDevice, cfg.TargetWidth, cfg.TargetHeight)
	if err != nil {
		logger.Warn("camera unavailable, capturing the screen", "device", cfg.CameraDevice, "error", err)
		return capture.ScreenGrabber{}
	}
	w, h := cam.Size()
	logger.Info("camera opened", "device", cfg.CameraDevice, "width", w, "height", h)
	return cam
}

// WireView binds the built root view to the viewfinder controller and the
// presenters. geom reports the Tk window geometry; schedule re-arms the loop.
func (c *AppContainer) WireView(rv *view.RootView, geom func() string, schedule func()) error {
	if rv == nil || rv.Viewfinder == nil {
		return presenter.ErrInvalidReference
	}
	c.RootView = rv

	c.Overlay = overlay.NewMapper(rv.Viewfinder)
	vf, err := presenter.NewViewfinderController(presenter.WeakSurface(rv.Viewfinder), c.Orientation, c.Config.DisplayID,
		func(_ geometry.Transform, s geometry.State) { c.Overlay.SetTransform(geometry.Display(s)) },
		c.Logger)
	if err != nil {
		return err
	}
	c.Viewfinder = vf

	reserved := c.Config.StatusRowsPx
	c.Layout = presenter.NewLayoutPresenter(geom, func() int { return reserved }, vf)
	c.Preview = presenter.NewPreviewPresenter(c.Model.Enabled, c.Capture, vf, c.Gate)
	c.Toggle = presenter.NewTogglePresenter(c.Model, c.Capture, vf, c.Overlay, rv, func() {
		c.Preview.Reset()
		c.Layout.Invalidate()
	})
	c.Stats = presenter.NewStatsPresenter(c.Model, c.Gate, vf, c.Capture, rv)
	c.Loop = presenter.NewLoop(c.Layout, c.Preview, c.Stats, rv.Viewfinder.Draw, schedule)
	return nil
}

// Close stops the preview and releases capture and analysis resources.
func (c *AppContainer) Close() error {
	if c == nil {
		return nil
	}
	c.Toggle.Disable()
	c.Viewfinder.Detach()
	c.Gate.Close()
	var errs []error
	if c.Capture != nil {
		errs = append(errs, c.Capture.Close())
	}
	if cl, ok := c.Detector.(io.Closer); ok {
		errs = append(errs, cl.Close())
	}
	return errors.Join(errs...)
}
