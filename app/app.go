package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/facecam-go/config"
	"github.com/soocke/facecam-go/ui/theme"
	"github.com/soocke/facecam-go/ui/view"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

type app struct {
	container *AppContainer
	logger    *slog.Logger
	tick      time.Duration
	afterID   string
	closed    bool
}

// NewApp creates the main window and the container behind it.
func NewApp(title string, width, height int, cfg *config.Config, logger *slog.Logger) *app {
	a := &app{
		container: BuildContainer(cfg, logger),
		logger:    logger,
		tick:      time.Duration(cfg.TickMs) * time.Millisecond,
	}

	App.WmTitle(title)
	WmProtocol(App.Window, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App.Window, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the UI, starts the preview and blocks in the Tk event loop.
func (a *app) Start() error {
	theme.InitStyles()

	rv := view.NewRootView(a.container.Config.PointRadius, a.logger)
	rv.Build(func() { a.container.Toggle.Toggle() }, a.exitHandler)
	geom := func() string { return WmGeometry(App.Window) }
	if err := a.container.WireView(rv, geom, a.scheduleUpdate); err != nil {
		_ = a.container.Close()
		return fmt.Errorf("app: wire view: %w", err)
	}

	a.container.Toggle.Enable()
	a.scheduleUpdate()

	App.Wait()
	return nil
}

func (a *app) exitHandler() {
	if a.closed {
		return
	}
	a.closed = true
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	if err := a.container.Close(); err != nil {
		a.logger.Error("shutdown", "error", err)
	}
	if a.container.RootView != nil {
		a.container.RootView.Discard()
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	if a.closed {
		return
	}
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(a.tick, func() { a.container.Loop.Tick() })
}
