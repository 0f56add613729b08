package view

import (
	"log/slog"
	"time"

	"github.com/soocke/facecam-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level window: a toolbar row, the viewfinder and a
// status line. Presenters talk to it through ToggleView and StatsView.
type RootView struct {
	logger *slog.Logger
	radius int

	Session    SessionStats
	Viewfinder *ViewfinderSurface

	StateLabel  *LabelWidget
	StatusLabel *LabelWidget
}

func NewRootView(pointRadius int, logger *slog.Logger) *RootView {
	return &RootView{radius: pointRadius, logger: logger}
}

// Build constructs the layout. Handlers are invoked on user actions.
func (rv *RootView) Build(onToggle func(), onExit func()) {
	if rv == nil {
		return
	}
	// Row 0: state label, session stats, buttons frame
	rv.StateLabel = Label(Txt("Preview: off"), Borderwidth(1), Relief("ridge"))
	Grid(rv.StateLabel, Row(0), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.Session = NewSessionStats(nil, 0, 1)

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(3), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	toggleBtn := TButton(Txt("Toggle Preview"), Style(theme.StylePrimaryButton), Command(onToggle))
	Grid(toggleBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := TButton(Txt("Exit"), Style(theme.StyleDangerButton), Command(onExit))
	Grid(exitBtn, In(btnFrame), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Row 1: viewfinder
	rv.Viewfinder = NewViewfinderSurface(1, 4, rv.radius, rv.logger)
	GridRowConfigure(App.Window, 1, Weight(1))
	GridColumnConfigure(App.Window, 0, Weight(1))

	// Row 2: status line
	rv.StatusLabel = TLabel(Txt(""), Style(theme.StyleStatusLabel))
	Grid(rv.StatusLabel, Row(2), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
}

// SetRunning updates the state label.
func (rv *RootView) SetRunning(running bool) {
	if rv == nil || rv.StateLabel == nil {
		return
	}
	text := "Preview: off"
	if running {
		text = "Preview: on"
	}
	rv.StateLabel.Configure(Txt(text))
}

// PreviewReset clears the viewfinder.
func (rv *RootView) PreviewReset() {
	if rv != nil && rv.Viewfinder != nil {
		rv.Viewfinder.Reset()
	}
}

// SetSession updates both session and total preview durations.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.SetSession(session)
	rv.Session.SetTotal(total)
}

// SetStatus replaces the status line.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

// Discard detaches the viewfinder surface before the window is destroyed.
func (rv *RootView) Discard() {
	if rv != nil && rv.Viewfinder != nil {
		rv.Viewfinder.Discard()
	}
}
