package theme

// Palette and widget styles for the viewfinder window.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#0f172a" // app background
	ColorSurface   = "#1e293b" // viewfinder letterbox
	ColorBorder    = "#334155"
	ColorPrimary   = "#3b82f6" // buttons, accents
	ColorDanger    = "#ef4444"
	ColorAccent    = "#10b981"
	ColorText      = "#f1f5f9"
	ColorTextMuted = "#94a3b8"

	// ColorPoint is the fill of overlay face points.
	ColorPoint = "#facc15"
)

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleStatusLabel   = "status.TLabel"
	StyleStateLabel    = "state.TLabel"
)

// InitStyles activates the base theme and configures the semantic styles.
func InitStyles() {
	_ = ActivateTheme("azure dark")
	App.Configure(Background(ColorBg))

	StyleConfigure(StylePrimaryButton,
		Background(ColorPrimary),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(ColorDanger),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleStatusLabel,
		Foreground(ColorTextMuted),
		Background(ColorBg),
		Padding("2p 1p"),
	)
	StyleConfigure(StyleStateLabel,
		Foreground("#f0fdf4"),
		Background(ColorAccent),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
}
