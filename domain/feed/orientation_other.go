//go:build !windows

package feed

import "github.com/soocke/facecam-go/domain/geometry"

// SystemProbe has no display rotation source outside Windows and reports
// fallback for every display.
func SystemProbe(fallback geometry.Rotation) Probe { return FixedProbe(fallback) }
