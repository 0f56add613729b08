package images

import (
	"fmt"
	"image/color"
)

// Hex parses "#rrggbb" into an opaque colour. Malformed input yields opaque black.
func Hex(s string) color.RGBA {
	var r, g, b uint8
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{A: 0xff}
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
