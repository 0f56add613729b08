// Package layout derives viewfinder bounds from Tk window geometry.
package layout

import (
	"image"
	"regexp"
	"strconv"
	"strings"

	"github.com/soocke/facecam-go/domain/geometry"
)

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y".
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)([+-]-?\d+)([+-]-?\d+)$`)

// ParseGeometry parses a Tk geometry string and returns the window rectangle.
func ParseGeometry(g string) (image.Rectangle, bool) {
	g = strings.TrimSpace(g)
	m := geomRe.FindStringSubmatch(g)
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, err := parseOffset(m[3])
	if err != nil {
		return image.Rectangle{}, false
	}
	y, err := parseOffset(m[4])
	if err != nil {
		return image.Rectangle{}, false
	}
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}

// parseOffset accepts "+N", "-N" and Tk's "+-N" for negative offsets.
func parseOffset(s string) (int, error) {
	s = strings.TrimPrefix(s, "+")
	return strconv.Atoi(s)
}

// Viewfinder returns the area left for the preview once reserved pixel rows
// (status bar, buttons) are taken from the window. An area that collapses to
// nothing yields zero Dimensions, the "not yet known" value.
func Viewfinder(window image.Rectangle, reservedRows int) geometry.Dimensions {
	if reservedRows < 0 {
		reservedRows = 0
	}
	w, h := window.Dx(), window.Dy()-reservedRows
	if w <= 0 || h <= 0 {
		return geometry.Dimensions{}
	}
	return geometry.Dims(w, h)
}
