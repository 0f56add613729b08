package layout

import (
	"image"
	"testing"

	"github.com/soocke/facecam-go/domain/geometry"
)

func TestParseGeometry(t *testing.T) {
	cases := []struct {
		in   string
		want image.Rectangle
		ok   bool
	}{
		{"800x600+100+100", image.Rect(100, 100, 900, 700), true},
		{" 1080x1920+0+0\n", image.Rect(0, 0, 1080, 1920), true},
		{"640x480-10+20", image.Rect(-10, 20, 630, 500), true},
		{"640x480+-10+20", image.Rect(-10, 20, 630, 500), true},
		{"0x480+0+0", image.Rectangle{}, false},
		{"640x480", image.Rectangle{}, false},
		{"garbage", image.Rectangle{}, false},
		{"", image.Rectangle{}, false},
	}
	for _, tc := range cases {
		got, ok := ParseGeometry(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseGeometry(%q) = %v,%v want %v,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestViewfinder(t *testing.T) {
	win := image.Rect(100, 100, 900, 700)
	if got := Viewfinder(win, 40); got != geometry.Dims(800, 560) {
		t.Fatalf("Viewfinder = %v want 800x560", got)
	}
	if got := Viewfinder(win, -5); got != geometry.Dims(800, 600) {
		t.Fatalf("negative reserve: %v", got)
	}
	if got := Viewfinder(win, 600); got.Known() {
		t.Fatalf("collapsed viewfinder should be unknown, got %v", got)
	}
}
