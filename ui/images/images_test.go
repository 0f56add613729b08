package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestScaleToFit_PreservesAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	got := ScaleToFit(src, 100, 100)
	if b := got.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("scaled size = %dx%d, want 100x50", b.Dx(), b.Dy())
	}
}

func TestScaleToFit_SmallSourceUntouched(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))
	if got := ScaleToFit(src, 100, 100); got != image.Image(src) {
		t.Fatalf("expected original image back")
	}
	if ScaleToFit(nil, 10, 10) != nil {
		t.Fatalf("nil source should stay nil")
	}
}

func TestEncodePNG_RoundTripsSize(t *testing.T) {
	if EncodePNG(nil) != nil {
		t.Fatalf("nil image should encode to nil")
	}
	data := EncodePNG(Placeholder(32, 16, "#102030"))
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Fatalf("decoded size = %dx%d", b.Dx(), b.Dy())
	}
	r, g, bl, _ := img.At(3, 3).RGBA()
	if r>>8 != 0x10 || g>>8 != 0x20 || bl>>8 != 0x30 {
		t.Fatalf("fill colour = %x %x %x", r>>8, g>>8, bl>>8)
	}
}

func TestHex(t *testing.T) {
	cases := map[string]color.RGBA{
		"#10b981": {R: 0x10, G: 0xb9, B: 0x81, A: 0xff},
		"#FFFFFF": {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		"10b981":  {A: 0xff},
		"#zzzzzz": {A: 0xff},
	}
	for in, want := range cases {
		if got := Hex(in); got != want {
			t.Fatalf("Hex(%q) = %v, want %v", in, got, want)
		}
	}
}
