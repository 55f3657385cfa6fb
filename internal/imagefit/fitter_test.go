package imagefit

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// testPNG encodes a solid-color image of the given size to PNG bytes.
func testPNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestFitExactDimensions(t *testing.T) {
	blue := color.NRGBA{B: 200, A: 255}
	tests := []struct {
		name             string
		srcW, srcH       int
		targetW, targetH int
	}{
		{name: "matching aspect", srcW: 500, srcH: 750, targetW: 1000, targetH: 1500},
		{name: "near miss cropped", srcW: 520, srcH: 750, targetW: 1000, targetH: 1500},
		{name: "very wide source extended", srcW: 1000, srcH: 200, targetW: 400, targetH: 400},
		{name: "very tall source extended", srcW: 200, srcH: 1000, targetW: 400, targetH: 400},
		{name: "wide onto portrait panel", srcW: 700, srcH: 600, targetW: 600, targetH: 900},
		{name: "tall onto landscape panel", srcW: 600, srcH: 700, targetW: 900, targetH: 600},
		{name: "tiny target", srcW: 500, srcH: 500, targetW: 100, targetH: 100},
		{name: "print sized target", srcW: 1500, srcH: 2250, targetW: 1838, targetH: 2775},
		{name: "extreme ratio 0.2", srcW: 200, srcH: 1000, targetW: 300, targetH: 450},
		{name: "extreme ratio 5.0", srcW: 1000, srcH: 200, targetW: 300, targetH: 450},
		{name: "large canvas", srcW: 1200, srcH: 1800, targetW: 6000, targetH: 9000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := testPNG(t, tt.srcW, tt.srcH, blue)
			got, err := Fit(data, tt.targetW, tt.targetH)
			if err != nil {
				t.Fatalf("Fit: %v", err)
			}
			if got.Bounds().Dx() != tt.targetW || got.Bounds().Dy() != tt.targetH {
				t.Errorf("output %dx%d, want exactly %dx%d",
					got.Bounds().Dx(), got.Bounds().Dy(), tt.targetW, tt.targetH)
			}
		})
	}
}

// A solid source keeps its color wherever it ends up on the panel,
// including the extended region, since the edge color equals the fill.
func TestFitSolidSourcePreservesColor(t *testing.T) {
	c := color.NRGBA{R: 180, G: 40, B: 40, A: 255}
	data := testPNG(t, 600, 700, c)

	got, err := Fit(data, 900, 600)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	center := got.NRGBAAt(450, 300)
	if absDiff(center.R, c.R) > 3 || absDiff(center.G, c.G) > 3 || absDiff(center.B, c.B) > 3 {
		t.Errorf("center pixel %v, want ~%v", center, c)
	}
}

func TestFitUnsupportedFormat(t *testing.T) {
	if _, err := Fit([]byte("definitely not an image"), 100, 100); !errors.Is(err, ErrUnsupportedImageFormat) {
		t.Errorf("expected ErrUnsupportedImageFormat, got %v", err)
	}
}

func TestFitImageTooSmall(t *testing.T) {
	data := testPNG(t, 50, 400, color.NRGBA{A: 255})
	if _, err := Fit(data, 400, 600); !errors.Is(err, ErrImageTooSmall) {
		t.Errorf("expected ErrImageTooSmall, got %v", err)
	}
}

func TestFitInvalidTarget(t *testing.T) {
	data := testPNG(t, 200, 200, color.NRGBA{A: 255})
	if _, err := Fit(data, 0, 100); err == nil {
		t.Error("expected error for zero target width")
	}
}

func TestEdgeColor(t *testing.T) {
	uniform := image.NewNRGBA(image.Rect(0, 0, 120, 120))
	want := color.NRGBA{R: 10, G: 120, B: 240, A: 255}
	for y := 0; y < 120; y++ {
		for x := 0; x < 120; x++ {
			uniform.SetNRGBA(x, y, want)
		}
	}
	got := EdgeColor(uniform)
	if absDiff(got.R, want.R) > 1 || absDiff(got.G, want.G) > 1 || absDiff(got.B, want.B) > 1 {
		t.Errorf("EdgeColor = %v, want ~%v", got, want)
	}

	// Dark border around a bright center: edges dominate the sample.
	bordered := image.NewNRGBA(image.Rect(0, 0, 120, 120))
	for y := 0; y < 120; y++ {
		for x := 0; x < 120; x++ {
			if x == 0 || y == 0 || x == 119 || y == 119 {
				bordered.SetNRGBA(x, y, color.NRGBA{R: 20, G: 20, B: 20, A: 255})
			} else {
				bordered.SetNRGBA(x, y, color.NRGBA{R: 250, G: 250, B: 250, A: 255})
			}
		}
	}
	got = EdgeColor(bordered)
	if got.R > 60 {
		t.Errorf("EdgeColor sampled interior pixels: %v", got)
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
