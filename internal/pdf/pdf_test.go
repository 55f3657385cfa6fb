package pdf

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/julisunkan/CoverWizard/internal/composer"
)

func TestEmit(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 120, 80))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	canvas := &composer.Canvas{
		Image:    img,
		WidthIn:  12.7004,
		HeightIn: 9.25,
		DPI:      300,
		Title:    "Sample",
		Author:   "Author",
	}

	var buf bytes.Buffer
	if err := Emit(&buf, canvas); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "%PDF-") {
		t.Fatal("output is not a PDF")
	}
	if !strings.Contains(out, "/MediaBox") {
		t.Error("missing MediaBox")
	}
	// 12.7004in x 9.25in at 72pt/in.
	if !strings.Contains(out, "914.43") || !strings.Contains(out, "666.00") {
		t.Error("page size does not match the physical cover dimensions")
	}
}

func TestEmitNilCanvas(t *testing.T) {
	var buf bytes.Buffer
	if err := Emit(&buf, nil); err == nil {
		t.Error("expected error for nil canvas")
	}
	if err := Emit(&buf, &composer.Canvas{}); err == nil {
		t.Error("expected error for canvas without image")
	}
}
