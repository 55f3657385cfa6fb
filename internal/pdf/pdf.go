// Package pdf emits the composited cover as a single-page PDF whose page
// size matches the physical wraparound dimensions exactly, so the printer
// receives trim + bleed with no scaling.
package pdf

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/julisunkan/CoverWizard/internal/composer"
)

// Emit writes canvas to w as a one-page PDF of canvas.WidthIn x
// canvas.HeightIn inches, with the raster placed edge to edge.
func Emit(w io.Writer, canvas *composer.Canvas) error {
	if canvas == nil || canvas.Image == nil {
		return fmt.Errorf("pdf: nil canvas")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas.Image); err != nil {
		return fmt.Errorf("encoding canvas PNG: %w", err)
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "in",
		Size:    gofpdf.SizeType{Wd: canvas.WidthIn, Ht: canvas.HeightIn},
	})
	doc.SetTitle(canvas.Title, true)
	doc.SetAuthor(canvas.Author, true)
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPageFormat("P", gofpdf.SizeType{Wd: canvas.WidthIn, Ht: canvas.HeightIn})

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("cover", opts, &buf)
	doc.ImageOptions("cover", 0, 0, canvas.WidthIn, canvas.HeightIn, false, opts, 0, "")

	if err := doc.Error(); err != nil {
		return fmt.Errorf("building cover PDF: %w", err)
	}
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("writing cover PDF: %w", err)
	}
	return nil
}
