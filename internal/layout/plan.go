package layout

import (
	"errors"
	"fmt"
	"image"
)

var ErrSpineTooNarrowForText = errors.New("spine too narrow for text")

// Plan is the pixel layout of one wraparound cover at a fixed resolution.
//
// Panel rectangles are bleed-extended: the back panel includes the outer
// left bleed, the front panel the outer right bleed, and every panel spans
// the full canvas height including top and bottom bleed. The three panels
// are contiguous and cover the canvas exactly, left to right:
// back, spine, front.
//
// A Plan is immutable once built and is rebuilt for every request.
type Plan struct {
	Trim         TrimSize
	SpineWidthIn float64
	DPI          int

	// CanvasWidthIn and CanvasHeightIn are the physical page size the
	// document emitter must produce (trim + bleed on all outer edges).
	CanvasWidthIn  float64
	CanvasHeightIn float64

	Canvas image.Rectangle

	Back  image.Rectangle
	Spine image.Rectangle
	Front image.Rectangle

	// Safe-text rectangles, inset SafeMarginInches from the bleed-extended
	// panel rectangles.
	BackSafe  image.Rectangle
	FrontSafe image.Rectangle

	spineSafe image.Rectangle
}

// BuildPlan lays out the wraparound canvas for a trim size and spine width.
// All arithmetic stays in floating-point inches until the final pixel
// conversion so rounding error does not compound across panels.
func BuildPlan(trim TrimSize, spineWidthIn float64, dpi int) (*Plan, error) {
	if trim.WidthIn <= 0 || trim.HeightIn <= 0 {
		return nil, fmt.Errorf("%w: trim %.2fx%.2f", ErrInvalidDimension, trim.WidthIn, trim.HeightIn)
	}
	if spineWidthIn <= 0 {
		return nil, fmt.Errorf("%w: spine width %.4f", ErrInvalidDimension, spineWidthIn)
	}
	if dpi <= 0 {
		return nil, fmt.Errorf("%w: dpi %d", ErrInvalidDimension, dpi)
	}

	// Panel boundaries in inches, left to right.
	backRight := BleedInches + trim.WidthIn
	spineRight := backRight + spineWidthIn
	canvasW := spineRight + trim.WidthIn + BleedInches
	canvasH := trim.HeightIn + 2*BleedInches

	// Convert each boundary once; widths are differences of converted
	// boundaries, so panels stay contiguous with no rounding gaps.
	x1 := px(backRight, dpi)
	x2 := px(spineRight, dpi)
	w := px(canvasW, dpi)
	h := px(canvasH, dpi)

	safe := px(SafeMarginInches, dpi)
	spineTextMargin := px(SpineTextMarginInches, dpi)

	back := image.Rect(0, 0, x1, h)
	spine := image.Rect(x1, 0, x2, h)
	front := image.Rect(x2, 0, w, h)

	// Not image.Rect: that canonicalizes a negative-width rectangle, which
	// would mask a spine too narrow to hold its text margins.
	spineSafe := image.Rectangle{
		Min: image.Point{X: spine.Min.X + spineTextMargin, Y: safe},
		Max: image.Point{X: spine.Max.X - spineTextMargin, Y: h - safe},
	}

	return &Plan{
		Trim:           trim,
		SpineWidthIn:   spineWidthIn,
		DPI:            dpi,
		CanvasWidthIn:  canvasW,
		CanvasHeightIn: canvasH,
		Canvas:         image.Rect(0, 0, w, h),
		Back:           back,
		Spine:          spine,
		Front:          front,
		BackSafe:       back.Inset(safe),
		FrontSafe:      front.Inset(safe),
		spineSafe:      spineSafe,
	}, nil
}

// SpineTextRect returns the rectangle spine text must stay within. Spines
// close to the minimum width leave no room after the text margins; callers
// decide whether to omit the spine text or abort.
func (p *Plan) SpineTextRect() (image.Rectangle, error) {
	if p.spineSafe.Dx() <= 0 || p.spineSafe.Dy() <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: spine %.4f\" at %d dpi leaves %dpx for text",
			ErrSpineTooNarrowForText, p.SpineWidthIn, p.DPI, p.spineSafe.Dx())
	}
	return p.spineSafe, nil
}
