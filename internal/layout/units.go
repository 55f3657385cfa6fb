// Package layout computes the print geometry of a wraparound book cover:
// unit conversion, trim sizes, spine width and the panel plan that places
// back cover, spine and front cover on a single bleed-extended canvas.
package layout

import (
	"errors"
	"fmt"
	"math"
)

// Print production constants (KDP requirements).
const (
	// BleedInches is the extra margin around the trim edge, trimmed off
	// during printing. Background art must extend into it.
	BleedInches = 0.125

	// SafeMarginInches is the additional inset inside which text and other
	// important content must stay.
	SafeMarginInches = 0.25

	// SpineTextMarginInches is the text inset from each long spine edge.
	// The generic safe margin is wider than most spines, so the spine uses
	// the dedicated KDP spine rule instead.
	SpineTextMarginInches = 0.0625

	// DefaultDPI is the output raster resolution for print quality.
	DefaultDPI = 300

	// PointsPerInch is the fixed typographic conversion factor.
	PointsPerInch = 72.0
)

var ErrInvalidDimension = errors.New("invalid dimension")

// InchesToPixels converts inches to whole pixels at the given resolution,
// rounding to the nearest pixel.
func InchesToPixels(in float64, dpi int) (int, error) {
	if in < 0 {
		return 0, fmt.Errorf("%w: %.4f inches is negative", ErrInvalidDimension, in)
	}
	if dpi <= 0 {
		return 0, fmt.Errorf("%w: dpi %d must be positive", ErrInvalidDimension, dpi)
	}
	return int(math.Round(in * float64(dpi))), nil
}

// InchesToPoints converts inches to typographic points (1 inch = 72 points).
func InchesToPoints(in float64) (float64, error) {
	if in < 0 {
		return 0, fmt.Errorf("%w: %.4f inches is negative", ErrInvalidDimension, in)
	}
	return in * PointsPerInch, nil
}

// px converts validated, non-negative inches to pixels. Internal use only;
// callers have already checked their inputs.
func px(in float64, dpi int) int {
	return int(math.Round(in * float64(dpi)))
}
