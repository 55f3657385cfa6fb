// Package imagefit scales cover art to exact panel dimensions. Sources that
// already match the panel aspect ratio are resampled directly; wider or
// taller sources are center-cropped; sources that would leave the panel
// uncovered are placed over a blurred, edge-tinted extension of themselves
// instead of being hard-cropped or letterboxed.
package imagefit

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/disintegration/imaging"
)

var (
	ErrUnsupportedImageFormat = errors.New("unsupported image format")
	ErrImageTooSmall          = errors.New("image too small")
)

const (
	// minSourceDim is the usability floor for the smaller source dimension.
	minSourceDim = 100

	// maxUpscale is the largest scale factor applied without complaint.
	// Beyond it the fit proceeds but logs a quality warning.
	maxUpscale = 4.0

	// aspectTolerance is the relative aspect-ratio difference below which
	// the source is treated as matching the target.
	aspectTolerance = 0.01

	// minFillRatio is how much of the deficient axis the centered image
	// must cover before the blurred extension shows around it.
	minFillRatio = 0.85

	// blurSigma and tintOpacity shape the extension background: a
	// cover-scaled Gaussian blur of the source, blended toward the
	// sampled edge color.
	blurSigma   = 15.0
	tintOpacity = 0.3
)

// Fit decodes source image bytes and returns an image of exactly
// targetW x targetH pixels, preserving the source aspect ratio.
func Fit(data []byte, targetW, targetH int) (*image.NRGBA, error) {
	if targetW <= 0 || targetH <= 0 {
		return nil, fmt.Errorf("imagefit: non-positive target %dx%d", targetW, targetH)
	}

	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImageFormat, err)
	}
	return fitImage(src, targetW, targetH)
}

func fitImage(src image.Image, targetW, targetH int) (*image.NRGBA, error) {
	srcW := src.Bounds().Dx()
	srcH := src.Bounds().Dy()
	if min(srcW, srcH) < minSourceDim {
		return nil, fmt.Errorf("%w: %dx%d, smaller dimension below %dpx",
			ErrImageTooSmall, srcW, srcH, minSourceDim)
	}

	scale := math.Max(float64(targetW)/float64(srcW), float64(targetH)/float64(srcH))
	if scale > maxUpscale {
		log.Printf("WARNING: upscaling %dx%d source %.1fx to reach %dx%d, quality will suffer",
			srcW, srcH, scale, targetW, targetH)
	}

	srcRatio := float64(srcW) / float64(srcH)
	targetRatio := float64(targetW) / float64(targetH)

	// Aspect ratios match: resample straight to the target.
	if math.Abs(srcRatio-targetRatio) <= aspectTolerance*targetRatio {
		return imaging.Resize(src, targetW, targetH, imaging.Lanczos), nil
	}

	// coverage is the fraction of the panel a scale-to-fit would cover on
	// the deficient axis. A near miss is center-cropped; worse than
	// minFillRatio would crop away too much subject matter, so the image
	// is extended instead.
	coverage := srcRatio / targetRatio
	if coverage > 1 {
		coverage = 1 / coverage
	}
	if coverage >= minFillRatio {
		return imaging.Fill(src, targetW, targetH, imaging.Center, imaging.Lanczos), nil
	}

	// Extension: scale until the deficient axis covers minFillRatio of the
	// panel (the other axis overflows and is clipped by the centered
	// paste), over a blurred, edge-tinted background.
	var newW, newH int
	if srcRatio > targetRatio {
		newH = int(math.Ceil(minFillRatio * float64(targetH)))
		newW = int(float64(srcW) * float64(newH) / float64(srcH))
	} else {
		newW = int(math.Ceil(minFillRatio * float64(targetW)))
		newH = int(float64(srcH) * float64(newW) / float64(srcW))
	}

	background := extensionBackground(src, targetW, targetH)
	scaled := imaging.Resize(src, newW, newH, imaging.Lanczos)
	return imaging.PasteCenter(background, scaled), nil
}

// extensionBackground builds the fill behind an image that does not cover
// its panel: the source scaled to cover, blurred, and tinted toward the
// sampled edge color.
func extensionBackground(src image.Image, targetW, targetH int) *image.NRGBA {
	edge := EdgeColor(src)
	covered := imaging.Fill(src, targetW, targetH, imaging.Center, imaging.Lanczos)
	blurred := imaging.Blur(covered, blurSigma)
	tint := imaging.New(targetW, targetH, edge)
	return imaging.Overlay(blurred, tint, image.Point{}, tintOpacity)
}

// EdgeColor samples the outermost rows and columns of an image and returns
// their average color, used to synthesize extension fill.
func EdgeColor(src image.Image) color.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}

	var sumR, sumG, sumB, n uint64
	add := func(x, y int) {
		r, g, bl, _ := src.At(x, y).RGBA()
		sumR += uint64(r >> 8)
		sumG += uint64(g >> 8)
		sumB += uint64(bl >> 8)
		n++
	}

	stepX := max(1, w/20)
	stepY := max(1, h/20)
	for x := b.Min.X; x < b.Max.X; x += stepX {
		add(x, b.Min.Y)
		add(x, b.Max.Y-1)
	}
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		add(b.Min.X, y)
		add(b.Max.X-1, y)
	}

	return color.NRGBA{
		R: uint8(sumR / n),
		G: uint8(sumG / n),
		B: uint8(sumB / n),
		A: 255,
	}
}
