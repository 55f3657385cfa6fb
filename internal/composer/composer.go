// Package composer orchestrates cover generation: it derives the spine
// width, builds the panel plan, fits the cover art, renders the text layers
// and composites everything onto one wraparound canvas. One call in, one
// canvas (or error) out; no state is shared across requests.
package composer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/julisunkan/CoverWizard/internal/imagefit"
	"github.com/julisunkan/CoverWizard/internal/layout"
	"github.com/julisunkan/CoverWizard/internal/overlay"
)

var (
	ErrMissingRequiredImage = errors.New("missing required image")
	ErrMissingTitle         = errors.New("missing title")
	ErrInvalidColor         = errors.New("invalid color")
)

// Proportional text placement within the safe rectangles. Fixed offsets,
// no collision avoidance between layers.
const (
	titleBandBottom    = 0.40 // title occupies the top 40% of the front safe area
	subtitleBandBottom = 0.55
	authorBandTop      = 0.70
	blurbBandTop       = 0.125 // back blurb starts an eighth of the way down
	blurbBandBottom    = 0.625
)

// Request is one cover generation job. The composer never retains it.
type Request struct {
	FrontImage []byte // required
	BackImage  []byte // optional; back panel gets a solid fill when absent

	Title     string // required
	Subtitle  string
	Author    string
	SpineText string // optional; derived from title and author when empty
	BackText  string // back-cover blurb

	TrimKey   string
	PageCount int
	Paper     layout.Paper

	TextColor      string  // hex "#rrggbb"; defaults to white
	TitleFontSize  float64 // pixels; defaults relative to DPI
	AuthorFontSize float64

	DPI int // defaults to layout.DefaultDPI
}

// Canvas is the finished, composited cover plus the physical page metadata
// the document emitter needs.
type Canvas struct {
	Image    *image.NRGBA
	WidthIn  float64
	HeightIn float64
	DPI      int
	Plan     *layout.Plan

	Title  string
	Author string
}

// Composer generates covers. Safe for concurrent use: all per-request state
// is local to Generate.
type Composer struct {
	fonts *overlay.Renderer
}

func New(fonts *overlay.Renderer) *Composer {
	return &Composer{fonts: fonts}
}

// Generate runs the full pipeline for one request. Any failure aborts the
// request; no partial output is returned.
func (c *Composer) Generate(req Request) (*Canvas, error) {
	// Validate.
	if len(req.FrontImage) == 0 {
		return nil, fmt.Errorf("%w: front cover image", ErrMissingRequiredImage)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrMissingTitle
	}
	dpi := req.DPI
	if dpi == 0 {
		dpi = layout.DefaultDPI
	}
	textColor, err := parseHexColor(req.TextColor)
	if err != nil {
		return nil, err
	}

	// Plan.
	trim, err := layout.ResolveTrim(req.TrimKey)
	if err != nil {
		return nil, err
	}
	spineIn, err := layout.SpineWidth(req.PageCount, req.Paper)
	if err != nil {
		return nil, err
	}
	plan, err := layout.BuildPlan(trim, spineIn, dpi)
	if err != nil {
		return nil, err
	}

	// Fit images. Front and back share no state, so they run in parallel.
	var (
		wg          sync.WaitGroup
		front, back *image.NRGBA
		frontErr    error
		backErr     error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		front, frontErr = imagefit.Fit(req.FrontImage, plan.Front.Dx(), plan.Front.Dy())
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		if len(req.BackImage) == 0 {
			// No back art: solid neutral fill, no fitting.
			back = solidPanel(plan.Back.Dx(), plan.Back.Dy(), color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			return
		}
		back, backErr = imagefit.Fit(req.BackImage, plan.Back.Dx(), plan.Back.Dy())
	}()
	wg.Wait()
	if frontErr != nil {
		return nil, fmt.Errorf("fitting front image: %w", frontErr)
	}
	if backErr != nil {
		return nil, fmt.Errorf("fitting back image: %w", backErr)
	}

	// The spine carries no art; fill it with the front panel's edge color
	// so the wrap reads as continuous.
	spine := solidPanel(plan.Spine.Dx(), plan.Spine.Dy(), imagefit.EdgeColor(front))

	// Render text layers per panel, in panel-local coordinates.
	front, err = c.fonts.Render(front, frontLayers(req, plan, textColor, dpi))
	if err != nil {
		return nil, fmt.Errorf("rendering front text: %w", err)
	}
	back, err = c.fonts.Render(back, backLayers(req, plan, textColor, dpi))
	if err != nil {
		return nil, fmt.Errorf("rendering back text: %w", err)
	}
	spine, err = c.fonts.Render(spine, spineLayers(req, plan, textColor))
	if err != nil {
		return nil, fmt.Errorf("rendering spine text: %w", err)
	}

	// Composite the panels at the plan offsets.
	canvas := image.NewNRGBA(plan.Canvas)
	draw.Draw(canvas, plan.Back, back, image.Point{}, draw.Src)
	draw.Draw(canvas, plan.Spine, spine, image.Point{}, draw.Src)
	draw.Draw(canvas, plan.Front, front, image.Point{}, draw.Src)

	return &Canvas{
		Image:    canvas,
		WidthIn:  plan.CanvasWidthIn,
		HeightIn: plan.CanvasHeightIn,
		DPI:      plan.DPI,
		Plan:     plan,
		Title:    req.Title,
		Author:   req.Author,
	}, nil
}

// frontLayers places title, subtitle and author at fixed proportional bands
// of the front safe rectangle.
func frontLayers(req Request, plan *layout.Plan, c color.Color, dpi int) []overlay.Layer {
	safe := plan.FrontSafe.Sub(plan.Front.Min)
	h := safe.Dy()

	titleSize := req.TitleFontSize
	if titleSize == 0 {
		titleSize = 0.4 * float64(dpi)
	}
	authorSize := req.AuthorFontSize
	if authorSize == 0 {
		authorSize = 0.2 * float64(dpi)
	}

	layers := []overlay.Layer{{
		Text:     req.Title,
		Rect:     image.Rect(safe.Min.X, safe.Min.Y, safe.Max.X, safe.Min.Y+int(titleBandBottom*float64(h))),
		SizeHint: titleSize,
		Color:    c,
		Bold:     true,
		Wrap:     true,
	}}
	if strings.TrimSpace(req.Subtitle) != "" {
		layers = append(layers, overlay.Layer{
			Text:     req.Subtitle,
			Rect:     image.Rect(safe.Min.X, safe.Min.Y+int(titleBandBottom*float64(h)), safe.Max.X, safe.Min.Y+int(subtitleBandBottom*float64(h))),
			SizeHint: titleSize / 2,
			Color:    c,
			Wrap:     true,
		})
	}
	if strings.TrimSpace(req.Author) != "" {
		layers = append(layers, overlay.Layer{
			Text:     req.Author,
			Rect:     image.Rect(safe.Min.X, safe.Min.Y+int(authorBandTop*float64(h)), safe.Max.X, safe.Max.Y),
			SizeHint: authorSize,
			Color:    c,
			Wrap:     true,
		})
	}
	return layers
}

// backLayers places the blurb in the upper half of the back safe rectangle.
func backLayers(req Request, plan *layout.Plan, c color.Color, dpi int) []overlay.Layer {
	if strings.TrimSpace(req.BackText) == "" {
		return nil
	}
	safe := plan.BackSafe.Sub(plan.Back.Min)
	h := safe.Dy()

	blurbSize := req.AuthorFontSize
	if blurbSize == 0 {
		blurbSize = 0.2 * float64(dpi)
	}
	blurbSize = max(blurbSize-8, 20)

	return []overlay.Layer{{
		Text:     req.BackText,
		Rect:     image.Rect(safe.Min.X, safe.Min.Y+int(blurbBandTop*float64(h)), safe.Max.X, safe.Min.Y+int(blurbBandBottom*float64(h))),
		SizeHint: blurbSize,
		Color:    c,
		Wrap:     true,
	}}
}

// spineLayers returns the rotated spine label, or nothing when the spine is
// too narrow to hold text: the cover still generates, minus the label.
func spineLayers(req Request, plan *layout.Plan, c color.Color) []overlay.Layer {
	label := req.SpineText
	if strings.TrimSpace(label) == "" {
		label = req.Title
		if strings.TrimSpace(req.Author) != "" {
			label = req.Title + " · " + req.Author
		}
	}

	rect, err := plan.SpineTextRect()
	if err != nil {
		log.Printf("WARNING: omitting spine text: %v", err)
		return nil
	}

	return []overlay.Layer{{
		Text:     label,
		Rect:     rect.Sub(plan.Spine.Min),
		SizeHint: 0.6 * float64(rect.Dx()),
		Color:    c,
		Rotated:  true,
	}}
}

func solidPanel(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// parseHexColor parses "#rrggbb" (the hash is optional). Empty input means
// white, the default text color.
func parseHexColor(s string) (color.NRGBA, error) {
	if s == "" {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}
