// Package overlay composites text layers onto cover panels: measured,
// shrink-to-fit strings with a shadow pass for legibility over artwork,
// optional word wrapping, and 90-degree rotation for spine labels.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	// minFontSize is the readable floor in pixels. Wrapping layers wrap at
	// the floor; single-line rotated labels are truncated with an ellipsis.
	minFontSize = 14.0

	// sizeStep is how much the fitting loop shrinks per iteration.
	sizeStep = 2.0

	lineSpacing = 1.3
)

// Layer is one string to composite onto a panel. Rect is in panel
// coordinates; the text is centered within it.
type Layer struct {
	Text     string
	Rect     image.Rectangle
	SizeHint float64 // starting font size in pixels
	Color    color.Color
	Bold     bool
	Rotated  bool // 90 degrees, for spine labels
	Wrap     bool
}

// Renderer draws text layers using a regular and a bold typeface.
type Renderer struct {
	regular *truetype.Font
	bold    *truetype.Font
}

// NewRenderer parses the given TTF data. Pass nil for either argument to
// fall back to the bundled Go fonts.
func NewRenderer(regularTTF, boldTTF []byte) (*Renderer, error) {
	if regularTTF == nil {
		regularTTF = goregular.TTF
	}
	if boldTTF == nil {
		boldTTF = gobold.TTF
	}
	regular, err := truetype.Parse(regularTTF)
	if err != nil {
		return nil, fmt.Errorf("parsing regular font: %w", err)
	}
	bold, err := truetype.Parse(boldTTF)
	if err != nil {
		return nil, fmt.Errorf("parsing bold font: %w", err)
	}
	return &Renderer{regular: regular, bold: bold}, nil
}

// Render composites the layers onto a copy of panel, in order. The input
// image is never modified. Layers with blank text are skipped.
func (r *Renderer) Render(panel image.Image, layers []Layer) (*image.NRGBA, error) {
	dc := gg.NewContextForImage(panel)
	for _, layer := range layers {
		if strings.TrimSpace(layer.Text) == "" {
			continue
		}
		if layer.Rect.Dx() <= 0 || layer.Rect.Dy() <= 0 {
			return nil, fmt.Errorf("overlay: degenerate layer rect %v", layer.Rect)
		}
		r.drawLayer(dc, layer)
	}
	return imaging.Clone(dc.Image()), nil
}

func (r *Renderer) drawLayer(dc *gg.Context, layer Layer) {
	// Spine text runs along the panel, so the rotated layer measures its
	// line length against the rectangle's height.
	limitW := float64(layer.Rect.Dx())
	limitH := float64(layer.Rect.Dy())
	if layer.Rotated {
		limitW, limitH = limitH, limitW
	}

	text := layer.Text
	size := r.fitSize(dc, layer, text, limitW, limitH)
	dc.SetFontFace(r.face(layer.Bold, size))
	if !layer.Wrap {
		text = r.truncate(dc, text, limitW)
	}

	cx := float64(layer.Rect.Min.X) + float64(layer.Rect.Dx())/2
	cy := float64(layer.Rect.Min.Y) + float64(layer.Rect.Dy())/2
	offset := math.Max(2, size/20)

	dc.Push()
	defer dc.Pop()
	if layer.Rotated {
		dc.RotateAbout(gg.Radians(90), cx, cy)
	}

	// Shadow pass first, then the main color on top.
	dc.SetRGBA(0, 0, 0, 0.6)
	r.drawText(dc, layer, text, cx+offset, cy+offset, limitW)
	dc.SetColor(layer.Color)
	r.drawText(dc, layer, text, cx, cy, limitW)
}

func (r *Renderer) drawText(dc *gg.Context, layer Layer, text string, x, y, limitW float64) {
	if layer.Wrap {
		dc.DrawStringWrapped(text, x, y, 0.5, 0.5, limitW, lineSpacing, gg.AlignCenter)
		return
	}
	dc.DrawStringAnchored(text, x, y, 0.5, 0.5)
}

// fitSize shrinks the font from the layer hint until the text fits the
// limits, stopping at the readable floor.
func (r *Renderer) fitSize(dc *gg.Context, layer Layer, text string, limitW, limitH float64) float64 {
	hint := layer.SizeHint
	if hint < minFontSize {
		hint = minFontSize
	}
	for size := hint; size > minFontSize; size -= sizeStep {
		dc.SetFontFace(r.face(layer.Bold, size))
		if layer.Wrap {
			lines := dc.WordWrap(text, limitW)
			if r.widestLine(dc, lines) <= limitW && float64(len(lines))*size*lineSpacing <= limitH {
				return size
			}
			continue
		}
		w, h := dc.MeasureString(text)
		if w <= limitW && h*lineSpacing <= limitH {
			return size
		}
	}
	return minFontSize
}

func (r *Renderer) widestLine(dc *gg.Context, lines []string) float64 {
	widest := 0.0
	for _, line := range lines {
		if w, _ := dc.MeasureString(line); w > widest {
			widest = w
		}
	}
	return widest
}

// truncate shortens a single-line string with an ellipsis when it cannot
// fit even at the floor size. The context font face must already be set.
func (r *Renderer) truncate(dc *gg.Context, text string, limitW float64) string {
	if w, _ := dc.MeasureString(text); w <= limitW {
		return text
	}
	runes := []rune(text)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		candidate := strings.TrimRight(string(runes), " ") + "…"
		if w, _ := dc.MeasureString(candidate); w <= limitW {
			return candidate
		}
	}
	return "…"
}

func (r *Renderer) face(bold bool, size float64) font.Face {
	f := r.regular
	if bold {
		f = r.bold
	}
	return truetype.NewFace(f, &truetype.Options{Size: size})
}
