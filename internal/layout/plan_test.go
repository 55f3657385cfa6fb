package layout

import (
	"errors"
	"math"
	"testing"
)

func mustTrim(t *testing.T, key string) TrimSize {
	t.Helper()
	trim, err := ResolveTrim(key)
	if err != nil {
		t.Fatalf("ResolveTrim(%q): %v", key, err)
	}
	return trim
}

func TestBuildPlanCanvasDimensions(t *testing.T) {
	tests := []struct {
		name    string
		trimKey string
		spineIn float64
		dpi     int
	}{
		{name: "6x9 standard book", trimKey: "6x9", spineIn: 0.4504, dpi: 300},
		{name: "5x8 thin book", trimKey: "5x8", spineIn: 0.06, dpi: 300},
		{name: "8.5x11 thick book", trimKey: "8.5x11", spineIn: 2.252, dpi: 300},
		{name: "landscape trim", trimKey: "8.25x6", spineIn: 0.5, dpi: 300},
		{name: "low dpi", trimKey: "6x9", spineIn: 0.4504, dpi: 72},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trim := mustTrim(t, tt.trimKey)
			plan, err := BuildPlan(trim, tt.spineIn, tt.dpi)
			if err != nil {
				t.Fatalf("BuildPlan: %v", err)
			}

			wantW := math.Round((trim.WidthIn*2 + tt.spineIn + 2*BleedInches) * float64(tt.dpi))
			wantH := math.Round((trim.HeightIn + 2*BleedInches) * float64(tt.dpi))
			if math.Abs(float64(plan.Canvas.Dx())-wantW) > 1 {
				t.Errorf("canvas width = %d, want %.0f (±1)", plan.Canvas.Dx(), wantW)
			}
			if math.Abs(float64(plan.Canvas.Dy())-wantH) > 1 {
				t.Errorf("canvas height = %d, want %.0f (±1)", plan.Canvas.Dy(), wantH)
			}

			wantWIn := trim.WidthIn*2 + tt.spineIn + 2*BleedInches
			if math.Abs(plan.CanvasWidthIn-wantWIn) > 1e-9 {
				t.Errorf("CanvasWidthIn = %v, want %v", plan.CanvasWidthIn, wantWIn)
			}
		})
	}
}

func TestBuildPlanPanelAdjacency(t *testing.T) {
	for _, key := range TrimKeys() {
		trim := mustTrim(t, key)
		for _, spineIn := range []float64{0.06, 0.35, 1.2} {
			plan, err := BuildPlan(trim, spineIn, 300)
			if err != nil {
				t.Fatalf("BuildPlan(%s, %v): %v", key, spineIn, err)
			}

			if plan.Back.Min.X != 0 {
				t.Errorf("%s: back panel does not start at 0", key)
			}
			if plan.Back.Max.X != plan.Spine.Min.X {
				t.Errorf("%s: gap/overlap between back and spine: %d vs %d",
					key, plan.Back.Max.X, plan.Spine.Min.X)
			}
			if plan.Spine.Max.X != plan.Front.Min.X {
				t.Errorf("%s: gap/overlap between spine and front: %d vs %d",
					key, plan.Spine.Max.X, plan.Front.Min.X)
			}
			if plan.Front.Max.X != plan.Canvas.Max.X {
				t.Errorf("%s: front panel does not reach canvas edge", key)
			}

			for _, panel := range []struct {
				name string
				dy   int
			}{{"back", plan.Back.Dy()}, {"spine", plan.Spine.Dy()}, {"front", plan.Front.Dy()}} {
				if panel.dy != plan.Canvas.Dy() {
					t.Errorf("%s: %s panel height %d != canvas height %d",
						key, panel.name, panel.dy, plan.Canvas.Dy())
				}
			}
		}
	}
}

func TestBuildPlanSafeRects(t *testing.T) {
	trim := mustTrim(t, "6x9")
	plan, err := BuildPlan(trim, 0.4504, 300)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}

	safe := 75 // 0.25" at 300dpi
	if plan.FrontSafe.Min.X != plan.Front.Min.X+safe || plan.FrontSafe.Max.Y != plan.Front.Max.Y-safe {
		t.Errorf("front safe rect %v not inset %dpx from panel %v", plan.FrontSafe, safe, plan.Front)
	}
	if plan.BackSafe.Min.X != safe || plan.BackSafe.Min.Y != safe {
		t.Errorf("back safe rect %v not inset %dpx from canvas origin", plan.BackSafe, safe)
	}
}

func TestSpineTextRect(t *testing.T) {
	trim := mustTrim(t, "6x9")

	// 0.45" spine leaves room after the 0.0625" margins on each side.
	plan, err := BuildPlan(trim, 0.4504, 300)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	rect, err := plan.SpineTextRect()
	if err != nil {
		t.Fatalf("SpineTextRect: %v", err)
	}
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		t.Errorf("degenerate spine text rect %v", rect)
	}
	if rect.Min.X <= plan.Spine.Min.X || rect.Max.X >= plan.Spine.Max.X {
		t.Errorf("spine text rect %v not inside spine panel %v", rect, plan.Spine)
	}
}

func TestSpineTextRectTooNarrow(t *testing.T) {
	trim := mustTrim(t, "6x9")

	// At the 0.06" floor the two 0.0625" text margins do not fit.
	plan, err := BuildPlan(trim, MinSpineInches, 300)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if _, err := plan.SpineTextRect(); !errors.Is(err, ErrSpineTooNarrowForText) {
		t.Errorf("expected ErrSpineTooNarrowForText, got %v", err)
	}
}

func TestBuildPlanInvalidInputs(t *testing.T) {
	trim := mustTrim(t, "6x9")
	if _, err := BuildPlan(TrimSize{}, 0.5, 300); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("zero trim: expected ErrInvalidDimension, got %v", err)
	}
	if _, err := BuildPlan(trim, 0, 300); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("zero spine: expected ErrInvalidDimension, got %v", err)
	}
	if _, err := BuildPlan(trim, 0.5, 0); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("zero dpi: expected ErrInvalidDimension, got %v", err)
	}
}
