package layout

import (
	"errors"
	"math"
	"testing"
)

func TestInchesToPixels(t *testing.T) {
	tests := []struct {
		name    string
		in      float64
		dpi     int
		want    int
		wantErr bool
	}{
		{name: "one inch at 300dpi", in: 1.0, dpi: 300, want: 300},
		{name: "bleed at 300dpi", in: 0.125, dpi: 300, want: 38},
		{name: "rounds to nearest", in: 0.4504, dpi: 300, want: 135},
		{name: "zero inches", in: 0, dpi: 300, want: 0},
		{name: "negative inches", in: -1, dpi: 300, wantErr: true},
		{name: "zero dpi", in: 1, dpi: 0, wantErr: true},
		{name: "negative dpi", in: 1, dpi: -72, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InchesToPixels(tt.in, tt.dpi)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDimension) {
					t.Fatalf("expected ErrInvalidDimension, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("InchesToPixels(%v, %d) = %d, want %d", tt.in, tt.dpi, got, tt.want)
			}
		})
	}
}

func TestInchesToPoints(t *testing.T) {
	got, err := InchesToPoints(8.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-612.0) > 1e-9 {
		t.Errorf("InchesToPoints(8.5) = %v, want 612", got)
	}

	if _, err := InchesToPoints(-0.1); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("expected ErrInvalidDimension for negative input, got %v", err)
	}
}
