package layout

import (
	"errors"
	"fmt"
)

const (
	// MinPageCount is the smallest page count KDP will bind.
	MinPageCount = 24

	// MinSpineInches keeps very thin books from producing a zero-width
	// spine panel downstream.
	MinSpineInches = 0.06
)

var (
	ErrInvalidPageCount     = errors.New("invalid page count")
	ErrUnsupportedPaperType = errors.New("unsupported paper type")
)

// Paper is the interior paper stock, which fixes the per-page thickness.
type Paper int

const (
	PaperWhite Paper = iota
	PaperCream
	PaperColor
)

func (p Paper) String() string {
	switch p {
	case PaperWhite:
		return "white"
	case PaperCream:
		return "cream"
	case PaperColor:
		return "color"
	default:
		return fmt.Sprintf("paper(%d)", int(p))
	}
}

// ParsePaper converts a user-supplied stock name to a Paper.
func ParsePaper(s string) (Paper, error) {
	switch s {
	case "white":
		return PaperWhite, nil
	case "cream":
		return PaperCream, nil
	case "color":
		return PaperColor, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedPaperType, s)
	}
}

// PaperNames returns the supported stock names in declaration order.
func PaperNames() []string {
	return []string{"white", "cream", "color"}
}

// SpineWidth computes the spine width in inches from the page count and
// paper stock, clamped to MinSpineInches for very short books.
func SpineWidth(pageCount int, paper Paper) (float64, error) {
	if pageCount < MinPageCount {
		return 0, fmt.Errorf("%w: %d (minimum %d)", ErrInvalidPageCount, pageCount, MinPageCount)
	}
	thickness, ok := paperThickness[paper.String()]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedPaperType, paper)
	}
	width := float64(pageCount) * thickness
	if width < MinSpineInches {
		width = MinSpineInches
	}
	return width, nil
}
