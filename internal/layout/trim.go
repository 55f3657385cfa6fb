package layout

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

var ErrUnknownTrimSize = errors.New("unknown trim size")

// TrimSize is the final physical page size after trimming, in inches.
type TrimSize struct {
	Key      string
	WidthIn  float64
	HeightIn float64
	Custom   bool
}

type catalogFile struct {
	Trims map[string]struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"trims"`
	Papers map[string]float64 `yaml:"papers"`
}

var (
	trimCatalog    map[string]TrimSize
	paperThickness map[string]float64
)

func init() {
	var cat catalogFile
	if err := yaml.Unmarshal(catalogYAML, &cat); err != nil {
		// Embedded file; failing to parse it is a build defect.
		panic("layout: failed to unmarshal embedded catalog.yaml: " + err.Error())
	}
	trimCatalog = make(map[string]TrimSize, len(cat.Trims))
	for key, t := range cat.Trims {
		if t.Width <= 0 || t.Height <= 0 {
			panic("layout: non-positive trim size in catalog.yaml: " + key)
		}
		trimCatalog[key] = TrimSize{Key: key, WidthIn: t.Width, HeightIn: t.Height}
	}
	for _, name := range []string{"white", "cream", "color"} {
		if cat.Papers[name] <= 0 {
			panic("layout: missing paper stock in catalog.yaml: " + name)
		}
	}
	paperThickness = cat.Papers
}

// ResolveTrim looks up a canonical trim size key such as "6x9" or "8.5x11".
// Unrecognized keys are an error; there is no silent default.
func ResolveTrim(key string) (TrimSize, error) {
	t, ok := trimCatalog[key]
	if !ok {
		return TrimSize{}, fmt.Errorf("%w: %q", ErrUnknownTrimSize, key)
	}
	return t, nil
}

// CustomTrim builds a trim size outside the catalog, flagged as custom.
func CustomTrim(widthIn, heightIn float64) (TrimSize, error) {
	if widthIn <= 0 || heightIn <= 0 {
		return TrimSize{}, fmt.Errorf("%w: custom trim %.2fx%.2f", ErrInvalidDimension, widthIn, heightIn)
	}
	return TrimSize{
		Key:      fmt.Sprintf("%gx%g", widthIn, heightIn),
		WidthIn:  widthIn,
		HeightIn: heightIn,
		Custom:   true,
	}, nil
}

// TrimKeys returns the catalog keys sorted by width, then height.
func TrimKeys() []string {
	keys := make([]string, 0, len(trimCatalog))
	for key := range trimCatalog {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := trimCatalog[keys[i]], trimCatalog[keys[j]]
		if a.WidthIn != b.WidthIn {
			return a.WidthIn < b.WidthIn
		}
		return a.HeightIn < b.HeightIn
	})
	return keys
}
