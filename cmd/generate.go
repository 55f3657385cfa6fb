package cmd

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/julisunkan/CoverWizard/internal/composer"
	"github.com/julisunkan/CoverWizard/internal/config"
	"github.com/julisunkan/CoverWizard/internal/layout"
	"github.com/julisunkan/CoverWizard/internal/overlay"
	"github.com/julisunkan/CoverWizard/internal/pdf"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a wraparound cover PDF",
	Long: `Generate builds a single wraparound cover from a front image (and an
optional back image), overlays the title, author, spine label and back-cover
blurb, and writes a print-ready PDF sized to trim + bleed.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("front", "", "Front cover image file (required)")
	generateCmd.Flags().String("back", "", "Back cover image file")
	generateCmd.Flags().String("title", "", "Book title (required)")
	generateCmd.Flags().String("subtitle", "", "Subtitle shown below the title")
	generateCmd.Flags().String("author", "", "Author name")
	generateCmd.Flags().String("spine-text", "", "Spine label (defaults to title and author)")
	generateCmd.Flags().String("back-text", "", "Back-cover blurb")
	generateCmd.Flags().String("trim", "6x9", "Trim size key (see 'coverwizard sizes')")
	generateCmd.Flags().Int("pages", 0, "Interior page count (required)")
	generateCmd.Flags().String("paper", "white", "Paper stock: white, cream or color")
	generateCmd.Flags().String("color", "#ffffff", "Text color as #rrggbb")
	generateCmd.Flags().Float64("title-size", 0, "Title font size hint in pixels")
	generateCmd.Flags().Float64("author-size", 0, "Author font size hint in pixels")
	generateCmd.Flags().String("out", "", "Output PDF path (default <output dir>/cover-<id>.pdf)")
	generateCmd.Flags().Bool("png", false, "Also write the flattened canvas as PNG next to the PDF")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	frontPath := mustGetString(cmd, "front")
	if frontPath == "" {
		return fmt.Errorf("--front is required")
	}
	front, err := readImageFile(frontPath)
	if err != nil {
		return err
	}

	var back []byte
	if backPath := mustGetString(cmd, "back"); backPath != "" {
		if back, err = readImageFile(backPath); err != nil {
			return err
		}
	}

	paper, err := layout.ParsePaper(mustGetString(cmd, "paper"))
	if err != nil {
		return err
	}

	fonts, err := loadFonts(cfg)
	if err != nil {
		return err
	}

	req := composer.Request{
		FrontImage:     front,
		BackImage:      back,
		Title:          mustGetString(cmd, "title"),
		Subtitle:       mustGetString(cmd, "subtitle"),
		Author:         mustGetString(cmd, "author"),
		SpineText:      mustGetString(cmd, "spine-text"),
		BackText:       mustGetString(cmd, "back-text"),
		TrimKey:        mustGetString(cmd, "trim"),
		PageCount:      mustGetInt(cmd, "pages"),
		Paper:          paper,
		TextColor:      mustGetString(cmd, "color"),
		TitleFontSize:  mustGetFloat64(cmd, "title-size"),
		AuthorFontSize: mustGetFloat64(cmd, "author-size"),
		DPI:            cfg.Output.DPI,
	}

	canvas, err := composer.New(fonts).Generate(req)
	if err != nil {
		return err
	}

	outPath := mustGetString(cmd, "out")
	if outPath == "" {
		outPath = filepath.Join(cfg.Output.Dir, fmt.Sprintf("cover-%s.pdf", uuid.NewString()))
	}
	if err := writeCover(outPath, canvas, mustGetBool(cmd, "png")); err != nil {
		return err
	}

	fmt.Printf("Cover written to %s\n", outPath)
	fmt.Printf("  Canvas: %dx%d px (%.4f x %.4f in at %d DPI)\n",
		canvas.Image.Bounds().Dx(), canvas.Image.Bounds().Dy(),
		canvas.WidthIn, canvas.HeightIn, canvas.DPI)
	fmt.Printf("  Spine:  %.4f in\n", canvas.Plan.SpineWidthIn)
	return nil
}

// imageExtensions are the upload formats the core accepts.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

func readImageFile(path string) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !imageExtensions[ext] {
		return nil, fmt.Errorf("unsupported image extension %q for %s", ext, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return data, nil
}

// loadFonts builds the text renderer from configured TTF overrides, falling
// back to the bundled Go fonts.
func loadFonts(cfg *config.Config) (*overlay.Renderer, error) {
	var regular, bold []byte
	var err error
	if cfg.Fonts.RegularPath != "" {
		if regular, err = os.ReadFile(cfg.Fonts.RegularPath); err != nil {
			return nil, fmt.Errorf("reading regular font: %w", err)
		}
	}
	if cfg.Fonts.BoldPath != "" {
		if bold, err = os.ReadFile(cfg.Fonts.BoldPath); err != nil {
			return nil, fmt.Errorf("reading bold font: %w", err)
		}
	}
	return overlay.NewRenderer(regular, bold)
}

func writeCover(pdfPath string, canvas *composer.Canvas, alsoPNG bool) error {
	out, err := os.Create(pdfPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()
	if err := pdf.Emit(out, canvas); err != nil {
		return err
	}

	if alsoPNG {
		pngPath := strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".png"
		f, err := os.Create(pngPath)
		if err != nil {
			return fmt.Errorf("creating PNG file: %w", err)
		}
		defer f.Close()
		if err := encodePNG(f, canvas.Image); err != nil {
			return err
		}
	}
	return nil
}

func encodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}
