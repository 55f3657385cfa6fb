package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/julisunkan/CoverWizard/internal/composer"
	"github.com/julisunkan/CoverWizard/internal/config"
	"github.com/julisunkan/CoverWizard/internal/layout"
)

var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yaml>",
	Short: "Generate covers for every book in a YAML manifest",
	Long: `Batch reads a YAML manifest describing multiple books and generates a
wraparound cover PDF for each one. Jobs run in parallel.

Manifest format:

  covers:
    - name: my-novel
      front: art/front.jpg
      back: art/back.jpg
      title: "My Novel"
      author: "Jane Doe"
      back_text: "A thrilling tale."
      trim: 6x9
      pages: 312
      paper: cream
      color: "#f0e8d8"

Examples:
  # Generate all covers with 4 concurrent workers
  coverwizard batch books.yaml

  # Use different concurrency
  coverwizard batch books.yaml --concurrency 2`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().Int("concurrency", 4, "Number of parallel workers")
	batchCmd.Flags().Bool("png", false, "Also write each cover as PNG")
}

type batchManifest struct {
	Covers []batchEntry `yaml:"covers"`
}

type batchEntry struct {
	Name       string  `yaml:"name"`
	Front      string  `yaml:"front"`
	Back       string  `yaml:"back"`
	Title      string  `yaml:"title"`
	Subtitle   string  `yaml:"subtitle"`
	Author     string  `yaml:"author"`
	SpineText  string  `yaml:"spine_text"`
	BackText   string  `yaml:"back_text"`
	Trim       string  `yaml:"trim"`
	Pages      int     `yaml:"pages"`
	Paper      string  `yaml:"paper"`
	Color      string  `yaml:"color"`
	TitleSize  float64 `yaml:"title_size"`
	AuthorSize float64 `yaml:"author_size"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	concurrency := mustGetInt(cmd, "concurrency")
	alsoPNG := mustGetBool(cmd, "png")

	cfg := config.Load()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}
	var manifest batchManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("parsing manifest: %w", err)
	}
	if len(manifest.Covers) == 0 {
		fmt.Println("Manifest contains no covers, nothing to do.")
		return nil
	}

	// Manifest image paths are relative to the manifest file.
	baseDir := filepath.Dir(args[0])

	fonts, err := loadFonts(cfg)
	if err != nil {
		return err
	}
	comp := composer.New(fonts)

	fmt.Printf("Covers to generate: %d\n\n", len(manifest.Covers))

	bar := progressbar.NewOptions(len(manifest.Covers),
		progressbar.OptionSetDescription("Generating covers"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("covers"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	var successCount, errorCount int
	var mu sync.Mutex

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, entry := range manifest.Covers {
		wg.Add(1)
		go func(idx int, e batchEntry) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := generateEntry(comp, cfg, baseDir, idx, e, alsoPNG); err != nil {
				log.Printf("WARNING: cover %s failed: %v", entryName(idx, e), err)
				mu.Lock()
				errorCount++
				mu.Unlock()
				bar.Add(1)
				return
			}

			mu.Lock()
			successCount++
			mu.Unlock()
			bar.Add(1)
		}(i, entry)
	}

	wg.Wait()
	fmt.Println()

	fmt.Printf("\nCompleted: %d covers generated, %d errors\n", successCount, errorCount)
	if errorCount > 0 {
		return fmt.Errorf("%d of %d covers failed", errorCount, len(manifest.Covers))
	}
	return nil
}

func generateEntry(comp *composer.Composer, cfg *config.Config, baseDir string, idx int, e batchEntry, alsoPNG bool) error {
	if e.Front == "" {
		return fmt.Errorf("front image is required")
	}
	front, err := readImageFile(resolvePath(baseDir, e.Front))
	if err != nil {
		return err
	}
	var back []byte
	if e.Back != "" {
		if back, err = readImageFile(resolvePath(baseDir, e.Back)); err != nil {
			return err
		}
	}

	paperName := e.Paper
	if paperName == "" {
		paperName = "white"
	}
	paper, err := layout.ParsePaper(paperName)
	if err != nil {
		return err
	}

	trim := e.Trim
	if trim == "" {
		trim = "6x9"
	}

	canvas, err := comp.Generate(composer.Request{
		FrontImage:     front,
		BackImage:      back,
		Title:          e.Title,
		Subtitle:       e.Subtitle,
		Author:         e.Author,
		SpineText:      e.SpineText,
		BackText:       e.BackText,
		TrimKey:        trim,
		PageCount:      e.Pages,
		Paper:          paper,
		TextColor:      e.Color,
		TitleFontSize:  e.TitleSize,
		AuthorFontSize: e.AuthorSize,
		DPI:            cfg.Output.DPI,
	})
	if err != nil {
		return err
	}

	outPath := filepath.Join(cfg.Output.Dir, entryName(idx, e)+".pdf")
	return writeCover(outPath, canvas, alsoPNG)
}

func entryName(idx int, e batchEntry) string {
	if e.Name != "" {
		return e.Name
	}
	if e.Title != "" {
		slug := strings.ToLower(strings.Join(strings.Fields(e.Title), "-"))
		return fmt.Sprintf("cover-%02d-%s", idx+1, slug)
	}
	return fmt.Sprintf("cover-%02d", idx+1)
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
