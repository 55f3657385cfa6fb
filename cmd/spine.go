package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julisunkan/CoverWizard/internal/layout"
)

var spineCmd = &cobra.Command{
	Use:   "spine",
	Short: "Calculate spine width for a page count and paper stock",
	Long: `Spine prints the spine width in inches for the given interior page count
and paper stock, using standard print-on-demand paper thicknesses.

Examples:
  coverwizard spine --pages 320
  coverwizard spine --pages 320 --paper cream`,
	RunE: runSpine,
}

func init() {
	rootCmd.AddCommand(spineCmd)

	spineCmd.Flags().Int("pages", 0, "Interior page count (required)")
	spineCmd.Flags().String("paper", "white", "Paper stock: white, cream or color")
}

func runSpine(cmd *cobra.Command, args []string) error {
	paper, err := layout.ParsePaper(mustGetString(cmd, "paper"))
	if err != nil {
		return err
	}

	pages := mustGetInt(cmd, "pages")
	width, err := layout.SpineWidth(pages, paper)
	if err != nil {
		return err
	}

	fmt.Printf("Spine width for %d pages on %s paper: %.4f in (%.2f mm)\n",
		pages, paper, width, width*25.4)
	if width <= layout.MinSpineInches {
		fmt.Println("Note: spine is at the minimum width; spine text will be omitted.")
	}
	return nil
}
