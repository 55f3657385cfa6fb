package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julisunkan/CoverWizard/internal/layout"
)

var sizesCmd = &cobra.Command{
	Use:   "sizes",
	Short: "List supported trim sizes",
	RunE:  runSizes,
}

func init() {
	rootCmd.AddCommand(sizesCmd)
}

func runSizes(cmd *cobra.Command, args []string) error {
	fmt.Printf("%-12s %-12s %s\n", "KEY", "WIDTH (in)", "HEIGHT (in)")
	for _, key := range layout.TrimKeys() {
		trim, err := layout.ResolveTrim(key)
		if err != nil {
			return err
		}
		fmt.Printf("%-12s %-12.2f %.2f\n", trim.Key, trim.WidthIn, trim.HeightIn)
	}
	return nil
}
