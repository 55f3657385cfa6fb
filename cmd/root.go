package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coverwizard",
	Short: "Generate print-ready wraparound book covers",
	Long: `CoverWizard builds KDP-compliant wraparound book covers (back panel,
spine, front panel) from a trim size, page count, paper stock and cover
art, and emits a print-ready single-page PDF at 300 DPI.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
