package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "helios",
	Short: "Helios - energy sector risk/return analyzer",
	Long: `Helios CLI

Comparative risk/return analysis of three energy sub-sectors
(nuclear, fossil fuel, renewables): daily closes resampled to
quarterly returns, then standard deviation, Sharpe ratio, total
return, CAGR and max drawdown per sector.

Usage:
  go run ./cmd/helios [command]

Examples:
  go run ./cmd/helios analyze
  go run ./cmd/helios fetch
  go run ./cmd/helios serve`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
