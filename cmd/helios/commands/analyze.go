package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/helios/internal/report"
)

// analyzeCmd runs the full sector analysis once and prints the summary
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the sector risk/return analysis",
	Long: `Downloads daily closes for all configured tickers and ETFs,
resamples them to quarterly closes, averages each sector, and computes
standard deviation, Sharpe ratio, total return, CAGR and max drawdown
per sector.

A failed ticker is reported and skipped; the analysis continues with
the remaining instruments.

Example:
  go run ./cmd/helios analyze
  go run ./cmd/helios analyze --no-charts
  go run ./cmd/helios analyze --output ./reports`,
	RunE: runAnalyze,
}

var (
	analyzeNoCharts bool
	analyzeOutput   string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeNoCharts, "no-charts", false, "skip chart rendering")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "", "chart output directory (default from config)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	PrintDoubleSeparator()
	fmt.Println("  Helios Sector Analysis")
	PrintSeparator()
	PrintKeyValue("Period", fmt.Sprintf("%s ~ %s",
		rt.cfg.Analysis.StartDate.Format("2006-01-02"),
		rt.cfg.Analysis.EndDate.Format("2006-01-02")), 10)
	PrintKeyValue("Sectors", fmt.Sprintf("%d", len(rt.cfg.Sectors)), 10)
	PrintSeparator()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	startTime := time.Now()
	result, err := rt.runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Println()
	report.RenderTable(os.Stdout, result)

	if !analyzeNoCharts {
		dir := rt.cfg.OutputDir
		if analyzeOutput != "" {
			dir = analyzeOutput
		}

		files, err := report.WriteAll(dir, result)
		if err != nil {
			PrintWarning(fmt.Sprintf("chart rendering incomplete: %v", err))
		}
		for name, path := range files {
			PrintKeyValue(name, path, 16)
		}
	}

	fmt.Println()
	PrintSuccess(fmt.Sprintf("Analysis completed in %.2fs", time.Since(startTime).Seconds()))
	return nil
}
