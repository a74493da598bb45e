package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/helios/internal/contracts"
)

// fetchCmd downloads all configured series and reports coverage without
// running the analysis. Useful for spotting delisted tickers and data gaps
// before trusting the numbers.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch price data and report coverage",
	Long: `Downloads daily closes for every configured ticker and ETF and
prints a per-symbol coverage report: observation count, defined values,
first and last trading day.

Example:
  go run ./cmd/helios fetch`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	PrintDoubleSeparator()
	fmt.Println("  Helios Data Coverage")
	PrintSeparator()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	daily, failures := rt.runner.FetchAll(ctx)

	columns := []string{"Symbol", "Points", "Defined", "First", "Last"}
	widths := []int{8, 7, 8, 11, 11}
	PrintTableHeader(columns, widths)

	for _, sector := range rt.cfg.Sectors {
		symbols := append([]string{}, sector.Tickers...)
		symbols = append(symbols, sector.ETF)

		for _, symbol := range symbols {
			s := daily[symbol]
			PrintTableRow([]string{
				symbol,
				fmt.Sprintf("%d", s.Len()),
				fmt.Sprintf("%d", s.ValidCount()),
				firstDate(s),
				lastDate(s),
			}, widths)
		}
	}

	fmt.Println()
	if len(failures) > 0 {
		for symbol, ferr := range failures {
			PrintWarning(fmt.Sprintf("%s: %v", symbol, ferr))
		}
		PrintInfo(fmt.Sprintf("%d symbol(s) unavailable; analysis would continue without them", len(failures)))
	} else {
		PrintSuccess("All symbols fetched")
	}

	return nil
}

func firstDate(s contracts.Series) string {
	if p, ok := s.FirstValid(); ok {
		return p.Date.Format("2006-01-02")
	}
	return "-"
}

func lastDate(s contracts.Series) string {
	if p, ok := s.LastValid(); ok {
		return p.Date.Format("2006-01-02")
	}
	return "-"
}
