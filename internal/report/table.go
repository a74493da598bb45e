package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/wonny/helios/internal/contracts"
)

// Column layout of the summary table
var (
	tableColumns = []string{"Series", "StdDev %", "Sharpe", "Total %", "CAGR %", "Final", "MaxDD %"}
	tableWidths  = []int{22, 9, 8, 9, 8, 9, 8}
)

// RenderTable writes the risk/return summary for every sector, its ETF and
// its constituents. Metrics that could not be computed render as NA.
func RenderTable(w io.Writer, report *contracts.Report) {
	fmt.Fprintf(w, "Energy sector risk/return summary  (%s ~ %s)\n",
		report.StartDate.Format("2006-01-02"), report.EndDate.Format("2006-01-02"))

	printRow(w, tableColumns)
	printSeparator(w)

	for _, sector := range report.Sectors {
		printMetricsRow(w, strings.ToUpper(sector.Name)+" (avg)", sector.SectorMetrics)
		printMetricsRow(w, sector.ETF+" (ETF)", sector.ETFMetrics)

		for _, inst := range sector.Instruments {
			label := "  " + inst.Symbol
			if inst.Missing {
				label += " !"
			}
			printMetricsRow(w, label, inst.Metrics)
		}

		printSeparator(w)
	}
}

func printMetricsRow(w io.Writer, label string, m contracts.Metrics) {
	printRow(w, []string{
		label,
		formatMetric(m.StdDev, 2),
		formatMetric(m.Sharpe, 2),
		formatMetric(m.TotalReturn, 1),
		formatMetric(m.CAGR, 2),
		formatMetric(m.FinalValue, 1),
		formatMetric(m.MaxDrawdown, 1),
	})
}

func printRow(w io.Writer, values []string) {
	for i, val := range values {
		fmt.Fprintf(w, "%-*s", tableWidths[i], val)
		if i < len(values)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)
}

func printSeparator(w io.Writer) {
	total := 0
	for i, width := range tableWidths {
		total += width
		if i < len(tableWidths)-1 {
			total += 2
		}
	}
	fmt.Fprintln(w, strings.Repeat("─", total))
}

// formatMetric renders a nilable metric, NA when undefined
func formatMetric(v *float64, decimals int) string {
	if v == nil {
		return "NA"
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}
