package contracts

import "time"

// Metrics is the risk/return summary computed from exactly one return
// series. Nil fields mean "undefined": degenerate input (zero variance,
// zero base) or insufficient data. They render as null in JSON and NA in
// the table, never as a silent NaN.
type Metrics struct {
	StdDev      *float64 `json:"std_dev"`      // sample stddev of quarterly returns, %
	Sharpe      *float64 `json:"sharpe"`       // annualized
	TotalReturn *float64 `json:"total_return"` // %
	CAGR        *float64 `json:"cagr"`         // %
	FinalValue  *float64 `json:"final_value"`  // cumulative value of the start notional
	MaxDrawdown *float64 `json:"max_drawdown"` // %, <= 0
}

// InstrumentResult holds the per-ticker outcome inside a sector
type InstrumentResult struct {
	Symbol  string  `json:"symbol"`
	Metrics Metrics `json:"metrics"`
	// Missing marks an instrument whose retrieval failed entirely; the run
	// continues without it.
	Missing bool `json:"missing"`
}

// SectorResult holds everything computed for one energy sub-sector
type SectorResult struct {
	Name  string `json:"name"`
	ETF   string `json:"etf"`
	Color string `json:"color"`

	// SectorMetrics is computed from the averaged constituent returns
	SectorMetrics Metrics `json:"sector_metrics"`
	// ETFMetrics is computed from the sector benchmark ETF
	ETFMetrics Metrics `json:"etf_metrics"`

	Instruments []InstrumentResult `json:"instruments"`

	// Reconstructed cumulative price paths (start notional compounded by
	// quarterly returns), used by the chart layer
	SectorPath Series `json:"sector_path"`
	ETFPath    Series `json:"etf_path"`

	// SectorReturns is the averaged quarterly return series, %
	SectorReturns Series `json:"sector_returns"`
}

// Report is the full output of one analysis run
type Report struct {
	GeneratedAt time.Time      `json:"generated_at"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	Sectors     []SectorResult `json:"sectors"`
}

// Float returns a pointer to v. Convenience for building Metrics values.
func Float(v float64) *float64 {
	return &v
}
