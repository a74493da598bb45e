package analysis

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/helios/internal/contracts"
	"github.com/wonny/helios/internal/metrics"
	"github.com/wonny/helios/internal/series"
	"github.com/wonny/helios/pkg/config"
	"github.com/wonny/helios/pkg/logger"
)

// PriceSource delivers daily closing prices for one symbol and date range.
// Implemented by the Yahoo client; tests substitute a fixture.
type PriceSource interface {
	FetchDailyCloses(ctx context.Context, symbol string, from, to time.Time) (contracts.Series, error)
}

// Runner coordinates the full sector analysis:
// fetch → resample quarterly → average per sector → returns → metrics
// ⭐ SSOT: 분석 파이프라인 조율은 여기서만
type Runner struct {
	source  PriceSource
	cfg     config.AnalysisConfig
	sectors []config.SectorConfig
	logger  *logger.Logger

	// maxConcurrent bounds the per-instrument fetch fan-out
	maxConcurrent int
}

// NewRunner creates a new analysis runner
func NewRunner(source PriceSource, cfg config.AnalysisConfig, sectors []config.SectorConfig, log *logger.Logger) *Runner {
	return &Runner{
		source:        source,
		cfg:           cfg,
		sectors:       sectors,
		logger:        log,
		maxConcurrent: 4,
	}
}

// FetchAll retrieves daily series for every configured symbol in parallel.
// A failed retrieval is isolated: the symbol maps to an empty series and
// the error is reported per symbol, never aborting the rest of the run.
func (r *Runner) FetchAll(ctx context.Context) (map[string]contracts.Series, map[string]error) {
	symbols := r.allSymbols()

	var mu sync.Mutex
	result := make(map[string]contracts.Series, len(symbols))
	failures := make(map[string]error)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxConcurrent)

	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			s, err := r.source.FetchDailyCloses(gctx, symbol, r.cfg.StartDate, r.cfg.EndDate)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				r.logger.WithError(err).WithField("symbol", symbol).Warn("Price retrieval failed; continuing without symbol")
				result[symbol] = contracts.Series{Symbol: symbol}
				failures[symbol] = err
				return nil // isolate per-instrument failures
			}
			result[symbol] = s
			return nil
		})
	}

	// errors are swallowed per symbol above; Wait only propagates ctx cancellation
	_ = g.Wait()

	return result, failures
}

// Run executes the analysis for all configured sectors
func (r *Runner) Run(ctx context.Context) (*contracts.Report, error) {
	startTime := time.Now()

	daily, failures := r.FetchAll(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &contracts.Report{
		GeneratedAt: time.Now(),
		StartDate:   r.cfg.StartDate,
		EndDate:     r.cfg.EndDate,
	}

	for _, sector := range r.sectors {
		report.Sectors = append(report.Sectors, r.analyzeSector(sector, daily, failures))
	}

	r.logger.WithFields(map[string]interface{}{
		"sectors":  len(report.Sectors),
		"failed":   len(failures),
		"duration": time.Since(startTime),
	}).Info("Analysis completed")

	return report, nil
}

// analyzeSector computes the per-sector and per-instrument results from
// the already-fetched daily series
func (r *Runner) analyzeSector(sector config.SectorConfig, daily map[string]contracts.Series, failures map[string]error) contracts.SectorResult {
	result := contracts.SectorResult{
		Name:  sector.Name,
		ETF:   sector.ETF,
		Color: sector.Color,
	}

	// Quarterly close per constituent, then elementwise sector average
	quarterlies := make([]contracts.Series, 0, len(sector.Tickers))
	for _, ticker := range sector.Tickers {
		q := series.ResampleQuarterly(daily[ticker])
		quarterlies = append(quarterlies, q)

		returns := metrics.DeriveReturns(q)
		result.Instruments = append(result.Instruments, contracts.InstrumentResult{
			Symbol:  ticker,
			Metrics: r.compute(returns),
			Missing: failures[ticker] != nil,
		})
	}

	sectorAvg := series.Average(sector.Name, quarterlies...)
	result.SectorReturns = metrics.DeriveReturns(sectorAvg)
	result.SectorMetrics = r.compute(result.SectorReturns)
	result.SectorPath = metrics.ReconstructPath(result.SectorReturns, r.cfg.StartValue)

	etfReturns := metrics.DeriveReturns(series.ResampleQuarterly(daily[sector.ETF]))
	result.ETFMetrics = r.compute(etfReturns)
	result.ETFPath = metrics.ReconstructPath(etfReturns, r.cfg.StartValue)

	r.logger.WithFields(map[string]interface{}{
		"sector":   sector.Name,
		"quarters": result.SectorReturns.ValidCount(),
	}).Debug("Sector analyzed")

	return result
}

// compute applies the configured parameters to one quarterly return series.
// Returns are percent per quarter, so the risk-free rate is scaled to the
// same units; Sharpe is invariant under the common scaling.
func (r *Runner) compute(returns contracts.Series) contracts.Metrics {
	riskFreePercent := r.cfg.RiskFreeRatePerPeriod * 100
	return metrics.Compute(returns, riskFreePercent, r.cfg.PeriodsPerYear, r.cfg.CAGRYears, r.cfg.StartValue)
}

// allSymbols lists every ticker and ETF across all sectors, deduplicated
func (r *Runner) allSymbols() []string {
	seen := make(map[string]bool)
	var out []string

	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	for _, sector := range r.sectors {
		for _, t := range sector.Tickers {
			add(t)
		}
		add(sector.ETF)
	}

	return out
}
