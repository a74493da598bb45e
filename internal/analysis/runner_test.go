package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/helios/internal/contracts"
	"github.com/wonny/helios/pkg/config"
	"github.com/wonny/helios/pkg/logger"
)

// fakeSource serves canned daily series per symbol
type fakeSource struct {
	series map[string]contracts.Series
	errs   map[string]error
}

func (f *fakeSource) FetchDailyCloses(ctx context.Context, symbol string, from, to time.Time) (contracts.Series, error) {
	if err := f.errs[symbol]; err != nil {
		return contracts.Series{}, err
	}
	return f.series[symbol], nil
}

func testLogger() *logger.Logger {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func dailySeries(symbol string, closes ...float64) contracts.Series {
	// one observation per quarter, mid-quarter, starting 2015Q1
	s := contracts.Series{Symbol: symbol}
	date := time.Date(2015, 2, 10, 0, 0, 0, 0, time.UTC)
	for _, c := range closes {
		s.Points = append(s.Points, contracts.Point{Date: date, Value: c, Valid: true})
		date = date.AddDate(0, 3, 0)
	}
	return s
}

func testAnalysisConfig() config.AnalysisConfig {
	return config.AnalysisConfig{
		StartDate:             time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:               time.Date(2016, 12, 31, 0, 0, 0, 0, time.UTC),
		RiskFreeRatePerPeriod: 0.00125,
		PeriodsPerYear:        4,
		CAGRYears:             10,
		StartValue:            100,
	}
}

func testSectors() []config.SectorConfig {
	return []config.SectorConfig{
		{
			Name:    "nuclear",
			Tickers: []string{"AAA", "BBB"},
			ETF:     "ETF1",
			Color:   "#5470c6",
		},
	}
}

func TestRunnerRun(t *testing.T) {
	// Doubling prices are exact in float64, so the averaged returns come out
	// bit-identical and the sample deviation is exactly zero
	source := &fakeSource{
		series: map[string]contracts.Series{
			"AAA":  dailySeries("AAA", 100, 200, 400, 800),
			"BBB":  dailySeries("BBB", 200, 400, 800, 1600),
			"ETF1": dailySeries("ETF1", 50, 100, 200, 400),
		},
	}

	runner := NewRunner(source, testAnalysisConfig(), testSectors(), testLogger())
	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Sectors, 1)

	sector := report.Sectors[0]
	assert.Equal(t, "nuclear", sector.Name)
	assert.Equal(t, "ETF1", sector.ETF)
	require.Len(t, sector.Instruments, 2)

	// every constituent doubles each quarter, so the averaged return is
	// exactly 100%
	returns := sector.SectorReturns
	require.Equal(t, 4, returns.Len())
	assert.False(t, returns.Points[0].Valid, "first return must be undefined")
	for _, p := range returns.Points[1:] {
		require.True(t, p.Valid)
		assert.Equal(t, 100.0, p.Value)
	}

	m := sector.SectorMetrics
	require.NotNil(t, m.TotalReturn)
	assert.InDelta(t, 700.0, *m.TotalReturn, 1e-9)
	require.NotNil(t, m.MaxDrawdown)
	assert.InDelta(t, 0.0, *m.MaxDrawdown, 1e-9)
	require.NotNil(t, m.FinalValue)
	assert.InDelta(t, 800.0, *m.FinalValue, 1e-9)

	// constant quarterly returns: zero variance, Sharpe undefined
	require.NotNil(t, m.StdDev)
	assert.Equal(t, 0.0, *m.StdDev)
	assert.Nil(t, m.Sharpe)

	// ETF analyzed independently
	require.NotNil(t, sector.ETFMetrics.TotalReturn)
	assert.InDelta(t, 700.0, *sector.ETFMetrics.TotalReturn, 1e-9)
}

func TestRunnerIsolatesSourceFailures(t *testing.T) {
	source := &fakeSource{
		series: map[string]contracts.Series{
			"AAA":  dailySeries("AAA", 100, 105, 110),
			"ETF1": dailySeries("ETF1", 50, 51, 52),
		},
		errs: map[string]error{
			"BBB": errors.New("symbol not found"),
		},
	}

	runner := NewRunner(source, testAnalysisConfig(), testSectors(), testLogger())
	report, err := runner.Run(context.Background())
	require.NoError(t, err, "one failed instrument must not abort the run")

	sector := report.Sectors[0]

	var aaa, bbb contracts.InstrumentResult
	for _, inst := range sector.Instruments {
		switch inst.Symbol {
		case "AAA":
			aaa = inst
		case "BBB":
			bbb = inst
		}
	}

	assert.True(t, bbb.Missing)
	assert.Nil(t, bbb.Metrics.TotalReturn)

	assert.False(t, aaa.Missing)
	require.NotNil(t, aaa.Metrics.TotalReturn)
	assert.InDelta(t, 10.0, *aaa.Metrics.TotalReturn, 1e-9)

	// sector average falls back to the surviving constituent
	require.NotNil(t, sector.SectorMetrics.TotalReturn)
	assert.InDelta(t, 10.0, *sector.SectorMetrics.TotalReturn, 1e-9)
}

func TestRunnerRespectsContextCancellation(t *testing.T) {
	source := &fakeSource{series: map[string]contracts.Series{}}
	runner := NewRunner(source, testAnalysisConfig(), testSectors(), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx)
	assert.Error(t, err)
}

func TestFetchAllReportsFailuresPerSymbol(t *testing.T) {
	source := &fakeSource{
		series: map[string]contracts.Series{
			"AAA":  dailySeries("AAA", 100),
			"ETF1": dailySeries("ETF1", 50),
		},
		errs: map[string]error{"BBB": errors.New("boom")},
	}

	runner := NewRunner(source, testAnalysisConfig(), testSectors(), testLogger())
	daily, failures := runner.FetchAll(context.Background())

	require.Len(t, failures, 1)
	assert.Error(t, failures["BBB"])

	// failed symbol still present as an entirely undefined series
	s, ok := daily["BBB"]
	require.True(t, ok)
	assert.True(t, s.IsAllInvalid())
}
