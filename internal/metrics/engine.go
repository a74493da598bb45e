package metrics

import (
	"math"

	"github.com/wonny/helios/internal/contracts"
)

// =============================================================================
// Return derivation
// =============================================================================

// DeriveReturns converts a price series into a percentage-change series of
// the same length. The first point is always undefined (no prior period);
// a return is undefined whenever either endpoint is missing or the prior
// price is zero. Missing data propagates, it never faults.
func DeriveReturns(prices contracts.Series) contracts.Series {
	out := contracts.Series{
		Symbol: prices.Symbol,
		Points: make([]contracts.Point, len(prices.Points)),
	}

	for i, p := range prices.Points {
		out.Points[i] = contracts.Point{Date: p.Date, Valid: false}
		if i == 0 {
			continue
		}

		prev := prices.Points[i-1]
		if !p.Valid || !prev.Valid || prev.Value == 0 {
			continue
		}

		out.Points[i] = contracts.Point{
			Date:  p.Date,
			Value: (p.Value - prev.Value) / prev.Value * 100,
			Valid: true,
		}
	}

	return out
}

// =============================================================================
// Price path reconstruction
// =============================================================================

// ReconstructPath compounds a return series (percent per period) into the
// cumulative value of startValue invested at period 0. Undefined returns
// are dropped and the remainder sorted chronologically before compounding.
// A single -100% period collapses the path to 0 from that point on.
func ReconstructPath(returns contracts.Series, startValue float64) contracts.Series {
	filtered := returns.Filtered()

	out := contracts.Series{
		Symbol: returns.Symbol,
		Points: make([]contracts.Point, len(filtered)),
	}

	value := startValue
	for i, r := range filtered {
		value *= 1 + r.Value/100
		out.Points[i] = contracts.Point{Date: r.Date, Value: value, Valid: true}
	}

	return out
}

// TotalReturn is the compounded return of the whole series, in percent.
// Undefined when the series has no defined returns.
func TotalReturn(returns contracts.Series) *float64 {
	values := returns.Values()
	if len(values) == 0 {
		return nil
	}

	cum := 1.0
	for _, r := range values {
		cum *= 1 + r/100
	}
	return contracts.Float((cum - 1) * 100)
}

// =============================================================================
// CAGR
// =============================================================================

// CAGR computes the compound annual growth rate of a reconstructed price
// path over a caller-supplied horizon in years, as a percent.
//
// The horizon is deliberately NOT derived from the path: the analysis is
// defined over a fixed window and data gaps shrink the sample, not the
// stated number of years.
//
// Undefined when the path has fewer than two points, the horizon is not
// positive, the starting value is zero, or the growth ratio is negative
// (a negative base under a fractional exponent has no real root). A final
// value of exactly zero is a total loss: -100%.
func CAGR(path contracts.Series, years float64) *float64 {
	first, okFirst := path.FirstValid()
	last, okLast := path.LastValid()
	if !okFirst || !okLast || path.ValidCount() < 2 {
		return nil
	}

	if years <= 0 || first.Value == 0 {
		return nil
	}

	if last.Value == 0 {
		return contracts.Float(-100)
	}

	ratio := last.Value / first.Value
	if ratio < 0 {
		return nil
	}

	return contracts.Float((math.Pow(ratio, 1/years) - 1) * 100)
}

// =============================================================================
// Max drawdown
// =============================================================================

// MaxDrawdown computes the largest peak-to-trough decline of a price path,
// in percent (<= 0; 0 for a non-decreasing path). Single forward pass with
// a running-maximum accumulator. Undefined for an empty path.
func MaxDrawdown(path contracts.Series) *float64 {
	values := path.Values()
	if len(values) == 0 {
		return nil
	}

	peak := values[0]
	maxDD := 0.0

	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak == 0 {
			continue
		}
		dd := (v - peak) / peak
		if dd < maxDD {
			maxDD = dd
		}
	}

	return contracts.Float(maxDD * 100)
}

// =============================================================================
// Dispersion & Sharpe
// =============================================================================

// DispersionAndSharpe computes the sample standard deviation (N-1
// denominator) of the defined returns and the Sharpe ratio annualized by
// sqrt(periodsPerYear). The risk-free rate must be per period, in the same
// units as the series; Sharpe is invariant under a common unit scaling.
//
// Sharpe is undefined when the deviation is zero (no variance) or fewer
// than two returns are defined.
func DispersionAndSharpe(returns contracts.Series, riskFreePerPeriod float64, periodsPerYear int) (sd, sharpe *float64) {
	values := returns.Values()
	if len(values) < 2 {
		return nil, nil
	}

	mean := Mean(values)

	var variance float64
	for _, r := range values {
		diff := r - mean
		variance += diff * diff
	}
	variance /= float64(len(values) - 1)

	dev := math.Sqrt(variance)
	sd = contracts.Float(dev)

	if dev == 0 {
		return sd, nil
	}

	ratio := (mean - riskFreePerPeriod) / dev * math.Sqrt(float64(periodsPerYear))
	return sd, contracts.Float(ratio)
}

// Mean returns the arithmetic mean of values, 0 for an empty slice
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// =============================================================================
// Aggregate
// =============================================================================

// Compute derives the full metrics record from one quarterly return series.
// Every field that cannot be computed stays nil and renders as NA.
func Compute(returns contracts.Series, riskFreePerPeriod float64, periodsPerYear int, cagrYears, startValue float64) contracts.Metrics {
	path := ReconstructPath(returns, startValue)

	m := contracts.Metrics{
		TotalReturn: TotalReturn(returns),
		CAGR:        CAGR(path, cagrYears),
		MaxDrawdown: MaxDrawdown(path),
	}

	if last, ok := path.LastValid(); ok {
		m.FinalValue = contracts.Float(last.Value)
	}

	m.StdDev, m.Sharpe = DispersionAndSharpe(returns, riskFreePerPeriod, periodsPerYear)

	return m
}
