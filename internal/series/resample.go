package series

import (
	"sort"
	"time"

	"github.com/wonny/helios/internal/contracts"
)

// Period is a calendar bucketing granularity for resampling
type Period int

const (
	PeriodMonth Period = iota
	PeriodQuarter
	PeriodYear
)

// Resample groups a series by calendar period and keeps the last observed
// value in each period, stamped on the period's last calendar day (standard
// last-observation-in-period convention). Periods between the series'
// first and last observation that contain no defined value produce an
// undefined point, so gaps stay visible to return derivation downstream.
func Resample(s contracts.Series, p Period) contracts.Series {
	out := contracts.Series{Symbol: s.Symbol}
	if len(s.Points) == 0 {
		return out
	}

	pts := make([]contracts.Point, len(s.Points))
	copy(pts, s.Points)
	sort.Slice(pts, func(i, j int) bool { return pts[i].Date.Before(pts[j].Date) })

	// last defined observation per period end
	last := make(map[time.Time]contracts.Point)
	for _, pt := range pts {
		if !pt.Valid {
			continue
		}
		last[periodEnd(pt.Date, p)] = pt
	}

	for end := periodEnd(pts[0].Date, p); !end.After(periodEnd(pts[len(pts)-1].Date, p)); end = periodEnd(end.AddDate(0, 0, 1), p) {
		point := contracts.Point{Date: end, Valid: false}
		if obs, ok := last[end]; ok {
			point.Value = obs.Value
			point.Valid = true
		}
		out.Points = append(out.Points, point)
	}

	return out
}

// ResampleQuarterly is the convention used throughout the analysis
func ResampleQuarterly(s contracts.Series) contracts.Series {
	return Resample(s, PeriodQuarter)
}

// periodEnd returns the last calendar day of the period containing date
func periodEnd(date time.Time, p Period) time.Time {
	y, m, _ := date.Date()

	var endMonth time.Month
	switch p {
	case PeriodMonth:
		endMonth = m
	case PeriodQuarter:
		endMonth = time.Month((int(m-1)/3)*3 + 3)
	case PeriodYear:
		endMonth = time.December
	default:
		endMonth = time.Month((int(m-1)/3)*3 + 3)
	}

	// day 0 of the next month normalizes to the last day of endMonth
	return time.Date(y, endMonth+1, 0, 0, 0, 0, 0, time.UTC)
}

// Average aligns the input series on the union of their dates and takes the
// arithmetic mean of the defined values at each date. A date is undefined
// in the result only when every constituent is undefined there; a single
// surviving constituent contributes its own value, not zero.
func Average(symbol string, inputs ...contracts.Series) contracts.Series {
	out := contracts.Series{Symbol: symbol}
	if len(inputs) == 0 {
		return out
	}

	type acc struct {
		sum   float64
		count int
	}
	byDate := make(map[time.Time]*acc)

	for _, s := range inputs {
		for _, p := range s.Points {
			a, ok := byDate[p.Date]
			if !ok {
				a = &acc{}
				byDate[p.Date] = a
			}
			if p.Valid {
				a.sum += p.Value
				a.count++
			}
		}
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	for _, d := range dates {
		a := byDate[d]
		point := contracts.Point{Date: d, Valid: false}
		if a.count > 0 {
			point.Value = a.sum / float64(a.count)
			point.Valid = true
		}
		out.Points = append(out.Points, point)
	}

	return out
}
