package series

import (
	"testing"
	"time"

	"github.com/wonny/helios/internal/contracts"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func pt(y, m, d int, v float64) contracts.Point {
	return contracts.Point{Date: day(y, m, d), Value: v, Valid: true}
}

func TestResampleQuarterlyKeepsLastObservation(t *testing.T) {
	s := contracts.Series{
		Symbol: "XOM",
		Points: []contracts.Point{
			pt(2015, 1, 5, 90),
			pt(2015, 2, 10, 95),
			pt(2015, 3, 27, 98), // last obs of Q1
			pt(2015, 4, 1, 99),
			pt(2015, 6, 29, 102), // last obs of Q2
		},
	}

	got := ResampleQuarterly(s)

	if got.Len() != 2 {
		t.Fatalf("resampled length %d, want 2", got.Len())
	}

	q1 := got.Points[0]
	if !q1.Date.Equal(day(2015, 3, 31)) {
		t.Errorf("Q1 stamped %v, want 2015-03-31", q1.Date)
	}
	if !q1.Valid || q1.Value != 98 {
		t.Errorf("Q1 = %+v, want last observation 98", q1)
	}

	q2 := got.Points[1]
	if !q2.Date.Equal(day(2015, 6, 30)) {
		t.Errorf("Q2 stamped %v, want 2015-06-30", q2.Date)
	}
	if !q2.Valid || q2.Value != 102 {
		t.Errorf("Q2 = %+v, want last observation 102", q2)
	}
}

func TestResampleQuarterlyEmptyPeriodIsUndefined(t *testing.T) {
	// Observations in Q1 and Q3 only: Q2 must appear, undefined
	s := contracts.Series{
		Points: []contracts.Point{
			pt(2015, 3, 30, 100),
			pt(2015, 8, 14, 120),
		},
	}

	got := ResampleQuarterly(s)
	if got.Len() != 3 {
		t.Fatalf("resampled length %d, want 3", got.Len())
	}
	if got.Points[1].Valid {
		t.Errorf("empty quarter should be undefined, got %+v", got.Points[1])
	}
	if !got.Points[1].Date.Equal(day(2015, 6, 30)) {
		t.Errorf("empty quarter stamped %v, want 2015-06-30", got.Points[1].Date)
	}
}

func TestResampleSortsUnorderedInput(t *testing.T) {
	s := contracts.Series{
		Points: []contracts.Point{
			pt(2015, 3, 20, 98),
			pt(2015, 1, 5, 90),
			pt(2015, 2, 10, 95),
		},
	}

	got := ResampleQuarterly(s)
	if got.Len() != 1 {
		t.Fatalf("resampled length %d, want 1", got.Len())
	}
	if got.Points[0].Value != 98 {
		t.Errorf("Q1 = %v, want chronologically last value 98", got.Points[0].Value)
	}
}

func TestResampleMonthlyAndYearly(t *testing.T) {
	s := contracts.Series{
		Points: []contracts.Point{
			pt(2015, 1, 5, 10),
			pt(2015, 1, 30, 11),
			pt(2015, 2, 27, 12),
		},
	}

	monthly := Resample(s, PeriodMonth)
	if monthly.Len() != 2 {
		t.Fatalf("monthly length %d, want 2", monthly.Len())
	}
	if !monthly.Points[0].Date.Equal(day(2015, 1, 31)) || monthly.Points[0].Value != 11 {
		t.Errorf("Jan = %+v, want 11 on 2015-01-31", monthly.Points[0])
	}

	yearly := Resample(s, PeriodYear)
	if yearly.Len() != 1 {
		t.Fatalf("yearly length %d, want 1", yearly.Len())
	}
	if !yearly.Points[0].Date.Equal(day(2015, 12, 31)) || yearly.Points[0].Value != 12 {
		t.Errorf("2015 = %+v, want 12 on 2015-12-31", yearly.Points[0])
	}
}

func TestAverageFallsBackToDefinedConstituent(t *testing.T) {
	a := contracts.Series{Points: []contracts.Point{
		pt(2015, 3, 31, 100),
		{Date: day(2015, 6, 30), Valid: false},
	}}
	b := contracts.Series{Points: []contracts.Point{
		pt(2015, 3, 31, 200),
		pt(2015, 6, 30, 150),
	}}

	got := Average("sector", a, b)
	if got.Len() != 2 {
		t.Fatalf("average length %d, want 2", got.Len())
	}

	if !got.Points[0].Valid || got.Points[0].Value != 150 {
		t.Errorf("average at Q1 = %+v, want 150", got.Points[0])
	}

	// One constituent undefined: result is the other's value exactly,
	// not zero and not undefined
	if !got.Points[1].Valid || got.Points[1].Value != 150 {
		t.Errorf("average at Q2 = %+v, want fallback to 150", got.Points[1])
	}
}

func TestAverageAllUndefined(t *testing.T) {
	a := contracts.Series{Points: []contracts.Point{{Date: day(2015, 3, 31), Valid: false}}}
	b := contracts.Series{Points: []contracts.Point{{Date: day(2015, 3, 31), Valid: false}}}

	got := Average("sector", a, b)
	if got.Len() != 1 {
		t.Fatalf("average length %d, want 1", got.Len())
	}
	if got.Points[0].Valid {
		t.Errorf("average of all-undefined constituents should be undefined, got %+v", got.Points[0])
	}
}

func TestAverageUnionOfDates(t *testing.T) {
	a := contracts.Series{Points: []contracts.Point{pt(2015, 3, 31, 10)}}
	b := contracts.Series{Points: []contracts.Point{pt(2015, 6, 30, 20)}}

	got := Average("sector", a, b)
	if got.Len() != 2 {
		t.Fatalf("average length %d, want union of 2 dates", got.Len())
	}
	if got.Points[0].Value != 10 || got.Points[1].Value != 20 {
		t.Errorf("union average = %+v", got.Points)
	}
	if !got.IsSorted() {
		t.Error("averaged series should be date-sorted")
	}
}
