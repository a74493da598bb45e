package contracts

import (
	"sort"
	"time"
)

// Point is a single observation in a time series. Valid=false marks a
// missing value (data gap, undefined return); arithmetic downstream must
// propagate it instead of failing.
// ⭐ SSOT: 시계열 관측값 표현은 이 타입으로만
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Valid bool      `json:"valid"`
}

// Series is an ordered sequence of observations for one instrument or one
// averaged basket. Dates are strictly increasing.
type Series struct {
	Symbol string  `json:"symbol"`
	Points []Point `json:"points"`
}

// Len returns the number of points, valid or not
func (s Series) Len() int {
	return len(s.Points)
}

// ValidCount returns the number of defined observations
func (s Series) ValidCount() int {
	n := 0
	for _, p := range s.Points {
		if p.Valid {
			n++
		}
	}
	return n
}

// IsAllInvalid reports whether the series carries no usable data
func (s Series) IsAllInvalid() bool {
	return s.ValidCount() == 0
}

// FirstValid returns the earliest defined point
func (s Series) FirstValid() (Point, bool) {
	for _, p := range s.Points {
		if p.Valid {
			return p, true
		}
	}
	return Point{}, false
}

// LastValid returns the latest defined point
func (s Series) LastValid() (Point, bool) {
	for i := len(s.Points) - 1; i >= 0; i-- {
		if s.Points[i].Valid {
			return s.Points[i], true
		}
	}
	return Point{}, false
}

// Filtered returns the defined points sorted chronologically. Cumulative
// computations (path reconstruction, drawdown) must run on this, never on
// the raw points: order matters for compounding.
func (s Series) Filtered() []Point {
	out := make([]Point, 0, len(s.Points))
	for _, p := range s.Points {
		if p.Valid {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Values returns the values of the defined points, chronologically
func (s Series) Values() []float64 {
	pts := s.Filtered()
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p.Value
	}
	return out
}

// IsSorted reports whether point dates are strictly increasing
func (s Series) IsSorted() bool {
	for i := 1; i < len(s.Points); i++ {
		if !s.Points[i-1].Date.Before(s.Points[i].Date) {
			return false
		}
	}
	return true
}
