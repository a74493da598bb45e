package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/vicanso/go-charts/v2"

	"github.com/wonny/helios/internal/contracts"
)

// SectorPathChart renders one sector's cumulative price path against its
// benchmark ETF as a PNG line chart. Both paths start at the same notional,
// so the lines are directly comparable.
func SectorPathChart(sector contracts.SectorResult) ([]byte, error) {
	labels, values := alignPaths([]contracts.Series{sector.SectorPath, sector.ETFPath})
	if len(labels) < 2 {
		return nil, errors.New("not enough overlapping quarters to chart")
	}

	painter, err := charts.LineRender(values,
		charts.TitleTextOptionFunc(fmt.Sprintf("%s • quarterly • growth of 100", sector.Name)),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: 8}),
		charts.YAxisOptionFunc(charts.YAxisOption{DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: []string{sector.Name + " avg", sector.ETF}}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

// CombinedPathChart renders every sector's averaged path in one chart for
// cross-sector comparison.
func CombinedPathChart(report *contracts.Report) ([]byte, error) {
	names := make([]string, 0, len(report.Sectors))
	paths := make([]contracts.Series, 0, len(report.Sectors))
	for _, s := range report.Sectors {
		names = append(names, s.Name)
		paths = append(paths, s.SectorPath)
	}

	labels, values := alignPaths(paths)
	if len(labels) < 2 {
		return nil, errors.New("not enough overlapping quarters to chart")
	}

	painter, err := charts.LineRender(values,
		charts.TitleTextOptionFunc("Energy sectors • quarterly • growth of 100"),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: 8}),
		charts.YAxisOptionFunc(charts.YAxisOption{DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

// MetricsBarChart renders CAGR and max drawdown per sector as grouped bars.
// Undefined metrics plot as zero; the table is the authoritative NA view.
func MetricsBarChart(report *contracts.Report) ([]byte, error) {
	if len(report.Sectors) == 0 {
		return nil, errors.New("no sectors to chart")
	}

	names := make([]string, 0, len(report.Sectors))
	cagr := make([]float64, 0, len(report.Sectors))
	drawdown := make([]float64, 0, len(report.Sectors))

	for _, s := range report.Sectors {
		names = append(names, s.Name)
		cagr = append(cagr, orZero(s.SectorMetrics.CAGR))
		drawdown = append(drawdown, orZero(s.SectorMetrics.MaxDrawdown))
	}

	painter, err := charts.BarRender([][]float64{cagr, drawdown},
		charts.TitleTextOptionFunc("CAGR vs max drawdown by sector (%)"),
		charts.XAxisDataOptionFunc(names),
		charts.LegendOptionFunc(charts.LegendOption{Data: []string{"CAGR %", "Max drawdown %"}}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

// WriteAll renders the fixed chart set under dir and returns the files
// written, keyed by chart name.
func WriteAll(dir string, report *contracts.Report) (map[string]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir failed: %w", err)
	}

	files := make(map[string]string)

	write := func(name string, img []byte) error {
		path := filepath.Join(dir, name+".png")
		if err := os.WriteFile(path, img, 0o644); err != nil {
			return fmt.Errorf("write %s failed: %w", path, err)
		}
		files[name] = path
		return nil
	}

	for _, sector := range report.Sectors {
		img, err := SectorPathChart(sector)
		if err != nil {
			return files, fmt.Errorf("sector chart %s failed: %w", sector.Name, err)
		}
		if err := write("sector_"+sector.Name, img); err != nil {
			return files, err
		}
	}

	if img, err := CombinedPathChart(report); err == nil {
		if err := write("combined", img); err != nil {
			return files, err
		}
	} else {
		return files, fmt.Errorf("combined chart failed: %w", err)
	}

	if img, err := MetricsBarChart(report); err == nil {
		if err := write("metrics", img); err != nil {
			return files, err
		}
	} else {
		return files, fmt.Errorf("metrics chart failed: %w", err)
	}

	return files, nil
}

// alignPaths intersects the paths on their common dates so every rendered
// series has a value for every x label.
func alignPaths(paths []contracts.Series) ([]string, [][]float64) {
	count := make(map[time.Time]int)
	for _, p := range paths {
		for _, pt := range p.Filtered() {
			count[pt.Date]++
		}
	}

	var common []time.Time
	for d, c := range count {
		if c == len(paths) {
			common = append(common, d)
		}
	}
	sort.Slice(common, func(i, j int) bool { return common[i].Before(common[j]) })

	labels := make([]string, len(common))
	for i, d := range common {
		labels[i] = fmt.Sprintf("%dQ%d", d.Year(), (int(d.Month())-1)/3+1)
	}

	values := make([][]float64, len(paths))
	for i, p := range paths {
		byDate := make(map[time.Time]float64)
		for _, pt := range p.Filtered() {
			byDate[pt.Date] = pt.Value
		}
		row := make([]float64, len(common))
		for j, d := range common {
			row[j] = byDate[d]
		}
		values[i] = row
	}

	return labels, values
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
