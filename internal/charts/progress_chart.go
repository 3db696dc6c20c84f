package charts

import (
	"fmt"
	"math"
	"time"

	"github.com/2beens/fitprogress/internal/progress"

	"github.com/wcharczuk/go-chart/v2"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = fmt.Errorf("charts: %w", progress.ErrNotEnoughData)

const (
	progressLineWidth = 3
	progressDotWidth  = 3
)

// ProgressChart draws weight (left axis, solid) and waist (right axis, dashed) over time,
// one line per phase.
func ProgressChart(table progress.Table, width, height int) (chart.Chart, error) {
	if len(table) == 0 {
		return chart.Chart{}, ErrNoData
	}

	split := table.SplitByPhase()
	var series []chart.Series
	for _, phase := range progress.Phases {
		subset, ok := split[phase]
		if !ok || len(subset) == 0 {
			continue
		}
		series = append(series, chart.TimeSeries{
			Name:    "Weight " + phase.String(),
			YAxis:   chart.YAxisSecondary,
			XValues: subset.Dates(),
			YValues: subset.Weights(),
			Style: chart.Style{
				StrokeColor: weightColor(phase),
				StrokeWidth: progressLineWidth,
				DotColor:    weightColor(phase),
				DotWidth:    progressDotWidth,
			},
		})
	}
	for _, phase := range progress.Phases {
		subset, ok := split[phase]
		if !ok || len(subset) == 0 {
			continue
		}
		series = append(series, chart.TimeSeries{
			Name:    "Waist " + phase.String(),
			YAxis:   chart.YAxisPrimary,
			XValues: subset.Dates(),
			YValues: subset.Waists(),
			Style: chart.Style{
				StrokeColor:     waistColor(phase),
				StrokeWidth:     progressLineWidth,
				StrokeDashArray: []float64{8, 6},
				DotColor:        waistColor(phase),
				DotWidth:        progressDotWidth,
			},
		})
	}
	if len(series) == 0 {
		// only rows with unknown phases
		return chart.Chart{}, ErrNoData
	}

	xMin, xMax := timeBounds(table.Dates())
	wMin, wMax := paddedBounds(table.Weights(), 0.5)
	cMin, cMax := paddedBounds(table.Waists(), 0.25)

	c := chart.Chart{
		Title:  "Fitness Progress",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
			Range:          &chart.ContinuousRange{Min: xMin, Max: xMax},
		},
		// the secondary axis is drawn on the left
		YAxisSecondary: chart.YAxis{
			Name:           "Weight (kg)",
			ValueFormatter: oneDecimal,
			Range:          &chart.ContinuousRange{Min: wMin, Max: wMax},
		},
		YAxis: chart.YAxis{
			Name:           "Waist (in)",
			ValueFormatter: oneDecimal,
			Range:          &chart.ContinuousRange{Min: cMin, Max: cMax},
		},
		Series: series,
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}

	return c, nil
}

// timeBounds returns the x range of the dates, widened by a day on each side when all dates are equal.
func timeBounds(dates []time.Time) (float64, float64) {
	first, last := chart.TimeMinMax(dates...)
	if !first.Before(last) {
		first = first.AddDate(0, 0, -1)
		last = last.AddDate(0, 0, 1)
	}
	return chart.TimeToFloat64(first), chart.TimeToFloat64(last)
}

// paddedBounds returns [min - pad, max + pad] of values.
func paddedBounds(values []float64, pad float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 1
	}
	lo, hi := math.MaxFloat64, -math.MaxFloat64
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo - pad, hi + pad
}

func oneDecimal(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.1f", f)
	}
	return ""
}
