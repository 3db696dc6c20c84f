package charts

import (
	"errors"
	"fmt"
	"math"

	"github.com/2beens/fitprogress/internal/progress"
	"github.com/2beens/fitprogress/internal/trend"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const trendSamples = 100

// TargetZone is the intended calories / protein box of a phase.
type TargetZone struct {
	Phase       progress.Phase
	MinCalories float64
	MaxCalories float64
	MinProtein  float64
	MaxProtein  float64
}

func DefaultTargetZones() []TargetZone {
	return []TargetZone{
		{Phase: progress.PhaseCutting, MinCalories: 1750, MaxCalories: 1950, MinProtein: 140, MaxProtein: 170},
		{Phase: progress.PhaseBulking, MinCalories: 2700, MaxCalories: 3200, MinProtein: 170, MaxProtein: 220},
	}
}

// AxisRange is a fixed [Min, Max] axis range.
type AxisRange struct {
	Min float64
	Max float64
}

// NutritionLayout configures the calories vs protein chart. Nil ranges are fitted to the data and zones.
type NutritionLayout struct {
	Width  int
	Height int
	Zones  []TargetZone
	XRange *AxisRange
	YRange *AxisRange
}

// DefaultNutritionLayout frames the default zones: 1750-3200 kcal, 120-220 g protein.
func DefaultNutritionLayout() NutritionLayout {
	return NutritionLayout{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Zones:  DefaultTargetZones(),
		XRange: &AxisRange{Min: 1750, Max: 3200},
		YRange: &AxisRange{Min: 120, Max: 220},
	}
}

// NutritionChart draws one scatter per phase, the target zones and a trend line fitted over
// all points. The returned line is nil when no trend can be fitted.
func NutritionChart(intake []progress.IntakeSeries, layout NutritionLayout) (chart.Chart, *trend.Line, error) {
	var allCalories, allProtein []float64
	for _, s := range intake {
		if len(s.Calories) != len(s.Protein) {
			return chart.Chart{}, nil, fmt.Errorf("%s: %w", s.Phase, progress.ErrLengthMismatch)
		}
		allCalories = append(allCalories, s.Calories...)
		allProtein = append(allProtein, s.Protein...)
	}
	if len(allCalories) == 0 {
		return chart.Chart{}, nil, ErrNoData
	}

	var series []chart.Series
	for _, z := range layout.Zones {
		series = append(series, zoneSeries{zone: z, color: intakeColor(z.Phase)})
	}

	for _, s := range intake {
		if s.Len() == 0 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Phase.String(),
			XValues: s.Calories,
			YValues: s.Protein,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotColor:    intakeColor(s.Phase),
				DotWidth:    4,
			},
		})
	}

	var line *trend.Line
	fitted, err := trend.Fit(allCalories, allProtein)
	switch {
	case err == nil:
		line = &fitted
		xs := trend.Linspace(minOf(allCalories), maxOf(allCalories), trendSamples)
		series = append(series, chart.ContinuousSeries{
			Name:    "Trend",
			XValues: xs,
			YValues: fitted.PredictAll(xs),
			Style: chart.Style{
				StrokeColor: colorSlate,
				StrokeWidth: 2,
			},
		})
	case errors.Is(err, trend.ErrTooFewPoints), errors.Is(err, trend.ErrZeroVariance):
		// scatter only
	default:
		return chart.Chart{}, nil, fmt.Errorf("fit trend: %w", err)
	}

	xRange := layout.XRange
	if xRange == nil {
		xRange = fitRange(allCalories, layout.Zones, func(z TargetZone) (float64, float64) {
			return z.MinCalories, z.MaxCalories
		})
	}
	yRange := layout.YRange
	if yRange == nil {
		yRange = fitRange(allProtein, layout.Zones, func(z TargetZone) (float64, float64) {
			return z.MinProtein, z.MaxProtein
		})
	}

	c := chart.Chart{
		Title:  "Calories vs Protein Intake",
		Width:  layout.Width,
		Height: layout.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:           "Daily Calories",
			ValueFormatter: chart.IntValueFormatter,
			Range:          &chart.ContinuousRange{Min: xRange.Min, Max: xRange.Max},
		},
		YAxis: chart.YAxis{
			Name:           "Protein (g)",
			ValueFormatter: chart.IntValueFormatter,
			Range:          &chart.ContinuousRange{Min: yRange.Min, Max: yRange.Max},
		},
		Series: series,
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}

	return c, line, nil
}

// fitRange covers values and zone bounds with 5% padding on both ends.
func fitRange(values []float64, zones []TargetZone, bounds func(TargetZone) (float64, float64)) *AxisRange {
	lo, hi := minOf(values), maxOf(values)
	for _, z := range zones {
		zlo, zhi := bounds(z)
		lo = math.Min(lo, zlo)
		hi = math.Max(hi, zhi)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	return &AxisRange{Min: lo - pad, Max: hi + pad}
}

func minOf(values []float64) float64 {
	m := math.MaxFloat64
	for _, v := range values {
		m = math.Min(m, v)
	}
	return m
}

func maxOf(values []float64) float64 {
	m := -math.MaxFloat64
	for _, v := range values {
		m = math.Max(m, v)
	}
	return m
}

var _ chart.Series = zoneSeries{}

// zoneSeries draws a target zone as a dashed translucent rectangle.
type zoneSeries struct {
	zone  TargetZone
	color drawing.Color
}

func (zs zoneSeries) GetName() string {
	return zs.zone.Phase.String() + " Target"
}

func (zs zoneSeries) GetYAxis() chart.YAxisType {
	return chart.YAxisPrimary
}

func (zs zoneSeries) GetStyle() chart.Style {
	return chart.Style{
		StrokeColor:     zs.color,
		StrokeWidth:     1,
		StrokeDashArray: []float64{5, 5},
		FillColor:       zs.color.WithAlpha(zoneAlpha),
	}
}

func (zs zoneSeries) Validate() error {
	if zs.zone.MinCalories >= zs.zone.MaxCalories || zs.zone.MinProtein >= zs.zone.MaxProtein {
		return fmt.Errorf("target zone %s: empty bounds", zs.zone.Phase)
	}
	return nil
}

func (zs zoneSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := zs.GetStyle().InheritFrom(defaults)

	box := chart.Box{
		Left:   canvasBox.Left + xrange.Translate(zs.zone.MinCalories),
		Right:  canvasBox.Left + xrange.Translate(zs.zone.MaxCalories),
		Top:    canvasBox.Bottom - yrange.Translate(zs.zone.MaxProtein),
		Bottom: canvasBox.Bottom - yrange.Translate(zs.zone.MinProtein),
	}
	box.Left = clamp(box.Left, canvasBox.Left, canvasBox.Right)
	box.Right = clamp(box.Right, canvasBox.Left, canvasBox.Right)
	box.Top = clamp(box.Top, canvasBox.Top, canvasBox.Bottom)
	box.Bottom = clamp(box.Bottom, canvasBox.Top, canvasBox.Bottom)
	if box.Left == box.Right || box.Top == box.Bottom {
		// outside the visible range
		return
	}

	chart.Draw.Box(r, box, style)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
