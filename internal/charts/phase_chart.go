package charts

import (
	"math"

	"github.com/2beens/fitprogress/internal/progress"

	"github.com/wcharczuk/go-chart/v2"
)

// PhaseChart draws the number of logged days per phase.
func PhaseChart(counts map[progress.Phase]int, width, height int) (chart.BarChart, error) {
	total := 0
	maxCount := 0
	bars := make([]chart.Value, 0, len(progress.Phases))
	for _, phase := range progress.Phases {
		count := counts[phase]
		total += count
		if count > maxCount {
			maxCount = count
		}
		bars = append(bars, chart.Value{
			Label: phase.String(),
			Value: float64(count),
			Style: chart.Style{
				FillColor:   phaseBarColor(phase),
				StrokeColor: phaseBarColor(phase),
				StrokeWidth: 1,
			},
		})
	}
	if total == 0 {
		return chart.BarChart{}, ErrNoData
	}

	return chart.BarChart{
		Title:  "Days per Phase",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 10},
		},
		BarWidth: width / 5,
		YAxis: chart.YAxis{
			Name:           "Days",
			ValueFormatter: chart.IntValueFormatter,
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: math.Ceil(float64(maxCount) * 1.1),
			},
		},
		Bars: bars,
	}, nil
}
