package charts

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fitprogress/internal/progress"
	"github.com/2beens/fitprogress/internal/telemetry/metrics"
	"github.com/2beens/fitprogress/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// EntriesRenderer renders the charts of stored tracker entries.
type EntriesRenderer struct {
	width   int
	height  int
	metrics *metrics.Manager
}

func NewEntriesRenderer(width, height int, metricsManager *metrics.Manager) *EntriesRenderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &EntriesRenderer{
		width:   width,
		height:  height,
		metrics: metricsManager,
	}
}

func (er *EntriesRenderer) RenderChart(ctx context.Context, name string, entries []progress.Entry) (_ []byte, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "charts.render")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("chart", name))
	span.SetAttributes(attribute.Int("entries", len(entries)))

	var c renderable
	switch name {
	case NameProgress:
		c, err = ProgressChart(progress.TableFromEntries(entries), er.width, er.height)
	case NameNutrition:
		layout := NutritionLayout{
			Width:  er.width,
			Height: er.height,
			Zones:  DefaultTargetZones(),
		}
		c, _, err = NutritionChart(progress.IntakeFromEntries(entries), layout)
	case NamePhases:
		c, err = PhaseChart(progress.Summarize(entries, time.Now()).PhaseCounts, er.width, er.height)
	default:
		return nil, fmt.Errorf("unknown chart: %s", name)
	}
	if err != nil {
		return nil, err
	}

	return observeRender(er.metrics, name, c)
}
