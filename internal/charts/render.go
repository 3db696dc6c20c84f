package charts

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/2beens/fitprogress/internal/progress"
	"github.com/2beens/fitprogress/internal/telemetry/metrics"
	"github.com/2beens/fitprogress/internal/trend"
	"github.com/2beens/fitprogress/pkg"

	log "github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	ProgressFileName  = "fitness_progress_chart.png"
	NutritionFileName = "calories_protein_scatter.png"
	PhasesFileName    = "phase_distribution_chart.png"
)

// Chart names, used as metric labels and in /charts/{name}.png
const (
	NameProgress  = "progress"
	NameNutrition = "nutrition"
	NamePhases    = "phases"
)

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// RenderPNG renders c into PNG bytes.
func RenderPNG(c renderable) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}
	return buf.Bytes(), nil
}

// Writer renders charts into files under OutDir.
type Writer struct {
	OutDir  string
	Width   int
	Height  int
	Metrics *metrics.Manager
}

func NewWriter(outDir string, width, height int, metricsManager *metrics.Manager) *Writer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Writer{
		OutDir:  outDir,
		Width:   width,
		Height:  height,
		Metrics: metricsManager,
	}
}

// WriteProgress writes the weight / waist chart and returns the file path.
func (w *Writer) WriteProgress(table progress.Table) (string, error) {
	c, err := ProgressChart(table, w.Width, w.Height)
	if err != nil {
		return "", err
	}
	return w.write(NameProgress, ProgressFileName, c)
}

// WriteNutrition writes the calories vs protein chart. Zero layout dimensions take the writer's.
func (w *Writer) WriteNutrition(intake []progress.IntakeSeries, layout NutritionLayout) (string, *trend.Line, error) {
	if layout.Width == 0 {
		layout.Width = w.Width
	}
	if layout.Height == 0 {
		layout.Height = w.Height
	}

	c, line, err := NutritionChart(intake, layout)
	if err != nil {
		return "", nil, err
	}
	path, err := w.write(NameNutrition, NutritionFileName, c)
	if err != nil {
		return "", nil, err
	}
	return path, line, nil
}

func (w *Writer) WritePhases(counts map[progress.Phase]int) (string, error) {
	c, err := PhaseChart(counts, w.Width, w.Height)
	if err != nil {
		return "", err
	}
	return w.write(NamePhases, PhasesFileName, c)
}

func (w *Writer) write(name, fileName string, c renderable) (string, error) {
	if err := pkg.EnsureDir(w.OutDir); err != nil {
		return "", fmt.Errorf("output dir: %w", err)
	}

	png, err := observeRender(w.Metrics, name, c)
	if err != nil {
		return "", fmt.Errorf("%s chart: %w", name, err)
	}

	path := filepath.Join(w.OutDir, fileName)
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	log.Debugf("chart [%s] written to %s (%d bytes)", name, path, len(png))

	return path, nil
}

func observeRender(metricsManager *metrics.Manager, name string, c renderable) ([]byte, error) {
	start := time.Now()
	png, err := RenderPNG(c)
	if err != nil {
		return nil, err
	}
	if metricsManager != nil {
		metricsManager.HistChartRenderDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		metricsManager.CounterChartsRendered.WithLabelValues(name).Inc()
	}
	return png, nil
}
