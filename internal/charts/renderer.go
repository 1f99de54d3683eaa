package charts

import (
	"bytes"
	"errors"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.uber.org/zap"

	"plotcast/internal/models"
)

// Default chart labels when the request leaves them out.
const (
	defaultXLabel = "x"
	defaultYLabel = "y"
	defaultTitle  = "My Graph"
)

const (
	chartWidth  = 500
	chartHeight = 500
)

// Renderer turns a Graph into PNG bytes. Malformed dates never fail a
// render; they route it to the categorical fallback path instead.
type Renderer struct {
	log *zap.Logger
}

// NewRenderer creates a chart renderer.
func NewRenderer(log *zap.Logger) *Renderer {
	return &Renderer{log: log}
}

// Render plots the Y values against integer positions 0..N-1 with date
// labels attached via the index formatter, so points are evenly spaced
// regardless of gaps between the underlying dates. When date parsing fails
// for the whole series, it falls back to plotting the raw X strings as
// categorical labels.
func (r *Renderer) Render(graph *models.Graph) ([]byte, error) {
	r.log.Info("rendering chart",
		zap.Int("points", len(graph.XAxis)),
		zap.Strings("xaxis", graph.XAxis))

	series, err := ParseSeries(graph.XAxis)
	if err != nil {
		var parseErr *DateParseError
		if errors.As(err, &parseErr) {
			r.log.Warn("error formatting dates, plotting raw x values", zap.Error(parseErr))
			return r.renderCategorical(graph)
		}
		return nil, err
	}
	for _, warning := range series.Warnings {
		r.log.Warn(warning)
	}

	formatter := NewIndexFormatter(series)
	xAxis := chart.XAxis{
		Name:           labelOrDefault(graph.XLabel, defaultXLabel),
		Style:          chart.Style{FontSize: 9},
		TickStyle:      chart.Style{TextRotationDegrees: 45.0},
		Ticks:          formatter.Ticks(),
		ValueFormatter: formatter.FormatValue,
	}

	return r.render(graph, xAxis)
}

// renderCategorical is the fallback path: raw X values become tick labels at
// up to five positions, with no date-aware formatting.
func (r *Renderer) renderCategorical(graph *models.Graph) ([]byte, error) {
	xAxis := chart.XAxis{
		Name:  labelOrDefault(graph.XLabel, defaultXLabel),
		Style: chart.Style{FontSize: 9},
		Ticks: categoricalTicks(graph.XAxis),
	}
	return r.render(graph, xAxis)
}

func (r *Renderer) render(graph *models.Graph, xAxis chart.XAxis) ([]byte, error) {
	c := chart.Chart{
		Title: labelOrDefault(graph.Title, defaultTitle),
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 30, Left: 25, Right: 25, Bottom: 40},
		},
		XAxis: xAxis,
		YAxis: chart.YAxis{
			Name:  labelOrDefault(graph.YLabel, defaultYLabel),
			Style: chart.Style{FontSize: 10},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 31, G: 119, B: 180, A: 255},
					StrokeWidth: 2,
				},
				XValues: indexPositions(len(graph.XAxis)),
				YValues: graph.YAxis,
			},
		},
	}

	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// indexPositions returns the plot positions 0..n-1.
func indexPositions(n int) []float64 {
	positions := make([]float64, n)
	for i := range positions {
		positions[i] = float64(i)
	}
	return positions
}

// categoricalTicks labels up to five evenly strided positions with the raw
// input strings.
func categoricalTicks(values []string) []chart.Tick {
	n := len(values)
	if n == 0 {
		return nil
	}
	stride := n / 5
	if stride < 1 {
		stride = 1
	}
	ticks := make([]chart.Tick, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: values[i]})
	}
	return ticks
}

func labelOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
