package charts

import (
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

// Label layouts for the X axis. Points are plotted at integer positions, so
// labels carry all the date information the axis shows.
const (
	timestampLabelLayout = "1/2 15:04"
	dateOnlyLabelLayout  = "1/2"
)

// IndexFormatter maps integer plot positions back to date labels. It is a
// plain value holding the parsed points and a layout; lookups are pure.
type IndexFormatter struct {
	points []time.Time
	layout string
}

// NewIndexFormatter picks the label layout from the series granularity.
func NewIndexFormatter(series *TimeSeries) IndexFormatter {
	layout := dateOnlyLabelLayout
	if series.HasTimeOfDay {
		layout = timestampLabelLayout
	}
	return IndexFormatter{points: series.Points, layout: layout}
}

// Label formats the point at index i. Out-of-range indexes return an empty
// string; the chart library probes positions past both plot edges.
func (f IndexFormatter) Label(i int) string {
	if i < 0 || i >= len(f.points) {
		return ""
	}
	return f.points[i].Format(f.layout)
}

// FormatValue adapts Label to the chart library's ValueFormatter contract by
// rounding the float position to the nearest index.
func (f IndexFormatter) FormatValue(v interface{}) string {
	switch value := v.(type) {
	case int:
		return f.Label(value)
	case float64:
		return f.Label(int(math.Round(value)))
	default:
		return ""
	}
}

// Ticks selects index positions at a fixed stride starting at 0, yielding
// roughly five labeled ticks regardless of series length.
func (f IndexFormatter) Ticks() []chart.Tick {
	n := len(f.points)
	if n == 0 {
		return nil
	}
	stride := tickStride(n)
	ticks := make([]chart.Tick, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: f.Label(i)})
	}
	return ticks
}

// tickStride is len/5 - 1, clamped to 1 so short series still get a tick at
// every point instead of a zero stride.
func tickStride(n int) int {
	stride := n/5 - 1
	if stride < 1 {
		stride = 1
	}
	return stride
}
