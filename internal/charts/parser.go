package charts

import (
	"fmt"
	"time"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	dateOnlyLayout  = "2006-01-02"
)

// DateParseError is returned when a value fails both the timestamp and the
// date-only layout. It aborts parsing for the whole series.
type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("cannot parse %q as a date: %v", e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

// DateParser parses date/time strings with an irreversible fallback from
// timestamp parsing to date-only parsing. The mode flag lives on the parser
// value, so each parse run is isolated; nothing is shared across requests.
type DateParser struct {
	datesOnly bool
	warnings  []string
}

// Parse interprets one value under the current mode. The first value that
// fails the timestamp layout flips the parser to date-only mode for the rest
// of the series and is retried once under the new mode. A failure while
// already in date-only mode is fatal.
func (p *DateParser) Parse(value string) (time.Time, error) {
	if p.datesOnly {
		t, err := time.Parse(dateOnlyLayout, value)
		if err != nil {
			return time.Time{}, &DateParseError{Value: value, Err: err}
		}
		return t, nil
	}

	t, err := time.Parse(timestampLayout, value)
	if err != nil {
		p.warnings = append(p.warnings,
			fmt.Sprintf("error parsing date %q, trying again with date only (no time)", value))
		p.datesOnly = true
		return p.Parse(value)
	}
	return t, nil
}

// TimeSeries holds the parsed time points for one X axis. HasTimeOfDay
// reports the final parser mode and is uniform for the whole series.
type TimeSeries struct {
	Points       []time.Time
	HasTimeOfDay bool
	Warnings     []string
}

// ParseSeries parses all X-axis values in order with a fresh DateParser.
// Values parsed before a mode switch keep the time of day they carried;
// only the label format downstream changes with the final mode.
func ParseSeries(values []string) (*TimeSeries, error) {
	p := &DateParser{}
	points := make([]time.Time, 0, len(values))
	for _, v := range values {
		t, err := p.Parse(v)
		if err != nil {
			return nil, err
		}
		points = append(points, t)
	}
	return &TimeSeries{
		Points:       points,
		HasTimeOfDay: !p.datesOnly,
		Warnings:     p.warnings,
	}, nil
}
