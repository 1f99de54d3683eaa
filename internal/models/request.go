package models

import (
	"fmt"
)

// RenderRequest is the top-level JSON payload accepted by the service.
// Only Graph is consumed by the rendering core; Symbol and Date derive the
// storage key, and Destination/MessageText drive the optional notification.
type RenderRequest struct {
	Symbol      string       `json:"symbol"`
	Date        string       `json:"date"`
	Graph       *Graph       `json:"graph"`
	Destination *Destination `json:"destination,omitempty"`
	MessageText string       `json:"message_text,omitempty"`
}

// Graph describes a single line chart: date/time strings on the X axis and
// numeric values on the Y axis. Labels and title are optional and fall back
// to defaults at render time.
type Graph struct {
	XAxis  []string  `json:"xaxis"`
	YAxis  []float64 `json:"yaxis"`
	XLabel string    `json:"xlabel,omitempty"`
	YLabel string    `json:"ylabel,omitempty"`
	Title  string    `json:"title,omitempty"`
}

// Destination selects where the notification referencing the chart URL goes.
type Destination struct {
	SlackChannel string `json:"slack_channel,omitempty"`
}

// MissingFieldError reports a required field absent from the request.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing %q field", e.Field)
}

// DimensionMismatchError reports axes of different lengths.
type DimensionMismatchError struct {
	XLen int
	YLen int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("xaxis and yaxis must have the same dimension (got %d and %d)", e.XLen, e.YLen)
}

// Validate checks that the request carries everything rendering needs.
// It runs before any rendering or storage I/O and has no side effects.
// A nil slice means the field was absent from the JSON; an explicitly empty
// array passes validation and yields a degenerate chart downstream.
func (r *RenderRequest) Validate() error {
	if r.Graph == nil {
		return &MissingFieldError{Field: "graph"}
	}
	if r.Graph.XAxis == nil {
		return &MissingFieldError{Field: "xaxis"}
	}
	if r.Graph.YAxis == nil {
		return &MissingFieldError{Field: "yaxis"}
	}
	if len(r.Graph.XAxis) != len(r.Graph.YAxis) {
		return &DimensionMismatchError{XLen: len(r.Graph.XAxis), YLen: len(r.Graph.YAxis)}
	}
	return nil
}
