package logger

import (
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{name: "info console", level: "info", format: "console"},
		{name: "debug json", level: "debug", format: "json"},
		{name: "warn defaults to console", level: "warn", format: ""},
		{name: "invalid level", level: "loud", format: "console", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.level, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q, %q) error = %v, wantErr %v", tt.level, tt.format, err, tt.wantErr)
			}
			if !tt.wantErr && log == nil {
				t.Error("Expected a logger, got nil")
			}
		})
	}
}
