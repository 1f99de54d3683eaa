package storage

import (
	"fmt"
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ObjectKey derives the storage key for a chart: "{symbol}-{date}.png" with
// every whitespace run collapsed to a single hyphen. The same request always
// maps to the same key, which is what makes publishing idempotent.
func ObjectKey(symbol, date string) string {
	return whitespaceRun.ReplaceAllString(fmt.Sprintf("%s-%s.png", symbol, date), "-")
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".png"):
		return "image/png"
	case strings.HasSuffix(filename, ".jpg"), strings.HasSuffix(filename, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(filename, ".json"):
		return "application/json"
	case strings.HasSuffix(filename, ".txt"):
		return "text/plain"
	case strings.HasSuffix(filename, ".html"):
		return "text/html"
	default:
		return "application/octet-stream"
	}
}
