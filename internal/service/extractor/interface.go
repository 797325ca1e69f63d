// Package extractor provides interfaces and helpers for turning uploaded documents into plain text.
package extractor

import (
	"context"

	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
)

// Extractor defines a set of methods for types implementing Extractor.
type Extractor interface {
	// Extract returns the text content of a file; the format is chosen by the file name extension.
	Extract(ctx context.Context, name string, data []byte) (modelstudy.Document, error)
	// Supports reports whether files with the given (lowercase) extension can be extracted.
	Supports(format string) bool
}
