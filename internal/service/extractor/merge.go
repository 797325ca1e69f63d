package extractor

import (
	"errors"
	"fmt"
	"strings"

	serviceErrors "github.com/danilovkiri/dk_go_study_helper/internal/service/errors"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
)

// Format returns the lowercase extension after the last dot of a file name.
func Format(name string) string {
	return strings.ToLower(name[strings.LastIndex(name, ".")+1:])
}

// Merge concatenates documents in the given order, each preceded by a header line with its name.
func Merge(docs []modelstudy.Document) string {
	var b strings.Builder
	for _, doc := range docs {
		b.WriteString("\n\n--- ")
		b.WriteString(doc.Name)
		b.WriteString(" ---\n\n")
		b.WriteString(Body(doc))
	}
	return b.String()
}

// Body returns the extracted text of a document or a one-line marker when extraction failed.
func Body(doc modelstudy.Document) string {
	if doc.Err == nil {
		return doc.Text
	}
	var unsupported *serviceErrors.UnsupportedFormatError
	if errors.As(doc.Err, &unsupported) {
		return "[unsupported file format]"
	}
	return fmt.Sprintf("[could not read %s file]", doc.Format)
}
