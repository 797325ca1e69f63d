// Package extractor provides text extraction for PDF, DOCX and PPTX files with optional OCR.
package extractor

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/wudi/pdfkit/ocr"

	"github.com/danilovkiri/dk_go_study_helper/internal/metrics"
	serviceErrors "github.com/danilovkiri/dk_go_study_helper/internal/service/errors"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/extractor"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
)

// Check interface implementation explicitly
var (
	_ extractor.Extractor = (*Extractor)(nil)
)

var imageFormats = map[string]ocr.ImageFormat{
	"png":  ocr.ImageFormatPNG,
	"jpg":  ocr.ImageFormatJPEG,
	"jpeg": ocr.ImageFormatJPEG,
	"tif":  ocr.ImageFormatTIFF,
	"tiff": ocr.ImageFormatTIFF,
}

// Extractor struct defines data structure handling and provides support for adding new implementations.
type Extractor struct {
	engine    ocr.Engine
	languages []string
}

// InitExtractor initializes an Extractor object; a nil engine means the library default OCR engine.
func InitExtractor(engine ocr.Engine, languages []string) *Extractor {
	if engine == nil {
		engine = ocr.DefaultEngine()
	}
	return &Extractor{
		engine:    engine,
		languages: languages,
	}
}

// OCREnabled reports whether a real OCR engine is wired in.
func (e *Extractor) OCREnabled() bool {
	return e.engine.Name() != "noop"
}

// Supports reports whether files with the given extension can be extracted.
func (e *Extractor) Supports(format string) bool {
	switch format {
	case "pdf", "docx", "pptx":
		return true
	}
	_, ok := imageFormats[format]
	return ok && e.OCREnabled()
}

// Extract returns the text content of a file chosen by its extension.
func (e *Extractor) Extract(ctx context.Context, name string, data []byte) (modelstudy.Document, error) {
	format := extractor.Format(name)
	doc := modelstudy.Document{Name: name, Format: format}
	if !e.Supports(format) {
		metrics.DocumentsExtracted.WithLabelValues(format, metrics.OutcomeFailure).Inc()
		return doc, &serviceErrors.UnsupportedFormatError{Name: name, Format: format}
	}
	var err error
	switch format {
	case "pdf":
		doc.Text, doc.Pages, err = e.extractPDF(ctx, data)
	case "docx":
		doc.Text, err = extractDOCX(data)
		doc.Pages = 1
	case "pptx":
		doc.Text, doc.Pages, err = extractPPTX(data)
	default:
		doc.Text, err = e.recognize(ctx, name, format, data)
		doc.Pages = 1
	}
	if err != nil {
		log.WithFields(log.Fields{"file": name, "format": format}).Println("Extracting text:", err)
		metrics.DocumentsExtracted.WithLabelValues(format, metrics.OutcomeFailure).Inc()
		return doc, &serviceErrors.ParseError{Format: format, Err: err}
	}
	metrics.DocumentsExtracted.WithLabelValues(format, metrics.OutcomeSuccess).Inc()
	log.WithFields(log.Fields{"file": name, "format": format, "chars": len(doc.Text)}).Debug("Extracting text: done")
	return doc, nil
}

// recognize runs OCR over a standalone image upload.
func (e *Extractor) recognize(ctx context.Context, name, format string, data []byte) (string, error) {
	res, err := e.engine.Recognize(ctx, ocr.Input{
		ID:        name,
		Image:     data,
		Format:    imageFormats[format],
		Languages: e.languages,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.PlainText), nil
}
