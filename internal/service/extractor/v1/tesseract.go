//go:build tesseract

package extractor

// Registers the Tesseract engine (cgo, needs libtesseract) as the default OCR engine.
import _ "github.com/wudi/pdfkit/ocr/tesseract"
