package extractor

import (
	"bytes"
	"context"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	pdfextractor "github.com/wudi/pdfkit/extractor"
	"github.com/wudi/pdfkit/ir"
	"github.com/wudi/pdfkit/ocr"
)

// extractPDF returns the text of every page joined by newlines and the page count.
// A page without a text layer contributes an empty line.
func (e *Extractor) extractPDF(ctx context.Context, data []byte) (string, int, error) {
	doc, err := ir.NewDefault().Parse(ctx, bytes.NewReader(data))
	if err != nil {
		return "", 0, errors.Wrap(err, "parse pdf")
	}
	dec := doc.Decoded()
	if dec == nil {
		return "", 0, errors.New("pdf pipeline produced no decoded document")
	}
	ext, err := pdfextractor.New(dec)
	if err != nil {
		return "", 0, errors.Wrap(err, "init pdf extractor")
	}
	found, err := ext.ExtractText()
	if err != nil {
		return "", 0, errors.Wrap(err, "extract pdf text")
	}
	count := len(doc.Pages)
	for _, page := range found {
		if page.Page >= count {
			count = page.Page + 1
		}
	}
	pages := make([]string, count)
	for _, page := range found {
		pages[page.Page] = page.Content
	}
	if e.OCREnabled() {
		e.recognizeScannedPages(ctx, ext, pages)
	}
	return strings.Join(pages, "\n"), count, nil
}

// recognizeScannedPages fills pages without a text layer with OCR output of their images.
// OCR is best effort: failures are logged and the page stays empty.
func (e *Extractor) recognizeScannedPages(ctx context.Context, ext *pdfextractor.Extractor, pages []string) {
	assets, err := ext.ExtractImages()
	if err != nil {
		log.Println("Recognizing scanned pages:", err)
		return
	}
	var scanned []pdfextractor.ImageAsset
	for _, asset := range assets {
		if asset.Page < len(pages) && pages[asset.Page] == "" {
			scanned = append(scanned, asset)
		}
	}
	if len(scanned) == 0 {
		return
	}
	results, err := ocr.RecognizeAssets(ctx, e.engine, scanned, ocr.WithLanguages(e.languages...))
	if err != nil {
		log.Println("Recognizing scanned pages:", err)
		return
	}
	for i, res := range results {
		text := strings.TrimSpace(res.PlainText)
		if text == "" || i >= len(scanned) {
			continue
		}
		page := scanned[i].Page
		if pages[page] != "" {
			text = pages[page] + "\n" + text
		}
		pages[page] = text
	}
}
