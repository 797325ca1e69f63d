package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	wordNS         = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	presentationNS = "http://schemas.openxmlformats.org/presentationml/2006/main"
	drawingNS      = "http://schemas.openxmlformats.org/drawingml/2006/main"
)

type presentationPart struct {
	SlideIDs []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type relationshipsPart struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

var slidePattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// extractDOCX returns the paragraphs of the main document part, one per line.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Wrap(err, "open docx")
	}
	var part *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			part = f
			break
		}
	}
	if part == nil {
		return "", errors.New("docx has no word/document.xml part")
	}
	rc, err := part.Open()
	if err != nil {
		return "", errors.Wrap(err, "open word/document.xml")
	}
	defer rc.Close()

	var paragraphs []string
	// text boxes nest paragraphs inside paragraphs, hence the stack
	var stack []*strings.Builder
	inText := false
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.Wrap(err, "decode word/document.xml")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				stack = append(stack, &strings.Builder{})
			case "t":
				inText = true
			case "tab":
				if len(stack) > 0 {
					stack[len(stack)-1].WriteByte('\t')
				}
			case "br", "cr":
				if len(stack) > 0 {
					stack[len(stack)-1].WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if len(stack) > 0 {
					paragraphs = append(paragraphs, stack[len(stack)-1].String())
					stack = stack[:len(stack)-1]
				}
			}
		case xml.CharData:
			if inText && len(stack) > 0 {
				stack[len(stack)-1].Write(t)
			}
		}
	}
	return strings.TrimSpace(strings.Join(paragraphs, "\n")), nil
}

// extractPPTX returns the text of every shape text frame in slide order and the slide count.
func extractPPTX(data []byte) (string, int, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, errors.Wrap(err, "open pptx")
	}
	slides := presentationSlides(zr)
	if len(slides) == 0 {
		slides = numberedSlides(zr)
	}
	if len(slides) == 0 {
		if findPart(zr, "ppt/presentation.xml") == nil {
			return "", 0, errors.New("pptx has no ppt/presentation.xml part")
		}
		return "", 0, nil
	}

	var frames []string
	for _, f := range slides {
		texts, err := slideFrames(f)
		if err != nil {
			return "", 0, errors.Wrapf(err, "decode %s", f.Name)
		}
		frames = append(frames, texts...)
	}
	return strings.Join(frames, "\n"), len(slides), nil
}

// presentationSlides resolves the slide list of ppt/presentation.xml through its relationships.
// Slide file names keep their numbers when slides are reordered, so the list is authoritative.
func presentationSlides(zr *zip.Reader) []*zip.File {
	var pres presentationPart
	if err := unmarshalPart(zr, "ppt/presentation.xml", &pres); err != nil || len(pres.SlideIDs) == 0 {
		return nil
	}
	var rels relationshipsPart
	if err := unmarshalPart(zr, "ppt/_rels/presentation.xml.rels", &rels); err != nil {
		return nil
	}
	targets := make(map[string]string, len(rels.Relationships))
	for _, rel := range rels.Relationships {
		target := rel.Target
		if strings.HasPrefix(target, "/") {
			target = strings.TrimPrefix(target, "/")
		} else {
			target = path.Join("ppt", target)
		}
		targets[rel.ID] = target
	}
	var slides []*zip.File
	for _, id := range pres.SlideIDs {
		if f := findPart(zr, targets[id.RelID]); f != nil {
			slides = append(slides, f)
		}
	}
	return slides
}

// numberedSlides orders ppt/slides/slideN.xml parts by N.
func numberedSlides(zr *zip.Reader) []*zip.File {
	type slide struct {
		number int
		file   *zip.File
	}
	var found []slide
	for _, f := range zr.File {
		m := slidePattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		found = append(found, slide{number: n, file: f})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].number < found[j].number })
	slides := make([]*zip.File, 0, len(found))
	for _, s := range found {
		slides = append(slides, s.file)
	}
	return slides
}

func unmarshalPart(zr *zip.Reader, name string, v interface{}) error {
	f := findPart(zr, name)
	if f == nil {
		return errors.Errorf("missing part %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return xml.NewDecoder(rc).Decode(v)
}

// slideFrames returns the text of each shape text body of one slide.
func slideFrames(f *zip.File) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var frames, paragraphs []string
	var cur strings.Builder
	inBody, inText := false, false
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Space == presentationNS && t.Name.Local == "txBody":
				inBody = true
				paragraphs = paragraphs[:0]
			case inBody && t.Name.Space == drawingNS && t.Name.Local == "p":
				cur.Reset()
			case inBody && t.Name.Space == drawingNS && t.Name.Local == "t":
				inText = true
			case inBody && t.Name.Space == drawingNS && t.Name.Local == "br":
				cur.WriteByte('\n')
			}
		case xml.EndElement:
			switch {
			case t.Name.Space == presentationNS && t.Name.Local == "txBody":
				inBody = false
				if text := strings.Join(paragraphs, "\n"); strings.TrimSpace(text) != "" {
					frames = append(frames, text)
				}
			case inBody && t.Name.Space == drawingNS && t.Name.Local == "p":
				paragraphs = append(paragraphs, cur.String())
			case t.Name.Space == drawingNS && t.Name.Local == "t":
				inText = false
			}
		case xml.CharData:
			if inBody && inText {
				cur.Write(t)
			}
		}
	}
}

func findPart(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}
