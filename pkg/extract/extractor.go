package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
)

const docxMime = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ErrUnsupportedType indicates no extraction strategy exists for the file.
var ErrUnsupportedType = fmt.Errorf("unsupported file type")

// Extractor turns raw attachment bytes into text the completion engine can
// consume.
type Extractor interface {
	Extract(ctx context.Context, name string, data []byte) (string, error)
}

// Service implements Extractor by sniffing the real MIME type and dispatching
// to a per-format strategy. The client-declared type is never trusted.
type Service struct {
	logger zerolog.Logger
}

// New constructs an extraction service.
func New(logger zerolog.Logger) *Service {
	return &Service{
		logger: logger.With().Str("component", "extractor").Logger(),
	}
}

// Extract resolves the attachment's textual content. Plain-text formats pass
// through, PDFs and DOCX files are parsed, images get a marker until the OCR
// path lands.
func (s *Service) Extract(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	detected := mimetype.Detect(data)

	switch {
	case isText(detected):
		return string(data), nil
	case detected.Is("application/pdf"):
		return s.extractPDF(name, data)
	case detected.Is(docxMime):
		return s.extractDOCX(name, data)
	case strings.HasPrefix(detected.String(), "image/"):
		// TODO: route images through the vision-capable completion provider.
		return fmt.Sprintf("[image %s: text extraction pending OCR support]", name), nil
	default:
		s.logger.Warn().Str("name", name).Str("mime", detected.String()).Msg("no extraction strategy for file")
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, detected.String())
	}
}

// DetectMime reports the sniffed MIME type for the payload.
func DetectMime(data []byte) string {
	return mimetype.Detect(data).String()
}

func (s *Service) extractPDF(name string, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", name, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text %s: %w", name, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text %s: %w", name, err)
	}

	return strings.TrimSpace(buf.String()), nil
}

// extractDOCX pulls the document body out of the OOXML package and flattens
// its runs to plain text, one line per paragraph.
func (s *Service) extractDOCX(name string, data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx %s: %w", name, err)
	}

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open docx body %s: %w", name, err)
		}
		text, err := docxText(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("extract docx text %s: %w", name, err)
		}
		return text, nil
	}

	return "", fmt.Errorf("docx %s has no document body", name)
}

// docxText collects the character data of <w:t> runs, inserting a newline at
// each paragraph boundary.
func docxText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		buf   strings.Builder
		inRun bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inRun = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				buf.WriteByte('\n')
			}
		case xml.CharData:
			if inRun {
				buf.Write(t)
			}
		}
	}

	return strings.TrimSpace(buf.String()), nil
}

// isText walks the MIME hierarchy: every textual format mimetype knows about
// descends from text/plain.
func isText(detected *mimetype.MIME) bool {
	for mime := detected; mime != nil; mime = mime.Parent() {
		if mime.Is("text/plain") {
			return true
		}
	}
	return false
}
