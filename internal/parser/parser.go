// Package parser converts raw document bytes into the canonical block model.
// One backend exists per supported format family; the detector maps every
// input to some backend, so parsing never fails on unknown formats.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hyperspot/fileparser/internal/docmodel"
	"github.com/hyperspot/fileparser/internal/ocr"
)

// BackendKind identifies which parser family handles an input.
type BackendKind string

const (
	BackendText     BackendKind = "text"
	BackendMarkdown BackendKind = "markdown"
	BackendHTML     BackendKind = "html"
	BackendPDF      BackendKind = "pdf"
	BackendDOCX     BackendKind = "docx"
	BackendImage    BackendKind = "image"
	BackendStub     BackendKind = "stub"
)

// Hints carries per-input context into a backend. Backends are pure: the
// only input they consume is the byte slice plus these hints.
type Hints struct {
	Filename    string
	ContentType string
	Source      docmodel.Source
}

// Backend converts raw bytes into a Document. Implementations prefer
// placeholder or partial output over returning an error; CorruptError is
// reserved for inputs where not even a placeholder can be built.
type Backend interface {
	Parse(data []byte, hints Hints) (*docmodel.Document, error)
}

// CorruptError reports an input whose container structure is unreadable
// beyond any partial recovery.
type CorruptError struct {
	Backend BackendKind
	Reason  string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("%s: corrupt input: %s", e.Backend, e.Reason)
}

// Registry holds one backend instance per kind. Instances are stateless and
// safe for concurrent use.
type Registry struct {
	backends map[BackendKind]Backend
	stub     *StubBackend
}

// Options configures backend construction.
type Options struct {
	// OCR is the recognition client used by the image backend. Nil means
	// OCR is unavailable and image inputs degrade to placeholder blocks.
	OCR *ocr.Client

	// OCRPDFImages routes raster images embedded in PDFs through OCR.
	// Off by default: PDF pages with images yield image blocks only.
	OCRPDFImages bool
}

// NewRegistry builds the full backend set.
func NewRegistry(opts Options) *Registry {
	stub := &StubBackend{}
	return &Registry{
		stub: stub,
		backends: map[BackendKind]Backend{
			BackendText:     &TextBackend{},
			BackendMarkdown: &MarkdownBackend{},
			BackendHTML:     &HTMLBackend{},
			BackendPDF:      &PDFBackend{OCR: opts.OCR, OCRImages: opts.OCRPDFImages},
			BackendDOCX:     &DOCXBackend{},
			BackendImage:    &ImageBackend{OCR: opts.OCR},
			BackendStub:     stub,
		},
	}
}

// Get returns the backend for a kind. Unknown kinds resolve to the stub so
// dispatch is total.
func (r *Registry) Get(kind BackendKind) Backend {
	if b, ok := r.backends[kind]; ok {
		return b
	}
	return r.stub
}

// Extensions lists, per backend family, the file extensions it handles.
// The stub's entries are the legacy formats it strips best-effort text from.
var Extensions = map[BackendKind][]string{
	BackendText:     {".txt", ".text", ".log"},
	BackendMarkdown: {".md", ".markdown"},
	BackendHTML:     {".html", ".htm"},
	BackendPDF:      {".pdf"},
	BackendDOCX:     {".docx"},
	BackendImage:    {".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"},
	BackendStub:     {".doc", ".rtf", ".odt", ".xls", ".xlsx", ".ppt", ".pptx"},
}

// newDocument assembles a backend's output. Title falls back to the
// filename stem and is overridden by the first heading block when present.
func newDocument(hints Hints, blocks []docmodel.Block) *docmodel.Document {
	title := titleStem(hints.Filename)
	for _, b := range blocks {
		if b.Kind == docmodel.BlockHeading {
			if t := strings.TrimSpace(b.PlainText()); t != "" {
				title = t
			}
			break
		}
	}
	meta := docmodel.Meta{Source: hints.Source, ContentType: hints.ContentType}
	return docmodel.New(title, meta, blocks)
}

func titleStem(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
