package parser

import (
	"testing"

	"github.com/hyperspot/fileparser/internal/docmodel"
)

func uploadHints(filename, contentType string) Hints {
	return Hints{
		Filename:    filename,
		ContentType: contentType,
		Source:      docmodel.Uploaded(filename),
	}
}

func TestRegistry_TotalDispatch(t *testing.T) {
	r := NewRegistry(Options{})
	kinds := []BackendKind{
		BackendText, BackendMarkdown, BackendHTML, BackendPDF,
		BackendDOCX, BackendImage, BackendStub,
	}
	for _, k := range kinds {
		if r.Get(k) == nil {
			t.Errorf("no backend for %q", k)
		}
	}
	// Unknown kinds fall back to the stub rather than nil.
	if b := r.Get(BackendKind("bogus")); b == nil {
		t.Error("unknown kind must resolve to the stub backend")
	} else if _, ok := b.(*StubBackend); !ok {
		t.Errorf("unknown kind resolved to %T, want *StubBackend", b)
	}
}

func TestNewDocument_TitleFromFilename(t *testing.T) {
	doc := newDocument(uploadHints("notes.txt", "text/plain"), []docmodel.Block{docmodel.Paragraph("x")})
	if doc.Title != "notes" {
		t.Errorf("title = %q, want %q", doc.Title, "notes")
	}
}

func TestNewDocument_FirstHeadingWinsTitle(t *testing.T) {
	blocks := []docmodel.Block{
		docmodel.Paragraph("intro"),
		docmodel.Heading(1, "Quarterly Report"),
		docmodel.Heading(2, "Details"),
	}
	doc := newDocument(uploadHints("q3.docx", ""), blocks)
	if doc.Title != "Quarterly Report" {
		t.Errorf("title = %q, want first heading", doc.Title)
	}
}

func TestNewDocument_MetaCarriesSourceAndContentType(t *testing.T) {
	doc := newDocument(uploadHints("a.txt", "text/plain"), nil)
	if doc.Meta.Source.Kind != docmodel.SourceUploaded || doc.Meta.Source.OriginalName != "a.txt" {
		t.Errorf("unexpected source: %+v", doc.Meta.Source)
	}
	if doc.Meta.ContentType != "text/plain" {
		t.Errorf("content type = %q", doc.Meta.ContentType)
	}
	if len(doc.Blocks) == 0 {
		t.Error("document must never have zero blocks")
	}
}
