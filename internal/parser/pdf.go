package parser

import (
	"bytes"
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/hyperspot/fileparser/internal/docmodel"
	"github.com/hyperspot/fileparser/internal/ocr"
)

// PDFBackend extracts per-page text runs into paragraph blocks in reading
// order. Pages that fail to extract yield a placeholder block instead of
// aborting the document. Embedded raster images are detected per page; when
// OCRImages is set and an OCR client is available, embedded JPEG streams
// are routed through recognition.
type PDFBackend struct {
	OCR       *ocr.Client
	OCRImages bool
}

func (b *PDFBackend) Parse(data []byte, hints Hints) (*docmodel.Document, error) {
	if len(data) == 0 {
		return newDocument(hints, nil), nil
	}

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if !bytes.HasPrefix(data, []byte("%PDF-")) {
			return nil, &CorruptError{Backend: BackendPDF, Reason: "missing or truncated %PDF header"}
		}
		// Header is intact but the xref structure is unreadable; a
		// placeholder document is still derivable.
		return newDocument(hints, []docmodel.Block{
			docmodel.Unrecognized("application/pdf: unreadable cross-reference structure"),
		}), nil
	}

	imagePages := detectImagePages(data)

	var blocks []docmodel.Block
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			blocks = append(blocks, pagePlaceholder(i))
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			blocks = append(blocks, pagePlaceholder(i))
		} else if t := strings.TrimSpace(text); t != "" {
			blocks = append(blocks, docmodel.Paragraph(t))
		}

		if imagePages[i] {
			blocks = append(blocks, b.imageBlock(data, i))
		}
	}

	return newDocument(hints, blocks), nil
}

func pagePlaceholder(pageNr int) docmodel.Block {
	return docmodel.Unrecognized(fmt.Sprintf("page %d: text extraction failed", pageNr))
}

// imageBlock represents a page's embedded raster content. With OCR routing
// enabled, recognized text becomes the block's inline content.
func (b *PDFBackend) imageBlock(data []byte, pageNr int) docmodel.Block {
	alt := fmt.Sprintf("embedded image (page %d)", pageNr)
	if !b.OCRImages || b.OCR == nil {
		return docmodel.Block{Kind: docmodel.BlockImage, Alt: alt}
	}
	text := b.ocrEmbeddedImages(data)
	if text == "" {
		return docmodel.Block{Kind: docmodel.BlockImage, Alt: alt}
	}
	return docmodel.Block{
		Kind:    docmodel.BlockImage,
		Alt:     alt,
		Inlines: []docmodel.Inline{{Text: text}},
	}
}

// detectImagePages reports which pages carry image XObjects. Errors degrade
// to "no images"; detection is an enrichment, not a requirement.
func detectImagePages(data []byte) map[int]bool {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil
	}
	pages := make(map[int]bool)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		if len(pdfcpu.ImageObjNrs(ctx, pageNr)) > 0 {
			pages[pageNr] = true
		}
	}
	return pages
}

// ocrEmbeddedImages runs recognition over DCTDecode (JPEG) image streams
// found in the xref table. Other encodings are skipped; any failure yields
// an empty result rather than an error.
func (b *PDFBackend) ocrEmbeddedImages(data []byte) string {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return ""
	}

	var parts []string
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if !isJPEGImageStream(sd) || len(sd.Raw) == 0 {
			continue
		}
		text, err := b.OCR.Recognize(sd.Raw)
		if err != nil || text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n")
}

func isJPEGImageStream(sd types.StreamDict) bool {
	subtype, found := sd.Find("Subtype")
	if !found {
		return false
	}
	if name, isName := subtype.(types.Name); !isName || name != "Image" {
		return false
	}
	filter, found := sd.Find("Filter")
	if !found {
		return false
	}
	switch f := filter.(type) {
	case types.Name:
		return f == "DCTDecode"
	case types.Array:
		for _, obj := range f {
			if name, isName := obj.(types.Name); isName && name == "DCTDecode" {
				return true
			}
		}
	}
	return false
}
