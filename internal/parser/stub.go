package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hyperspot/fileparser/internal/docmodel"
)

// StubBackend is the fallback for legacy and unrecognized formats (DOC,
// RTF, ODT, XLS, PPT, ...). It attempts a best-effort strip of readable
// text and otherwise emits a single placeholder block carrying the detected
// content type. It never fails, it only downgrades fidelity.
type StubBackend struct{}

// stripLimit bounds how much recovered text a stub document carries.
const stripLimit = 64 * 1024

func (b *StubBackend) Parse(data []byte, hints Hints) (*docmodel.Document, error) {
	contentType := strings.TrimSpace(hints.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	text := stripReadableText(data)
	if text == "" {
		return newDocument(hints, []docmodel.Block{docmodel.Unrecognized(contentType)}), nil
	}

	var blocks []docmodel.Block
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para != "" {
			blocks = append(blocks, docmodel.Paragraph(para))
		}
	}
	if len(blocks) == 0 {
		blocks = []docmodel.Block{docmodel.Unrecognized(contentType)}
	}
	return newDocument(hints, blocks), nil
}

// stripReadableText recovers human-readable runs from arbitrary bytes.
// A run qualifies when it holds a few consecutive letters; shorter noise
// (format markers, field codes) is discarded.
func stripReadableText(data []byte) string {
	var out strings.Builder
	var run []rune
	letters := 0

	flush := func() {
		if letters >= 3 {
			if out.Len() > 0 {
				out.WriteByte(' ')
			}
			out.WriteString(strings.TrimSpace(string(run)))
		}
		run = run[:0]
		letters = 0
	}

	for i := 0; i < len(data) && out.Len() < stripLimit; {
		r, size := utf8.DecodeRune(data[i:])
		i += size
		if r == utf8.RuneError && size == 1 {
			flush()
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsPunct(r) || r == ' ' {
			run = append(run, r)
			if unicode.IsLetter(r) {
				letters++
			}
			continue
		}
		flush()
	}
	flush()

	return strings.TrimSpace(out.String())
}
