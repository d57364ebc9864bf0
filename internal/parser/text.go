package parser

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/hyperspot/fileparser/internal/docmodel"
)

// TextBackend handles plain text. Blank-line boundaries segment the input
// into paragraph blocks; no styling is inferred.
type TextBackend struct{}

func (b *TextBackend) Parse(data []byte, hints Hints) (*docmodel.Document, error) {
	data = decodeTextBytes(data)

	var blocks []docmodel.Block
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			blocks = append(blocks, docmodel.Paragraph(current.String()))
			current.Reset()
		}
	}

	// Plain line split: lines have no length ceiling, the size guard
	// already bounds the whole input.
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	flush()

	return newDocument(hints, blocks), nil
}

// decodeTextBytes transcodes UTF-16 input (detected by BOM) to UTF-8 and
// strips a UTF-8 BOM. Everything else passes through unchanged.
func decodeTextBytes(data []byte) []byte {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return data[3:]
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}), bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, data)
		if err != nil {
			return data
		}
		return out
	}
	return data
}
