package parser

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/hyperspot/fileparser/internal/docmodel"
	"github.com/hyperspot/fileparser/internal/ocr"
)

// ImageBackend runs optical character recognition over raster images.
// Without an OCR client (or when recognition finds nothing) it produces a
// single placeholder block noting no extractable text.
type ImageBackend struct {
	OCR *ocr.Client
}

func (b *ImageBackend) Parse(data []byte, hints Hints) (*docmodel.Document, error) {
	if len(data) == 0 {
		return newDocument(hints, nil), nil
	}

	alt := "image"
	if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		alt = fmt.Sprintf("%s image %dx%d", format, cfg.Width, cfg.Height)
	}

	text := ""
	if b.OCR != nil {
		if recognized, err := b.OCR.Recognize(data); err == nil {
			text = recognized
		}
	}

	if text == "" {
		return newDocument(hints, []docmodel.Block{
			{Kind: docmodel.BlockImage, Alt: alt + ": no extractable text"},
		}), nil
	}

	// One paragraph per recognized text region (blank-line separated).
	blocks := []docmodel.Block{{Kind: docmodel.BlockImage, Alt: alt}}
	for _, region := range strings.Split(text, "\n\n") {
		region = strings.TrimSpace(region)
		if region == "" {
			continue
		}
		blocks = append(blocks, docmodel.Paragraph(region))
	}
	return newDocument(hints, blocks), nil
}
