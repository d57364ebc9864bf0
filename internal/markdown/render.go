// Package markdown serializes a Document back to markdown text. Rendering
// is pure, total, and deterministic: identical Documents always produce
// byte-identical output.
package markdown

import (
	"strings"

	"github.com/hyperspot/fileparser/internal/docmodel"
)

// Render maps each block kind to one markdown construct. Unrecognized
// placeholder blocks are omitted. The result ends in exactly one newline.
func Render(doc *docmodel.Document) string {
	var sb strings.Builder
	for _, block := range doc.Blocks {
		renderBlock(&sb, block, 0)
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func renderBlock(sb *strings.Builder, block docmodel.Block, indent int) {
	switch block.Kind {
	case docmodel.BlockHeading:
		sb.WriteString(strings.Repeat("#", block.Level))
		sb.WriteByte(' ')
		sb.WriteString(renderInlines(block.Inlines))
		sb.WriteString("\n\n")

	case docmodel.BlockParagraph:
		sb.WriteString(renderInlines(block.Inlines))
		sb.WriteString("\n\n")

	case docmodel.BlockList:
		for _, item := range block.Items {
			renderBlock(sb, item, indent)
		}
		sb.WriteByte('\n')

	case docmodel.BlockListItem:
		sb.WriteString(strings.Repeat("  ", indent))
		sb.WriteString("- ")
		sb.WriteString(renderInlines(block.Inlines))
		sb.WriteByte('\n')
		for _, nested := range block.Items {
			renderBlock(sb, nested, indent+1)
		}

	case docmodel.BlockTable:
		for i, row := range block.Rows {
			sb.WriteByte('|')
			for _, cell := range row.Cells {
				sb.WriteByte(' ')
				sb.WriteString(strings.ReplaceAll(renderInlines(cell), "|", "\\|"))
				sb.WriteString(" |")
			}
			sb.WriteByte('\n')
			if i == 0 {
				sb.WriteByte('|')
				sb.WriteString(strings.Repeat(" --- |", len(row.Cells)))
				sb.WriteByte('\n')
			}
		}
		sb.WriteByte('\n')

	case docmodel.BlockImage:
		sb.WriteString("![")
		sb.WriteString(block.Alt)
		sb.WriteString("]\n\n")
		for _, in := range block.Inlines {
			// OCR-recovered text accompanies the image placeholder.
			sb.WriteString(in.Text)
			sb.WriteString("\n\n")
		}

	case docmodel.BlockUnrecognized:
		// Omitted from markdown output.
	}
}

func renderInlines(inlines []docmodel.Inline) string {
	var sb strings.Builder
	for _, in := range inlines {
		sb.WriteString(renderInline(in))
	}
	return strings.ReplaceAll(sb.String(), "\n", " ")
}

func renderInline(in docmodel.Inline) string {
	t := in.Text
	if len(in.Style) == 0 {
		return t
	}
	if in.Style[docmodel.StyleCode] == "true" {
		t = "`" + t + "`"
	}
	if in.Style[docmodel.StyleBold] == "true" {
		t = "**" + t + "**"
	}
	if in.Style[docmodel.StyleItalic] == "true" {
		t = "*" + t + "*"
	}
	if url, ok := in.Style[docmodel.StyleLink]; ok && url != "" {
		t = "[" + t + "](" + url + ")"
	}
	return t
}
