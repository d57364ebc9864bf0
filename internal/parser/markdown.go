package parser

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/hyperspot/fileparser/internal/docmodel"
)

// MarkdownBackend handles markdown input via the goldmark AST.
type MarkdownBackend struct{}

func (b *MarkdownBackend) Parse(data []byte, hints Hints) (*docmodel.Document, error) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(data))

	var blocks []docmodel.Block
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if block, ok := mdBlock(n, data); ok {
			blocks = append(blocks, block)
		}
	}
	return newDocument(hints, blocks), nil
}

func mdBlock(n ast.Node, src []byte) (docmodel.Block, bool) {
	switch t := n.(type) {
	case *ast.Heading:
		ins := trimInlines(mdInlines(t, src, nil))
		if len(ins) == 0 {
			return docmodel.Block{}, false
		}
		return docmodel.Block{Kind: docmodel.BlockHeading, Level: t.Level, Inlines: ins}, true

	case *ast.Paragraph, *ast.TextBlock:
		ins := trimInlines(mdInlines(n, src, nil))
		if len(ins) == 0 {
			return docmodel.Block{}, false
		}
		return docmodel.Block{Kind: docmodel.BlockParagraph, Inlines: ins}, true

	case *ast.List:
		list := docmodel.Block{Kind: docmodel.BlockList}
		for li := t.FirstChild(); li != nil; li = li.NextSibling() {
			var ins []docmodel.Inline
			for c := li.FirstChild(); c != nil; c = c.NextSibling() {
				if len(ins) > 0 {
					appendInline(&ins, "\n", nil)
				}
				ins = append(ins, mdInlines(c, src, nil)...)
			}
			ins = trimInlines(ins)
			if len(ins) == 0 {
				continue
			}
			list.Items = append(list.Items, docmodel.Block{Kind: docmodel.BlockListItem, Inlines: ins})
		}
		if len(list.Items) == 0 {
			return docmodel.Block{}, false
		}
		return list, true

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var buf strings.Builder
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		code := strings.TrimRight(buf.String(), "\n")
		if code == "" {
			return docmodel.Block{}, false
		}
		return docmodel.Block{
			Kind:    docmodel.BlockParagraph,
			Inlines: []docmodel.Inline{{Text: code, Style: docmodel.Style{docmodel.StyleCode: "true"}}},
		}, true

	case *ast.Blockquote:
		var ins []docmodel.Inline
		for c := t.FirstChild(); c != nil; c = c.NextSibling() {
			if len(ins) > 0 {
				appendInline(&ins, "\n", nil)
			}
			ins = append(ins, mdInlines(c, src, nil)...)
		}
		ins = trimInlines(ins)
		if len(ins) == 0 {
			return docmodel.Block{}, false
		}
		return docmodel.Block{Kind: docmodel.BlockParagraph, Inlines: ins}, true

	case *ast.ThematicBreak, *ast.HTMLBlock:
		return docmodel.Block{}, false
	}

	// Unhandled block kinds flatten to their raw source lines.
	var buf strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	t := strings.TrimSpace(buf.String())
	if t == "" {
		return docmodel.Block{}, false
	}
	return docmodel.Paragraph(t), true
}

// mdInlines walks the inline children of a node, carrying emphasis and link
// context into the style map.
func mdInlines(n ast.Node, src []byte, style docmodel.Style) []docmodel.Inline {
	var out []docmodel.Inline
	var walk func(ast.Node, docmodel.Style)
	walk = func(n ast.Node, style docmodel.Style) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				appendInline(&out, string(t.Value(src)), style)
				if t.SoftLineBreak() || t.HardLineBreak() {
					appendInline(&out, " ", style)
				}
			case *ast.Emphasis:
				key := docmodel.StyleItalic
				if t.Level >= 2 {
					key = docmodel.StyleBold
				}
				walk(t, extendStyle(style, key, "true"))
			case *ast.Link:
				walk(t, extendStyle(style, docmodel.StyleLink, string(t.Destination)))
			case *ast.AutoLink:
				url := string(t.URL(src))
				appendInline(&out, url, extendStyle(style, docmodel.StyleLink, url))
			case *ast.CodeSpan:
				walk(t, extendStyle(style, docmodel.StyleCode, "true"))
			case *ast.Image:
				// Inline images flatten to their alt text.
				walk(t, style)
			default:
				walk(c, style)
			}
		}
	}
	walk(n, style)
	return out
}
