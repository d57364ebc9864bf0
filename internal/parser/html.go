package parser

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	"github.com/hyperspot/fileparser/internal/docmodel"
)

// HTMLBackend handles HTML input. Malformed markup is tolerated: the
// x/net/html parser repairs the tree rather than failing.
type HTMLBackend struct{}

func (b *HTMLBackend) Parse(data []byte, hints Hints) (*docmodel.Document, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		// html.Parse only errors on reader failure; a bytes.Reader never
		// does, but degrade to a paragraph of stripped text regardless.
		return newDocument(hints, []docmodel.Block{
			docmodel.Paragraph(strings.TrimSpace(string(data))),
		}), nil
	}

	w := &htmlWalker{}
	if body := findElement(root, "body"); body != nil {
		w.walk(body)
	} else {
		w.walk(root)
	}
	w.flushText()

	doc := newDocument(hints, w.blocks)

	// <title> wins over filename stem and first heading.
	if t := findElement(root, "title"); t != nil {
		if title := strings.TrimSpace(nodeText(t)); title != "" {
			doc.Title = title
		}
	}
	return doc, nil
}

type htmlWalker struct {
	blocks  []docmodel.Block
	pending []docmodel.Inline
}

// flushText turns stray inline content (text outside any paragraph-like
// container) into a paragraph block.
func (w *htmlWalker) flushText() {
	ins := trimInlines(w.pending)
	w.pending = nil
	if len(ins) > 0 {
		w.blocks = append(w.blocks, docmodel.Block{Kind: docmodel.BlockParagraph, Inlines: ins})
	}
}

func (w *htmlWalker) walk(n *html.Node) {
	if n.Type == html.TextNode {
		appendInline(&w.pending, normalizeSpace(n.Data), nil)
		return
	}
	if n.Type != html.ElementNode {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.walk(c)
		}
		return
	}

	if level := headingLevel(n.Data); level > 0 {
		w.flushText()
		ins := trimInlines(elementInlines(n))
		if len(ins) > 0 {
			w.blocks = append(w.blocks, docmodel.Block{Kind: docmodel.BlockHeading, Level: level, Inlines: ins})
		}
		return
	}

	switch n.Data {
	case "script", "style", "nav", "header", "footer", "head", "noscript":
		return
	case "p", "blockquote", "pre":
		w.flushText()
		ins := trimInlines(elementInlines(n))
		if len(ins) > 0 {
			w.blocks = append(w.blocks, docmodel.Block{Kind: docmodel.BlockParagraph, Inlines: ins})
		}
		return
	case "ul", "ol":
		w.flushText()
		if list := listBlock(n); len(list.Items) > 0 {
			w.blocks = append(w.blocks, list)
		}
		return
	case "table":
		w.flushText()
		if table := tableBlock(n); len(table.Rows) > 0 {
			w.blocks = append(w.blocks, table)
		}
		return
	case "img":
		w.flushText()
		w.blocks = append(w.blocks, docmodel.Block{Kind: docmodel.BlockImage, Alt: attr(n, "alt")})
		return
	case "br":
		w.flushText()
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func listBlock(n *html.Node) docmodel.Block {
	list := docmodel.Block{Kind: docmodel.BlockList}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			ins := trimInlines(elementInlines(c))
			if len(ins) == 0 {
				continue
			}
			list.Items = append(list.Items, docmodel.Block{Kind: docmodel.BlockListItem, Inlines: ins})
		}
	}
	return list
}

func tableBlock(n *html.Node) docmodel.Block {
	table := docmodel.Block{Kind: docmodel.BlockTable}
	var rows func(*html.Node)
	rows = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "tr":
				var row docmodel.TableRow
				for cell := c.FirstChild; cell != nil; cell = cell.NextSibling {
					if cell.Type == html.ElementNode && (cell.Data == "td" || cell.Data == "th") {
						row.Cells = append(row.Cells, trimInlines(elementInlines(cell)))
					}
				}
				if len(row.Cells) > 0 {
					table.Rows = append(table.Rows, row)
				}
			case "thead", "tbody", "tfoot":
				rows(c)
			}
		}
	}
	rows(n)
	return table
}

// elementInlines collects the styled text spans inside an element, tracking
// emphasis and link context down the subtree.
func elementInlines(n *html.Node) []docmodel.Inline {
	var out []docmodel.Inline
	var walk func(*html.Node, docmodel.Style)
	walk = func(n *html.Node, style docmodel.Style) {
		if n.Type == html.TextNode {
			appendInline(&out, normalizeSpace(n.Data), style)
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			case "b", "strong":
				style = extendStyle(style, docmodel.StyleBold, "true")
			case "i", "em":
				style = extendStyle(style, docmodel.StyleItalic, "true")
			case "u":
				style = extendStyle(style, docmodel.StyleUnderline, "true")
			case "code":
				style = extendStyle(style, docmodel.StyleCode, "true")
			case "a":
				if href := attr(n, "href"); href != "" {
					style = extendStyle(style, docmodel.StyleLink, href)
				}
			case "br":
				appendInline(&out, "\n", style)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, style)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, nil)
	}
	return out
}

// appendInline adds a text span, merging into the previous span when the
// style is identical.
func appendInline(out *[]docmodel.Inline, text string, style docmodel.Style) {
	if text == "" {
		return
	}
	if n := len(*out); n > 0 && styleEqual((*out)[n-1].Style, style) {
		(*out)[n-1].Text += text
		return
	}
	(*out) = append(*out, docmodel.Inline{Text: text, Style: style})
}

func extendStyle(style docmodel.Style, key, value string) docmodel.Style {
	next := make(docmodel.Style, len(style)+1)
	for k, v := range style {
		next[k] = v
	}
	next[key] = value
	return next
}

func styleEqual(a, b docmodel.Style) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// trimInlines strips leading/trailing whitespace from the span sequence and
// drops spans that end up empty.
func trimInlines(ins []docmodel.Inline) []docmodel.Inline {
	for len(ins) > 0 {
		ins[0].Text = strings.TrimLeft(ins[0].Text, " \n")
		if ins[0].Text != "" {
			break
		}
		ins = ins[1:]
	}
	for len(ins) > 0 {
		last := len(ins) - 1
		ins[last].Text = strings.TrimRight(ins[last].Text, " \n")
		if ins[last].Text != "" {
			break
		}
		ins = ins[:last]
	}
	return ins
}

// normalizeSpace collapses whitespace runs to single spaces, preserving
// whether the text touched its neighbors.
func normalizeSpace(s string) string {
	if s == "" {
		return ""
	}
	fields := strings.Fields(s)
	out := strings.Join(fields, " ")
	if out == "" {
		// Whitespace-only text still separates words.
		return " "
	}
	if strings.IndexByte(" \t\r\n", s[0]) >= 0 {
		out = " " + out
	}
	if strings.IndexByte(" \t\r\n", s[len(s)-1]) >= 0 {
		out = out + " "
	}
	return out
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
