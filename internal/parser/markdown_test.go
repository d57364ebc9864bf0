package parser

import (
	"testing"

	"github.com/hyperspot/fileparser/internal/docmodel"
)

func parseMarkdown(t *testing.T, input string) *docmodel.Document {
	t.Helper()
	b := &MarkdownBackend{}
	doc, err := b.Parse([]byte(input), uploadHints("doc.md", "text/markdown"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return doc
}

func TestMarkdownBackend_HeadingsAndParagraphs(t *testing.T) {
	doc := parseMarkdown(t, "# Title\n\nFirst paragraph.\n\n## Section\n\nSecond paragraph.\n")

	if len(doc.Blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d: %+v", len(doc.Blocks), doc.Blocks)
	}
	if doc.Blocks[0].Kind != docmodel.BlockHeading || doc.Blocks[0].Level != 1 {
		t.Errorf("block[0] = %+v, want level-1 heading", doc.Blocks[0])
	}
	if doc.Blocks[2].Kind != docmodel.BlockHeading || doc.Blocks[2].Level != 2 {
		t.Errorf("block[2] = %+v, want level-2 heading", doc.Blocks[2])
	}
	if doc.Title != "Title" {
		t.Errorf("title = %q, want first heading", doc.Title)
	}
}

func TestMarkdownBackend_InlineStyles(t *testing.T) {
	doc := parseMarkdown(t, "plain **bold** and *italic* and `code` and [a link](https://example.com)\n")

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %+v", doc.Blocks)
	}
	byStyle := map[string]docmodel.Inline{}
	for _, in := range doc.Blocks[0].Inlines {
		for k := range in.Style {
			byStyle[k] = in
		}
	}
	if in := byStyle[docmodel.StyleBold]; in.Text != "bold" {
		t.Errorf("bold span = %+v", in)
	}
	if in := byStyle[docmodel.StyleItalic]; in.Text != "italic" {
		t.Errorf("italic span = %+v", in)
	}
	if in := byStyle[docmodel.StyleCode]; in.Text != "code" {
		t.Errorf("code span = %+v", in)
	}
	if in := byStyle[docmodel.StyleLink]; in.Text != "a link" || in.Style[docmodel.StyleLink] != "https://example.com" {
		t.Errorf("link span = %+v", in)
	}
}

func TestMarkdownBackend_Lists(t *testing.T) {
	doc := parseMarkdown(t, "- first\n- second\n- third\n")

	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind != docmodel.BlockList {
		t.Fatalf("expected one list block, got %+v", doc.Blocks)
	}
	items := doc.Blocks[0].Items
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, want := range []string{"first", "second", "third"} {
		if items[i].PlainText() != want {
			t.Errorf("item[%d] = %q, want %q", i, items[i].PlainText(), want)
		}
	}
}

func TestMarkdownBackend_OrderedList(t *testing.T) {
	doc := parseMarkdown(t, "1. one\n2. two\n")
	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind != docmodel.BlockList {
		t.Fatalf("expected one list block, got %+v", doc.Blocks)
	}
	if len(doc.Blocks[0].Items) != 2 {
		t.Errorf("items = %+v", doc.Blocks[0].Items)
	}
}

func TestMarkdownBackend_CodeBlock(t *testing.T) {
	doc := parseMarkdown(t, "```\nfunc main() {}\n```\n")

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %+v", doc.Blocks)
	}
	b := doc.Blocks[0]
	if b.Kind != docmodel.BlockParagraph {
		t.Errorf("kind = %q", b.Kind)
	}
	if len(b.Inlines) != 1 || b.Inlines[0].Text != "func main() {}" {
		t.Errorf("inlines = %+v", b.Inlines)
	}
	if b.Inlines[0].Style[docmodel.StyleCode] != "true" {
		t.Errorf("code block must carry the code style, got %+v", b.Inlines[0].Style)
	}
}

func TestMarkdownBackend_SoftBreakBecomesSpace(t *testing.T) {
	doc := parseMarkdown(t, "line one\nline two\n")

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %+v", doc.Blocks)
	}
	if got := doc.Blocks[0].PlainText(); got != "line one line two" {
		t.Errorf("text = %q", got)
	}
}

func TestMarkdownBackend_Blockquote(t *testing.T) {
	doc := parseMarkdown(t, "> quoted text\n")
	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind != docmodel.BlockParagraph {
		t.Fatalf("expected paragraph, got %+v", doc.Blocks)
	}
	if got := doc.Blocks[0].PlainText(); got != "quoted text" {
		t.Errorf("text = %q", got)
	}
}

func TestMarkdownBackend_ThematicBreakSkipped(t *testing.T) {
	doc := parseMarkdown(t, "before\n\n---\n\nafter\n")
	if len(doc.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %+v", doc.Blocks)
	}
}

func TestMarkdownBackend_EmptyInput(t *testing.T) {
	doc := parseMarkdown(t, "")
	if len(doc.Blocks) != 1 {
		t.Fatalf("empty input must yield the empty paragraph, got %+v", doc.Blocks)
	}
}
