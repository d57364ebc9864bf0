package docmodel

import (
	"testing"
)

func TestNew_EmptyBlocksGetsEmptyParagraph(t *testing.T) {
	doc := New("empty", Meta{Source: Uploaded("empty.txt"), ContentType: "text/plain"}, nil)
	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	b := doc.Blocks[0]
	if b.Kind != BlockParagraph {
		t.Errorf("expected paragraph block, got %s", b.Kind)
	}
	if len(b.Inlines) != 1 || b.Inlines[0].Text != "" {
		t.Errorf("expected single empty inline, got %+v", b.Inlines)
	}
}

func TestNew_AssignsUniqueIDs(t *testing.T) {
	meta := Meta{Source: Uploaded("a.txt"), ContentType: "text/plain"}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		doc := New("a", meta, []Block{Paragraph("x")})
		if len(doc.ID) != 26 {
			t.Fatalf("expected 26-char ULID, got %q", doc.ID)
		}
		if seen[doc.ID] {
			t.Fatalf("duplicate id %s", doc.ID)
		}
		seen[doc.ID] = true
	}
}

func TestNewID_TimeSortable(t *testing.T) {
	a := NewID()
	b := NewID()
	// Same or later millisecond plus sequence: b never sorts before a.
	if b < a {
		t.Errorf("ids not time-sortable: %s then %s", a, b)
	}
}

func TestSourceVariants(t *testing.T) {
	up := Uploaded("report.pdf")
	if up.Kind != SourceUploaded || up.OriginalName != "report.pdf" || up.Path != "" {
		t.Errorf("unexpected uploaded source: %+v", up)
	}
	lp := LocalPath("/data/documents/report.pdf")
	if lp.Kind != SourceLocalPath || lp.Path != "/data/documents/report.pdf" || lp.OriginalName != "" {
		t.Errorf("unexpected local source: %+v", lp)
	}
}

func TestBlockPlainText(t *testing.T) {
	tests := []struct {
		name  string
		block Block
		want  string
	}{
		{"paragraph", Paragraph("hello world"), "hello world"},
		{"heading", Heading(2, "Title"), "Title"},
		{"styled spans", Block{Kind: BlockParagraph, Inlines: []Inline{
			{Text: "a "}, {Text: "b", Style: Style{StyleBold: "true"}},
		}}, "a b"},
		{"list", Block{Kind: BlockList, Items: []Block{
			{Kind: BlockListItem, Inlines: []Inline{{Text: "one"}}},
			{Kind: BlockListItem, Inlines: []Inline{{Text: "two"}}},
		}}, "one\ntwo"},
		{"table", Block{Kind: BlockTable, Rows: []TableRow{
			{Cells: [][]Inline{{{Text: "a"}}, {{Text: "b"}}}},
		}}, "a b"},
		{"image", Block{Kind: BlockImage, Alt: "chart"}, "chart"},
	}
	for _, tt := range tests {
		if got := tt.block.PlainText(); got != tt.want {
			t.Errorf("%s: PlainText() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestHeadingLevelClamped(t *testing.T) {
	if h := Heading(0, "x"); h.Level != 1 {
		t.Errorf("level 0 should clamp to 1, got %d", h.Level)
	}
	if h := Heading(9, "x"); h.Level != 6 {
		t.Errorf("level 9 should clamp to 6, got %d", h.Level)
	}
}
