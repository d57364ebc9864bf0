package markdown

import (
	"testing"

	"github.com/hyperspot/fileparser/internal/docmodel"
)

func testDoc(blocks ...docmodel.Block) *docmodel.Document {
	return docmodel.New("Test", docmodel.Meta{
		Source:      docmodel.Uploaded("test.txt"),
		ContentType: "text/plain",
	}, blocks)
}

func TestRender_Heading(t *testing.T) {
	got := Render(testDoc(
		docmodel.Heading(1, "Title"),
		docmodel.Heading(3, "Sub"),
	))
	want := "# Title\n\n### Sub\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_Paragraphs(t *testing.T) {
	got := Render(testDoc(
		docmodel.Paragraph("First."),
		docmodel.Paragraph("Second."),
	))
	want := "First.\n\nSecond.\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_InlineStyles(t *testing.T) {
	doc := testDoc(docmodel.Block{
		Kind: docmodel.BlockParagraph,
		Inlines: []docmodel.Inline{
			{Text: "plain "},
			{Text: "bold", Style: docmodel.Style{docmodel.StyleBold: "true"}},
			{Text: " "},
			{Text: "italic", Style: docmodel.Style{docmodel.StyleItalic: "true"}},
			{Text: " "},
			{Text: "code", Style: docmodel.Style{docmodel.StyleCode: "true"}},
			{Text: " "},
			{Text: "link", Style: docmodel.Style{docmodel.StyleLink: "https://example.com"}},
		},
	})
	want := "plain **bold** *italic* `code` [link](https://example.com)\n"
	if got := Render(doc); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_List(t *testing.T) {
	doc := testDoc(docmodel.Block{
		Kind: docmodel.BlockList,
		Items: []docmodel.Block{
			{Kind: docmodel.BlockListItem, Inlines: []docmodel.Inline{{Text: "first"}}},
			{
				Kind:    docmodel.BlockListItem,
				Inlines: []docmodel.Inline{{Text: "second"}},
				Items: []docmodel.Block{
					{Kind: docmodel.BlockListItem, Inlines: []docmodel.Inline{{Text: "nested"}}},
				},
			},
		},
	})
	want := "- first\n- second\n  - nested\n"
	if got := Render(doc); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_Table(t *testing.T) {
	doc := testDoc(docmodel.Block{
		Kind: docmodel.BlockTable,
		Rows: []docmodel.TableRow{
			{Cells: [][]docmodel.Inline{{{Text: "Name"}}, {{Text: "Value"}}}},
			{Cells: [][]docmodel.Inline{{{Text: "alpha"}}, {{Text: "1"}}}},
		},
	})
	want := "| Name | Value |\n| --- | --- |\n| alpha | 1 |\n"
	if got := Render(doc); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_TableEscapesPipes(t *testing.T) {
	doc := testDoc(docmodel.Block{
		Kind: docmodel.BlockTable,
		Rows: []docmodel.TableRow{
			{Cells: [][]docmodel.Inline{{{Text: "a|b"}}}},
		},
	})
	want := "| a\\|b |\n| --- |\n"
	if got := Render(doc); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_Image(t *testing.T) {
	got := Render(testDoc(docmodel.Block{Kind: docmodel.BlockImage, Alt: "a chart"}))
	want := "![a chart]\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_ImageWithRecognizedText(t *testing.T) {
	doc := testDoc(docmodel.Block{
		Kind:    docmodel.BlockImage,
		Alt:     "scan",
		Inlines: []docmodel.Inline{{Text: "recognized text"}},
	})
	want := "![scan]\n\nrecognized text\n"
	if got := Render(doc); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_UnrecognizedOmitted(t *testing.T) {
	doc := testDoc(
		docmodel.Paragraph("kept"),
		docmodel.Unrecognized("application/octet-stream"),
	)
	want := "kept\n"
	if got := Render(doc); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_EmptyDocument(t *testing.T) {
	// A document built from no blocks carries one empty paragraph.
	if got := Render(testDoc()); got != "\n" {
		t.Errorf("got %q, want single newline", got)
	}
}

func TestRender_NewlinesInInlinesBecomeSpaces(t *testing.T) {
	got := Render(testDoc(docmodel.Paragraph("line one\nline two")))
	want := "line one line two\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_Deterministic(t *testing.T) {
	doc := testDoc(
		docmodel.Heading(2, "Section"),
		docmodel.Paragraph("Body text."),
		docmodel.Block{
			Kind: docmodel.BlockList,
			Items: []docmodel.Block{
				{Kind: docmodel.BlockListItem, Inlines: []docmodel.Inline{{Text: "item"}}},
			},
		},
	)
	first := Render(doc)
	for i := 0; i < 10; i++ {
		if again := Render(doc); again != first {
			t.Fatalf("render %d differs: %q vs %q", i, again, first)
		}
	}
}
