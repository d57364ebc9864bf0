// Package docmodel defines the canonical block/inline representation that
// every parser backend produces, regardless of source format.
package docmodel

// SourceKind says how the input bytes were obtained.
type SourceKind string

const (
	SourceUploaded  SourceKind = "uploaded"
	SourceLocalPath SourceKind = "local_path"
)

// Source records document provenance. Exactly one of OriginalName or Path is
// set, matching Kind.
type Source struct {
	Kind         SourceKind `json:"kind"`
	OriginalName string     `json:"original_name,omitempty"`
	Path         string     `json:"path,omitempty"`
}

// Uploaded builds the provenance for bytes received from a caller.
func Uploaded(originalName string) Source {
	return Source{Kind: SourceUploaded, OriginalName: originalName}
}

// LocalPath builds the provenance for bytes read from the local filesystem.
func LocalPath(path string) Source {
	return Source{Kind: SourceLocalPath, Path: path}
}

// Meta is the metadata envelope attached to every Document.
type Meta struct {
	Source      Source `json:"source"`
	ContentType string `json:"content_type"`
}

// BlockKind identifies the structural role of a Block.
type BlockKind string

const (
	BlockParagraph    BlockKind = "paragraph"
	BlockHeading      BlockKind = "heading"
	BlockList         BlockKind = "list"
	BlockListItem     BlockKind = "list_item"
	BlockTable        BlockKind = "table"
	BlockImage        BlockKind = "image"
	BlockUnrecognized BlockKind = "unrecognized"
)

// Block is one structural unit of a Document. Which fields are meaningful
// depends on Kind: Level for headings, Inlines for paragraph/heading/list
// item content, Items for list children, Rows for tables, Alt for images,
// Note for unrecognized placeholders.
type Block struct {
	Kind    BlockKind  `json:"kind"`
	Level   int        `json:"level,omitempty"`
	Inlines []Inline   `json:"inlines,omitempty"`
	Items   []Block    `json:"items,omitempty"`
	Rows    []TableRow `json:"rows,omitempty"`
	Alt     string     `json:"alt,omitempty"`
	Note    string     `json:"note,omitempty"`
}

// TableRow is one row of a table block.
type TableRow struct {
	Cells [][]Inline `json:"cells"`
}

// Style maps formatting attribute names to values. Boolean attributes
// ("bold", "italic", "underline", "code") store "true"; "link" stores the
// target URL. An absent key means the attribute is not applied.
type Style map[string]string

const (
	StyleBold      = "bold"
	StyleItalic    = "italic"
	StyleUnderline = "underline"
	StyleCode      = "code"
	StyleLink      = "link"
)

// Inline is a styled text span. Style is nil when no formatting applies.
type Inline struct {
	Text  string `json:"text"`
	Style Style  `json:"style,omitempty"`
}

// Document is the canonical parsed representation of one input. Blocks are
// in document reading order. A Document always holds at least one block.
type Document struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Meta   Meta    `json:"meta"`
	Blocks []Block `json:"blocks"`
}

// New assembles a Document, assigning a fresh ID and guaranteeing the
// at-least-one-block invariant: an empty block list becomes a single empty
// paragraph so consumers never special-case "no blocks".
func New(title string, meta Meta, blocks []Block) *Document {
	if len(blocks) == 0 {
		blocks = []Block{Paragraph("")}
	}
	return &Document{
		ID:     NewID(),
		Title:  title,
		Meta:   meta,
		Blocks: blocks,
	}
}

// Paragraph builds a paragraph block holding a single unstyled text span.
func Paragraph(text string) Block {
	return Block{Kind: BlockParagraph, Inlines: []Inline{{Text: text}}}
}

// Heading builds a heading block at the given level (clamped to 1-6).
func Heading(level int, text string) Block {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return Block{Kind: BlockHeading, Level: level, Inlines: []Inline{{Text: text}}}
}

// Unrecognized builds the placeholder block the stub backend emits for
// formats it cannot interpret.
func Unrecognized(contentType string) Block {
	return Block{Kind: BlockUnrecognized, Note: contentType}
}

// PlainText flattens the inline spans of a block into a single string.
// List and table blocks flatten their nested content in order.
func (b Block) PlainText() string {
	switch b.Kind {
	case BlockList:
		var out string
		for i, item := range b.Items {
			if i > 0 {
				out += "\n"
			}
			out += item.PlainText()
		}
		return out
	case BlockTable:
		var out string
		for i, row := range b.Rows {
			if i > 0 {
				out += "\n"
			}
			for j, cell := range row.Cells {
				if j > 0 {
					out += " "
				}
				out += inlineText(cell)
			}
		}
		return out
	case BlockImage:
		return b.Alt
	default:
		return inlineText(b.Inlines)
	}
}

func inlineText(inlines []Inline) string {
	var out string
	for _, in := range inlines {
		out += in.Text
	}
	return out
}
