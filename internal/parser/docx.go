package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/hyperspot/fileparser/internal/docmodel"
)

// DOCXBackend parses the package's word/document.xml: paragraph/run
// structure maps to paragraph blocks with styled inlines, heading styles to
// heading blocks, numbering to lists, and table XML to table blocks.
type DOCXBackend struct{}

func (b *DOCXBackend) Parse(data []byte, hints Hints) (*docmodel.Document, error) {
	if len(data) == 0 {
		return newDocument(hints, nil), nil
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &CorruptError{Backend: BackendDOCX, Reason: "not a readable zip container"}
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		// A zip without the document part still yields a placeholder.
		return newDocument(hints, []docmodel.Block{
			docmodel.Unrecognized("docx: word/document.xml not found in archive"),
		}), nil
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, &CorruptError{Backend: BackendDOCX, Reason: "word/document.xml is unreadable"}
	}
	defer rc.Close()

	blocks := parseDocumentXML(rc)
	return newDocument(hints, blocks), nil
}

// docxWalker accumulates blocks from the WordprocessingML token stream.
type docxWalker struct {
	blocks      []docmodel.Block
	pendingList []docmodel.Block

	inPara    bool
	inPPr     bool
	paraStyle string
	paraNum   bool

	inRun    bool
	inRPr    bool
	inText   bool
	runStyle docmodel.Style
	inlines  []docmodel.Inline

	tableDepth  int
	table       docmodel.Block
	row         docmodel.TableRow
	cellInlines []docmodel.Inline
}

func parseDocumentXML(r io.Reader) []docmodel.Block {
	dec := xml.NewDecoder(r)
	w := &docxWalker{}

	for {
		tok, err := dec.Token()
		if err != nil {
			break // EOF or malformed tail; keep what was parsed.
		}
		switch t := tok.(type) {
		case xml.StartElement:
			w.start(t)
		case xml.CharData:
			if w.inPara && w.inText {
				appendInline(&w.inlines, string(t), w.runStyle)
			}
		case xml.EndElement:
			w.end(t)
		}
	}

	w.flushList()
	return w.blocks
}

func (w *docxWalker) start(t xml.StartElement) {
	switch t.Name.Local {
	case "p":
		w.inPara = true
		w.paraStyle = ""
		w.paraNum = false
		w.inlines = nil
	case "pPr":
		w.inPPr = w.inPara
	case "pStyle":
		if w.inPPr {
			w.paraStyle = wordAttr(t, "val")
		}
	case "numPr":
		if w.inPPr {
			w.paraNum = true
		}
	case "r":
		w.inRun = true
		w.runStyle = nil
	case "rPr":
		w.inRPr = w.inRun
	case "b":
		if w.inRPr && boolProp(t) {
			w.runStyle = extendStyle(w.runStyle, docmodel.StyleBold, "true")
		}
	case "i":
		if w.inRPr && boolProp(t) {
			w.runStyle = extendStyle(w.runStyle, docmodel.StyleItalic, "true")
		}
	case "u":
		if w.inRPr && wordAttr(t, "val") != "none" {
			w.runStyle = extendStyle(w.runStyle, docmodel.StyleUnderline, "true")
		}
	case "t":
		w.inText = w.inRun
	case "tab":
		if w.inRun {
			appendInline(&w.inlines, "\t", w.runStyle)
		}
	case "br", "cr":
		if w.inRun {
			appendInline(&w.inlines, "\n", w.runStyle)
		}
	case "tbl":
		w.tableDepth++
		if w.tableDepth == 1 {
			w.flushList()
			w.table = docmodel.Block{Kind: docmodel.BlockTable}
		}
	case "tr":
		if w.tableDepth == 1 {
			w.row = docmodel.TableRow{}
		}
	case "tc":
		if w.tableDepth == 1 {
			w.cellInlines = nil
		}
	}
}

func (w *docxWalker) end(t xml.EndElement) {
	switch t.Name.Local {
	case "p":
		if w.inPara {
			w.inPara = false
			w.flushParagraph()
		}
	case "pPr":
		w.inPPr = false
	case "r":
		w.inRun = false
		w.runStyle = nil
	case "rPr":
		w.inRPr = false
	case "t":
		w.inText = false
	case "tc":
		if w.tableDepth == 1 {
			w.row.Cells = append(w.row.Cells, trimInlines(w.cellInlines))
			w.cellInlines = nil
		}
	case "tr":
		if w.tableDepth == 1 && len(w.row.Cells) > 0 {
			w.table.Rows = append(w.table.Rows, w.row)
			w.row = docmodel.TableRow{}
		}
	case "tbl":
		if w.tableDepth == 1 && len(w.table.Rows) > 0 {
			w.blocks = append(w.blocks, w.table)
		}
		if w.tableDepth > 0 {
			w.tableDepth--
		}
	}
}

// flushParagraph routes a completed paragraph to the right destination:
// table cell, heading, list item, or top-level paragraph block.
func (w *docxWalker) flushParagraph() {
	ins := trimInlines(w.inlines)
	w.inlines = nil
	if len(ins) == 0 {
		return
	}

	if w.tableDepth > 0 {
		if len(w.cellInlines) > 0 {
			appendInline(&w.cellInlines, "\n", nil)
		}
		w.cellInlines = append(w.cellInlines, ins...)
		return
	}

	if level := docxHeadingLevel(w.paraStyle); level > 0 {
		w.flushList()
		w.blocks = append(w.blocks, docmodel.Block{Kind: docmodel.BlockHeading, Level: level, Inlines: ins})
		return
	}

	if w.paraNum || strings.EqualFold(w.paraStyle, "ListParagraph") {
		w.pendingList = append(w.pendingList, docmodel.Block{Kind: docmodel.BlockListItem, Inlines: ins})
		return
	}

	w.flushList()
	w.blocks = append(w.blocks, docmodel.Block{Kind: docmodel.BlockParagraph, Inlines: ins})
}

// flushList closes a run of consecutive numbered paragraphs into one list.
func (w *docxWalker) flushList() {
	if len(w.pendingList) == 0 {
		return
	}
	w.blocks = append(w.blocks, docmodel.Block{Kind: docmodel.BlockList, Items: w.pendingList})
	w.pendingList = nil
}

// docxHeadingLevel maps Word style ids like "Heading1" or "heading 2" to a
// heading level, 0 for body styles.
func docxHeadingLevel(style string) int {
	s := strings.ToLower(strings.TrimSpace(style))
	rest, ok := strings.CutPrefix(s, "heading")
	if !ok || rest == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || n < 1 {
		return 0
	}
	if n > 6 {
		n = 6
	}
	return n
}

func wordAttr(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// boolProp interprets WordprocessingML on/off properties: a bare element is
// "on"; w:val of "false"/"0"/"none" turns it off.
func boolProp(t xml.StartElement) bool {
	switch strings.ToLower(wordAttr(t, "val")) {
	case "false", "0", "none", "off":
		return false
	}
	return true
}
