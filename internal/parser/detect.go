package parser

import (
	"bytes"
	"strings"
)

// contentTypes maps declared MIME types (parameters stripped) to backends.
// Only unambiguous mappings appear here; generic types like
// application/octet-stream fall through to extension and magic checks.
var contentTypes = map[string]BackendKind{
	"text/plain":         BackendText,
	"text/markdown":      BackendMarkdown,
	"text/html":          BackendHTML,
	"application/xhtml+xml": BackendHTML,
	"application/pdf":    BackendPDF,
	"application/x-pdf":  BackendPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": BackendDOCX,
	"image/png":  BackendImage,
	"image/jpeg": BackendImage,
	"image/gif":  BackendImage,
	"image/bmp":  BackendImage,
	"image/tiff": BackendImage,
	"image/webp": BackendImage,
}

var extensions = map[string]BackendKind{}

func init() {
	for kind, exts := range Extensions {
		for _, ext := range exts {
			extensions[ext] = kind
		}
	}
}

// SelectBackend picks the backend for an input. Resolution order: declared
// content type, file extension, magic bytes, then the generic stub. The
// function is total: every input maps to some backend.
func SelectBackend(ext, contentType string, magic []byte) BackendKind {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if kind, ok := contentTypes[ct]; ok {
		return kind
	}

	if kind, ok := extensions[strings.ToLower(ext)]; ok {
		return kind
	}

	if kind, ok := sniff(magic); ok {
		return kind
	}
	return BackendStub
}

// sniff inspects leading magic bytes for formats that survive a missing or
// misleading extension (e.g. a misnamed PDF).
func sniff(magic []byte) (BackendKind, bool) {
	switch {
	case bytes.HasPrefix(magic, []byte("%PDF-")):
		return BackendPDF, true
	case bytes.HasPrefix(magic, []byte("\x89PNG\r\n\x1a\n")):
		return BackendImage, true
	case len(magic) >= 3 && magic[0] == 0xFF && magic[1] == 0xD8 && magic[2] == 0xFF:
		return BackendImage, true // JPEG
	case bytes.HasPrefix(magic, []byte("GIF87a")) || bytes.HasPrefix(magic, []byte("GIF89a")):
		return BackendImage, true
	case bytes.HasPrefix(magic, []byte("II*\x00")) || bytes.HasPrefix(magic, []byte("MM\x00*")):
		return BackendImage, true // TIFF
	case bytes.HasPrefix(magic, []byte("{\\rtf")):
		return BackendStub, true
	case bytes.HasPrefix(magic, []byte("\xD0\xCF\x11\xE0")):
		return BackendStub, true // OLE2 compound file (.doc/.xls/.ppt)
	case htmlPrefix(magic):
		return BackendHTML, true
	}
	// Bare ZIP could be docx, odt, xlsx; without an extension the stub
	// handles it.
	return "", false
}

func htmlPrefix(magic []byte) bool {
	head := strings.ToLower(string(bytes.TrimLeft(magic, " \t\r\n")))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

// ContentTypeFor resolves the content type recorded on a Document: the
// backend's canonical type where it has one, otherwise the declared type,
// otherwise application/octet-stream.
func ContentTypeFor(kind BackendKind, declared, ext string) string {
	switch kind {
	case BackendText:
		return "text/plain"
	case BackendMarkdown:
		return "text/markdown"
	case BackendHTML:
		return "text/html"
	case BackendPDF:
		return "application/pdf"
	case BackendDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case BackendImage:
		switch strings.ToLower(ext) {
		case ".png":
			return "image/png"
		case ".jpg", ".jpeg":
			return "image/jpeg"
		case ".gif":
			return "image/gif"
		case ".bmp":
			return "image/bmp"
		case ".tif", ".tiff":
			return "image/tiff"
		case ".webp":
			return "image/webp"
		}
		return "application/octet-stream"
	}
	declared = strings.TrimSpace(declared)
	if declared != "" {
		return declared
	}
	return "application/octet-stream"
}
