package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/hyperspot/fileparser/internal/docmodel"
	"github.com/hyperspot/fileparser/internal/service"
)

// handleInfo serves the static capability listing: backend family →
// supported file extensions.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"backends": s.svc.Capabilities(),
	})
}

type parseResponse struct {
	Document *docmodel.Document `json:"document"`
	Markdown string             `json:"markdown,omitempty"`
}

// handleParseUpload accepts a multipart upload and returns the parsed
// document.
func (s *Server) handleParseUpload(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.MaxFileSizeBytes()
	// Extra 1MB headroom for multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, limit+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		// A body blowing past MaxBytesReader is a size rejection, not a
		// malformed form.
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			writeError(w, &service.SizeExceededError{Size: r.ContentLength, Limit: limit})
			return
		}
		badRequest(w, "invalid multipart form: "+err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "file is required: "+err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		writeError(w, fmt.Errorf("read upload: %w", err))
		return
	}
	if int64(len(data)) > limit {
		writeError(w, &service.SizeExceededError{Size: int64(len(data)), Limit: limit})
		return
	}

	filename := sanitizeFilename(header.Filename)
	contentType := header.Header.Get("Content-Type")

	doc, err := s.svc.ParseUpload(r.Context(), data, filename, contentType)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := parseResponse{Document: doc}
	if r.URL.Query().Get("render_markdown") == "true" {
		resp.Markdown = s.svc.Render(doc)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type parseLocalRequest struct {
	FilePath       string `json:"file_path"`
	RenderMarkdown bool   `json:"render_markdown"`
}

// handleParseLocal parses a file under the allowed base directory.
func (s *Server) handleParseLocal(w http.ResponseWriter, r *http.Request) {
	var req parseLocalRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.FilePath) == "" {
		badRequest(w, "file_path is required")
		return
	}

	doc, md, err := s.svc.ParseLocal(r.Context(), req.FilePath, req.RenderMarkdown)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := parseResponse{Document: doc, Markdown: md}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// sanitizeFilename strips any path components from an uploaded name; it is
// used only for extension detection and provenance, never for file access.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
