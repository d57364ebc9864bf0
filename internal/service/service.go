// Package service wires the parsing pipeline together: size guard, path
// resolution, format detection, backend dispatch, and optional markdown
// rendering. Every operation is a pure function of its inputs plus the
// immutable startup configuration, so concurrent requests need no locking.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hyperspot/fileparser/internal/config"
	"github.com/hyperspot/fileparser/internal/docmodel"
	"github.com/hyperspot/fileparser/internal/markdown"
	"github.com/hyperspot/fileparser/internal/parser"
	"github.com/hyperspot/fileparser/internal/pathguard"
)

// SizeExceededError rejects an input before its content is parsed.
type SizeExceededError struct {
	Size  int64
	Limit int64
}

func (e *SizeExceededError) Error() string {
	return fmt.Sprintf("input size %d bytes exceeds the configured limit of %d bytes", e.Size, e.Limit)
}

// Service is the parsing engine front door.
type Service struct {
	cfg      config.Config
	resolver *pathguard.Resolver
	registry *parser.Registry
	log      *slog.Logger
}

func New(cfg config.Config, resolver *pathguard.Resolver, registry *parser.Registry, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{cfg: cfg, resolver: resolver, registry: registry, log: log}
}

// ParseUpload parses bytes received directly from a caller. contentType is
// the declared type from the upload, possibly empty.
func (s *Service) ParseUpload(ctx context.Context, data []byte, filename, contentType string) (*docmodel.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit := s.cfg.MaxFileSizeBytes(); int64(len(data)) > limit {
		return nil, &SizeExceededError{Size: int64(len(data)), Limit: limit}
	}
	return s.dispatch(data, filename, contentType, docmodel.Uploaded(filename))
}

// ParseLocal resolves a path through both traversal gates, enforces the
// size ceiling from file metadata, reads the content, and parses it. The
// optional markdown rendering of the result is returned alongside.
func (s *Service) ParseLocal(ctx context.Context, path string, renderMarkdown bool) (*docmodel.Document, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	resolved, err := s.resolver.Resolve(path)
	if err != nil {
		return nil, "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", &pathguard.NotFoundError{Path: path}
		}
		return nil, "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, "", &pathguard.NotFoundError{Path: path}
	}
	if limit := s.cfg.MaxFileSizeBytes(); info.Size() > limit {
		return nil, "", &SizeExceededError{Size: info.Size(), Limit: limit}
	}

	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := s.dispatch(data, filepath.Base(path), "", docmodel.LocalPath(path))
	if err != nil {
		return nil, "", err
	}

	var md string
	if renderMarkdown {
		md = markdown.Render(doc)
	}
	return doc, md, nil
}

// Render serializes an already-parsed document to markdown.
func (s *Service) Render(doc *docmodel.Document) string {
	return markdown.Render(doc)
}

// Capabilities returns the static backend-family → extensions mapping.
func (s *Service) Capabilities() map[string][]string {
	out := make(map[string][]string, len(parser.Extensions))
	for kind, exts := range parser.Extensions {
		out[string(kind)] = append([]string(nil), exts...)
	}
	return out
}

func (s *Service) dispatch(data []byte, filename, contentType string, source docmodel.Source) (*docmodel.Document, error) {
	ext := filepath.Ext(filename)
	magic := data
	if len(magic) > 512 {
		magic = magic[:512]
	}

	kind := parser.SelectBackend(ext, contentType, magic)
	hints := parser.Hints{
		Filename:    filename,
		ContentType: parser.ContentTypeFor(kind, contentType, ext),
		Source:      source,
	}

	s.log.Debug("dispatching parse",
		"backend", string(kind),
		"filename", filename,
		"size", len(data),
	)

	doc, err := s.registry.Get(kind).Parse(data, hints)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return doc, nil
}
