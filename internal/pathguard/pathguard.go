// Package pathguard validates and canonicalizes filesystem paths before any
// content read occurs. Two gates run strictly in order: a syntactic scan for
// `..` components (no filesystem access), then symlink-resolving
// canonicalization with a component-wise containment check against the
// allowed base directory.
package pathguard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Rejection reasons surfaced verbatim to callers.
const (
	ReasonDotDot      = "contains '..' traversal component"
	ReasonOutsideBase = "is outside the allowed base directory"
)

// TraversalError is a security rejection from either gate. The message
// names the requested path and the specific reason; it never reveals the
// canonical base directory.
type TraversalError struct {
	Path   string
	Reason string
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("path %q %s", e.Path, e.Reason)
}

// NotFoundError reports a path inside the base directory that does not
// exist. Kept distinct from TraversalError so callers can tell "not found"
// from "blocked"; paths outside the base report as blocked whether or not
// they exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// Resolver gates filesystem access to a single base directory. The base is
// canonicalized once at construction and read-only afterwards, so a
// Resolver is safe for concurrent use.
type Resolver struct {
	base string
}

// NewResolver canonicalizes the configured base directory. Any failure here
// is a startup error: the hosting process must refuse to start rather than
// run without a base-directory restriction.
func NewResolver(baseDir string) (*Resolver, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, fmt.Errorf("allowed base directory is required")
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve base directory %q: %w", baseDir, err)
	}
	canon, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("canonicalize base directory %q: %w", baseDir, err)
	}
	info, err := os.Stat(canon)
	if err != nil {
		return nil, fmt.Errorf("stat base directory %q: %w", baseDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("base directory %q is not a directory", baseDir)
	}
	return &Resolver{base: canon}, nil
}

// Base returns the canonical base directory.
func (r *Resolver) Base() string {
	return r.base
}

// Resolve runs both gates and returns the canonical path of the target.
// The syntactic gate runs first so adversarial inputs are rejected before
// any path reaches the filesystem-touching canonicalization step.
func (r *Resolver) Resolve(requested string) (string, error) {
	if containsDotDot(requested) {
		return "", &TraversalError{Path: requested, Reason: ReasonDotDot}
	}

	target := requested
	if !filepath.IsAbs(target) {
		// Relative requests are interpreted against the base directory.
		target = filepath.Join(r.base, target)
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", requested, err)
	}
	canon, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			// Containment is decided on the cleaned absolute path first,
			// so a missing path outside the base gets the same rejection
			// as an existing one: the 403/404 split must not reveal
			// whether outside-base paths exist.
			if !containedIn(r.base, abs) {
				return "", &TraversalError{Path: requested, Reason: ReasonOutsideBase}
			}
			return "", &NotFoundError{Path: requested}
		}
		return "", fmt.Errorf("canonicalize path %q: %w", requested, err)
	}

	if !containedIn(r.base, canon) {
		return "", &TraversalError{Path: requested, Reason: ReasonOutsideBase}
	}
	return canon, nil
}

// containsDotDot scans the raw path string for a `..` component. Runs on
// the unmodified input, before Clean or Join could fold segments away.
func containsDotDot(path string) bool {
	for _, seg := range strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	}) {
		if seg == ".." {
			return true
		}
	}
	return false
}

// containedIn checks component-wise that path sits at or below base. A
// component comparison (not a string prefix) keeps a sibling like
// /data/documents2 from passing for base /data/documents.
func containedIn(base, path string) bool {
	baseParts := splitComponents(base)
	pathParts := splitComponents(path)
	if len(pathParts) < len(baseParts) {
		return false
	}
	for i, part := range baseParts {
		if pathParts[i] != part {
			return false
		}
	}
	return true
}

func splitComponents(path string) []string {
	parts := strings.Split(filepath.Clean(path), string(filepath.Separator))
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
