package filechat

import (
	"path/filepath"
	"strings"
)

// MaxFileSize is the exclusive upper bound on the size of a discoverable file.
const MaxFileSize = 5 * 1024 * 1024

// SupportedTypes maps each supported document extension to its MIME type.
var SupportedTypes = map[string]string{
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pdf":  "application/pdf",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

// DefaultExtensions is the allow-list used when none is given.
var DefaultExtensions = []string{".docx", ".pdf", ".pptx"}

// ignoredNames are directory or file names never descended into or returned.
var ignoredNames = map[string]struct{}{
	".git":         {},
	".vscode":      {},
	"__pycache__":  {},
	".DS_Store":    {},
	"node_modules": {},
	"venv":         {},
	"env":          {},
	"logs":         {},
	"tmp":          {},
	"temp":         {},
	"build":        {},
	"dist":         {},
}

// IsIgnored reports whether a single path segment is in the ignore set.
func IsIgnored(name string) bool {
	_, ok := ignoredNames[name]
	return ok
}

// IsSupportedMIME reports whether mimeType is one of the supported document types.
func IsSupportedMIME(mimeType string) bool {
	for _, t := range SupportedTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}

// FileRecord is a document found on disk.
type FileRecord struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Name returns the base name of the file.
func (r FileRecord) Name() string {
	return filepath.Base(r.Path)
}

// DiscoveryResult is the outcome of a discovery run, in traversal order.
type DiscoveryResult struct {
	Files     []FileRecord `json:"files"`
	TotalSize int64        `json:"totalSize"`
}

// Add appends a record and accumulates its size.
func (r *DiscoveryResult) Add(rec FileRecord) {
	r.Files = append(r.Files, rec)
	r.TotalSize += rec.Size
}

// TotalMB returns the aggregate size in mebibytes.
func (r *DiscoveryResult) TotalMB() float64 {
	return float64(r.TotalSize) / (1024 * 1024)
}

// DiscoveryOptions narrows a discovery run.
type DiscoveryOptions struct {
	// Extensions is the allow-list of file extensions. The leading dot is
	// optional. Nil or empty means DefaultExtensions.
	Extensions []string
}

// AllowsExtension reports whether ext is in the allow-list. Comparison is
// case-insensitive and ignores a missing leading dot on either side.
func (o DiscoveryOptions) AllowsExtension(ext string) bool {
	exts := o.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	ext = normalizeExtension(ext)
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if normalizeExtension(e) == ext {
			return true
		}
	}
	return false
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// Discoverer finds candidate documents under a set of root directories.
type Discoverer interface {
	// Discover walks every root depth-first and returns the matching files.
	// Returns EINVALID if roots is empty or contains an empty path. A root
	// that does not exist or is itself ignored contributes nothing.
	Discover(roots []string, opts DiscoveryOptions) (*DiscoveryResult, error)
}

// ParseRoots splits a comma-separated list of roots, trimming whitespace and
// dropping empty entries.
func ParseRoots(s string) []string {
	var roots []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			roots = append(roots, p)
		}
	}
	return roots
}
