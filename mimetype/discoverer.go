// Package mimetype implements filechat.Discoverer using content-based MIME
// detection from github.com/gabriel-vasile/mimetype.
package mimetype

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/filechat"
	"github.com/gabriel-vasile/mimetype"
)

// Ensure Discoverer implements filechat.Discoverer at compile time.
var _ filechat.Discoverer = (*Discoverer)(nil)

// Discoverer walks directory trees and returns supported documents. A file
// is accepted only when its content-derived MIME type matches the MIME type
// its extension claims.
type Discoverer struct {
	maxSize int64
}

// NewDiscoverer creates a new Discoverer.
func NewDiscoverer() *Discoverer {
	return &Discoverer{maxSize: filechat.MaxFileSize}
}

// Discover walks every root depth-first in lexical order.
func (d *Discoverer) Discover(roots []string, opts filechat.DiscoveryOptions) (*filechat.DiscoveryResult, error) {
	if len(roots) == 0 {
		return nil, filechat.Errorf(filechat.EINVALID, "at least one folder path required")
	}
	for _, root := range roots {
		if strings.TrimSpace(root) == "" {
			return nil, filechat.Errorf(filechat.EINVALID, "folder path must not be empty")
		}
	}

	result := &filechat.DiscoveryResult{}
	for _, root := range roots {
		if err := d.walk(root, opts, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (d *Discoverer) walk(root string, opts filechat.DiscoveryOptions, result *filechat.DiscoveryResult) error {
	if filechat.IsIgnored(filepath.Base(root)) {
		return nil
	}
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path != root && filechat.IsIgnored(entry.Name()) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}

		info, err := os.Stat(path)
		if err != nil {
			// Dangling symlink.
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if rec, ok := d.accept(path, info.Size(), opts); ok {
			result.Add(rec)
		}
		return nil
	})
}

func (d *Discoverer) accept(path string, size int64, opts filechat.DiscoveryOptions) (filechat.FileRecord, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if !opts.AllowsExtension(ext) {
		return filechat.FileRecord{}, false
	}
	if size <= 0 || size >= d.maxSize {
		return filechat.FileRecord{}, false
	}
	claimed, ok := filechat.SupportedTypes[ext]
	if !ok {
		return filechat.FileRecord{}, false
	}
	mtype, err := mimetype.DetectFile(path)
	if err != nil || !mtype.Is(claimed) {
		return filechat.FileRecord{}, false
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return filechat.FileRecord{Path: abs, Size: size}, true
}
