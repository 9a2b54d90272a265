// Package gocache caches remote file metadata in memory using
// github.com/patrickmn/go-cache. Citation rendering resolves the same file
// ids repeatedly across answers; the cache keeps those lookups local.
package gocache

import (
	"context"
	"time"

	"github.com/fwojciec/filechat"
	"github.com/patrickmn/go-cache"
)

// DefaultTTL is how long resolved file metadata stays cached.
const DefaultTTL = 30 * time.Minute

var _ filechat.FileService = (*FileService)(nil)

// FileService wraps a filechat.FileService and caches FindFileByID results.
type FileService struct {
	next  filechat.FileService
	cache *cache.Cache
}

// NewFileService returns a caching FileService. A non-positive ttl selects
// DefaultTTL.
func NewFileService(next filechat.FileService, ttl time.Duration) *FileService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &FileService{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

// FindFileByID returns cached metadata or fetches and caches it. Errors are
// not cached.
func (s *FileService) FindFileByID(ctx context.Context, id string) (*filechat.File, error) {
	if v, ok := s.cache.Get(id); ok {
		f := *v.(*filechat.File)
		return &f, nil
	}
	f, err := s.next.FindFileByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cp := *f
	s.cache.Set(id, &cp, cache.DefaultExpiration)
	return f, nil
}

// FindFiles lists files from the wrapped service and refreshes the cache
// with their metadata.
func (s *FileService) FindFiles(ctx context.Context) ([]*filechat.File, error) {
	files, err := s.next.FindFiles(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		cp := *f
		s.cache.Set(f.ID, &cp, cache.DefaultExpiration)
	}
	return files, nil
}

// DeleteFile deletes the file and evicts it from the cache.
func (s *FileService) DeleteFile(ctx context.Context, id string) error {
	if err := s.next.DeleteFile(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(id)
	return nil
}

// Len returns the number of cached entries, including expired ones not yet
// evicted.
func (s *FileService) Len() int {
	return s.cache.ItemCount()
}
