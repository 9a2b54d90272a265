package mock

import (
	"context"

	"github.com/fwojciec/filechat"
)

var _ filechat.FileService = (*FileService)(nil)

// FileService is a mock implementation of filechat.FileService.
type FileService struct {
	FindFileByIDFn func(ctx context.Context, id string) (*filechat.File, error)
	FindFilesFn    func(ctx context.Context) ([]*filechat.File, error)
	DeleteFileFn   func(ctx context.Context, id string) error
}

func (s *FileService) FindFileByID(ctx context.Context, id string) (*filechat.File, error) {
	return s.FindFileByIDFn(ctx, id)
}

func (s *FileService) FindFiles(ctx context.Context) ([]*filechat.File, error) {
	return s.FindFilesFn(ctx)
}

func (s *FileService) DeleteFile(ctx context.Context, id string) error {
	return s.DeleteFileFn(ctx, id)
}
