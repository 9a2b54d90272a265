package mock

import (
	"context"

	"github.com/fwojciec/filechat"
)

var _ filechat.IndexService = (*IndexService)(nil)

// IndexService is a mock implementation of filechat.IndexService.
type IndexService struct {
	CreateIndexFn   func(ctx context.Context, name string) (*filechat.Index, error)
	FindIndexByIDFn func(ctx context.Context, id string) (*filechat.Index, error)
	FindIndexesFn   func(ctx context.Context) ([]*filechat.Index, error)
	DeleteIndexFn   func(ctx context.Context, id string) error
	IngestFilesFn   func(ctx context.Context, indexID string, files []filechat.FileRecord) (*filechat.IngestBatch, error)
}

func (s *IndexService) CreateIndex(ctx context.Context, name string) (*filechat.Index, error) {
	return s.CreateIndexFn(ctx, name)
}

func (s *IndexService) FindIndexByID(ctx context.Context, id string) (*filechat.Index, error) {
	return s.FindIndexByIDFn(ctx, id)
}

func (s *IndexService) FindIndexes(ctx context.Context) ([]*filechat.Index, error) {
	return s.FindIndexesFn(ctx)
}

func (s *IndexService) DeleteIndex(ctx context.Context, id string) error {
	return s.DeleteIndexFn(ctx, id)
}

func (s *IndexService) IngestFiles(ctx context.Context, indexID string, files []filechat.FileRecord) (*filechat.IngestBatch, error) {
	return s.IngestFilesFn(ctx, indexID, files)
}
