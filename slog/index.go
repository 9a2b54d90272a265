package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/filechat"
)

// Ensure LoggingIndexService implements filechat.IndexService.
var _ filechat.IndexService = (*LoggingIndexService)(nil)

// LoggingIndexService wraps an IndexService with logging.
type LoggingIndexService struct {
	next   filechat.IndexService
	logger *slog.Logger
}

// NewLoggingIndexService creates a new LoggingIndexService.
func NewLoggingIndexService(next filechat.IndexService, logger *slog.Logger) *LoggingIndexService {
	return &LoggingIndexService{next: next, logger: logger}
}

func (s *LoggingIndexService) CreateIndex(ctx context.Context, name string) (*filechat.Index, error) {
	begin := time.Now()
	idx, err := s.next.CreateIndex(ctx, name)
	var id string
	if idx != nil {
		id = idx.ID
	}
	logCall(s.logger, "create index", begin, err, "name", name, "index", id)
	return idx, err
}

func (s *LoggingIndexService) FindIndexByID(ctx context.Context, id string) (*filechat.Index, error) {
	begin := time.Now()
	idx, err := s.next.FindIndexByID(ctx, id)
	logCall(s.logger, "find index", begin, err, "index", id)
	return idx, err
}

func (s *LoggingIndexService) FindIndexes(ctx context.Context) ([]*filechat.Index, error) {
	begin := time.Now()
	indexes, err := s.next.FindIndexes(ctx)
	logCall(s.logger, "list indexes", begin, err, "count", len(indexes))
	return indexes, err
}

func (s *LoggingIndexService) DeleteIndex(ctx context.Context, id string) error {
	begin := time.Now()
	err := s.next.DeleteIndex(ctx, id)
	logCall(s.logger, "delete index", begin, err, "index", id)
	return err
}

// IngestFiles logs at info level on success since ingestion is the slowest
// operation the tool performs.
func (s *LoggingIndexService) IngestFiles(ctx context.Context, indexID string, files []filechat.FileRecord) (*filechat.IngestBatch, error) {
	begin := time.Now()
	batch, err := s.next.IngestFiles(ctx, indexID, files)
	args := []any{"index", indexID, "files", len(files)}
	if batch != nil {
		args = append(args,
			"batch", batch.ID,
			"status", string(batch.Status),
			"completed", batch.FileCounts.Completed,
			"failed", batch.FileCounts.Failed,
		)
	}
	if err != nil {
		logCall(s.logger, "ingest files", begin, err, args...)
		return batch, err
	}
	s.logger.Info("ingest files", append(args, "duration", time.Since(begin))...)
	return batch, nil
}
