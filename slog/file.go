package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/filechat"
)

// Ensure LoggingFileService implements filechat.FileService.
var _ filechat.FileService = (*LoggingFileService)(nil)

// LoggingFileService wraps a FileService with logging.
type LoggingFileService struct {
	next   filechat.FileService
	logger *slog.Logger
}

// NewLoggingFileService creates a new LoggingFileService.
func NewLoggingFileService(next filechat.FileService, logger *slog.Logger) *LoggingFileService {
	return &LoggingFileService{next: next, logger: logger}
}

func (s *LoggingFileService) FindFileByID(ctx context.Context, id string) (*filechat.File, error) {
	begin := time.Now()
	f, err := s.next.FindFileByID(ctx, id)
	logCall(s.logger, "find file", begin, err, "file", id)
	return f, err
}

func (s *LoggingFileService) FindFiles(ctx context.Context) ([]*filechat.File, error) {
	begin := time.Now()
	files, err := s.next.FindFiles(ctx)
	logCall(s.logger, "list files", begin, err, "count", len(files))
	return files, err
}

func (s *LoggingFileService) DeleteFile(ctx context.Context, id string) error {
	begin := time.Now()
	err := s.next.DeleteFile(ctx, id)
	logCall(s.logger, "delete file", begin, err, "file", id)
	return err
}
