package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/filechat"
)

// Ensure LoggingAssistantService implements filechat.AssistantService.
var _ filechat.AssistantService = (*LoggingAssistantService)(nil)

// LoggingAssistantService wraps an AssistantService with logging.
type LoggingAssistantService struct {
	next   filechat.AssistantService
	logger *slog.Logger
}

// NewLoggingAssistantService creates a new LoggingAssistantService.
func NewLoggingAssistantService(next filechat.AssistantService, logger *slog.Logger) *LoggingAssistantService {
	return &LoggingAssistantService{next: next, logger: logger}
}

func (s *LoggingAssistantService) CreateAssistant(ctx context.Context, assistant *filechat.Assistant) error {
	begin := time.Now()
	err := s.next.CreateAssistant(ctx, assistant)
	logCall(s.logger, "create assistant", begin, err,
		"assistant", assistant.ID,
		"name", assistant.Name,
		"model", assistant.Model,
	)
	return err
}

func (s *LoggingAssistantService) UpdateAssistant(ctx context.Context, id string, upd filechat.AssistantUpdate) (*filechat.Assistant, error) {
	begin := time.Now()
	a, err := s.next.UpdateAssistant(ctx, id, upd)
	logCall(s.logger, "update assistant", begin, err, "assistant", id, "indexes", upd.IndexIDs)
	return a, err
}

func (s *LoggingAssistantService) FindAssistants(ctx context.Context) ([]*filechat.Assistant, error) {
	begin := time.Now()
	assistants, err := s.next.FindAssistants(ctx)
	logCall(s.logger, "list assistants", begin, err, "count", len(assistants))
	return assistants, err
}

func (s *LoggingAssistantService) DeleteAssistant(ctx context.Context, id string) error {
	begin := time.Now()
	err := s.next.DeleteAssistant(ctx, id)
	logCall(s.logger, "delete assistant", begin, err, "assistant", id)
	return err
}
