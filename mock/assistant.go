package mock

import (
	"context"

	"github.com/fwojciec/filechat"
)

var _ filechat.AssistantService = (*AssistantService)(nil)

// AssistantService is a mock implementation of filechat.AssistantService.
type AssistantService struct {
	CreateAssistantFn func(ctx context.Context, assistant *filechat.Assistant) error
	UpdateAssistantFn func(ctx context.Context, id string, upd filechat.AssistantUpdate) (*filechat.Assistant, error)
	FindAssistantsFn  func(ctx context.Context) ([]*filechat.Assistant, error)
	DeleteAssistantFn func(ctx context.Context, id string) error
}

func (s *AssistantService) CreateAssistant(ctx context.Context, assistant *filechat.Assistant) error {
	return s.CreateAssistantFn(ctx, assistant)
}

func (s *AssistantService) UpdateAssistant(ctx context.Context, id string, upd filechat.AssistantUpdate) (*filechat.Assistant, error) {
	return s.UpdateAssistantFn(ctx, id, upd)
}

func (s *AssistantService) FindAssistants(ctx context.Context) ([]*filechat.Assistant, error) {
	return s.FindAssistantsFn(ctx)
}

func (s *AssistantService) DeleteAssistant(ctx context.Context, id string) error {
	return s.DeleteAssistantFn(ctx, id)
}
