package mock

import (
	"context"
	"iter"

	"github.com/fwojciec/filechat"
)

var _ filechat.ThreadService = (*ThreadService)(nil)

// ThreadService is a mock implementation of filechat.ThreadService.
type ThreadService struct {
	CreateThreadFn  func(ctx context.Context) (*filechat.Thread, error)
	DeleteThreadFn  func(ctx context.Context, id string) error
	FindRunsFn      func(ctx context.Context, threadID string) ([]*filechat.Run, error)
	CancelRunFn     func(ctx context.Context, threadID, runID string) error
	CreateMessageFn func(ctx context.Context, threadID, content string) error
	StreamRunFn     func(ctx context.Context, threadID, assistantID string) iter.Seq2[filechat.Event, error]
}

func (s *ThreadService) CreateThread(ctx context.Context) (*filechat.Thread, error) {
	return s.CreateThreadFn(ctx)
}

func (s *ThreadService) DeleteThread(ctx context.Context, id string) error {
	return s.DeleteThreadFn(ctx, id)
}

func (s *ThreadService) FindRuns(ctx context.Context, threadID string) ([]*filechat.Run, error) {
	return s.FindRunsFn(ctx, threadID)
}

func (s *ThreadService) CancelRun(ctx context.Context, threadID, runID string) error {
	return s.CancelRunFn(ctx, threadID, runID)
}

func (s *ThreadService) CreateMessage(ctx context.Context, threadID, content string) error {
	return s.CreateMessageFn(ctx, threadID, content)
}

func (s *ThreadService) StreamRun(ctx context.Context, threadID, assistantID string) iter.Seq2[filechat.Event, error] {
	return s.StreamRunFn(ctx, threadID, assistantID)
}

// Events returns a stream yielding events in order, then err if non-nil.
func Events(err error, events ...filechat.Event) iter.Seq2[filechat.Event, error] {
	return func(yield func(filechat.Event, error) bool) {
		for _, ev := range events {
			if !yield(ev, nil) {
				return
			}
		}
		if err != nil {
			yield(filechat.Event{}, err)
		}
	}
}
