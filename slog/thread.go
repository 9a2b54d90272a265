package slog

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/fwojciec/filechat"
)

// Ensure LoggingThreadService implements filechat.ThreadService.
var _ filechat.ThreadService = (*LoggingThreadService)(nil)

// LoggingThreadService wraps a ThreadService with logging.
type LoggingThreadService struct {
	next   filechat.ThreadService
	logger *slog.Logger
}

// NewLoggingThreadService creates a new LoggingThreadService.
func NewLoggingThreadService(next filechat.ThreadService, logger *slog.Logger) *LoggingThreadService {
	return &LoggingThreadService{next: next, logger: logger}
}

func (s *LoggingThreadService) CreateThread(ctx context.Context) (*filechat.Thread, error) {
	begin := time.Now()
	thread, err := s.next.CreateThread(ctx)
	var id string
	if thread != nil {
		id = thread.ID
	}
	logCall(s.logger, "create thread", begin, err, "thread", id)
	return thread, err
}

func (s *LoggingThreadService) DeleteThread(ctx context.Context, id string) error {
	begin := time.Now()
	err := s.next.DeleteThread(ctx, id)
	logCall(s.logger, "delete thread", begin, err, "thread", id)
	return err
}

func (s *LoggingThreadService) FindRuns(ctx context.Context, threadID string) ([]*filechat.Run, error) {
	begin := time.Now()
	runs, err := s.next.FindRuns(ctx, threadID)
	logCall(s.logger, "list runs", begin, err, "thread", threadID, "count", len(runs))
	return runs, err
}

func (s *LoggingThreadService) CancelRun(ctx context.Context, threadID, runID string) error {
	begin := time.Now()
	err := s.next.CancelRun(ctx, threadID, runID)
	logCall(s.logger, "cancel run", begin, err, "thread", threadID, "run", runID)
	return err
}

func (s *LoggingThreadService) CreateMessage(ctx context.Context, threadID, content string) error {
	begin := time.Now()
	err := s.next.CreateMessage(ctx, threadID, content)
	logCall(s.logger, "create message", begin, err, "thread", threadID, "length", len(content))
	return err
}

// StreamRun logs once the stream ends, with the run id, the number of
// events seen and the final run status.
func (s *LoggingThreadService) StreamRun(ctx context.Context, threadID, assistantID string) iter.Seq2[filechat.Event, error] {
	return func(yield func(filechat.Event, error) bool) {
		begin := time.Now()
		var (
			events int
			runID  string
			status filechat.RunStatus
			err    error
		)
		defer func() {
			logCall(s.logger, "stream run", begin, err,
				"thread", threadID,
				"assistant", assistantID,
				"run", runID,
				"status", string(status),
				"events", events,
			)
		}()

		for ev, evErr := range s.next.StreamRun(ctx, threadID, assistantID) {
			if evErr != nil {
				err = evErr
			} else {
				events++
				if ev.Run != nil {
					runID, status = ev.Run.ID, ev.Run.Status
				}
			}
			if !yield(ev, evErr) {
				return
			}
		}
	}
}
