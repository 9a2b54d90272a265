package slog_test

import (
	"bytes"
	"context"
	"iter"
	"log/slog"
	"testing"

	"github.com/fwojciec/filechat"
	"github.com/fwojciec/filechat/mock"
	fcslog "github.com/fwojciec/filechat/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingIndexService(t *testing.T) {
	t.Parallel()

	t.Run("logs created index with duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.IndexService{
			CreateIndexFn: func(_ context.Context, name string) (*filechat.Index, error) {
				return &filechat.Index{ID: "vs_1", Name: name}, nil
			},
		}

		s := fcslog.NewLoggingIndexService(inner, newLogger(&buf))
		idx, err := s.CreateIndex(context.Background(), "docs")

		require.NoError(t, err)
		assert.Equal(t, "vs_1", idx.ID)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, `msg="create index"`)
		assert.Contains(t, output, "index=vs_1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs failures at error level with code", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.IndexService{
			FindIndexByIDFn: func(_ context.Context, _ string) (*filechat.Index, error) {
				return nil, filechat.Errorf(filechat.ENOTFOUND, "No vector store found")
			},
		}

		s := fcslog.NewLoggingIndexService(inner, newLogger(&buf))
		_, err := s.FindIndexByID(context.Background(), "vs_9")

		assert.Equal(t, filechat.ENOTFOUND, filechat.ErrorCode(err))
		output := buf.String()
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, "index=vs_9")
		assert.Contains(t, output, "code=not_found")
	})

	t.Run("logs ingestion outcome at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.IndexService{
			IngestFilesFn: func(_ context.Context, indexID string, files []filechat.FileRecord) (*filechat.IngestBatch, error) {
				return &filechat.IngestBatch{
					ID:         "vsfb_1",
					IndexID:    indexID,
					Status:     filechat.BatchCompleted,
					FileCounts: filechat.FileCount{Completed: len(files)},
				}, nil
			},
		}

		s := fcslog.NewLoggingIndexService(inner, newLogger(&buf))
		_, err := s.IngestFiles(context.Background(), "vs_1", []filechat.FileRecord{{Path: "/a.pdf"}})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "batch=vsfb_1")
		assert.Contains(t, output, "status=completed")
		assert.Contains(t, output, "completed=1")
	})
}

func TestLoggingAssistantService(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.AssistantService{
		CreateAssistantFn: func(_ context.Context, a *filechat.Assistant) error {
			a.ID = "asst_1"
			return nil
		},
	}

	s := fcslog.NewLoggingAssistantService(inner, newLogger(&buf))
	a := &filechat.Assistant{Name: "File Assistant", Model: "gpt-4o"}
	require.NoError(t, s.CreateAssistant(context.Background(), a))

	output := buf.String()
	assert.Contains(t, output, "assistant=asst_1")
	assert.Contains(t, output, "model=gpt-4o")
}

func TestLoggingFileService(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.FileService{
		DeleteFileFn: func(_ context.Context, _ string) error { return nil },
	}

	s := fcslog.NewLoggingFileService(inner, newLogger(&buf))
	require.NoError(t, s.DeleteFile(context.Background(), "file-1"))

	assert.Contains(t, buf.String(), `msg="delete file" file=file-1`)
}

func TestLoggingThreadService_StreamRun(t *testing.T) {
	t.Parallel()

	t.Run("passes events through and logs the final run", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		events := []filechat.Event{
			{Type: filechat.EventRunCreated, Run: &filechat.Run{ID: "run_1", Status: filechat.RunQueued}},
			{Type: filechat.EventMessageCompleted, Message: &filechat.Message{Text: "hi"}},
			{Type: filechat.EventRunCompleted, Run: &filechat.Run{ID: "run_1", Status: filechat.RunCompleted}},
		}
		inner := &mock.ThreadService{
			StreamRunFn: func(_ context.Context, _, _ string) iter.Seq2[filechat.Event, error] {
				return mock.Events(nil, events...)
			},
		}

		s := fcslog.NewLoggingThreadService(inner, newLogger(&buf))
		var got []filechat.Event
		for ev, err := range s.StreamRun(context.Background(), "thread_1", "asst_1") {
			require.NoError(t, err)
			got = append(got, ev)
		}

		assert.Equal(t, events, got)
		output := buf.String()
		assert.Contains(t, output, `msg="stream run"`)
		assert.Contains(t, output, "run=run_1")
		assert.Contains(t, output, "status=completed")
		assert.Contains(t, output, "events=3")
	})

	t.Run("logs stream errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ThreadService{
			StreamRunFn: func(_ context.Context, _, _ string) iter.Seq2[filechat.Event, error] {
				return mock.Events(filechat.Errorf(filechat.EINTERNAL, "run stream error: overloaded"))
			},
		}

		s := fcslog.NewLoggingThreadService(inner, newLogger(&buf))
		var gotErr error
		for _, err := range s.StreamRun(context.Background(), "thread_1", "asst_1") {
			gotErr = err
		}

		require.Error(t, gotErr)
		assert.Contains(t, buf.String(), "level=ERROR")
	})

	t.Run("stops when the consumer stops", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ThreadService{
			StreamRunFn: func(_ context.Context, _, _ string) iter.Seq2[filechat.Event, error] {
				return mock.Events(nil,
					filechat.Event{Type: filechat.EventRunCreated},
					filechat.Event{Type: filechat.EventRunCompleted},
				)
			},
		}

		s := fcslog.NewLoggingThreadService(inner, newLogger(&buf))
		var n int
		for range s.StreamRun(context.Background(), "thread_1", "asst_1") {
			n++
			break
		}

		assert.Equal(t, 1, n)
		assert.Contains(t, buf.String(), "events=1")
	})
}
