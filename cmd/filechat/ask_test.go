package main_test

import (
	"bytes"
	"context"
	"iter"
	"testing"

	"github.com/fwojciec/filechat"
	"github.com/fwojciec/filechat/chat"
	main "github.com/fwojciec/filechat/cmd/filechat"
	"github.com/fwojciec/filechat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("asks question and prints answer", func(t *testing.T) {
		t.Parallel()

		var sent string
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Loop: &chat.Loop{
				Sessions: &mock.SessionService{
					EnsureSessionFn: func(_ context.Context) (*filechat.Session, error) {
						return &filechat.Session{AssistantID: "asst_1", ThreadID: "thread_1"}, nil
					},
				},
				Threads: &mock.ThreadService{
					CreateMessageFn: func(_ context.Context, _, content string) error {
						sent = content
						return nil
					},
					StreamRunFn: func(_ context.Context, _, _ string) iter.Seq2[filechat.Event, error] {
						return mock.Events(nil,
							filechat.Event{
								Type:    filechat.EventMessageCompleted,
								Message: &filechat.Message{Text: "Three invoices are overdue."},
							},
							filechat.Event{Type: filechat.EventDone},
						)
					},
				},
				Renderer: &chat.Renderer{Stdout: stdout, NoColor: true},
			},
		}

		cmd := &main.AskCmd{Question: []string{"Which", "invoices", "are", "overdue?"}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Which invoices are overdue?", sent)
		assert.Equal(t, "Three invoices are overdue.\n\n\n", stdout.String())
	})

	t.Run("rejects a blank question", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.AskCmd{Question: []string{"  "}}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, filechat.EINVALID, filechat.ErrorCode(err))
		assert.Contains(t, stderr.String(), "question required")
	})
}
