package main_test

import (
	"bytes"
	"context"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/filechat"
	main "github.com/fwojciec/filechat/cmd/filechat"
	"github.com/fwojciec/filechat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// provisioned is a cache whose resources all exist already.
func provisioned() *mock.Cache {
	return &mock.Cache{Data: filechat.Entries{
		"vectorStoreId": "vs_1",
		"fileProcessed": true,
		"assistantId":   "asst_1",
		"threadId":      "thread_1",
	}}
}

// newTestMain returns a Main whose remote services answer every question
// with a fixed reply.
func newTestMain(t *testing.T, cache filechat.Cache) *main.Main {
	t.Helper()
	m := main.NewMain()
	t.Cleanup(func() { m.Close() })
	m.Cache = cache
	m.Discoverer = &mock.Discoverer{}
	m.Indexes = &mock.IndexService{}
	m.Assistants = &mock.AssistantService{}
	m.Files = &mock.FileService{}
	m.Threads = &mock.ThreadService{
		CreateMessageFn: func(_ context.Context, _, _ string) error { return nil },
		StreamRunFn: func(_ context.Context, _, _ string) iter.Seq2[filechat.Event, error] {
			return mock.Events(nil,
				filechat.Event{Type: filechat.EventMessageCompleted, Message: &filechat.Message{Text: "The report covers Q3."}},
				filechat.Event{Type: filechat.EventDone},
			)
		},
	}
	return m
}

func TestMain_Run_Status(t *testing.T) {
	t.Parallel()

	cache := provisioned()
	delete(cache.Data, "threadId")
	m := newTestMain(t, cache)
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), append(logFlags(t), "status"), nil, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, 1, cache.Loads)
	out := stdout.String()
	assert.Contains(t, out, "vs_1")
	assert.Contains(t, out, "asst_1")
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "true")
}

func TestMain_Run_Ask(t *testing.T) {
	t.Parallel()

	m := newTestMain(t, provisioned())
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), append(logFlags(t), "ask", "What", "does", "the", "report", "cover?"), nil, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "The report covers Q3.")
	assert.Empty(t, stderr.String())
}

func TestMain_Run_ChatDefault(t *testing.T) {
	t.Parallel()

	m := newTestMain(t, provisioned())
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), logFlags(t), strings.NewReader("Summarize\nexit\n"), stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout.String(), "You: "))
	assert.Contains(t, stdout.String(), "The report covers Q3.")
}

func TestMain_Run_Prompt(t *testing.T) {
	t.Parallel()

	m := newTestMain(t, provisioned())
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), append(logFlags(t), "--prompt", "> ", "chat"), strings.NewReader("exit\n"), stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, "> ", stdout.String())
}

func TestMain_Run_JSONCache(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"vectorStoreId":"vs_9","fileProcessed":true}`), 0o644))

	m := main.NewMain()
	defer m.Close()
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), append(logFlags(t), "--config", path, "status"), nil, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "vs_9")
}

func TestMain_Run_SQLiteCache(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cache.db")
	m := main.NewMain()
	defer m.Close()
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), append(logFlags(t), "--config", path, "status"), nil, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	require.NotNil(t, m.DB)
	assert.Contains(t, stdout.String(), "(none)")
}

func TestMain_Run_ResetRequiresForce(t *testing.T) {
	t.Parallel()

	m := newTestMain(t, provisioned())
	m.Assistants = &mock.AssistantService{
		FindAssistantsFn: func(_ context.Context) ([]*filechat.Assistant, error) {
			t.Fatal("reset must not run without --force")
			return nil, nil
		},
	}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), append(logFlags(t), "reset"), nil, &bytes.Buffer{}, stderr)

	require.Error(t, err)
	assert.Equal(t, filechat.EINVALID, filechat.ErrorCode(err))
	assert.Contains(t, stderr.String(), "--force")
}

func TestMain_Run_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	m := main.NewMain()
	defer m.Close()
	m.Cache = &mock.Cache{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), append(logFlags(t), "index"), nil, &bytes.Buffer{}, stderr)

	require.Error(t, err)
	assert.Equal(t, filechat.EUNAUTHORIZED, filechat.ErrorCode(err))
	assert.Contains(t, stderr.String(), "OPENAI_API_KEY not set")
}
