// Package session provisions and tears down the remote resources a chat
// needs: the index holding local documents, the assistant bound to it, and
// the conversation thread. Identifiers are persisted in a filechat.Cache so
// a restarted process reuses what already exists.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/fwojciec/filechat"
)

var _ filechat.SessionService = (*Orchestrator)(nil)

// Settings configure what the orchestrator provisions.
type Settings struct {
	Roots         []string
	Extensions    []string
	IndexName     string
	AssistantName string
	Instructions  string
	Model         string
}

// Orchestrator implements filechat.SessionService on top of the remote
// services. Public methods are serialized; none of them may be called
// concurrently with cache access from elsewhere.
type Orchestrator struct {
	Cache      filechat.Cache
	Discoverer filechat.Discoverer
	Indexes    filechat.IndexService
	Assistants filechat.AssistantService
	Threads    filechat.ThreadService
	Files      filechat.FileService
	Settings   Settings

	// Logger receives diagnostics. Defaults to discarding.
	Logger *slog.Logger

	// Stdout receives user-facing status lines. Defaults to discarding.
	Stdout io.Writer

	mu sync.Mutex
}

// EnsureSession provisions the index, assistant and thread, reusing cached
// identifiers.
func (o *Orchestrator) EnsureSession(ctx context.Context) (*filechat.Session, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	assistantID, indexID, err := o.ensureAssistant(ctx)
	if err != nil {
		return nil, err
	}
	threadID, err := o.ensureThread(ctx)
	if err != nil {
		return nil, err
	}
	return &filechat.Session{
		IndexID:     indexID,
		AssistantID: assistantID,
		ThreadID:    threadID,
	}, nil
}

// EnsureIndex returns the cached index, ingesting files first if they have
// not been confirmed processed.
func (o *Orchestrator) EnsureIndex(ctx context.Context) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ensureIndex(ctx, false)
}

// DiscardThread cancels active runs and deletes the cached thread.
func (o *Orchestrator) DiscardThread(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.discardThread(ctx)
}

// Reindex discards the thread, clears the files-processed flag and ingests
// files into the cached index again.
func (o *Orchestrator) Reindex(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.discardThread(ctx); err != nil {
		return err
	}
	if err := o.Cache.Set(filechat.KeyFilesProcessed, false); err != nil {
		return err
	}
	prev, _ := o.Cache.String(filechat.KeyIndexID)
	indexID, err := o.ensureIndex(ctx, true)
	if err != nil {
		return err
	}

	// A replaced index must be rebound to the cached assistant.
	assistantID, ok := o.Cache.String(filechat.KeyAssistantID)
	if !ok || indexID == prev {
		return nil
	}
	if _, err := o.Assistants.UpdateAssistant(ctx, assistantID, filechat.AssistantUpdate{
		IndexIDs: []string{indexID},
	}); err != nil {
		return fmt.Errorf("bind index to assistant: %w", err)
	}
	return nil
}

// Reset discards the thread, deletes every remote assistant, file and index,
// and clears the cache.
func (o *Orchestrator) Reset(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.discardThread(ctx); err != nil {
		return err
	}

	assistants, err := o.Assistants.FindAssistants(ctx)
	if err != nil {
		return fmt.Errorf("list assistants: %w", err)
	}
	for _, a := range assistants {
		if err := o.Assistants.DeleteAssistant(ctx, a.ID); err != nil {
			return fmt.Errorf("delete assistant %s: %w", a.ID, err)
		}
		o.printf("Deleted assistant %s\n", a.ID)
	}

	files, err := o.Files.FindFiles(ctx)
	if err != nil {
		return fmt.Errorf("list files: %w", err)
	}
	if len(files) > 0 {
		o.printf("Deleting %d files\n", len(files))
		for i, f := range files {
			if err := o.Files.DeleteFile(ctx, f.ID); err != nil {
				o.printf("\n")
				return fmt.Errorf("delete file %s: %w", f.ID, err)
			}
			o.printf("\r\033[K....%d", i+1)
		}
		o.printf("\n")
	}

	indexes, err := o.Indexes.FindIndexes(ctx)
	if err != nil {
		return fmt.Errorf("list indexes: %w", err)
	}
	for _, idx := range indexes {
		if err := o.Indexes.DeleteIndex(ctx, idx.ID); err != nil {
			return fmt.Errorf("delete index %s: %w", idx.ID, err)
		}
		o.printf("Deleted index %s\n", idx.ID)
	}

	o.logger().Info("reset complete",
		"assistants", len(assistants),
		"files", len(files),
		"indexes", len(indexes))
	return o.Cache.Clear()
}

func (o *Orchestrator) ensureAssistant(ctx context.Context) (assistantID, indexID string, err error) {
	if id, ok := o.Cache.String(filechat.KeyAssistantID); ok {
		indexID, _ := o.Cache.String(filechat.KeyIndexID)
		o.logger().Info("assistant reused", "assistant", id)
		return id, indexID, nil
	}

	a := &filechat.Assistant{
		Name:         o.Settings.AssistantName,
		Instructions: o.Settings.Instructions,
		Model:        o.Settings.Model,
		FileSearch:   true,
	}
	if err := o.Assistants.CreateAssistant(ctx, a); err != nil {
		return "", "", fmt.Errorf("create assistant: %w", err)
	}
	o.logger().Info("assistant created", "assistant", a.ID, "model", a.Model)

	indexID, err = o.ensureIndex(ctx, false)
	if err != nil {
		return "", "", err
	}

	if _, err := o.Assistants.UpdateAssistant(ctx, a.ID, filechat.AssistantUpdate{
		IndexIDs: []string{indexID},
	}); err != nil {
		return "", "", fmt.Errorf("bind index to assistant: %w", err)
	}
	if err := o.Cache.Set(filechat.KeyAssistantID, a.ID); err != nil {
		return "", "", err
	}
	return a.ID, indexID, nil
}

// ensureIndex reuses the cached index when its files were processed. With
// force, or without the flag, files are discovered and ingested into the
// cached index, or into a new one if none is cached or it no longer exists.
func (o *Orchestrator) ensureIndex(ctx context.Context, force bool) (string, error) {
	cachedID, cached := o.Cache.String(filechat.KeyIndexID)
	if cached && !force && o.Cache.Bool(filechat.KeyFilesProcessed) {
		o.logger().Info("index reused", "index", cachedID)
		return cachedID, nil
	}

	result, err := o.Discoverer.Discover(o.Settings.Roots, filechat.DiscoveryOptions{
		Extensions: o.Settings.Extensions,
	})
	if err != nil {
		return "", fmt.Errorf("discover files: %w", err)
	}
	o.printf("Indexing %d files with total size of %.2f MB\n", len(result.Files), result.TotalMB())

	idx, err := o.resolveIndex(ctx, cachedID, cached)
	if err != nil {
		return "", err
	}
	if err := o.Cache.Set(filechat.KeyIndexID, idx.ID); err != nil {
		return "", err
	}

	batch, err := o.Indexes.IngestFiles(ctx, idx.ID, result.Files)
	if err != nil {
		return "", fmt.Errorf("ingest files: %w", err)
	}
	o.logger().Info("files ingested",
		"index", idx.ID,
		"batch", batch.ID,
		"files", len(result.Files),
		"completed", batch.FileCounts.Completed,
		"failed", batch.FileCounts.Failed)

	if err := o.Cache.Set(filechat.KeyFilesProcessed, true); err != nil {
		return "", err
	}

	o.printf("Finished uploading files to index\n")
	if updated, err := o.Indexes.FindIndexByID(ctx, idx.ID); err == nil {
		o.printf("Size of the index: %s\n", FormatBytes(updated.UsageBytes))
	} else {
		o.logger().Warn("index usage unavailable", "index", idx.ID, "error", err)
	}
	return idx.ID, nil
}

func (o *Orchestrator) resolveIndex(ctx context.Context, id string, cached bool) (*filechat.Index, error) {
	if cached {
		idx, err := o.Indexes.FindIndexByID(ctx, id)
		if err == nil {
			return idx, nil
		}
		if filechat.ErrorCode(err) != filechat.ENOTFOUND {
			return nil, fmt.Errorf("retrieve index: %w", err)
		}
		o.logger().Warn("cached index missing, creating a new one", "index", id)
	}

	idx, err := o.Indexes.CreateIndex(ctx, o.Settings.IndexName)
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	o.logger().Info("index created", "index", idx.ID, "name", idx.Name)
	return idx, nil
}

func (o *Orchestrator) ensureThread(ctx context.Context) (string, error) {
	if id, ok := o.Cache.String(filechat.KeyThreadID); ok {
		o.logger().Info("thread reused", "thread", id)
		return id, nil
	}
	thread, err := o.Threads.CreateThread(ctx)
	if err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}
	if err := o.Cache.Set(filechat.KeyThreadID, thread.ID); err != nil {
		return "", err
	}
	o.logger().Info("thread created", "thread", thread.ID)
	return thread.ID, nil
}

func (o *Orchestrator) discardThread(ctx context.Context) error {
	id, ok := o.Cache.String(filechat.KeyThreadID)
	if !ok {
		return nil
	}

	runs, err := o.Threads.FindRuns(ctx, id)
	switch {
	case filechat.ErrorCode(err) == filechat.ENOTFOUND:
		o.logger().Warn("cached thread missing", "thread", id)
		return o.Cache.Set(filechat.KeyThreadID, nil)
	case err != nil:
		return fmt.Errorf("list runs: %w", err)
	}

	for _, run := range runs {
		if !run.Status.Active() {
			continue
		}
		o.printf("Canceling run %s\n", run.ID)
		if err := o.Threads.CancelRun(ctx, id, run.ID); err != nil {
			return fmt.Errorf("cancel run %s: %w", run.ID, err)
		}
	}

	if err := o.Threads.DeleteThread(ctx, id); err != nil && filechat.ErrorCode(err) != filechat.ENOTFOUND {
		return fmt.Errorf("delete thread: %w", err)
	}
	o.logger().Info("thread discarded", "thread", id)
	return o.Cache.Set(filechat.KeyThreadID, nil)
}

func (o *Orchestrator) printf(format string, args ...any) {
	if o.Stdout == nil {
		return
	}
	fmt.Fprintf(o.Stdout, format, args...)
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
