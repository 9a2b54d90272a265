package openai

import (
	"context"
	"net/http"
	"time"

	"github.com/fwojciec/filechat"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Ensure IndexService implements filechat.IndexService at compile time.
var _ filechat.IndexService = (*IndexService)(nil)

type fileCounts struct {
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
	Cancelled  int `json:"cancelled"`
	Total      int `json:"total"`
}

func (c fileCounts) toFileCount() filechat.FileCount {
	return filechat.FileCount(c)
}

type vectorStore struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	UsageBytes int64      `json:"usage_bytes"`
	FileCounts fileCounts `json:"file_counts"`
	CreatedAt  int64      `json:"created_at"`
}

func (v *vectorStore) toIndex() *filechat.Index {
	return &filechat.Index{
		ID:         v.ID,
		Name:       v.Name,
		Status:     v.Status,
		UsageBytes: v.UsageBytes,
		FileCounts: v.FileCounts.toFileCount(),
		CreatedAt:  time.Unix(v.CreatedAt, 0).UTC(),
	}
}

type fileBatch struct {
	ID            string     `json:"id"`
	VectorStoreID string     `json:"vector_store_id"`
	Status        string     `json:"status"`
	FileCounts    fileCounts `json:"file_counts"`
}

func (b *fileBatch) toIngestBatch() *filechat.IngestBatch {
	return &filechat.IngestBatch{
		ID:         b.ID,
		IndexID:    b.VectorStoreID,
		Status:     filechat.BatchStatus(b.Status),
		FileCounts: b.FileCounts.toFileCount(),
	}
}

// IndexService implements filechat.IndexService with vector stores.
type IndexService struct {
	client *Client
	files  *FileService
}

// NewIndexService creates a new IndexService.
func NewIndexService(client *Client) *IndexService {
	return &IndexService{client: client, files: NewFileService(client)}
}

func (s *IndexService) CreateIndex(ctx context.Context, name string) (*filechat.Index, error) {
	if name == "" {
		return nil, filechat.Errorf(filechat.EINVALID, "index name required")
	}
	var v vectorStore
	if err := s.client.do(ctx, http.MethodPost, "/vector_stores", map[string]any{"name": name}, &v); err != nil {
		return nil, err
	}
	return v.toIndex(), nil
}

func (s *IndexService) FindIndexByID(ctx context.Context, id string) (*filechat.Index, error) {
	if id == "" {
		return nil, filechat.Errorf(filechat.EINVALID, "index ID required")
	}
	var v vectorStore
	if err := s.client.do(ctx, http.MethodGet, "/vector_stores/"+escape(id), nil, &v); err != nil {
		return nil, err
	}
	return v.toIndex(), nil
}

func (s *IndexService) FindIndexes(ctx context.Context) ([]*filechat.Index, error) {
	stores, err := listAll(ctx, s.client, "/vector_stores", func(v vectorStore) string { return v.ID })
	if err != nil {
		return nil, err
	}
	out := make([]*filechat.Index, 0, len(stores))
	for i := range stores {
		out = append(out, stores[i].toIndex())
	}
	return out, nil
}

func (s *IndexService) DeleteIndex(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/vector_stores/"+escape(id), nil, nil)
}

// IngestFiles uploads files concurrently, attaches them to the vector store
// as one batch, and polls until the batch leaves the in-progress state.
func (s *IndexService) IngestFiles(ctx context.Context, indexID string, files []filechat.FileRecord) (*filechat.IngestBatch, error) {
	if indexID == "" {
		return nil, filechat.Errorf(filechat.EINVALID, "index ID required")
	}
	if len(files) == 0 {
		return &filechat.IngestBatch{IndexID: indexID, Status: filechat.BatchCompleted}, nil
	}

	ids := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.client.uploadConcurrency)
	for i, rec := range files {
		g.Go(func() error {
			f, err := withRetry(gctx, s.client.retryDelays, func(ctx context.Context) (*filechat.File, error) {
				return s.files.upload(ctx, rec)
			})
			if err != nil {
				return err
			}
			ids[i] = f.ID
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var b fileBatch
	path := "/vector_stores/" + escape(indexID) + "/file_batches"
	if err := s.client.do(ctx, http.MethodPost, path, map[string]any{"file_ids": ids}, &b); err != nil {
		return nil, err
	}

	limiter := rate.NewLimiter(rate.Every(s.client.pollInterval), 1)
	for !filechat.BatchStatus(b.Status).Done() {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
		if err := s.client.do(ctx, http.MethodGet, path+"/"+escape(b.ID), nil, &b); err != nil {
			return nil, err
		}
	}

	batch := b.toIngestBatch()
	if batch.Status != filechat.BatchCompleted {
		return batch, filechat.Errorf(filechat.EINTERNAL, "file batch %s ended %s (%d of %d files failed)",
			batch.ID, batch.Status, batch.FileCounts.Failed, batch.FileCounts.Total)
	}
	return batch, nil
}
