package filechat

import (
	"context"
	"time"
)

// Index is a remote searchable document store built from ingested files.
type Index struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	UsageBytes int64     `json:"usageBytes"`
	FileCounts FileCount `json:"fileCounts"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FileCount summarizes ingestion state of files in an index or batch.
type FileCount struct {
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
	Cancelled  int `json:"cancelled"`
	Total      int `json:"total"`
}

// BatchStatus is the ingestion state of a file batch.
type BatchStatus string

// BatchStatus constants.
const (
	BatchInProgress BatchStatus = "in_progress"
	BatchCompleted  BatchStatus = "completed"
	BatchCancelled  BatchStatus = "cancelled"
	BatchFailed     BatchStatus = "failed"
)

// Done reports whether the batch has left the in-progress state.
func (s BatchStatus) Done() bool {
	return s != BatchInProgress && s != ""
}

// IngestBatch is the outcome of ingesting a set of files into an index.
type IngestBatch struct {
	ID         string      `json:"id"`
	IndexID    string      `json:"indexId"`
	Status     BatchStatus `json:"status"`
	FileCounts FileCount   `json:"fileCounts"`
}

// IndexService manages remote document indexes.
type IndexService interface {
	// CreateIndex creates a new empty index.
	CreateIndex(ctx context.Context, name string) (*Index, error)

	// FindIndexByID retrieves an index by ID.
	// Returns ENOTFOUND if the index does not exist.
	FindIndexByID(ctx context.Context, id string) (*Index, error)

	// FindIndexes lists every index visible to the account.
	FindIndexes(ctx context.Context) ([]*Index, error)

	// DeleteIndex permanently removes an index.
	DeleteIndex(ctx context.Context, id string) error

	// IngestFiles uploads files and blocks until the index has processed
	// them. Returns EINTERNAL if the batch ends failed or cancelled.
	IngestFiles(ctx context.Context, indexID string, files []FileRecord) (*IngestBatch, error)
}
