package filechat

import "context"

// File is an uploaded file held by the remote service.
type File struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Bytes    int64  `json:"bytes"`
	Purpose  string `json:"purpose"`
}

// FileService manages uploaded files.
type FileService interface {
	// FindFileByID retrieves file metadata by ID.
	// Returns ENOTFOUND if the file does not exist.
	FindFileByID(ctx context.Context, id string) (*File, error)

	// FindFiles lists every file visible to the account.
	FindFiles(ctx context.Context) ([]*File, error)

	// DeleteFile permanently removes a file.
	DeleteFile(ctx context.Context, id string) error
}
