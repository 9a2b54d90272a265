package openai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/fwojciec/filechat"
)

// Ensure FileService implements filechat.FileService at compile time.
var _ filechat.FileService = (*FileService)(nil)

type file struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Bytes    int64  `json:"bytes"`
	Purpose  string `json:"purpose"`
}

func (f *file) toFile() *filechat.File {
	return &filechat.File{ID: f.ID, Filename: f.Filename, Bytes: f.Bytes, Purpose: f.Purpose}
}

// FileService implements filechat.FileService.
type FileService struct {
	client *Client
}

// NewFileService creates a new FileService.
func NewFileService(client *Client) *FileService {
	return &FileService{client: client}
}

func (s *FileService) FindFileByID(ctx context.Context, id string) (*filechat.File, error) {
	if id == "" {
		return nil, filechat.Errorf(filechat.EINVALID, "file ID required")
	}
	var f file
	if err := s.client.do(ctx, http.MethodGet, "/files/"+escape(id), nil, &f); err != nil {
		return nil, err
	}
	return f.toFile(), nil
}

func (s *FileService) FindFiles(ctx context.Context) ([]*filechat.File, error) {
	files, err := listAll(ctx, s.client, "/files", func(f file) string { return f.ID })
	if err != nil {
		return nil, err
	}
	out := make([]*filechat.File, 0, len(files))
	for i := range files {
		out = append(out, files[i].toFile())
	}
	return out, nil
}

func (s *FileService) DeleteFile(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/files/"+escape(id), nil, nil)
}

// upload sends one local file with the assistants purpose.
func (s *FileService) upload(ctx context.Context, rec filechat.FileRecord) (*filechat.File, error) {
	src, err := os.Open(rec.Path)
	if err != nil {
		return nil, filechat.Errorf(filechat.EINVALID, "cannot open %s: %v", rec.Path, err)
	}
	defer src.Close()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("purpose", "assistants"); err != nil {
		return nil, err
	}
	part, err := w.CreateFormFile("file", rec.Name())
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rec.Path, err)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.client.timeout)
	defer cancel()

	req, err := s.client.newRequest(ctx, http.MethodPost, "/files", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var f file
	if err := s.client.send(req, &f); err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", rec.Name(), err)
	}
	return f.toFile(), nil
}
