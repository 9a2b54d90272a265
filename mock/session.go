package mock

import (
	"context"

	"github.com/fwojciec/filechat"
)

var _ filechat.SessionService = (*SessionService)(nil)

// SessionService is a mock implementation of filechat.SessionService.
type SessionService struct {
	EnsureSessionFn func(ctx context.Context) (*filechat.Session, error)
	DiscardThreadFn func(ctx context.Context) error
	ReindexFn       func(ctx context.Context) error
	ResetFn         func(ctx context.Context) error
}

func (s *SessionService) EnsureSession(ctx context.Context) (*filechat.Session, error) {
	return s.EnsureSessionFn(ctx)
}

func (s *SessionService) DiscardThread(ctx context.Context) error {
	return s.DiscardThreadFn(ctx)
}

func (s *SessionService) Reindex(ctx context.Context) error {
	return s.ReindexFn(ctx)
}

func (s *SessionService) Reset(ctx context.Context) error {
	return s.ResetFn(ctx)
}
