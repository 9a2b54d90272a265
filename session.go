package filechat

import "context"

// Session identifies the provisioned assistant and thread queries run on.
type Session struct {
	IndexID     string `json:"indexId"`
	AssistantID string `json:"assistantId"`
	ThreadID    string `json:"threadId"`
}

// SessionService establishes and tears down the remote resources a
// conversation needs. Implementations reuse cached identifiers so repeated
// calls create nothing new.
type SessionService interface {
	// EnsureSession provisions, in order, the index, the assistant bound to
	// it, and a thread, creating only what is not cached.
	EnsureSession(ctx context.Context) (*Session, error)

	// DiscardThread cancels in-flight runs on the cached thread, deletes it,
	// and forgets its identifier. It is a no-op without a cached thread.
	DiscardThread(ctx context.Context) error

	// Reindex discards the thread and ingests files again.
	Reindex(ctx context.Context) error

	// Reset discards the thread, deletes every remote assistant, file and
	// index visible to the account, and clears the cache.
	Reset(ctx context.Context) error
}
