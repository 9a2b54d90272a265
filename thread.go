package filechat

import (
	"context"
	"iter"
)

// Thread is a remote conversation session holding ordered messages.
type Thread struct {
	ID string `json:"id"`
}

// RunStatus is the execution state of a run.
type RunStatus string

// RunStatus constants.
const (
	RunQueued         RunStatus = "queued"
	RunInProgress     RunStatus = "in_progress"
	RunRequiresAction RunStatus = "requires_action"
	RunCancelling     RunStatus = "cancelling"
	RunCancelled      RunStatus = "cancelled"
	RunFailed         RunStatus = "failed"
	RunCompleted      RunStatus = "completed"
	RunIncomplete     RunStatus = "incomplete"
	RunExpired        RunStatus = "expired"
)

// Active reports whether a run in this state must be cancelled before its
// thread can be discarded.
func (s RunStatus) Active() bool {
	switch s {
	case RunQueued, RunInProgress, RunRequiresAction:
		return true
	}
	return false
}

// Run is one execution of an assistant against a thread.
type Run struct {
	ID          string    `json:"id"`
	ThreadID    string    `json:"threadId"`
	AssistantID string    `json:"assistantId"`
	Status      RunStatus `json:"status"`
	LastError   string    `json:"lastError,omitempty"`
}

// Annotation links a span of answer text to a cited source.
type Annotation struct {
	// Text is the exact span in the answer text the annotation covers.
	Text string `json:"text"`

	// FileID is the cited file, empty if the annotation cites nothing.
	FileID string `json:"fileId,omitempty"`

	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

// Message is an assembled assistant answer.
type Message struct {
	ID          string       `json:"id"`
	ThreadID    string       `json:"threadId"`
	Role        string       `json:"role"`
	Text        string       `json:"text"`
	Annotations []Annotation `json:"annotations"`
}

// EventType identifies a streamed run event.
type EventType string

// EventType constants. Events not listed are delivered with their raw name.
const (
	EventRunCreated        EventType = "thread.run.created"
	EventRunCompleted      EventType = "thread.run.completed"
	EventRunFailed         EventType = "thread.run.failed"
	EventRunCancelled      EventType = "thread.run.cancelled"
	EventRunExpired        EventType = "thread.run.expired"
	EventRunIncomplete     EventType = "thread.run.incomplete"
	EventMessageCompleted  EventType = "thread.message.completed"
	EventMessageIncomplete EventType = "thread.message.incomplete"
	EventError             EventType = "error"
	EventDone              EventType = "done"
)

// Event is one item of a run stream. Message is set for
// EventMessageCompleted and EventMessageIncomplete; Run is set for
// thread.run.* events.
type Event struct {
	Type    EventType `json:"type"`
	Message *Message  `json:"message,omitempty"`
	Run     *Run      `json:"run,omitempty"`
}

// ThreadService manages conversation threads and their runs.
type ThreadService interface {
	// CreateThread creates an empty thread.
	CreateThread(ctx context.Context) (*Thread, error)

	// DeleteThread permanently removes a thread.
	DeleteThread(ctx context.Context, id string) error

	// FindRuns lists the runs of a thread.
	FindRuns(ctx context.Context, threadID string) ([]*Run, error)

	// CancelRun cancels an in-flight run.
	CancelRun(ctx context.Context, threadID, runID string) error

	// CreateMessage appends a user message to a thread.
	CreateMessage(ctx context.Context, threadID, content string) error

	// StreamRun starts a run and yields its events in production order. The
	// request is made when iteration begins; the stream ends after the
	// terminal event or the first error.
	StreamRun(ctx context.Context, threadID, assistantID string) iter.Seq2[Event, error]
}
