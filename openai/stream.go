package openai

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/fwojciec/filechat"
)

// maxEventSize bounds a single server-sent event line.
const maxEventSize = 4 * 1024 * 1024

type sseEvent struct {
	name string
	data string
}

// readEvents splits a text/event-stream body into events. Multiple data
// lines of one event are joined with newlines.
func readEvents(r io.Reader) iter.Seq2[sseEvent, error] {
	return func(yield func(sseEvent, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)

		var name string
		var data []string
		flush := func() bool {
			if name == "" && len(data) == 0 {
				return true
			}
			ev := sseEvent{name: name, data: strings.Join(data, "\n")}
			name, data = "", nil
			return yield(ev, nil)
		}

		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case line == "":
				if !flush() {
					return
				}
			case strings.HasPrefix(line, ":"):
				// comment
			case strings.HasPrefix(line, "event:"):
				name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
			}
		}
		if err := scanner.Err(); err != nil {
			yield(sseEvent{}, fmt.Errorf("failed to read run stream: %w", err))
			return
		}
		flush()
	}
}

type annotation struct {
	Type         string `json:"type"`
	Text         string `json:"text"`
	StartIndex   int    `json:"start_index"`
	EndIndex     int    `json:"end_index"`
	FileCitation *struct {
		FileID string `json:"file_id"`
	} `json:"file_citation,omitempty"`
}

type messageContent struct {
	Type string `json:"type"`
	Text *struct {
		Value       string       `json:"value"`
		Annotations []annotation `json:"annotations"`
	} `json:"text,omitempty"`
}

type message struct {
	ID       string           `json:"id"`
	ThreadID string           `json:"thread_id"`
	Role     string           `json:"role"`
	Content  []messageContent `json:"content"`
}

// toMessage converts the leading text content of m. Returns nil when the
// message does not start with text.
func (m *message) toMessage() *filechat.Message {
	if len(m.Content) == 0 || m.Content[0].Type != "text" || m.Content[0].Text == nil {
		return nil
	}
	text := m.Content[0].Text
	out := &filechat.Message{
		ID:          m.ID,
		ThreadID:    m.ThreadID,
		Role:        m.Role,
		Text:        text.Value,
		Annotations: make([]filechat.Annotation, 0, len(text.Annotations)),
	}
	for _, a := range text.Annotations {
		ann := filechat.Annotation{Text: a.Text, StartIndex: a.StartIndex, EndIndex: a.EndIndex}
		if a.FileCitation != nil {
			ann.FileID = a.FileCitation.FileID
		}
		out.Annotations = append(out.Annotations, ann)
	}
	return out
}

type run struct {
	ID          string `json:"id"`
	ThreadID    string `json:"thread_id"`
	AssistantID string `json:"assistant_id"`
	Status      string `json:"status"`
	LastError   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"last_error,omitempty"`
	IncompleteDetails *struct {
		Reason string `json:"reason"`
	} `json:"incomplete_details,omitempty"`
}

func (r *run) toRun() *filechat.Run {
	out := &filechat.Run{
		ID:          r.ID,
		ThreadID:    r.ThreadID,
		AssistantID: r.AssistantID,
		Status:      filechat.RunStatus(r.Status),
	}
	if r.LastError != nil {
		out.LastError = r.LastError.Message
	} else if r.IncompleteDetails != nil {
		out.LastError = r.IncompleteDetails.Reason
	}
	return out
}

type streamError struct {
	Message string `json:"message"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// decodeEvent converts a raw event into a domain event. An error event is
// returned as an error.
func decodeEvent(raw sseEvent) (filechat.Event, error) {
	ev := filechat.Event{Type: filechat.EventType(raw.name)}

	switch {
	case ev.Type == filechat.EventDone:
		return ev, nil

	case ev.Type == filechat.EventError:
		var se streamError
		msg := raw.data
		if err := json.Unmarshal([]byte(raw.data), &se); err == nil {
			if se.Error != nil && se.Error.Message != "" {
				msg = se.Error.Message
			} else if se.Message != "" {
				msg = se.Message
			}
		}
		return ev, filechat.Errorf(filechat.EINTERNAL, "run stream error: %s", msg)

	case ev.Type == filechat.EventMessageCompleted || ev.Type == filechat.EventMessageIncomplete:
		var m message
		if err := json.Unmarshal([]byte(raw.data), &m); err != nil {
			return ev, fmt.Errorf("failed to decode %s event: %w", raw.name, err)
		}
		ev.Message = m.toMessage()

	case strings.HasPrefix(raw.name, "thread.run.") && !strings.HasPrefix(raw.name, "thread.run.step."):
		var r run
		if err := json.Unmarshal([]byte(raw.data), &r); err != nil {
			return ev, fmt.Errorf("failed to decode %s event: %w", raw.name, err)
		}
		ev.Run = r.toRun()
	}
	return ev, nil
}
