package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"iter"
	"net/http"

	"github.com/fwojciec/filechat"
)

// Ensure ThreadService implements filechat.ThreadService at compile time.
var _ filechat.ThreadService = (*ThreadService)(nil)

type thread struct {
	ID string `json:"id"`
}

// ThreadService implements filechat.ThreadService.
type ThreadService struct {
	client *Client
}

// NewThreadService creates a new ThreadService.
func NewThreadService(client *Client) *ThreadService {
	return &ThreadService{client: client}
}

func (s *ThreadService) CreateThread(ctx context.Context) (*filechat.Thread, error) {
	var t thread
	if err := s.client.do(ctx, http.MethodPost, "/threads", map[string]any{}, &t); err != nil {
		return nil, err
	}
	return &filechat.Thread{ID: t.ID}, nil
}

func (s *ThreadService) DeleteThread(ctx context.Context, id string) error {
	if id == "" {
		return filechat.Errorf(filechat.EINVALID, "thread ID required")
	}
	return s.client.do(ctx, http.MethodDelete, "/threads/"+escape(id), nil, nil)
}

func (s *ThreadService) FindRuns(ctx context.Context, threadID string) ([]*filechat.Run, error) {
	if threadID == "" {
		return nil, filechat.Errorf(filechat.EINVALID, "thread ID required")
	}
	runs, err := listAll(ctx, s.client, "/threads/"+escape(threadID)+"/runs", func(r run) string { return r.ID })
	if err != nil {
		return nil, err
	}
	out := make([]*filechat.Run, 0, len(runs))
	for i := range runs {
		out = append(out, runs[i].toRun())
	}
	return out, nil
}

func (s *ThreadService) CancelRun(ctx context.Context, threadID, runID string) error {
	path := "/threads/" + escape(threadID) + "/runs/" + escape(runID) + "/cancel"
	return s.client.do(ctx, http.MethodPost, path, map[string]any{}, nil)
}

func (s *ThreadService) CreateMessage(ctx context.Context, threadID, content string) error {
	if threadID == "" {
		return filechat.Errorf(filechat.EINVALID, "thread ID required")
	}
	if content == "" {
		return filechat.Errorf(filechat.EINVALID, "message content required")
	}
	body := map[string]any{"role": "user", "content": content}
	return s.client.do(ctx, http.MethodPost, "/threads/"+escape(threadID)+"/messages", body, nil)
}

// StreamRun starts a streamed run. The HTTP request is sent when iteration
// begins and the response body is closed when iteration stops.
func (s *ThreadService) StreamRun(ctx context.Context, threadID, assistantID string) iter.Seq2[filechat.Event, error] {
	return func(yield func(filechat.Event, error) bool) {
		if threadID == "" || assistantID == "" {
			yield(filechat.Event{}, filechat.Errorf(filechat.EINVALID, "thread ID and assistant ID required"))
			return
		}

		body, err := s.openStream(ctx, threadID, assistantID)
		if err != nil {
			yield(filechat.Event{}, err)
			return
		}
		defer body.Close()

		for raw, err := range readEvents(body) {
			if err != nil {
				yield(filechat.Event{}, err)
				return
			}
			ev, err := decodeEvent(raw)
			if err != nil {
				yield(filechat.Event{}, err)
				return
			}
			if !yield(ev, nil) || ev.Type == filechat.EventDone {
				return
			}
		}
	}
}

func (s *ThreadService) openStream(ctx context.Context, threadID, assistantID string) (io.ReadCloser, error) {
	data, err := json.Marshal(map[string]any{"assistant_id": assistantID, "stream": true})
	if err != nil {
		return nil, err
	}

	req, err := s.client.newRequest(ctx, http.MethodPost, "/threads/"+escape(threadID)+"/runs", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := s.client.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, errorFromResponse(resp)
	}
	return resp.Body, nil
}
