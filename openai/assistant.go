package openai

import (
	"context"
	"net/http"

	"github.com/fwojciec/filechat"
)

// Ensure AssistantService implements filechat.AssistantService at compile time.
var _ filechat.AssistantService = (*AssistantService)(nil)

type tool struct {
	Type string `json:"type"`
}

type fileSearchResources struct {
	VectorStoreIDs []string `json:"vector_store_ids"`
}

type toolResources struct {
	FileSearch *fileSearchResources `json:"file_search,omitempty"`
}

type assistant struct {
	ID            string         `json:"id,omitempty"`
	Name          string         `json:"name,omitempty"`
	Instructions  string         `json:"instructions,omitempty"`
	Model         string         `json:"model,omitempty"`
	Tools         []tool         `json:"tools,omitempty"`
	ToolResources *toolResources `json:"tool_resources,omitempty"`
}

func (a *assistant) toAssistant() *filechat.Assistant {
	out := &filechat.Assistant{
		ID:           a.ID,
		Name:         a.Name,
		Instructions: a.Instructions,
		Model:        a.Model,
	}
	for _, t := range a.Tools {
		if t.Type == "file_search" {
			out.FileSearch = true
		}
	}
	if a.ToolResources != nil && a.ToolResources.FileSearch != nil {
		out.IndexIDs = a.ToolResources.FileSearch.VectorStoreIDs
	}
	return out
}

// AssistantService implements filechat.AssistantService.
type AssistantService struct {
	client *Client
}

// NewAssistantService creates a new AssistantService.
func NewAssistantService(client *Client) *AssistantService {
	return &AssistantService{client: client}
}

func (s *AssistantService) CreateAssistant(ctx context.Context, a *filechat.Assistant) error {
	if err := a.Validate(); err != nil {
		return err
	}

	req := assistant{Name: a.Name, Instructions: a.Instructions, Model: a.Model}
	if a.FileSearch {
		req.Tools = []tool{{Type: "file_search"}}
	}
	if len(a.IndexIDs) > 0 {
		req.ToolResources = &toolResources{FileSearch: &fileSearchResources{VectorStoreIDs: a.IndexIDs}}
	}

	var resp assistant
	if err := s.client.do(ctx, http.MethodPost, "/assistants", req, &resp); err != nil {
		return err
	}
	*a = *resp.toAssistant()
	return nil
}

func (s *AssistantService) UpdateAssistant(ctx context.Context, id string, upd filechat.AssistantUpdate) (*filechat.Assistant, error) {
	if id == "" {
		return nil, filechat.Errorf(filechat.EINVALID, "assistant ID required")
	}

	req := assistant{}
	if upd.Instructions != nil {
		req.Instructions = *upd.Instructions
	}
	if upd.IndexIDs != nil {
		req.ToolResources = &toolResources{FileSearch: &fileSearchResources{VectorStoreIDs: upd.IndexIDs}}
	}

	var resp assistant
	if err := s.client.do(ctx, http.MethodPost, "/assistants/"+escape(id), req, &resp); err != nil {
		return nil, err
	}
	return resp.toAssistant(), nil
}

func (s *AssistantService) FindAssistants(ctx context.Context) ([]*filechat.Assistant, error) {
	list, err := listAll(ctx, s.client, "/assistants", func(a assistant) string { return a.ID })
	if err != nil {
		return nil, err
	}
	out := make([]*filechat.Assistant, 0, len(list))
	for i := range list {
		out = append(out, list[i].toAssistant())
	}
	return out, nil
}

func (s *AssistantService) DeleteAssistant(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/assistants/"+escape(id), nil, nil)
}
