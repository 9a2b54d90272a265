package filechat

import "context"

// DefaultInstructions direct the assistant to answer from indexed documents.
const DefaultInstructions = "You are an assistant who can help users find files on their computer, " +
	"summarize them and provide information about the files. You can search for files by name, " +
	"type, content or semantics. DO NOT show any sensitive information like name, address, SSN, " +
	"date of birth, in your responses. Hide and redact them if needed. If the question is not " +
	"about the documents or can't be found in the documents, you can use your own knowledge to " +
	"provide the answer."

// Default resource settings.
const (
	DefaultAssistantName = "File Assistant"
	DefaultIndexName     = "AssistantRAGFileStore"
	DefaultModel         = "gpt-4o"
)

// Assistant is a remote agent bound to instructions, a model and an index.
type Assistant struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Instructions string   `json:"instructions"`
	Model        string   `json:"model"`
	FileSearch   bool     `json:"fileSearch"`
	IndexIDs     []string `json:"indexIds"`
}

// Validate returns an error if the assistant contains invalid fields.
func (a *Assistant) Validate() error {
	if a.Name == "" {
		return Errorf(EINVALID, "assistant name required")
	}
	if a.Model == "" {
		return Errorf(EINVALID, "assistant model required")
	}
	return nil
}

// AssistantUpdate represents fields that can be updated on an assistant.
type AssistantUpdate struct {
	Instructions *string  `json:"instructions"`
	IndexIDs     []string `json:"indexIds"`
}

// AssistantService manages remote assistants.
type AssistantService interface {
	// CreateAssistant creates an assistant and sets its ID.
	CreateAssistant(ctx context.Context, assistant *Assistant) error

	// UpdateAssistant updates an existing assistant.
	// Returns ENOTFOUND if the assistant does not exist.
	UpdateAssistant(ctx context.Context, id string, upd AssistantUpdate) (*Assistant, error)

	// FindAssistants lists every assistant visible to the account.
	FindAssistants(ctx context.Context) ([]*Assistant, error)

	// DeleteAssistant permanently removes an assistant.
	DeleteAssistant(ctx context.Context, id string) error
}
