// Package advisor turns questionnaire submissions and chat turns into calls
// against an external generative provider and normalizes the results.
package advisor

import "context"

// Schema type names understood by structured-generation providers.
const (
	TypeArray   = "ARRAY"
	TypeObject  = "OBJECT"
	TypeString  = "STRING"
	TypeBoolean = "BOOLEAN"
)

// Schema is a minimal response-shape description passed to the provider for
// schema-constrained generation.
type Schema struct {
	Type        string             `json:"type,omitempty"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Turn is one prior exchange of a conversation.
type Turn struct {
	Role string
	Text string
}

// StructuredRequest asks the provider for JSON matching Schema.
type StructuredRequest struct {
	SystemInstruction string
	Prompt            string
	Schema            *Schema
}

// ChatRequest asks the provider for a conversational reply.
type ChatRequest struct {
	SystemInstruction string
	History           []Turn
	Message           string
}

// Provider is implemented by concrete generative backends. Keeping the
// surface to these two calls keeps provider choice out of the core.
type Provider interface {
	// GenerateJSON returns the raw JSON text of a schema-constrained
	// completion.
	GenerateJSON(ctx context.Context, req StructuredRequest) (string, error)

	// Chat returns the reply text for a conversational completion.
	Chat(ctx context.Context, req ChatRequest) (string, error)
}
