package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction every generation collaborator sits behind:
// interviewer questions, answer critiques, and coding-problem generation all
// go through Generate.
type Provider interface {
	// Generate sends a prompt to the model and returns its response. When the
	// request carries a Schema, the provider uses its native structured-output
	// mechanism and the response Content is the validated JSON. Without a
	// Schema the Content is the raw text of the reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured for.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	// System is the instruction contract for this call. Stage-specific
	// interviewer instructions, the critique instruction, and the problem
	// generation instruction each supply their own.
	System string

	// Messages is the conversation so far, oldest first. The interviewer
	// passes the whole dialogue; single-turn calls pass one user message.
	Messages []Message

	// Schema, when set, constrains the response to a JSON structure.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0. Zero value means
	// deterministic.
	Temperature float64
}

// Message is a single conversation turn as sent to the model.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name for
	// OpenAI). Kebab-case, e.g. "coding-problem".
	Name string

	// Description tells the model what the structure represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the generated output: validated JSON when the request had a
	// Schema, raw reply text otherwise.
	Content json.RawMessage

	// Usage reports token consumption for this call.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens", or "error".
	StopReason string
}

// Usage tracks token consumption for a single call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Text returns the response content as plain text, stripping the quoting if
// the provider wrapped a bare string in JSON.
func (r *Response) Text() string {
	var s string
	if err := json.Unmarshal(r.Content, &s); err == nil {
		return s
	}
	return string(r.Content)
}
