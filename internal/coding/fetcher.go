package coding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/intervu-dev/intervu/internal/llm"
)

var errMissingTitle = errors.New("problem has no title")

// Fetcher obtains the next coding problem. Implementations must always
// return a usable problem — falling back to a stub rather than failing the
// round.
type Fetcher interface {
	Fetch(ctx context.Context) (*Problem, Shape, error)
}

// LLMFetcher fetches problems from the code-problem collaborator. It first
// requests structured output; if the provider cannot honor the schema it
// retries schemaless and extracts an embedded JSON block from the free text.
type LLMFetcher struct {
	provider llm.Provider
	cfg      FetchConfig
}

// FetchConfig tunes problem generation.
type FetchConfig struct {
	Difficulty  string
	MaxTokens   int
	Temperature float64
}

// DefaultFetchConfig returns interview-friendly problem settings.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		Difficulty:  "easy",
		MaxTokens:   1200,
		Temperature: 0.8,
	}
}

// NewFetcher creates an LLMFetcher.
func NewFetcher(provider llm.Provider, cfg FetchConfig) *LLMFetcher {
	return &LLMFetcher{provider: provider, cfg: cfg}
}

// Fetch requests a new problem. The error return is advisory (it reports
// why a degraded shape was used); the problem pointer is always non-nil
// unless the collaborator was entirely unreachable.
func (f *LLMFetcher) Fetch(ctx context.Context) (*Problem, Shape, error) {
	ctx = llm.WithPurpose(ctx, "coding-problem")

	// Preferred path: native structured output.
	resp, err := f.provider.Generate(ctx, f.buildRequest(true))
	if err == nil {
		if p, perr := ParseProblem(resp.Content); perr == nil {
			return p, ShapeStructured, nil
		}
	}

	// Degraded path: free text with best-effort extraction.
	resp, err = f.provider.Generate(ctx, f.buildRequest(false))
	if err != nil {
		return nil, ShapeStub, fmt.Errorf("problem generation: %w", err)
	}

	text := resp.Text()
	if block, ok := ExtractJSONBlock(text); ok {
		if p, perr := ParseProblem(block); perr == nil {
			return p, ShapeExtracted, nil
		}
	}

	return StubProblem(text), ShapeStub, nil
}

func (f *LLMFetcher) buildRequest(structured bool) llm.Request {
	req := llm.Request{
		System: problemSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: f.buildUserMessage()},
		},
		MaxTokens:   f.cfg.MaxTokens,
		Temperature: f.cfg.Temperature,
	}
	if structured {
		req.Schema = ProblemSchema
	}
	return req
}

func (f *LLMFetcher) buildUserMessage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Difficulty: %s\n", f.cfg.Difficulty)
	b.WriteString("Generate one new coding problem now.")
	return b.String()
}

const problemSystemPrompt = `You create small coding problems for live mock interviews.

Rules:
- One self-contained problem solvable in under 15 minutes in any mainstream language.
- The candidate implements a single function. Give its name and parameter signature.
- Provide 2 to 4 test cases. "input" is the literal argument list as source text (e.g. "[1,2,3], 5"), "expected" is the exact expected output when printed.
- Expected outputs must be deterministic and compare as exact strings.
- The description must not reveal the solution.`

// ProblemSchema constrains structured problem responses.
var ProblemSchema = &llm.Schema{
	Name:        "coding-problem",
	Description: "A single interview coding problem with test cases",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":         map[string]any{"type": "string"},
			"description":   map[string]any{"type": "string"},
			"function_name": map[string]any{"type": "string"},
			"signature":     map[string]any{"type": "string"},
			"example":       map[string]any{"type": "string"},
			"tests": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"input":    map[string]any{"type": "string"},
						"expected": map[string]any{"type": "string"},
					},
					"required":             []any{"input", "expected"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "description", "function_name", "signature", "example", "tests"},
		"additionalProperties": false,
	},
}
