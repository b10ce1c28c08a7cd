package interview

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/intervu-dev/intervu/internal/llm"
)

// CritiqueService generates answer critiques asynchronously. A critique is
// requested alongside each new interviewer question and attaches to the most
// recent candidate message once it resolves; a failure degrades to the
// configured fallback suggestion and never blocks the dialogue.
type CritiqueService struct {
	provider llm.Provider
	cfg      Config

	mu      sync.Mutex
	pending *Feedback
	ready   bool
}

// NewCritiqueService creates a critique service.
func NewCritiqueService(provider llm.Provider, cfg Config) *CritiqueService {
	return &CritiqueService{provider: provider, cfg: cfg}
}

// Request starts async critique generation for the given question/answer
// pair. Only one critique is pending at a time; a newer request replaces an
// unconsumed older result (latest-wins).
func (c *CritiqueService) Request(ctx context.Context, question, answer string) {
	go func() {
		fb := c.generate(ctx, question, answer)
		c.mu.Lock()
		defer c.mu.Unlock()
		c.pending = fb
		c.ready = true
	}()
}

// Consume returns the pending critique if one is ready, clearing the slot.
func (c *CritiqueService) Consume() (*Feedback, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		return nil, false
	}
	fb := c.pending
	c.pending = nil
	c.ready = false
	return fb, fb != nil
}

// generate never returns nil: critique failure falls back to the generic
// suggestion so the dialogue is unaffected.
func (c *CritiqueService) generate(ctx context.Context, question, answer string) *Feedback {
	ctx = llm.WithPurpose(ctx, "critique")

	req := llm.Request{
		System: critiqueSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildCritiqueMessage(question, answer)},
		},
		Schema:      CritiqueSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return &Feedback{Suggestion: c.cfg.FallbackSuggestion}
	}

	var fb Feedback
	if err := json.Unmarshal(resp.Content, &fb); err != nil || fb.Suggestion == "" {
		return &Feedback{Suggestion: c.cfg.FallbackSuggestion}
	}
	return &fb
}
