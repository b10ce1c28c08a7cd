package interview

import (
	"context"
	"fmt"

	"github.com/intervu-dev/intervu/internal/llm"
)

// Interviewer generates interviewer questions under the stage-specific
// instruction contracts.
type Interviewer struct {
	provider llm.Provider
	cfg      Config
}

// NewInterviewer creates an Interviewer backed by the given provider.
func NewInterviewer(provider llm.Provider, cfg Config) *Interviewer {
	return &Interviewer{provider: provider, cfg: cfg}
}

// NextQuestion generates the next question for the session's current stage.
// The returned text is already clamped to the word limit; it is not yet
// appended to the log — the caller appends it once it is about to be spoken.
//
// A generation failure leaves the session untouched: the stage does not
// advance and no retry happens here. The candidate has to act again.
func (iv *Interviewer) NextQuestion(ctx context.Context, s *Session) (string, error) {
	if !s.Stage.Asks() {
		return "", fmt.Errorf("stage %s does not ask generated questions", s.Stage)
	}

	ctx = llm.WithPurpose(ctx, "question")
	resp, err := iv.provider.Generate(ctx, buildQuestionRequest(s, iv.cfg))
	if err != nil {
		return "", fmt.Errorf("question generation: %w", err)
	}

	text := ClampWords(resp.Text(), iv.cfg.WordLimit)
	if text == "" {
		return "", fmt.Errorf("question generation: empty response")
	}
	return text, nil
}
