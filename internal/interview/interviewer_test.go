package interview

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/intervu-dev/intervu/internal/llm"
)

func TestClampWords(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"under limit", "tell me about yourself", 25, "tell me about yourself"},
		{"exactly limit", "one two three", 3, "one two three"},
		{"over limit", "one two three four", 3, "one two three"},
		{"collapses runs", "a  b\tc\nd", 2, "a b"},
		{"empty", "", 25, ""},
		{"zero limit", "anything", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampWords(tt.in, tt.limit); got != tt.want {
				t.Errorf("ClampWords(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}

func TestNextQuestion_ClampsLongReply(t *testing.T) {
	long := strings.Repeat("word ", 40)
	mock := llm.NewMockProvider(llm.TextResponse(long))
	iv := NewInterviewer(mock, DefaultConfig())

	s := testSession()
	q, err := iv.NextQuestion(context.Background(), s)
	if err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	if n := len(strings.Fields(q)); n > DefaultConfig().WordLimit {
		t.Errorf("question has %d words, limit %d", n, DefaultConfig().WordLimit)
	}
}

func TestNextQuestion_ErrorLeavesSessionUntouched(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	iv := NewInterviewer(mock, DefaultConfig())

	s := testSession()
	before := len(s.Messages)
	if _, err := iv.NextQuestion(context.Background(), s); err == nil {
		t.Fatal("expected error")
	}
	if len(s.Messages) != before || s.Stage != StageIntro {
		t.Error("failed generation mutated the session")
	}
	if mock.CallCount() != 1 {
		t.Errorf("CallCount = %d, want 1 (no retry at this layer)", mock.CallCount())
	}
}

func TestNextQuestion_RefusesNonAskingStage(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("should not be used"))
	iv := NewInterviewer(mock, DefaultConfig())

	for _, stage := range []Stage{StageCoding, StageEnded} {
		s := testSession()
		s.Stage = stage
		if _, err := iv.NextQuestion(context.Background(), s); err == nil {
			t.Errorf("stage %v: expected error", stage)
		}
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider called %d times for non-asking stages", mock.CallCount())
	}
}

func waitCritique(t *testing.T, c *CritiqueService) *Feedback {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if fb, ok := c.Consume(); ok {
			return fb
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("critique never resolved")
	return nil
}

func TestCritique_ParsesStructuredFeedback(t *testing.T) {
	payload, _ := json.Marshal(Feedback{Suggestion: "quantify the impact", Example: "cut p99 latency by 40%"})
	mock := llm.NewMockProvider(llm.MockResponse{Content: payload})
	c := NewCritiqueService(mock, DefaultConfig())

	c.Request(context.Background(), "Q?", "A")
	fb := waitCritique(t, c)
	if fb.Suggestion != "quantify the impact" || fb.Example == "" {
		t.Errorf("feedback = %+v", fb)
	}
}

func TestCritique_FallbackOnProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	cfg := DefaultConfig()
	c := NewCritiqueService(mock, cfg)

	c.Request(context.Background(), "Q?", "A")
	fb := waitCritique(t, c)
	if fb.Suggestion != cfg.FallbackSuggestion {
		t.Errorf("Suggestion = %q, want fallback", fb.Suggestion)
	}
}

func TestCritique_FallbackOnMalformedPayload(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"unrelated": true}`)})
	cfg := DefaultConfig()
	c := NewCritiqueService(mock, cfg)

	c.Request(context.Background(), "Q?", "A")
	fb := waitCritique(t, c)
	if fb.Suggestion != cfg.FallbackSuggestion {
		t.Errorf("Suggestion = %q, want fallback", fb.Suggestion)
	}
}

func TestCritique_ConsumeClearsSlot(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("ignored"))
	c := NewCritiqueService(mock, DefaultConfig())

	c.Request(context.Background(), "Q?", "A")
	waitCritique(t, c)
	if _, ok := c.Consume(); ok {
		t.Error("second Consume returned a stale critique")
	}
}
