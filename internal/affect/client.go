package affect

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

const defaultAnalysisURL = "https://affect.intervu.dev/api/v1"

// Client talks to the frame-analysis collaborator over JSON HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates an analysis client. The endpoint can be overridden with
// INTERVU_AFFECT_URL.
func NewClient() *Client {
	baseURL := defaultAnalysisURL
	if v := os.Getenv("INTERVU_AFFECT_URL"); v != "" {
		baseURL = v
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type analyzeRequest struct {
	SessionID     string `json:"session_id"`
	Image         string `json:"image"` // base64 frame
	QuestionIndex int    `json:"question_index"`
}

type analyzeResponse struct {
	Analysis
	Message string `json:"message"`
}

// Analyze submits one frame and returns the collaborator's verdict.
func (c *Client) Analyze(ctx context.Context, sessionID string, frame Frame, questionIndex int) (*Analysis, error) {
	body, err := json.Marshal(analyzeRequest{
		SessionID:     sessionID,
		Image:         base64.StdEncoding.EncodeToString(frame.Image),
		QuestionIndex: questionIndex,
	})
	if err != nil {
		return nil, fmt.Errorf("encode analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze frame: %w", err)
	}
	defer resp.Body.Close()

	var out analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode analyze response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Message != "" {
			return nil, fmt.Errorf("analysis service: %s", out.Message)
		}
		return nil, fmt.Errorf("analysis service: HTTP %d", resp.StatusCode)
	}
	return &out.Analysis, nil
}

// Cleanup asks the collaborator to discard session-scoped state.
func (c *Client) Cleanup(ctx context.Context, sessionID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/sessions/"+sessionID, nil)
	if err != nil {
		return fmt.Errorf("build cleanup request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("cleanup session: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("analysis service: HTTP %d", resp.StatusCode)
	}
	return nil
}
