// Package sandbox talks to an external code-execution service. The core
// assumes nothing about isolation or timeouts beyond "returns eventually or
// errors"; every run is classified by its stdout/stderr alone.
package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// Result is the raw outcome of one sandboxed run.
type Result struct {
	Stdout string
	Stderr string
}

// Output returns trimmed stdout, falling back to trimmed stderr when stdout
// is empty.
func (r Result) Output() string {
	if out := trimOutput(r.Stdout); out != "" {
		return out
	}
	return trimOutput(r.Stderr)
}

// Executor runs a source snippet in the given language.
type Executor interface {
	Execute(ctx context.Context, language, source string) (Result, error)
}

// Client is an Executor backed by a Piston-compatible HTTP execution API.
type Client struct {
	baseURL string
	http    *http.Client
}

const defaultBaseURL = "https://emkc.org/api/v2/piston"

// languageVersions pins the runtime version requested per language.
var languageVersions = map[string]string{
	"javascript": "18.15.0",
	"python":     "3.10.0",
}

// NewClient creates a Client. An empty baseURL selects the public Piston
// instance; INTERVU_SANDBOX_URL overrides both.
func NewClient(baseURL string) *Client {
	if u := os.Getenv("INTERVU_SANDBOX_URL"); u != "" {
		baseURL = u
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type executeRequest struct {
	Language string        `json:"language"`
	Version  string        `json:"version"`
	Files    []executeFile `json:"files"`
}

type executeFile struct {
	Content string `json:"content"`
}

type executeResponse struct {
	Run struct {
		Stdout string `json:"stdout"`
		Stderr string `json:"stderr"`
	} `json:"run"`
	Message string `json:"message"`
}

func (c *Client) Execute(ctx context.Context, language, source string) (Result, error) {
	version := languageVersions[language]
	if version == "" {
		version = "*"
	}

	body, err := json.Marshal(executeRequest{
		Language: language,
		Version:  version,
		Files:    []executeFile{{Content: source}},
	})
	if err != nil {
		return Result{}, fmt.Errorf("marshal execute request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/execute", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build execute request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("execute request: unexpected status %d", resp.StatusCode)
	}

	var out executeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("decode execute response: %w", err)
	}
	if out.Message != "" {
		return Result{}, fmt.Errorf("execution service: %s", out.Message)
	}

	return Result{Stdout: out.Run.Stdout, Stderr: out.Run.Stderr}, nil
}

func trimOutput(s string) string {
	return strings.TrimSpace(s)
}
