package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

const defaultDocStoreURL = "https://docs.intervu.dev/api/v1"

// Document is one uploadable report file.
type Document struct {
	Filename string            `json:"filename"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// DocStore uploads a document and returns its public reference URL.
type DocStore interface {
	Upload(ctx context.Context, doc Document) (string, error)
}

// HTTPDocStore talks to the document-store collaborator over JSON HTTP.
type HTTPDocStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPDocStore creates a client for the document store. The endpoint can
// be overridden with INTERVU_DOCSTORE_URL.
func NewHTTPDocStore() *HTTPDocStore {
	baseURL := defaultDocStoreURL
	if v := os.Getenv("INTERVU_DOCSTORE_URL"); v != "" {
		baseURL = v
	}
	return &HTTPDocStore{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// Upload submits the document and returns its public URL.
func (d *HTTPDocStore) Upload(ctx context.Context, doc Document) (string, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/documents", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload document: %w", err)
	}
	defer resp.Body.Close()

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		if out.Message != "" {
			return "", fmt.Errorf("document store: %s", out.Message)
		}
		return "", fmt.Errorf("document store: HTTP %d", resp.StatusCode)
	}
	if out.URL == "" {
		return "", fmt.Errorf("document store returned no URL")
	}
	return out.URL, nil
}
