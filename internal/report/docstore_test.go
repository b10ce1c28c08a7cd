package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func docStoreAt(t *testing.T, handler http.HandlerFunc) *HTTPDocStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("INTERVU_DOCSTORE_URL", srv.URL)
	return NewHTTPDocStore()
}

func TestHTTPDocStore_Upload(t *testing.T) {
	d := docStoreAt(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var doc Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if doc.Filename != "report.md" || doc.Metadata["session"] != "s1" {
			t.Errorf("document = %+v", doc)
		}
		json.NewEncoder(w).Encode(uploadResponse{URL: "https://cdn.example.com/report.md"})
	})

	url, err := d.Upload(context.Background(), Document{
		Filename: "report.md",
		Content:  "# hi",
		Metadata: map[string]string{"session": "s1"},
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "https://cdn.example.com/report.md" {
		t.Errorf("url = %q", url)
	}
}

func TestHTTPDocStore_ServiceError(t *testing.T) {
	d := docStoreAt(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInsufficientStorage)
		json.NewEncoder(w).Encode(uploadResponse{Message: "quota exceeded"})
	})

	if _, err := d.Upload(context.Background(), Document{Filename: "r.md"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestHTTPDocStore_MissingURL(t *testing.T) {
	d := docStoreAt(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(uploadResponse{})
	})

	if _, err := d.Upload(context.Background(), Document{Filename: "r.md"}); err == nil {
		t.Fatal("expected error for empty URL")
	}
}
