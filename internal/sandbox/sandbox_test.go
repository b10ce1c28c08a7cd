package sandbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientExecute(t *testing.T) {
	var gotReq executeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/execute" {
			t.Errorf("path = %q, want /execute", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"run": map[string]any{"stdout": "42\n", "stderr": ""},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	res, err := c.Execute(context.Background(), "python", "print(42)")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Output() != "42" {
		t.Errorf("Output() = %q, want %q", res.Output(), "42")
	}
	if gotReq.Language != "python" {
		t.Errorf("language = %q, want python", gotReq.Language)
	}
	if len(gotReq.Files) != 1 || gotReq.Files[0].Content != "print(42)" {
		t.Errorf("files = %+v, want the submitted source", gotReq.Files)
	}
}

func TestClientExecute_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"message": "runtime not found"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Execute(context.Background(), "cobol", "x"); err == nil {
		t.Fatal("expected error for service-level failure")
	}
}

func TestClientExecute_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Execute(context.Background(), "python", "x"); err == nil {
		t.Fatal("expected error for HTTP failure")
	}
}

func TestResultOutput_StderrFallback(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{"stdout wins", Result{Stdout: "ok\n", Stderr: "noise"}, "ok"},
		{"stderr fallback", Result{Stdout: "", Stderr: "Traceback\n"}, "Traceback"},
		{"whitespace only stdout", Result{Stdout: "  \n", Stderr: "err"}, "err"},
		{"both empty", Result{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.res.Output(); got != tt.want {
				t.Errorf("Output() = %q, want %q", got, tt.want)
			}
		})
	}
}
