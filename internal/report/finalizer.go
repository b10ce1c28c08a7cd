package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/intervu-dev/intervu/internal/affect"
	"github.com/intervu-dev/intervu/internal/interview"
	"github.com/intervu-dev/intervu/internal/store"
)

// Finalizer ends a session: tear down capture resources, upload the report,
// then mark the session record complete. The record is only patched after
// the upload succeeds; an upload failure leaves the session incomplete and
// retryable. A session finalizes at most once.
type Finalizer struct {
	docs     DocStore
	sessions store.SessionRepo
	logger   *log.Logger

	mu       sync.Mutex
	done     bool
	tornDown bool
	url      string
}

// NewFinalizer creates a finalizer over the given collaborators.
func NewFinalizer(docs DocStore, sessions store.SessionRepo, logger *log.Logger) *Finalizer {
	return &Finalizer{docs: docs, sessions: sessions, logger: logger}
}

// Finalize runs teardown, uploads the report, and completes the session
// record, returning the report URL. teardown runs exactly once even across
// retries; it must release capture resources in order (speech, sampler,
// devices). A second call after success returns the stored URL without
// re-submitting anything.
func (f *Finalizer) Finalize(ctx context.Context, s *interview.Session, highlights []affect.Highlight, teardown func()) (string, error) {
	f.mu.Lock()
	if f.done {
		url := f.url
		f.mu.Unlock()
		return url, nil
	}
	runTeardown := !f.tornDown
	f.tornDown = true
	f.mu.Unlock()

	if runTeardown && teardown != nil {
		teardown()
	}
	s.End()

	content := Build(s, highlights)
	doc := Document{
		Filename: fmt.Sprintf("interview-%s.md", s.ID),
		Content:  content,
		Metadata: map[string]string{
			"session": s.ID,
			"role":    s.Role,
		},
	}

	url, err := f.docs.Upload(ctx, doc)
	if err != nil {
		if f.logger != nil {
			f.logger.Error("report upload failed", "session", s.ID, "err", err)
		}
		return "", fmt.Errorf("upload report: %w", err)
	}

	data := store.CompleteData{
		ReportURL:  url,
		Messages:   s.Messages,
		Solved:     s.Solved,
		Highlights: highlights,
		EndedAt:    time.Now(),
	}
	if err := f.sessions.Complete(ctx, s.ID, data); err != nil {
		return "", fmt.Errorf("complete session record: %w", err)
	}

	f.mu.Lock()
	f.done = true
	f.url = url
	f.mu.Unlock()

	if f.logger != nil {
		f.logger.Info("session finalized", "session", s.ID, "report", url)
	}
	return url, nil
}

// Done reports whether the session has been finalized.
func (f *Finalizer) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}
