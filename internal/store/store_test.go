package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/intervu-dev/intervu/internal/affect"
	"github.com/intervu-dev/intervu/internal/coding"
	"github.com/intervu-dev/intervu/internal/interview"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(id string) *SessionRecord {
	return &SessionRecord{
		ID:        id,
		Role:      "Backend Engineer",
		Company:   "startup",
		Stage:     interview.StageIntro.String(),
		StartedAt: time.Now().UTC().Truncate(time.Second),
		Messages: []interview.Message{
			{Sender: interview.SenderInterviewer, Text: "Tell me about yourself."},
			{Sender: interview.SenderCandidate, Text: "I build backends."},
		},
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSessionSaveAndGet(t *testing.T) {
	repo := openTestStore(t).Sessions()
	ctx := context.Background()

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) err = %v, want ErrNotFound", err)
	}

	rec := testRecord("s1")
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Role != rec.Role || got.Stage != rec.Stage || got.Complete {
		t.Errorf("got %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[1].Text != "I build backends." {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestSessionSave_UpsertsCheckpoint(t *testing.T) {
	repo := openTestStore(t).Sessions()
	ctx := context.Background()

	rec := testRecord("s1")
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}

	rec.Stage = interview.StageTechnical.String()
	rec.Messages = append(rec.Messages, interview.Message{
		Sender: interview.SenderInterviewer, Text: "Explain database indexing.",
	})
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Stage != interview.StageTechnical.String() || len(got.Messages) != 3 {
		t.Errorf("checkpoint not applied: stage=%s messages=%d", got.Stage, len(got.Messages))
	}
}

func TestSessionComplete(t *testing.T) {
	repo := openTestStore(t).Sessions()
	ctx := context.Background()

	if err := repo.Save(ctx, testRecord("s1")); err != nil {
		t.Fatal(err)
	}

	data := CompleteData{
		ReportURL: "https://docs.example.com/report-s1.md",
		Messages:  testRecord("s1").Messages,
		Solved: []coding.SolvedProblem{
			{Problem: coding.Problem{Title: "Two Sum"}, Skipped: true},
		},
		Highlights: []affect.Highlight{{QuestionIndex: 1, Score: 0.7}},
	}
	if err := repo.Complete(ctx, "s1", data); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	got, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Complete || got.ReportURL != data.ReportURL {
		t.Errorf("record = %+v", got)
	}
	if got.Stage != interview.StageEnded.String() || got.EndedAt.IsZero() {
		t.Errorf("stage=%s endedAt=%v", got.Stage, got.EndedAt)
	}
	if len(got.Solved) != 1 || len(got.Highlights) != 1 {
		t.Errorf("solved=%d highlights=%d", len(got.Solved), len(got.Highlights))
	}

	// A later checkpoint must not downgrade a completed record.
	stale := testRecord("s1")
	stale.Stage = interview.StageCoding.String()
	if err := repo.Save(ctx, stale); err != nil {
		t.Fatal(err)
	}
	got, _ = repo.Get(ctx, "s1")
	if !got.Complete || got.Stage != interview.StageEnded.String() {
		t.Error("checkpoint overwrote completed record")
	}
}

func TestSessionComplete_MissingRecord(t *testing.T) {
	repo := openTestStore(t).Sessions()
	err := repo.Complete(context.Background(), "nope", CompleteData{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSessionList_NewestFirst(t *testing.T) {
	repo := openTestStore(t).Sessions()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"old", "mid", "new"} {
		rec := testRecord(id)
		rec.StartedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.Save(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != "new" || got[1].ID != "mid" {
		ids := make([]string, len(got))
		for i, r := range got {
			ids[i] = r.ID
		}
		t.Errorf("List = %v, want [new mid]", ids)
	}
}
