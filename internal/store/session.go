package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/intervu-dev/intervu/internal/affect"
	"github.com/intervu-dev/intervu/internal/coding"
	"github.com/intervu-dev/intervu/internal/interview"
)

// ErrNotFound is returned when no session exists for the requested id.
var ErrNotFound = errors.New("session not found")

// SessionRecord is one persisted interview run. Messages, solved problems
// and highlights are stored as JSON columns; replay does not need relational
// access to individual turns.
type SessionRecord struct {
	ID         string
	Role       string
	Company    string
	Stage      string
	StartedAt  time.Time
	EndedAt    time.Time
	Complete   bool
	ReportURL  string
	Messages   []interview.Message
	Solved     []coding.SolvedProblem
	Highlights []affect.Highlight
}

// CompleteData is the finalization payload. The record is patched with it
// only after the report upload has succeeded.
type CompleteData struct {
	ReportURL  string
	Messages   []interview.Message
	Solved     []coding.SolvedProblem
	Highlights []affect.Highlight
	EndedAt    time.Time
}

// SessionRepo persists interview sessions.
type SessionRepo interface {
	// Save upserts a checkpoint of the session. Complete rows are never
	// downgraded by a later checkpoint.
	Save(ctx context.Context, rec *SessionRecord) error

	// Get returns the session by id, or ErrNotFound.
	Get(ctx context.Context, id string) (*SessionRecord, error)

	// List returns the most recent sessions, newest first.
	List(ctx context.Context, limit int) ([]*SessionRecord, error)

	// Complete marks the session finished with its report and final state.
	Complete(ctx context.Context, id string, data CompleteData) error
}

type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) Save(ctx context.Context, rec *SessionRecord) error {
	messages, solved, highlights, err := marshalPayload(rec.Messages, rec.Solved, rec.Highlights)
	if err != nil {
		return err
	}

	var endedAt any
	if !rec.EndedAt.IsZero() {
		endedAt = rec.EndedAt
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO sessions (id, role, company, stage, started_at, ended_at, messages, solved, highlights)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	stage      = excluded.stage,
	ended_at   = excluded.ended_at,
	messages   = excluded.messages,
	solved     = excluded.solved,
	highlights = excluded.highlights
WHERE complete = 0`,
		rec.ID, rec.Role, rec.Company, rec.Stage, rec.StartedAt, endedAt,
		messages, solved, highlights)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*SessionRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, role, company, stage, started_at, ended_at, complete, report_url, messages, solved, highlights
FROM sessions WHERE id = ?`, id)

	rec, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return rec, nil
}

func (r *sessionRepo) List(ctx context.Context, limit int) ([]*SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, role, company, stage, started_at, ended_at, complete, report_url, messages, solved, highlights
FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []*SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}

func (r *sessionRepo) Complete(ctx context.Context, id string, data CompleteData) error {
	messages, solved, highlights, err := marshalPayload(data.Messages, data.Solved, data.Highlights)
	if err != nil {
		return err
	}

	endedAt := data.EndedAt
	if endedAt.IsZero() {
		endedAt = time.Now()
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE sessions SET
	stage      = ?,
	complete   = 1,
	report_url = ?,
	ended_at   = ?,
	messages   = ?,
	solved     = ?,
	highlights = ?
WHERE id = ?`,
		interview.StageEnded.String(), data.ReportURL, endedAt,
		messages, solved, highlights, id)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("complete session %s: %w", id, ErrNotFound)
	}
	return nil
}

// RecordFromSession builds a checkpoint record from live session state.
func RecordFromSession(s *interview.Session, highlights []affect.Highlight) *SessionRecord {
	rec := &SessionRecord{
		ID:         s.ID,
		Role:       s.Role,
		Company:    s.Company,
		Stage:      s.Stage.String(),
		StartedAt:  s.StartedAt,
		Messages:   s.Messages,
		Solved:     s.Solved,
		Highlights: highlights,
	}
	if s.Ended {
		rec.EndedAt = time.Now()
	}
	return rec
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*SessionRecord, error) {
	var (
		rec        SessionRecord
		endedAt    sql.NullTime
		complete   int
		messages   []byte
		solved     []byte
		highlights []byte
	)
	err := row.Scan(&rec.ID, &rec.Role, &rec.Company, &rec.Stage, &rec.StartedAt,
		&endedAt, &complete, &rec.ReportURL, &messages, &solved, &highlights)
	if err != nil {
		return nil, err
	}

	rec.Complete = complete != 0
	if endedAt.Valid {
		rec.EndedAt = endedAt.Time
	}
	if err := json.Unmarshal(messages, &rec.Messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	if err := json.Unmarshal(solved, &rec.Solved); err != nil {
		return nil, fmt.Errorf("decode solved problems: %w", err)
	}
	if err := json.Unmarshal(highlights, &rec.Highlights); err != nil {
		return nil, fmt.Errorf("decode highlights: %w", err)
	}
	return &rec, nil
}

func marshalPayload(messages []interview.Message, solved []coding.SolvedProblem, highlights []affect.Highlight) ([]byte, []byte, []byte, error) {
	if messages == nil {
		messages = []interview.Message{}
	}
	if solved == nil {
		solved = []coding.SolvedProblem{}
	}
	if highlights == nil {
		highlights = []affect.Highlight{}
	}

	m, err := json.Marshal(messages)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encode messages: %w", err)
	}
	s, err := json.Marshal(solved)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encode solved problems: %w", err)
	}
	h, err := json.Marshal(highlights)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encode highlights: %w", err)
	}
	return m, s, h, nil
}
