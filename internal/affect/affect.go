// Package affect correlates video-frame analysis signals with the interview
// question active at capture time. The sampler runs on its own cadence for
// the whole session and never blocks, or is blocked by, the dialogue.
package affect

import (
	"context"
	"sort"
	"time"
)

// Frame is one captured video frame.
type Frame struct {
	Image  []byte
	Width  int
	Height int
}

// Ready reports whether the frame carries usable pixels. A source that is
// still warming up hands back zero-dimension frames, which are skipped.
func (f Frame) Ready() bool {
	return len(f.Image) > 0 && f.Width > 0 && f.Height > 0
}

// FrameSource yields frames from the live video feed.
type FrameSource interface {
	Capture() (Frame, error)
}

// Analysis is the collaborator's verdict on a single frame.
type Analysis struct {
	Notable    bool    `json:"notable"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	ImageRef   string  `json:"image_ref"`
}

// Analyzer is the external frame-analysis collaborator. Cleanup lets it
// discard any per-session state once the session tears down.
type Analyzer interface {
	Analyze(ctx context.Context, sessionID string, frame Frame, questionIndex int) (*Analysis, error)
	Cleanup(ctx context.Context, sessionID string) error
}

// Highlight is a notable frame tied to the question that was active when the
// frame was submitted for analysis. Multiple highlights may accumulate for
// the same question index.
type Highlight struct {
	QuestionIndex int       `json:"question_index"`
	Question      string    `json:"question"`
	Score         float64   `json:"score"`
	Confidence    float64   `json:"confidence"`
	ImageRef      string    `json:"image_ref"`
	CapturedAt    time.Time `json:"captured_at"`
}

// TopPerQuestion reduces an accumulated highlight list to the single
// highest-scoring highlight per question index, ordered by question index.
// The full list stays persisted; this view is for report rendering.
func TopPerQuestion(highlights []Highlight) []Highlight {
	best := make(map[int]Highlight)
	for _, h := range highlights {
		cur, ok := best[h.QuestionIndex]
		if !ok || h.Score > cur.Score {
			best[h.QuestionIndex] = h
		}
	}

	out := make([]Highlight, 0, len(best))
	for _, h := range best {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].QuestionIndex < out[j].QuestionIndex
	})
	return out
}
