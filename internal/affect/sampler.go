package affect

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultInterval is the sampling cadence.
const DefaultInterval = time.Second

// Sampler captures one frame per interval and submits it to the analysis
// collaborator fire-and-forget: ticks never wait for earlier analysis calls,
// so the cadence holds even while other network calls are outstanding.
// Capture and analysis failures are counted and logged, never fatal.
type Sampler struct {
	sessionID string
	source    FrameSource
	analyzer  Analyzer
	interval  time.Duration
	logger    *log.Logger

	mu         sync.Mutex
	question   string
	questionIx int
	highlights []Highlight
	errs       int

	stop     chan struct{}
	stopOnce sync.Once
	started  bool
	wg       sync.WaitGroup
}

// NewSampler creates a sampler for one session. It does not start ticking
// until Start is called.
func NewSampler(sessionID string, source FrameSource, analyzer Analyzer, logger *log.Logger) *Sampler {
	return &Sampler{
		sessionID:  sessionID,
		source:     source,
		analyzer:   analyzer,
		interval:   DefaultInterval,
		logger:     logger,
		questionIx: -1,
		stop:       make(chan struct{}),
	}
}

// SetInterval overrides the sampling cadence. Must be called before Start.
func (s *Sampler) SetInterval(d time.Duration) {
	if d > 0 {
		s.interval = d
	}
}

// SetQuestion records the question currently being asked. Ticks tag their
// submission with whatever was set most recently at capture time.
func (s *Sampler) SetQuestion(index int, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questionIx = index
	s.question = text
}

// Start launches the sampling loop. Calling Start twice is a no-op.
func (s *Sampler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop(ctx)
}

func (s *Sampler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// tick captures one frame and hands it to the analyzer on its own goroutine.
// The question index is snapshotted here, at submission time, so a slow
// analysis response still lands on the question that was on screen.
func (s *Sampler) tick(ctx context.Context) {
	frame, err := s.source.Capture()
	if err != nil {
		s.countError("frame capture failed", err)
		return
	}
	if !frame.Ready() {
		return
	}

	s.mu.Lock()
	ix, question := s.questionIx, s.question
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		analysis, err := s.analyzer.Analyze(ctx, s.sessionID, frame, ix)
		if err != nil {
			s.countError("frame analysis failed", err)
			return
		}
		if analysis == nil || !analysis.Notable {
			return
		}

		s.mu.Lock()
		s.highlights = append(s.highlights, Highlight{
			QuestionIndex: ix,
			Question:      question,
			Score:         analysis.Score,
			Confidence:    analysis.Confidence,
			ImageRef:      analysis.ImageRef,
			CapturedAt:    time.Now(),
		})
		s.mu.Unlock()
	}()
}

func (s *Sampler) countError(msg string, err error) {
	s.mu.Lock()
	s.errs++
	n := s.errs
	s.mu.Unlock()
	if s.logger != nil {
		s.logger.Debug(msg, "session", s.sessionID, "errors", n, "err", err)
	}
}

// Stop halts the loop, waits for in-flight analysis calls, and issues a
// best-effort cleanup call to the analyzer. Safe to call more than once.
func (s *Sampler) Stop(ctx context.Context) {
	s.stopOnce.Do(func() {
		close(s.stop)
		s.wg.Wait()

		if err := s.analyzer.Cleanup(ctx, s.sessionID); err != nil && s.logger != nil {
			s.logger.Debug("analysis cleanup failed", "session", s.sessionID, "err", err)
		}
	})
}

// Highlights returns a copy of the accumulated highlight list.
func (s *Sampler) Highlights() []Highlight {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Highlight, len(s.highlights))
	copy(out, s.highlights)
	return out
}

// ErrorCount returns the number of capture and analysis failures so far.
func (s *Sampler) ErrorCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs
}
