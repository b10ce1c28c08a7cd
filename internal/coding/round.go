package coding

import (
	"context"
	"time"
)

// MaxAttempts is the number of problems attempted (solved or skipped) before
// a round closes.
const MaxAttempts = 3

// Round manages the lifecycle of the coding stage: one problem at a time, an
// attempt counter, and the advance/close decision. Failed runs do not count
// as attempts — only a full pass or an explicit skip moves the counter.
type Round struct {
	fetcher Fetcher
	runner  *Runner

	problem  *Problem
	shape    Shape
	attempts int
}

// NewRound creates a Round.
func NewRound(fetcher Fetcher, runner *Runner) *Round {
	return &Round{fetcher: fetcher, runner: runner}
}

// Problem returns the problem currently presented, nil before the first
// fetch.
func (r *Round) Problem() *Problem {
	return r.problem
}

// Shape reports how the current problem was obtained.
func (r *Round) Shape() Shape {
	return r.shape
}

// Attempts returns the number of recorded attempts so far.
func (r *Round) Attempts() int {
	return r.attempts
}

// Done reports whether the round has closed (exactly MaxAttempts attempts).
func (r *Round) Done() bool {
	return r.attempts >= MaxAttempts
}

// Fetch obtains the next problem and makes it current. The round always
// ends up holding some problem object; the error reports degraded fetches
// where even the stub path failed to reach the collaborator.
func (r *Round) Fetch(ctx context.Context) error {
	p, shape, err := r.fetcher.Fetch(ctx)
	if p == nil {
		// Total collaborator failure. Hold a bare stub so the round state
		// stays usable while the error is surfaced.
		p = StubProblem("The problem service is unavailable. You may skip this attempt.")
		shape = ShapeStub
	}
	r.problem = p
	r.shape = shape
	return err
}

// Run executes a submission against the current problem. It does not touch
// the attempt counter.
func (r *Round) Run(ctx context.Context, code string) ([]TestResult, bool) {
	return r.runner.Run(ctx, r.problem, code)
}

// Solve records the current problem as solved with the given passing run.
// Call only after Run reported all tests passing.
func (r *Round) Solve(code string, results []TestResult) SolvedProblem {
	sp := SolvedProblem{
		Problem:  *r.problem,
		Code:     code,
		Results:  results,
		SolvedAt: time.Now(),
	}
	r.attempts++
	return sp
}

// Skip records the current problem as skipped: no code, no results.
func (r *Round) Skip() SolvedProblem {
	sp := SolvedProblem{
		Problem:  *r.problem,
		Skipped:  true,
		SolvedAt: time.Now(),
	}
	r.attempts++
	return sp
}
