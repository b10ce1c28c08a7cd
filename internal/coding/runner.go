package coding

import (
	"context"
	"fmt"

	"github.com/intervu-dev/intervu/internal/sandbox"
)

// Runner executes a submission against a problem's test cases through the
// sandbox. Pass/fail is exact string match on trimmed output; there is no
// partial credit.
type Runner struct {
	exec     sandbox.Executor
	language string
}

// NewRunner creates a Runner for the given submission language.
func NewRunner(exec sandbox.Executor, language string) *Runner {
	return &Runner{exec: exec, language: language}
}

// Language returns the submission language this runner drives.
func (r *Runner) Language() string {
	return r.language
}

// Run executes code against every test case of p. A sandbox failure on a
// test becomes a synthetic failing result for that test rather than an
// error; the round is never advanced by a failed run. The second return is
// true only when every test passed.
func (r *Runner) Run(ctx context.Context, p *Problem, code string) ([]TestResult, bool) {
	results := make([]TestResult, 0, len(p.Tests))
	allPassed := len(p.Tests) > 0

	for _, tc := range p.Tests {
		source := r.synthesize(p, code, tc)
		res, err := r.exec.Execute(ctx, r.language, source)

		tr := TestResult{Input: tc.Input, Expected: tc.Expected}
		if err != nil {
			tr.Output = fmt.Sprintf("execution error: %v", err)
		} else {
			tr.Output = res.Output()
			tr.Passed = tr.Output == tc.Expected
		}
		if !tr.Passed {
			allPassed = false
		}
		results = append(results, tr)
	}

	return results, allPassed
}

// synthesize builds the minimal runnable snippet: the candidate's code plus
// one line that calls the problem's function with the test input and prints
// the result.
func (r *Runner) synthesize(p *Problem, code string, tc TestCase) string {
	switch r.language {
	case "python":
		return fmt.Sprintf("%s\n\nprint(%s(%s))\n", code, p.FunctionName, tc.Input)
	default: // javascript
		return fmt.Sprintf("%s\n\nconsole.log(%s(%s));\n", code, p.FunctionName, tc.Input)
	}
}
