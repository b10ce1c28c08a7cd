package coding

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/intervu-dev/intervu/internal/sandbox"
)

// fakeExecutor maps synthesized source to canned results by test input.
type fakeExecutor struct {
	results map[string]sandbox.Result // keyed by substring of source
	err     error
	calls   []string
}

func (f *fakeExecutor) Execute(_ context.Context, _, source string) (sandbox.Result, error) {
	f.calls = append(f.calls, source)
	if f.err != nil {
		return sandbox.Result{}, f.err
	}
	for key, res := range f.results {
		if strings.Contains(source, key) {
			return res, nil
		}
	}
	return sandbox.Result{}, nil
}

func twoTestProblem() *Problem {
	return &Problem{
		Title:        "Double",
		FunctionName: "double",
		Tests: []TestCase{
			{Input: "2", Expected: "4"},
			{Input: "5", Expected: "10"},
		},
	}
}

func TestRun_AllPass(t *testing.T) {
	exec := &fakeExecutor{results: map[string]sandbox.Result{
		"double(2)": {Stdout: "4\n"},
		"double(5)": {Stdout: "10\n"},
	}}
	r := NewRunner(exec, "python")

	results, allPassed := r.Run(context.Background(), twoTestProblem(), "def double(n): return n*2")
	if !allPassed {
		t.Fatalf("allPassed = false, results: %+v", results)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	for i, tr := range results {
		if !tr.Passed {
			t.Errorf("test %d failed: %+v", i, tr)
		}
	}
}

func TestRun_SingleFailureBlocks(t *testing.T) {
	exec := &fakeExecutor{results: map[string]sandbox.Result{
		"double(2)": {Stdout: "4\n"},
		"double(5)": {Stdout: "11\n"}, // wrong
	}}
	r := NewRunner(exec, "python")

	results, allPassed := r.Run(context.Background(), twoTestProblem(), "code")
	if allPassed {
		t.Fatal("one failing test must block the round")
	}
	if !results[0].Passed || results[1].Passed {
		t.Errorf("per-test classification wrong: %+v", results)
	}
}

func TestRun_StderrFallbackComparison(t *testing.T) {
	p := &Problem{
		FunctionName: "f",
		Tests:        []TestCase{{Input: "1", Expected: "ok"}},
	}
	exec := &fakeExecutor{results: map[string]sandbox.Result{
		"f(1)": {Stdout: "", Stderr: "ok\n"},
	}}
	r := NewRunner(exec, "javascript")

	results, allPassed := r.Run(context.Background(), p, "code")
	if !allPassed {
		t.Errorf("stderr output should be used when stdout is empty: %+v", results)
	}
}

func TestRun_ExecutionErrorIsSyntheticFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("sandbox down")}
	r := NewRunner(exec, "python")

	results, allPassed := r.Run(context.Background(), twoTestProblem(), "code")
	if allPassed {
		t.Fatal("sandbox failure must not pass the round")
	}
	for _, tr := range results {
		if tr.Passed {
			t.Errorf("expected synthetic failure, got pass: %+v", tr)
		}
		if !strings.Contains(tr.Output, "execution error") {
			t.Errorf("expected synthetic error line, got %q", tr.Output)
		}
	}
}

func TestRun_EmptyTestListNeverPasses(t *testing.T) {
	p := &Problem{Title: "Stub", FunctionName: "f"}
	r := NewRunner(&fakeExecutor{}, "python")

	results, allPassed := r.Run(context.Background(), p, "code")
	if allPassed {
		t.Fatal("a problem with no tests cannot be auto-passed")
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestSynthesize_Snippets(t *testing.T) {
	p := &Problem{FunctionName: "sum2", Tests: []TestCase{{Input: "1, 2", Expected: "3"}}}

	py := NewRunner(&fakeExecutor{}, "python")
	py.Run(context.Background(), p, "def sum2(a, b): return a+b")

	js := NewRunner(&fakeExecutor{}, "javascript")
	js.Run(context.Background(), p, "function sum2(a, b) { return a+b }")

	pyExec := py.exec.(*fakeExecutor)
	if !strings.Contains(pyExec.calls[0], "print(sum2(1, 2))") {
		t.Errorf("python snippet = %q", pyExec.calls[0])
	}
	jsExec := js.exec.(*fakeExecutor)
	if !strings.Contains(jsExec.calls[0], "console.log(sum2(1, 2));") {
		t.Errorf("javascript snippet = %q", jsExec.calls[0])
	}
}
