package coding

import (
	"encoding/json"
	"strings"
	"time"
)

// TestCase is one input/expected pair for a coding problem.
type TestCase struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
}

// Problem is one coding challenge. Fetched fresh per round slot, never
// mutated.
type Problem struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	FunctionName string     `json:"function_name"`
	Signature    string     `json:"signature"`
	Example      string     `json:"example"`
	Tests        []TestCase `json:"tests"`
}

// TestResult is the outcome of running one test case.
type TestResult struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Output   string `json:"output"`
	Passed   bool   `json:"passed"`
}

// SolvedProblem records one round attempt: either a solved problem with the
// submitted code and its results, or a skip with neither.
type SolvedProblem struct {
	Problem  Problem      `json:"problem"`
	Code     string       `json:"code,omitempty"`
	Results  []TestResult `json:"results,omitempty"`
	Skipped  bool         `json:"skipped"`
	SolvedAt time.Time    `json:"solved_at"`
}

// Shape tags how a fetched problem was obtained from the collaborator.
type Shape int

const (
	// ShapeStructured means the response was clean structured data.
	ShapeStructured Shape = iota
	// ShapeExtracted means a JSON block was pulled out of free text.
	ShapeExtracted
	// ShapeStub means extraction failed and a minimal fallback problem was
	// synthesized from the raw text.
	ShapeStub
)

func (s Shape) String() string {
	switch s {
	case ShapeStructured:
		return "structured"
	case ShapeExtracted:
		return "extracted"
	default:
		return "stub"
	}
}

// ExtractJSONBlock scans free text for an embedded JSON object and returns
// the first balanced {...} block. Best effort: string literals are honored
// so braces inside them do not unbalance the scan.
func ExtractJSONBlock(text string) (json.RawMessage, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				block := json.RawMessage(text[start : i+1])
				if json.Valid(block) {
					return block, true
				}
				return nil, false
			}
		}
	}
	return nil, false
}

// ParseProblem decodes a structured problem. A problem without a title is
// treated as unusable.
func ParseProblem(raw json.RawMessage) (*Problem, error) {
	var p Problem
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Title) == "" {
		return nil, errMissingTitle
	}
	return &p, nil
}

// StubProblem builds the minimal fallback problem from raw collaborator
// text: title plus the text as description, no tests. The round must never
// be left without a problem object.
func StubProblem(raw string) *Problem {
	return &Problem{
		Title:       "Coding exercise",
		Description: strings.TrimSpace(raw),
	}
}
