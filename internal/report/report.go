// Package report compiles a finished session into a human-readable report
// and hands the session off to its external stores.
package report

import (
	"fmt"
	"strings"

	"github.com/intervu-dev/intervu/internal/affect"
	"github.com/intervu-dev/intervu/internal/interview"
)

// Build renders the session as a markdown report: transcript with inline
// answer feedback, the coding round outcome, and the top affect highlight
// per question. The full highlight list is persisted separately; the report
// shows only the most salient sample per question.
func Build(s *interview.Session, highlights []affect.Highlight) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Mock Interview Report\n\n")
	fmt.Fprintf(&b, "- **Role:** %s\n", s.Role)
	fmt.Fprintf(&b, "- **Company type:** %s\n", s.Company)
	fmt.Fprintf(&b, "- **Date:** %s\n", s.StartedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "- **Session:** %s\n\n", s.ID)

	writeTranscript(&b, s)
	writeCoding(&b, s)
	writeHighlights(&b, highlights)

	return b.String()
}

func writeTranscript(b *strings.Builder, s *interview.Session) {
	b.WriteString("## Transcript\n")

	var stage interview.Stage = -1
	for _, m := range s.Messages {
		if m.Stage != stage {
			stage = m.Stage
			fmt.Fprintf(b, "\n### %s\n\n", title(stage.String()))
		}
		switch m.Sender {
		case interview.SenderInterviewer:
			fmt.Fprintf(b, "**Interviewer:** %s\n\n", m.Text)
		case interview.SenderCandidate:
			fmt.Fprintf(b, "**You:** %s\n\n", m.Text)
			if m.Feedback != nil {
				fmt.Fprintf(b, "> 💡 %s", m.Feedback.Suggestion)
				if m.Feedback.Example != "" {
					fmt.Fprintf(b, " For example: %s", m.Feedback.Example)
				}
				b.WriteString("\n\n")
			}
		}
	}
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func writeCoding(b *strings.Builder, s *interview.Session) {
	if len(s.Solved) == 0 {
		return
	}
	b.WriteString("## Coding Round\n\n")

	for i, sp := range s.Solved {
		status := "solved"
		if sp.Skipped {
			status = "skipped"
		}
		fmt.Fprintf(b, "%d. **%s** — %s", i+1, sp.Problem.Title, status)
		if !sp.Skipped && len(sp.Results) > 0 {
			passed := 0
			for _, r := range sp.Results {
				if r.Passed {
					passed++
				}
			}
			fmt.Fprintf(b, " (%d/%d tests passing)", passed, len(sp.Results))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeHighlights(b *strings.Builder, highlights []affect.Highlight) {
	top := affect.TopPerQuestion(highlights)
	if len(top) == 0 {
		return
	}
	b.WriteString("## Notable Moments\n\n")

	for _, h := range top {
		fmt.Fprintf(b, "- Q%d", h.QuestionIndex+1)
		if h.Question != "" {
			fmt.Fprintf(b, " (%q)", h.Question)
		}
		fmt.Fprintf(b, ": intensity %.2f, confidence %.2f", h.Score, h.Confidence)
		if h.ImageRef != "" {
			fmt.Fprintf(b, " — [frame](%s)", h.ImageRef)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}
