package interview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	iv "github.com/intervu-dev/intervu/internal/interview"
	"github.com/intervu-dev/intervu/internal/ui/theme"
)

func (s *InterviewScreen) View(width, height int) string {
	switch s.phase {
	case phaseConfirmQuit:
		return centered(width, height,
			theme.Title.Render("End the interview?")+"\n\n"+
				theme.Hint.Render("Your report will be generated and the session saved."))
	case phaseFinalizing:
		return centered(width, height, theme.Subtitle.Render("Wrapping up and uploading your report..."))
	case phaseFinalizeFailed:
		return centered(width, height,
			theme.Failed.Render("Could not save your report")+"\n\n"+
				theme.Body.Render(s.errMsg)+"\n\n"+
				theme.Hint.Render("Press R to retry. The session is not marked complete."))
	case phaseGenFailed:
		return centered(width, height,
			theme.Failed.Render("The interviewer lost their train of thought")+"\n\n"+
				theme.Body.Render(s.errMsg)+"\n\n"+
				theme.Hint.Render("Press R to continue."))
	case phaseCodingFetch:
		return centered(width, height, theme.Subtitle.Render("Preparing your next coding problem..."))
	case phaseCodingEdit, phaseCodingRun:
		return s.viewCoding(width, height)
	}
	return s.viewDialogue(width, height)
}

func (s *InterviewScreen) viewDialogue(width, height int) string {
	var b strings.Builder

	transcriptHeight := height - 4
	for _, m := range visibleMessages(s.sess.Messages, transcriptHeight/2) {
		switch m.Sender {
		case iv.SenderInterviewer:
			b.WriteString(theme.Interviewer.Render("Interviewer: ") + theme.Body.Render(m.Text) + "\n")
		case iv.SenderCandidate:
			b.WriteString(theme.Candidate.Render("You: "+m.Text) + "\n")
			if m.Feedback != nil {
				b.WriteString(theme.FeedbackNote.Render("  ↳ "+m.Feedback.Suggestion) + "\n")
			}
		}
	}

	b.WriteString("\n")
	if s.phase == phaseAsking {
		b.WriteString(theme.Hint.Render("The interviewer is thinking...") + "\n")
	} else if s.turns.Listening() {
		b.WriteString(theme.Listening.Render("● Listening — pause for a few seconds to submit") + "\n")
	} else {
		b.WriteString(s.input.View() + "\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(width).Render(b.String())
}

func (s *InterviewScreen) viewCoding(width, height int) string {
	p := s.round.Problem()

	var b strings.Builder
	b.WriteString(theme.Title.Render(p.Title) + "\n")
	b.WriteString(theme.Body.Render(p.Description) + "\n")
	if p.Example != "" {
		b.WriteString(theme.Hint.Render("Example: "+p.Example) + "\n")
	}
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Attempt %d of 3", s.round.Attempts()+1)) + "\n\n")

	s.editor.Resize(width-6, height-len(s.lastRun)-12)
	b.WriteString(s.editor.View() + "\n")

	if s.phase == phaseCodingRun {
		b.WriteString(theme.Hint.Render("Running your solution...") + "\n")
	}
	for _, r := range s.lastRun {
		if r.Passed {
			b.WriteString(theme.Passed.Render("  ✓ ") + theme.Body.Render(r.Input+" → "+r.Output) + "\n")
		} else {
			b.WriteString(theme.Failed.Render("  ✗ ") +
				theme.Body.Render(fmt.Sprintf("%s → %s (expected %s)", r.Input, r.Output, r.Expected)) + "\n")
		}
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(width).Render(b.String())
}

// visibleMessages keeps the transcript tail that fits on screen.
func visibleMessages(msgs []iv.Message, max int) []iv.Message {
	if max < 4 {
		max = 4
	}
	if len(msgs) <= max {
		return msgs
	}
	return msgs[len(msgs)-max:]
}

func centered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
