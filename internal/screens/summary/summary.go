// Package summary shows the post-interview recap: outcome, report link, and
// the most notable affect moments.
package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/intervu-dev/intervu/internal/affect"
	"github.com/intervu-dev/intervu/internal/interview"
	"github.com/intervu-dev/intervu/internal/screen"
	"github.com/intervu-dev/intervu/internal/ui/layout"
	"github.com/intervu-dev/intervu/internal/ui/theme"
)

// SummaryScreen recaps a finished session.
type SummaryScreen struct {
	sess       *interview.Session
	reportURL  string
	highlights []affect.Highlight
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates the summary for a finalized session.
func New(sess *interview.Session, reportURL string, highlights []affect.Highlight) *SummaryScreen {
	return &SummaryScreen{sess: sess, reportURL: reportURL, highlights: highlights}
}

func (s *SummaryScreen) Title() string { return "Summary" }

func (s *SummaryScreen) Init() tea.Cmd { return nil }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back to start"}}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Interview complete") + "\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Role: %s (%s)", s.sess.Role, s.sess.Company)) + "\n")

	questions := 0
	for _, m := range s.sess.Messages {
		if m.Sender == interview.SenderInterviewer {
			questions++
		}
	}
	elapsed := time.Since(s.sess.StartedAt).Round(time.Minute)
	b.WriteString(theme.Body.Render(fmt.Sprintf("%d interviewer turns over %s", questions, elapsed)) + "\n\n")

	if len(s.sess.Solved) > 0 {
		solved := 0
		for _, sp := range s.sess.Solved {
			if !sp.Skipped {
				solved++
			}
		}
		b.WriteString(theme.Body.Render(fmt.Sprintf("Coding round: %d solved, %d skipped",
			solved, len(s.sess.Solved)-solved)) + "\n\n")
	}

	if top := affect.TopPerQuestion(s.highlights); len(top) > 0 {
		b.WriteString(theme.Subtitle.Render("Notable moments") + "\n")
		for _, h := range top {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("  Q%d: intensity %.2f", h.QuestionIndex+1, h.Score)) + "\n")
		}
		b.WriteString("\n")
	}

	if s.reportURL != "" {
		b.WriteString(theme.Body.Render("Full report: ") + theme.Selected.Render(s.reportURL) + "\n")
	}

	card := theme.Card.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
