// Package history lists past interview sessions from the local store.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/intervu-dev/intervu/internal/screen"
	"github.com/intervu-dev/intervu/internal/store"
	"github.com/intervu-dev/intervu/internal/ui/layout"
	"github.com/intervu-dev/intervu/internal/ui/theme"
)

const pageSize = 15

type loadedMsg struct {
	records []*store.SessionRecord
	err     error
}

// HistoryScreen shows recent sessions, newest first.
type HistoryScreen struct {
	sessions store.SessionRepo
	records  []*store.SessionRecord
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the history screen.
func New(sessions store.SessionRepo) *HistoryScreen {
	return &HistoryScreen{sessions: sessions}
}

func (h *HistoryScreen) Title() string { return "Past Interviews" }

func (h *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		records, err := h.sessions.List(context.Background(), pageSize)
		return loadedMsg{records: records, err: err}
	}
}

func (h *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (h *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		h.loaded = true
		if msg.err != nil {
			h.errMsg = msg.err.Error()
		} else {
			h.records = msg.records
		}
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if h.selected > 0 {
				h.selected--
			}
		case "down", "j":
			if h.selected < len(h.records)-1 {
				h.selected++
			}
		}
	}
	return h, nil
}

func (h *HistoryScreen) View(width, height int) string {
	if !h.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Subtitle.Render("Loading..."))
	}
	if h.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Failed.Render(h.errMsg))
	}
	if len(h.records) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No interviews yet. Finish one and it will show up here."))
	}

	var b strings.Builder
	for i, rec := range h.records {
		line := fmt.Sprintf("%s  %s (%s)", rec.StartedAt.Format("2006-01-02 15:04"), rec.Role, rec.Company)
		if rec.Complete {
			line += "  " + theme.Passed.Render("✓ complete")
		} else {
			line += "  " + theme.Hint.Render("unfinished, reached "+rec.Stage)
		}
		if i == h.selected {
			b.WriteString(theme.Selected.Render("  ▸ ") + line + "\n")
			if rec.ReportURL != "" {
				b.WriteString(theme.Hint.Render("      report: "+rec.ReportURL) + "\n")
			}
		} else {
			b.WriteString("    " + line + "\n")
		}
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(width).Render(b.String())
}
