// Package welcome is the entry screen: pick an interview preset, acquire
// the capture devices, and start the session.
package welcome

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	ivscreen "github.com/intervu-dev/intervu/internal/screens/interview"

	"github.com/intervu-dev/intervu/internal/profile"
	"github.com/intervu-dev/intervu/internal/router"
	"github.com/intervu-dev/intervu/internal/screen"
	"github.com/intervu-dev/intervu/internal/screens/history"
	"github.com/intervu-dev/intervu/internal/speech"
	"github.com/intervu-dev/intervu/internal/ui/components"
	"github.com/intervu-dev/intervu/internal/ui/layout"
	"github.com/intervu-dev/intervu/internal/ui/theme"
)

const banner = `
  ▪ ▐ ▄ ▄▄▄▄▄▄▄▄ .▄▄▄  ▌ ▐·▄• ▄▌
  ██•█▌▐█•██  ▀▄.▀·▀▄ █·▪█·█▌█▪██▌
  ██▐█▐▐▌ ▐█.▪▐▀▀▪▄▐▀▀▄ ▐█▐█•█▌▐█▌
  ▐█▌██▐█▌ ▐█▌·▐█▄▄▌▐█•█▌ ███ ▐█▄█▌
  ▀▀▀▀ █▪ ▀▀▀  ▀▀▀ .▀  ▀. ▀   ▀▀▀`

// AcquireFunc obtains the session's capture devices. Failure is a blocking,
// user-visible condition: no session starts without them.
type AcquireFunc func() (*speech.Devices, error)

// WelcomeScreen lets the candidate pick a preset and start an interview.
type WelcomeScreen struct {
	deps    ivscreen.Deps
	presets *profile.Config
	acquire AcquireFunc
	menu    components.Menu
	errMsg  string
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates the welcome screen.
func New(deps ivscreen.Deps, presets *profile.Config, acquire AcquireFunc) *WelcomeScreen {
	w := &WelcomeScreen{deps: deps, presets: presets, acquire: acquire}

	items := make([]components.MenuItem, 0, len(presets.Presets)+1)
	for _, p := range presets.Presets {
		preset := p
		items = append(items, components.MenuItem{
			Label:  preset.Role,
			Detail: preset.Company,
			Action: func() tea.Cmd { return w.start(preset) },
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Past interviews",
		Action: w.openHistory,
	})

	w.menu = components.NewMenu(items)
	return w
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nil }

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// start acquires devices and pushes the interview screen. An acquisition
// failure blocks here with a visible error instead of starting a session.
func (w *WelcomeScreen) start(preset profile.Preset) tea.Cmd {
	devices, err := w.acquire()
	if err != nil {
		w.errMsg = err.Error()
		return nil
	}
	w.errMsg = ""

	deps := w.deps
	deps.Devices = devices
	next := ivscreen.New(deps, preset.Role, preset.Company)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (w *WelcomeScreen) openHistory() tea.Cmd {
	next := history.New(w.deps.Sessions)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	w.menu, cmd = w.menu.Update(msg)
	return w, cmd
}

func (w *WelcomeScreen) View(width, height int) string {
	var content string
	content += theme.Title.Render(banner) + "\n\n"
	content += theme.Subtitle.Render("AI mock interviews in your terminal") + "\n\n"
	content += w.menu.View()
	if w.errMsg != "" {
		content += "\n" + theme.Failed.Render("Cannot start: "+w.errMsg)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
