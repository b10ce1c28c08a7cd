package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/intervu-dev/intervu/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// HeaderStatusProvider is an optional interface for screens that show live
// session state (stage badge, elapsed time) in the header.
type HeaderStatusProvider interface {
	HeaderStatus() (stage, elapsed string)
}

// EscBlocker is an optional interface for screens that intercept Esc
// themselves instead of letting the router pop them. The interview screen
// uses it so leaving mid-session goes through confirmation and teardown.
type EscBlocker interface {
	BlocksEsc() bool
}
