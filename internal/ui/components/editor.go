package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// CodeEditor wraps bubbles/textarea for coding-round submissions.
type CodeEditor struct {
	Model textarea.Model
}

// NewCodeEditor creates a multi-line editor pre-filled with the problem's
// function stub.
func NewCodeEditor(stub string) CodeEditor {
	ta := textarea.New()
	ta.Placeholder = "Write your solution here..."
	ta.SetValue(stub)
	ta.Focus()
	return CodeEditor{Model: ta}
}

// Init returns the initial command.
func (e CodeEditor) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages.
func (e CodeEditor) Update(msg tea.Msg) (CodeEditor, tea.Cmd) {
	var cmd tea.Cmd
	e.Model, cmd = e.Model.Update(msg)
	return e, cmd
}

// View renders the editor.
func (e CodeEditor) View() string {
	return e.Model.View()
}

// Value returns the current source text.
func (e CodeEditor) Value() string {
	return e.Model.Value()
}

// Resize adjusts the editor to the available area.
func (e *CodeEditor) Resize(width, height int) {
	if width > 0 {
		e.Model.SetWidth(width)
	}
	if height > 0 {
		e.Model.SetHeight(height)
	}
}
