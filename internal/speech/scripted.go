package speech

import (
	"context"
	"sync"

	"github.com/intervu-dev/intervu/internal/affect"
)

// ScriptedEngine is a deterministic speech engine: spoken lines are recorded
// instead of voiced, and each listening session plays back the next scripted
// candidate answer. It lets the whole session run end to end without audio
// hardware, in tests and in demo mode.
type ScriptedEngine struct {
	mu      sync.Mutex
	answers []string
	next    int
	Spoken  []string

	stopped bool
	onEnd   func()
}

// NewScriptedEngine creates an engine that will play the given answers, one
// per listening session, in order.
func NewScriptedEngine(answers ...string) *ScriptedEngine {
	return &ScriptedEngine{answers: answers}
}

// Speak records the line and returns immediately.
func (e *ScriptedEngine) Speak(_ context.Context, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Spoken = append(e.Spoken, text)
	return nil
}

// Cancel is a no-op; scripted playback is instantaneous.
func (e *ScriptedEngine) Cancel() {}

// Start delivers the next scripted answer as a single transcript, then ends
// the listening session. With the script exhausted it ends immediately.
func (e *ScriptedEngine) Start(onTranscript func(string), onEnd func()) error {
	e.mu.Lock()
	var answer string
	if e.next < len(e.answers) {
		answer = e.answers[e.next]
		e.next++
	}
	e.onEnd = onEnd
	e.mu.Unlock()

	if answer != "" {
		onTranscript(answer)
	}
	onEnd()
	return nil
}

// Stop ends the current listening session, if any.
func (e *ScriptedEngine) Stop() {
	e.mu.Lock()
	end := e.onEnd
	e.onEnd = nil
	e.mu.Unlock()
	if end != nil {
		end()
	}
}

// StillCamera yields the same frame on every capture. Zero-value frames make
// it a not-yet-ready feed, which the sampler skips.
type StillCamera struct {
	Frame affect.Frame
}

func (c *StillCamera) Capture() (affect.Frame, error) {
	return c.Frame, nil
}

// AcquireScripted builds a device handle around a scripted engine and a
// still camera. It never fails; real acquisition paths return
// *ErrUnavailable when the hardware cannot be granted.
func AcquireScripted(answers ...string) *Devices {
	engine := NewScriptedEngine(answers...)
	camera := &StillCamera{Frame: affect.Frame{Image: []byte{0x89}, Width: 640, Height: 480}}
	return NewDevices(engine, engine, camera, engine.Cancel)
}
