// Package speech defines the capability interfaces for the session's audio
// and video hardware. The engines behind them are external collaborators;
// the orchestrator only ever sees speak/listen/capture contracts plus an
// explicitly owned device handle.
package speech

import (
	"context"
	"fmt"
	"sync"

	"github.com/intervu-dev/intervu/internal/affect"
)

// ErrUnavailable reports that a required capability could not be granted.
// This is a blocking condition: a session cannot start without devices.
type ErrUnavailable struct {
	Capability string
	Err        error
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Capability, e.Err)
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// Synthesizer speaks interviewer lines aloud.
type Synthesizer interface {
	// Speak voices the text, returning once playback completes or ctx is
	// cancelled.
	Speak(ctx context.Context, text string) error
	// Cancel stops any in-flight playback.
	Cancel()
}

// Recognizer streams candidate speech as text. Partial transcripts arrive
// through onTranscript in order; onEnd fires exactly once per listening
// session, whether it ended naturally or through Stop.
type Recognizer interface {
	Start(onTranscript func(text string), onEnd func()) error
	Stop()
}

// Devices is the session's capture-hardware handle: acquired before the
// session starts, threaded through explicitly, and released on every exit
// path. Release is idempotent.
type Devices struct {
	Synth  Synthesizer
	Recog  Recognizer
	Frames affect.FrameSource

	release func()
	once    sync.Once
}

// NewDevices wraps already-acquired capabilities in a handle. release runs
// exactly once no matter how many times Release is called.
func NewDevices(synth Synthesizer, recog Recognizer, frames affect.FrameSource, release func()) *Devices {
	return &Devices{Synth: synth, Recog: recog, Frames: frames, release: release}
}

// Release returns the hardware. Safe to call more than once.
func (d *Devices) Release() {
	d.once.Do(func() {
		if d.release != nil {
			d.release()
		}
	})
}
