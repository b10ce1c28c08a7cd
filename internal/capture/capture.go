// Package capture implements turn-taking for candidate answers. Text input
// submits immediately; voice input accumulates partial transcripts and
// auto-submits after a silence grace period.
package capture

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/intervu-dev/intervu/internal/speech"
)

// GracePeriod is the silence delay between the end of a listening session
// and auto-submission of the buffered transcript.
const GracePeriod = 3 * time.Second

// ErrAlreadyListening is returned when a listening session is started while
// one is still active.
var ErrAlreadyListening = errors.New("a listening session is already active")

// Controller owns one candidate turn at a time. When a listening session
// ends, a grace timer is armed; if it fires uncancelled the buffer is
// submitted exactly once and cleared. Starting a new listening session
// before it fires cancels the timer and resumes buffering, so a thinking
// pause never splits an answer in two.
type Controller struct {
	recog  speech.Recognizer
	grace  time.Duration
	submit func(text string)

	mu        sync.Mutex
	buf       []string
	listening bool
	timer     *time.Timer
	armed     int // generation guard against stale timer fires
}

// NewController creates a controller that passes each completed answer to
// submit. submit is called from the timer goroutine or from SubmitText's
// caller, never with the controller lock held.
func NewController(recog speech.Recognizer, submit func(text string)) *Controller {
	return &Controller{recog: recog, grace: GracePeriod, submit: submit}
}

// SetGracePeriod overrides the silence delay.
func (c *Controller) SetGracePeriod(d time.Duration) {
	if d > 0 {
		c.grace = d
	}
}

// SubmitText submits a typed answer immediately. Empty input is dropped.
func (c *Controller) SubmitText(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	c.submit(text)
}

// StartListening begins a voice session. A pending grace timer is cancelled
// and its buffer kept, so the new session continues the same answer.
func (c *Controller) StartListening() error {
	c.mu.Lock()
	if c.listening {
		c.mu.Unlock()
		return ErrAlreadyListening
	}
	c.listening = true
	c.cancelTimerLocked()
	c.mu.Unlock()

	if err := c.recog.Start(c.onTranscript, c.onEnd); err != nil {
		c.mu.Lock()
		c.listening = false
		c.mu.Unlock()
		return err
	}
	return nil
}

// StopListening ends the active voice session. The grace timer still
// applies: submission happens only once the silence delay elapses.
func (c *Controller) StopListening() {
	c.mu.Lock()
	listening := c.listening
	c.mu.Unlock()
	if listening {
		c.recog.Stop()
	}
}

// Listening reports whether a voice session is active.
func (c *Controller) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listening
}

// Cancel tears the turn down without submitting: recognizer stopped, timer
// cancelled, buffer discarded. Used on session end and navigation.
func (c *Controller) Cancel() {
	c.mu.Lock()
	listening := c.listening
	c.listening = false
	c.cancelTimerLocked()
	c.buf = nil
	c.mu.Unlock()

	if listening {
		c.recog.Stop()
	}
}

func (c *Controller) onTranscript(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	c.mu.Lock()
	c.buf = append(c.buf, text)
	c.mu.Unlock()
}

func (c *Controller) onEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.listening {
		return
	}
	c.listening = false

	c.cancelTimerLocked()
	c.armed++
	gen := c.armed
	c.timer = time.AfterFunc(c.grace, func() { c.fire(gen) })
}

// fire submits the buffer if this timer generation is still the armed one.
// A generation bumped by a newer listening session means the fire is stale.
func (c *Controller) fire(gen int) {
	c.mu.Lock()
	if gen != c.armed || c.listening {
		c.mu.Unlock()
		return
	}
	text := strings.TrimSpace(strings.Join(c.buf, " "))
	c.buf = nil
	c.timer = nil
	c.mu.Unlock()

	if text != "" {
		c.submit(text)
	}
}

func (c *Controller) cancelTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.armed++
}
