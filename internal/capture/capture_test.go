package capture

import (
	"sync"
	"testing"
	"time"

	"github.com/intervu-dev/intervu/internal/speech"
)

// manualRecognizer hands transcript delivery to the test.
type manualRecognizer struct {
	mu           sync.Mutex
	onTranscript func(string)
	onEnd        func()
	starts       int
}

func (r *manualRecognizer) Start(onTranscript func(string), onEnd func()) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onTranscript = onTranscript
	r.onEnd = onEnd
	r.starts++
	return nil
}

func (r *manualRecognizer) Stop() {
	r.mu.Lock()
	end := r.onEnd
	r.mu.Unlock()
	if end != nil {
		end()
	}
}

func (r *manualRecognizer) say(text string) {
	r.mu.Lock()
	fn := r.onTranscript
	r.mu.Unlock()
	fn(text)
}

type collector struct {
	mu    sync.Mutex
	texts []string
}

func (c *collector) submit(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.texts = append(c.texts, text)
}

func (c *collector) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.texts))
	copy(out, c.texts)
	return out
}

func newTestController(t *testing.T) (*Controller, *manualRecognizer, *collector) {
	t.Helper()
	recog := &manualRecognizer{}
	sink := &collector{}
	c := NewController(recog, sink.submit)
	c.SetGracePeriod(20 * time.Millisecond)
	return c, recog, sink
}

func waitSubmissions(t *testing.T, sink *collector, n int) []string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := sink.all(); len(got) >= n {
			return got
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("never saw %d submissions, got %v", n, sink.all())
	return nil
}

func TestSubmitText_Immediate(t *testing.T) {
	c, _, sink := newTestController(t)
	c.SubmitText("  typed answer  ")
	c.SubmitText("   ")

	got := sink.all()
	if len(got) != 1 || got[0] != "typed answer" {
		t.Errorf("submissions = %v", got)
	}
}

func TestGraceTimer_FiresOnceWithBufferedText(t *testing.T) {
	c, recog, sink := newTestController(t)

	if err := c.StartListening(); err != nil {
		t.Fatalf("StartListening: %v", err)
	}
	recog.say("I built a")
	recog.say("distributed cache")
	c.StopListening()

	got := waitSubmissions(t, sink, 1)
	if got[0] != "I built a distributed cache" {
		t.Errorf("submitted %q", got[0])
	}

	// Nothing further: buffer cleared, timer spent.
	time.Sleep(60 * time.Millisecond)
	if got := sink.all(); len(got) != 1 {
		t.Errorf("submissions = %v, want exactly one", got)
	}
}

func TestGraceTimer_CancelledByNewListeningSession(t *testing.T) {
	c, recog, sink := newTestController(t)
	c.SetGracePeriod(50 * time.Millisecond)

	if err := c.StartListening(); err != nil {
		t.Fatal(err)
	}
	recog.say("first half")
	c.StopListening()

	// Restart strictly before the timer fires: no submission from the old
	// buffer, and the answer continues accumulating.
	if err := c.StartListening(); err != nil {
		t.Fatal(err)
	}
	recog.say("second half")
	c.StopListening()

	got := waitSubmissions(t, sink, 1)
	if got[0] != "first half second half" {
		t.Errorf("submitted %q, want merged answer", got[0])
	}
	if len(got) != 1 {
		t.Errorf("submissions = %v, want exactly one", got)
	}
}

func TestStartListening_RejectsWhileActive(t *testing.T) {
	c, _, _ := newTestController(t)
	if err := c.StartListening(); err != nil {
		t.Fatal(err)
	}
	if err := c.StartListening(); err != ErrAlreadyListening {
		t.Errorf("err = %v, want ErrAlreadyListening", err)
	}
}

func TestCancel_DiscardsBufferAndTimer(t *testing.T) {
	c, recog, sink := newTestController(t)

	if err := c.StartListening(); err != nil {
		t.Fatal(err)
	}
	recog.say("doomed words")
	c.StopListening()
	c.Cancel()

	time.Sleep(60 * time.Millisecond)
	if got := sink.all(); len(got) != 0 {
		t.Errorf("cancelled turn still submitted: %v", got)
	}
	if c.Listening() {
		t.Error("Listening() = true after Cancel")
	}
}

func TestScriptedEngine_DrivesController(t *testing.T) {
	engine := speech.NewScriptedEngine("answer one", "answer two")
	sink := &collector{}
	c := NewController(engine, sink.submit)
	c.SetGracePeriod(10 * time.Millisecond)

	for i := 0; i < 2; i++ {
		if err := c.StartListening(); err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
		waitSubmissions(t, sink, i+1)
	}

	got := sink.all()
	if got[0] != "answer one" || got[1] != "answer two" {
		t.Errorf("submissions = %v", got)
	}
}
