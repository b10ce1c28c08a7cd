package interview

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/intervu-dev/intervu/internal/affect"
	"github.com/intervu-dev/intervu/internal/capture"
	"github.com/intervu-dev/intervu/internal/coding"
	iv "github.com/intervu-dev/intervu/internal/interview"
	"github.com/intervu-dev/intervu/internal/llm"
	"github.com/intervu-dev/intervu/internal/report"
	"github.com/intervu-dev/intervu/internal/router"
	"github.com/intervu-dev/intervu/internal/sandbox"
	"github.com/intervu-dev/intervu/internal/screen"
	"github.com/intervu-dev/intervu/internal/screens/summary"
	"github.com/intervu-dev/intervu/internal/speech"
	"github.com/intervu-dev/intervu/internal/store"
	"github.com/intervu-dev/intervu/internal/ui/components"
	"github.com/intervu-dev/intervu/internal/ui/layout"
)

// Deps bundles the collaborators an interview session needs. Everything is
// owned by the caller; the screen only borrows them.
type Deps struct {
	Provider llm.Provider
	Sessions store.SessionRepo
	Logger   *log.Logger
	Devices  *speech.Devices
	Analyzer affect.Analyzer
	Exec     sandbox.Executor
	Docs     report.DocStore
	Config   iv.Config
	Language string
}

type phase int

const (
	phaseAsking phase = iota // question generation in flight
	phaseAnswering
	phaseCodingFetch
	phaseCodingEdit
	phaseCodingRun
	phaseConfirmQuit
	phaseFinalizing
	phaseFinalizeFailed
	phaseGenFailed
)

// Messages produced by this screen's async work.
type (
	questionMsg struct {
		text string
		err  error
	}
	answerMsg struct {
		text string
	}
	tickMsg        time.Time
	problemMsg     struct{ err error }
	runFinishedMsg struct {
		results   []coding.TestResult
		allPassed bool
	}
	finalizedMsg struct {
		url string
		err error
	}
	checkpointMsg struct{ err error }
)

// InterviewScreen drives one live session: the staged dialogue, the voice
// turn-taking, the coding round, the affect sampler, and finalization.
type InterviewScreen struct {
	deps Deps

	sess        *iv.Session
	interviewer *iv.Interviewer
	critiques   *iv.CritiqueService
	turns       *capture.Controller
	sampler     *affect.Sampler
	finalizer   *report.Finalizer
	round       *coding.Round

	answers chan string
	input   components.TextInput
	editor  components.CodeEditor

	phase     phase
	prevPhase phase // restored when quit confirm is dismissed
	lastRun   []coding.TestResult
	errMsg    string
}

var (
	_ screen.Screen               = (*InterviewScreen)(nil)
	_ screen.KeyHintProvider      = (*InterviewScreen)(nil)
	_ screen.HeaderStatusProvider = (*InterviewScreen)(nil)
	_ screen.EscBlocker           = (*InterviewScreen)(nil)
)

// New creates an interview screen for a fresh session.
func New(deps Deps, role, company string) *InterviewScreen {
	if deps.Language == "" {
		deps.Language = "python"
	}

	s := &InterviewScreen{
		deps:        deps,
		sess:        iv.NewSession(role, company),
		interviewer: iv.NewInterviewer(deps.Provider, deps.Config),
		critiques:   iv.NewCritiqueService(deps.Provider, deps.Config),
		answers:     make(chan string, 4),
		input:       components.NewTextInput("Type your answer, or Tab to speak...", 500),
		phase:       phaseAsking,
	}
	s.turns = capture.NewController(deps.Devices.Recog, func(text string) {
		s.answers <- text
	})
	s.sampler = affect.NewSampler(s.sess.ID, deps.Devices.Frames, deps.Analyzer, deps.Logger)
	s.finalizer = report.NewFinalizer(deps.Docs, deps.Sessions, deps.Logger)
	return s
}

func (s *InterviewScreen) Title() string {
	return "Mock Interview"
}

func (s *InterviewScreen) BlocksEsc() bool { return true }

func (s *InterviewScreen) HeaderStatus() (string, string) {
	elapsed := s.sess.Duration().Round(time.Second)
	return s.sess.Stage.String(), elapsed.String()
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseConfirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End interview"},
			{Key: "N", Description: "Keep going"},
		}
	case phaseAnswering:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Tab", Description: "Speak"},
		}
		if s.turns.Listening() {
			hints[1] = layout.KeyHint{Key: "Tab", Description: "Stop listening"}
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "End interview"})
	case phaseCodingEdit:
		return []layout.KeyHint{
			{Key: "Ctrl+R", Description: "Run tests"},
			{Key: "Ctrl+S", Description: "Skip problem"},
			{Key: "Esc", Description: "End interview"},
		}
	case phaseFinalizeFailed, phaseGenFailed:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "End interview"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "End interview"}}
}

func (s *InterviewScreen) Init() tea.Cmd {
	s.sampler.Start(context.Background())
	return tea.Batch(
		s.askQuestion(),
		s.waitForAnswer(),
		s.tick(),
		s.input.Init(),
	)
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionMsg:
		return s.handleQuestion(msg)
	case answerMsg:
		return s.handleAnswer(msg)
	case problemMsg:
		return s.handleProblem(msg)
	case runFinishedMsg:
		return s.handleRunFinished(msg)
	case finalizedMsg:
		return s.handleFinalized(msg)
	case tickMsg:
		return s.handleTick()
	case checkpointMsg:
		if msg.err != nil && s.deps.Logger != nil {
			s.deps.Logger.Warn("checkpoint save failed", "err", msg.err)
		}
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forwardInput(msg)
}

func (s *InterviewScreen) forwardInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.phase {
	case phaseAnswering:
		s.input, cmd = s.input.Update(msg)
	case phaseCodingEdit:
		s.editor, cmd = s.editor.Update(msg)
	}
	return s, cmd
}

func (s *InterviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.phase == phaseConfirmQuit {
		switch key {
		case "y", "Y":
			return s.beginFinalize()
		case "n", "N", "esc":
			s.phase = s.prevPhase
		}
		return s, nil
	}

	if key == "esc" {
		if s.phase == phaseFinalizing {
			return s, nil
		}
		s.prevPhase = s.phase
		s.phase = phaseConfirmQuit
		return s, nil
	}

	switch s.phase {
	case phaseAnswering:
		switch key {
		case "enter":
			s.turns.SubmitText(s.input.Value())
			s.input.Reset()
			return s, nil
		case "tab":
			if s.turns.Listening() {
				s.turns.StopListening()
			} else if err := s.turns.StartListening(); err != nil && s.deps.Logger != nil {
				s.deps.Logger.Debug("voice start rejected", "err", err)
			}
			return s, nil
		}
	case phaseCodingEdit:
		switch key {
		case "ctrl+r":
			s.phase = phaseCodingRun
			return s, s.runSubmission(s.editor.Value())
		case "ctrl+s":
			return s.recordAttempt(s.round.Skip())
		}
	case phaseGenFailed:
		if key == "r" || key == "R" {
			s.errMsg = ""
			s.phase = phaseAsking
			return s, s.askQuestion()
		}
	case phaseFinalizeFailed:
		if key == "r" || key == "R" {
			s.errMsg = ""
			return s.beginFinalize()
		}
	}

	return s.forwardInput(msg)
}

// handleQuestion appends the generated question, tags the sampler with the
// new question index, and speaks the line.
func (s *InterviewScreen) handleQuestion(msg questionMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil {
		// Stage does not advance; a new candidate action retries.
		s.errMsg = msg.err.Error()
		s.phase = phaseGenFailed
		return s, nil
	}

	s.sess.Append(iv.SenderInterviewer, msg.text)
	s.sampler.SetQuestion(s.sess.QuestionIndex(), msg.text)
	s.phase = phaseAnswering
	return s, tea.Batch(s.speak(msg.text), s.checkpoint())
}

// handleAnswer logs the candidate turn, kicks off its critique, and decides
// what happens next: another question or the coding round.
func (s *InterviewScreen) handleAnswer(msg answerMsg) (screen.Screen, tea.Cmd) {
	question := s.sess.CurrentQuestion()
	s.sess.Append(iv.SenderCandidate, msg.text)
	s.critiques.Request(context.Background(), question, msg.text)

	rearm := s.waitForAnswer()

	// Advance is counter-driven for the dialogue stages only; the final
	// stage keeps asking wrap-up questions until the candidate explicitly
	// ends the session.
	s.sess.Advance(s.deps.Config)

	if s.sess.Stage == iv.StageCoding {
		s.round = coding.NewRound(
			coding.NewFetcher(s.deps.Provider, coding.DefaultFetchConfig()),
			coding.NewRunner(s.deps.Exec, s.deps.Language),
		)
		s.phase = phaseCodingFetch
		return s, tea.Batch(rearm, s.speak(iv.LineCodingIntro), s.fetchProblem(), s.checkpoint())
	}

	s.phase = phaseAsking
	return s, tea.Batch(rearm, s.askQuestion())
}

// handleProblem presents the fetched problem: a meta line in the message log
// (spoken aloud) and the editor primed with a function stub.
func (s *InterviewScreen) handleProblem(msg problemMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil && s.deps.Logger != nil {
		s.deps.Logger.Warn("problem fetch degraded", "shape", s.round.Shape().String(), "err", msg.err)
	}

	p := s.round.Problem()
	meta := fmt.Sprintf("Problem %d of %d: %s. %s", s.round.Attempts()+1, coding.MaxAttempts, p.Title, p.Description)
	s.sess.Append(iv.SenderInterviewer, meta)
	s.sampler.SetQuestion(s.sess.QuestionIndex(), p.Title)

	s.editor = components.NewCodeEditor(stubFor(p, s.deps.Language))
	s.lastRun = nil
	s.phase = phaseCodingEdit
	return s, tea.Batch(s.speak(meta), s.editor.Init())
}

// handleRunFinished classifies a submission run. Only a full pass records
// the attempt; failures leave the counter alone and the editor open.
func (s *InterviewScreen) handleRunFinished(msg runFinishedMsg) (screen.Screen, tea.Cmd) {
	s.lastRun = msg.results
	if !msg.allPassed {
		s.phase = phaseCodingEdit
		return s, nil
	}
	return s.recordAttempt(s.round.Solve(s.editor.Value(), msg.results))
}

// recordAttempt appends the solved-or-skipped problem and either fetches the
// next one or closes the round.
func (s *InterviewScreen) recordAttempt(sp coding.SolvedProblem) (screen.Screen, tea.Cmd) {
	s.sess.RecordSolved(sp)

	if s.round.Done() {
		s.sess.FinishCoding()
		s.phase = phaseAsking
		return s, tea.Batch(s.speak(iv.LineCodingOutro), s.askQuestion(), s.checkpoint())
	}

	s.phase = phaseCodingFetch
	return s, s.fetchProblem()
}

func (s *InterviewScreen) handleTick() (screen.Screen, tea.Cmd) {
	// Critiques patch the message they belong to; they never reorder the
	// log. Skipped while a generation call may be reading the session.
	if s.phase != phaseAsking && s.phase != phaseFinalizing {
		if fb, ok := s.critiques.Consume(); ok {
			s.sess.AttachFeedback(*fb)
		}
	}
	return s, s.tick()
}

func (s *InterviewScreen) beginFinalize() (screen.Screen, tea.Cmd) {
	s.phase = phaseFinalizing
	return s, s.finalize()
}

func (s *InterviewScreen) handleFinalized(msg finalizedMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil {
		// The session is not complete; the candidate sees the concrete
		// error and may retry.
		s.errMsg = msg.err.Error()
		s.phase = phaseFinalizeFailed
		return s, nil
	}

	next := summary.New(s.sess, msg.url, s.sampler.Highlights())
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// teardown releases session resources in order: speech and listening first,
// then the sampler, then the devices.
func (s *InterviewScreen) teardown() {
	s.turns.Cancel()
	s.deps.Devices.Synth.Cancel()
	s.sampler.Stop(context.Background())
	s.deps.Devices.Release()
}
