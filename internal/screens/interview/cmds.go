package interview

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/intervu-dev/intervu/internal/coding"
	iv "github.com/intervu-dev/intervu/internal/interview"
	"github.com/intervu-dev/intervu/internal/store"
)

const tickInterval = time.Second

func (s *InterviewScreen) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForAnswer blocks on the turn controller's submissions. Re-armed once
// per consumed answer.
func (s *InterviewScreen) waitForAnswer() tea.Cmd {
	return func() tea.Msg {
		return answerMsg{text: <-s.answers}
	}
}

func (s *InterviewScreen) askQuestion() tea.Cmd {
	return func() tea.Msg {
		text, err := s.interviewer.NextQuestion(context.Background(), s.sess)
		return questionMsg{text: text, err: err}
	}
}

// speak voices a line without holding up the update loop. Playback errors
// are logged, never surfaced; a mute interviewer is still readable.
func (s *InterviewScreen) speak(text string) tea.Cmd {
	return func() tea.Msg {
		if err := s.deps.Devices.Synth.Speak(context.Background(), text); err != nil && s.deps.Logger != nil {
			s.deps.Logger.Debug("speech synthesis failed", "err", err)
		}
		return nil
	}
}

func (s *InterviewScreen) fetchProblem() tea.Cmd {
	return func() tea.Msg {
		return problemMsg{err: s.round.Fetch(context.Background())}
	}
}

func (s *InterviewScreen) runSubmission(code string) tea.Cmd {
	return func() tea.Msg {
		results, allPassed := s.round.Run(context.Background(), code)
		return runFinishedMsg{results: results, allPassed: allPassed}
	}
}

func (s *InterviewScreen) finalize() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		s.deps.Devices.Synth.Speak(ctx, iv.LineSessionClose)
		url, err := s.finalizer.Finalize(ctx, s.sess, s.sampler.Highlights(), s.teardown)
		return finalizedMsg{url: url, err: err}
	}
}

// checkpoint persists the session so a crash mid-interview can be replayed.
func (s *InterviewScreen) checkpoint() tea.Cmd {
	rec := store.RecordFromSession(s.sess, s.sampler.Highlights())
	return func() tea.Msg {
		return checkpointMsg{err: s.deps.Sessions.Save(context.Background(), rec)}
	}
}

func stubFor(p *coding.Problem, language string) string {
	sig := p.Signature
	if sig == "" {
		name := p.FunctionName
		if name == "" {
			name = "solve"
		}
		sig = name + "(input)"
	}

	switch language {
	case "python":
		return fmt.Sprintf("def %s:\n    pass\n", sig)
	default:
		return fmt.Sprintf("function %s {\n}\n", sig)
	}
}
