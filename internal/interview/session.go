package interview

import (
	"time"

	"github.com/google/uuid"

	"github.com/intervu-dev/intervu/internal/coding"
)

// Session is one interview run. It is owned exclusively by the stage machine
// for its lifetime and handed to the store only at finalization.
type Session struct {
	ID      string
	Role    string
	Company string
	Stage   Stage

	Messages []Message
	Solved   []coding.SolvedProblem

	StartedAt time.Time
	Ended     bool
}

// NewSession creates a session for the given role and company type.
func NewSession(role, company string) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Role:      role,
		Company:   company,
		Stage:     StageIntro,
		StartedAt: time.Now(),
	}
}

// Append adds a message stamped with the current stage and wall clock.
func (s *Session) Append(sender Sender, text string) {
	s.Messages = append(s.Messages, Message{
		Sender: sender,
		Text:   text,
		Time:   time.Now(),
		Stage:  s.Stage,
	})
}

// QuestionCount returns how many interviewer messages were asked in the
// given stage, computed by scanning the log.
func (s *Session) QuestionCount(stage Stage) int {
	n := 0
	for _, m := range s.Messages {
		if m.Sender == SenderInterviewer && m.Stage == stage {
			n++
		}
	}
	return n
}

// QuestionIndex is the zero-based index of the question currently on the
// floor: the count of all interviewer messages so far, minus one. Returns -1
// before the first question. The affect sampler tags frames with this value.
func (s *Session) QuestionIndex() int {
	n := 0
	for _, m := range s.Messages {
		if m.Sender == SenderInterviewer {
			n++
		}
	}
	return n - 1
}

// CurrentQuestion returns the text of the most recent interviewer message,
// or "" if none has been asked yet.
func (s *Session) CurrentQuestion() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Sender == SenderInterviewer {
			return s.Messages[i].Text
		}
	}
	return ""
}

// LastCandidateAnswer returns the most recent candidate message text, or ""
// when the candidate has not spoken.
func (s *Session) LastCandidateAnswer() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Sender == SenderCandidate {
			return s.Messages[i].Text
		}
	}
	return ""
}

// AttachFeedback sets the feedback on the most recent candidate message at
// the time of the call. Latest-wins: a later attachment overwrites an
// earlier one on the same message. Returns false when no candidate message
// exists.
func (s *Session) AttachFeedback(fb Feedback) bool {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Sender == SenderCandidate {
			s.Messages[i].Feedback = &fb
			return true
		}
	}
	return false
}

// RecordSolved appends a coding attempt (solved or skipped) to the session.
func (s *Session) RecordSolved(sp coding.SolvedProblem) {
	s.Solved = append(s.Solved, sp)
}

// Advance moves the session to the next stage when the current stage's
// question quota has been met. Coding and final never advance by counter:
// coding ends via the round controller and final via explicit candidate
// action. Returns true when the stage changed.
func (s *Session) Advance(cfg Config) bool {
	if s.Ended {
		return false
	}

	var done bool
	switch s.Stage {
	case StageIntro:
		done = s.QuestionCount(StageIntro) >= cfg.IntroQuestions
	case StageTransition:
		done = s.QuestionCount(StageTransition) >= cfg.TransitionQuestions
	case StageTechnical:
		done = s.QuestionCount(StageTechnical) >= cfg.TechnicalQuestions
	default:
		return false
	}

	if !done {
		return false
	}
	s.Stage = s.Stage.Next()
	return true
}

// FinishCoding transitions coding → final. Called by the screen when the
// round controller reports completion. No-op outside the coding stage, so a
// duplicate completion signal cannot skip ahead.
func (s *Session) FinishCoding() bool {
	if s.Stage != StageCoding {
		return false
	}
	s.Stage = StageFinal
	return true
}

// End marks the session terminal. Idempotent.
func (s *Session) End() {
	if s.Ended {
		return
	}
	s.Ended = true
	s.Stage = StageEnded
}

// Duration is the elapsed wall-clock time since the session started.
func (s *Session) Duration() time.Duration {
	return time.Since(s.StartedAt)
}
