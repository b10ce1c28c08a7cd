package interview

import (
	"testing"

	"github.com/intervu-dev/intervu/internal/coding"
)

func testSession() *Session {
	return NewSession("Backend Engineer", "startup")
}

// askAndAnswer appends one interviewer question and one candidate answer.
func askAndAnswer(s *Session, q, a string) {
	s.Append(SenderInterviewer, q)
	s.Append(SenderCandidate, a)
}

func TestNewSession(t *testing.T) {
	s := testSession()
	if s.ID == "" {
		t.Error("expected a session id")
	}
	if s.Stage != StageIntro {
		t.Errorf("Stage = %v, want intro", s.Stage)
	}
	if s.Ended {
		t.Error("new session must not be terminal")
	}
}

func TestQuestionCount_ScansLogByStage(t *testing.T) {
	s := testSession()
	askAndAnswer(s, "Q1?", "A1")
	askAndAnswer(s, "Q2?", "A2")
	s.Stage = StageTransition
	askAndAnswer(s, "Q3?", "A3")

	if got := s.QuestionCount(StageIntro); got != 2 {
		t.Errorf("intro count = %d, want 2", got)
	}
	if got := s.QuestionCount(StageTransition); got != 1 {
		t.Errorf("transition count = %d, want 1", got)
	}
	if got := s.QuestionCount(StageTechnical); got != 0 {
		t.Errorf("technical count = %d, want 0", got)
	}
}

func TestAdvance_StageWalk(t *testing.T) {
	cfg := DefaultConfig()
	s := testSession()

	// intro: not enough questions yet.
	askAndAnswer(s, "Q1?", "A1")
	if s.Advance(cfg) {
		t.Fatal("advanced after 1 intro question, quota is 2")
	}
	askAndAnswer(s, "Q2?", "A2")
	if !s.Advance(cfg) || s.Stage != StageTransition {
		t.Fatalf("expected intro → transition, stage = %v", s.Stage)
	}

	askAndAnswer(s, "Q3?", "A3")
	if !s.Advance(cfg) || s.Stage != StageTechnical {
		t.Fatalf("expected transition → technical, stage = %v", s.Stage)
	}

	for i := 0; i < 4; i++ {
		askAndAnswer(s, "TQ?", "TA")
	}
	if !s.Advance(cfg) || s.Stage != StageCoding {
		t.Fatalf("expected technical → coding, stage = %v", s.Stage)
	}

	// Coding never advances by counter.
	s.Append(SenderInterviewer, "Here is your problem.")
	if s.Advance(cfg) {
		t.Fatal("coding stage advanced by counter")
	}
	if !s.FinishCoding() || s.Stage != StageFinal {
		t.Fatalf("expected coding → final, stage = %v", s.Stage)
	}

	// Final never advances by counter either.
	askAndAnswer(s, "Any questions for us?", "No, thanks.")
	if s.Advance(cfg) {
		t.Fatal("final stage advanced by counter")
	}
}

func TestAdvance_NeverMovesBackward(t *testing.T) {
	cfg := DefaultConfig()
	s := testSession()
	prev := s.Stage

	for i := 0; i < 20; i++ {
		askAndAnswer(s, "Q?", "A")
		s.Advance(cfg)
		if s.Stage < prev {
			t.Fatalf("stage moved backward: %v → %v", prev, s.Stage)
		}
		prev = s.Stage
	}
}

func TestFinishCoding_OnlyFromCoding(t *testing.T) {
	s := testSession()
	if s.FinishCoding() {
		t.Fatal("FinishCoding outside coding stage must be a no-op")
	}
	s.Stage = StageCoding
	if !s.FinishCoding() {
		t.Fatal("FinishCoding in coding stage must transition")
	}
	// Duplicate completion signal.
	if s.FinishCoding() {
		t.Fatal("second FinishCoding must be a no-op")
	}
	if s.Stage != StageFinal {
		t.Errorf("Stage = %v, want final", s.Stage)
	}
}

func TestAttachFeedback_TargetsMostRecentCandidate(t *testing.T) {
	s := testSession()
	askAndAnswer(s, "Q1?", "first answer")
	askAndAnswer(s, "Q2?", "second answer")

	if !s.AttachFeedback(Feedback{Suggestion: "tighter"}) {
		t.Fatal("AttachFeedback failed")
	}

	if s.Messages[1].Feedback != nil {
		t.Error("feedback attached to an earlier candidate message")
	}
	got := s.Messages[3].Feedback
	if got == nil || got.Suggestion != "tighter" {
		t.Errorf("feedback = %+v, want on latest candidate message", got)
	}
}

func TestAttachFeedback_LatestWins(t *testing.T) {
	s := testSession()
	askAndAnswer(s, "Q?", "answer")

	s.AttachFeedback(Feedback{Suggestion: "old"})
	s.AttachFeedback(Feedback{Suggestion: "new"})

	if got := s.Messages[1].Feedback.Suggestion; got != "new" {
		t.Errorf("Suggestion = %q, want latest-wins overwrite", got)
	}
}

func TestAttachFeedback_NoCandidateMessage(t *testing.T) {
	s := testSession()
	s.Append(SenderInterviewer, "Q?")
	if s.AttachFeedback(Feedback{Suggestion: "x"}) {
		t.Fatal("attach must fail with no candidate message")
	}
}

func TestQuestionIndex(t *testing.T) {
	s := testSession()
	if s.QuestionIndex() != -1 {
		t.Errorf("QuestionIndex = %d before any question, want -1", s.QuestionIndex())
	}
	askAndAnswer(s, "Q1?", "A1")
	s.Append(SenderInterviewer, "Q2?")
	if s.QuestionIndex() != 1 {
		t.Errorf("QuestionIndex = %d, want 1", s.QuestionIndex())
	}
	if s.CurrentQuestion() != "Q2?" {
		t.Errorf("CurrentQuestion = %q, want Q2?", s.CurrentQuestion())
	}
}

func TestEnd_Idempotent(t *testing.T) {
	s := testSession()
	s.End()
	if !s.Ended || s.Stage != StageEnded {
		t.Fatalf("End did not terminate: ended=%v stage=%v", s.Ended, s.Stage)
	}
	s.End()
	if s.Stage != StageEnded {
		t.Error("second End changed state")
	}
}

func TestRecordSolved(t *testing.T) {
	s := testSession()
	s.RecordSolved(coding.SolvedProblem{Problem: coding.Problem{Title: "P1"}})
	s.RecordSolved(coding.SolvedProblem{Problem: coding.Problem{Title: "P2"}, Skipped: true})
	if len(s.Solved) != 2 {
		t.Fatalf("len(Solved) = %d, want 2", len(s.Solved))
	}
	if !s.Solved[1].Skipped {
		t.Error("skip flag lost")
	}
}
