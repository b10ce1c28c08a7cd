package interview

import (
	"fmt"
	"strings"

	"github.com/intervu-dev/intervu/internal/llm"
)

const interviewerSystemPrompt = `You are a professional interviewer running a live mock interview with a candidate.

Rules:
- Ask exactly ONE question per turn. Never ask multi-part questions.
- Keep every question between 20 and 25 words. No preamble, no filler.
- Never ask the candidate to write code unless explicitly told the interview is in its coding stage.
- Stay in character: direct, courteous, conversational. No meta commentary about the interview itself.`

// stageInstructions carries the per-stage contract appended to the system
// prompt. The coding stage has no entry because the interviewer does not ask
// generated questions there.
var stageInstructions = map[Stage]string{
	StageIntro:      "You are in the warm-up phase. Ask a light, personal ice-breaker question about the candidate's background or motivation.",
	StageTransition: "Bridge from small talk to substance. Ask about the candidate's experience relevant to the role.",
	StageTechnical:  "You are in the technical phase. Ask a conceptual technical question appropriate for the role. Discussion only, no code writing.",
	StageFinal:      "You are wrapping up. Ask one closing question, such as what the candidate would like to ask or their expectations.",
}

// Scripted stage-entry lines. Spoken verbatim, not generated.
const (
	LineCodingIntro  = "Great, that wraps up the discussion part. Let's move on to a short coding exercise."
	LineCodingOutro  = "Nice work on the coding round. Let's finish with a couple of final questions."
	LineSessionClose = "Thank you for your time today. We will get back to you with feedback shortly."
)

// buildQuestionRequest assembles the generation request for the next
// interviewer question in the session's current stage.
func buildQuestionRequest(s *Session, cfg Config) llm.Request {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", interviewerSystemPrompt)
	fmt.Fprintf(&b, "Role under interview: %s\n", s.Role)
	fmt.Fprintf(&b, "Company type: %s\n", s.Company)
	if instr, ok := stageInstructions[s.Stage]; ok {
		fmt.Fprintf(&b, "\n%s", instr)
	}

	return llm.Request{
		System:      b.String(),
		Messages:    conversation(s),
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
}

// conversation maps the message log onto model roles: the interviewer is the
// assistant, the candidate is the user. A leading placeholder turn keeps the
// sequence starting with a user message, which some providers require.
func conversation(s *Session) []llm.Message {
	msgs := []llm.Message{
		{Role: llm.RoleUser, Content: "I'm ready. Please begin the interview."},
	}
	for _, m := range s.Messages {
		role := llm.RoleUser
		if m.Sender == SenderInterviewer {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Text})
	}
	return msgs
}

const critiqueSystemPrompt = `You are an interview coach. Given an interview question and the candidate's answer, produce a short critique.

Rules:
- "suggestion": one or two sentences on how to improve the answer. Specific, actionable, kind.
- "example": a rephrased version of the answer showing the improvement, in the candidate's voice, at most 40 words.
- Judge only the answer given. Do not invent facts about the candidate.`

// CritiqueSchema constrains critique responses to the two expected fields.
var CritiqueSchema = &llm.Schema{
	Name:        "answer-critique",
	Description: "A suggestion and a rephrased example for an interview answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"suggestion": map[string]any{
				"type":        "string",
				"description": "How the candidate could improve this answer",
			},
			"example": map[string]any{
				"type":        "string",
				"description": "A rephrased example answer demonstrating the suggestion",
			},
		},
		"required":             []any{"suggestion", "example"},
		"additionalProperties": false,
	},
}

func buildCritiqueMessage(question, answer string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\n", question)
	fmt.Fprintf(&b, "Candidate answer: %s\n", answer)
	return b.String()
}
