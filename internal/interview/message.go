package interview

import "time"

// Sender identifies which side of the dialogue produced a message.
type Sender string

const (
	SenderInterviewer Sender = "interviewer"
	SenderCandidate   Sender = "candidate"
)

// Feedback is the critique attached to a candidate answer after the fact:
// a short suggestion plus a rephrased example answer.
type Feedback struct {
	Suggestion string `json:"suggestion"`
	Example    string `json:"example"`
}

// Message is one turn in the dialogue. Immutable once appended, except for
// Feedback, which is filled in asynchronously once a critique resolves.
type Message struct {
	Sender   Sender    `json:"sender"`
	Text     string    `json:"text"`
	Time     time.Time `json:"time"`
	Stage    Stage     `json:"stage"`
	Feedback *Feedback `json:"feedback,omitempty"`
}
