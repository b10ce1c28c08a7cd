package interview

// Config holds stage-machine tuning.
type Config struct {
	// Question quotas per stage before advancing.
	IntroQuestions      int
	TransitionQuestions int
	TechnicalQuestions  int

	// WordLimit is the hard cap on interviewer question length, in
	// whitespace-delimited tokens. Generated text is clamped to this even
	// when the model ignores the instruction.
	WordLimit int

	// FallbackSuggestion is attached when critique generation fails.
	FallbackSuggestion string

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the scripted interview shape: 2 intro questions,
// 1 transition, 4 technical, then the coding round, then the wrap-up.
func DefaultConfig() Config {
	return Config{
		IntroQuestions:      2,
		TransitionQuestions: 1,
		TechnicalQuestions:  4,
		WordLimit:           25,
		FallbackSuggestion:  "Try to structure your answer: situation, action, result.",
		MaxTokens:           300,
		Temperature:         0.7,
	}
}
