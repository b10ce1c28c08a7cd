package interview

// Stage is one phase of the scripted interview. Stages are strictly ordered
// and only ever move forward.
type Stage int

const (
	StageIntro Stage = iota
	StageTransition
	StageTechnical
	StageCoding
	StageFinal
	StageEnded
)

var stageNames = map[Stage]string{
	StageIntro:      "intro",
	StageTransition: "transition",
	StageTechnical:  "technical",
	StageCoding:     "coding",
	StageFinal:      "final",
	StageEnded:      "ended",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// StageFromString parses a stage name back to its Stage. Unknown names map
// to StageIntro.
func StageFromString(name string) Stage {
	for s, n := range stageNames {
		if n == name {
			return s
		}
	}
	return StageIntro
}

// Next returns the stage that follows s. StageEnded is terminal.
func (s Stage) Next() Stage {
	if s >= StageEnded {
		return StageEnded
	}
	return s + 1
}

// Asks reports whether the interviewer asks generated questions in this
// stage. The coding stage presents problems instead, and ended is silent.
func (s Stage) Asks() bool {
	return s != StageCoding && s != StageEnded
}
