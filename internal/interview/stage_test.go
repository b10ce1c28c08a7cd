package interview

import "testing"

func TestStageRoundTrip(t *testing.T) {
	for s := StageIntro; s <= StageEnded; s++ {
		if got := StageFromString(s.String()); got != s {
			t.Errorf("StageFromString(%q) = %v, want %v", s.String(), got, s)
		}
	}
	if got := StageFromString("bogus"); got != StageIntro {
		t.Errorf("StageFromString(bogus) = %v, want intro", got)
	}
}

func TestStageNext_TerminalAndOrdered(t *testing.T) {
	order := []Stage{StageIntro, StageTransition, StageTechnical, StageCoding, StageFinal, StageEnded}
	for i := 0; i < len(order)-1; i++ {
		if got := order[i].Next(); got != order[i+1] {
			t.Errorf("%v.Next() = %v, want %v", order[i], got, order[i+1])
		}
	}
	if got := StageEnded.Next(); got != StageEnded {
		t.Errorf("StageEnded.Next() = %v, want StageEnded", got)
	}
}

func TestStageAsks(t *testing.T) {
	asks := map[Stage]bool{
		StageIntro:      true,
		StageTransition: true,
		StageTechnical:  true,
		StageCoding:     false,
		StageFinal:      true,
		StageEnded:      false,
	}
	for s, want := range asks {
		if got := s.Asks(); got != want {
			t.Errorf("%v.Asks() = %v, want %v", s, got, want)
		}
	}
}
