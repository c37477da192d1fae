package v3

import (
	"testing"

	"github.com/icza/gdreplay/action"
)

func TestPlayerInputStateRoundTrip(t *testing.T) {
	p := playerInput{delta: 12, button: buttonLeft, holding: true, player2: false}
	state := p.prepareState(1)
	got := playerInputFromState(0, state)
	if got.delta != p.delta || got.button != p.button || got.holding != p.holding || got.player2 != p.player2 {
		t.Errorf("round trip mismatch: want %+v, got %+v", p, got)
	}
}

func TestWeakEqIgnoresFrame(t *testing.T) {
	a := playerInput{frame: 10, delta: 5, button: buttonJump, holding: true}
	b := playerInput{frame: 999, delta: 5, button: buttonJump, holding: true}
	if !a.weakEq(b) {
		t.Errorf("expected weakEq to ignore frame")
	}
	c := playerInput{frame: 10, delta: 5, button: buttonJump, holding: false}
	if a.weakEq(c) {
		t.Errorf("expected weakEq to notice differing holding")
	}
}

func TestSpecialTypeKindMapping(t *testing.T) {
	kinds := []*action.Kind{action.KindRestart, action.KindRestartFull, action.KindDeath, action.KindTPS}
	for _, k := range kinds {
		st, ok := specialTypeForKind(k)
		if !ok {
			t.Fatalf("expected %v to map to a specialType", k)
		}
		if got := st.kind(); got != k {
			t.Errorf("round trip mismatch for %v: got %v", k, got)
		}
	}

	if _, ok := specialTypeForKind(action.KindSkip); ok {
		t.Errorf("expected KindSkip to have no specialType mapping")
	}
}

func TestNewSpecialRejectsUnsupportedKind(t *testing.T) {
	a := action.NewPlayer(0, 0, action.KindJump, false, false)
	if _, err := newSpecial(&a); err == nil {
		t.Errorf("expected an error for a non-special kind")
	}

	skip := action.Action{Kind: action.KindSkip}
	if _, err := newSpecial(&skip); err == nil {
		t.Errorf("expected an error for Skip, which v3 cannot represent")
	}
}

func TestDistributeInputsPowerOfTwoChunks(t *testing.T) {
	inputs := make([]playerInput, 5)
	sections := distributeInputs(nil, inputs, 0)

	var total int
	for _, s := range sections {
		total += int(s.inputCount())
		if int(s.inputCount()) != len(s.playerInputs) {
			t.Errorf("section inputCount() %d does not match len(playerInputs) %d", s.inputCount(), len(s.playerInputs))
		}
	}
	if total != len(inputs) {
		t.Errorf("expected distributed sections to cover all %d inputs, got %d", len(inputs), total)
	}
}

func TestRunLengthEncodeDetectsRepeats(t *testing.T) {
	var inputs []playerInput
	for i := 0; i < 10; i++ {
		inputs = append(inputs,
			playerInput{delta: 1, button: buttonLeft, holding: true},
			playerInput{delta: 1, button: buttonLeft, holding: false},
			playerInput{delta: 1, button: buttonRight, holding: true},
			playerInput{delta: 1, button: buttonRight, holding: false},
		)
	}
	s := section{id: sectionInput, playerInputs: inputs}
	got := s.runLengthEncode()

	var total uint64
	foundRepeat := false
	for _, sec := range got {
		switch sec.id {
		case sectionRepeat:
			foundRepeat = true
			total += sec.inputCount() * sec.repeatCount()
		case sectionInput:
			total += sec.inputCount()
		}
	}
	if !foundRepeat {
		t.Errorf("expected a repeating cluster to be detected in 10 repetitions of a 4-input pattern")
	}
	if total != uint64(len(inputs)) {
		t.Errorf("expected section lengths to sum to %d, got %d", len(inputs), total)
	}
}
