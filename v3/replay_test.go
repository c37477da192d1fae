package v3

import (
	"bytes"
	"testing"

	"github.com/icza/gdreplay/action"
)

func TestEmptyReplayRoundTrip(t *testing.T) {
	r := NewReplay(NewMetadata(240, 0, 1))

	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(bytes.NewReader(buf.Bytes()), Config{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Metadata.TPS != 240 {
		t.Errorf("expected TPS 240, got %v", got.Metadata.TPS)
	}
	if len(got.Atoms) != 0 {
		t.Errorf("expected no atoms, got %d", len(got.Atoms))
	}
}

func TestSingleActionRoundTrip(t *testing.T) {
	r := NewReplay(NewMetadata(240, 123, 1))
	r.AddAction(action.NewPlayer(0, 5, action.KindJump, true, false))

	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(bytes.NewReader(buf.Bytes()), Config{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	actions := flattenActions(t, got.Atoms)
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(actions))
	}
	if actions[0].Frame != 5 || actions[0].Kind != action.KindJump || !actions[0].Hold {
		t.Errorf("unexpected action: %+v", actions[0])
	}
}

func TestSwiftPairRoundTrip(t *testing.T) {
	r := NewReplay(NewMetadata(240, 0, 1))
	r.AddAction(action.NewPlayer(0, 10, action.KindJump, true, false))
	r.AddAction(action.NewPlayer(10, 0, action.KindJump, false, false))
	r.AddAction(action.NewPlayer(10, 20, action.KindLeft, true, false))

	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(bytes.NewReader(buf.Bytes()), Config{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	actions := flattenActions(t, got.Atoms)
	if len(actions) != 3 {
		t.Fatalf("expected 3 actions (swift pair expands back to 2), got %d", len(actions))
	}
	if actions[0].Frame != 10 || !actions[0].Hold {
		t.Errorf("unexpected press action: %+v", actions[0])
	}
	if actions[1].Frame != 10 || actions[1].Hold {
		t.Errorf("unexpected release action: %+v", actions[1])
	}
	if actions[2].Frame != 30 || actions[2].Kind != action.KindLeft {
		t.Errorf("unexpected third action: %+v", actions[2])
	}
}

func TestSpecialActionRoundTrip(t *testing.T) {
	r := NewReplay(NewMetadata(240, 0, 1))
	r.AddAction(action.NewPlayer(0, 5, action.KindJump, true, false))
	r.AddAction(action.NewDeath(5, 100, action.KindDeath, 0xcafe))
	r.AddAction(action.NewTPS(105, 50, 480))

	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(bytes.NewReader(buf.Bytes()), Config{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	actions := flattenActions(t, got.Atoms)
	if len(actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(actions))
	}
	if actions[1].Kind != action.KindDeath || actions[1].Seed != 0xcafe || actions[1].Frame != 105 {
		t.Errorf("unexpected death action: %+v", actions[1])
	}
	if actions[2].Kind != action.KindTPS || actions[2].TPS != 480 || actions[2].Frame != 155 {
		t.Errorf("unexpected tps action: %+v", actions[2])
	}
}

func TestRunLengthEncodedRoundTrip(t *testing.T) {
	r := NewReplay(NewMetadata(240, 0, 1))

	frame := uint64(0)
	for i := 0; i < 10; i++ {
		for _, step := range []struct {
			kind *action.Kind
			hold bool
		}{
			{action.KindLeft, true},
			{action.KindLeft, false},
			{action.KindRight, true},
			{action.KindRight, false},
		} {
			frame++
			r.AddAction(action.NewPlayer(frame-1, 1, step.kind, step.hold, false))
		}
	}

	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(bytes.NewReader(buf.Bytes()), Config{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	actions := flattenActions(t, got.Atoms)
	if len(actions) != 40 {
		t.Fatalf("expected 40 actions to survive the repeating pattern, got %d", len(actions))
	}
	for i, a := range actions {
		if a.Frame != uint64(i+1) {
			t.Errorf("action %d: expected frame %d, got %d", i, i+1, a.Frame)
		}
	}

	// I4: write(read(write(R))) == write(R), byte for byte.
	var buf2 bytes.Buffer
	if err := got.Write(&buf2); err != nil {
		t.Fatalf("re-Write: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), buf2.Bytes()) {
		t.Errorf("expected re-written replay to be byte-identical to the original:\noriginal: % x\nre-written: % x", buf.Bytes(), buf2.Bytes())
	}
}

func flattenActions(t *testing.T, atoms []Atom) []action.Action {
	t.Helper()
	var actions []action.Action
	for _, a := range atoms {
		if aa, ok := a.(*ActionAtom); ok {
			actions = append(actions, aa.Actions...)
		}
	}
	return actions
}
