package v3

import (
	"github.com/icza/gdreplay/action"
	"github.com/icza/gdreplay/bitio"
	"github.com/icza/gdreplay/gderr"
)

// readSection decodes one section from r, appending the action(s) it
// expands to onto actions.
func readSection(r *bitio.Reader, actions *[]action.Action) error {
	initial := r.Uint16()
	id := sectionIdentifier(initial >> 14)

	switch id {
	case sectionInput:
		deltaSize := (initial >> 12) & 0b11
		countExp := (initial >> 8) & 0b1111

		byteSize := uint64(1) << deltaSize
		length := uint64(1) << countExp

		prevFrame := lastFrame(*actions)
		for i := uint64(0); i < length; i++ {
			state := r.UintN(int(byteSize))
			p := playerInputFromState(prevFrame, state)
			appendPlayerInput(actions, prevFrame, p)
			prevFrame = lastFrame(*actions)
		}

	case sectionRepeat:
		deltaSize := (initial >> 12) & 0b11
		countExp := (initial >> 8) & 0b1111
		repeatsExp := (initial >> 3) & 0b11111

		byteSize := uint64(1) << deltaSize
		length := uint64(1) << countExp
		repeats := uint64(1) << repeatsExp

		inputs := make([]playerInput, 0, length)
		var localFrame uint64
		for i := uint64(0); i < length; i++ {
			state := r.UintN(int(byteSize))
			p := playerInputFromState(localFrame, state)
			localFrame = p.frame
			inputs = append(inputs, p)
		}

		for rep := uint64(0); rep < repeats; rep++ {
			prevFrame := lastFrame(*actions)
			for _, p := range inputs {
				appendPlayerInput(actions, prevFrame, p)
				prevFrame = lastFrame(*actions)
			}
		}

	case sectionSpecial:
		deltaSize := (initial >> 8) & 0b11
		typeTag := (initial >> 10) & 0b1111

		byteSize := uint64(1) << deltaSize
		frameDelta := r.UintN(int(byteSize))

		currentFrame := lastFrame(*actions)

		st := specialType(typeTag)
		switch st {
		case specialTPS:
			tps := r.Float64()
			*actions = append(*actions, action.NewTPS(currentFrame, frameDelta, tps))
		case specialRestart, specialRestartFull, specialDeath:
			seed := r.Uint64()
			*actions = append(*actions, action.NewDeath(currentFrame, frameDelta, st.kind(), seed))
		default:
			return gderr.New(gderr.KindInvalidSpecialType)
		}

	default:
		return gderr.New(gderr.KindInvalidSectionIdentifier)
	}

	return nil
}

// appendPlayerInput expands one wire-level player input into one action
// (the ordinary case) or two (a swift Jump pair), relative to prevFrame.
func appendPlayerInput(actions *[]action.Action, prevFrame uint64, p playerInput) {
	if p.button == buttonSwift {
		press := action.NewPlayer(prevFrame, p.delta, action.KindJump, true, p.player2)
		press.Swift = true
		*actions = append(*actions, press)

		release := action.NewPlayer(press.Frame, 0, action.KindJump, false, p.player2)
		release.Swift = true
		*actions = append(*actions, release)
		return
	}

	*actions = append(*actions, action.NewPlayer(prevFrame, p.delta, p.button.kind(), p.holding, p.player2))
}

func lastFrame(actions []action.Action) uint64 {
	if len(actions) == 0 {
		return 0
	}
	return actions[len(actions)-1].Frame
}

// write encodes the section's wire framing and payload.
func (s *section) write(w *bitio.Writer) {
	switch s.id {
	case sectionInput:
		header := s.countExp<<8 | s.deltaSize<<12
		w.Uint16(header)
		s.writePlayerInputs(w)

	case sectionRepeat:
		header := uint16(sectionRepeat)<<14 | s.deltaSize<<12 | s.countExp<<8 | s.repeatsExp<<3
		w.Uint16(header)
		s.writePlayerInputs(w)

	case sectionSpecial:
		header := uint16(sectionSpecial)<<14 | uint16(s.specialType)<<10 | s.deltaSize<<8
		w.Uint16(header)

		w.UintN(s.special.Delta, int(s.realDeltaSize()))

		switch s.specialType {
		case specialTPS:
			w.Float64(s.tps)
		default:
			w.Uint64(s.seed)
		}
	}
}

func (s *section) writePlayerInputs(w *bitio.Writer) {
	byteSize := uint8(s.realDeltaSize())
	for _, p := range s.playerInputs {
		w.UintN(p.prepareState(byteSize), int(byteSize))
	}
}
