package v3

import (
	"github.com/icza/gdreplay/action"
	"github.com/icza/gdreplay/bitio"
	"github.com/icza/gdreplay/gderr"
)

// sectionIdentifier is the 2-bit tag in the top bits of a section header.
type sectionIdentifier byte

const (
	sectionInput sectionIdentifier = iota
	sectionRepeat
	sectionSpecial
)

// specialType is the Special section's own 4-value enumeration, distinct
// from action.Kind's wire tag: a section only ever carries one of the
// four non-player kinds, numbered 0-3 in the header's 4-bit special type
// field; values 4-15 are rejected on read.
type specialType byte

const (
	specialRestart specialType = iota
	specialRestartFull
	specialDeath
	specialTPS
)

func specialTypeForKind(k *action.Kind) (specialType, bool) {
	switch k {
	case action.KindRestart:
		return specialRestart, true
	case action.KindRestartFull:
		return specialRestartFull, true
	case action.KindDeath:
		return specialDeath, true
	case action.KindTPS:
		return specialTPS, true
	default:
		return 0, false
	}
}

func (s specialType) kind() *action.Kind {
	switch s {
	case specialRestart:
		return action.KindRestart
	case specialRestartFull:
		return action.KindRestartFull
	case specialDeath:
		return action.KindDeath
	default:
		return action.KindTPS
	}
}

// button is the 2-bit button tag of a player-input state word.
type button byte

const (
	buttonSwift button = iota
	buttonJump
	buttonLeft
	buttonRight
)

func (b button) kind() *action.Kind {
	switch b {
	case buttonLeft:
		return action.KindLeft
	case buttonRight:
		return action.KindRight
	default:
		return action.KindJump
	}
}

func buttonForAction(a *action.Action) button {
	if a.Swift {
		return buttonSwift
	}
	switch a.Kind {
	case action.KindLeft:
		return buttonLeft
	case action.KindRight:
		return buttonRight
	default:
		return buttonJump
	}
}

// playerInput is one wire-level player action inside an Input or Repeat
// section: a delta, a button tag, and the hold/player2 bits.
type playerInput struct {
	frame   uint64
	delta   uint64
	button  button
	holding bool
	player2 bool
}

func playerInputFromAction(a *action.Action) playerInput {
	return playerInput{
		frame:   a.Frame,
		delta:   a.Delta,
		button:  buttonForAction(a),
		holding: a.Hold,
		player2: a.Player2,
	}
}

func playerInputFromState(prevFrame, state uint64) playerInput {
	delta := state >> 4
	return playerInput{
		frame:   prevFrame + delta,
		delta:   delta,
		button:  button((state >> 2) & 0b11),
		holding: state&0b1 == 0b1,
		player2: state&0b10 == 0b10,
	}
}

func (p playerInput) prepareState(byteSize uint8) uint64 {
	var mask uint64 = ^uint64(0)
	if byteSize != 8 {
		mask = (uint64(1) << (uint64(byteSize) * 8)) - 1
	}
	state := p.delta<<4 | uint64(p.button)<<2 | b2u(p.player2)<<1 | b2u(p.holding)
	return mask & state
}

func (p playerInput) weakEq(o playerInput) bool {
	return p.delta == o.delta && p.holding == o.holding && p.player2 == o.player2 && p.button == o.button
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// section is one framed run inside an ActionAtom's payload: a run of
// player inputs (Input), a repeated cluster of player inputs (Repeat),
// or a single non-player action (Special).
type section struct {
	id           sectionIdentifier
	deltaSize    uint16
	playerInputs []playerInput
	countExp     uint16
	repeatsExp   uint16
	specialType  specialType
	seed         uint64
	tps          float64
	special      *action.Action
}

func (s *section) realDeltaSize() uint64 { return uint64(1) << s.deltaSize }
func (s *section) inputCount() uint64    { return uint64(1) << s.countExp }
func (s *section) repeatCount() uint64   { return uint64(1) << s.repeatsExp }

// playerFromRange builds a single Input section from actions[start:end],
// dropping the absorbed (release) half of every swift pair: an action is
// kept when it is held down, or when it isn't part of a swift pair at
// all.
func playerFromRange(actions []action.Action, start, end int) section {
	var inputs []playerInput
	for i := start; i < end; i++ {
		a := &actions[i]
		if a.Hold || !a.Swift {
			inputs = append(inputs, playerInputFromAction(a))
		}
	}
	return section{
		id:           sectionInput,
		playerInputs: inputs,
		countExp:     bitio.ExponentOfTwo(uint32(len(inputs))),
	}
}

// newSpecial builds a Special section from a single non-player action.
func newSpecial(a *action.Action) (section, error) {
	st, ok := specialTypeForKind(a.Kind)
	if !ok {
		return section{}, gderr.New(gderr.KindUnsupported)
	}
	return section{
		id:          sectionSpecial,
		deltaSize:   uint16(a.MinimumSizeExp()),
		specialType: st,
		seed:        a.Seed,
		tps:         a.TPS,
		special:     a,
	}, nil
}

const maxClusterSize = 64

// runLengthEncode splits a single Input section's player inputs into a
// mix of Repeat sections (where an identical-shape cluster occurs at
// least three times back to back) and Input sections (for whatever
// doesn't repeat), in wire order.
func (s *section) runLengthEncode() []section {
	var sections []section
	var free []playerInput

	n := len(s.playerInputs)
	idx := 0

	for idx < n {
		foundAny := false
		var bestCluster, bestRepetitions int
		var bestScore int64

		for cluster := 1; cluster <= maxClusterSize && cluster <= n; cluster <<= 1 {
			if idx+cluster >= n {
				break
			}

			offset := 1
			for {
				start := idx + offset*cluster
				end := idx + (offset+1)*cluster
				if end > n {
					break
				}
				allEqual := true
				for j := 0; j < cluster; j++ {
					if !s.playerInputs[idx+j].weakEq(s.playerInputs[start+j]) {
						allEqual = false
						break
					}
				}
				if !allEqual {
					break
				}
				offset++
			}
			offset--
			if offset <= 1 {
				continue
			}
			offset = bitio.LargestPowerOfTwo(offset)

			score := int64(cluster) * int64(offset-1)
			if score > bestScore {
				foundAny = true
				bestScore = score
				bestCluster = cluster
				bestRepetitions = offset
			}
		}

		if foundAny {
			sections = distributeInputs(sections, free, s.deltaSize)
			free = nil

			sections = append(sections, section{
				id:           sectionRepeat,
				deltaSize:    s.deltaSize,
				playerInputs: append([]playerInput(nil), s.playerInputs[idx:idx+bestCluster]...),
				countExp:     bitio.ExponentOfTwo(uint32(bestCluster)),
				repeatsExp:   bitio.ExponentOfTwo(uint32(bestRepetitions)),
			})
			idx += bestCluster * bestRepetitions
		} else {
			free = append(free, s.playerInputs[idx])
			idx++
		}
	}

	sections = distributeInputs(sections, free, s.deltaSize)
	return sections
}

// distributeInputs packs leftover (non-repeating) inputs into as few
// power-of-two-sized Input sections as possible.
func distributeInputs(sections []section, inputs []playerInput, deltaSize uint16) []section {
	i := 0
	for i < len(inputs) {
		count := bitio.LargestPowerOfTwo(len(inputs) - i)
		sections = append(sections, section{
			id:           sectionInput,
			deltaSize:    deltaSize,
			playerInputs: append([]playerInput(nil), inputs[i:i+count]...),
			countExp:     bitio.ExponentOfTwo(uint32(count)),
		})
		i += count
	}
	return sections
}
