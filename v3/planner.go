package v3

import (
	"github.com/icza/gdreplay/action"
	"github.com/icza/gdreplay/bitio"
)

// maxSectionActions bounds how many wire-level player inputs (a swift
// pair counting as one) a single greedily-gathered player run can span,
// independent of the power-of-two truncation that follows; it exists
// purely as a safety bound against pathological runs.
const maxSectionActions = 1 << 16

// prepareSections plans actions (mutated in place to flag swift pairs)
// into the section stream an ActionAtom serializes. Non-player actions
// become their own Special section; runs of player actions are gathered
// greedily, truncated to a power-of-two length, and handed to
// section.runLengthEncode for cluster detection.
func prepareSections(actions []action.Action) ([]section, error) {
	var sections []section

	i := 0
	for i < len(actions) {
		if !actions[i].IsPlayer() {
			sec, err := newSpecial(&actions[i])
			if err != nil {
				return nil, err
			}
			sections = append(sections, sec)
			i++
			continue
		}

		count := 1
		pureCount := 1
		swifts := 0
		pureSwifts := 0
		start := i
		minSize := actions[i].MinimumSizeExp()

		for canJoin(actions, pureCount, i) {
			i++
			count++

			if swiftCompatible(actions, i) {
				actions[i-1].Swift = true
				actions[i].Swift = true
				swifts++
			} else {
				pureCount++
			}

			if bitio.LargestPowerOfTwo(pureCount) == pureCount {
				pureSwifts = swifts
			}
		}

		count = bitio.LargestPowerOfTwo(pureCount)
		i = start + count + pureSwifts

		sec := playerFromRange(actions, start, i)
		sec.deltaSize = uint16(minSize)

		sections = append(sections, sec.runLengthEncode()...)
	}

	return sections, nil
}

// swiftCompatible reports whether actions[i] is the release half of a
// swift-eligible Jump tap immediately following actions[i-1].
func swiftCompatible(actions []action.Action, i int) bool {
	if i == 0 {
		return false
	}
	return actions[i].Delta == 0 &&
		!actions[i].Hold &&
		actions[i-1].Hold != actions[i].Hold &&
		actions[i-1].Player2 == actions[i].Player2 &&
		actions[i-1].Kind == actions[i].Kind &&
		actions[i].Kind == action.KindJump
}

// canJoin reports whether the run being gathered at actions[i] may
// extend to include actions[i+1]: both must be player actions requiring
// the same wire delta width, and the run must still be under the safety
// bound.
func canJoin(actions []action.Action, count, i int) bool {
	return i < len(actions)-1 &&
		count < maxSectionActions &&
		actions[i+1].IsPlayer() &&
		actions[i+1].MinimumSizeExp() == actions[i].MinimumSizeExp()
}
