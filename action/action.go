/*

Package action defines the canonical, wire-format-agnostic representation
of a single replay input: a timestamped button press, death, restart or
pacing change. Both the v2 and v3 codecs decode into and encode from this
same record; the wire-level differences (blob runs vs. run-length encoded
sections) live in their own packages.

*/
package action

import "fmt"

// Enum is the base / common part of enum types in this package.
type Enum struct {
	// Name of the entity
	Name string
}

// String returns the string representation of the enum (the name).
func (e Enum) String() string {
	return e.Name
}

// UnknownEnum constructs a new Enum for an unknown entity with a name:
//
//	"Unknown 0xID"
func UnknownEnum(id any) Enum {
	return Enum{fmt.Sprintf("Unknown 0x%x", id)}
}

// Kind identifies what an Action represents: a player button, or one of
// the special (non-player) actions.
type Kind struct {
	Enum

	// ID is the 3-bit wire tag of v2's input state word. v3 does not
	// write it: its sections use their own 2-bit button and special-type
	// tags.
	ID byte
}

// Kinds is an enumeration of the possible action kinds, indexed by wire ID.
var Kinds = []*Kind{
	{Enum{"Skip"}, 0},
	{Enum{"Jump"}, 1},
	{Enum{"Left"}, 2},
	{Enum{"Right"}, 3},
	{Enum{"Restart"}, 4},
	{Enum{"Restart Full"}, 5},
	{Enum{"Death"}, 6},
	{Enum{"TPS"}, 7},
}

// Named kinds
var (
	KindSkip        = Kinds[0]
	KindJump        = Kinds[1]
	KindLeft        = Kinds[2]
	KindRight       = Kinds[3]
	KindRestart     = Kinds[4]
	KindRestartFull = Kinds[5]
	KindDeath       = Kinds[6]
	KindTPS         = Kinds[7]
)

// KindByID returns the Kind for a given wire tag.
// A new Kind with Unknown name is returned if one is not found for the
// given ID (preserving the unknown ID). An ID decoded from a v2 stream
// never takes this path, since the tag is 3 bits wide (0-7) and all eight
// values are named.
func KindByID(id byte) *Kind {
	if int(id) < len(Kinds) {
		return Kinds[id]
	}
	return &Kind{UnknownEnum(id), id}
}

// IsPlayer tells whether the kind represents a player button (as opposed
// to a special, non-player action).
func (k *Kind) IsPlayer() bool {
	return k == KindJump || k == KindLeft || k == KindRight
}

// Action is a single timestamped replay input, decoded from either wire
// format into this common representation.
type Action struct {
	// Frame is the absolute frame the action occurs on.
	Frame uint64

	// Delta is the frame distance to the previous action (Frame of the
	// previous action in the same stream, 0 for the first one). Both
	// codecs derive Frame from a running total of Delta values when
	// decoding; when encoding they write Delta as stored and do not
	// recompute it from Frame.
	Delta uint64

	// Kind is the action's wire tag.
	Kind *Kind

	// Hold is the button-down state for player Kinds (Jump/Left/Right).
	// Unused for special Kinds.
	Hold bool

	// Player2 marks the action as belonging to the second player.
	// Meaningful for player Kinds only; neither wire format stores it for
	// special Kinds.
	Player2 bool

	// Seed is the RNG seed recorded with a Restart/RestartFull/Death
	// action. v3-only; v2 carries no seed for these kinds.
	Seed uint64

	// TPS is the new ticks-per-second value carried by a TPS action.
	TPS float64

	// Swift marks a Jump-press immediately followed (zero delta, same
	// player) by a Jump-release: v3's encoder collapses such a pair into
	// a single wire entry and flags both logical actions Swift so a
	// decoder can tell the pair apart from an ordinary tap. v2 has no
	// such optimization and never sets this field.
	Swift bool
}

// IsPlayer tells whether this action represents a player button event.
func (a *Action) IsPlayer() bool {
	return a.Kind.IsPlayer()
}

// NewPlayer constructs a player button Action occurring delta frames
// after currentFrame.
func NewPlayer(currentFrame, delta uint64, kind *Kind, hold, player2 bool) Action {
	return Action{Frame: currentFrame + delta, Delta: delta, Kind: kind, Hold: hold, Player2: player2}
}

// NewDeath constructs a Restart / RestartFull / Death Action occurring
// delta frames after currentFrame.
func NewDeath(currentFrame, delta uint64, kind *Kind, seed uint64) Action {
	return Action{Frame: currentFrame + delta, Delta: delta, Kind: kind, Seed: seed}
}

// NewTPS constructs a TPS-change Action occurring delta frames after
// currentFrame.
func NewTPS(currentFrame, delta uint64, tps float64) Action {
	return Action{Frame: currentFrame + delta, Delta: delta, Kind: KindTPS, TPS: tps}
}

// stateWord packs the common (Skip/Player/Restart/RestartFull/Death/TPS)
// tag, hold bit and player2 bit into the low 5 bits of a v2 input state
// word, with Delta occupying the remaining high bits. This mirrors
// the v2 wire layout (bits0-1 hold/player2, bits2-4 the 3-bit tag,
// bits5-63 the delta).
func (a *Action) stateWord() uint64 {
	var state uint64
	if a.IsPlayer() {
		state = uint64(a.Kind.ID)<<2 | b2u(a.Hold) | b2u(a.Player2)<<1
	} else {
		state = uint64(a.Kind.ID) << 2
	}
	return state | a.Delta<<5
}

// StateWord returns the v2 input state word for this action (sans TPS
// payload, which is written separately).
func (a *Action) StateWord() uint64 {
	return a.stateWord()
}

// RequiredBytes returns the minimum number of bytes the v2 state word
// needs. A TPS action's state word always takes 8 bytes; its trailing
// float64 is written separately and is not counted here.
func (a *Action) RequiredBytes() uint8 {
	if a.Kind == KindTPS {
		return 8
	}
	state := a.stateWord()
	switch {
	case state < 0x100:
		return 1
	case state < 0x10000:
		return 2
	case state < 0x100000000:
		return 4
	default:
		return 8
	}
}

// MinimumSizeExp returns the v3 delta-size exponent e in {0,1,2,3}: the
// smallest e such that Delta fits in the reserved bit-width the section
// codec assigns a Kind-dependent "offset" number of low bits to (4 for
// player Kinds, 8 for special Kinds), given the word widths 1/2/4/8 bytes.
func (a *Action) MinimumSizeExp() uint8 {
	offset := uint(8)
	if a.IsPlayer() {
		offset = 4
	}

	oneByte := uint64(1) << offset
	twoByte := uint64(1) << (offset + 8)
	fourByte := uint64(1) << (offset + 24)

	switch {
	case a.Delta < oneByte:
		return 0
	case a.Delta < twoByte:
		return 1
	case a.Delta < fourByte:
		return 2
	default:
		return 3
	}
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
