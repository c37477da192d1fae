package v2

import (
	"github.com/icza/gdreplay/action"
	"github.com/icza/gdreplay/bitio"
)

// blobMemSize is the wire cost (in bytes) of one blob index entry:
// byte_size, start and length, each a little-endian uint64.
const blobMemSize = 24

// blob is one contiguous run of inputs sharing the same wire word width.
type blob struct {
	byteSize uint64
	start    uint64
	length   uint64
}

func (b *blob) read(r *bitio.Reader) {
	b.byteSize = r.Uint64()
	b.start = r.Uint64()
	b.length = r.Uint64()
}

func (b *blob) write(w *bitio.Writer) {
	w.Uint64(b.byteSize)
	w.Uint64(b.start)
	w.Uint64(b.length)
}

// readInputs decodes b.length actions at byteSize width, starting from
// the running frame tracker, appending them to actions.
func readInputs(r *bitio.Reader, b *blob, actions *[]action.Action, frame *uint64) {
	for i := uint64(0); i < b.length; i++ {
		a := readInput(r, *frame, b.byteSize)
		*actions = append(*actions, a)
		*frame = a.Frame
	}
}

// writeInputs encodes the slice of this blob's actions (actions[start:start+length])
// at byteSize width. A zero-length blob (one fully absorbed by the
// fusion pass) writes nothing.
func writeInputs(w *bitio.Writer, b *blob, actions []action.Action) {
	if b.length == 0 {
		return
	}
	for _, a := range actions[b.start : b.start+b.length] {
		writeInput(w, &a, b.byteSize)
	}
}

// readInput decodes a single v2 input state word (and, for a TPS kind,
// its trailing float64) at the given byte width.
func readInput(r *bitio.Reader, currentFrame, byteSize uint64) action.Action {
	state := r.UintN(int(byteSize))

	delta := state >> 5
	frame := currentFrame + delta
	tag := byte((state & 0b11100) >> 2)
	kind := action.KindByID(tag)

	a := action.Action{Frame: frame, Delta: delta, Kind: kind}

	switch {
	case kind.IsPlayer():
		a.Hold = state&1 != 0
		a.Player2 = state&2 != 0
	case kind == action.KindTPS:
		a.TPS = r.Float64()
	}

	return a
}

// writeInput encodes a single action as a v2 input state word at the
// given byte width, followed by a trailing float64 for a TPS action.
func writeInput(w *bitio.Writer, a *action.Action, byteSize uint64) {
	w.UintN(a.StateWord(), int(byteSize))
	if a.Kind == action.KindTPS {
		w.Float64(a.TPS)
	}
}
