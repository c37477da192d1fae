package v3

import (
	"github.com/icza/gdreplay/action"
	"github.com/icza/gdreplay/bitio"
	"github.com/icza/gdreplay/gderr"
)

// AtomID identifies the kind of atom framed in a v3 atom stream.
type AtomID uint32

const (
	AtomIDNull   AtomID = 0
	AtomIDAction AtomID = 1
	AtomIDMarker AtomID = 2
)

// Atom is one framed entry in a v3 replay's atom stream.
type Atom interface {
	// atomID returns the wire identifier for this atom.
	atomID() AtomID

	// encode writes the atom's payload (not the id/size framing, which
	// writeAtom computes and writes itself).
	encode(w *bitio.Writer) error
}

// NullAtom is an opaque, payload-preserving atom: its bytes are kept
// verbatim across a decode/re-encode round trip but never interpreted.
type NullAtom struct {
	Payload []byte
}

func (a *NullAtom) atomID() AtomID { return AtomIDNull }

func (a *NullAtom) encode(w *bitio.Writer) error {
	w.Raw(a.Payload)
	return nil
}

// MarkerAtom is handled identically to NullAtom on both read and write;
// it exists as its own type only to carry the distinct wire id.
type MarkerAtom struct {
	Payload []byte
}

func (a *MarkerAtom) atomID() AtomID { return AtomIDMarker }

func (a *MarkerAtom) encode(w *bitio.Writer) error {
	w.Raw(a.Payload)
	return nil
}

// ActionAtom carries the replay's player and special actions, planned
// into a run-length-encoded section stream on write.
type ActionAtom struct {
	Actions []action.Action
}

func (a *ActionAtom) atomID() AtomID { return AtomIDAction }

func (a *ActionAtom) encode(w *bitio.Writer) error {
	w.Uint64(uint64(len(a.Actions)))

	actionsCopy := append([]action.Action(nil), a.Actions...)
	sections, err := prepareSections(actionsCopy)
	if err != nil {
		return err
	}
	for i := range sections {
		sections[i].write(w)
	}
	return nil
}

// writeAtom frames a to w: id (u32 LE), size (u64 LE), then a's payload.
// The size is measured from the encoded payload itself, so it is always
// internally consistent even when encode's output length depends on
// planning decisions (as ActionAtom's does).
func writeAtom(w *bitio.Writer, a Atom) error {
	buf := bitio.NewWriter()
	if err := a.encode(buf); err != nil {
		return err
	}
	w.Uint32(uint32(a.atomID()))
	w.Uint64(uint64(buf.Len()))
	w.Raw(buf.Bytes())
	return nil
}

// readAtom decodes one framed atom from r.
func readAtom(r *bitio.Reader) (Atom, error) {
	id := AtomID(r.Uint32())
	size := r.Uint64()

	switch id {
	case AtomIDNull:
		return &NullAtom{Payload: r.Slice(size)}, nil
	case AtomIDMarker:
		return &MarkerAtom{Payload: r.Slice(size)}, nil
	case AtomIDAction:
		return readActionAtom(r)
	default:
		return nil, gderr.New(gderr.KindUnknownAtomID)
	}
}

func readActionAtom(r *bitio.Reader) (*ActionAtom, error) {
	count := r.Uint64()
	actions := make([]action.Action, 0, count)
	for uint64(len(actions)) < count {
		if err := readSection(r, &actions); err != nil {
			return nil, err
		}
	}
	return &ActionAtom{Actions: actions}, nil
}
