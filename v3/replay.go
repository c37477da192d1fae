/*

Package v3 implements the "v3" replay wire format: a fixed 64-byte
metadata block followed by a self-describing atom stream (run-length
encoded action sections, opaque Null/Marker atoms) and a single footer
byte.

*/
package v3

import (
	"bytes"
	"io"
	"log"
	"runtime"

	"github.com/icza/gdreplay/action"
	"github.com/icza/gdreplay/bitio"
	"github.com/icza/gdreplay/gderr"
)

var magic = [8]byte{'S', 'L', 'C', '3', 'R', 'P', 'L', 'Y'}

const footer byte = 0xcc

// Debug retains the raw bytes of a parsed replay when Config.Debug is set.
type Debug struct {
	Data []byte
}

// Replay is a decoded (or to-be-encoded) v3 replay.
type Replay struct {
	Metadata Metadata
	Atoms    []Atom

	Debug *Debug `json:",omitempty"`
}

// NewReplay creates an empty v3 replay with the given metadata.
func NewReplay(md Metadata) *Replay {
	return &Replay{Metadata: md}
}

// AddAtom appends an atom to the replay's atom stream.
func (r *Replay) AddAtom(a Atom) {
	r.Atoms = append(r.Atoms, a)
}

// AddAction appends act to the replay's last ActionAtom, creating one if
// the stream is empty or its last atom isn't an ActionAtom. act's Frame
// and Delta are taken as given: the encoder writes Delta as stored and
// does not recompute it from Frame, so callers set Delta relative to the
// previous action.
func (r *Replay) AddAction(act action.Action) {
	if n := len(r.Atoms); n > 0 {
		if aa, ok := r.Atoms[n-1].(*ActionAtom); ok {
			aa.Actions = append(aa.Actions, act)
			return
		}
	}
	r.Atoms = append(r.Atoms, &ActionAtom{Actions: []action.Action{act}})
}

// Read decodes a v3 replay from r.
func Read(r io.ReadSeeker, cfg Config) (*Replay, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, gderr.Wrap(gderr.KindIO, err)
	}
	return readProtected(data, cfg)
}

// readProtected calls parse, but protects the call from panics (which
// may be caused by corrupt / truncated input, or an implementation bug),
// converting them to a KindParsing error.
func readProtected(data []byte, cfg Config) (rep *Replay, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("v3 parsing error: %v", rec)
			buf := make([]byte, 2000)
			n := runtime.Stack(buf, false)
			log.Printf("Stack: %s", buf[:n])
			err = gderr.New(gderr.KindParsing)
		}
	}()

	return parse(data, cfg)
}

func parse(data []byte, cfg Config) (*Replay, error) {
	br := bitio.NewReader(data)

	if !bytes.Equal(br.Slice(8), magic[:]) {
		return nil, gderr.New(gderr.KindHeaderMismatch)
	}

	metaSize := br.Uint16()
	if metaSize != MetadataSize {
		return nil, gderr.New(gderr.KindMetaSizeMismatch)
	}
	md := readMetadata(br)

	// The atom stream's end is determined by the footer's position, one
	// byte before the end of the input, not by any declared count.
	end := uint64(len(data)) - 1

	var atoms []Atom
	for br.Pos < end {
		a, err := readAtom(br)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, a)
	}

	if br.Byte() != footer {
		return nil, gderr.New(gderr.KindFooterMismatch)
	}

	rep := &Replay{Metadata: md, Atoms: atoms}
	if cfg.Debug {
		rep.Debug = &Debug{Data: data}
	}
	return rep, nil
}

// Write encodes the replay to w.
func (r *Replay) Write(w io.Writer) error {
	bw := bitio.NewWriter()

	bw.Raw(magic[:])
	bw.Uint16(MetadataSize)
	r.Metadata.write(bw)

	for _, a := range r.Atoms {
		if err := writeAtom(bw, a); err != nil {
			return err
		}
	}

	bw.Byte(footer)

	if _, err := w.Write(bw.Bytes()); err != nil {
		return gderr.Wrap(gderr.KindIO, err)
	}
	return nil
}
