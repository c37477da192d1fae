/*

Package v2 implements the "v2" replay wire format: a header carrying tps
and caller-defined metadata, followed by a two-pass-planned run of
fixed-size input blobs and a 3-byte footer.

*/
package v2

import (
	"bytes"
	"io"
	"log"
	"runtime"

	"github.com/icza/gdreplay/action"
	"github.com/icza/gdreplay/bitio"
	"github.com/icza/gdreplay/gderr"
	"github.com/icza/gdreplay/meta"
)

var (
	header = [4]byte{'S', 'I', 'L', 'L'}
	footer = [3]byte{'E', 'O', 'M'}
)

// Debug retains the raw bytes of a parsed replay when Config.Debug is set.
type Debug struct {
	Data []byte
}

// Replay is a decoded (or to-be-encoded) v2 replay.
type Replay struct {
	TPS     float64
	Meta    meta.Meta
	Actions []action.Action

	Debug *Debug `json:",omitempty"`
}

// NewReplay creates an empty v2 replay with the given tps and metadata.
func NewReplay(tps float64, m meta.Meta) *Replay {
	return &Replay{TPS: tps, Meta: m}
}

// AddInput appends an action occurring at the given absolute frame,
// recomputing its Delta from the previously added action's frame (0 for
// the first action). a's Frame and Delta fields are overwritten; its
// Kind/Hold/Player2/Seed/TPS fields are kept as given.
func (r *Replay) AddInput(frame uint64, a action.Action) error {
	var prevFrame uint64
	if n := len(r.Actions); n > 0 {
		prevFrame = r.Actions[n-1].Frame
		if frame < prevFrame {
			return gderr.New(gderr.KindMalformed)
		}
	}
	a.Frame = frame
	a.Delta = frame - prevFrame
	r.Actions = append(r.Actions, a)
	return nil
}

// Read decodes a v2 replay from r using m to decode the metadata block.
func Read(r io.Reader, m meta.Meta, cfg Config) (*Replay, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, gderr.Wrap(gderr.KindIO, err)
	}
	return readProtected(data, m, cfg)
}

// readProtected calls parse, but protects the call from panics (which
// may be caused by corrupt / truncated input, or an implementation bug),
// converting them to a KindParsing error.
func readProtected(data []byte, m meta.Meta, cfg Config) (rep *Replay, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("v2 parsing error: %v", rec)
			buf := make([]byte, 2000)
			n := runtime.Stack(buf, false)
			log.Printf("Stack: %s", buf[:n])
			err = gderr.New(gderr.KindParsing)
		}
	}()

	return parse(data, m, cfg)
}

func parse(data []byte, m meta.Meta, cfg Config) (*Replay, error) {
	br := bitio.NewReader(data)

	if !bytes.Equal(br.Slice(4), header[:]) {
		return nil, gderr.New(gderr.KindHeaderMismatch)
	}

	tps := br.Float64()

	metaSize := br.Uint64()
	if metaSize != m.Size() {
		return nil, gderr.New(gderr.KindMetaSizeMismatch)
	}
	decodedMeta, err := m.FromBytes(br.Slice(metaSize))
	if err != nil {
		return nil, gderr.Wrap(gderr.KindMalformed, err)
	}

	inputCount := br.Uint64()

	blobCount := br.Uint64()
	blobs := make([]blob, blobCount)
	for i := range blobs {
		blobs[i].read(br)
	}

	actions := make([]action.Action, 0, inputCount)
	var frame uint64
	for i := range blobs {
		readInputs(br, &blobs[i], &actions, &frame)
	}

	if !bytes.Equal(br.Slice(3), footer[:]) {
		return nil, gderr.New(gderr.KindFooterMismatch)
	}

	rep := &Replay{TPS: tps, Meta: decodedMeta, Actions: actions}
	if cfg.Debug {
		rep.Debug = &Debug{Data: data}
	}
	return rep, nil
}

// Write encodes the replay to w, running the blob planner over its
// current actions.
func (r *Replay) Write(w io.Writer) error {
	bw := bitio.NewWriter()

	bw.Raw(header[:])
	bw.Float64(r.TPS)

	metaBytes := r.Meta.ToBytes()
	bw.Uint64(r.Meta.Size())
	bw.Raw(metaBytes)

	bw.Uint64(uint64(len(r.Actions)))

	blobs := planBlobs(r.Actions)
	bw.Uint64(uint64(len(blobs)))
	for i := range blobs {
		blobs[i].write(bw)
	}
	for i := range blobs {
		writeInputs(bw, &blobs[i], r.Actions)
	}

	bw.Raw(footer[:])

	if _, err := w.Write(bw.Bytes()); err != nil {
		return gderr.Wrap(gderr.KindIO, err)
	}
	return nil
}
