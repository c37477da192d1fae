package v3

import (
	"testing"

	"github.com/icza/gdreplay/bitio"
)

func TestNullAtomRoundTrip(t *testing.T) {
	a := &NullAtom{Payload: []byte{1, 2, 3, 4}}

	w := bitio.NewWriter()
	if err := writeAtom(w, a); err != nil {
		t.Fatalf("writeAtom: %v", err)
	}

	r := bitio.NewReader(w.Bytes())
	got, err := readAtom(r)
	if err != nil {
		t.Fatalf("readAtom: %v", err)
	}

	null, ok := got.(*NullAtom)
	if !ok {
		t.Fatalf("expected *NullAtom, got %T", got)
	}
	if string(null.Payload) != string(a.Payload) {
		t.Errorf("expected payload %v preserved verbatim, got %v", a.Payload, null.Payload)
	}
}

func TestMarkerAtomDistinctID(t *testing.T) {
	a := &MarkerAtom{Payload: []byte{9}}
	if a.atomID() != AtomIDMarker {
		t.Errorf("expected MarkerAtom to report AtomIDMarker")
	}
}

func TestReadAtomRejectsUnknownID(t *testing.T) {
	w := bitio.NewWriter()
	w.Uint32(99)
	w.Uint64(0)
	r := bitio.NewReader(w.Bytes())
	if _, err := readAtom(r); err == nil {
		t.Errorf("expected an error for an unknown atom id")
	}
}
