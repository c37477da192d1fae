/*

Package meta defines the external contract a caller fulfils to attach its
own fixed-size metadata blob to a v2 replay. The v2 codec does not
interpret the bytes; it only sizes, stores and round-trips them.

*/
package meta

// Meta is an opaque, fixed-size metadata blob a caller attaches to a
// replay. Implementations must report a constant Size(): v2 stores it
// once in the envelope header. v3 does not use Meta; its metadata is the
// fixed 64-byte v3.Metadata block.
type Meta interface {
	// Size is the number of bytes ToBytes always produces.
	Size() uint64

	// FromBytes decodes a Meta from exactly Size() bytes.
	FromBytes(b []byte) (Meta, error)

	// ToBytes encodes the Meta to exactly Size() bytes.
	ToBytes() []byte
}

// Empty is the degenerate Meta implementation for replays that carry no
// caller-defined metadata.
type Empty struct{}

// Size always returns 0 for Empty.
func (Empty) Size() uint64 { return 0 }

// FromBytes ignores b and returns Empty{}.
func (Empty) FromBytes(b []byte) (Meta, error) { return Empty{}, nil }

// ToBytes always returns an empty slice for Empty.
func (Empty) ToBytes() []byte { return nil }
