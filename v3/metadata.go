package v3

import "github.com/icza/gdreplay/bitio"

// MetadataSize is the fixed size, in bytes, of the v3 metadata block.
const MetadataSize = 64

// Metadata is the fixed 64-byte metadata block every v3 replay carries:
// tps, seed, a format version and a caller build number, padded with
// zeros to fill the reserved region.
type Metadata struct {
	TPS     float64
	Seed    uint64
	Version uint32
	Build   uint32
}

// NewMetadata creates Metadata with the current format Version (1).
func NewMetadata(tps float64, seed uint64, build uint32) Metadata {
	return Metadata{TPS: tps, Seed: seed, Version: 1, Build: build}
}

func readMetadata(r *bitio.Reader) Metadata {
	md := Metadata{
		TPS:     r.Float64(),
		Seed:    r.Uint64(),
		Version: r.Uint32(),
		Build:   r.Uint32(),
	}
	r.Pos += 40 // reserved padding
	return md
}

func (md Metadata) write(w *bitio.Writer) {
	w.Float64(md.TPS)
	w.Uint64(md.Seed)
	w.Uint32(md.Version)
	w.Uint32(md.Build)
	w.Raw(make([]byte, 40))
}
