package v2

import "github.com/icza/gdreplay/action"

// planBlobs runs the two-pass blob-segmentation planner over actions and
// returns the surviving (non-empty) blobs in wire order.
//
// Pass 1 greedily groups consecutive actions that require the same wire
// width into a single blob.
//
// Pass 2 walks the blob list right-to-left and, for each blob B and its
// predecessor P, decides whether folding B's inputs into P (re-encoding
// them at whichever of the two widths wins) costs less than paying for
// B's own 24-byte index entry. A folded blob's length is zeroed out
// rather than removing it from the slice, so indices computed during the
// pass stay valid; zeroed blobs are dropped before returning.
func planBlobs(actions []action.Action) []blob {
	if len(actions) == 0 {
		return nil
	}

	var blobs []blob

	// Pass 1: greedy run segmentation by required wire width.
	for i, a := range actions {
		byteSize := uint64(a.RequiredBytes())
		if len(blobs) == 0 {
			blobs = append(blobs, blob{byteSize: byteSize, start: uint64(i), length: 1})
			continue
		}
		last := &blobs[len(blobs)-1]
		switch {
		case last.byteSize == byteSize:
			last.length++
		default:
			blobs = append(blobs, blob{byteSize: byteSize, start: uint64(i), length: 1})
		}
	}

	// Pass 2: right-to-left fusion pass.
	for i := len(blobs) - 1; i >= 1; i-- {
		previous := &blobs[i-1]
		cur := &blobs[i]

		blobSize := cur.byteSize * cur.length
		if blobSize < blobMemSize {
			switch {
			case cur.byteSize > previous.byteSize && previous.byteSize*cur.length < blobMemSize:
				previous.length += cur.length
				previous.byteSize = cur.byteSize
				cur.length = 0
				continue
			case cur.byteSize < previous.byteSize && previous.byteSize*cur.length < blobMemSize:
				previous.length += cur.length
				cur.length = 0
				continue
			}
		}

		if cur.byteSize == previous.byteSize {
			previous.length += cur.length
			cur.length = 0
		}
	}

	// Only surviving (non-empty) blobs are written: both the declared
	// wire count and the index entries reflect exactly the survivors.
	survivors := blobs[:0]
	for _, b := range blobs {
		if b.length > 0 {
			survivors = append(survivors, b)
		}
	}
	return survivors
}
