package v2

import (
	"testing"

	"github.com/icza/gdreplay/action"
)

func TestPlanBlobsEmpty(t *testing.T) {
	if got := planBlobs(nil); got != nil {
		t.Errorf("expected nil blobs for empty input, got %v", got)
	}
}

func TestPlanBlobsSingleRun(t *testing.T) {
	actions := []action.Action{
		action.NewPlayer(0, 1, action.KindJump, true, false),
		action.NewPlayer(1, 1, action.KindJump, false, false),
		action.NewPlayer(2, 1, action.KindLeft, true, false),
	}
	blobs := planBlobs(actions)
	if len(blobs) == 0 {
		t.Fatalf("expected at least one blob")
	}

	var total uint64
	for _, b := range blobs {
		total += b.length
	}
	if total != uint64(len(actions)) {
		t.Errorf("expected blob lengths to sum to %d, got %d", len(actions), total)
	}
}

func TestPlanBlobsFusesSmallRuns(t *testing.T) {
	// 10 consecutive jumps with deltas 1,1,1,1,1,1,1,1,1,200000: the first
	// nine require 1 byte each, the tenth requires 4. Pass 1 yields two
	// blobs, {1,0,9} and {4,9,1}; pass 2 absorbs the second into the
	// first, promoting it to width 4, since the absorbed blob's payload
	// (4 bytes) is under the 24-byte index-entry cost.
	deltas := []uint64{1, 1, 1, 1, 1, 1, 1, 1, 1, 200000}
	var actions []action.Action
	var frame uint64
	for _, d := range deltas {
		actions = append(actions, action.NewPlayer(frame, d, action.KindJump, true, false))
		frame += d
	}

	blobs := planBlobs(actions)

	var total uint64
	for _, b := range blobs {
		total += b.length
	}
	if total != uint64(len(actions)) {
		t.Errorf("expected blob lengths to sum to %d, got %d", len(actions), total)
	}
	if len(blobs) != 1 {
		t.Fatalf("expected a single final blob, got %d blobs: %+v", len(blobs), blobs)
	}

	got := blobs[0]
	want := blob{byteSize: 4, start: 0, length: 10}
	if got != want {
		t.Errorf("expected final blob %+v, got %+v", want, got)
	}
}
