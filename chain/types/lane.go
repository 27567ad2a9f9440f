package types

import (
	"golang.org/x/xerrors"
)

// LaneID identifies an ordered message lane between two bridged chains.
// Lanes are independent: nonces, state and pruning never cross lanes.
type LaneID [4]byte

func LaneIDFromString(s string) (LaneID, error) {
	if len(s) != 4 {
		return LaneID{}, xerrors.Errorf("lane id must be exactly 4 bytes, got %d", len(s))
	}

	var l LaneID
	copy(l[:], s)
	return l, nil
}

func (l LaneID) String() string {
	return string(l[:])
}

func (l LaneID) Bytes() []byte {
	return l[:]
}
