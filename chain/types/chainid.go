package types

import (
	"golang.org/x/xerrors"
)

// ChainID identifies a chain on the bridge wire. Four bytes, by convention
// printable ASCII ("crab", "srce").
type ChainID [4]byte

func ChainIDFromString(s string) (ChainID, error) {
	if len(s) != 4 {
		return ChainID{}, xerrors.Errorf("chain id must be exactly 4 bytes, got %d", len(s))
	}

	var c ChainID
	copy(c[:], s)
	return c, nil
}

func (c ChainID) String() string {
	return string(c[:])
}

func (c ChainID) Bytes() []byte {
	return c[:]
}
