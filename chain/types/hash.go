package types

import (
	"encoding/hex"

	"golang.org/x/xerrors"
)

// Hash is a 32 byte blake2b digest.
type Hash [32]byte

func HashFromBytes(b []byte) (Hash, error) {
	if len(b) != 32 {
		return Hash{}, xerrors.Errorf("expected 32 byte hash, got %d bytes", len(b))
	}

	var h Hash
	copy(h[:], b)
	return h, nil
}

func (h Hash) Bytes() []byte {
	return h[:]
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}
