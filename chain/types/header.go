package types

import (
	"bytes"
	"fmt"

	"github.com/filecoin-project/go-state-types/abi"
	"golang.org/x/crypto/blake2b"
)

// BridgedHeader is the minimal view of a bridged chain header the bridge
// relies on: Number for pool gating, StateRoot for proof verification.
// Parachain head blobs recorded on the relay chain decode to this shape.
type BridgedHeader struct {
	Number         abi.ChainEpoch
	ParentHash     Hash
	StateRoot      Hash
	ExtrinsicsRoot Hash
}

func (h *BridgedHeader) Serialize() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := h.MarshalCBOR(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Hash is the canonical identity of the header.
func (h *BridgedHeader) Hash() Hash {
	data, err := h.Serialize()
	if err != nil {
		panic(fmt.Sprintf("failed to marshal header: %s", err))
	}
	return blake2b.Sum256(data)
}

func DecodeBridgedHeader(b []byte) (*BridgedHeader, error) {
	var h BridgedHeader
	if err := h.UnmarshalCBOR(bytes.NewReader(b)); err != nil {
		return nil, err
	}

	return &h, nil
}
