package types

// MessagesProof carries a contiguous nonce range of lane messages together
// with the bridged chain storage proof committing to them. The proof is
// checked against a finalized state root; nothing in it is trusted before
// that check passes.
type MessagesProof struct {
	// BridgedHeaderHash names the finalized bridged header (or, for a
	// bridged parachain, the finalized relay header) anchoring the proof.
	BridgedHeaderHash Hash
	// StorageProof is the set of trie nodes sufficient to read every
	// proven entry under the header's state root.
	StorageProof [][]byte
	Lane         LaneID
	// NoncesStart and NoncesEnd declare the delivered range, inclusive.
	NoncesStart MessageNonce
	NoncesEnd   MessageNonce
}

// NonceCount is the number of nonces the proof claims to carry. A range
// with NoncesEnd < NoncesStart is empty.
func (p *MessagesProof) NonceCount() uint64 {
	if p.NoncesEnd < p.NoncesStart {
		return 0
	}
	return uint64(p.NoncesEnd-p.NoncesStart) + 1
}

func (p *MessagesProof) Size() uint64 {
	var n uint64
	for _, node := range p.StorageProof {
		n += uint64(len(node))
	}
	return n
}

// MessagesDeliveryProof proves the inbound lane state of the bridged
// chain, confirming deliveries back to this chain.
type MessagesDeliveryProof struct {
	BridgedHeaderHash Hash
	StorageProof      [][]byte
	Lane              LaneID
}

func (p *MessagesDeliveryProof) Size() uint64 {
	var n uint64
	for _, node := range p.StorageProof {
		n += uint64(len(node))
	}
	return n
}
