package messages

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"

	"golang.org/x/xerrors"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/finality"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/trie"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

// Proof verification failures. Proofs are adversarial input: any defect
// rejects the whole proof before a single message is applied.
var (
	// ErrProofEmpty: the proof carries neither messages nor a lane state.
	ErrProofEmpty = errors.New("messages proof is empty")

	// ErrProofCountMismatch: the declared message count does not match the
	// proved nonce range.
	ErrProofCountMismatch = errors.New("declared message count does not match the proved nonce range")

	// ErrProofMissingMessage: a nonce inside the declared range cannot be
	// read out of the proof.
	ErrProofMissingMessage = errors.New("message missing from the proof")

	// ErrProofDecodeFailure: a proved storage value failed to decode.
	ErrProofDecodeFailure = errors.New("failed to decode a proved storage value")
)

// Storage map names of the bridged chain's messages pallet. Proved keys are
// derived from these exactly as the bridged chain lays out its storage.
const (
	outboundMessagesMap = "OutboundMessages"
	outboundLanesMap    = "OutboundLanes"
	inboundLanesMap     = "InboundLanes"
)

// MessageStorageKey locates one outbound message in the bridged chain's
// messages pallet storage.
func MessageStorageKey(pallet string, key types.MessageKey) []byte {
	enc := make([]byte, 0, 12)
	enc = append(enc, key.Lane.Bytes()...)
	enc = binary.LittleEndian.AppendUint64(enc, uint64(key.Nonce))
	return trie.StorageKey(pallet, outboundMessagesMap, enc)
}

// OutboundLaneStateStorageKey locates a lane's outbound state in the
// bridged chain's messages pallet storage.
func OutboundLaneStateStorageKey(pallet string, lane types.LaneID) []byte {
	return trie.StorageKey(pallet, outboundLanesMap, lane.Bytes())
}

// InboundLaneStateStorageKey locates a lane's inbound state in the bridged
// chain's messages pallet storage.
func InboundLaneStateStorageKey(pallet string, lane types.LaneID) []byte {
	return trie.StorageKey(pallet, inboundLanesMap, lane.Bytes())
}

// Anchor resolves the header hash named by a proof to the state root the
// proof is checked against. Roots only ever come from the finality
// provider; a proof can never vouch for its own root.
type Anchor interface {
	StateRoot(ctx context.Context, bridgedHeaderHash types.Hash) (types.Hash, error)
}

// DirectAnchor checks proofs against finalized bridged chain headers.
type DirectAnchor struct {
	Finality finality.Provider
}

func (a DirectAnchor) StateRoot(ctx context.Context, bridgedHeaderHash types.Hash) (types.Hash, error) {
	return a.Finality.FinalizedStateRoot(ctx, bridgedHeaderHash)
}

// ParachainAnchor checks proofs against a bridged parachain. The proof
// names a finalized relay chain header; the parachain head recorded there
// decodes to the header whose state root the proof is checked against.
type ParachainAnchor struct {
	Finality finality.Provider
	ParaID   uint32
}

func (a ParachainAnchor) StateRoot(ctx context.Context, relayHeaderHash types.Hash) (types.Hash, error) {
	head, err := a.Finality.FinalizedParaHead(ctx, a.ParaID, relayHeaderHash)
	if err != nil {
		return types.Hash{}, err
	}

	h, err := types.DecodeBridgedHeader(head)
	if err != nil {
		return types.Hash{}, xerrors.Errorf("decoding head of para %d at %s: %w", a.ParaID, relayHeaderHash, err)
	}
	return h.StateRoot, nil
}

// ProvedLaneMessages is what a verified messages proof says about one lane:
// a contiguous run of messages and, optionally, the lane's outbound state.
type ProvedLaneMessages struct {
	LaneState *types.OutboundLaneData
	Messages  []types.Message
}

// VerifyMessagesProof checks a messages proof end to end: the declared
// count must match the declared nonce range (zero for an empty range),
// every nonce in the range must be readable and decodable, and the lane
// state, if proved, must decode. A proof that proves neither messages nor
// a lane state is rejected as empty.
func VerifyMessagesProof(ctx context.Context, anchor Anchor, pallet string, proof *types.MessagesProof, count uint64) (*ProvedLaneMessages, error) {
	if proof.NonceCount() != count {
		return nil, xerrors.Errorf("proof declares nonces [%d, %d] but %d messages: %w",
			proof.NoncesStart, proof.NoncesEnd, count, ErrProofCountMismatch)
	}

	root, err := anchor.StateRoot(ctx, proof.BridgedHeaderHash)
	if err != nil {
		return nil, xerrors.Errorf("resolving state root of %s: %w", proof.BridgedHeaderHash, err)
	}
	checker := trie.NewChecker(root, proof.StorageProof)

	var messages []types.Message
	for i := uint64(0); i < count; i++ {
		key := types.MessageKey{Lane: proof.Lane, Nonce: proof.NoncesStart + types.MessageNonce(i)}

		res, err := checker.Read(MessageStorageKey(pallet, key))
		if err != nil || res == nil {
			return nil, xerrors.Errorf("message %s: %w", key, ErrProofMissingMessage)
		}

		var data types.MessageData
		if err := data.UnmarshalCBOR(bytes.NewReader(res)); err != nil {
			return nil, xerrors.Errorf("message %s: %s: %w", key, err, ErrProofDecodeFailure)
		}
		messages = append(messages, types.Message{Key: key, Data: data})
	}

	// The outbound lane state piggybacks on message proofs: proving it is
	// optional, but a proved value that does not decode poisons the proof.
	var laneState *types.OutboundLaneData
	if res, err := checker.Read(OutboundLaneStateStorageKey(pallet, proof.Lane)); err == nil && res != nil {
		var ld types.OutboundLaneData
		if err := ld.UnmarshalCBOR(bytes.NewReader(res)); err != nil {
			return nil, xerrors.Errorf("outbound state of lane %s: %s: %w", proof.Lane, err, ErrProofDecodeFailure)
		}
		laneState = &ld
	}

	if laneState == nil && len(messages) == 0 {
		return nil, ErrProofEmpty
	}

	return &ProvedLaneMessages{LaneState: laneState, Messages: messages}, nil
}

// VerifyMessagesDeliveryProof checks a delivery confirmation proof: one
// required read of the lane's inbound state on the bridged chain. Unlike
// the optional lane state above, here every defect is fatal.
func VerifyMessagesDeliveryProof(ctx context.Context, anchor Anchor, pallet string, proof *types.MessagesDeliveryProof) (*types.InboundLaneData, error) {
	root, err := anchor.StateRoot(ctx, proof.BridgedHeaderHash)
	if err != nil {
		return nil, xerrors.Errorf("resolving state root of %s: %w", proof.BridgedHeaderHash, err)
	}

	res, err := trie.NewChecker(root, proof.StorageProof).Read(InboundLaneStateStorageKey(pallet, proof.Lane))
	if err != nil || res == nil {
		return nil, xerrors.Errorf("inbound state of lane %s: %w", proof.Lane, ErrProofEmpty)
	}

	var ld types.InboundLaneData
	if err := ld.UnmarshalCBOR(bytes.NewReader(res)); err != nil {
		return nil, xerrors.Errorf("inbound state of lane %s: %s: %w", proof.Lane, err, ErrProofDecodeFailure)
	}
	return &ld, nil
}
