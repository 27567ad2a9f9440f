package kit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	cborrpc "github.com/filecoin-project/go-cbor-util"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/feemarket"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/finality"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/messages"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/trie"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
	"github.com/darwinia-network/darwinia-bridge-substrate/journal"
)

// sealedBlock remembers the trie a sealed header committed to, so relayer
// helpers can cut storage proofs out of it.
type sealedBlock struct {
	header  *types.BridgedHeader
	builder *trie.Builder
}

// Node is one end of the bridged pair: the full lane ledger, dispatcher and
// fee market of a chain, plus the finality store through which it learns
// the peer chain's finalized headers.
type Node struct {
	t *testing.T

	Name    string
	ChainID types.ChainID

	// Pallet is the name this chain's messages pallet goes by in the peer's
	// proved storage keys.
	Pallet string

	// SpecVersion is the runtime version this chain's dispatcher expects.
	SpecVersion uint32

	// Height is the chain's current block number. Operations execute at it;
	// sealing advances it.
	Height abi.ChainEpoch

	Messages *messages.Manager
	Store    *messages.Store
	Market   *feemarket.Market
	Ledger   *feemarket.Ledger
	Headers  *finality.Store
	Runtime  *Runtime
	Journal  *journal.MemJournal

	// RootPayer is the funded account charged for root-origin sends.
	RootPayer address.Address

	lanes            []types.LaneID
	maxFutureHeaders int64

	peer     *Node
	lastHash types.Hash
	seal     *sealedBlock
}

// SealBlock commits the node's lane state into a fresh header and hands it
// to the peer finalized, the way the peer's finality engine would after
// verifying a justification. Returns the sealed header.
func (n *Node) SealBlock(ctx context.Context) *types.BridgedHeader {
	n.t.Helper()

	h := n.sealHeader(ctx)
	n.peer.acceptImported(ctx, h)
	require.NoError(n.t, n.peer.Headers.FinalizeHeader(ctx, h.Hash()))
	return h
}

// SealBlockHeld seals like SealBlock but leaves the header unfinalized at
// the peer: imported into its pool, not yet certified. Proofs against it
// must be refused until FinalizeTip runs.
func (n *Node) SealBlockHeld(ctx context.Context) *types.BridgedHeader {
	n.t.Helper()

	h := n.sealHeader(ctx)
	n.peer.acceptImported(ctx, h)
	return h
}

// FinalizeTip certifies the last sealed header at the peer.
func (n *Node) FinalizeTip(ctx context.Context) {
	n.t.Helper()
	require.NotNil(n.t, n.seal, "no block sealed on %s", n.Name)
	require.NoError(n.t, n.peer.Headers.FinalizeHeader(ctx, n.seal.header.Hash()))
}

// sealHeader lays the node's lane state out as the bridged chain's messages
// pallet storage and commits it into a header.
func (n *Node) sealHeader(ctx context.Context) *types.BridgedHeader {
	n.t.Helper()

	builder := trie.NewBuilder()
	for _, lane := range n.lanes {
		old, err := n.Messages.OutboundLaneData(ctx, lane)
		require.NoError(n.t, err)
		n.insert(builder, messages.OutboundLaneStateStorageKey(n.Pallet, lane), old)

		ild, err := n.Messages.InboundLaneData(ctx, lane)
		require.NoError(n.t, err)
		n.insert(builder, messages.InboundLaneStateStorageKey(n.Pallet, lane), ild)

		for nonce := old.OldestUnprunedNonce; nonce <= old.LatestGeneratedNonce; nonce++ {
			key := types.MessageKey{Lane: lane, Nonce: nonce}
			data, err := n.Messages.OutboundMessage(ctx, key)
			require.NoError(n.t, err)
			n.insert(builder, messages.MessageStorageKey(n.Pallet, key), data)
		}
	}

	root, err := builder.Root()
	require.NoError(n.t, err)

	n.Height++
	h := &types.BridgedHeader{
		Number:     n.Height,
		ParentHash: n.lastHash,
		StateRoot:  root,
	}
	n.lastHash = h.Hash()
	n.seal = &sealedBlock{header: h, builder: builder}
	return h
}

func (n *Node) insert(builder *trie.Builder, key []byte, v cbg.CBORMarshaler) {
	n.t.Helper()
	b, err := cborrpc.Dump(v)
	require.NoError(n.t, err)
	builder.Insert(key, b)
}

// acceptImported runs an incoming peer header through this node's pool gate
// and imports it.
func (n *Node) acceptImported(ctx context.Context, h *types.BridgedHeader) {
	n.t.Helper()
	require.NoError(n.t, finality.AcceptIntoPool(ctx, n.Headers, n.maxFutureHeaders, h))
	require.NoError(n.t, n.Headers.ImportHeader(ctx, h))
}

// AdvanceTo moves the chain height forward without sealing; the next sealed
// block carries a number past it.
func (n *Node) AdvanceTo(h abi.ChainEpoch) {
	n.t.Helper()
	require.GreaterOrEqual(n.t, int64(h), int64(n.Height), "chains only move forward")
	n.Height = h
}

// SendMessage accepts a message into the outbound lane, failing the test on
// refusal, and returns the assigned nonce.
func (n *Node) SendMessage(ctx context.Context, origin types.RawOrigin, lane types.LaneID, payload *types.MessagePayload, fee uint64) types.MessageNonce {
	n.t.Helper()
	nonce, err := n.TrySendMessage(ctx, origin, lane, payload, fee)
	require.NoError(n.t, err)
	return nonce
}

func (n *Node) TrySendMessage(ctx context.Context, origin types.RawOrigin, lane types.LaneID, payload *types.MessagePayload, fee uint64) (types.MessageNonce, error) {
	return n.Messages.SendMessage(ctx, origin, lane, payload, types.NewInt(fee), n.Height)
}

// RelayMessages proves messages [begin, end] of the lane out of the node's
// last sealed block and delivers them to the peer, as a relayer would.
func (n *Node) RelayMessages(ctx context.Context, relayer address.Address, lane types.LaneID, begin, end types.MessageNonce) *messages.DeliveryResult {
	n.t.Helper()
	res, err := n.TryRelayMessages(ctx, relayer, lane, begin, end)
	require.NoError(n.t, err)
	return res
}

func (n *Node) TryRelayMessages(ctx context.Context, relayer address.Address, lane types.LaneID, begin, end types.MessageNonce) (*messages.DeliveryResult, error) {
	proof := n.MessagesProof(lane, begin, end)
	return n.peer.Messages.ReceiveMessagesProof(ctx, relayer, proof, proof.NonceCount(), n.peer.Height)
}

// RelayConfirmations proves the node's inbound lane state out of its last
// sealed block and applies it to the peer as a delivery confirmation.
func (n *Node) RelayConfirmations(ctx context.Context, relayer address.Address, lane types.LaneID) *messages.ConfirmationResult {
	n.t.Helper()
	res, err := n.TryRelayConfirmations(ctx, relayer, lane)
	require.NoError(n.t, err)
	return res
}

func (n *Node) TryRelayConfirmations(ctx context.Context, relayer address.Address, lane types.LaneID) (*messages.ConfirmationResult, error) {
	proof := n.DeliveryProof(lane)
	return n.peer.Messages.ReceiveMessagesDeliveryProof(ctx, relayer, proof, n.peer.Height)
}

// MessagesProof cuts a storage proof of the given outbound nonce range,
// plus the lane's outbound state, out of the last sealed block.
func (n *Node) MessagesProof(lane types.LaneID, begin, end types.MessageNonce) *types.MessagesProof {
	n.t.Helper()
	require.NotNil(n.t, n.seal, "no block sealed on %s", n.Name)

	keys := [][]byte{messages.OutboundLaneStateStorageKey(n.Pallet, lane)}
	if begin <= end {
		for nonce := begin; nonce <= end; nonce++ {
			keys = append(keys, messages.MessageStorageKey(n.Pallet, types.MessageKey{Lane: lane, Nonce: nonce}))
		}
	}
	proof, err := n.seal.builder.Prove(keys...)
	require.NoError(n.t, err)

	return &types.MessagesProof{
		BridgedHeaderHash: n.seal.header.Hash(),
		StorageProof:      proof,
		Lane:              lane,
		NoncesStart:       begin,
		NoncesEnd:         end,
	}
}

// DeliveryProof cuts a storage proof of the lane's inbound state out of the
// last sealed block.
func (n *Node) DeliveryProof(lane types.LaneID) *types.MessagesDeliveryProof {
	n.t.Helper()
	require.NotNil(n.t, n.seal, "no block sealed on %s", n.Name)

	proof, err := n.seal.builder.Prove(messages.InboundLaneStateStorageKey(n.Pallet, lane))
	require.NoError(n.t, err)

	return &types.MessagesDeliveryProof{
		BridgedHeaderHash: n.seal.header.Hash(),
		StorageProof:      proof,
		Lane:              lane,
	}
}

// RootCallPayload builds a payload executing call on the peer under the
// authority of this chain's root.
func (n *Node) RootCallPayload(call string) *types.MessagePayload {
	return &types.MessagePayload{
		SpecVersion: n.SpecVersion,
		Weight:      200,
		Origin:      types.SourceRootOrigin(),
		Call:        []byte(call),
	}
}

// AccountCallPayload builds a payload executing call on the peer under an
// account derived from the given local account.
func (n *Node) AccountCallPayload(from address.Address, call string) *types.MessagePayload {
	return &types.MessagePayload{
		SpecVersion: n.SpecVersion,
		Weight:      200,
		Origin:      types.SourceAccountOrigin(from.Bytes()),
		Call:        []byte(call),
	}
}

// Account derives the deterministic test account for a name. The same name
// yields the same address on both ends; balances are per end.
func (n *Node) Account(name string) address.Address {
	addr, err := address.NewActorAddress([]byte(name))
	require.NoError(n.t, err)
	return addr
}

func (n *Node) Mint(ctx context.Context, to address.Address, amount uint64) {
	n.t.Helper()
	require.NoError(n.t, n.Ledger.Mint(ctx, to, types.NewInt(amount)))
}

func (n *Node) Balance(ctx context.Context, addr address.Address) uint64 {
	n.t.Helper()
	bal, err := n.Ledger.Balance(ctx, addr)
	require.NoError(n.t, err)
	return bal.Uint64()
}

// EnrollRelayer funds a fresh account with twice the collateral and enrolls
// it at the given quote.
func (n *Node) EnrollRelayer(ctx context.Context, name string, collateral, quote uint64) address.Address {
	n.t.Helper()
	addr := n.Account(name)
	n.Mint(ctx, addr, 2*collateral)
	require.NoError(n.t, n.Market.Enroll(ctx, addr, types.NewInt(collateral), types.NewInt(quote)))
	return addr
}

// EnrollDefaultRelayers opens the market with three relayers quoting 30, 40
// and 50, each posting collateral for ten concurrent orders.
func (n *Node) EnrollDefaultRelayers(ctx context.Context) (r1, r2, r3 address.Address) {
	r1 = n.EnrollRelayer(ctx, "relayer-1", 10_000, 30)
	r2 = n.EnrollRelayer(ctx, "relayer-2", 10_000, 40)
	r3 = n.EnrollRelayer(ctx, "relayer-3", 10_000, 50)
	return r1, r2, r3
}
