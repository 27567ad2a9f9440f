// Package kit builds the two-chain in-memory bridge the integration tests
// run against. Each end is a complete chain: lane ledger, dispatcher, fee
// market, and a finality store tracking the peer chain's headers; sealing a
// block on one end publishes a finalized header to the other, exactly what
// the finality engine would do after verifying a justification. Tests drive
// sealing and relaying explicitly, in the calling goroutine.
package kit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opencensus.io/stats/view"

	"github.com/filecoin-project/go-address"

	ds "github.com/ipfs/go-datastore"
	ds_sync "github.com/ipfs/go-datastore/sync"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/dispatch"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/feemarket"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/finality"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/messages"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
	"github.com/darwinia-network/darwinia-bridge-substrate/journal"
	"github.com/darwinia-network/darwinia-bridge-substrate/metrics"
)

// DefaultLane is the lane both ends serve unless the ensemble says
// otherwise.
var DefaultLane = mustLane("ln00")

func mustLane(s string) types.LaneID {
	l, err := types.LaneIDFromString(s)
	if err != nil {
		panic(err)
	}
	return l
}

// BridgeEnsemble is a pair of bridged chain ends.
type BridgeEnsemble struct {
	t *testing.T

	Left  *Node
	Right *Node
}

func NewBridgeEnsemble(t *testing.T, opts ...EnsembleOpt) *BridgeEnsemble {
	options := DefaultEnsembleOpts
	for _, o := range opts {
		require.NoError(t, o(&options))
	}

	// Registering the same views again is accepted, so every ensemble in
	// the binary can do it.
	require.NoError(t, view.Register(metrics.DefaultViews...))

	e := &BridgeEnsemble{t: t}
	e.Left = e.newNode(&options, "left", "BridgeLeftMessages")
	e.Right = e.newNode(&options, "rght", "BridgeRightMessages")
	e.Left.peer, e.Right.peer = e.Right, e.Left
	e.connect(&options, e.Left)
	e.connect(&options, e.Right)
	return e
}

func (e *BridgeEnsemble) newNode(opts *ensembleOpts, name, pallet string) *Node {
	t := e.t

	chainID, err := types.ChainIDFromString(name)
	require.NoError(t, err)

	mds := ds_sync.MutexWrap(ds.NewMapDatastore())

	n := &Node{
		t:                t,
		Name:             name,
		ChainID:          chainID,
		Pallet:           pallet,
		SpecVersion:      opts.specVersion,
		Store:            messages.NewStore(mds),
		Ledger:           feemarket.NewLedger(mds),
		Headers:          finality.NewStore(mds),
		Runtime:          NewRuntime(),
		Journal:          journal.NewMemoryJournal(nil),
		lanes:            opts.lanes,
		maxFutureHeaders: opts.maxFutureHeaders,
	}
	n.RootPayer = n.Account(name + "-root")

	n.Market = feemarket.NewMarket(feemarket.Params{
		Config:    opts.market,
		Store:     feemarket.NewStore(mds),
		Currency:  n.Ledger,
		Slasher:   feemarket.NewLinearSlasher(types.NewInt(opts.delaySlashPerBlock)),
		Journal:   n.Journal,
		RootPayer: n.RootPayer,
	})

	n.Mint(context.Background(), n.RootPayer, 1_000_000)
	metrics.RecordBridgeInfo(context.Background(), name)
	return n
}

// connect builds a node's lane manager against its peer's identity.
func (e *BridgeEnsemble) connect(opts *ensembleOpts, n *Node) {
	cfg := messages.Config{
		SelfChain:                   n.ChainID,
		BridgedChain:                n.peer.ChainID,
		BridgedMessagesPallet:       n.peer.Pallet,
		ActiveLanes:                 opts.lanes,
		MaxPendingMessages:          32,
		MaxBridgedExtrinsicSize:     6000,
		MaxBridgedExtrinsicWeight:   1_000_000,
		MaxUnrewardedRelayerEntries: 8,
		MaxUnconfirmedMessages:      16,
		MaxMessagesToPruneAtOnce:    10,
	}
	for _, tweak := range opts.msgTweaks {
		tweak(&cfg)
	}

	anchor, err := finality.NewCachingProvider(n.Headers, 128)
	require.NoError(e.t, err)

	n.Messages = messages.NewManager(messages.ManagerParams{
		Config:     cfg,
		Store:      n.Store,
		Anchor:     messages.DirectAnchor{Finality: anchor},
		Dispatcher: dispatch.NewDispatcher(opts.specVersion, n.Runtime, n.Runtime, n.Runtime, n.Journal),
		Market:     n.Market,
		Journal:    n.Journal,
		PayDispatchFee: func(ctx context.Context, payer, relayer address.Address, w types.Weight) error {
			// dispatch fees convert weight to base units one to one
			return n.Ledger.Transfer(ctx, payer, relayer, types.NewInt(uint64(w)))
		},
	})
}
