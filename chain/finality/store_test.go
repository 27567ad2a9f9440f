package finality

import (
	"context"
	"fmt"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	ds "github.com/ipfs/go-datastore"
	ds_sync "github.com/ipfs/go-datastore/sync"
	"github.com/stretchr/testify/require"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

func testStore() *Store {
	return NewStore(ds_sync.MutexWrap(ds.NewMapDatastore()))
}

func testHeader(number int64, parent types.Hash) *types.BridgedHeader {
	h := &types.BridgedHeader{
		Number:     abi.ChainEpoch(number),
		ParentHash: parent,
	}
	copy(h.StateRoot[:], fmt.Sprintf("state-root-%d", number))
	copy(h.ExtrinsicsRoot[:], fmt.Sprintf("extrinsics-%d", number))
	return h
}

// testChain imports headers 1..n and finalizes the first finalized of them.
func testChain(t *testing.T, store *Store, n int64, finalized int64) []*types.BridgedHeader {
	ctx := context.Background()

	var out []*types.BridgedHeader
	var parent types.Hash
	for i := int64(1); i <= n; i++ {
		h := testHeader(i, parent)
		require.NoError(t, store.ImportHeader(ctx, h))
		parent = h.Hash()
		out = append(out, h)
	}
	for i := int64(1); i <= finalized; i++ {
		require.NoError(t, store.FinalizeHeader(ctx, out[i-1].Hash()))
	}
	return out
}

func TestFinalizedStateRoot(t *testing.T) {
	ctx := context.Background()
	store := testStore()

	headers := testChain(t, store, 3, 2)

	root, err := store.FinalizedStateRoot(ctx, headers[1].Hash())
	require.NoError(t, err)
	require.Equal(t, headers[1].StateRoot, root)

	// imported but not finalized
	_, err = store.FinalizedStateRoot(ctx, headers[2].Hash())
	require.ErrorIs(t, err, ErrUnknownHeader)

	// never seen
	_, err = store.FinalizedStateRoot(ctx, testHeader(99, types.Hash{}).Hash())
	require.ErrorIs(t, err, ErrUnknownHeader)
}

func TestFinalizeUnknownHeader(t *testing.T) {
	ctx := context.Background()
	store := testStore()

	err := store.FinalizeHeader(ctx, testHeader(1, types.Hash{}).Hash())
	require.Error(t, err)
}

func TestFinalityNeverMovesBackwards(t *testing.T) {
	ctx := context.Background()
	store := testStore()

	headers := testChain(t, store, 3, 2)

	// re-finalizing the tip is a no-op
	require.NoError(t, store.FinalizeHeader(ctx, headers[1].Hash()))

	// finalizing below the tip is a regression
	require.Error(t, store.FinalizeHeader(ctx, headers[0].Hash()))

	tip, err := store.FinalizedHeader(ctx)
	require.NoError(t, err)
	require.Equal(t, abi.ChainEpoch(2), tip.Number)
}

func TestTipsTrackImports(t *testing.T) {
	ctx := context.Background()
	store := testStore()

	best, err := store.BestHeader(ctx)
	require.NoError(t, err)
	require.Nil(t, best)

	finalized, err := store.FinalizedHeader(ctx)
	require.NoError(t, err)
	require.Nil(t, finalized)

	headers := testChain(t, store, 5, 3)

	best, err = store.BestHeader(ctx)
	require.NoError(t, err)
	require.Equal(t, headers[4].Hash(), best.Hash())

	finalized, err = store.FinalizedHeader(ctx)
	require.NoError(t, err)
	require.Equal(t, headers[2].Hash(), finalized.Hash())

	// importing an old header does not move the best tip back
	require.NoError(t, store.ImportHeader(ctx, headers[1]))
	best, err = store.BestHeader(ctx)
	require.NoError(t, err)
	require.Equal(t, headers[4].Hash(), best.Hash())
}

func TestParaHeads(t *testing.T) {
	ctx := context.Background()
	store := testStore()

	headers := testChain(t, store, 3, 2)
	head := []byte("encoded-para-head")

	// recording against a non-finalized relay header fails
	require.Error(t, store.PutParaHead(ctx, 2105, headers[2].Hash(), head))

	require.NoError(t, store.PutParaHead(ctx, 2105, headers[1].Hash(), head))

	got, err := store.FinalizedParaHead(ctx, 2105, headers[1].Hash())
	require.NoError(t, err)
	require.Equal(t, head, got)

	// same relay header, different para
	_, err = store.FinalizedParaHead(ctx, 2000, headers[1].Hash())
	require.ErrorIs(t, err, ErrUnknownHeader)
}
