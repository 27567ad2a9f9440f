package finality

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

type countingProvider struct {
	inner Provider

	rootCalls int
	headCalls int
}

func (cp *countingProvider) FinalizedStateRoot(ctx context.Context, headerHash types.Hash) (types.Hash, error) {
	cp.rootCalls++
	return cp.inner.FinalizedStateRoot(ctx, headerHash)
}

func (cp *countingProvider) FinalizedParaHead(ctx context.Context, paraID uint32, relayHeaderHash types.Hash) ([]byte, error) {
	cp.headCalls++
	return cp.inner.FinalizedParaHead(ctx, paraID, relayHeaderHash)
}

func TestCachingProviderMemoizes(t *testing.T) {
	ctx := context.Background()
	store := testStore()
	headers := testChain(t, store, 3, 2)

	counting := &countingProvider{inner: store}
	cached, err := NewCachingProvider(counting, 16)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		root, err := cached.FinalizedStateRoot(ctx, headers[0].Hash())
		require.NoError(t, err)
		require.Equal(t, headers[0].StateRoot, root)
	}
	require.Equal(t, 1, counting.rootCalls)
}

func TestCachingProviderDoesNotCacheMisses(t *testing.T) {
	ctx := context.Background()
	store := testStore()
	headers := testChain(t, store, 3, 1)

	cached, err := NewCachingProvider(store, 16)
	require.NoError(t, err)

	// unknown now
	_, err = cached.FinalizedStateRoot(ctx, headers[1].Hash())
	require.ErrorIs(t, err, ErrUnknownHeader)

	// certified later; the earlier miss must not stick
	require.NoError(t, store.FinalizeHeader(ctx, headers[1].Hash()))

	root, err := cached.FinalizedStateRoot(ctx, headers[1].Hash())
	require.NoError(t, err)
	require.Equal(t, headers[1].StateRoot, root)
}

func TestCachingProviderParaHeads(t *testing.T) {
	ctx := context.Background()
	store := testStore()
	headers := testChain(t, store, 2, 2)

	require.NoError(t, store.PutParaHead(ctx, 2105, headers[0].Hash(), []byte("head")))

	counting := &countingProvider{inner: store}
	cached, err := NewCachingProvider(counting, 16)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		head, err := cached.FinalizedParaHead(ctx, 2105, headers[0].Hash())
		require.NoError(t, err)
		require.Equal(t, []byte("head"), head)
	}
	require.Equal(t, 1, counting.headCalls)
}
