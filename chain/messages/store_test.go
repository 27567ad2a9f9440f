package messages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	ds "github.com/ipfs/go-datastore"
	ds_sync "github.com/ipfs/go-datastore/sync"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

func testStore() *Store {
	return NewStore(ds_sync.MutexWrap(ds.NewMapDatastore()))
}

func TestStoreLaneDefaults(t *testing.T) {
	ctx := context.Background()
	st := testStore()

	// a lane that was never written starts out fresh
	out, err := st.OutboundLane(ctx, testLane)
	require.NoError(t, err)
	require.Equal(t, types.NewOutboundLaneData(), *out)

	in, err := st.InboundLane(ctx, testLane)
	require.NoError(t, err)
	require.Empty(t, in.Relayers)
	require.Equal(t, types.MessageNonce(0), in.LastConfirmedNonce)
}

func TestStoreLaneRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := testStore()

	out := &types.OutboundLaneData{
		OldestUnprunedNonce:  2,
		LatestReceivedNonce:  4,
		LatestGeneratedNonce: 9,
	}
	require.NoError(t, st.PutOutboundLane(ctx, testLane, out))

	got, err := st.OutboundLane(ctx, testLane)
	require.NoError(t, err)
	require.Equal(t, out, got)

	in := &types.InboundLaneData{
		Relayers: []types.UnrewardedRelayer{
			{Relayer: testAddr(t, "a"), Messages: types.DeliveredMessages{Begin: 3, End: 4}},
			{Relayer: testAddr(t, "b"), Messages: types.DeliveredMessages{Begin: 5, End: 5}},
		},
		LastConfirmedNonce: 2,
	}
	require.NoError(t, st.PutInboundLane(ctx, testLane, in))

	gotIn, err := st.InboundLane(ctx, testLane)
	require.NoError(t, err)
	require.Equal(t, in, gotIn)

	// other lanes are untouched
	other, err := st.OutboundLane(ctx, mustLane("ln01"))
	require.NoError(t, err)
	require.Equal(t, types.NewOutboundLaneData(), *other)
}

func TestStoreMessages(t *testing.T) {
	ctx := context.Background()
	st := testStore()

	key := types.MessageKey{Lane: testLane, Nonce: 9}
	data := &types.MessageData{Payload: []byte("payload"), Fee: types.NewInt(42)}

	_, err := st.GetMessage(ctx, key)
	require.ErrorIs(t, err, ErrMessageNotFound)

	require.NoError(t, st.PutMessage(ctx, key, data))

	got, err := st.GetMessage(ctx, key)
	require.NoError(t, err)
	require.Equal(t, data, got)

	// same nonce on another lane is a different message
	_, err = st.GetMessage(ctx, types.MessageKey{Lane: mustLane("ln01"), Nonce: 9})
	require.ErrorIs(t, err, ErrMessageNotFound)

	require.NoError(t, st.DeleteMessage(ctx, key))
	_, err = st.GetMessage(ctx, key)
	require.ErrorIs(t, err, ErrMessageNotFound)
}
