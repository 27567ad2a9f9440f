package messages

import (
	"context"
	"errors"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/stretchr/testify/require"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

func sendMessages(t *testing.T, env *testEnv, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		_, err := env.mgr.SendMessage(ctx, types.RootOrigin(), testLane, rootPayload("call"), types.NewInt(10), 100)
		require.NoError(t, err)
	}
}

func TestReceiveMessagesDeliveryProof(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testConfig())
	deliverer := testAddr(t, "deliverer")
	confirmer := testAddr(t, "confirmer")

	sendMessages(t, env, 3)

	// the bridged chain reports two of the three delivered
	env.bridged.putInboundState(testLane, &types.InboundLaneData{
		Relayers: []types.UnrewardedRelayer{
			{Relayer: deliverer, Messages: types.DeliveredMessages{Begin: 1, End: 2}},
		},
	})

	res, err := env.mgr.ReceiveMessagesDeliveryProof(ctx, confirmer, env.bridged.deliveryProof(testLane), 120)
	require.NoError(t, err)
	require.NotNil(t, res.Confirmed)
	require.Equal(t, types.DeliveredMessages{Begin: 1, End: 2}, *res.Confirmed)

	// settlement got the proved relayers and the confirming relayer
	require.Len(t, env.market.settles, 1)
	sc := env.market.settles[0]
	require.Equal(t, testLane, sc.lane)
	require.Equal(t, types.DeliveredMessages{Begin: 1, End: 2}, sc.confirmed)
	require.Equal(t, confirmer, sc.confirmRelayer)
	require.Equal(t, deliverer, sc.relayers[0].Relayer)
	require.Equal(t, abi.ChainEpoch(120), sc.at)

	// the settled prefix was pruned, the unconfirmed tail stays
	require.Equal(t, uint64(2), res.Pruned)
	ld, err := env.mgr.OutboundLaneData(ctx, testLane)
	require.NoError(t, err)
	require.Equal(t, types.MessageNonce(2), ld.LatestReceivedNonce)
	require.Equal(t, types.MessageNonce(3), ld.OldestUnprunedNonce)

	_, err = env.mgr.OutboundMessage(ctx, types.MessageKey{Lane: testLane, Nonce: 1})
	require.ErrorIs(t, err, ErrMessageNotFound)
	_, err = env.mgr.OutboundMessage(ctx, types.MessageKey{Lane: testLane, Nonce: 3})
	require.NoError(t, err)
}

func TestReceiveMessagesDeliveryProofReplay(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testConfig())

	sendMessages(t, env, 2)
	env.bridged.putInboundState(testLane, &types.InboundLaneData{
		Relayers: []types.UnrewardedRelayer{
			{Relayer: testAddr(t, "deliverer"), Messages: types.DeliveredMessages{Begin: 1, End: 2}},
		},
	})
	proof := env.bridged.deliveryProof(testLane)

	res, err := env.mgr.ReceiveMessagesDeliveryProof(ctx, testAddr(t, "confirmer"), proof, 120)
	require.NoError(t, err)
	require.NotNil(t, res.Confirmed)

	// replaying the proof confirms nothing and settles nothing twice
	res, err = env.mgr.ReceiveMessagesDeliveryProof(ctx, testAddr(t, "confirmer"), proof, 121)
	require.NoError(t, err)
	require.Nil(t, res.Confirmed)
	require.Zero(t, res.Pruned)
	require.Len(t, env.market.settles, 1)
}

func TestReceiveMessagesDeliveryProofAheadOfGenerated(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testConfig())

	sendMessages(t, env, 1)

	// a confirmation for nonces this lane never generated is refused
	env.bridged.putInboundState(testLane, &types.InboundLaneData{
		Relayers: []types.UnrewardedRelayer{
			{Relayer: testAddr(t, "deliverer"), Messages: types.DeliveredMessages{Begin: 1, End: 5}},
		},
	})

	_, err := env.mgr.ReceiveMessagesDeliveryProof(ctx, testAddr(t, "confirmer"), env.bridged.deliveryProof(testLane), 120)
	require.ErrorIs(t, err, ErrOutOfOrderNonce)

	ld, err := env.mgr.OutboundLaneData(ctx, testLane)
	require.NoError(t, err)
	require.Equal(t, types.MessageNonce(0), ld.LatestReceivedNonce)
	require.Empty(t, env.market.settles)
}

func TestReceiveMessagesDeliveryProofInvalidRelayersState(t *testing.T) {
	ctx := context.Background()

	t.Run("too many entries", func(t *testing.T) {
		cfg := testConfig()
		cfg.MaxUnrewardedRelayerEntries = 1
		env := newTestEnv(t, cfg)

		env.bridged.putInboundState(testLane, &types.InboundLaneData{
			Relayers: []types.UnrewardedRelayer{
				{Relayer: testAddr(t, "a"), Messages: types.DeliveredMessages{Begin: 1, End: 1}},
				{Relayer: testAddr(t, "b"), Messages: types.DeliveredMessages{Begin: 2, End: 2}},
			},
		})

		_, err := env.mgr.ReceiveMessagesDeliveryProof(ctx, testAddr(t, "confirmer"), env.bridged.deliveryProof(testLane), 120)
		require.ErrorIs(t, err, ErrInvalidRelayersState)
	})

	t.Run("too many unconfirmed messages", func(t *testing.T) {
		cfg := testConfig()
		cfg.MaxUnconfirmedMessages = 2
		env := newTestEnv(t, cfg)

		env.bridged.putInboundState(testLane, &types.InboundLaneData{
			Relayers: []types.UnrewardedRelayer{
				{Relayer: testAddr(t, "a"), Messages: types.DeliveredMessages{Begin: 1, End: 5}},
			},
		})

		_, err := env.mgr.ReceiveMessagesDeliveryProof(ctx, testAddr(t, "confirmer"), env.bridged.deliveryProof(testLane), 120)
		require.ErrorIs(t, err, ErrInvalidRelayersState)
	})
}

func TestReceiveMessagesDeliveryProofSettlementFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testConfig())

	sendMessages(t, env, 2)
	env.bridged.putInboundState(testLane, &types.InboundLaneData{
		Relayers: []types.UnrewardedRelayer{
			{Relayer: testAddr(t, "deliverer"), Messages: types.DeliveredMessages{Begin: 1, End: 2}},
		},
	})

	env.market.settleErr = errors.New("fund account empty")
	res, err := env.mgr.ReceiveMessagesDeliveryProof(ctx, testAddr(t, "confirmer"), env.bridged.deliveryProof(testLane), 120)
	require.NoError(t, err)

	// the nonce advanced even though settlement failed
	require.NotNil(t, res.Confirmed)
	require.Equal(t, types.DeliveredMessages{Begin: 1, End: 2}, *res.Confirmed)
	ld, err := env.mgr.OutboundLaneData(ctx, testLane)
	require.NoError(t, err)
	require.Equal(t, types.MessageNonce(2), ld.LatestReceivedNonce)

	// with the orders still open nothing was pruned
	require.Zero(t, res.Pruned)
	require.Equal(t, types.MessageNonce(1), ld.OldestUnprunedNonce)

	// once the orders settle, the next pass sweeps the messages
	env.market.settleErr = nil
	env.market.settled[types.MessageKey{Lane: testLane, Nonce: 1}] = true
	env.market.settled[types.MessageKey{Lane: testLane, Nonce: 2}] = true
	sendMessages(t, env, 1)

	ld, err = env.mgr.OutboundLaneData(ctx, testLane)
	require.NoError(t, err)
	require.Equal(t, types.MessageNonce(3), ld.OldestUnprunedNonce)
}

func TestReceiveMessagesDeliveryProofPruneGate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testConfig())

	sendMessages(t, env, 2)
	env.bridged.putInboundState(testLane, &types.InboundLaneData{
		Relayers: []types.UnrewardedRelayer{
			{Relayer: testAddr(t, "deliverer"), Messages: types.DeliveredMessages{Begin: 1, End: 2}},
		},
	})

	// only nonce 2's order is settled; pruning stops at the unsettled 1
	env.market.settleErr = errors.New("no settlement")
	res, err := env.mgr.ReceiveMessagesDeliveryProof(ctx, testAddr(t, "confirmer"), env.bridged.deliveryProof(testLane), 120)
	require.NoError(t, err)
	require.Zero(t, res.Pruned)

	env.market.settled[types.MessageKey{Lane: testLane, Nonce: 2}] = true
	sendMessages(t, env, 1)

	ld, err := env.mgr.OutboundLaneData(ctx, testLane)
	require.NoError(t, err)
	require.Equal(t, types.MessageNonce(1), ld.OldestUnprunedNonce)
	_, err = env.mgr.OutboundMessage(ctx, types.MessageKey{Lane: testLane, Nonce: 1})
	require.NoError(t, err)
}

func TestReceiveMessagesDeliveryProofPruneCap(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.MaxMessagesToPruneAtOnce = 1
	env := newTestEnv(t, cfg)

	sendMessages(t, env, 2)
	env.bridged.putInboundState(testLane, &types.InboundLaneData{
		Relayers: []types.UnrewardedRelayer{
			{Relayer: testAddr(t, "deliverer"), Messages: types.DeliveredMessages{Begin: 1, End: 2}},
		},
	})

	res, err := env.mgr.ReceiveMessagesDeliveryProof(ctx, testAddr(t, "confirmer"), env.bridged.deliveryProof(testLane), 120)
	require.NoError(t, err)
	require.Equal(t, uint64(1), res.Pruned)

	ld, err := env.mgr.OutboundLaneData(ctx, testLane)
	require.NoError(t, err)
	require.Equal(t, types.MessageNonce(2), ld.OldestUnprunedNonce)

	// the leftover goes on the next pruning opportunity
	sendMessages(t, env, 1)
	ld, err = env.mgr.OutboundLaneData(ctx, testLane)
	require.NoError(t, err)
	require.Equal(t, types.MessageNonce(3), ld.OldestUnprunedNonce)
}
