package feemarket

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/stretchr/testify/require"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

func TestCreateOrderSnapshotsMarket(t *testing.T) {
	env := newTestEnv(t, testConfig())
	ctx := context.TODO()

	r1, r2, r3 := env.enrollThree()
	key := env.sendMessage(1, 100, 10)

	order, err := env.market.Order(ctx, key)
	require.NoError(t, err)
	require.Equal(t, testLane, order.Lane)
	require.Equal(t, types.MessageNonce(1), order.Nonce)
	require.Equal(t, uint64(100), order.Fee.Uint64())
	require.Equal(t, uint64(1000), order.CollateralPerRelayer.Uint64())

	require.Len(t, order.AssignedRelayers, 3)
	for i, want := range []struct {
		relayer  string
		quote    uint64
		slotEnd  int64
		slotFrom int64
	}{
		{r1.String(), 30, 60, 10},
		{r2.String(), 40, 110, 60},
		{r3.String(), 50, 160, 110},
	} {
		got := order.AssignedRelayers[i]
		require.Equal(t, want.relayer, got.Relayer.String())
		require.Equal(t, want.quote, got.Fee.Uint64())
		require.EqualValues(t, want.slotFrom, got.SlotStart)
		require.EqualValues(t, want.slotEnd, got.SlotEnd)
	}
	require.EqualValues(t, 160, order.Deadline())

	// The quote snapshot is immutable; later requotes only touch new
	// orders.
	require.NoError(t, env.market.UpdateQuote(ctx, r1, types.NewInt(99)))
	order, err = env.market.Order(ctx, key)
	require.NoError(t, err)
	require.Equal(t, uint64(30), order.AssignedRelayers[0].Fee.Uint64())

	// Accepting the same message twice has no defined meaning.
	err = env.market.CreateOrder(ctx, key, types.NewInt(100), 10)
	require.Error(t, err)
}

func TestDeliveryInfo(t *testing.T) {
	env := newTestEnv(t, testConfig())

	env.enrollThree()
	key := env.sendMessage(1, 100, 10)

	order, err := env.market.Order(context.TODO(), key)
	require.NoError(t, err)

	for _, tc := range []struct {
		confirmedAt abi.ChainEpoch
		slot        int
		inTime      bool
	}{
		{11, 0, true},
		{60, 0, true},
		{61, 1, true},
		{110, 1, true},
		{160, 2, true},
		{161, 0, false},
	} {
		slot, _, ok := order.DeliveryInfo(tc.confirmedAt)
		require.Equal(t, tc.inTime, ok, "confirmed at %d", tc.confirmedAt)
		if ok {
			require.Equal(t, tc.slot, slot, "confirmed at %d", tc.confirmedAt)
		}
	}

	require.EqualValues(t, 0, order.DeliveryDelay(150))
	require.EqualValues(t, 40, order.DeliveryDelay(200))
}

func TestOnMessagesConfirmedStampsOnce(t *testing.T) {
	env := newTestEnv(t, testConfig())
	ctx := context.TODO()

	env.enrollThree()
	key := env.sendMessage(1, 100, 10)

	confirmed := types.DeliveredMessages{Begin: 1, End: 1}
	require.NoError(t, env.market.OnMessagesConfirmed(ctx, testLane, confirmed, 42))

	order, err := env.market.Order(ctx, key)
	require.NoError(t, err)
	require.EqualValues(t, 42, order.ConfirmedAt)

	// A replayed confirmation cannot move the slot decision.
	require.NoError(t, env.market.OnMessagesConfirmed(ctx, testLane, confirmed, 170))
	order, err = env.market.Order(ctx, key)
	require.NoError(t, err)
	require.EqualValues(t, 42, order.ConfirmedAt)

	// Nonces without orders are skipped.
	require.NoError(t, env.market.OnMessagesConfirmed(ctx, testLane, types.DeliveredMessages{Begin: 7, End: 9}, 42))
}

func TestIsSettledGate(t *testing.T) {
	env := newTestEnv(t, testConfig())
	ctx := context.TODO()

	env.enrollThree()
	key := env.sendMessage(1, 100, 10)

	settled, err := env.market.IsSettled(ctx, key)
	require.NoError(t, err)
	require.False(t, settled, "an open order blocks pruning")

	require.NoError(t, env.settle(1, 1, 20))

	settled, err = env.market.IsSettled(ctx, key)
	require.NoError(t, err)
	require.True(t, settled)

	_, err = env.market.Order(ctx, key)
	require.ErrorIs(t, err, ErrOrderNotFound)

	// Nonces that never opened an order read as settled.
	settled, err = env.market.IsSettled(ctx, types.MessageKey{Lane: testLane, Nonce: 99})
	require.NoError(t, err)
	require.True(t, settled)
}
