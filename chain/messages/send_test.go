package messages

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/dispatch"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

func TestSendMessageAssignsSequentialNonces(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testConfig())

	for want := types.MessageNonce(1); want <= 3; want++ {
		nonce, err := env.mgr.SendMessage(ctx, types.RootOrigin(), testLane, rootPayload("call"), types.NewInt(10), 100)
		require.NoError(t, err)
		require.Equal(t, want, nonce)
	}

	ld, err := env.mgr.OutboundLaneData(ctx, testLane)
	require.NoError(t, err)
	require.Equal(t, types.MessageNonce(3), ld.LatestGeneratedNonce)
	require.Equal(t, types.MessageNonce(0), ld.LatestReceivedNonce)
	require.Equal(t, types.MessageNonce(1), ld.OldestUnprunedNonce)

	// one collected fee and one order per accepted message
	require.Len(t, env.market.collected, 3)
	require.Len(t, env.market.orders, 3)
	require.Contains(t, env.market.orders, types.MessageKey{Lane: testLane, Nonce: 2})

	data, err := env.mgr.OutboundMessage(ctx, types.MessageKey{Lane: testLane, Nonce: 2})
	require.NoError(t, err)
	require.Equal(t, types.NewInt(10), data.Fee)

	payload, err := types.DecodeMessagePayload(data.Payload)
	require.NoError(t, err)
	require.Equal(t, []byte("call"), payload.Call)
}

func TestSendMessageLaneRejected(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testConfig())

	_, err := env.mgr.SendMessage(ctx, types.RootOrigin(), mustLane("ln99"), rootPayload("call"), types.NewInt(10), 100)
	require.ErrorIs(t, err, ErrLaneRejected)
}

func TestSendMessageTooLarge(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.MaxBridgedExtrinsicSize = 60 // leaves 40 bytes for the payload
	env := newTestEnv(t, cfg)

	_, err := env.mgr.SendMessage(ctx, types.RootOrigin(), testLane, rootPayload(strings.Repeat("x", 64)), types.NewInt(10), 100)
	require.ErrorIs(t, err, ErrMessageTooLarge)
}

func TestSendMessageWeightTooLarge(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testConfig()) // extrinsic weight 1000000, dispatch budget half of it

	payload := rootPayload("call")
	payload.Weight = 500001
	_, err := env.mgr.SendMessage(ctx, types.RootOrigin(), testLane, payload, types.NewInt(10), 100)
	require.ErrorIs(t, err, ErrWeightTooLarge)

	payload.Weight = 500000
	_, err = env.mgr.SendMessage(ctx, types.RootOrigin(), testLane, payload, types.NewInt(10), 100)
	require.NoError(t, err)
}

func TestSendMessagePendingCap(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.MaxPendingMessages = 2
	env := newTestEnv(t, cfg)

	// the queue is measured before the send, so the lane holds up to
	// cap+1 messages before refusing
	for i := 0; i < 3; i++ {
		_, err := env.mgr.SendMessage(ctx, types.RootOrigin(), testLane, rootPayload("call"), types.NewInt(10), 100)
		require.NoError(t, err)
	}

	_, err := env.mgr.SendMessage(ctx, types.RootOrigin(), testLane, rootPayload("call"), types.NewInt(10), 100)
	require.ErrorIs(t, err, ErrTooManyPendingMessages)
}

func TestSendMessageBadOrigin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testConfig())
	alice := testAddr(t, "alice")

	// a signed account cannot claim the source root origin
	_, err := env.mgr.SendMessage(ctx, types.SignedOrigin(alice), testLane, rootPayload("call"), types.NewInt(10), 100)
	require.ErrorIs(t, err, dispatch.ErrBadOrigin)

	// nor send on behalf of another account
	payload := rootPayload("call")
	payload.Origin = types.SourceAccountOrigin(testAddr(t, "bob").Bytes())
	_, err = env.mgr.SendMessage(ctx, types.SignedOrigin(alice), testLane, payload, types.NewInt(10), 100)
	require.ErrorIs(t, err, dispatch.ErrBadOrigin)

	// itself is fine
	payload.Origin = types.SourceAccountOrigin(alice.Bytes())
	_, err = env.mgr.SendMessage(ctx, types.SignedOrigin(alice), testLane, payload, types.NewInt(10), 100)
	require.NoError(t, err)
}

func TestSendMessageFeeChecks(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testConfig()) // market fee 10

	_, err := env.mgr.SendMessage(ctx, types.RootOrigin(), testLane, rootPayload("call"), types.NewInt(9), 100)
	require.ErrorIs(t, err, ErrTooLowFee)

	env.market.notReady = true
	_, err = env.mgr.SendMessage(ctx, types.RootOrigin(), testLane, rootPayload("call"), types.NewInt(100), 100)
	require.ErrorIs(t, err, ErrTooLowFee)
	env.market.notReady = false

	env.market.collectErr = errors.New("no funds")
	_, err = env.mgr.SendMessage(ctx, types.RootOrigin(), testLane, rootPayload("call"), types.NewInt(100), 100)
	require.ErrorIs(t, err, ErrFeePaymentFailed)

	// none of the refused messages consumed a nonce
	ld, err := env.mgr.OutboundLaneData(ctx, testLane)
	require.NoError(t, err)
	require.Equal(t, types.MessageNonce(0), ld.LatestGeneratedNonce)
	require.Empty(t, env.market.orders)
}

func TestSendMessagePrunesSettledMessages(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testConfig())

	for i := 0; i < 3; i++ {
		_, err := env.mgr.SendMessage(ctx, types.RootOrigin(), testLane, rootPayload("call"), types.NewInt(10), 100)
		require.NoError(t, err)
	}

	// deliveries of 1 and 2 got confirmed and their orders settled
	olane := &outboundLane{store: env.store, id: testLane}
	_, err := olane.confirm(ctx, 2)
	require.NoError(t, err)
	env.market.settled[types.MessageKey{Lane: testLane, Nonce: 1}] = true
	env.market.settled[types.MessageKey{Lane: testLane, Nonce: 2}] = true

	// the next send sweeps them out
	_, err = env.mgr.SendMessage(ctx, types.RootOrigin(), testLane, rootPayload("call"), types.NewInt(10), 101)
	require.NoError(t, err)

	ld, err := env.mgr.OutboundLaneData(ctx, testLane)
	require.NoError(t, err)
	require.Equal(t, types.MessageNonce(3), ld.OldestUnprunedNonce)

	_, err = env.mgr.OutboundMessage(ctx, types.MessageKey{Lane: testLane, Nonce: 1})
	require.ErrorIs(t, err, ErrMessageNotFound)

	// the unconfirmed tail stays
	_, err = env.mgr.OutboundMessage(ctx, types.MessageKey{Lane: testLane, Nonce: 3})
	require.NoError(t, err)
}
