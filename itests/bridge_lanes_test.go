package itests

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/messages"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
	"github.com/darwinia-network/darwinia-bridge-substrate/itests/kit"
)

// TestBridgeSendCaps checks the send-side admission limits: physical
// bridged chain bounds, lane activity and the pending-messages cap.
func TestBridgeSendCaps(t *testing.T) {
	kit.QuietBridgeLogs()
	ctx := context.Background()

	ens := kit.NewBridgeEnsemble(t, kit.MessagesConfig(func(cfg *messages.Config) {
		cfg.MaxPendingMessages = 2
	}))
	left := ens.Left

	left.EnrollDefaultRelayers(ctx)
	alice := left.Account("alice")
	left.Mint(ctx, alice, 1000)

	heavy := left.AccountCallPayload(alice, "heavy")
	heavy.Weight = 1_000_001
	_, err := left.TrySendMessage(ctx, types.SignedOrigin(alice), kit.DefaultLane, heavy, 100)
	require.ErrorIs(t, err, messages.ErrWeightTooLarge)

	huge := left.AccountCallPayload(alice, string(bytes.Repeat([]byte("x"), 7000)))
	_, err = left.TrySendMessage(ctx, types.SignedOrigin(alice), kit.DefaultLane, huge, 100)
	require.ErrorIs(t, err, messages.ErrMessageTooLarge)

	inactive, err := types.LaneIDFromString("ln99")
	require.NoError(t, err)
	_, err = left.TrySendMessage(ctx, types.SignedOrigin(alice), inactive, left.AccountCallPayload(alice, "nowhere"), 100)
	require.ErrorIs(t, err, messages.ErrLaneRejected)

	// The pending cap kicks in once more than MaxPendingMessages queue up.
	for i := 0; i < 3; i++ {
		left.SendMessage(ctx, types.SignedOrigin(alice), kit.DefaultLane, left.AccountCallPayload(alice, "queued"), 100)
	}
	_, err = left.TrySendMessage(ctx, types.SignedOrigin(alice), kit.DefaultLane, left.AccountCallPayload(alice, "one too many"), 100)
	require.ErrorIs(t, err, messages.ErrTooManyPendingMessages)

	// Refused sends consumed no nonce.
	old, err := left.Messages.OutboundLaneData(ctx, kit.DefaultLane)
	require.NoError(t, err)
	require.Equal(t, types.MessageNonce(3), old.LatestGeneratedNonce)
}

// TestBridgeUnrewardedRelayersCap fills the unrewarded relayers set and
// checks deliveries resume once a confirmation riding along on a message
// proof drains it.
func TestBridgeUnrewardedRelayersCap(t *testing.T) {
	kit.QuietBridgeLogs()
	ctx := context.Background()

	ens := kit.NewBridgeEnsemble(t, kit.MessagesConfig(func(cfg *messages.Config) {
		cfg.MaxUnrewardedRelayerEntries = 1
	}))
	left, right := ens.Left, ens.Right

	left.EnrollDefaultRelayers(ctx)
	daisy := left.Account("daisy")
	eve := left.Account("eve")
	carol := left.Account("carol")
	alice := left.Account("alice")
	left.Mint(ctx, alice, 1000)

	left.SendMessage(ctx, types.SignedOrigin(alice), kit.DefaultLane, left.AccountCallPayload(alice, "first"), 100)
	left.SendMessage(ctx, types.SignedOrigin(alice), kit.DefaultLane, left.AccountCallPayload(alice, "second"), 100)
	left.SealBlock(ctx)

	left.RelayMessages(ctx, daisy, kit.DefaultLane, 1, 1)

	// One unrewarded entry is the cap: the next delivery is skipped
	// without consuming its nonce.
	res := left.RelayMessages(ctx, eve, kit.DefaultLane, 2, 2)
	require.Zero(t, res.Dispatched())
	require.Equal(t, messages.ReceivalTooManyUnrewardedRelayers, res.Receivals[0].Status)
	require.Equal(t, []string{"first"}, right.Runtime.Executed())

	// Confirm daisy's delivery back; the next message proof carries the
	// advanced outbound state and drains her entry.
	right.SealBlock(ctx)
	right.RelayConfirmations(ctx, carol, kit.DefaultLane)
	left.SealBlock(ctx)

	res = left.RelayMessages(ctx, eve, kit.DefaultLane, 2, 2)
	require.Equal(t, 1, res.Dispatched())
	require.Equal(t, []string{"first", "second"}, right.Runtime.Executed())

	ild, err := right.Messages.InboundLaneData(ctx, kit.DefaultLane)
	require.NoError(t, err)
	require.Equal(t, types.MessageNonce(1), ild.LastConfirmedNonce)
	require.Len(t, ild.Relayers, 1)
	require.Equal(t, eve, ild.Relayers[0].Relayer)
}

// TestBridgeUnconfirmedMessagesCap stops deliveries at the unconfirmed
// messages cap and resumes them after a confirmation round trip.
func TestBridgeUnconfirmedMessagesCap(t *testing.T) {
	kit.QuietBridgeLogs()
	ctx := context.Background()

	ens := kit.NewBridgeEnsemble(t, kit.MessagesConfig(func(cfg *messages.Config) {
		cfg.MaxUnconfirmedMessages = 2
	}))
	left, right := ens.Left, ens.Right

	left.EnrollDefaultRelayers(ctx)
	daisy := left.Account("daisy")
	carol := left.Account("carol")
	alice := left.Account("alice")
	left.Mint(ctx, alice, 1000)

	for _, call := range []string{"m1", "m2", "m3"} {
		left.SendMessage(ctx, types.SignedOrigin(alice), kit.DefaultLane, left.AccountCallPayload(alice, call), 100)
	}
	left.SealBlock(ctx)

	// The batch is cut short at the cap.
	res := left.RelayMessages(ctx, daisy, kit.DefaultLane, 1, 3)
	require.Equal(t, 2, res.Dispatched())
	require.Equal(t, messages.ReceivalTooManyUnconfirmedMessages, res.Receivals[2].Status)

	right.SealBlock(ctx)
	right.RelayConfirmations(ctx, carol, kit.DefaultLane)
	left.SealBlock(ctx)

	res = left.RelayMessages(ctx, daisy, kit.DefaultLane, 3, 3)
	require.Equal(t, 1, res.Dispatched())
	require.Equal(t, []string{"m1", "m2", "m3"}, right.Runtime.Executed())
}

// TestBridgeMultiLaneIsolation runs two lanes over the same bridge and
// checks their nonces, deliveries and confirmations never mix.
func TestBridgeMultiLaneIsolation(t *testing.T) {
	kit.QuietBridgeLogs()
	ctx := context.Background()

	laneB, err := types.LaneIDFromString("ln01")
	require.NoError(t, err)

	ens := kit.NewBridgeEnsemble(t, kit.Lanes(kit.DefaultLane, laneB))
	left, right := ens.Left, ens.Right

	left.EnrollDefaultRelayers(ctx)
	daisy := left.Account("daisy")
	carol := left.Account("carol")
	alice := left.Account("alice")
	left.Mint(ctx, alice, 1000)

	// One message on lane A, two on lane B; nonces start at 1 on each.
	require.Equal(t, types.MessageNonce(1),
		left.SendMessage(ctx, types.SignedOrigin(alice), kit.DefaultLane, left.AccountCallPayload(alice, "a1"), 100))
	require.Equal(t, types.MessageNonce(1),
		left.SendMessage(ctx, types.SignedOrigin(alice), laneB, left.AccountCallPayload(alice, "b1"), 100))
	require.Equal(t, types.MessageNonce(2),
		left.SendMessage(ctx, types.SignedOrigin(alice), laneB, left.AccountCallPayload(alice, "b2"), 100))

	// One sealed header carries both lanes.
	left.SealBlock(ctx)
	left.RelayMessages(ctx, daisy, kit.DefaultLane, 1, 1)
	left.RelayMessages(ctx, daisy, laneB, 1, 2)
	require.Equal(t, []string{"a1", "b1", "b2"}, right.Runtime.Executed())

	ildA, err := right.Messages.InboundLaneData(ctx, kit.DefaultLane)
	require.NoError(t, err)
	require.Equal(t, types.MessageNonce(1), ildA.LastDeliveredNonce())
	ildB, err := right.Messages.InboundLaneData(ctx, laneB)
	require.NoError(t, err)
	require.Equal(t, types.MessageNonce(2), ildB.LastDeliveredNonce())

	// Confirm lane B only; lane A stays unconfirmed.
	right.SealBlock(ctx)
	conf := right.RelayConfirmations(ctx, carol, laneB)
	require.NotNil(t, conf.Confirmed)
	require.Equal(t, types.MessageNonce(2), conf.Confirmed.End)

	oldA, err := left.Messages.OutboundLaneData(ctx, kit.DefaultLane)
	require.NoError(t, err)
	require.Zero(t, oldA.LatestReceivedNonce)
	oldB, err := left.Messages.OutboundLaneData(ctx, laneB)
	require.NoError(t, err)
	require.Equal(t, types.MessageNonce(2), oldB.LatestReceivedNonce)

	// And lane A afterwards, from the same sealed header.
	conf = right.RelayConfirmations(ctx, carol, kit.DefaultLane)
	require.NotNil(t, conf.Confirmed)
	require.Equal(t, types.MessageNonce(1), conf.Confirmed.End)
}
