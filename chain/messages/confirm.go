package messages

import (
	"context"
	"errors"

	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
	"github.com/darwinia-network/darwinia-bridge-substrate/journal"
	"github.com/darwinia-network/darwinia-bridge-substrate/metrics"
)

// ErrInvalidRelayersState is returned when a delivery confirmation carries
// an unrewarded relayers set exceeding the lane's own caps. The bridged
// chain enforces the same caps, so such a proof is forged or the two ends
// are misconfigured against each other.
var ErrInvalidRelayersState = errors.New("invalid unrewarded relayers state in delivery confirmation")

// ConfirmationResult reports how a delivery confirmation was applied.
type ConfirmationResult struct {
	Lane types.LaneID

	// Confirmed is the newly confirmed nonce range, nil when the proof
	// confirmed nothing new.
	Confirmed *types.DeliveredMessages

	// Pruned counts outbound messages deleted in the same call.
	Pruned uint64
}

// ReceiveMessagesDeliveryProof applies a delivery confirmation proved out
// of the bridged chain's inbound lane state. Newly confirmed nonces are
// handed to the fee market for settlement and settled messages are pruned.
// The nonce advance never depends on settlement succeeding: a failed
// settlement is logged and its orders stay open for a later pass.
func (m *Manager) ReceiveMessagesDeliveryProof(ctx context.Context, confirmRelayer address.Address, proof *types.MessagesDeliveryProof, at abi.ChainEpoch) (*ConfirmationResult, error) {
	m.lk.Lock()
	defer m.lk.Unlock()

	lane := proof.Lane
	mctx, _ := tag.New(ctx, tag.Upsert(metrics.Lane, lane.String()))

	stop := metrics.Timer(mctx, metrics.MessageVerificationDurationMilliseconds)
	laneData, err := VerifyMessagesDeliveryProof(ctx, m.anchor, m.cfg.BridgedMessagesPallet, proof)
	stop()
	if err != nil {
		m.rejectProof(ctx, lane, err)
		return nil, err
	}
	stats.Record(mctx, metrics.MessageProofSizeBytes.M(int64(proof.Size())))

	if uint64(len(laneData.Relayers)) > m.cfg.MaxUnrewardedRelayerEntries ||
		laneData.TotalUnconfirmedMessages() > m.cfg.MaxUnconfirmedMessages {
		m.rejectProof(ctx, lane, ErrInvalidRelayersState)
		return nil, xerrors.Errorf("%d entries, %d unconfirmed messages: %w",
			len(laneData.Relayers), laneData.TotalUnconfirmedMessages(), ErrInvalidRelayersState)
	}

	olane := &outboundLane{store: m.store, id: lane}
	confirmed, err := olane.confirm(ctx, laneData.LastDeliveredNonce())
	if err != nil {
		if errors.Is(err, ErrOutOfOrderNonce) {
			m.rejectProof(ctx, lane, err)
		}
		return nil, err
	}

	res := &ConfirmationResult{Lane: lane}
	if confirmed == nil {
		log.Debugw("confirmation proves nothing new", "lane", lane, "latest", laneData.LastDeliveredNonce())
		return res, nil
	}
	res.Confirmed = confirmed

	settleErr := m.market.SettleRewards(ctx, lane, *confirmed, laneData.Relayers, confirmRelayer, at)
	if settleErr != nil {
		log.Errorw("failed to settle rewards for confirmed range", "lane", lane,
			"begin", confirmed.Begin, "end", confirmed.End, "error", settleErr)
	}

	pruned, err := olane.prune(ctx, m.cfg.MaxMessagesToPruneAtOnce, m.market.IsSettled)
	if err != nil {
		log.Warnw("failed to prune lane", "lane", lane, "error", err)
	}
	res.Pruned = pruned

	stats.Record(mctx, metrics.MessageConfirmed.M(int64(confirmed.Len())))
	if pruned > 0 {
		stats.Record(mctx, metrics.MessagePruned.M(int64(pruned)))
	}

	journal.MaybeAddEntry(m.journal, m.evtTypes[evtTypeLaneAdvanced], func() interface{} {
		return LaneAdvancedEvt{
			Lane:           lane.String(),
			Begin:          confirmed.Begin,
			End:            confirmed.End,
			ConfirmRelayer: confirmRelayer.String(),
			Pruned:         pruned,
			Settled:        settleErr == nil,
		}
	})

	log.Infow("deliveries confirmed", "lane", lane, "begin", confirmed.Begin, "end", confirmed.End,
		"pruned", pruned, "relayer", confirmRelayer)
	return res, nil
}
