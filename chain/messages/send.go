package messages

import (
	"context"
	"errors"

	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-state-types/abi"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/dispatch"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
	"github.com/darwinia-network/darwinia-bridge-substrate/journal"
	"github.com/darwinia-network/darwinia-bridge-substrate/metrics"
)

// Send-side admission failures.
var (
	ErrLaneRejected           = errors.New("the lane has rejected the message")
	ErrTooManyPendingMessages = errors.New("too many pending messages on the lane")
	ErrMessageTooLarge        = errors.New("message is too large to be delivered over the bridge")
	ErrWeightTooLarge         = errors.New("declared dispatch weight is over the bridged chain budget")
	ErrTooLowFee              = errors.New("fee is below the market fee")
	ErrFeePaymentFailed       = errors.New("failed to collect the message fee")
)

// SendMessage accepts a message into an outbound lane and returns the
// nonce it was assigned. The message is vetted against the bridged chain's
// delivery limits, the lane policy, the dispatch origin rules and the fee
// market quote, and its fee is collected, before any state changes.
func (m *Manager) SendMessage(ctx context.Context, origin types.RawOrigin, lane types.LaneID, payload *types.MessagePayload, fee types.BigInt, at abi.ChainEpoch) (types.MessageNonce, error) {
	if payload == nil {
		return 0, xerrors.New("nil payload")
	}

	m.lk.Lock()
	defer m.lk.Unlock()

	encoded, err := payload.Serialize()
	if err != nil {
		return 0, xerrors.Errorf("encoding payload: %w", err)
	}

	// The bridged chain must be able to physically carry and dispatch the
	// message, or the lane would stall on an undeliverable head.
	if uint64(len(encoded)) > m.bridged.MaxIncomingMessageSize() {
		return 0, xerrors.Errorf("payload is %d bytes, limit %d: %w",
			len(encoded), m.bridged.MaxIncomingMessageSize(), ErrMessageTooLarge)
	}
	if !m.bridged.VerifyDispatchWeight(encoded, payload.Weight) {
		return 0, xerrors.Errorf("declared weight %d: %w", payload.Weight, ErrWeightTooLarge)
	}

	if !m.lanes.AcceptsMessage(origin, lane) {
		return 0, xerrors.Errorf("lane %s: %w", lane, ErrLaneRejected)
	}

	ld, err := m.store.OutboundLane(ctx, lane)
	if err != nil {
		return 0, err
	}
	if ld.QueuedMessages() > m.cfg.MaxPendingMessages {
		return 0, xerrors.Errorf("%d pending on lane %s: %w", ld.QueuedMessages(), lane, ErrTooManyPendingMessages)
	}

	// Whoever submits the message must be entitled to the dispatch origin
	// it claims; the bridged chain trusts the descriptor we let through.
	if _, err := dispatch.VerifyMessageOrigin(origin, payload); err != nil {
		return 0, err
	}

	marketFee, ok, err := m.market.MarketFee(ctx)
	if err != nil {
		return 0, xerrors.Errorf("quoting market fee: %w", err)
	}
	if !ok {
		return 0, xerrors.Errorf("fee market is not ready to accept messages: %w", ErrTooLowFee)
	}
	if types.BigCmp(fee, marketFee) < 0 {
		return 0, xerrors.Errorf("fee %s below market fee %s: %w", fee, marketFee, ErrTooLowFee)
	}

	if err := m.market.CollectFee(ctx, origin, fee); err != nil {
		return 0, xerrors.Errorf("%s: %w", err, ErrFeePaymentFailed)
	}

	olane := &outboundLane{store: m.store, id: lane}
	nonce, err := olane.send(ctx, &types.MessageData{Payload: encoded, Fee: fee})
	if err != nil {
		return 0, xerrors.Errorf("storing message on lane %s: %w", lane, err)
	}
	key := types.MessageKey{Lane: lane, Nonce: nonce}

	if err := m.market.CreateOrder(ctx, key, fee, at); err != nil {
		return 0, xerrors.Errorf("creating order for %s: %w", key, err)
	}

	// A send is also a pruning opportunity; failing to prune never fails
	// an accepted send.
	pruned, err := olane.prune(ctx, m.cfg.MaxMessagesToPruneAtOnce, m.market.IsSettled)
	if err != nil {
		log.Warnw("failed to prune lane", "lane", lane, "error", err)
	}

	mctx, _ := tag.New(ctx, tag.Upsert(metrics.Lane, lane.String()))
	stats.Record(mctx, metrics.MessageAccepted.M(1))
	if pruned > 0 {
		stats.Record(mctx, metrics.MessagePruned.M(int64(pruned)))
	}

	journal.MaybeAddEntry(m.journal, m.evtTypes[evtTypeMessageAccepted], func() interface{} {
		return MessageAcceptedEvt{Lane: lane.String(), Nonce: nonce, Fee: fee, At: at}
	})

	log.Infow("message accepted", "lane", lane, "nonce", nonce, "fee", fee, "size", len(encoded), "pruned", pruned)
	return nonce, nil
}
