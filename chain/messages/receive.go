package messages

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/dispatch"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
	"github.com/darwinia-network/darwinia-bridge-substrate/journal"
	"github.com/darwinia-network/darwinia-bridge-substrate/metrics"
)

// ReceivalStatus says what became of one message in a delivery batch.
type ReceivalStatus string

const (
	// ReceivalDispatched: the message consumed its nonce and went through
	// dispatch; the dispatch event carries the outcome.
	ReceivalDispatched ReceivalStatus = "dispatched"

	// ReceivalInvalidNonce: the nonce is not the next expected one. Covers
	// both replays of already delivered messages and gaps.
	ReceivalInvalidNonce ReceivalStatus = "invalid_nonce"

	// ReceivalTooManyUnrewardedRelayers: the unrewarded relayers set is
	// full; deliveries resume once confirmations drain it.
	ReceivalTooManyUnrewardedRelayers ReceivalStatus = "too_many_unrewarded_relayers"

	// ReceivalTooManyUnconfirmedMessages: the lane carries its maximum of
	// unconfirmed messages.
	ReceivalTooManyUnconfirmedMessages ReceivalStatus = "too_many_unconfirmed_messages"
)

// MessageReceival is the per-message outcome of a delivery batch. Dispatch
// is set only for ReceivalDispatched.
type MessageReceival struct {
	Nonce    types.MessageNonce
	Status   ReceivalStatus
	Dispatch *dispatch.Event
}

// DeliveryResult reports how a proved batch was applied.
type DeliveryResult struct {
	DeliveryID uuid.UUID
	Lane       types.LaneID
	Receivals  []MessageReceival
}

// Dispatched counts the messages of the batch that reached dispatch.
func (r *DeliveryResult) Dispatched() int {
	var n int
	for _, rc := range r.Receivals {
		if rc.Status == ReceivalDispatched {
			n++
		}
	}
	return n
}

// ReceiveMessagesProof applies a batch of bridged chain messages proved
// against a finalized header. Verification is all-or-nothing: a defective
// proof changes no state. Verified messages are then processed strictly in
// nonce order; messages refused by the lane are skipped without consuming
// a nonce, and a dispatch failure is the sender's problem, never the
// lane's. Replays are idempotent: an already delivered nonce is never
// dispatched again.
func (m *Manager) ReceiveMessagesProof(ctx context.Context, relayer address.Address, proof *types.MessagesProof, count uint64, at abi.ChainEpoch) (*DeliveryResult, error) {
	m.lk.Lock()
	defer m.lk.Unlock()

	lane := proof.Lane
	mctx, _ := tag.New(ctx, tag.Upsert(metrics.Lane, lane.String()))

	stop := metrics.Timer(mctx, metrics.MessageVerificationDurationMilliseconds)
	proved, err := VerifyMessagesProof(ctx, m.anchor, m.cfg.BridgedMessagesPallet, proof, count)
	stop()
	if err != nil {
		m.rejectProof(ctx, lane, err)
		return nil, err
	}
	stats.Record(mctx, metrics.MessageProofSizeBytes.M(int64(proof.Size())))

	data, err := m.store.InboundLane(ctx, lane)
	if err != nil {
		return nil, err
	}

	// The outbound lane state of the bridged chain rides along on message
	// proofs and lets us drop relayer entries it already rewarded.
	if proved.LaneState != nil {
		if confirmed, ok := receiveStateUpdate(data, proved.LaneState); ok {
			log.Debugw("inbound lane state updated", "lane", lane, "confirmed", confirmed)
		}
	}

	res := &DeliveryResult{
		DeliveryID: uuid.New(),
		Lane:       lane,
		Receivals:  make([]MessageReceival, 0, len(proved.Messages)),
	}

	for i := range proved.Messages {
		msg := &proved.Messages[i]
		nonce := msg.Key.Nonce

		if nonce != data.LastDeliveredNonce()+1 {
			res.Receivals = append(res.Receivals, MessageReceival{Nonce: nonce, Status: ReceivalInvalidNonce})
			continue
		}
		if uint64(len(data.Relayers)) >= m.cfg.MaxUnrewardedRelayerEntries {
			res.Receivals = append(res.Receivals, MessageReceival{Nonce: nonce, Status: ReceivalTooManyUnrewardedRelayers})
			continue
		}
		if uint64(data.LastDeliveredNonce()-data.LastConfirmedNonce) >= m.cfg.MaxUnconfirmedMessages {
			res.Receivals = append(res.Receivals, MessageReceival{Nonce: nonce, Status: ReceivalTooManyUnconfirmedMessages})
			continue
		}

		// A payload that does not decode, or that the dispatch layer
		// refuses up front, still consumes its nonce: it is dispatched as
		// pre-rejected so the lane can make progress past it.
		payload, perr := types.DecodeMessagePayload(msg.Data.Payload)
		if perr != nil {
			log.Debugw("undecodable payload", "lane", lane, "nonce", nonce, "error", perr)
			payload = nil
		} else if err := m.disp.PreDispatch(relayer, payload); err != nil {
			log.Debugw("message refused before dispatch", "lane", lane, "nonce", nonce, "error", err)
			payload = nil
		}

		_, evt := m.disp.Dispatch(ctx, m.cfg.BridgedChain, m.cfg.SelfChain, relayer, msg.Key, payload, m.dispatchFeePayer(relayer))
		recordDelivery(data, relayer, nonce)

		res.Receivals = append(res.Receivals, MessageReceival{Nonce: nonce, Status: ReceivalDispatched, Dispatch: &evt})
		stats.Record(mctx, metrics.MessageDelivered.M(1))
	}

	if err := m.store.PutInboundLane(ctx, lane, data); err != nil {
		return nil, xerrors.Errorf("persisting inbound state of lane %s: %w", lane, err)
	}

	stats.Record(mctx, metrics.MessageBatchSize.M(int64(len(proved.Messages))))

	journal.MaybeAddEntry(m.journal, m.evtTypes[evtTypeBatchDelivered], func() interface{} {
		return BatchDeliveredEvt{
			DeliveryID: res.DeliveryID.String(),
			Lane:       lane.String(),
			Relayer:    relayer.String(),
			Messages:   len(res.Receivals),
			Dispatched: res.Dispatched(),
			At:         at,
		}
	})

	log.Infow("delivery batch applied", "lane", lane, "id", res.DeliveryID,
		"messages", len(res.Receivals), "dispatched", res.Dispatched(),
		"proof", humanize.IBytes(proof.Size()), "relayer", relayer)
	return res, nil
}
