package messages

import (
	"context"
	"errors"

	"golang.org/x/xerrors"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

// ErrOutOfOrderNonce is returned when a delivery confirmation claims nonces
// the lane never generated.
var ErrOutOfOrderNonce = errors.New("confirmed nonce is ahead of the latest generated nonce")

// outboundLane wraps one lane's outbound bookkeeping. Methods load the lane
// state, mutate it and persist it; the Manager's lock keeps that atomic.
type outboundLane struct {
	store *Store
	id    types.LaneID
}

// send assigns the next nonce to the message and stores it.
func (l *outboundLane) send(ctx context.Context, data *types.MessageData) (types.MessageNonce, error) {
	ld, err := l.store.OutboundLane(ctx, l.id)
	if err != nil {
		return 0, err
	}

	nonce := ld.LatestGeneratedNonce + 1
	ld.LatestGeneratedNonce = nonce

	if err := l.store.PutMessage(ctx, types.MessageKey{Lane: l.id, Nonce: nonce}, data); err != nil {
		return 0, err
	}
	if err := l.store.PutOutboundLane(ctx, l.id, ld); err != nil {
		return 0, err
	}
	return nonce, nil
}

// confirm advances the latest received nonce to latestDelivered and returns
// the newly confirmed range. A stale or replayed confirmation returns nil;
// one that is ahead of what was ever generated is an error.
func (l *outboundLane) confirm(ctx context.Context, latestDelivered types.MessageNonce) (*types.DeliveredMessages, error) {
	ld, err := l.store.OutboundLane(ctx, l.id)
	if err != nil {
		return nil, err
	}

	if latestDelivered <= ld.LatestReceivedNonce {
		return nil, nil
	}
	if latestDelivered > ld.LatestGeneratedNonce {
		return nil, xerrors.Errorf("confirming %d on lane %s with only %d generated: %w",
			latestDelivered, l.id, ld.LatestGeneratedNonce, ErrOutOfOrderNonce)
	}

	confirmed := &types.DeliveredMessages{Begin: ld.LatestReceivedNonce + 1, End: latestDelivered}
	ld.LatestReceivedNonce = latestDelivered

	if err := l.store.PutOutboundLane(ctx, l.id, ld); err != nil {
		return nil, err
	}
	return confirmed, nil
}

// prune deletes confirmed messages from outbound storage, oldest first. A
// message only goes once its delivery order is settled, and pruning stops
// at the first unsettled nonce so the prefix stays contiguous.
func (l *outboundLane) prune(ctx context.Context, max uint64, settled func(context.Context, types.MessageKey) (bool, error)) (uint64, error) {
	ld, err := l.store.OutboundLane(ctx, l.id)
	if err != nil {
		return 0, err
	}

	var pruned uint64
	for pruned < max && ld.OldestUnprunedNonce <= ld.LatestReceivedNonce {
		key := types.MessageKey{Lane: l.id, Nonce: ld.OldestUnprunedNonce}

		ok, err := settled(ctx, key)
		if err != nil {
			return pruned, err
		}
		if !ok {
			break
		}

		if err := l.store.DeleteMessage(ctx, key); err != nil {
			return pruned, err
		}
		pruned++
		ld.OldestUnprunedNonce++
	}

	if pruned > 0 {
		if err := l.store.PutOutboundLane(ctx, l.id, ld); err != nil {
			return pruned, err
		}
	}
	return pruned, nil
}
