package types

import (
	"github.com/filecoin-project/go-address"
)

// OutboundLaneData is the source chain's view of one lane.
//
// Invariants: OldestUnprunedNonce-1 <= LatestReceivedNonce <=
// LatestGeneratedNonce. Nonces below OldestUnprunedNonce have been
// confirmed, settled and pruned from storage.
type OutboundLaneData struct {
	// OldestUnprunedNonce is the nonce of the oldest message still kept
	// in outbound storage.
	OldestUnprunedNonce MessageNonce
	// LatestReceivedNonce is the highest nonce the target chain has
	// confirmed delivering.
	LatestReceivedNonce MessageNonce
	// LatestGeneratedNonce is the highest nonce accepted into the lane.
	LatestGeneratedNonce MessageNonce
}

// NewOutboundLaneData returns the state of a lane that has never carried
// a message.
func NewOutboundLaneData() OutboundLaneData {
	return OutboundLaneData{
		OldestUnprunedNonce:  1,
		LatestReceivedNonce:  0,
		LatestGeneratedNonce: 0,
	}
}

// QueuedMessages counts messages sent but not yet confirmed delivered.
func (d *OutboundLaneData) QueuedMessages() uint64 {
	return uint64(d.LatestGeneratedNonce - d.LatestReceivedNonce)
}

// DeliveredMessages is an inclusive nonce range delivered by one relayer.
// A range with End < Begin is empty.
type DeliveredMessages struct {
	Begin MessageNonce
	End   MessageNonce
}

func NewDeliveredMessages(nonce MessageNonce) DeliveredMessages {
	return DeliveredMessages{Begin: nonce, End: nonce}
}

func (d *DeliveredMessages) Contains(nonce MessageNonce) bool {
	return d.Begin <= nonce && nonce <= d.End
}

func (d *DeliveredMessages) Len() uint64 {
	if d.End < d.Begin {
		return 0
	}
	return uint64(d.End-d.Begin) + 1
}

// Append extends the range by one nonce. Caller ensures contiguity.
func (d *DeliveredMessages) Append(nonce MessageNonce) {
	d.End = nonce
}

// UnrewardedRelayer records a relayer awaiting source chain rewards for a
// contiguous range of deliveries.
type UnrewardedRelayer struct {
	Relayer  address.Address
	Messages DeliveredMessages
}

// InboundLaneData is the target chain's view of one lane.
//
// Relayers holds per-relayer delivered ranges in delivery order; adjacent
// entries by the same relayer are merged. Entries whose messages have been
// confirmed back to the source chain (and so rewarded there) are pruned.
type InboundLaneData struct {
	Relayers []UnrewardedRelayer
	// LastConfirmedNonce is the highest nonce the source chain is known
	// to have seen confirmed.
	LastConfirmedNonce MessageNonce
}

// LastDeliveredNonce is the highest nonce delivered to this lane.
func (d *InboundLaneData) LastDeliveredNonce() MessageNonce {
	if len(d.Relayers) == 0 {
		return d.LastConfirmedNonce
	}
	return d.Relayers[len(d.Relayers)-1].Messages.End
}

// TotalUnconfirmedMessages counts deliveries not yet confirmed back to the
// source chain.
func (d *InboundLaneData) TotalUnconfirmedMessages() uint64 {
	if len(d.Relayers) == 0 {
		return 0
	}
	first := d.Relayers[0].Messages.Begin
	last := d.Relayers[len(d.Relayers)-1].Messages.End
	if last < first {
		return 0
	}
	return uint64(last-first) + 1
}

// RelayersState summarizes the unrewarded relayers set for confirmation
// transaction planning.
func (d *InboundLaneData) RelayersState() UnrewardedRelayersState {
	s := UnrewardedRelayersState{
		UnrewardedRelayerEntries: uint64(len(d.Relayers)),
		TotalMessages:            d.TotalUnconfirmedMessages(),
	}
	if len(d.Relayers) > 0 {
		s.MessagesInOldestEntry = d.Relayers[0].Messages.Len()
	}
	return s
}

// UnrewardedRelayersState is the view relayers query before building a
// confirmation transaction.
type UnrewardedRelayersState struct {
	UnrewardedRelayerEntries uint64
	MessagesInOldestEntry    uint64
	TotalMessages            uint64
}
