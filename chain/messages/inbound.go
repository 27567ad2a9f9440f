package messages

import (
	"github.com/filecoin-project/go-address"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

// receiveStateUpdate applies a proved outbound lane state of the bridged
// chain to our inbound lane. Once the bridged chain has consumed
// confirmations up to some nonce, the relayers rewarded over there no
// longer need to be carried here. Returns the new confirmed nonce, or
// false when the update teaches the lane nothing.
func receiveStateUpdate(data *types.InboundLaneData, outbound *types.OutboundLaneData) (types.MessageNonce, bool) {
	confirmed := outbound.LatestReceivedNonce

	// A state claiming confirmations ahead of what this lane delivered
	// describes some other history; ignore it.
	if confirmed > data.LastDeliveredNonce() {
		return 0, false
	}
	if confirmed <= data.LastConfirmedNonce {
		return 0, false
	}

	data.LastConfirmedNonce = confirmed

	relayers := data.Relayers
	for len(relayers) > 0 && relayers[0].Messages.End <= confirmed {
		relayers = relayers[1:]
	}
	if len(relayers) > 0 && relayers[0].Messages.Begin <= confirmed {
		relayers[0].Messages.Begin = confirmed + 1
	}
	data.Relayers = relayers

	return confirmed, true
}

// recordDelivery adds one delivered nonce to the unrewarded relayers set,
// extending the last entry when the same relayer delivered it.
func recordDelivery(data *types.InboundLaneData, relayer address.Address, nonce types.MessageNonce) {
	if n := len(data.Relayers); n > 0 && data.Relayers[n-1].Relayer == relayer {
		data.Relayers[n-1].Messages.Append(nonce)
		return
	}
	data.Relayers = append(data.Relayers, types.UnrewardedRelayer{
		Relayer:  relayer,
		Messages: types.NewDeliveredMessages(nonce),
	})
}
