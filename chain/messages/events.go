package messages

import (
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

// Journal event payloads.

type MessageAcceptedEvt struct {
	Lane  string
	Nonce types.MessageNonce
	Fee   types.BigInt
	At    abi.ChainEpoch
}

type BatchDeliveredEvt struct {
	DeliveryID string
	Lane       string
	Relayer    string
	Messages   int
	Dispatched int
	At         abi.ChainEpoch
}

type LaneAdvancedEvt struct {
	Lane           string
	Begin          types.MessageNonce
	End            types.MessageNonce
	ConfirmRelayer string
	Pruned         uint64
	Settled        bool
}
