package feemarket

import (
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

// Journal event payloads.

type RelayerEnrolledEvt struct {
	Relayer    string
	Collateral types.BigInt
	Quote      types.BigInt
	Seq        uint64
}

type OrderCreatedEvt struct {
	Lane             string
	Nonce            types.MessageNonce
	Fee              types.BigInt
	AssignedRelayers []string
	CreatedAt        abi.ChainEpoch
	Deadline         abi.ChainEpoch
}

type OrderRewardEvt struct {
	Lane  string
	Nonce types.MessageNonce

	// Slot the delivery settled in, -1 when it came after every deadline.
	Slot int

	SlotRelayer    *Payout
	Treasury       *Payout
	MessageRelayer *Payout
	ConfirmRelayer *Payout
}

type RelayerSlashedEvt struct {
	Lane        string
	Nonce       types.MessageNonce
	Relayer     string
	Delay       abi.ChainEpoch
	Amount      types.BigInt
	Transferred bool
}
