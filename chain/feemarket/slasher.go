package feemarket

import (
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

// Slasher prices the delay of an out-of-deadline delivery. The returned
// amount is charged on top of the flat collateral ratio and the sum is
// clamped by the configured slash protection, so implementations only
// decide how the penalty grows with lateness.
type Slasher interface {
	SlashAmount(collateralPerOrder types.BigInt, delay abi.ChainEpoch) types.BigInt
}

type linearSlasher struct {
	perBlock types.BigInt
}

// NewLinearSlasher charges a flat amount per block of delay, capped at the
// per order collateral.
func NewLinearSlasher(perBlock types.BigInt) Slasher {
	if perBlock.Nil() {
		perBlock = types.NewInt(0)
	}
	return &linearSlasher{perBlock: perBlock}
}

func (s *linearSlasher) SlashAmount(collateralPerOrder types.BigInt, delay abi.ChainEpoch) types.BigInt {
	if delay <= 0 || s.perBlock.IsZero() {
		return types.NewInt(0)
	}
	amount := types.BigMul(s.perBlock, types.NewInt(uint64(delay)))
	return types.BigMin(amount, collateralPerOrder)
}
