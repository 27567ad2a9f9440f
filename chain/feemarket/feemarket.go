// Package feemarket prices message delivery and settles the relayers who
// performed it. Relayers enroll with collateral and a quoted fee; every
// accepted message snapshots the cheapest quotes into an order with
// priority delivery slots. When deliveries are confirmed, each order is
// consumed exactly once: in-slot deliveries split the fee between the slot
// relayer, the delivery relayer, the confirmation relayer and the
// treasury, late deliveries slash the assigned relayers' collateral into
// the payable pool. Payouts are folded per recipient and transferred once
// per settled batch; a failed transfer is logged and reported, never
// fatal, because nonce state must not depend on payment success.
package feemarket

import (
	"sync"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	logging "github.com/ipfs/go-log/v2"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
	"github.com/darwinia-network/darwinia-bridge-substrate/journal"
)

var log = logging.Logger("feemarket")

// Config carries the fee market parameters of one bridge deployment.
type Config struct {
	// AssignedRelayersNumber is how many of the lowest-quoting enrolled
	// relayers back each order with their collateral. The market quotes no
	// fee, and accepts no message, while fewer are enrolled.
	AssignedRelayersNumber uint64

	// SlotBlocks is the length of each assigned relayer's priority slot.
	SlotBlocks abi.ChainEpoch

	// CollateralPerOrder is the collateral one order locks per assigned
	// relayer. Enrollment requires at least this much.
	CollateralPerOrder types.BigInt

	// BaseFeeRatio is the slice of an order's fee distributed through the
	// slot reward scheme; whatever an in-slot order's pool holds beyond it
	// is treasury surplus.
	BaseFeeRatio types.Permill

	// AssignedRelayersRewardRatio is the slot relayer's share of the base
	// fee.
	AssignedRelayersRewardRatio types.Permill

	// MessageRelayersRewardRatio is the delivery relayer's share of what
	// remains after the slot reward. The confirmation relayer receives the
	// rest, so this and ConfirmRelayersRewardRatio must sum to one.
	MessageRelayersRewardRatio types.Permill

	// ConfirmRelayersRewardRatio is the confirmation relayer's share of
	// what remains after the slot reward.
	ConfirmRelayersRewardRatio types.Permill

	// AssignedRelayerSlashRatio is the share of an assigned relayer's
	// recorded collateral slashed for a missed slot.
	AssignedRelayerSlashRatio types.Permill

	// SlashProtect caps the total slash charged to one relayer for one
	// order. The cap applies per relayer, independently of how the other
	// assignees fare. Zero disables the cap.
	SlashProtect types.BigInt
}

const (
	evtTypeRelayerEnrolled = iota
	evtTypeOrderCreated
	evtTypeOrderReward
	evtTypeRelayerSlashed
)

// Market is the fee market ledger: the relayer registry, the order book
// and the reward/slash settlement that consumes it. One mutex serializes
// every operation; all value movement goes through the injected Currency.
type Market struct {
	cfg Config

	lk sync.Mutex

	store    *Store
	currency Currency
	slasher  Slasher

	fund      address.Address
	treasury  address.Address
	rootPayer address.Address

	journal  journal.Journal
	evtTypes [4]journal.EventType
}

// Params collects what a Market is built from. Slasher may stay nil, in
// which case no delay penalty is charged beyond the collateral ratio.
// RootPayer is the account charged for messages sent under the root
// origin; without one such messages cannot carry a nonzero fee.
type Params struct {
	Config    Config
	Store     *Store
	Currency  Currency
	Slasher   Slasher
	Journal   journal.Journal
	RootPayer address.Address
}

func NewMarket(params Params) *Market {
	cfg := params.Config
	if cfg.CollateralPerOrder.Nil() {
		cfg.CollateralPerOrder = types.NewInt(0)
	}
	if cfg.SlashProtect.Nil() {
		cfg.SlashProtect = types.NewInt(0)
	}

	j := params.Journal
	if j == nil {
		j = journal.NilJournal()
	}
	slasher := params.Slasher
	if slasher == nil {
		slasher = NewLinearSlasher(types.NewInt(0))
	}

	return &Market{
		cfg:       cfg,
		store:     params.Store,
		currency:  params.Currency,
		slasher:   slasher,
		fund:      RelayerFundAccount(),
		treasury:  TreasuryAccount(),
		rootPayer: params.RootPayer,
		journal:   j,
		evtTypes: [...]journal.EventType{
			evtTypeRelayerEnrolled: j.RegisterEventType("feemarket", "relayer_enrolled"),
			evtTypeOrderCreated:    j.RegisterEventType("feemarket", "order_created"),
			evtTypeOrderReward:     j.RegisterEventType("feemarket", "order_reward"),
			evtTypeRelayerSlashed:  j.RegisterEventType("feemarket", "relayer_slashed"),
		},
	}
}
