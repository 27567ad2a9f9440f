package feemarket

import (
	"sort"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

// Relayer is one enrolled relayer's market record. The collateral itself
// stays on the relayer's account; Collateral tracks how much of it the
// market considers locked, and shrinks as slashes actually move funds.
type Relayer struct {
	Address address.Address

	// Collateral is the recorded locked collateral backing this relayer's
	// orders.
	Collateral types.BigInt

	// Fee is the relayer's quoted delivery fee.
	Fee types.BigInt

	// Seq is the enrollment sequence number; earlier enrollment wins quote
	// ties when orders are assigned.
	Seq uint64

	// Occupied counts live orders this relayer is assigned to.
	Occupied uint64
}

// OrderCapacity is how many orders the recorded collateral can back at
// once.
func (r *Relayer) OrderCapacity(collateralPerOrder types.BigInt) uint64 {
	if collateralPerOrder.IsZero() || r.Collateral.LessThan(collateralPerOrder) {
		return 0
	}
	return types.BigDiv(r.Collateral, collateralPerOrder).Uint64()
}

// usable reports whether the relayer can back one more order.
func (r *Relayer) usable(collateralPerOrder types.BigInt) bool {
	return r.Occupied < r.OrderCapacity(collateralPerOrder)
}

// AssignedRelayer is one slot of an order's priority schedule: the relayer
// expected to deliver the message between SlotStart (exclusive) and
// SlotEnd (inclusive), its quote at assignment time, and the collateral it
// stands to lose.
type AssignedRelayer struct {
	Relayer   address.Address
	Fee       types.BigInt
	SlotStart abi.ChainEpoch
	SlotEnd   abi.ChainEpoch
}

// Order is the economic record of one accepted message. It is created when
// the message enters the outbound lane and consumed exactly once when its
// delivery is confirmed.
type Order struct {
	Lane  types.LaneID
	Nonce types.MessageNonce

	// Fee is what the submitter paid into the relayer fund.
	Fee types.BigInt

	// CollateralPerRelayer is the collateral each assigned relayer had
	// locked for this order when it was created.
	CollateralPerRelayer types.BigInt

	// AssignedRelayers are the priority slots, cheapest quote first.
	AssignedRelayers []AssignedRelayer

	CreatedAt abi.ChainEpoch

	// ConfirmedAt is stamped when the delivery confirmation arrives; zero
	// until then.
	ConfirmedAt abi.ChainEpoch
}

func (o *Order) Key() types.MessageKey {
	return types.MessageKey{Lane: o.Lane, Nonce: o.Nonce}
}

// Deadline is the end of the last priority slot; deliveries confirmed
// after it are out of deadline.
func (o *Order) Deadline() abi.ChainEpoch {
	if len(o.AssignedRelayers) == 0 {
		return o.CreatedAt
	}
	return o.AssignedRelayers[len(o.AssignedRelayers)-1].SlotEnd
}

// DeliveryInfo locates the slot a confirmation time falls in. ok is false
// when every deadline had passed.
func (o *Order) DeliveryInfo(confirmedAt abi.ChainEpoch) (slot int, assigned AssignedRelayer, ok bool) {
	for i, r := range o.AssignedRelayers {
		if confirmedAt <= r.SlotEnd {
			return i, r, true
		}
	}
	return 0, AssignedRelayer{}, false
}

// DeliveryDelay is how many blocks past the final deadline the delivery
// was confirmed, zero for in-time deliveries.
func (o *Order) DeliveryDelay(confirmedAt abi.ChainEpoch) abi.ChainEpoch {
	if d := o.Deadline(); confirmedAt > d {
		return confirmedAt - d
	}
	return 0
}

// Payout is one recipient's share of a settled order or batch.
type Payout struct {
	To     address.Address
	Amount types.BigInt
}

// RewardItem is the immutable distribution decision for one settled order.
// Shares that a settlement mode does not produce stay nil: late deliveries
// have no slot or treasury share.
type RewardItem struct {
	SlotRelayer    *Payout
	Treasury       *Payout
	MessageRelayer *Payout
	ConfirmRelayer *Payout
}

// Total sums the item's shares.
func (ri *RewardItem) Total() types.BigInt {
	total := types.NewInt(0)
	for _, p := range []*Payout{ri.SlotRelayer, ri.Treasury, ri.MessageRelayer, ri.ConfirmRelayer} {
		if p != nil {
			total = types.BigAdd(total, p.Amount)
		}
	}
	return total
}

// RewardsBook folds the reward items of one settlement batch into running
// per-recipient sums, so the batch executes one transfer per recipient
// rather than one per message.
type RewardsBook struct {
	sums map[address.Address]types.BigInt
}

func NewRewardsBook() *RewardsBook {
	return &RewardsBook{sums: make(map[address.Address]types.BigInt)}
}

func (b *RewardsBook) add(to address.Address, amount types.BigInt) {
	if cur, ok := b.sums[to]; ok {
		b.sums[to] = types.BigAdd(cur, amount)
		return
	}
	b.sums[to] = amount
}

// Add folds one reward item into the book.
func (b *RewardsBook) Add(item RewardItem) {
	for _, p := range []*Payout{item.SlotRelayer, item.Treasury, item.MessageRelayer, item.ConfirmRelayer} {
		if p != nil {
			b.add(p.To, p.Amount)
		}
	}
}

// Transfers returns the folded per-recipient payouts in a stable order.
func (b *RewardsBook) Transfers() []Payout {
	out := make([]Payout, 0, len(b.sums))
	for to, amount := range b.sums {
		out = append(out, Payout{To: to, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].To.String() < out[j].To.String()
	})
	return out
}

// Total sums every payout in the book.
func (b *RewardsBook) Total() types.BigInt {
	total := types.NewInt(0)
	for _, amount := range b.sums {
		total = types.BigAdd(total, amount)
	}
	return total
}
