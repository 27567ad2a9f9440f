package feemarket

import (
	"context"
	"errors"

	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"go.uber.org/multierr"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
	"github.com/darwinia-network/darwinia-bridge-substrate/journal"
	"github.com/darwinia-network/darwinia-bridge-substrate/metrics"
)

// SettleRewards consumes the orders of a newly confirmed nonce range and
// distributes fees and slashes. Per nonce: decide the slot the delivery
// landed in, slash the assigned relayers that let it slip, and fold the
// resulting reward item into a per-recipient book. The folded payouts are
// transferred once at the end, out of the relayer fund. Transfer failures
// are logged and aggregated, never rolled back: nonce state has already
// advanced and must not depend on payment success.
func (m *Market) SettleRewards(ctx context.Context, lane types.LaneID, confirmed types.DeliveredMessages, relayers []types.UnrewardedRelayer, confirmRelayer address.Address, at abi.ChainEpoch) error {
	m.lk.Lock()
	defer m.lk.Unlock()

	if err := m.onMessagesConfirmed(ctx, lane, confirmed, at); err != nil {
		return err
	}

	book := NewRewardsBook()
	settleErr := m.settleRange(ctx, lane, confirmed, relayers, confirmRelayer, at, book)

	// Orders already consumed must get their payouts attempted even when
	// the range was cut short.
	payErr := m.payout(ctx, lane, book)

	return multierr.Append(settleErr, payErr)
}

func (m *Market) settleRange(ctx context.Context, lane types.LaneID, confirmed types.DeliveredMessages, relayers []types.UnrewardedRelayer, confirmRelayer address.Address, at abi.ChainEpoch, book *RewardsBook) error {
	mctx, _ := tag.New(ctx, tag.Upsert(metrics.Lane, lane.String()))

	for _, entry := range relayers {
		// Unrewarded entries may reach beyond the newly confirmed range;
		// only the overlap settles now.
		begin, end := entry.Messages.Begin, entry.Messages.End
		if begin < confirmed.Begin {
			begin = confirmed.Begin
		}
		if end > confirmed.End {
			end = confirmed.End
		}

		for nonce := begin; nonce <= end; nonce++ {
			key := types.MessageKey{Lane: lane, Nonce: nonce}

			order, err := m.store.Order(key)
			if errors.Is(err, ErrOrderNotFound) {
				// Settled by an earlier pass, nothing left to pay.
				log.Debugw("no open order for confirmed message", "order", key)
				continue
			}
			if err != nil {
				return err
			}

			confirmedAt := order.ConfirmedAt
			if confirmedAt == 0 {
				confirmedAt = at
			}

			item, slot, err := m.settleOrder(ctx, order, confirmedAt, entry.Relayer, confirmRelayer)
			if err != nil {
				return xerrors.Errorf("settling order %s: %w", key, err)
			}

			if err := m.consumeOrder(order); err != nil {
				return xerrors.Errorf("consuming order %s: %w", key, err)
			}
			book.Add(item)

			stats.Record(mctx, metrics.OrderSettled.M(1))
			if slot >= 0 {
				stats.Record(mctx, metrics.OrderSettledSlot.M(int64(slot)))
			}
			journal.MaybeAddEntry(m.journal, m.evtTypes[evtTypeOrderReward], func() interface{} {
				return OrderRewardEvt{
					Lane:           lane.String(),
					Nonce:          nonce,
					Slot:           slot,
					SlotRelayer:    item.SlotRelayer,
					Treasury:       item.Treasury,
					MessageRelayer: item.MessageRelayer,
					ConfirmRelayer: item.ConfirmRelayer,
				}
			})
		}
	}
	return nil
}

// settleOrder decides one order's distribution, executing whatever slashes
// it requires. slot is -1 when the delivery came after every deadline.
func (m *Market) settleOrder(ctx context.Context, order *Order, confirmedAt abi.ChainEpoch, messageRelayer, confirmRelayer address.Address) (RewardItem, int, error) {
	pool := order.Fee

	slot, assigned, inTime := order.DeliveryInfo(confirmedAt)
	if !inTime {
		// Every deadline passed: all assignees are slashed, the whole pool
		// goes to the relayers who actually moved the message.
		delay := order.DeliveryDelay(confirmedAt)
		delayPenalty := m.slasher.SlashAmount(order.CollateralPerRelayer, delay)

		for _, a := range order.AssignedRelayers {
			r, err := m.store.Relayer(a.Relayer)
			if errors.Is(err, ErrNotEnrolled) {
				log.Warnw("assigned relayer no longer enrolled, skipping slash", "order", order.Key(), "relayer", a.Relayer)
				continue
			}
			if err != nil {
				return RewardItem{}, -1, err
			}

			amount := types.BigAdd(delayPenalty, m.cfg.AssignedRelayerSlashRatio.Mul(r.Collateral))
			if !m.cfg.SlashProtect.IsZero() {
				amount = types.BigMin(amount, m.cfg.SlashProtect)
			}

			moved, err := m.slashRelayer(ctx, order, r, amount, delay)
			if err != nil {
				return RewardItem{}, -1, err
			}
			pool = types.BigAdd(pool, moved)
		}

		return m.rewardsAfterDeadline(messageRelayer, confirmRelayer, pool), -1, nil
	}

	// Slots before the delivering one pay for the delay their holders
	// caused.
	for _, a := range order.AssignedRelayers[:slot] {
		r, err := m.store.Relayer(a.Relayer)
		if errors.Is(err, ErrNotEnrolled) {
			log.Warnw("assigned relayer no longer enrolled, skipping slash", "order", order.Key(), "relayer", a.Relayer)
			continue
		}
		if err != nil {
			return RewardItem{}, -1, err
		}

		moved, err := m.slashRelayer(ctx, order, r, m.cfg.AssignedRelayerSlashRatio.Mul(r.Collateral), 0)
		if err != nil {
			return RewardItem{}, -1, err
		}
		pool = types.BigAdd(pool, moved)
	}

	baseFee := m.cfg.BaseFeeRatio.Mul(order.Fee)
	return m.rewardsBeforeDeadline(assigned.Relayer, messageRelayer, confirmRelayer, pool, baseFee), slot, nil
}

// rewardsBeforeDeadline splits an in-time order's pool: everything beyond
// the base fee is treasury surplus, the slot relayer takes its ratio of
// the base fee and the relayers who moved the message split the rest. The
// confirm share is the exact remainder so the item always sums to the
// pool.
func (m *Market) rewardsBeforeDeadline(slotRelayer, messageRelayer, confirmRelayer address.Address, pool, baseFee types.BigInt) RewardItem {
	treasury := types.BigSub(pool, baseFee)

	slotReward := m.cfg.AssignedRelayersRewardRatio.Mul(baseFee)
	rest := types.BigSub(baseFee, slotReward)
	messageReward := m.cfg.MessageRelayersRewardRatio.Mul(rest)
	confirmReward := types.BigSub(rest, messageReward)

	return RewardItem{
		SlotRelayer:    &Payout{To: slotRelayer, Amount: slotReward},
		Treasury:       &Payout{To: m.treasury, Amount: treasury},
		MessageRelayer: &Payout{To: messageRelayer, Amount: messageReward},
		ConfirmRelayer: &Payout{To: confirmRelayer, Amount: confirmReward},
	}
}

// rewardsAfterDeadline splits a late order's pool between the message and
// confirm relayers only.
func (m *Market) rewardsAfterDeadline(messageRelayer, confirmRelayer address.Address, pool types.BigInt) RewardItem {
	messageReward := m.cfg.MessageRelayersRewardRatio.Mul(pool)
	confirmReward := types.BigSub(pool, messageReward)

	return RewardItem{
		MessageRelayer: &Payout{To: messageRelayer, Amount: messageReward},
		ConfirmRelayer: &Payout{To: confirmRelayer, Amount: confirmReward},
	}
}

// slashRelayer charges one assigned relayer, clamped to its recorded
// collateral. A failed transfer moves nothing and leaves the recorded
// collateral untouched; the order then simply has less to distribute. The
// returned amount is what actually reached the fund.
func (m *Market) slashRelayer(ctx context.Context, order *Order, r *Relayer, amount types.BigInt, delay abi.ChainEpoch) (types.BigInt, error) {
	amount = types.BigMin(amount, r.Collateral)
	if amount.IsZero() {
		return types.NewInt(0), nil
	}

	moved := types.NewInt(0)
	transferErr := m.currency.Transfer(ctx, r.Address, m.fund, amount)
	if transferErr == nil {
		if err := m.store.relayers.Get(r.Address).Mutate(func(rec *Relayer) error {
			rec.Collateral = types.BigSub(rec.Collateral, amount)
			return nil
		}); err != nil {
			return types.EmptyInt, err
		}
		moved = amount
	} else {
		log.Errorw("slash transfer failed", "order", order.Key(), "relayer", r.Address,
			"amount", amount, "error", transferErr)
	}

	failure := "missed_slot"
	if delay > 0 {
		failure = "out_of_deadline"
	}
	mctx, _ := tag.New(ctx,
		tag.Upsert(metrics.Lane, order.Lane.String()),
		tag.Upsert(metrics.FailureType, failure),
	)
	stats.Record(mctx, metrics.RelayerSlashed.M(1))

	journal.MaybeAddEntry(m.journal, m.evtTypes[evtTypeRelayerSlashed], func() interface{} {
		return RelayerSlashedEvt{
			Lane:        order.Lane.String(),
			Nonce:       order.Nonce,
			Relayer:     r.Address.String(),
			Delay:       delay,
			Amount:      amount,
			Transferred: transferErr == nil,
		}
	})

	log.Infow("assigned relayer slashed", "order", order.Key(), "relayer", r.Address,
		"amount", amount, "delay", delay, "transferred", transferErr == nil)
	return moved, nil
}

// consumeOrder deletes a settled order and releases its assignees.
func (m *Market) consumeOrder(order *Order) error {
	if err := m.store.orders.Get(order.Key()).End(); err != nil {
		return err
	}

	for _, a := range order.AssignedRelayers {
		has, err := m.store.relayers.Has(a.Relayer)
		if err != nil {
			return err
		}
		if !has {
			continue
		}
		if err := m.store.relayers.Get(a.Relayer).Mutate(func(r *Relayer) error {
			if r.Occupied > 0 {
				r.Occupied--
			}
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

// payout executes the folded transfers of a settlement batch out of the
// relayer fund.
func (m *Market) payout(ctx context.Context, lane types.LaneID, book *RewardsBook) error {
	mctx, _ := tag.New(ctx, tag.Upsert(metrics.Lane, lane.String()))

	var merr error
	for _, p := range book.Transfers() {
		if p.Amount.IsZero() {
			continue
		}
		if err := m.currency.Transfer(ctx, m.fund, p.To, p.Amount); err != nil {
			log.Errorw("reward transfer failed", "to", p.To, "amount", p.Amount, "error", err)
			merr = multierr.Append(merr, xerrors.Errorf("rewarding %s with %s: %w", p.To, p.Amount, err))
			continue
		}
		stats.Record(mctx, metrics.RewardTransferred.M(1))
		log.Debugw("reward transferred", "to", p.To, "amount", p.Amount)
	}
	return merr
}
