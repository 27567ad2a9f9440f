package feemarket

import (
	"context"
	"errors"

	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-state-types/abi"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
	"github.com/darwinia-network/darwinia-bridge-substrate/journal"
	"github.com/darwinia-network/darwinia-bridge-substrate/metrics"
)

// ErrMarketNotReady is returned when an order cannot be created because
// too few usable relayers are enrolled to back it.
var ErrMarketNotReady = errors.New("fee market has too few usable relayers")

// CreateOrder opens the economic record for an accepted message: the
// current assigned relayers are snapshotted into consecutive priority
// slots and each has one more order counted against its collateral.
func (m *Market) CreateOrder(ctx context.Context, key types.MessageKey, fee types.BigInt, at abi.ChainEpoch) error {
	m.lk.Lock()
	defer m.lk.Unlock()

	has, err := m.store.HasOrder(key)
	if err != nil {
		return err
	}
	if has {
		return xerrors.Errorf("order %s already exists", key)
	}

	assigned, ok, err := m.assignedRelayers()
	if err != nil {
		return err
	}
	if !ok {
		return xerrors.Errorf("creating order %s: %w", key, ErrMarketNotReady)
	}

	order := &Order{
		Lane:                 key.Lane,
		Nonce:                key.Nonce,
		Fee:                  fee,
		CollateralPerRelayer: m.cfg.CollateralPerOrder,
		AssignedRelayers:     make([]AssignedRelayer, 0, len(assigned)),
		CreatedAt:            at,
	}
	for i, r := range assigned {
		order.AssignedRelayers = append(order.AssignedRelayers, AssignedRelayer{
			Relayer:   r.Address,
			Fee:       r.Fee,
			SlotStart: at + abi.ChainEpoch(i)*m.cfg.SlotBlocks,
			SlotEnd:   at + abi.ChainEpoch(i+1)*m.cfg.SlotBlocks,
		})
	}

	if err := m.store.orders.Begin(key, order); err != nil {
		return err
	}
	for _, r := range assigned {
		if err := m.store.relayers.Get(r.Address).Mutate(func(r *Relayer) error {
			r.Occupied++
			return nil
		}); err != nil {
			return err
		}
	}

	mctx, _ := tag.New(ctx, tag.Upsert(metrics.Lane, key.Lane.String()))
	stats.Record(mctx, metrics.OrderCreated.M(1))

	journal.MaybeAddEntry(m.journal, m.evtTypes[evtTypeOrderCreated], func() interface{} {
		evt := OrderCreatedEvt{
			Lane:      key.Lane.String(),
			Nonce:     key.Nonce,
			Fee:       fee,
			CreatedAt: at,
			Deadline:  order.Deadline(),
		}
		for _, ar := range order.AssignedRelayers {
			evt.AssignedRelayers = append(evt.AssignedRelayers, ar.Relayer.String())
		}
		return evt
	})

	log.Debugw("order created", "order", key, "fee", fee, "deadline", order.Deadline())
	return nil
}

// Order returns the open order for a message, ErrOrderNotFound once it was
// settled or never existed.
func (m *Market) Order(ctx context.Context, key types.MessageKey) (*Order, error) {
	m.lk.Lock()
	defer m.lk.Unlock()

	return m.store.Order(key)
}

// OnMessagesConfirmed stamps the confirmation time on every open order in
// a confirmed range. Already stamped orders keep their original time, so a
// replayed confirmation cannot shift a slot decision.
func (m *Market) OnMessagesConfirmed(ctx context.Context, lane types.LaneID, confirmed types.DeliveredMessages, at abi.ChainEpoch) error {
	m.lk.Lock()
	defer m.lk.Unlock()

	return m.onMessagesConfirmed(ctx, lane, confirmed, at)
}

func (m *Market) onMessagesConfirmed(ctx context.Context, lane types.LaneID, confirmed types.DeliveredMessages, at abi.ChainEpoch) error {
	for nonce := confirmed.Begin; nonce <= confirmed.End; nonce++ {
		key := types.MessageKey{Lane: lane, Nonce: nonce}
		has, err := m.store.HasOrder(key)
		if err != nil {
			return err
		}
		if !has {
			continue
		}
		if err := m.store.orders.Get(key).Mutate(func(o *Order) error {
			if o.ConfirmedAt == 0 {
				o.ConfirmedAt = at
			}
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

// IsSettled reports whether a message's order has been consumed. Messages
// whose settlement failed keep their order open and stay unprunable until
// a later confirmation settles them.
func (m *Market) IsSettled(ctx context.Context, key types.MessageKey) (bool, error) {
	m.lk.Lock()
	defer m.lk.Unlock()

	has, err := m.store.HasOrder(key)
	if err != nil {
		return false, err
	}
	return !has, nil
}
