package feemarket

import (
	"context"
	"errors"
	"sort"

	"go.opencensus.io/stats"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-address"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
	"github.com/darwinia-network/darwinia-bridge-substrate/journal"
	"github.com/darwinia-network/darwinia-bridge-substrate/metrics"
)

var (
	// ErrAlreadyEnrolled is returned when an enrolled relayer enrolls again.
	ErrAlreadyEnrolled = errors.New("relayer is already enrolled")

	// ErrCollateralTooLow is returned when collateral cannot back a single
	// order.
	ErrCollateralTooLow = errors.New("collateral is below the per order requirement")

	// ErrQuoteTooLow rejects zero fee quotes; a zero quote would let a
	// relayer win every assignment while putting nothing on the line.
	ErrQuoteTooLow = errors.New("relay fee quote must be positive")

	// ErrRelayerOccupied is returned when a relayer tries to leave, or to
	// shrink collateral below what its live orders require.
	ErrRelayerOccupied = errors.New("relayer is occupied by live orders")
)

// Enroll registers a relayer with locked collateral and a fee quote. The
// collateral stays on the relayer's account; the market records it and
// refuses enrollment when the account cannot actually cover it.
func (m *Market) Enroll(ctx context.Context, relayer address.Address, collateral, quote types.BigInt) error {
	m.lk.Lock()
	defer m.lk.Unlock()

	has, err := m.store.relayers.Has(relayer)
	if err != nil {
		return err
	}
	if has {
		return xerrors.Errorf("relayer %s: %w", relayer, ErrAlreadyEnrolled)
	}
	if collateral.LessThan(m.cfg.CollateralPerOrder) {
		return xerrors.Errorf("%s < %s: %w", collateral, m.cfg.CollateralPerOrder, ErrCollateralTooLow)
	}
	if quote.IsZero() {
		return ErrQuoteTooLow
	}

	bal, err := m.currency.Balance(ctx, relayer)
	if err != nil {
		return err
	}
	if bal.LessThan(collateral) {
		return xerrors.Errorf("relayer %s holds %s, locks %s: %w", relayer, bal, collateral, ErrInsufficientFunds)
	}

	seq, err := m.store.NextRelayerSeq(ctx)
	if err != nil {
		return err
	}
	if err := m.store.relayers.Begin(relayer, &Relayer{
		Address:    relayer,
		Collateral: collateral,
		Fee:        quote,
		Seq:        seq,
	}); err != nil {
		return err
	}

	m.recordEnrolledGauge(ctx)
	journal.MaybeAddEntry(m.journal, m.evtTypes[evtTypeRelayerEnrolled], func() interface{} {
		return RelayerEnrolledEvt{
			Relayer:    relayer.String(),
			Collateral: collateral,
			Quote:      quote,
			Seq:        seq,
		}
	})

	log.Infow("relayer enrolled", "relayer", relayer, "collateral", collateral, "quote", quote)
	return nil
}

// UpdateQuote replaces an enrolled relayer's fee quote. Takes effect for
// orders created afterwards; existing assignments keep their snapshot.
func (m *Market) UpdateQuote(ctx context.Context, relayer address.Address, quote types.BigInt) error {
	m.lk.Lock()
	defer m.lk.Unlock()

	if quote.IsZero() {
		return ErrQuoteTooLow
	}
	if _, err := m.store.Relayer(relayer); err != nil {
		return err
	}

	return m.store.relayers.Get(relayer).Mutate(func(r *Relayer) error {
		r.Fee = quote
		return nil
	})
}

// UpdateCollateral adjusts an enrolled relayer's recorded collateral.
// Growing it requires the balance to cover the new amount; shrinking it is
// refused while live orders need the capacity.
func (m *Market) UpdateCollateral(ctx context.Context, relayer address.Address, collateral types.BigInt) error {
	m.lk.Lock()
	defer m.lk.Unlock()

	r, err := m.store.Relayer(relayer)
	if err != nil {
		return err
	}
	if collateral.LessThan(m.cfg.CollateralPerOrder) {
		return xerrors.Errorf("%s < %s: %w", collateral, m.cfg.CollateralPerOrder, ErrCollateralTooLow)
	}

	if collateral.GreaterThan(r.Collateral) {
		bal, err := m.currency.Balance(ctx, relayer)
		if err != nil {
			return err
		}
		if bal.LessThan(collateral) {
			return xerrors.Errorf("relayer %s holds %s, locks %s: %w", relayer, bal, collateral, ErrInsufficientFunds)
		}
	} else {
		shrunk := *r
		shrunk.Collateral = collateral
		if r.Occupied > shrunk.OrderCapacity(m.cfg.CollateralPerOrder) {
			return xerrors.Errorf("%d live orders: %w", r.Occupied, ErrRelayerOccupied)
		}
	}

	return m.store.relayers.Get(relayer).Mutate(func(r *Relayer) error {
		r.Collateral = collateral
		return nil
	})
}

// Deregister removes a relayer from the market. Refused while the relayer
// is assigned to live orders, since leaving would strip their backing.
func (m *Market) Deregister(ctx context.Context, relayer address.Address) error {
	m.lk.Lock()
	defer m.lk.Unlock()

	r, err := m.store.Relayer(relayer)
	if err != nil {
		return err
	}
	if r.Occupied > 0 {
		return xerrors.Errorf("%d live orders: %w", r.Occupied, ErrRelayerOccupied)
	}

	if err := m.store.relayers.Get(relayer).End(); err != nil {
		return err
	}

	m.recordEnrolledGauge(ctx)
	log.Infow("relayer deregistered", "relayer", relayer)
	return nil
}

// LockedCollateral reports the recorded collateral of an enrolled relayer.
func (m *Market) LockedCollateral(ctx context.Context, relayer address.Address) (types.BigInt, error) {
	m.lk.Lock()
	defer m.lk.Unlock()

	r, err := m.store.Relayer(relayer)
	if err != nil {
		return types.EmptyInt, err
	}
	return r.Collateral, nil
}

// assignedRelayers picks the relayers backing the next order: the lowest
// quotes among those with spare order capacity, enrollment order breaking
// ties. ok is false while fewer than AssignedRelayersNumber qualify.
func (m *Market) assignedRelayers() ([]Relayer, bool, error) {
	all, err := m.store.ListRelayers()
	if err != nil {
		return nil, false, err
	}

	usable := all[:0]
	for _, r := range all {
		if r.usable(m.cfg.CollateralPerOrder) {
			usable = append(usable, r)
		}
	}
	if uint64(len(usable)) < m.cfg.AssignedRelayersNumber {
		return nil, false, nil
	}

	sort.Slice(usable, func(i, j int) bool {
		if c := types.BigCmp(usable[i].Fee, usable[j].Fee); c != 0 {
			return c < 0
		}
		return usable[i].Seq < usable[j].Seq
	})
	return usable[:m.cfg.AssignedRelayersNumber], true, nil
}

// AssignedRelayers returns the relayers that would back an order created
// now. ok is false while the market has too few usable relayers.
func (m *Market) AssignedRelayers(ctx context.Context) ([]Relayer, bool, error) {
	m.lk.Lock()
	defer m.lk.Unlock()

	return m.assignedRelayers()
}

// MarketFee quotes the current delivery price: the highest quote among the
// relayers that would be assigned. ok is false while the market cannot
// back an order, in which case no message should be accepted.
func (m *Market) MarketFee(ctx context.Context) (types.BigInt, bool, error) {
	m.lk.Lock()
	defer m.lk.Unlock()

	assigned, ok, err := m.assignedRelayers()
	if err != nil || !ok || len(assigned) == 0 {
		return types.EmptyInt, false, err
	}
	return assigned[len(assigned)-1].Fee, true, nil
}

// CollectFee moves a message fee from its submitter into the relayer fund.
// Signed origins pay from their account. Root origins pay from the
// configured root payer; without one a nonzero fee cannot be collected,
// since admitting an unpaid message would later underfund its settlement.
func (m *Market) CollectFee(ctx context.Context, submitter types.RawOrigin, fee types.BigInt) error {
	m.lk.Lock()
	defer m.lk.Unlock()

	if fee.IsZero() {
		return nil
	}

	var payer address.Address
	switch submitter.Kind {
	case types.RawOriginSigned:
		payer = submitter.Account
	case types.RawOriginRoot:
		if m.rootPayer == address.Undef {
			return xerrors.Errorf("no root payer account configured for a %s fee", fee)
		}
		payer = m.rootPayer
	default:
		return xerrors.Errorf("unknown origin kind %d", submitter.Kind)
	}

	return m.currency.Transfer(ctx, payer, m.fund, fee)
}

func (m *Market) recordEnrolledGauge(ctx context.Context) {
	all, err := m.store.ListRelayers()
	if err != nil {
		return
	}
	stats.Record(ctx, metrics.EnrolledRelayers.M(int64(len(all))))
}
