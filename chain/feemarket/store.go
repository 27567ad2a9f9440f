package feemarket

import (
	"context"
	"encoding/binary"
	"errors"

	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-statestore"
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/namespace"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

var (
	// ErrOrderNotFound is returned for nonces that never opened an order or
	// whose order was already consumed by settlement.
	ErrOrderNotFound = errors.New("order not found")

	// ErrNotEnrolled is returned for relayers the registry does not know.
	ErrNotEnrolled = errors.New("relayer is not enrolled")
)

var relayerSeqKey = datastore.NewKey("/meta/relayer-seq")

// Store persists the market's records: open orders keyed by message,
// enrolled relayers keyed by address, and the enrollment counter. It does
// no locking of its own; callers serialize through the Market.
type Store struct {
	ds datastore.Batching

	orders   *statestore.StateStore
	relayers *statestore.StateStore
}

func NewStore(ds datastore.Batching) *Store {
	ds = namespace.Wrap(ds, datastore.NewKey("/feemarket"))
	return &Store{
		ds:       ds,
		orders:   statestore.New(namespace.Wrap(ds, datastore.NewKey("/orders"))),
		relayers: statestore.New(namespace.Wrap(ds, datastore.NewKey("/relayers"))),
	}
}

// NextRelayerSeq hands out enrollment sequence numbers, persisted so quote
// ties keep breaking the same way across restarts.
func (st *Store) NextRelayerSeq(ctx context.Context) (uint64, error) {
	next := uint64(0)

	cur, err := st.ds.Get(ctx, relayerSeqKey)
	switch err {
	case nil:
		seq, _ := binary.Uvarint(cur)
		next = seq + 1
	case datastore.ErrNotFound:
	default:
		return 0, err
	}

	buf := make([]byte, binary.MaxVarintLen64)
	size := binary.PutUvarint(buf, next)
	return next, st.ds.Put(ctx, relayerSeqKey, buf[:size])
}

func (st *Store) Relayer(addr address.Address) (*Relayer, error) {
	has, err := st.relayers.Has(addr)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, xerrors.Errorf("relayer %s: %w", addr, ErrNotEnrolled)
	}

	var r Relayer
	if err := st.relayers.Get(addr).Get(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (st *Store) ListRelayers() ([]Relayer, error) {
	var out []Relayer
	if err := st.relayers.List(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func (st *Store) Order(key types.MessageKey) (*Order, error) {
	has, err := st.orders.Has(key)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, xerrors.Errorf("order %s: %w", key, ErrOrderNotFound)
	}

	var o Order
	if err := st.orders.Get(key).Get(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (st *Store) HasOrder(key types.MessageKey) (bool, error) {
	return st.orders.Has(key)
}
