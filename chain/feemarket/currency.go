package feemarket

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-address"
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/namespace"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

// ErrInsufficientFunds is returned by transfers the payer cannot cover.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Currency moves value between local accounts. The market never touches
// balances directly; everything it charges or pays goes through here, so a
// deployment can plug in its own asset layer.
type Currency interface {
	// Transfer moves amount from one account to the other, all or
	// nothing. A zero amount is a no-op.
	Transfer(ctx context.Context, from, to address.Address, amount types.BigInt) error

	// Balance reports an account's spendable balance. Unknown accounts
	// hold zero.
	Balance(ctx context.Context, addr address.Address) (types.BigInt, error)

	// Mint credits an account out of thin air. Genesis allocation and
	// tests only.
	Mint(ctx context.Context, to address.Address, amount types.BigInt) error
}

const (
	fundAccountTag     = "fee-market/account:relayer-fund"
	treasuryAccountTag = "fee-market/account:treasury"
)

func moduleAccount(tag string) address.Address {
	h := blake2b.Sum256([]byte(tag))
	a, err := address.NewActorAddress(h[:])
	if err != nil {
		panic(err) // ok, fixed input
	}
	return a
}

// RelayerFundAccount is the module account message fees and slashed
// collateral sit in until settlement pays them out. No key exists for it.
func RelayerFundAccount() address.Address {
	return moduleAccount(fundAccountTag)
}

// TreasuryAccount receives the surplus of orders delivered in the first
// slot.
func TreasuryAccount() address.Address {
	return moduleAccount(treasuryAccountTag)
}

// Ledger is a datastore backed Currency. Balances are stored as raw big
// integer bytes keyed by account address.
type Ledger struct {
	lk sync.Mutex
	ds datastore.Batching
}

func NewLedger(ds datastore.Batching) *Ledger {
	return &Ledger{ds: namespace.Wrap(ds, datastore.NewKey("/balances"))}
}

func balanceKey(addr address.Address) datastore.Key {
	return datastore.NewKey(addr.String())
}

func (l *Ledger) balance(ctx context.Context, addr address.Address) (types.BigInt, error) {
	val, err := l.ds.Get(ctx, balanceKey(addr))
	switch err {
	case nil:
		return types.BigFromBytes(val), nil
	case datastore.ErrNotFound:
		return types.NewInt(0), nil
	default:
		return types.EmptyInt, err
	}
}

func (l *Ledger) put(ctx context.Context, addr address.Address, amount types.BigInt) error {
	return l.ds.Put(ctx, balanceKey(addr), amount.Int.Bytes())
}

func (l *Ledger) Balance(ctx context.Context, addr address.Address) (types.BigInt, error) {
	l.lk.Lock()
	defer l.lk.Unlock()

	return l.balance(ctx, addr)
}

func (l *Ledger) Transfer(ctx context.Context, from, to address.Address, amount types.BigInt) error {
	if amount.IsZero() || from == to {
		return nil
	}
	if amount.LessThan(types.NewInt(0)) {
		return xerrors.Errorf("transfer of negative amount %s", amount)
	}

	l.lk.Lock()
	defer l.lk.Unlock()

	fromBal, err := l.balance(ctx, from)
	if err != nil {
		return err
	}
	if fromBal.LessThan(amount) {
		return xerrors.Errorf("%s holds %s, needs %s: %w", from, fromBal, amount, ErrInsufficientFunds)
	}
	toBal, err := l.balance(ctx, to)
	if err != nil {
		return err
	}

	batch, err := l.ds.Batch(ctx)
	if err != nil {
		return err
	}
	if err := batch.Put(ctx, balanceKey(from), types.BigSub(fromBal, amount).Int.Bytes()); err != nil {
		return err
	}
	if err := batch.Put(ctx, balanceKey(to), types.BigAdd(toBal, amount).Int.Bytes()); err != nil {
		return err
	}
	return batch.Commit(ctx)
}

func (l *Ledger) Mint(ctx context.Context, to address.Address, amount types.BigInt) error {
	if amount.IsZero() {
		return nil
	}

	l.lk.Lock()
	defer l.lk.Unlock()

	bal, err := l.balance(ctx, to)
	if err != nil {
		return err
	}
	return l.put(ctx, to, types.BigAdd(bal, amount))
}
