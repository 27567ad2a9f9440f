package finality

import (
	"context"
	"strconv"
	"sync"

	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/namespace"
	"go.opencensus.io/stats"
	"golang.org/x/xerrors"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
	"github.com/darwinia-network/darwinia-bridge-substrate/metrics"
)

// Store persists the headers handed over by the finality engine: every
// imported candidate header, the finalized subset, and the parachain heads
// extracted from finalized relay state.
type Store struct {
	lk sync.Mutex

	ds datastore.Batching
}

var _ Provider = (*Store)(nil)

func NewStore(ds datastore.Batching) *Store {
	ds = namespace.Wrap(ds, datastore.NewKey("/finality"))
	return &Store{
		ds: ds,
	}
}

var (
	headerPrefix    = datastore.NewKey("/headers")
	finalizedPrefix = datastore.NewKey("/finalized")
	paraPrefix      = datastore.NewKey("/paras")
	bestTipKey      = datastore.NewKey("/tip/best")
	finalizedTipKey = datastore.NewKey("/tip/finalized")
)

func dskeyForHeader(prefix datastore.Key, h types.Hash) datastore.Key {
	return prefix.ChildString(h.String())
}

func dskeyForParaHead(paraID uint32, relayHash types.Hash) datastore.Key {
	return paraPrefix.ChildString(strconv.FormatUint(uint64(paraID), 10)).ChildString(relayHash.String())
}

func (fs *Store) putHeader(ctx context.Context, k datastore.Key, h *types.BridgedHeader) error {
	b, err := h.Serialize()
	if err != nil {
		return err
	}
	return fs.ds.Put(ctx, k, b)
}

func (fs *Store) getHeader(ctx context.Context, k datastore.Key) (*types.BridgedHeader, error) {
	b, err := fs.ds.Get(ctx, k)
	if err != nil {
		return nil, err
	}
	return types.DecodeBridgedHeader(b)
}

// ImportHeader records a candidate header and advances the best tip if the
// header improves on it. Re-importing a known header is a no-op.
func (fs *Store) ImportHeader(ctx context.Context, h *types.BridgedHeader) error {
	fs.lk.Lock()
	defer fs.lk.Unlock()

	hash := h.Hash()
	if err := fs.putHeader(ctx, dskeyForHeader(headerPrefix, hash), h); err != nil {
		return xerrors.Errorf("importing header %s: %w", hash, err)
	}

	best, err := fs.getHeader(ctx, bestTipKey)
	if err != nil && err != datastore.ErrNotFound {
		return err
	}
	if best == nil || h.Number > best.Number {
		if err := fs.putHeader(ctx, bestTipKey, h); err != nil {
			return xerrors.Errorf("advancing best tip: %w", err)
		}
	}

	stats.Record(ctx, metrics.HeaderImported.M(1))
	return nil
}

// FinalizeHeader certifies a previously imported header as final. Finality
// never moves backwards: certifying a header at or below the finalized tip
// fails unless it is the tip itself.
func (fs *Store) FinalizeHeader(ctx context.Context, hash types.Hash) error {
	fs.lk.Lock()
	defer fs.lk.Unlock()

	h, err := fs.getHeader(ctx, dskeyForHeader(headerPrefix, hash))
	if err == datastore.ErrNotFound {
		return xerrors.Errorf("cannot finalize header %s: not imported", hash)
	}
	if err != nil {
		return err
	}

	tip, err := fs.getHeader(ctx, finalizedTipKey)
	if err != nil && err != datastore.ErrNotFound {
		return err
	}
	if tip != nil && h.Number <= tip.Number {
		if h.Hash() == tip.Hash() {
			return nil
		}
		return xerrors.Errorf("cannot finalize header %s at %d: finalized tip is already at %d", hash, h.Number, tip.Number)
	}

	if err := fs.putHeader(ctx, dskeyForHeader(finalizedPrefix, hash), h); err != nil {
		return xerrors.Errorf("finalizing header %s: %w", hash, err)
	}
	if err := fs.putHeader(ctx, finalizedTipKey, h); err != nil {
		return xerrors.Errorf("advancing finalized tip: %w", err)
	}

	stats.Record(ctx,
		metrics.HeaderFinalized.M(1),
		metrics.FinalizedNumber.M(int64(h.Number)),
	)
	log.Infow("finalized bridged header", "number", h.Number, "hash", hash)
	return nil
}

// PutParaHead records the encoded head of a parachain as read from the state
// of a finalized relay chain header.
func (fs *Store) PutParaHead(ctx context.Context, paraID uint32, relayHash types.Hash, head []byte) error {
	fs.lk.Lock()
	defer fs.lk.Unlock()

	has, err := fs.ds.Has(ctx, dskeyForHeader(finalizedPrefix, relayHash))
	if err != nil {
		return err
	}
	if !has {
		return xerrors.Errorf("cannot record para %d head at %s: relay header not finalized", paraID, relayHash)
	}

	return fs.ds.Put(ctx, dskeyForParaHead(paraID, relayHash), head)
}

// BestHeader returns the best imported header, or nil when nothing has been
// imported yet.
func (fs *Store) BestHeader(ctx context.Context) (*types.BridgedHeader, error) {
	h, err := fs.getHeader(ctx, bestTipKey)
	if err == datastore.ErrNotFound {
		return nil, nil
	}
	return h, err
}

// FinalizedHeader returns the finalized tip, or nil when nothing has been
// finalized yet.
func (fs *Store) FinalizedHeader(ctx context.Context) (*types.BridgedHeader, error) {
	h, err := fs.getHeader(ctx, finalizedTipKey)
	if err == datastore.ErrNotFound {
		return nil, nil
	}
	return h, err
}

// HasHeader reports whether a header has been imported, finalized or not.
func (fs *Store) HasHeader(ctx context.Context, hash types.Hash) (bool, error) {
	return fs.ds.Has(ctx, dskeyForHeader(headerPrefix, hash))
}

func (fs *Store) FinalizedStateRoot(ctx context.Context, headerHash types.Hash) (types.Hash, error) {
	h, err := fs.getHeader(ctx, dskeyForHeader(finalizedPrefix, headerHash))
	if err == datastore.ErrNotFound {
		return types.Hash{}, ErrUnknownHeader
	}
	if err != nil {
		return types.Hash{}, err
	}
	return h.StateRoot, nil
}

func (fs *Store) FinalizedParaHead(ctx context.Context, paraID uint32, relayHeaderHash types.Hash) ([]byte, error) {
	head, err := fs.ds.Get(ctx, dskeyForParaHead(paraID, relayHeaderHash))
	if err == datastore.ErrNotFound {
		return nil, ErrUnknownHeader
	}
	if err != nil {
		return nil, err
	}
	return head, nil
}
