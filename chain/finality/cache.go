package finality

import (
	"context"
	"sync"

	"github.com/hashicorp/golang-lru/arc/v2"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

type paraHeadKey struct {
	para  uint32
	relay types.Hash
}

// CachingProvider memoizes finalized lookups. Finalized data is immutable, so
// hits never need invalidation; misses are not cached because a header that
// is unknown now may be certified later.
type CachingProvider struct {
	inner Provider

	lk    sync.Mutex
	roots *arc.ARCCache[types.Hash, types.Hash]
	heads *arc.ARCCache[paraHeadKey, []byte]
}

var _ Provider = (*CachingProvider)(nil)

func NewCachingProvider(inner Provider, size int) (*CachingProvider, error) {
	roots, err := arc.NewARC[types.Hash, types.Hash](size)
	if err != nil {
		return nil, err
	}
	heads, err := arc.NewARC[paraHeadKey, []byte](size)
	if err != nil {
		return nil, err
	}

	return &CachingProvider{
		inner: inner,
		roots: roots,
		heads: heads,
	}, nil
}

func (cp *CachingProvider) FinalizedStateRoot(ctx context.Context, headerHash types.Hash) (types.Hash, error) {
	cp.lk.Lock()
	defer cp.lk.Unlock()

	if root, ok := cp.roots.Get(headerHash); ok {
		return root, nil
	}

	root, err := cp.inner.FinalizedStateRoot(ctx, headerHash)
	if err != nil {
		return types.Hash{}, err
	}
	cp.roots.Add(headerHash, root)
	return root, nil
}

func (cp *CachingProvider) FinalizedParaHead(ctx context.Context, paraID uint32, relayHeaderHash types.Hash) ([]byte, error) {
	cp.lk.Lock()
	defer cp.lk.Unlock()

	k := paraHeadKey{para: paraID, relay: relayHeaderHash}
	if head, ok := cp.heads.Get(k); ok {
		return head, nil
	}

	head, err := cp.inner.FinalizedParaHead(ctx, paraID, relayHeaderHash)
	if err != nil {
		return nil, err
	}
	cp.heads.Add(k, head)
	return head, nil
}
