package repo

import (
	"context"
	"os"
	"sync"

	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/namespace"
	dssync "github.com/ipfs/go-datastore/sync"

	"github.com/darwinia-network/darwinia-bridge-substrate/node/config"
)

type MemRepo struct {
	repoLock chan struct{}
	token    *byte

	datastore datastore.Datastore
	tempDir   string

	// holds the current config value
	config struct {
		sync.Mutex
		val *config.Bridge
	}
}

var _ Repo = &MemRepo{}

type lockedMemRepo struct {
	mem *MemRepo
	sync.RWMutex

	token *byte
}

// MemRepoOptions contains options for memory repo
type MemRepoOptions struct {
	Ds  datastore.Datastore
	Cfg *config.Bridge
}

// NewMemory creates new memory based repo with provided options.
// opts can be nil, it will be replaced with defaults.
// Any field in opts can be nil, they will be replaced by defaults.
func NewMemory(opts *MemRepoOptions) *MemRepo {
	if opts == nil {
		opts = &MemRepoOptions{}
	}
	if opts.Ds == nil {
		opts.Ds = dssync.MutexWrap(datastore.NewMapDatastore())
	}
	if opts.Cfg == nil {
		opts.Cfg = config.DefaultBridge()
	}

	mem := &MemRepo{
		repoLock:  make(chan struct{}, 1),
		datastore: opts.Ds,
	}
	mem.config.val = opts.Cfg
	return mem
}

func (mem *MemRepo) Lock() (LockedRepo, error) {
	select {
	case mem.repoLock <- struct{}{}:
	default:
		return nil, ErrRepoAlreadyLocked
	}
	mem.token = new(byte)

	return &lockedMemRepo{
		mem:   mem,
		token: mem.token,
	}, nil
}

func (mem *MemRepo) Cleanup() {
	if mem.tempDir != "" {
		if err := os.RemoveAll(mem.tempDir); err != nil {
			log.Errorw("cleanup test memrepo", "error", err)
		}
		mem.tempDir = ""
	}
}

func (lmem *lockedMemRepo) checkToken() error {
	lmem.RLock()
	defer lmem.RUnlock()
	if lmem.mem.token != lmem.token {
		return ErrClosedRepo
	}
	return nil
}

func (lmem *lockedMemRepo) Close() error {
	if err := lmem.checkToken(); err != nil {
		return err
	}
	lmem.Lock()
	defer lmem.Unlock()

	if lmem.mem.token != lmem.token {
		return ErrClosedRepo
	}

	lmem.mem.token = nil
	<-lmem.mem.repoLock // unlock
	return nil
}

func (lmem *lockedMemRepo) Path() string {
	lmem.Lock()
	defer lmem.Unlock()

	if lmem.mem.tempDir != "" {
		return lmem.mem.tempDir
	}

	t, err := os.MkdirTemp(os.TempDir(), "bridge-memrepo-temp-")
	if err != nil {
		panic(err) // only used in tests, probably fine
	}

	lmem.mem.tempDir = t
	return t
}

func (lmem *lockedMemRepo) Datastore(_ context.Context, ns string) (datastore.Batching, error) {
	if err := lmem.checkToken(); err != nil {
		return nil, err
	}

	return namespace.Wrap(lmem.mem.datastore, datastore.NewKey(ns)), nil
}

func (lmem *lockedMemRepo) Config() (*config.Bridge, error) {
	if err := lmem.checkToken(); err != nil {
		return nil, err
	}

	lmem.mem.config.Lock()
	defer lmem.mem.config.Unlock()

	return lmem.mem.config.val, nil
}

func (lmem *lockedMemRepo) SetConfig(c func(*config.Bridge)) error {
	if err := lmem.checkToken(); err != nil {
		return err
	}

	lmem.mem.config.Lock()
	defer lmem.mem.config.Unlock()

	c(lmem.mem.config.val)

	return nil
}
