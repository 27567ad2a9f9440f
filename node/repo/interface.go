package repo

import (
	"context"

	"github.com/ipfs/go-datastore"
	"golang.org/x/xerrors"

	"github.com/darwinia-network/darwinia-bridge-substrate/node/config"
)

var (
	ErrRepoAlreadyLocked = xerrors.New("repo is already locked")
	ErrClosedRepo        = xerrors.New("repo is no longer open")
)

type Repo interface {
	// Lock locks the repo for exclusive use.
	Lock() (LockedRepo, error)
}

type LockedRepo interface {
	// Close closes repo and removes lock.
	Close() error

	// Path returns absolute path of the repo.
	Path() string

	// Datastore returns the datastore registered under the given namespace.
	Datastore(ctx context.Context, namespace string) (datastore.Batching, error)

	// Config returns the config deserialized from this repo.
	Config() (*config.Bridge, error)

	// SetConfig mutates the config in this repo and persists it.
	SetConfig(func(*config.Bridge)) error
}
