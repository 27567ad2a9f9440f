package repo

import (
	"context"
	"testing"

	"github.com/ipfs/go-datastore"
	"github.com/stretchr/testify/require"
)

func basicTest(t *testing.T, repo Repo) {
	ctx := context.Background()

	lrepo, err := repo.Lock()
	require.NoError(t, err)
	require.NotNil(t, lrepo)

	// second lock must fail while the first is held
	_, err = repo.Lock()
	require.Equal(t, ErrRepoAlreadyLocked, err)

	cfg, err := lrepo.Config()
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Chain.SelfChainID)

	ds, err := lrepo.Datastore(ctx, "/metadata")
	require.NoError(t, err)

	k := datastore.NewKey("/test")
	require.NoError(t, ds.Put(ctx, k, []byte("hello")))

	got, err := ds.Get(ctx, k)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)

	require.NoError(t, lrepo.Close())
	require.Equal(t, ErrClosedRepo, lrepo.Close())

	// locking after close must succeed
	lrepo, err = repo.Lock()
	require.NoError(t, err)

	// data written under the previous lock is still visible on fs repos
	require.NoError(t, lrepo.Close())
}
