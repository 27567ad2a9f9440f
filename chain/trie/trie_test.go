package trie

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProveAndRead(t *testing.T) {
	b := NewBuilder()

	entries := map[string]string{}
	for i := 0; i < 64; i++ {
		k := fmt.Sprintf("key/%d", i)
		v := fmt.Sprintf("value-%d", i)
		entries[k] = v
		b.Insert([]byte(k), []byte(v))
	}

	root, err := b.Root()
	require.NoError(t, err)

	for k, v := range entries {
		proof, err := b.Prove([]byte(k))
		require.NoError(t, err)

		got, err := NewChecker(root, proof).Read([]byte(k))
		require.NoError(t, err)
		require.Equal(t, []byte(v), got)
	}
}

func TestReadAbsentKey(t *testing.T) {
	b := NewBuilder()
	b.Insert([]byte("alpha"), []byte("1"))
	b.Insert([]byte("beta"), []byte("2"))

	root, err := b.Root()
	require.NoError(t, err)

	// The proof for an absent key ends at the node showing the divergence.
	proof, err := b.Prove([]byte("gamma"))
	require.NoError(t, err)

	got, err := NewChecker(root, proof).Read([]byte("gamma"))
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestIncompleteProof(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < 32; i++ {
		b.Insert([]byte(fmt.Sprintf("key/%d", i)), []byte(fmt.Sprintf("v%d", i)))
	}

	root, err := b.Root()
	require.NoError(t, err)

	proof, err := b.Prove([]byte("key/7"))
	require.NoError(t, err)
	require.True(t, len(proof) > 1)

	// Drop the terminal node: the walk must fail, not report absence.
	_, err = NewChecker(root, proof[:len(proof)-1]).Read([]byte("key/7"))
	require.ErrorIs(t, err, ErrMissingNode)
}

func TestTamperedNodeRejected(t *testing.T) {
	b := NewBuilder()
	b.Insert([]byte("account/1"), []byte("100"))
	b.Insert([]byte("account/2"), []byte("250"))

	root, err := b.Root()
	require.NoError(t, err)

	proof, err := b.Prove([]byte("account/2"))
	require.NoError(t, err)

	// Flipping one byte changes the node's digest, so the reference from
	// its parent no longer resolves.
	tampered := make([][]byte, len(proof))
	for i := range proof {
		tampered[i] = append([]byte(nil), proof[i]...)
	}
	last := tampered[len(tampered)-1]
	last[len(last)-1] ^= 0xff

	_, err = NewChecker(root, tampered).Read([]byte("account/2"))
	require.ErrorIs(t, err, ErrMissingNode)
}

func TestUnusedNodesTolerated(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < 16; i++ {
		b.Insert([]byte(fmt.Sprintf("k%02d", i)), []byte(fmt.Sprintf("v%d", i)))
	}

	root, err := b.Root()
	require.NoError(t, err)

	// Hand the checker the entire trie; reads must ignore what they don't
	// touch.
	proof, err := b.ProveAll()
	require.NoError(t, err)

	got, err := NewChecker(root, proof).Read([]byte("k05"))
	require.NoError(t, err)
	require.Equal(t, []byte("v5"), got)
}

func TestWrongRoot(t *testing.T) {
	b := NewBuilder()
	b.Insert([]byte("x"), []byte("1"))

	proof, err := b.Prove([]byte("x"))
	require.NoError(t, err)

	other := NewBuilder()
	other.Insert([]byte("x"), []byte("2"))
	otherRoot, err := other.Root()
	require.NoError(t, err)

	_, err = NewChecker(otherRoot, proof).Read([]byte("x"))
	require.ErrorIs(t, err, ErrMissingNode)
}

func TestStorageKey(t *testing.T) {
	k1 := StorageKey("BridgeCrabMessages", "OutboundMessages", []byte{1, 2, 3})
	k2 := StorageKey("BridgeCrabMessages", "OutboundMessages", []byte{1, 2, 3})
	require.Equal(t, k1, k2)

	// Same key under a different map or pallet lands elsewhere.
	require.NotEqual(t, k1, StorageKey("BridgeCrabMessages", "InboundLanes", []byte{1, 2, 3}))
	require.NotEqual(t, k1, StorageKey("BridgeDarwiniaMessages", "OutboundMessages", []byte{1, 2, 3}))

	// Map prefix is a strict prefix of every entry's location.
	require.Equal(t, MapPrefix("BridgeCrabMessages", "OutboundMessages"), k1[:32])
}
