// Package trie implements the hash-addressed merkle trie the bridge reads
// bridged chain storage through. A trie commits every key/value pair of a
// state snapshot to a single 32 byte root; a proof is the subset of encoded
// nodes sufficient to walk from that root to the requested keys.
//
// The trie is 16-ary over key nibbles, with extension nodes compressing
// shared paths. Node references are blake2b-256 digests of the node's CBOR
// encoding, so a proof carries its own integrity: a tampered node changes
// its digest and breaks the walk.
package trie

import (
	"bytes"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/xerrors"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

const (
	// NodeLeaf terminates a path and holds a value.
	NodeLeaf = uint8(iota)
	// NodeExtension compresses a run of nibbles shared by every key below it.
	NodeExtension
	// NodeBranch fans out on one nibble; may also hold the value of the key
	// ending here.
	NodeBranch
)

const branchWidth = 16

// Node is the wire form of a trie node. Fields unused by a kind stay empty:
// leaves use Path+Value, extensions Path+Children[0], branches
// Children[0:16] (empty slot = zero-length ref) and optionally Value.
type Node struct {
	Kind     uint8
	Path     []byte
	Value    []byte
	Children [][]byte
}

func (n *Node) Serialize() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := n.MarshalCBOR(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Ref is the node's hash reference as stored in its parent.
func (n *Node) Ref() (types.Hash, error) {
	enc, err := n.Serialize()
	if err != nil {
		return types.Hash{}, err
	}
	return blake2b.Sum256(enc), nil
}

func decodeNode(b []byte) (*Node, error) {
	var n Node
	if err := n.UnmarshalCBOR(bytes.NewReader(b)); err != nil {
		return nil, xerrors.Errorf("decoding trie node: %w", err)
	}

	switch n.Kind {
	case NodeLeaf:
		if len(n.Children) != 0 {
			return nil, xerrors.Errorf("leaf node carries children")
		}
	case NodeExtension:
		if len(n.Children) != 1 || len(n.Path) == 0 {
			return nil, xerrors.Errorf("malformed extension node")
		}
	case NodeBranch:
		if len(n.Children) != branchWidth {
			return nil, xerrors.Errorf("branch node has %d children", len(n.Children))
		}
	default:
		return nil, xerrors.Errorf("unknown trie node kind %d", n.Kind)
	}

	return &n, nil
}

// keyNibbles expands a key to one nibble per byte, high nibble first.
func keyNibbles(key []byte) []byte {
	out := make([]byte, 0, len(key)*2)
	for _, b := range key {
		out = append(out, b>>4, b&0x0f)
	}
	return out
}

func commonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
