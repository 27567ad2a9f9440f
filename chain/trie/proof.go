package trie

import (
	"errors"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/xerrors"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

// ErrMissingNode means the walk needed a node the proof does not carry.
// The proof is incomplete for the requested key; it says nothing about
// whether the key exists.
var ErrMissingNode = errors.New("storage proof is missing a required trie node")

// Checker reads storage values out of an untrusted proof against a trusted
// root. Every node is verified by construction: nodes are addressed by the
// digest of their encoding, so a node that hashes wrong simply isn't found.
type Checker struct {
	root  types.Hash
	nodes map[types.Hash][]byte
}

func NewChecker(root types.Hash, proof [][]byte) *Checker {
	nodes := make(map[types.Hash][]byte, len(proof))
	for _, enc := range proof {
		nodes[blake2b.Sum256(enc)] = enc
	}
	return &Checker{root: root, nodes: nodes}
}

// Read returns the value stored under key, or (nil, nil) when the proof
// shows the key absent. ErrMissingNode when the proof cannot answer.
func (c *Checker) Read(key []byte) ([]byte, error) {
	return c.read(c.root, keyNibbles(key))
}

func (c *Checker) read(ref types.Hash, path []byte) ([]byte, error) {
	enc, ok := c.nodes[ref]
	if !ok {
		return nil, ErrMissingNode
	}

	node, err := decodeNode(enc)
	if err != nil {
		return nil, xerrors.Errorf("node %s: %w", ref, err)
	}

	switch node.Kind {
	case NodeLeaf:
		if len(path) == len(node.Path) && commonPrefixLen(node.Path, path) == len(path) {
			return node.Value, nil
		}
		return nil, nil

	case NodeExtension:
		if commonPrefixLen(node.Path, path) < len(node.Path) {
			return nil, nil
		}
		child, err := types.HashFromBytes(node.Children[0])
		if err != nil {
			return nil, xerrors.Errorf("node %s: bad child reference: %w", ref, err)
		}
		return c.read(child, path[len(node.Path):])

	case NodeBranch:
		if len(path) == 0 {
			if len(node.Value) == 0 {
				return nil, nil
			}
			return node.Value, nil
		}
		childRef := node.Children[path[0]]
		if len(childRef) == 0 {
			return nil, nil
		}
		child, err := types.HashFromBytes(childRef)
		if err != nil {
			return nil, xerrors.Errorf("node %s: bad child reference: %w", ref, err)
		}
		return c.read(child, path[1:])
	}

	// decodeNode rejects unknown kinds.
	return nil, xerrors.Errorf("unreachable node kind %d", node.Kind)
}
