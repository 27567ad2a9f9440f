package trie

import (
	"sort"

	"golang.org/x/xerrors"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

// Builder accumulates key/value pairs and commits them to a trie. It is the
// write side used when laying out storage for a header (and by tests to
// fabricate bridged chain state); verification only ever uses the checker.
type Builder struct {
	entries map[string][]byte

	built bool
	root  types.Hash
	nodes map[types.Hash][]byte
}

func NewBuilder() *Builder {
	return &Builder{entries: make(map[string][]byte)}
}

// Insert records a key/value pair. Later inserts for the same key win.
func (b *Builder) Insert(key, value []byte) {
	b.entries[string(key)] = append([]byte(nil), value...)
	b.built = false
}

// Root commits the current entries and returns the trie root.
func (b *Builder) Root() (types.Hash, error) {
	if err := b.build(); err != nil {
		return types.Hash{}, err
	}
	return b.root, nil
}

// Prove returns the encoded nodes visited when reading the given keys,
// root node first. Keys absent from the trie are fine: the walk stops at
// the node proving their absence, which is part of the proof.
func (b *Builder) Prove(keys ...[]byte) ([][]byte, error) {
	if err := b.build(); err != nil {
		return nil, err
	}

	seen := make(map[types.Hash]bool)
	var proof [][]byte
	for _, key := range keys {
		if err := b.walk(b.root, keyNibbles(key), seen, &proof); err != nil {
			return nil, err
		}
	}
	return proof, nil
}

// ProveAll returns every node of the trie.
func (b *Builder) ProveAll() ([][]byte, error) {
	if err := b.build(); err != nil {
		return nil, err
	}

	proof := make([][]byte, 0, len(b.nodes))
	enc, ok := b.nodes[b.root]
	if !ok {
		return nil, xerrors.Errorf("root node missing from built trie")
	}
	proof = append(proof, append([]byte(nil), enc...))
	for ref, node := range b.nodes {
		if ref == b.root {
			continue
		}
		proof = append(proof, append([]byte(nil), node...))
	}
	return proof, nil
}

func (b *Builder) walk(ref types.Hash, path []byte, seen map[types.Hash]bool, proof *[][]byte) error {
	enc, ok := b.nodes[ref]
	if !ok {
		return xerrors.Errorf("dangling node reference %s", ref)
	}
	if !seen[ref] {
		seen[ref] = true
		// callers own the proof, hand out copies
		*proof = append(*proof, append([]byte(nil), enc...))
	}

	node, err := decodeNode(enc)
	if err != nil {
		return err
	}

	switch node.Kind {
	case NodeLeaf:
		return nil
	case NodeExtension:
		if commonPrefixLen(node.Path, path) < len(node.Path) {
			return nil
		}
		child, err := types.HashFromBytes(node.Children[0])
		if err != nil {
			return err
		}
		return b.walk(child, path[len(node.Path):], seen, proof)
	case NodeBranch:
		if len(path) == 0 {
			return nil
		}
		childRef := node.Children[path[0]]
		if len(childRef) == 0 {
			return nil
		}
		child, err := types.HashFromBytes(childRef)
		if err != nil {
			return err
		}
		return b.walk(child, path[1:], seen, proof)
	}
	return nil
}

func (b *Builder) build() error {
	if b.built {
		return nil
	}
	if len(b.entries) == 0 {
		return xerrors.Errorf("cannot build an empty trie")
	}

	type entry struct {
		nibbles []byte
		value   []byte
	}
	entries := make([]entry, 0, len(b.entries))
	for k, v := range b.entries {
		entries = append(entries, entry{nibbles: keyNibbles([]byte(k)), value: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		return string(entries[i].nibbles) < string(entries[j].nibbles)
	})

	b.nodes = make(map[types.Hash][]byte)

	var buildRange func(es []entry, depth int) (types.Hash, error)
	buildRange = func(es []entry, depth int) (types.Hash, error) {
		if len(es) == 1 {
			leaf := &Node{Kind: NodeLeaf, Path: es[0].nibbles[depth:], Value: es[0].value}
			return b.store(leaf)
		}

		// Longest prefix shared by every entry past depth.
		prefix := es[0].nibbles[depth:]
		for _, e := range es[1:] {
			prefix = prefix[:commonPrefixLen(prefix, e.nibbles[depth:])]
		}

		if len(prefix) > 0 {
			child, err := buildRange(es, depth+len(prefix))
			if err != nil {
				return types.Hash{}, err
			}
			ext := &Node{Kind: NodeExtension, Path: prefix, Children: [][]byte{child.Bytes()}}
			return b.store(ext)
		}

		branch := &Node{Kind: NodeBranch, Children: make([][]byte, branchWidth)}
		i := 0
		for i < len(es) {
			if len(es[i].nibbles) == depth {
				// Key terminates at this branch.
				branch.Value = es[i].value
				i++
				continue
			}
			nib := es[i].nibbles[depth]
			j := i
			for j < len(es) && len(es[j].nibbles) > depth && es[j].nibbles[depth] == nib {
				j++
			}
			child, err := buildRange(es[i:j], depth+1)
			if err != nil {
				return types.Hash{}, err
			}
			branch.Children[nib] = child.Bytes()
			i = j
		}
		return b.store(branch)
	}

	root, err := buildRange(entries, 0)
	if err != nil {
		return err
	}

	b.root = root
	b.built = true
	return nil
}

func (b *Builder) store(n *Node) (types.Hash, error) {
	enc, err := n.Serialize()
	if err != nil {
		return types.Hash{}, err
	}
	ref, err := n.Ref()
	if err != nil {
		return types.Hash{}, err
	}
	b.nodes[ref] = enc
	return ref, nil
}
