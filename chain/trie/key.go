package trie

import (
	"golang.org/x/crypto/blake2b"
)

// StorageKey returns the storage location of one entry of a named storage
// map: blake2b-256 of the pallet-qualified map name, then blake2b-128 of
// the encoded map key, then the encoded key itself. The prefix namespaces
// maps from one another; the trailing plain key keeps entries enumerable
// by prefix scan on the hosting chain.
func StorageKey(pallet, storageMap string, encKey []byte) []byte {
	prefix := blake2b.Sum256([]byte(pallet + "::" + storageMap))

	h, err := blake2b.New(16, nil)
	if err != nil {
		panic(err)
	}
	h.Write(encKey)

	out := make([]byte, 0, 32+16+len(encKey))
	out = append(out, prefix[:]...)
	out = h.Sum(out)
	out = append(out, encKey...)
	return out
}

// MapPrefix returns the common prefix of every entry of a storage map.
func MapPrefix(pallet, storageMap string) []byte {
	prefix := blake2b.Sum256([]byte(pallet + "::" + storageMap))
	return prefix[:]
}
