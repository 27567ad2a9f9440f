package types

import (
	"encoding/binary"

	"github.com/filecoin-project/go-address"
	"golang.org/x/crypto/blake2b"
)

const (
	rootAccountDerivationPrefix = "pallet-bridge/account-derivation:root"
	accountDerivationPrefix     = "pallet-bridge/account-derivation:account"
)

// DeriveRootAccount returns the local account that stands in for the
// bridged chain's root origin. Deterministic in the bridged chain id, so
// every node derives the same account and no key ever exists for it.
func DeriveRootAccount(bridge ChainID) (address.Address, error) {
	buf := make([]byte, 0, len(rootAccountDerivationPrefix)+4)
	buf = append(buf, rootAccountDerivationPrefix...)
	buf = append(buf, bridge[:]...)
	h := blake2b.Sum256(buf)
	return address.NewActorAddress(h[:])
}

// DeriveSourceAccount returns the local account that stands in for the
// given bridged chain account.
func DeriveSourceAccount(bridge ChainID, account []byte) (address.Address, error) {
	buf := make([]byte, 0, len(accountDerivationPrefix)+4+len(account))
	buf = append(buf, accountDerivationPrefix...)
	buf = append(buf, bridge[:]...)
	buf = append(buf, account...)
	h := blake2b.Sum256(buf)
	return address.NewActorAddress(h[:])
}

// AccountOwnershipDigest is the blob a target chain key signs to prove it
// consents to dispatching the given call under its account. Binding the
// source account, target spec version and both chain ids keeps a signature
// from being replayed for another sender, another runtime version or
// another bridge deployment.
func AccountOwnershipDigest(call, sourceAccount []byte, targetSpecVersion uint32, source, target ChainID) []byte {
	buf := make([]byte, 0, len(call)+len(sourceAccount)+4+8)
	buf = append(buf, call...)
	buf = append(buf, sourceAccount...)
	var sv [4]byte
	binary.LittleEndian.PutUint32(sv[:], targetSpecVersion)
	buf = append(buf, sv[:]...)
	buf = append(buf, source[:]...)
	buf = append(buf, target[:]...)
	return buf
}
