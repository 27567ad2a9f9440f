package types

import (
	"bytes"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/crypto"
)

type RawOriginKind uint8

const (
	RawOriginRoot RawOriginKind = iota
	RawOriginSigned
)

// RawOrigin is the local origin a send-message call executes under on the
// source chain.
type RawOrigin struct {
	Kind    RawOriginKind
	Account address.Address
}

func RootOrigin() RawOrigin {
	return RawOrigin{Kind: RawOriginRoot}
}

func SignedOrigin(account address.Address) RawOrigin {
	return RawOrigin{Kind: RawOriginSigned, Account: account}
}

type CallOriginKind uint8

const (
	// CallOriginSourceRoot dispatches under an account derived from the
	// source chain's root. Only the source chain's root origin may send it.
	CallOriginSourceRoot CallOriginKind = iota
	// CallOriginTargetAccount dispatches under an existing target chain
	// account that signed off on the exact call.
	CallOriginTargetAccount
	// CallOriginSourceAccount dispatches under an account derived from a
	// source chain account.
	CallOriginSourceAccount
)

// CallOrigin declares whose authority a bridged message executes under on
// the target chain. Encoded flat; fields unused by a kind stay empty.
type CallOrigin struct {
	Kind CallOriginKind

	// SourceAccount is the sending account's encoded source chain address,
	// set for SourceAccount and TargetAccount origins.
	SourceAccount []byte

	// TargetPub is the target chain public key claiming the dispatch
	// account, set for TargetAccount origins.
	TargetPub []byte

	// TargetSig is TargetPub's signature over the account ownership
	// digest of the call.
	TargetSig *crypto.Signature
}

func SourceRootOrigin() CallOrigin {
	return CallOrigin{Kind: CallOriginSourceRoot}
}

func SourceAccountOrigin(sourceAccount []byte) CallOrigin {
	return CallOrigin{Kind: CallOriginSourceAccount, SourceAccount: sourceAccount}
}

func TargetAccountOrigin(sourceAccount, targetPub []byte, sig crypto.Signature) CallOrigin {
	return CallOrigin{
		Kind:          CallOriginTargetAccount,
		SourceAccount: sourceAccount,
		TargetPub:     targetPub,
		TargetSig:     &sig,
	}
}

// SentBy reports whether the origin claims the given source chain account.
func (o *CallOrigin) SentBy(account address.Address) bool {
	return bytes.Equal(o.SourceAccount, account.Bytes())
}

type DispatchFeePayment uint8

const (
	// PayFeeAtSourceChain: the dispatch fee was charged with the delivery
	// fee on the source chain.
	PayFeeAtSourceChain DispatchFeePayment = iota
	// PayFeeAtTargetChain: the dispatch fee is withdrawn from the derived
	// dispatch account during dispatch.
	PayFeeAtTargetChain
)

// MessagePayload is what a source chain submitter hands the bridge for
// target chain execution: the encoded call plus everything the target
// dispatcher needs to admit it.
type MessagePayload struct {
	// SpecVersion is the target chain runtime version the call was
	// encoded against. Dispatch refuses (without decoding) on mismatch.
	SpecVersion uint32
	// Weight is the declared dispatch weight. Must not be below the
	// executor's estimate.
	Weight Weight
	Origin CallOrigin
	// DispatchFeePayment picks where the dispatch fee is settled.
	DispatchFeePayment DispatchFeePayment
	Call               []byte
}

func (p *MessagePayload) Serialize() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := p.MarshalCBOR(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeMessagePayload(b []byte) (*MessagePayload, error) {
	var p MessagePayload
	if err := p.UnmarshalCBOR(bytes.NewReader(b)); err != nil {
		return nil, err
	}

	return &p, nil
}
