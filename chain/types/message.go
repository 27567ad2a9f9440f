package types

import (
	"bytes"
	"fmt"

	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

// MessageNonce orders messages within one lane. Nonces start at 1 and
// advance without gaps; nonce 0 means "nothing yet".
type MessageNonce uint64

// MessageKey uniquely identifies a message across all lanes of a bridge.
type MessageKey struct {
	Lane  LaneID
	Nonce MessageNonce
}

func (k MessageKey) String() string {
	return fmt.Sprintf("%s/%d", k.Lane, k.Nonce)
}

// MessageData is the stored form of an accepted outbound message: the
// dispatch payload plus the fee its submitter paid into the relayer fund.
type MessageData struct {
	Payload []byte
	Fee     BigInt
}

// Message is a lane message as proven out of bridged chain storage.
type Message struct {
	Key  MessageKey
	Data MessageData
}

var messageCidBuilder = cid.V1Builder{Codec: cid.DagCBOR, MhType: mh.BLAKE2B_MIN + 31}

func (m *Message) Serialize() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := m.MarshalCBOR(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Cid returns the canonical content id of the message encoding.
func (m *Message) Cid() cid.Cid {
	data, err := m.Serialize()
	if err != nil {
		panic(fmt.Sprintf("failed to marshal message: %s", err))
	}

	c, err := messageCidBuilder.Sum(data)
	if err != nil {
		panic(fmt.Sprintf("failed to hash message: %s", err))
	}

	return c
}

func DecodeMessage(b []byte) (*Message, error) {
	var msg Message
	if err := msg.UnmarshalCBOR(bytes.NewReader(b)); err != nil {
		return nil, err
	}

	return &msg, nil
}
