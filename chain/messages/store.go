package messages

import (
	"bytes"
	"context"
	"errors"
	"strconv"

	"golang.org/x/xerrors"

	cborrpc "github.com/filecoin-project/go-cbor-util"
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/namespace"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

// ErrMessageNotFound is returned when a nonce has no stored message, either
// because it was never sent on this lane or because it was already pruned.
var ErrMessageNotFound = errors.New("message not found in outbound storage")

var (
	outboundPrefix = datastore.NewKey("/outbound")
	inboundPrefix  = datastore.NewKey("/inbound")
	messagePrefix  = datastore.NewKey("/data")
)

// Store persists per-lane state and the payloads of accepted outbound
// messages until they are pruned. It does no locking of its own; callers
// serialize through the Manager.
type Store struct {
	ds datastore.Batching
}

func NewStore(ds datastore.Batching) *Store {
	ds = namespace.Wrap(ds, datastore.NewKey("/messages"))
	return &Store{ds: ds}
}

func dskeyForLane(prefix datastore.Key, lane types.LaneID) datastore.Key {
	return prefix.ChildString(lane.String())
}

func dskeyForMessage(key types.MessageKey) datastore.Key {
	return messagePrefix.ChildString(key.Lane.String()).ChildString(strconv.FormatUint(uint64(key.Nonce), 10))
}

// OutboundLane returns the outbound state of a lane. Lanes that were never
// written start out with the nonces a fresh lane has.
func (st *Store) OutboundLane(ctx context.Context, lane types.LaneID) (*types.OutboundLaneData, error) {
	res, err := st.ds.Get(ctx, dskeyForLane(outboundPrefix, lane))
	if err == datastore.ErrNotFound {
		ld := types.NewOutboundLaneData()
		return &ld, nil
	}
	if err != nil {
		return nil, err
	}

	var ld types.OutboundLaneData
	if err := ld.UnmarshalCBOR(bytes.NewReader(res)); err != nil {
		return nil, xerrors.Errorf("decoding outbound state of lane %s: %w", lane, err)
	}
	return &ld, nil
}

func (st *Store) PutOutboundLane(ctx context.Context, lane types.LaneID, ld *types.OutboundLaneData) error {
	b, err := cborrpc.Dump(ld)
	if err != nil {
		return err
	}
	return st.ds.Put(ctx, dskeyForLane(outboundPrefix, lane), b)
}

// InboundLane returns the inbound state of a lane, zero for lanes that
// never received anything.
func (st *Store) InboundLane(ctx context.Context, lane types.LaneID) (*types.InboundLaneData, error) {
	res, err := st.ds.Get(ctx, dskeyForLane(inboundPrefix, lane))
	if err == datastore.ErrNotFound {
		return &types.InboundLaneData{}, nil
	}
	if err != nil {
		return nil, err
	}

	var ld types.InboundLaneData
	if err := ld.UnmarshalCBOR(bytes.NewReader(res)); err != nil {
		return nil, xerrors.Errorf("decoding inbound state of lane %s: %w", lane, err)
	}
	return &ld, nil
}

func (st *Store) PutInboundLane(ctx context.Context, lane types.LaneID, ld *types.InboundLaneData) error {
	b, err := cborrpc.Dump(ld)
	if err != nil {
		return err
	}
	return st.ds.Put(ctx, dskeyForLane(inboundPrefix, lane), b)
}

func (st *Store) PutMessage(ctx context.Context, key types.MessageKey, data *types.MessageData) error {
	b, err := cborrpc.Dump(data)
	if err != nil {
		return err
	}
	return st.ds.Put(ctx, dskeyForMessage(key), b)
}

func (st *Store) GetMessage(ctx context.Context, key types.MessageKey) (*types.MessageData, error) {
	res, err := st.ds.Get(ctx, dskeyForMessage(key))
	if err == datastore.ErrNotFound {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}

	var data types.MessageData
	if err := data.UnmarshalCBOR(bytes.NewReader(res)); err != nil {
		return nil, xerrors.Errorf("decoding message %s: %w", key, err)
	}
	return &data, nil
}

func (st *Store) DeleteMessage(ctx context.Context, key types.MessageKey) error {
	return st.ds.Delete(ctx, dskeyForMessage(key))
}
