package messages

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/stretchr/testify/require"

	cborrpc "github.com/filecoin-project/go-cbor-util"
	ds "github.com/ipfs/go-datastore"
	ds_sync "github.com/ipfs/go-datastore/sync"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/dispatch"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/finality"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/trie"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

const (
	testSpecVersion = 7
	testPallet      = "BridgeTargetMessages"
)

var (
	selfChain    = mustChainID("this")
	bridgedChain = mustChainID("brdg")
	testLane     = mustLane("ln00")
)

func mustChainID(s string) types.ChainID {
	c, err := types.ChainIDFromString(s)
	if err != nil {
		panic(err)
	}
	return c
}

func mustLane(s string) types.LaneID {
	l, err := types.LaneIDFromString(s)
	if err != nil {
		panic(err)
	}
	return l
}

func testAddr(t *testing.T, name string) address.Address {
	addr, err := address.NewActorAddress([]byte(name))
	require.NoError(t, err)
	return addr
}

func rootPayload(call string) *types.MessagePayload {
	return &types.MessagePayload{
		SpecVersion: testSpecVersion,
		Weight:      200,
		Origin:      types.SourceRootOrigin(),
		Call:        []byte(call),
	}
}

func encodePayload(t *testing.T, payload *types.MessagePayload) []byte {
	b, err := payload.Serialize()
	require.NoError(t, err)
	return b
}

// bridgedState fabricates the bridged chain's messages pallet storage and
// cuts proofs out of it. It doubles as the proof anchor, resolving its one
// known header hash to whatever the trie root currently is.
type bridgedState struct {
	t          *testing.T
	builder    *trie.Builder
	headerHash types.Hash
}

func newBridgedState(t *testing.T) *bridgedState {
	return &bridgedState{
		t:          t,
		builder:    trie.NewBuilder(),
		headerHash: types.Hash{0xbb},
	}
}

func (s *bridgedState) StateRoot(_ context.Context, h types.Hash) (types.Hash, error) {
	if h != s.headerHash {
		return types.Hash{}, finality.ErrUnknownHeader
	}
	root, err := s.builder.Root()
	if err != nil {
		return types.Hash{}, err
	}
	return root, nil
}

func (s *bridgedState) putRaw(storageKey, value []byte) {
	s.builder.Insert(storageKey, value)
}

func (s *bridgedState) putMessage(key types.MessageKey, data *types.MessageData) {
	b, err := cborrpc.Dump(data)
	require.NoError(s.t, err)
	s.putRaw(MessageStorageKey(testPallet, key), b)
}

func (s *bridgedState) putCall(key types.MessageKey, call string) {
	s.putMessage(key, &types.MessageData{
		Payload: encodePayload(s.t, rootPayload(call)),
		Fee:     types.NewInt(10),
	})
}

func (s *bridgedState) putOutboundState(lane types.LaneID, ld *types.OutboundLaneData) {
	b, err := cborrpc.Dump(ld)
	require.NoError(s.t, err)
	s.putRaw(OutboundLaneStateStorageKey(testPallet, lane), b)
}

func (s *bridgedState) putInboundState(lane types.LaneID, ld *types.InboundLaneData) {
	b, err := cborrpc.Dump(ld)
	require.NoError(s.t, err)
	s.putRaw(InboundLaneStateStorageKey(testPallet, lane), b)
}

// messagesProof proves the given nonce range plus the outbound lane state
// key, like a relayer's delivery transaction would.
func (s *bridgedState) messagesProof(lane types.LaneID, start, end types.MessageNonce) *types.MessagesProof {
	keys := [][]byte{OutboundLaneStateStorageKey(testPallet, lane)}
	if start <= end {
		for n := start; n <= end; n++ {
			keys = append(keys, MessageStorageKey(testPallet, types.MessageKey{Lane: lane, Nonce: n}))
		}
	}
	proof, err := s.builder.Prove(keys...)
	require.NoError(s.t, err)

	return &types.MessagesProof{
		BridgedHeaderHash: s.headerHash,
		StorageProof:      proof,
		Lane:              lane,
		NoncesStart:       start,
		NoncesEnd:         end,
	}
}

func (s *bridgedState) deliveryProof(lane types.LaneID) *types.MessagesDeliveryProof {
	proof, err := s.builder.Prove(InboundLaneStateStorageKey(testPallet, lane))
	require.NoError(s.t, err)

	return &types.MessagesDeliveryProof{
		BridgedHeaderHash: s.headerHash,
		StorageProof:      proof,
		Lane:              lane,
	}
}

type settleCall struct {
	lane           types.LaneID
	confirmed      types.DeliveredMessages
	relayers       []types.UnrewardedRelayer
	confirmRelayer address.Address
	at             abi.ChainEpoch
}

// fakeMarket quotes a fixed fee and keeps orders in memory.
type fakeMarket struct {
	fee      types.BigInt
	notReady bool

	collectErr error
	settleErr  error

	collected []types.BigInt
	orders    map[types.MessageKey]types.BigInt
	settled   map[types.MessageKey]bool
	settles   []settleCall
}

func newFakeMarket(fee uint64) *fakeMarket {
	return &fakeMarket{
		fee:     types.NewInt(fee),
		orders:  make(map[types.MessageKey]types.BigInt),
		settled: make(map[types.MessageKey]bool),
	}
}

func (m *fakeMarket) MarketFee(ctx context.Context) (types.BigInt, bool, error) {
	if m.notReady {
		return types.BigInt{}, false, nil
	}
	return m.fee, true, nil
}

func (m *fakeMarket) CollectFee(ctx context.Context, submitter types.RawOrigin, fee types.BigInt) error {
	if m.collectErr != nil {
		return m.collectErr
	}
	m.collected = append(m.collected, fee)
	return nil
}

func (m *fakeMarket) CreateOrder(ctx context.Context, key types.MessageKey, fee types.BigInt, at abi.ChainEpoch) error {
	m.orders[key] = fee
	return nil
}

func (m *fakeMarket) SettleRewards(ctx context.Context, lane types.LaneID, confirmed types.DeliveredMessages, relayers []types.UnrewardedRelayer, confirmRelayer address.Address, at abi.ChainEpoch) error {
	m.settles = append(m.settles, settleCall{
		lane:           lane,
		confirmed:      confirmed,
		relayers:       relayers,
		confirmRelayer: confirmRelayer,
		at:             at,
	})
	if m.settleErr != nil {
		return m.settleErr
	}
	for n := confirmed.Begin; n <= confirmed.End; n++ {
		m.settled[types.MessageKey{Lane: lane, Nonce: n}] = true
	}
	return nil
}

func (m *fakeMarket) IsSettled(ctx context.Context, key types.MessageKey) (bool, error) {
	return m.settled[key], nil
}

// laneRuntime is the dispatch decoder, validator and executor in one.
type laneRuntime struct {
	receiveErr  error
	validateErr error
	minWeight   types.Weight
	execErr     error

	dispatched []string
}

func (rt *laneRuntime) DecodeCall(b []byte) (dispatch.Call, error) {
	return string(b), nil
}

func (rt *laneRuntime) CheckReceivingBeforeDispatch(relayer address.Address, call dispatch.Call) error {
	return rt.receiveErr
}

func (rt *laneRuntime) Validate(relayer, origin address.Address, call dispatch.Call) error {
	return rt.validateErr
}

func (rt *laneRuntime) DispatchInfo(call dispatch.Call) types.Weight {
	return rt.minWeight
}

func (rt *laneRuntime) Dispatch(ctx context.Context, origin address.Address, call dispatch.Call) (types.Weight, error) {
	rt.dispatched = append(rt.dispatched, call.(string))
	return rt.minWeight, rt.execErr
}

type testEnv struct {
	mgr     *Manager
	store   *Store
	market  *fakeMarket
	runtime *laneRuntime
	bridged *bridgedState
}

func testConfig() Config {
	return Config{
		SelfChain:                   selfChain,
		BridgedChain:                bridgedChain,
		BridgedMessagesPallet:       testPallet,
		ActiveLanes:                 []types.LaneID{testLane},
		MaxPendingMessages:          32,
		MaxBridgedExtrinsicSize:     6000,
		MaxBridgedExtrinsicWeight:   1000000,
		MaxUnrewardedRelayerEntries: 8,
		MaxUnconfirmedMessages:      16,
		MaxMessagesToPruneAtOnce:    10,
	}
}

func newTestEnv(t *testing.T, cfg Config) *testEnv {
	store := NewStore(ds_sync.MutexWrap(ds.NewMapDatastore()))
	market := newFakeMarket(10)
	rt := &laneRuntime{minWeight: 100}
	bridged := newBridgedState(t)

	mgr := NewManager(ManagerParams{
		Config:     cfg,
		Store:      store,
		Anchor:     bridged,
		Dispatcher: dispatch.NewDispatcher(testSpecVersion, rt, rt, rt, nil),
		Market:     market,
	})

	return &testEnv{
		mgr:     mgr,
		store:   store,
		market:  market,
		runtime: rt,
		bridged: bridged,
	}
}
