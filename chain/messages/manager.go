package messages

import (
	"context"
	"errors"
	"sync"

	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	logging "github.com/ipfs/go-log/v2"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/dispatch"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/finality"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
	"github.com/darwinia-network/darwinia-bridge-substrate/journal"
	"github.com/darwinia-network/darwinia-bridge-substrate/metrics"
)

var log = logging.Logger("messages")

// Config carries the lane parameters of one bridge deployment.
type Config struct {
	// SelfChain and BridgedChain identify the two ends of the bridge.
	SelfChain    types.ChainID
	BridgedChain types.ChainID

	// BridgedMessagesPallet names the bridged chain's messages pallet as
	// it appears in proved storage keys.
	BridgedMessagesPallet string

	// ActiveLanes lists the lanes this deployment serves.
	ActiveLanes []types.LaneID

	// MaxPendingMessages bounds sent-but-unconfirmed messages per outbound
	// lane; further sends are refused until confirmations catch up.
	MaxPendingMessages uint64

	// MaxBridgedExtrinsicSize and MaxBridgedExtrinsicWeight mirror the
	// bridged chain's transaction limits. Outbound messages the bridged
	// chain could not physically deliver are refused at send time.
	MaxBridgedExtrinsicSize   uint64
	MaxBridgedExtrinsicWeight types.Weight

	// MaxUnrewardedRelayerEntries and MaxUnconfirmedMessages bound the
	// inbound lane's unconfirmed delivery bookkeeping.
	MaxUnrewardedRelayerEntries uint64
	MaxUnconfirmedMessages      uint64

	// MaxMessagesToPruneAtOnce caps outbound pruning work per call.
	MaxMessagesToPruneAtOnce uint64
}

// FeeMarket is what the lane ledger needs from the fee market: a quote for
// admitting new messages, fee custody, one order per accepted message and
// settlement of confirmed deliveries.
type FeeMarket interface {
	// MarketFee quotes the minimal acceptable delivery fee. ok is false
	// while too few relayers are enrolled to back an order.
	MarketFee(ctx context.Context) (fee types.BigInt, ok bool, err error)

	// CollectFee moves the fee from the submitter into the relayer fund.
	CollectFee(ctx context.Context, submitter types.RawOrigin, fee types.BigInt) error

	// CreateOrder opens the delivery order backing an accepted message.
	CreateOrder(ctx context.Context, key types.MessageKey, fee types.BigInt, at abi.ChainEpoch) error

	// SettleRewards turns a newly confirmed range into relayer payouts and
	// slashes, consuming the orders it settles. relayers is the unrewarded
	// relayers set proved out of the bridged chain, in delivery order.
	SettleRewards(ctx context.Context, lane types.LaneID, confirmed types.DeliveredMessages, relayers []types.UnrewardedRelayer, confirmRelayer address.Address, at abi.ChainEpoch) error

	// IsSettled reports whether the order of a message was consumed.
	IsSettled(ctx context.Context, key types.MessageKey) (bool, error)
}

// LanePolicy decides which origins may send into which lanes.
type LanePolicy interface {
	AcceptsMessage(origin types.RawOrigin, lane types.LaneID) bool
}

// NewActiveLanesPolicy accepts any origin on the given lanes and nothing
// anywhere else.
func NewActiveLanesPolicy(lanes []types.LaneID) LanePolicy {
	p := activeLanesPolicy{lanes: make(map[types.LaneID]struct{}, len(lanes))}
	for _, lane := range lanes {
		p.lanes[lane] = struct{}{}
	}
	return p
}

type activeLanesPolicy struct {
	lanes map[types.LaneID]struct{}
}

func (p activeLanesPolicy) AcceptsMessage(_ types.RawOrigin, lane types.LaneID) bool {
	_, ok := p.lanes[lane]
	return ok
}

// BridgedPolicy bounds what the bridged chain will physically accept for
// delivery.
type BridgedPolicy interface {
	// MaxIncomingMessageSize is the largest encoded payload the bridged
	// chain accepts.
	MaxIncomingMessageSize() uint64

	// VerifyDispatchWeight reports whether the declared dispatch weight
	// fits the bridged chain's budget.
	VerifyDispatchWeight(payload []byte, w types.Weight) bool
}

// NewExtrinsicBoundsPolicy derives delivery bounds from the bridged chain's
// raw transaction limits.
func NewExtrinsicBoundsPolicy(maxExtrinsicSize uint64, maxExtrinsicWeight types.Weight) BridgedPolicy {
	return extrinsicBoundsPolicy{maxSize: maxExtrinsicSize, maxWeight: maxExtrinsicWeight}
}

type extrinsicBoundsPolicy struct {
	maxSize   uint64
	maxWeight types.Weight
}

// The delivery transaction carries the message inside a storage proof plus
// its own envelope, so only two thirds of the raw size limit is available
// to the message itself, and half the weight limit to its dispatch.
func (p extrinsicBoundsPolicy) MaxIncomingMessageSize() uint64 {
	return p.maxSize / 3 * 2
}

func (p extrinsicBoundsPolicy) VerifyDispatchWeight(_ []byte, w types.Weight) bool {
	return !w.GreaterThan(p.maxWeight / 2)
}

// DispatchFeePayer settles the dispatch fee of messages that elected to pay
// at the target chain: payer owes relayer for the given weight.
type DispatchFeePayer func(ctx context.Context, payer, relayer address.Address, w types.Weight) error

const (
	evtTypeMessageAccepted = iota
	evtTypeBatchDelivered
	evtTypeLaneAdvanced
)

// Manager is the lane ledger. It accepts outbound messages, applies proved
// inbound deliveries and delivery confirmations, and drives the fee market
// hooks those transitions owe. One mutex serializes all lane operations;
// within a batch everything happens deterministically in nonce order.
type Manager struct {
	cfg Config

	lk sync.Mutex

	store   *Store
	anchor  Anchor
	disp    *dispatch.Dispatcher
	market  FeeMarket
	lanes   LanePolicy
	bridged BridgedPolicy
	payFee  DispatchFeePayer

	journal  journal.Journal
	evtTypes [3]journal.EventType
}

// ManagerParams collects what a Manager is built from. Lanes and Bridged
// default to policies derived from Config; PayDispatchFee may stay nil, in
// which case pay-at-target messages fail their fee payment.
type ManagerParams struct {
	Config     Config
	Store      *Store
	Anchor     Anchor
	Dispatcher *dispatch.Dispatcher
	Market     FeeMarket
	Journal    journal.Journal

	Lanes          LanePolicy
	Bridged        BridgedPolicy
	PayDispatchFee DispatchFeePayer
}

func NewManager(params ManagerParams) *Manager {
	j := params.Journal
	if j == nil {
		j = journal.NilJournal()
	}
	lanes := params.Lanes
	if lanes == nil {
		lanes = NewActiveLanesPolicy(params.Config.ActiveLanes)
	}
	bridged := params.Bridged
	if bridged == nil {
		bridged = NewExtrinsicBoundsPolicy(params.Config.MaxBridgedExtrinsicSize, params.Config.MaxBridgedExtrinsicWeight)
	}

	return &Manager{
		cfg:     params.Config,
		store:   params.Store,
		anchor:  params.Anchor,
		disp:    params.Dispatcher,
		market:  params.Market,
		lanes:   lanes,
		bridged: bridged,
		payFee:  params.PayDispatchFee,
		journal: j,
		evtTypes: [...]journal.EventType{
			evtTypeMessageAccepted: j.RegisterEventType("messages", "accepted"),
			evtTypeBatchDelivered:  j.RegisterEventType("messages", "batch_delivered"),
			evtTypeLaneAdvanced:    j.RegisterEventType("messages", "lane_advanced"),
		},
	}
}

// OutboundLaneData returns the outbound state of a lane.
func (m *Manager) OutboundLaneData(ctx context.Context, lane types.LaneID) (*types.OutboundLaneData, error) {
	m.lk.Lock()
	defer m.lk.Unlock()

	return m.store.OutboundLane(ctx, lane)
}

// InboundLaneData returns the inbound state of a lane.
func (m *Manager) InboundLaneData(ctx context.Context, lane types.LaneID) (*types.InboundLaneData, error) {
	m.lk.Lock()
	defer m.lk.Unlock()

	return m.store.InboundLane(ctx, lane)
}

// OutboundMessage returns an accepted message still held in outbound
// storage. Relayers read these to assemble delivery transactions.
func (m *Manager) OutboundMessage(ctx context.Context, key types.MessageKey) (*types.MessageData, error) {
	m.lk.Lock()
	defer m.lk.Unlock()

	return m.store.GetMessage(ctx, key)
}

func (m *Manager) dispatchFeePayer(relayer address.Address) dispatch.FeePayer {
	return func(ctx context.Context, payer address.Address, w types.Weight) error {
		if m.payFee == nil {
			return xerrors.New("dispatch fee payment at the target chain is not configured")
		}
		return m.payFee(ctx, payer, relayer, w)
	}
}

func (m *Manager) rejectProof(ctx context.Context, lane types.LaneID, err error) {
	ctx, _ = tag.New(ctx,
		tag.Upsert(metrics.Lane, lane.String()),
		tag.Upsert(metrics.FailureType, proofFailureType(err)),
	)
	stats.Record(ctx, metrics.MessageProofRejected.M(1))
}

func proofFailureType(err error) string {
	switch {
	case errors.Is(err, ErrProofEmpty):
		return "empty"
	case errors.Is(err, ErrProofCountMismatch):
		return "count_mismatch"
	case errors.Is(err, ErrProofMissingMessage):
		return "missing_message"
	case errors.Is(err, ErrProofDecodeFailure):
		return "decode_failure"
	case errors.Is(err, ErrOutOfOrderNonce):
		return "out_of_order_nonce"
	case errors.Is(err, ErrInvalidRelayersState):
		return "invalid_relayers_state"
	case errors.Is(err, finality.ErrUnknownHeader):
		return "unknown_header"
	default:
		return "other"
	}
}
