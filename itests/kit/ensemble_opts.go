package kit

import (
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/feemarket"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/messages"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

type EnsembleOpt func(opts *ensembleOpts) error

type ensembleOpts struct {
	lanes       []types.LaneID
	specVersion uint32

	market             feemarket.Config
	delaySlashPerBlock uint64

	// maxFutureHeaders gates header publication into the peer's pool. The
	// default is effectively unbounded so tests can jump heights freely;
	// pool behavior itself is pinned by the finality tests.
	maxFutureHeaders int64

	msgTweaks []func(*messages.Config)
}

var DefaultEnsembleOpts = ensembleOpts{
	lanes:              []types.LaneID{DefaultLane},
	specVersion:        7,
	market:             DefaultFeeMarketConfig(),
	delaySlashPerBlock: 2,
	maxFutureHeaders:   1 << 20,
}

// DefaultFeeMarketConfig keeps the settlement arithmetic legible: a 100 fee
// splits into base fee 40, slot reward 20 and a 16/4 message/confirm split;
// one missed slot slashes 200 of a 1000 collateral.
func DefaultFeeMarketConfig() feemarket.Config {
	return feemarket.Config{
		AssignedRelayersNumber:      3,
		SlotBlocks:                  50,
		CollateralPerOrder:          types.NewInt(1000),
		BaseFeeRatio:                400_000,
		AssignedRelayersRewardRatio: 500_000,
		MessageRelayersRewardRatio:  800_000,
		ConfirmRelayersRewardRatio:  200_000,
		AssignedRelayerSlashRatio:   200_000,
		SlashProtect:                types.NewInt(0),
	}
}

// Lanes replaces the set of lanes both ends serve.
func Lanes(lanes ...types.LaneID) EnsembleOpt {
	return func(opts *ensembleOpts) error {
		opts.lanes = lanes
		return nil
	}
}

// SpecVersion sets the runtime spec version both dispatchers expect.
func SpecVersion(v uint32) EnsembleOpt {
	return func(opts *ensembleOpts) error {
		opts.specVersion = v
		return nil
	}
}

// FeeMarket replaces the fee market configuration of both ends.
func FeeMarket(cfg feemarket.Config) EnsembleOpt {
	return func(opts *ensembleOpts) error {
		opts.market = cfg
		return nil
	}
}

// DelaySlashPerBlock sets the linear per-block penalty charged on top of the
// collateral ratio when a delivery lands past the final deadline.
func DelaySlashPerBlock(perBlock uint64) EnsembleOpt {
	return func(opts *ensembleOpts) error {
		opts.delaySlashPerBlock = perBlock
		return nil
	}
}

// MaxFutureHeaders tightens the pool gate applied when one end publishes a
// sealed header to its peer.
func MaxFutureHeaders(n int64) EnsembleOpt {
	return func(opts *ensembleOpts) error {
		opts.maxFutureHeaders = n
		return nil
	}
}

// MessagesConfig applies a tweak to the lane configuration of both ends
// after the defaults are filled in.
func MessagesConfig(tweak func(cfg *messages.Config)) EnsembleOpt {
	return func(opts *ensembleOpts) error {
		opts.msgTweaks = append(opts.msgTweaks, tweak)
		return nil
	}
}
