package metrics

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"

	"github.com/darwinia-network/darwinia-bridge-substrate/build"
)

// Distributions
var defaultMillisecondsDistribution = view.Distribution(
	0.01, 0.05, 0.1, 0.3, 0.6, 0.8, 1, 2, 3, 4, 5, 6, 8,
	10, 20, 30, 40, 50, 60, 70, 80, 90, 100,
	150, 200, 250, 300, 350, 400, 450, 500,
	600, 700, 800, 900, 1000,
	2000, 5000, 10000, 30000, 60000,
)

var proofSizeDistribution = view.Distribution(
	256, 512, 1024, 2048, 4096, 8192, 16384, 32768,
	65536, 131072, 262144, 524288, 1048576, 2097152, 4194304,
)

var batchSizeDistribution = view.Distribution(0, 1, 2, 3, 5, 7, 10, 15, 25, 35, 50, 70, 90, 130, 200)

// Tags
var (
	// common
	Version, _     = tag.NewKey("version")
	Commit, _      = tag.NewKey("commit")
	Chain, _       = tag.NewKey("chain")
	FailureType, _ = tag.NewKey("failure_type")

	// message lanes
	Lane, _        = tag.NewKey("lane")
	SourceChain, _ = tag.NewKey("source_chain")

	// dispatch
	Outcome, _ = tag.NewKey("outcome")
)

// Measures
var (
	// common
	BridgeInfo = stats.Int64("info", "Arbitrary counter to tag bridge info to", stats.UnitDimensionless)

	// message lanes
	MessageAccepted                         = stats.Int64("messages/accepted", "Counter for messages accepted into an outbound lane", stats.UnitDimensionless)
	MessageDelivered                        = stats.Int64("messages/delivered", "Counter for messages delivered to an inbound lane", stats.UnitDimensionless)
	MessageConfirmed                        = stats.Int64("messages/confirmed", "Counter for delivery confirmations received back", stats.UnitDimensionless)
	MessagePruned                           = stats.Int64("messages/pruned", "Counter for settled messages pruned from outbound lanes", stats.UnitDimensionless)
	MessageProofRejected                    = stats.Int64("messages/proof_rejected", "Counter for rejected messages or delivery proofs", stats.UnitDimensionless)
	MessageProofSizeBytes                   = stats.Int64("messages/proof_size_bytes", "Size of accepted storage proofs", stats.UnitBytes)
	MessageBatchSize                        = stats.Int64("messages/batch_size", "Messages per accepted delivery batch", stats.UnitDimensionless)
	MessageVerificationDurationMilliseconds = stats.Float64("messages/verification_ms", "Duration of storage proof verification", stats.UnitMilliseconds)

	// dispatch
	DispatchOutcome = stats.Int64("dispatch/outcome", "Counter for terminal dispatch outcomes", stats.UnitDimensionless)

	// fee market
	OrderCreated      = stats.Int64("feemarket/order_created", "Counter for created orders", stats.UnitDimensionless)
	OrderSettled      = stats.Int64("feemarket/order_settled", "Counter for settled orders", stats.UnitDimensionless)
	OrderSettledSlot  = stats.Int64("feemarket/order_settled_slot", "Slot index orders were settled in", stats.UnitDimensionless)
	RelayerSlashed    = stats.Int64("feemarket/relayer_slashed", "Counter for relayer slashes", stats.UnitDimensionless)
	RewardTransferred = stats.Int64("feemarket/reward_transferred", "Counter for reward transfers executed", stats.UnitDimensionless)
	EnrolledRelayers  = stats.Int64("feemarket/enrolled_relayers", "Current number of enrolled relayers", stats.UnitDimensionless)

	// finality
	HeaderImported    = stats.Int64("finality/header_imported", "Counter for imported bridged headers", stats.UnitDimensionless)
	HeaderFinalized   = stats.Int64("finality/header_finalized", "Counter for finalized bridged headers", stats.UnitDimensionless)
	FinalizedNumber   = stats.Int64("finality/finalized_number", "Number of the finalized bridged header", stats.UnitDimensionless)
	PoolHeaderRefused = stats.Int64("finality/pool_header_refused", "Counter for headers refused by the pool gate", stats.UnitDimensionless)
)

var (
	InfoView = &view.View{
		Name:        "info",
		Description: "Bridge node information",
		Measure:     BridgeInfo,
		Aggregation: view.LastValue(),
		TagKeys:     []tag.Key{Version, Commit, Chain},
	}
	MessageAcceptedView = &view.View{
		Measure:     MessageAccepted,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{Lane},
	}
	MessageDeliveredView = &view.View{
		Measure:     MessageDelivered,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{Lane},
	}
	MessageConfirmedView = &view.View{
		Measure:     MessageConfirmed,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{Lane},
	}
	MessagePrunedView = &view.View{
		Measure:     MessagePruned,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{Lane},
	}
	MessageProofRejectedView = &view.View{
		Measure:     MessageProofRejected,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{Lane, FailureType},
	}
	MessageProofSizeView = &view.View{
		Measure:     MessageProofSizeBytes,
		Aggregation: proofSizeDistribution,
		TagKeys:     []tag.Key{Lane},
	}
	MessageBatchSizeView = &view.View{
		Measure:     MessageBatchSize,
		Aggregation: batchSizeDistribution,
		TagKeys:     []tag.Key{Lane},
	}
	MessageVerificationDurationView = &view.View{
		Measure:     MessageVerificationDurationMilliseconds,
		Aggregation: defaultMillisecondsDistribution,
		TagKeys:     []tag.Key{Lane},
	}
	DispatchOutcomeView = &view.View{
		Measure:     DispatchOutcome,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{SourceChain, Outcome},
	}
	OrderCreatedView = &view.View{
		Measure:     OrderCreated,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{Lane},
	}
	OrderSettledView = &view.View{
		Measure:     OrderSettled,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{Lane},
	}
	OrderSettledSlotView = &view.View{
		Measure:     OrderSettledSlot,
		Aggregation: batchSizeDistribution,
		TagKeys:     []tag.Key{Lane},
	}
	RelayerSlashedView = &view.View{
		Measure:     RelayerSlashed,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{Lane, FailureType},
	}
	RewardTransferredView = &view.View{
		Measure:     RewardTransferred,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{Lane},
	}
	EnrolledRelayersView = &view.View{
		Measure:     EnrolledRelayers,
		Aggregation: view.LastValue(),
	}
	HeaderImportedView = &view.View{
		Measure:     HeaderImported,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{Chain},
	}
	HeaderFinalizedView = &view.View{
		Measure:     HeaderFinalized,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{Chain},
	}
	FinalizedNumberView = &view.View{
		Measure:     FinalizedNumber,
		Aggregation: view.LastValue(),
		TagKeys:     []tag.Key{Chain},
	}
	PoolHeaderRefusedView = &view.View{
		Measure:     PoolHeaderRefused,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{Chain, FailureType},
	}
)

// DefaultViews is an array of OpenCensus views for metric gathering purposes
var DefaultViews = []*view.View{
	InfoView,
	MessageAcceptedView,
	MessageDeliveredView,
	MessageConfirmedView,
	MessagePrunedView,
	MessageProofRejectedView,
	MessageProofSizeView,
	MessageBatchSizeView,
	MessageVerificationDurationView,
	DispatchOutcomeView,
	OrderCreatedView,
	OrderSettledView,
	OrderSettledSlotView,
	RelayerSlashedView,
	RewardTransferredView,
	EnrolledRelayersView,
	HeaderImportedView,
	HeaderFinalizedView,
	FinalizedNumberView,
	PoolHeaderRefusedView,
}

// SinceInMilliseconds returns the duration of time since the provide time as a float64.
func SinceInMilliseconds(startTime time.Time) float64 {
	return float64(time.Since(startTime).Milliseconds())
}

// Timer is a function stopwatch, calling it starts the timer,
// calling the returned function will record the duration.
func Timer(ctx context.Context, m *stats.Float64Measure) func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		stats.Record(ctx, m.M(SinceInMilliseconds(start)))
		return time.Since(start)
	}
}

// RecordBridgeInfo tags the running build so dashboards can pivot on it.
func RecordBridgeInfo(ctx context.Context, chain string) {
	ctx, _ = tag.New(ctx,
		tag.Upsert(Version, build.BuildVersion),
		tag.Upsert(Commit, build.CurrentCommit),
		tag.Upsert(Chain, chain),
	)
	stats.Record(ctx, BridgeInfo.M(1))
}
