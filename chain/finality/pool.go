package finality

import (
	"context"
	"errors"

	"github.com/filecoin-project/go-state-types/abi"
	"go.opencensus.io/stats"
	"go.opencensus.io/tag"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
	"github.com/darwinia-network/darwinia-bridge-substrate/metrics"
)

var (
	// ErrAncientHeader rejects a header that competes with an already
	// finalized one. Permanent: resubmission can never succeed.
	ErrAncientHeader = errors.New("header number is at or below the finalized number")

	// ErrKnownHeader rejects a header that was already imported. Permanent.
	ErrKnownHeader = errors.New("header is already imported")

	// ErrTooFarInFuture refuses to hold a header too far above the best
	// known number. Transient: the same header may be accepted once the
	// chain catches up, so it must not be banned.
	ErrTooFarInFuture = errors.New("header is too far in the future")
)

// View is the slice of importer state the pool gate reads.
type View interface {
	BestHeader(ctx context.Context) (*types.BridgedHeader, error)
	FinalizedHeader(ctx context.Context) (*types.BridgedHeader, error)
	HasHeader(ctx context.Context, hash types.Hash) (bool, error)
}

var _ View = (*Store)(nil)

// AcceptIntoPool decides whether an unsigned bridged header may enter the
// pending pool. Callers must treat ErrTooFarInFuture differently from the
// permanent rejections: the header is invalid only at this moment.
func AcceptIntoPool(ctx context.Context, view View, maxFutureNumberDifference int64, h *types.BridgedHeader) error {
	// never hold a header that competes with a finalized one
	finalized, err := view.FinalizedHeader(ctx)
	if err != nil {
		return err
	}
	if finalized != nil && h.Number <= finalized.Number {
		return refused(ctx, ErrAncientHeader, "ancient")
	}

	known, err := view.HasHeader(ctx, h.Hash())
	if err != nil {
		return err
	}
	if known {
		return refused(ctx, ErrKnownHeader, "known")
	}

	// we do not want all future headers in the pool at once
	best, err := view.BestHeader(ctx)
	if err != nil {
		return err
	}
	var bestNumber abi.ChainEpoch
	if best != nil {
		bestNumber = best.Number
	}
	if h.Number > bestNumber && int64(h.Number-bestNumber) > maxFutureNumberDifference {
		return refused(ctx, ErrTooFarInFuture, "too_far_in_future")
	}

	return nil
}

func refused(ctx context.Context, err error, failure string) error {
	ctx, _ = tag.New(ctx, tag.Upsert(metrics.FailureType, failure))
	stats.Record(ctx, metrics.PoolHeaderRefused.M(1))
	return err
}
