// Package finality is the bridge's root of trust. The finality engine
// certifies bridged chain headers as final and records them here; the message
// lane verifier reads state roots from this package and from nothing else.
package finality

import (
	"context"
	"errors"

	logging "github.com/ipfs/go-log/v2"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

var log = logging.Logger("finality")

// ErrUnknownHeader is returned when a header hash has not been certified
// final by the finality engine.
var ErrUnknownHeader = errors.New("header is not known to be final")

// Provider is the read side of the finality engine, the sole source of
// trusted state roots for storage proof verification.
type Provider interface {
	// FinalizedStateRoot returns the state root of a finalized bridged
	// header, or ErrUnknownHeader.
	FinalizedStateRoot(ctx context.Context, headerHash types.Hash) (types.Hash, error)

	// FinalizedParaHead returns the encoded head recorded for a parachain at
	// a finalized relay chain header, or ErrUnknownHeader.
	FinalizedParaHead(ctx context.Context, paraID uint32, relayHeaderHash types.Hash) ([]byte, error)
}
