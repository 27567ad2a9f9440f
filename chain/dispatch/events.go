package dispatch

import (
	"github.com/filecoin-project/go-address"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

// Outcome is the terminal state of one message handed to the dispatcher.
type Outcome string

const (
	// OutcomeRejected: the message was rejected by the lane before the
	// dispatch stage (e.g. undecodable payload).
	OutcomeRejected Outcome = "rejected"
	// OutcomeVersionMismatch: the payload was encoded against a different
	// runtime spec version; the call was not decoded.
	OutcomeVersionMismatch Outcome = "version_mismatch"
	// OutcomeCallDecodeFailed: the call bytes did not decode.
	OutcomeCallDecodeFailed Outcome = "call_decode_failed"
	// OutcomeSignatureMismatch: the target account origin proof is invalid.
	OutcomeSignatureMismatch Outcome = "signature_mismatch"
	// OutcomeCallValidateFailed: the call validator refused the call.
	OutcomeCallValidateFailed Outcome = "call_validate_failed"
	// OutcomeWeightMismatch: the declared weight is below the executor's
	// estimate for the call.
	OutcomeWeightMismatch Outcome = "weight_mismatch"
	// OutcomePaymentFailed: the pay-at-target dispatch fee could not be
	// withdrawn from the derived origin.
	OutcomePaymentFailed Outcome = "payment_failed"
	// OutcomeDispatched: the call was executed; Err carries the execution
	// error if the call itself failed.
	OutcomeDispatched Outcome = "dispatched"
)

// Event is the single terminal record emitted for every message handed to
// the dispatcher, whatever its fate.
type Event struct {
	SourceChain types.ChainID
	ID          types.MessageKey
	Outcome     Outcome

	// Version mismatches.
	ExpectedVersion uint32 `json:",omitempty"`
	GotVersion      uint32 `json:",omitempty"`

	// Weight mismatches.
	ExpectedWeight types.Weight `json:",omitempty"`
	DeclaredWeight types.Weight `json:",omitempty"`

	// Payment failures.
	Payer address.Address

	// Decode, validation or execution error detail, when there is one.
	Err string `json:",omitempty"`
}

// DispatchResult is what the message lane records for a delivered message.
type DispatchResult struct {
	// Ok reports whether the call was executed and succeeded.
	Ok bool

	// UnspentWeight is the declared weight minus what execution actually
	// consumed; the lane refunds it to the submitting side's accounting.
	UnspentWeight types.Weight

	// FeePaidDuringDispatch is set when the dispatch fee was withdrawn from
	// the derived origin during dispatch (pay-at-target messages).
	FeePaidDuringDispatch bool
}
