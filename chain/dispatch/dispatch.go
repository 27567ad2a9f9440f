// Package dispatch executes the calls carried by verified bridge messages.
// Every message is run through a fixed admission pipeline (spec version,
// call decode, origin proof, validation, weight, fee) and ends in exactly
// one terminal event; admission failures are outcomes, not errors, so a bad
// message can never block the lane.
package dispatch

import (
	"context"
	"errors"

	"github.com/filecoin-project/go-address"
	logging "github.com/ipfs/go-log/v2"
	"go.opencensus.io/stats"
	"go.opencensus.io/tag"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
	"github.com/darwinia-network/darwinia-bridge-substrate/journal"
	"github.com/darwinia-network/darwinia-bridge-substrate/lib/sigs"
	"github.com/darwinia-network/darwinia-bridge-substrate/metrics"
)

var log = logging.Logger("dispatch")

var (
	errMissingTargetSig  = errors.New("target signature is missing")
	errUnknownOriginKind = errors.New("unknown call origin kind")
)

// Call is the executable command a payload's opaque bytes decode to. The
// dispatcher never inspects it; only the injected decoder, validator and
// executor agree on the concrete set.
type Call interface{}

// CallDecoder turns the opaque call bytes of a payload into an executable
// call. Decoding is deferred until the payload's spec version has been
// checked, since bytes encoded against another runtime version may decode
// into garbage instead of failing.
type CallDecoder interface {
	DecodeCall(b []byte) (Call, error)
}

// CallValidator vets decoded calls on behalf of the embedding runtime.
type CallValidator interface {
	// CheckReceivingBeforeDispatch runs when a message is delivered, before
	// it is accepted for dispatch.
	CheckReceivingBeforeDispatch(relayer address.Address, call Call) error

	// Validate runs right before execution, once the dispatch origin is
	// known.
	Validate(relayer address.Address, origin address.Address, call Call) error
}

// CallExecutor prices and executes calls.
type CallExecutor interface {
	// DispatchInfo returns the minimal weight executing the call will
	// consume. Messages declaring less are refused, or calls could be
	// bought below price.
	DispatchInfo(call Call) types.Weight

	// Dispatch executes the call under the given origin and returns the
	// weight actually consumed. An error means the call itself failed;
	// consumed weight is still meaningful.
	Dispatch(ctx context.Context, origin address.Address, call Call) (types.Weight, error)
}

// FeePayer withdraws the dispatch fee from the derived origin right before
// execution, for messages that opted to pay at the target chain.
type FeePayer func(ctx context.Context, payer address.Address, w types.Weight) error

const (
	evtTypeMessageOutcome = iota
)

// Dispatcher runs verified messages through the admission pipeline and
// executes them under accounts derived from their proven source origin.
type Dispatcher struct {
	specVersion uint32

	decoder   CallDecoder
	validator CallValidator
	executor  CallExecutor

	journal  journal.Journal
	evtTypes [1]journal.EventType
}

func NewDispatcher(specVersion uint32, decoder CallDecoder, validator CallValidator, executor CallExecutor, j journal.Journal) *Dispatcher {
	if j == nil {
		j = journal.NilJournal()
	}
	return &Dispatcher{
		specVersion: specVersion,
		decoder:     decoder,
		validator:   validator,
		executor:    executor,
		journal:     j,
		evtTypes: [...]journal.EventType{
			evtTypeMessageOutcome: j.RegisterEventType("dispatch", "message_outcome"),
		},
	}
}

// DispatchWeight is the weight the lane must budget for dispatching the
// message.
func (d *Dispatcher) DispatchWeight(msg *types.MessagePayload) types.Weight {
	if msg == nil {
		return 0
	}
	return msg.Weight
}

// PreDispatch vets an incoming message before the lane accepts it for
// delivery. A payload that will be refused during dispatch is still fine
// here; only a decodable call the validator refuses to receive blocks
// delivery.
func (d *Dispatcher) PreDispatch(relayer address.Address, msg *types.MessagePayload) error {
	if msg == nil {
		// will be rejected in dispatch, still ok here
		return nil
	}

	call, err := d.decoder.DecodeCall(msg.Call)
	if err != nil {
		// surfaces as a decode outcome during dispatch
		return nil
	}
	return d.validator.CheckReceivingBeforeDispatch(relayer, call)
}

// Dispatch runs one delivered message to its terminal outcome. A nil msg
// records a message the lane rejected before the dispatch stage. The
// returned event is also journaled; callers get exactly one per message.
func (d *Dispatcher) Dispatch(ctx context.Context, sourceChain, targetChain types.ChainID, relayer address.Address, id types.MessageKey, msg *types.MessagePayload, payFee FeePayer) (DispatchResult, Event) {
	if msg == nil {
		log.Debugw("message rejected before dispatch", "source", sourceChain, "lane", id.Lane, "nonce", id.Nonce)
		return DispatchResult{}, d.emit(ctx, Event{SourceChain: sourceChain, ID: id, Outcome: OutcomeRejected})
	}

	// everything below refunds the full declared weight on refusal
	result := DispatchResult{UnspentWeight: msg.Weight}

	if msg.SpecVersion != d.specVersion {
		log.Debugw("spec version mismatch", "source", sourceChain, "lane", id.Lane, "nonce", id.Nonce,
			"expected", d.specVersion, "got", msg.SpecVersion)
		return result, d.emit(ctx, Event{
			SourceChain:     sourceChain,
			ID:              id,
			Outcome:         OutcomeVersionMismatch,
			ExpectedVersion: d.specVersion,
			GotVersion:      msg.SpecVersion,
		})
	}

	call, err := d.decoder.DecodeCall(msg.Call)
	if err != nil {
		log.Debugw("failed to decode call", "source", sourceChain, "lane", id.Lane, "nonce", id.Nonce, "err", err)
		return result, d.emit(ctx, Event{SourceChain: sourceChain, ID: id, Outcome: OutcomeCallDecodeFailed, Err: err.Error()})
	}

	origin, originEvt := d.deriveOrigin(sourceChain, targetChain, id, msg)
	if originEvt != nil {
		return result, d.emit(ctx, *originEvt)
	}

	if err := d.validator.Validate(relayer, origin, call); err != nil {
		log.Debugw("call rejected by validator", "source", sourceChain, "lane", id.Lane, "nonce", id.Nonce, "err", err)
		return result, d.emit(ctx, Event{SourceChain: sourceChain, ID: id, Outcome: OutcomeCallValidateFailed, Err: err.Error()})
	}

	// the declared weight must cover the call's estimate, or calls could be
	// dispatched at a lower price than execution
	expectedWeight := d.executor.DispatchInfo(call)
	if msg.Weight.LessThan(expectedWeight) {
		log.Debugw("declared weight too low", "source", sourceChain, "lane", id.Lane, "nonce", id.Nonce,
			"expected", expectedWeight, "got", msg.Weight)
		return result, d.emit(ctx, Event{
			SourceChain:    sourceChain,
			ID:             id,
			Outcome:        OutcomeWeightMismatch,
			ExpectedWeight: expectedWeight,
			DeclaredWeight: msg.Weight,
		})
	}

	if msg.DispatchFeePayment == types.PayFeeAtTargetChain {
		err := payFee(ctx, origin, msg.Weight)
		if err != nil {
			log.Debugw("failed to pay dispatch fee", "source", sourceChain, "lane", id.Lane, "nonce", id.Nonce,
				"payer", origin, "err", err)
			return result, d.emit(ctx, Event{SourceChain: sourceChain, ID: id, Outcome: OutcomePaymentFailed, Payer: origin, Err: err.Error()})
		}
		result.FeePaidDuringDispatch = true
	}

	actualWeight, execErr := d.executor.Dispatch(ctx, origin, call)
	result.Ok = execErr == nil
	result.UnspentWeight = msg.Weight.SaturatingSub(actualWeight)

	evt := Event{SourceChain: sourceChain, ID: id, Outcome: OutcomeDispatched}
	if execErr != nil {
		evt.Err = execErr.Error()
	}
	log.Debugw("message dispatched", "source", sourceChain, "lane", id.Lane, "nonce", id.Nonce,
		"ok", result.Ok, "weight", actualWeight, "of", msg.Weight)
	return result, d.emit(ctx, evt)
}

func (d *Dispatcher) deriveOrigin(sourceChain, targetChain types.ChainID, id types.MessageKey, msg *types.MessagePayload) (address.Address, *Event) {
	mismatch := func(err error) *Event {
		log.Debugw("origin proof is invalid", "source", sourceChain, "lane", id.Lane, "nonce", id.Nonce, "err", err)
		return &Event{SourceChain: sourceChain, ID: id, Outcome: OutcomeSignatureMismatch, Err: err.Error()}
	}

	switch msg.Origin.Kind {
	case types.CallOriginSourceRoot:
		addr, err := types.DeriveRootAccount(sourceChain)
		if err != nil {
			return address.Undef, mismatch(err)
		}
		return addr, nil

	case types.CallOriginTargetAccount:
		if msg.Origin.TargetSig == nil {
			return address.Undef, mismatch(errMissingTargetSig)
		}
		target, err := sigs.PublicKeyAddress(msg.Origin.TargetSig.Type, msg.Origin.TargetPub)
		if err != nil {
			return address.Undef, mismatch(err)
		}

		digest := types.AccountOwnershipDigest(msg.Call, msg.Origin.SourceAccount, msg.SpecVersion, sourceChain, targetChain)
		if err := sigs.Verify(msg.Origin.TargetSig, target, digest); err != nil {
			return address.Undef, mismatch(err)
		}
		return target, nil

	case types.CallOriginSourceAccount:
		addr, err := types.DeriveSourceAccount(sourceChain, msg.Origin.SourceAccount)
		if err != nil {
			return address.Undef, mismatch(err)
		}
		return addr, nil

	default:
		return address.Undef, mismatch(errUnknownOriginKind)
	}
}

func (d *Dispatcher) emit(ctx context.Context, evt Event) Event {
	ctx, _ = tag.New(ctx,
		tag.Upsert(metrics.SourceChain, evt.SourceChain.String()),
		tag.Upsert(metrics.Outcome, string(evt.Outcome)),
	)
	stats.Record(ctx, metrics.DispatchOutcome.M(1))

	journal.MaybeAddEntry(d.journal, d.evtTypes[evtTypeMessageOutcome], func() interface{} {
		return evt
	})
	return evt
}
