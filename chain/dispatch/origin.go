package dispatch

import (
	"errors"

	"github.com/filecoin-project/go-address"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

// ErrBadOrigin rejects a send-message call whose local origin is not
// entitled to the payload's claimed call origin.
var ErrBadOrigin = errors.New("origin is not allowed to send messages under the claimed call origin")

// VerifyMessageOrigin checks, on the source chain, that the local sender may
// send a message claiming the payload's call origin:
//
//   - SourceRoot may only be claimed by the root origin;
//   - TargetAccount may only be claimed by the exact signed account the
//     payload names, since the proof signature binds that account;
//   - SourceAccount may be claimed by that account itself, or by root
//     acting on its behalf.
//
// Returns the source account the message is sent from, address.Undef for
// root-originated messages.
func VerifyMessageOrigin(sender types.RawOrigin, payload *types.MessagePayload) (address.Address, error) {
	switch payload.Origin.Kind {
	case types.CallOriginSourceRoot:
		if sender.Kind != types.RawOriginRoot {
			return address.Undef, ErrBadOrigin
		}
		return address.Undef, nil

	case types.CallOriginTargetAccount:
		if sender.Kind != types.RawOriginSigned || !payload.Origin.SentBy(sender.Account) {
			return address.Undef, ErrBadOrigin
		}
		return sender.Account, nil

	case types.CallOriginSourceAccount:
		if sender.Kind == types.RawOriginRoot {
			return address.NewFromBytes(payload.Origin.SourceAccount)
		}
		if sender.Kind == types.RawOriginSigned && payload.Origin.SentBy(sender.Account) {
			return sender.Account, nil
		}
		return address.Undef, ErrBadOrigin

	default:
		return address.Undef, ErrBadOrigin
	}
}
