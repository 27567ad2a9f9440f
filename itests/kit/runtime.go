package kit

import (
	"context"

	"github.com/filecoin-project/go-address"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/dispatch"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

// Runtime is the dispatch runtime both ends of the test bridge run: calls
// are plain strings, validation and execution succeed unless a test injects
// a failure, and every call that reaches the executor is recorded.
type Runtime struct {
	// DecodeErr, ReceiveErr, ValidateErr and ExecErr inject failures into
	// the corresponding stage of the dispatch pipeline.
	DecodeErr   error
	ReceiveErr  error
	ValidateErr error
	ExecErr     error

	// CallWeight is the weight every call is estimated at and consumes.
	CallWeight types.Weight

	executions []Execution
}

// Execution records one call that reached the executor.
type Execution struct {
	Origin address.Address
	Call   string
}

func NewRuntime() *Runtime {
	return &Runtime{CallWeight: 100}
}

func (rt *Runtime) DecodeCall(b []byte) (dispatch.Call, error) {
	if rt.DecodeErr != nil {
		return nil, rt.DecodeErr
	}
	return string(b), nil
}

func (rt *Runtime) CheckReceivingBeforeDispatch(relayer address.Address, call dispatch.Call) error {
	return rt.ReceiveErr
}

func (rt *Runtime) Validate(relayer, origin address.Address, call dispatch.Call) error {
	return rt.ValidateErr
}

func (rt *Runtime) DispatchInfo(call dispatch.Call) types.Weight {
	return rt.CallWeight
}

func (rt *Runtime) Dispatch(ctx context.Context, origin address.Address, call dispatch.Call) (types.Weight, error) {
	rt.executions = append(rt.executions, Execution{Origin: origin, Call: call.(string)})
	return rt.CallWeight, rt.ExecErr
}

// Executed returns the calls that reached the executor, in order.
func (rt *Runtime) Executed() []string {
	out := make([]string, len(rt.executions))
	for i, e := range rt.executions {
		out[i] = e.Call
	}
	return out
}

// Executions returns the full execution records, in order.
func (rt *Runtime) Executions() []Execution {
	return rt.executions
}
