package syscalls

import (
	"fmt"

	"github.com/starknet-syscalls/syscallhost/execution"
	"github.com/starknet-syscalls/syscallhost/felt"
)

// EntryPointInput is what a nested entry point is invoked with: enough
// identity for call_contract, library_call and deploy to each shape it
// differently (spec §4.8's shared call-helper semantics).
type EntryPointInput struct {
	ContractAddress felt.Address
	CallerAddress   felt.Address
	// ClassHash overrides which class's code runs; nil means "look up the
	// class currently installed at ContractAddress" (call_contract),
	// non-nil means "run this class's code against ContractAddress's
	// storage" (library_call) or "run this class's constructor" (deploy).
	ClassHash      *felt.ClassHash
	Selector       felt.Felt
	EntryPointType execution.EntryPointType
	CallType       execution.CallType
	Calldata       []felt.Felt
}

// ExecuteEntryPoint constructs a fresh Handler for a sub-call, drives it
// to completion via the host's ContractRunner, validates its post-run
// state, merges its storage accumulators into h, and returns its result
// (spec §4.8, §9: every sub-call gets a fresh handler, never a shared one).
func (h *Handler) ExecuteEntryPoint(in EntryPointInput) (execution.Result, error) {
	if err := h.Meter.ChargeEntryPoint(); err != nil {
		return execution.Result{}, err
	}

	classHash := in.ClassHash
	if classHash == nil {
		resolved, err := h.host.State.GetClassHashAt(in.ContractAddress)
		if err != nil {
			return execution.Result{}, fmt.Errorf("syscalls: resolving class for %s: %w", in.ContractAddress.String(), err)
		}
		classHash = &resolved
	}

	codeAddress := in.ContractAddress

	syscallPtr := h.Memory.AddSegment()
	child, err := NewHandler(h.host, h.Memory, HandlerInput{
		ContractAddress: in.ContractAddress,
		CallerAddress:   in.CallerAddress,
		CodeAddress:     codeAddress,
		ClassHash:       classHash,
		EntryPointType:  in.EntryPointType,
		CallType:        in.CallType,
		Selector:        in.Selector,
		Calldata:        in.Calldata,
		InitialGas:      h.Meter.Remaining(),
		Depth:           h.depth + 1,
	}, syscallPtr)
	if err != nil {
		return execution.Result{}, err
	}

	finalPtr, retdata, runErr := h.host.Runner.Run(child)
	if runErr != nil {
		return execution.Result{}, fmt.Errorf("syscalls: executing entry point: %w", runErr)
	}

	failed, revertError := false, ""
	if postErr := child.PostRun(finalPtr); postErr != nil {
		failed, revertError = true, postErr.Error()
	}

	gasConsumed := h.Meter.Remaining() - child.Meter.Remaining()
	h.Meter.DebitConsumed(gasConsumed)
	info := child.buildCallInfo(gasConsumed, failed, revertError, retdata)
	h.mergeChild(child, info)

	return info.Result(), nil
}
