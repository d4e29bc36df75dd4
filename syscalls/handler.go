package syscalls

import (
	"fmt"

	logger "github.com/multiversx/mx-chain-logger-go"

	"github.com/starknet-syscalls/syscallhost/config"
	"github.com/starknet-syscalls/syscallhost/execution"
	"github.com/starknet-syscalls/syscallhost/felt"
	"github.com/starknet-syscalls/syscallhost/state"
	"github.com/starknet-syscalls/syscallhost/vmmem"
)

var log = logger.GetOrCreate("syscallhost/syscalls")

// ContractRunner is the pluggable bytecode-execution collaborator: the
// Cairo instruction set itself is out of scope (spec Non-goals), so
// "running a contract" is reduced to this interface. A real VM step
// loop, or (in tests and the CLI harness) a scripted stand-in that
// issues a pre-programmed sequence of syscalls against h, would
// implement it — the way the teacher's mock/contracts package stands
// in for real compiled WASM bytecode in arwen's own tests.
type ContractRunner interface {
	// Run drives h's entry point to completion, dispatching zero or more
	// syscalls against h, and reports the final syscall-segment pointer
	// reached so the caller can validate it against h's expectation.
	Run(h *Handler) (finalSyscallPtr vmmem.Relocatable, retdata []felt.Felt, err error)
}

// Host is shared by every Handler in one transaction's call tree: the
// state cache, the transaction/block metadata, the gas schedule and the
// bytecode runner. Handlers are constructed fresh per call frame
// (spec §9); the Host is not.
type Host struct {
	State   *state.CachedState
	Tx      *execution.TransactionContext
	Block   *execution.BlockContext
	GasCost *config.GasCost
	Runner  ContractRunner

	// MaxRecursionDepth bounds call_contract/library_call/deploy nesting.
	MaxRecursionDepth int
}

// NewHost builds a Host wiring together the per-transaction collaborators.
func NewHost(st *state.CachedState, tx *execution.TransactionContext, block *execution.BlockContext, cost *config.GasCost, runner ContractRunner) *Host {
	maxDepth := 100
	return &Host{State: st, Tx: tx, Block: block, GasCost: cost, Runner: runner, MaxRecursionDepth: maxDepth}
}

// segmentRange is a handler-authored read-only memory range (spec §4.9);
// the post-run validator rejects any write the guest made into one.
type segmentRange struct {
	start vmmem.Relocatable
	end   vmmem.Relocatable
}

// Handler is the per-call-frame syscall dispatcher (spec §3's "Syscall
// handler instance"). Exactly one is constructed per entry point
// invocation, including every nested call_contract/library_call/deploy
// sub-call, which each get their own fresh Handler (spec §9).
type Handler struct {
	host *Host

	Memory vmmem.Memory

	ContractAddress felt.Address
	CallerAddress   felt.Address
	CodeAddress     felt.Address
	ClassHash       *felt.ClassHash
	EntryPointType  execution.EntryPointType
	CallType        execution.CallType
	Selector        felt.Felt
	Calldata        []felt.Felt

	Meter   *Meter
	Storage *state.ContractStorageState

	Events        []execution.OrderedEvent
	Messages      []execution.OrderedL2ToL1Message
	InternalCalls []*execution.CallInfo

	expectedSyscallPtr vmmem.Relocatable
	readOnlySegments   []segmentRange

	depth int
}

// HandlerInput bundles the per-frame identity NewHandler needs, kept
// separate from Host so the same Host serves every frame in the tree.
type HandlerInput struct {
	ContractAddress felt.Address
	CallerAddress   felt.Address
	CodeAddress     felt.Address
	ClassHash       *felt.ClassHash
	EntryPointType  execution.EntryPointType
	CallType        execution.CallType
	Selector        felt.Felt
	Calldata        []felt.Felt
	InitialGas      uint64
	Depth           int
}

// NewHandler constructs a fresh per-frame Handler bound to shared host
// collaborators and a starting syscall pointer.
func NewHandler(host *Host, mem vmmem.Memory, in HandlerInput, syscallPtr vmmem.Relocatable) (*Handler, error) {
	if in.Depth > host.MaxRecursionDepth {
		return nil, ErrMaxNCallsExceeded
	}

	h := &Handler{
		host:               host,
		Memory:             mem,
		ContractAddress:    in.ContractAddress,
		CallerAddress:      in.CallerAddress,
		CodeAddress:        in.CodeAddress,
		ClassHash:          in.ClassHash,
		EntryPointType:     in.EntryPointType,
		CallType:           in.CallType,
		Selector:           in.Selector,
		Calldata:           in.Calldata,
		Meter:              NewMeter(host.GasCost, in.InitialGas),
		Storage:            state.NewContractStorageState(host.State, in.ContractAddress),
		expectedSyscallPtr: syscallPtr,
		depth:              in.Depth,
	}
	log.Trace("new syscall handler", "contract", in.ContractAddress.String(), "entryPointType", in.EntryPointType.String(), "depth", in.Depth)
	return h, nil
}

// SyscallPtr returns the pointer the next syscall request is expected
// at: the start of a fresh entry point's dedicated segment, or wherever
// the most recent Dispatch call advanced to.
func (h *Handler) SyscallPtr() vmmem.Relocatable {
	return h.expectedSyscallPtr
}

// AllocateSegment adds a fresh VM segment, writes data into it, and
// records it as read-only so the post-run validator rejects any later
// guest write into it (spec §4.9, SUPPLEMENTED FEATURES: allocate_segment).
func (h *Handler) AllocateSegment(data []felt.Felt) (vmmem.Relocatable, error) {
	segment := h.Memory.AddSegment()
	end, err := h.Memory.WriteFeltRange(segment, data)
	if err != nil {
		return vmmem.Relocatable{}, fmt.Errorf("syscalls: allocating segment: %w", err)
	}
	h.readOnlySegments = append(h.readOnlySegments, segmentRange{start: segment, end: end})
	return segment, nil
}

// mergeChild folds a completed sub-call's CallInfo and storage
// accumulators into h, the parent frame, and appends the child's own
// CallInfo as an internal call (spec §4.8's shared call-helper semantics).
func (h *Handler) mergeChild(child *Handler, info *execution.CallInfo) {
	h.Storage.MergeChild(child.Storage.ReadValues, child.Storage.AccessedKeys)
	h.InternalCalls = append(h.InternalCalls, info)
}

// buildCallInfo assembles this frame's CallInfo once its entry point
// has finished running, folding in the storage accumulators, events,
// messages and internal calls recorded during the run.
func (h *Handler) buildCallInfo(gasConsumed uint64, failed bool, revertError string, retdata []felt.Felt) *execution.CallInfo {
	accessed := make(map[[32]byte]struct{}, len(h.Storage.AccessedKeys))
	for k := range h.Storage.AccessedKeys {
		accessed[k] = struct{}{}
	}

	return &execution.CallInfo{
		CallerAddress:       h.CallerAddress,
		ContractAddr:        h.ContractAddress,
		CodeAddress:         h.CodeAddress,
		ClassHash:           h.ClassHash,
		Selector:            h.Selector,
		EntryPointType:      h.EntryPointType,
		CallType:            h.CallType,
		Calldata:            h.Calldata,
		Retdata:             retdata,
		GasConsumed:         gasConsumed,
		FailureFlag:         failed,
		RevertError:         revertError,
		HasRevert:           failed,
		Events:              h.Events,
		L2ToL1Messages:      h.Messages,
		StorageReadValues:   h.Storage.ReadValues,
		AccessedStorageKeys: accessed,
		Children:            h.InternalCalls,
	}
}
