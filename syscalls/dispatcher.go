package syscalls

import (
	"fmt"

	"github.com/starknet-syscalls/syscallhost/vmmem"
)

// syscallImpl is the shape every concrete syscall implementation
// follows: read its own fixed-size argument block starting at argsPtr,
// perform the operation, and report where in memory its response
// should be written (immediately after whatever variable-length data,
// such as calldata ranges, it consumed).
type syscallImpl func(h *Handler, argsPtr vmmem.Relocatable) (body ResponseBody, responsePtr vmmem.Relocatable, err error)

var syscallTable = map[string]syscallImpl{
	"storage_read":        (*Handler).syscallStorageRead,
	"storage_write":       (*Handler).syscallStorageWrite,
	"emit_event":          (*Handler).syscallEmitEvent,
	"send_message_to_l1":  (*Handler).syscallSendMessageToL1,
	"get_execution_info":  (*Handler).syscallGetExecutionInfo,
	"get_block_number":    (*Handler).syscallGetBlockNumber,
	"get_block_timestamp": (*Handler).syscallGetBlockTimestamp,
	"get_block_hash":      (*Handler).syscallGetBlockHash,
	"replace_class":       (*Handler).syscallReplaceClass,
	"keccak":              (*Handler).syscallKeccak,
	"call_contract":       (*Handler).syscallCallContract,
	"library_call":        (*Handler).syscallLibraryCall,
	"deploy":              (*Handler).syscallDeploy,
}

// responseSize is the fixed number of memory cells every syscall
// response occupies: gas_left, failure flag, retdata/failure start, end.
const responseSize = 4

// argCellCount is the fixed argument-layout size per syscall name (spec
// §4.2: "one fixed-size argument layout per syscall... sizes are
// constants keyed by name"). It lets an out-of-gas rejection skip
// straight to the response slot without decoding arguments it will
// never act on.
var argCellCount = map[string]uint64{
	"storage_read":        2,
	"storage_write":       3,
	"emit_event":          4,
	"send_message_to_l1":  3,
	"get_execution_info":  0,
	"get_block_number":    0,
	"get_block_timestamp": 0,
	"get_block_hash":      1,
	"replace_class":       1,
	"keccak":              2,
	"call_contract":       4,
	"library_call":        4,
	"deploy":              5,
}

// Dispatch resolves, meters and executes a single syscall request found
// at ptr, writes its response, and returns the pointer to the next
// syscall slot (spec §4.1).
func (h *Handler) Dispatch(ptr vmmem.Relocatable) (vmmem.Relocatable, error) {
	selector, err := h.Memory.ReadFelt(ptr)
	if err != nil {
		return vmmem.Relocatable{}, fmt.Errorf("syscalls: reading selector: %w", err)
	}

	name, ok := NameForSelector(selector)
	if !ok {
		return vmmem.Relocatable{}, ErrUnknownSelector
	}

	impl, ok := syscallTable[name]
	if !ok {
		return vmmem.Relocatable{}, fmt.Errorf("%w: %s", ErrUnknownSelector, name)
	}

	argsPtr := ptr.Add(2)
	argSize, ok := argCellCount[name]
	if !ok {
		return vmmem.Relocatable{}, fmt.Errorf("%w: %s", ErrUnknownSelector, name)
	}

	var body ResponseBody
	var responsePtr vmmem.Relocatable
	if chargeErr := h.Meter.Charge(name); chargeErr != nil {
		// Insufficient gas is a guest-visible protocol failure, not a
		// fatal one (spec §7 band 1): the VM continues, gas is
		// unchanged, and the arguments are never read.
		body, err = h.failureFromErrorMsg("Out of gas")
		if err != nil {
			return vmmem.Relocatable{}, fmt.Errorf("syscalls: %s: %w", name, err)
		}
		responsePtr = argsPtr.Add(argSize)
	} else {
		body, responsePtr, err = impl(h, argsPtr)
		if err != nil {
			return vmmem.Relocatable{}, fmt.Errorf("syscalls: %s: %w", name, err)
		}
	}

	if err := h.writeResponse(responsePtr, body); err != nil {
		return vmmem.Relocatable{}, fmt.Errorf("syscalls: %s: writing response: %w", name, err)
	}

	next := responsePtr.Add(responseSize)
	h.expectedSyscallPtr = next
	log.Trace("dispatched syscall", "name", name, "contract", h.ContractAddress.String(), "gasLeft", h.Meter.Remaining())
	return next, nil
}

func (h *Handler) writeResponse(at vmmem.Relocatable, body ResponseBody) error {
	gasFelt := feltFromUint64(h.Meter.Remaining())
	if err := h.Memory.WriteFelt(at, gasFelt); err != nil {
		return err
	}

	flag := feltFromUint64(0)
	start, end := body.RetdataStart, body.RetdataEnd
	if body.Failed {
		flag = feltFromUint64(1)
		start, end = body.FailureStart, body.FailureEnd
	}
	if err := h.Memory.WriteFelt(at.Add(1), flag); err != nil {
		return err
	}
	if err := h.Memory.WriteRelocatable(at.Add(2), start); err != nil {
		return err
	}
	return h.Memory.WriteRelocatable(at.Add(3), end)
}
