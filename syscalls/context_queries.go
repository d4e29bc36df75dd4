package syscalls

import (
	"github.com/starknet-syscalls/syscallhost/felt"
	"github.com/starknet-syscalls/syscallhost/vmmem"
)

// syscallGetBlockNumber returns the current block number (spec §4.5). It
// has no arguments.
func (h *Handler) syscallGetBlockNumber(argsPtr vmmem.Relocatable) (ResponseBody, vmmem.Relocatable, error) {
	start, err := h.AllocateSegment([]felt.Felt{feltFromUint64(h.host.Block.BlockNumber)})
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	return SuccessBody(start, start.Add(1)), argsPtr, nil
}

// syscallGetBlockTimestamp returns the current block's timestamp (spec §4.5).
func (h *Handler) syscallGetBlockTimestamp(argsPtr vmmem.Relocatable) (ResponseBody, vmmem.Relocatable, error) {
	start, err := h.AllocateSegment([]felt.Felt{feltFromUint64(h.host.Block.BlockTimestamp)})
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	return SuccessBody(start, start.Add(1)), argsPtr, nil
}

// blockHashWindow is the number of blocks of lag get_block_hash enforces
// between the queried block and the current one (spec §4.5,
// SUPPLEMENTED FEATURES: the original's `current_block_number - 10` rule).
const blockHashWindow = 10

// syscallGetBlockHash reads a single block-number argument and returns
// that block's hash, refusing to answer for blocks newer than
// current-10 as a guest-visible Failure rather than a fatal error (spec
// §4.5, §7 band 1). Block hashes themselves are out of scope for this
// repository's state backend (always zero) — the invariant under test
// is the range check, not the hash value.
func (h *Handler) syscallGetBlockHash(argsPtr vmmem.Relocatable) (ResponseBody, vmmem.Relocatable, error) {
	requested, err := h.Memory.ReadFelt(argsPtr)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	next := argsPtr.Add(1)
	blockNumber, err := requested.ToUint64()
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}

	current := h.host.Block.BlockNumber
	if current < blockHashWindow || blockNumber > current-blockHashWindow {
		body, err := h.failureFromErrorMsg("Block number out of range")
		return body, next, err
	}

	start, err := h.AllocateSegment([]felt.Felt{felt.Zero})
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	return SuccessBody(start, start.Add(1)), next, nil
}

// syscallReplaceClass reads a single class-hash argument and rebinds the
// executing contract's address to it (spec §4.6).
func (h *Handler) syscallReplaceClass(argsPtr vmmem.Relocatable) (ResponseBody, vmmem.Relocatable, error) {
	classHashFelt, err := h.Memory.ReadFelt(argsPtr)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	classHash := felt.ClassHashFromFelt(classHashFelt)

	if err := h.host.State.SetClassHashAt(h.ContractAddress, classHash); err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}

	empty, err := h.AllocateSegment(nil)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	return SuccessBody(empty, empty), argsPtr.Add(1), nil
}

// syscallGetExecutionInfo builds the nested signature/tx_info/block_info
// struct triple and returns a pointer to the outer ExecutionInfo
// structure (spec §4.5, SUPPLEMENTED FEATURES: exact field order taken
// from the original business_logic_syscall_handler's get_execution_info).
func (h *Handler) syscallGetExecutionInfo(argsPtr vmmem.Relocatable) (ResponseBody, vmmem.Relocatable, error) {
	sigStart, err := h.AllocateSegment(h.host.Tx.Signature)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	sigEnd := sigStart.Add(uint64(len(h.host.Tx.Signature)))

	txInfo, err := h.allocateStruct([]cell{
		feltCell(h.host.Tx.Version),
		feltCell(h.host.Tx.AccountAddress.Felt),
		feltCell(feltFromUint64(h.host.Tx.MaxFee)),
		relocatableCell(sigStart),
		relocatableCell(sigEnd),
		feltCell(h.host.Tx.TransactionHash),
		feltCell(h.host.Block.ChainID),
		feltCell(h.host.Tx.Nonce),
	})
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}

	blockInfo, err := h.allocateStruct([]cell{
		feltCell(feltFromUint64(h.host.Block.BlockNumber)),
		feltCell(feltFromUint64(h.host.Block.BlockTimestamp)),
		feltCell(h.host.Block.SequencerAddress.Felt),
	})
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}

	execInfo, err := h.allocateStruct([]cell{
		relocatableCell(blockInfo),
		relocatableCell(txInfo),
		feltCell(h.CallerAddress.Felt),
		feltCell(h.ContractAddress.Felt),
		feltCell(h.Selector),
	})
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}

	return SuccessBody(execInfo, execInfo.Add(5)), argsPtr, nil
}
