package scenario

import (
	"fmt"

	"github.com/starknet-syscalls/syscallhost/felt"
	"github.com/starknet-syscalls/syscallhost/syscalls"
	"github.com/starknet-syscalls/syscallhost/vmmem"
)

// Runner drives a Scenario's fixed step list against whatever Handler it
// is given, implementing syscalls.ContractRunner. It is the CLI
// harness's contract stand-in: a real bytecode interpreter is out of
// scope (spec §1's Non-goals), so a scenario file takes its place.
type Runner struct {
	Steps []Step
}

var _ syscalls.ContractRunner = Runner{}

// Run implements syscalls.ContractRunner.
func (r Runner) Run(h *syscalls.Handler) (vmmem.Relocatable, []felt.Felt, error) {
	ptr := h.SyscallPtr()
	for _, step := range r.Steps {
		selector := syscalls.SelectorForName(step.Name)
		if err := h.Memory.WriteFelt(ptr, selector); err != nil {
			return vmmem.Relocatable{}, nil, err
		}
		if err := h.Memory.WriteFelt(ptr.Add(1), felt.FromUint64(h.Meter.Remaining())); err != nil {
			return vmmem.Relocatable{}, nil, err
		}

		if err := writeStepArgs(h.Memory, ptr.Add(2), step); err != nil {
			return vmmem.Relocatable{}, nil, fmt.Errorf("scenario: step %q: %w", step.Name, err)
		}

		next, err := h.Dispatch(ptr)
		if err != nil {
			return vmmem.Relocatable{}, nil, fmt.Errorf("scenario: step %q: %w", step.Name, err)
		}
		ptr = next
	}
	return ptr, nil, nil
}

func writeStepArgs(mem vmmem.Memory, at vmmem.Relocatable, step Step) error {
	argFelt := func(name string) (felt.Felt, error) {
		raw, ok := step.Args[name]
		if !ok {
			return felt.Felt{}, fmt.Errorf("missing argument %q", name)
		}
		return parseFelt(raw)
	}
	argList := func(name string) ([]felt.Felt, error) {
		return parseFeltList(step.List[name])
	}
	// reservedArg defaults to 0 (the only domain real storage traffic
	// uses); scenario test 2 sets it to a nonzero value to exercise the
	// address-domain rejection.
	reservedArg := func() (felt.Felt, error) {
		raw, ok := step.Args["reserved"]
		if !ok {
			return felt.Zero, nil
		}
		return parseFelt(raw)
	}

	switch step.Name {
	case "storage_read":
		reserved, err := reservedArg()
		if err != nil {
			return err
		}
		key, err := argFelt("key")
		if err != nil {
			return err
		}
		if err := mem.WriteFelt(at, reserved); err != nil {
			return err
		}
		return mem.WriteFelt(at.Add(1), key)

	case "storage_write":
		reserved, err := reservedArg()
		if err != nil {
			return err
		}
		key, err := argFelt("key")
		if err != nil {
			return err
		}
		value, err := argFelt("value")
		if err != nil {
			return err
		}
		if err := mem.WriteFelt(at, reserved); err != nil {
			return err
		}
		if err := mem.WriteFelt(at.Add(1), key); err != nil {
			return err
		}
		return mem.WriteFelt(at.Add(2), value)

	case "emit_event":
		keys, err := argList("keys")
		if err != nil {
			return err
		}
		data, err := argList("data")
		if err != nil {
			return err
		}
		if err := writeRange(mem, at, keys); err != nil {
			return err
		}
		return writeRange(mem, at.Add(2), data)

	case "send_message_to_l1":
		to, err := argFelt("toAddress")
		if err != nil {
			return err
		}
		payload, err := argList("payload")
		if err != nil {
			return err
		}
		if err := mem.WriteFelt(at, to); err != nil {
			return err
		}
		return writeRange(mem, at.Add(1), payload)

	case "get_block_number", "get_block_timestamp", "get_execution_info":
		return nil

	case "get_block_hash":
		blockNumber, err := argFelt("blockNumber")
		if err != nil {
			return err
		}
		return mem.WriteFelt(at, blockNumber)

	case "replace_class":
		classHash, err := argFelt("classHash")
		if err != nil {
			return err
		}
		return mem.WriteFelt(at, classHash)

	case "keccak":
		input, err := argList("input")
		if err != nil {
			return err
		}
		return writeRange(mem, at, input)

	case "call_contract":
		contract, err := argFelt("contractAddress")
		if err != nil {
			return err
		}
		selector, err := argFelt("selector")
		if err != nil {
			return err
		}
		calldata, err := argList("calldata")
		if err != nil {
			return err
		}
		if err := mem.WriteFelt(at, contract); err != nil {
			return err
		}
		if err := mem.WriteFelt(at.Add(1), selector); err != nil {
			return err
		}
		return writeRange(mem, at.Add(2), calldata)

	case "library_call":
		classHash, err := argFelt("classHash")
		if err != nil {
			return err
		}
		selector, err := argFelt("selector")
		if err != nil {
			return err
		}
		calldata, err := argList("calldata")
		if err != nil {
			return err
		}
		if err := mem.WriteFelt(at, classHash); err != nil {
			return err
		}
		if err := mem.WriteFelt(at.Add(1), selector); err != nil {
			return err
		}
		return writeRange(mem, at.Add(2), calldata)

	case "deploy":
		classHash, err := argFelt("classHash")
		if err != nil {
			return err
		}
		salt, err := argFelt("salt")
		if err != nil {
			return err
		}
		calldata, err := argList("calldata")
		if err != nil {
			return err
		}
		deployFromZero, err := argFelt("deployFromZero")
		if err != nil {
			deployFromZero = felt.Zero
		}
		if err := mem.WriteFelt(at, classHash); err != nil {
			return err
		}
		if err := mem.WriteFelt(at.Add(1), salt); err != nil {
			return err
		}
		if err := writeRange(mem, at.Add(2), calldata); err != nil {
			return err
		}
		return mem.WriteFelt(at.Add(4), deployFromZero)

	default:
		return fmt.Errorf("%w: %s", syscalls.ErrUnknownSelector, step.Name)
	}
}
