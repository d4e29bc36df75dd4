package syscalls

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starknet-syscalls/syscallhost/execution"
	"github.com/starknet-syscalls/syscallhost/felt"
	"github.com/starknet-syscalls/syscallhost/vmmem"
	"github.com/starknet-syscalls/syscallhost/vmmem/fake"
)

func TestKeccakF1600IsDeterministicAndNonTrivial(t *testing.T) {
	t.Parallel()

	var a, b [5][5]uint64
	a[0][0] = 1
	b[0][0] = 1

	keccakF1600(&a)
	keccakF1600(&b)
	require.Equal(t, a, b)
	require.NotEqual(t, [5][5]uint64{}, a)
}

func TestSyscallKeccakChargesRoundCostPerBlock(t *testing.T) {
	t.Parallel()

	mem := fake.New()
	input := make([]felt.Felt, 17)
	for i := range input {
		input[i] = felt.FromUint64(uint64(i))
	}

	writeKeccakArgs := func(mem vmmem.Memory, at vmmem.Relocatable) error {
		segStart := mem.AddSegment()
		end, err := mem.WriteFeltRange(segStart, input)
		if err != nil {
			return err
		}
		if err := mem.WriteRelocatable(at, segStart); err != nil {
			return err
		}
		return mem.WriteRelocatable(at.Add(1), end)
	}

	runner := scriptedRunner{calls: []scriptedCall{
		{name: "keccak", writeArgs: writeKeccakArgs},
	}}
	host := newTestHost(t, runner)
	h := newRootHandler(t, host, mem, felt.AddressFromFelt(felt.FromUint64(1)), nil)

	before := h.Meter.Remaining()
	_, _, err := runner.Run(h)
	require.NoError(t, err)

	spent := before - h.Meter.Remaining()
	require.Equal(t, host.GasCost.Keccak+host.GasCost.KeccakRoundCost, spent)
}

func TestSyscallKeccakRejectsMisalignedInput(t *testing.T) {
	t.Parallel()

	mem := fake.New()
	input := []felt.Felt{felt.FromUint64(1), felt.FromUint64(2)}

	writeArgs := func(mem vmmem.Memory, at vmmem.Relocatable) error {
		segStart := mem.AddSegment()
		end, err := mem.WriteFeltRange(segStart, input)
		if err != nil {
			return err
		}
		if err := mem.WriteRelocatable(at, segStart); err != nil {
			return err
		}
		return mem.WriteRelocatable(at.Add(1), end)
	}

	runner := scriptedRunner{calls: []scriptedCall{
		{name: "keccak", writeArgs: writeArgs},
	}}
	host := newTestHost(t, runner)
	h := newRootHandler(t, host, mem, felt.AddressFromFelt(felt.FromUint64(1)), nil)

	before := h.Meter.Remaining()
	ptr := h.SyscallPtr()
	_, _, err := runner.Run(h)
	require.NoError(t, err)

	responsePtr := ptr.Add(2).Add(argCellCount["keccak"])
	requireFailureResponse(t, mem, responsePtr, h.Meter.Remaining(), "Invalid keccak input size")
	require.Equal(t, before-host.GasCost.Keccak, h.Meter.Remaining())
}

// TestSyscallKeccakStarvesOnSecondRound exercises the per-round gas check:
// with two blocks' worth of input and just enough gas for one round, the
// first block is absorbed and permuted, then the second round fails with
// the gas already spent preserved (spec §4.7).
func TestSyscallKeccakStarvesOnSecondRound(t *testing.T) {
	t.Parallel()

	mem := fake.New()
	input := make([]felt.Felt, 34)
	for i := range input {
		input[i] = felt.FromUint64(uint64(i))
	}

	writeArgs := func(mem vmmem.Memory, at vmmem.Relocatable) error {
		segStart := mem.AddSegment()
		end, err := mem.WriteFeltRange(segStart, input)
		if err != nil {
			return err
		}
		if err := mem.WriteRelocatable(at, segStart); err != nil {
			return err
		}
		return mem.WriteRelocatable(at.Add(1), end)
	}

	runner := scriptedRunner{calls: []scriptedCall{
		{name: "keccak", writeArgs: writeArgs},
	}}
	host := newTestHost(t, runner)

	syscallPtr := mem.AddSegment()
	h, err := NewHandler(host, mem, HandlerInput{
		ContractAddress: felt.AddressFromFelt(felt.FromUint64(8)),
		CallerAddress:   felt.ZeroAddress,
		EntryPointType:  execution.EntryPointTypeExternal,
		CallType:        execution.CallTypeCall,
		InitialGas:      host.GasCost.Keccak + 200000,
	}, syscallPtr)
	require.NoError(t, err)

	ptr := h.SyscallPtr()
	_, _, err = runner.Run(h)
	require.NoError(t, err)

	responsePtr := ptr.Add(2).Add(argCellCount["keccak"])
	requireFailureResponse(t, mem, responsePtr, 20000, "Syscall out of gas")
	require.Equal(t, uint64(20000), h.Meter.Remaining())
}
