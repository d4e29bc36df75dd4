package syscalls

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starknet-syscalls/syscallhost/config"
	"github.com/starknet-syscalls/syscallhost/execution"
	"github.com/starknet-syscalls/syscallhost/felt"
	"github.com/starknet-syscalls/syscallhost/state"
	"github.com/starknet-syscalls/syscallhost/vmmem"
	"github.com/starknet-syscalls/syscallhost/vmmem/fake"
)

func newTestHost(t *testing.T, runner ContractRunner) *Host {
	t.Helper()
	cost, err := config.DefaultGasCost()
	require.NoError(t, err)
	cs := state.NewCachedState(nil)
	tx := &execution.TransactionContext{}
	block := &execution.BlockContext{BlockNumber: 100, BlockTimestamp: 1000}
	return NewHost(cs, tx, block, cost, runner)
}

func newRootHandler(t *testing.T, host *Host, mem vmmem.Memory, contract felt.Address, calldata []felt.Felt) *Handler {
	t.Helper()
	syscallPtr := mem.AddSegment()
	h, err := NewHandler(host, mem, HandlerInput{
		ContractAddress: contract,
		CallerAddress:   felt.ZeroAddress,
		CodeAddress:     contract,
		EntryPointType:  execution.EntryPointTypeExternal,
		CallType:        execution.CallTypeCall,
		Selector:        felt.FromASCII("entry"),
		Calldata:        calldata,
		InitialGas:      config.SyscallBase * 1000,
	}, syscallPtr)
	require.NoError(t, err)
	return h
}

func writeFeltArg(v felt.Felt) func(vmmem.Memory, vmmem.Relocatable) error {
	return func(mem vmmem.Memory, at vmmem.Relocatable) error {
		return mem.WriteFelt(at, v)
	}
}

// writeReservedKeyArgs writes storage_read's (reserved, key) argument pair.
func writeReservedKeyArgs(reserved, key felt.Felt) func(vmmem.Memory, vmmem.Relocatable) error {
	return func(mem vmmem.Memory, at vmmem.Relocatable) error {
		if err := mem.WriteFelt(at, reserved); err != nil {
			return err
		}
		return mem.WriteFelt(at.Add(1), key)
	}
}

// requireFailureResponse asserts that the response written at responsePtr is
// a guest Failure body carrying wantReason as its single ASCII retdata felt,
// with gas left equal to wantGas (spec §6's reserved error strings, §7 band 1).
func requireFailureResponse(t *testing.T, mem vmmem.Memory, responsePtr vmmem.Relocatable, wantGas uint64, wantReason string) {
	t.Helper()

	gas, err := mem.ReadFelt(responsePtr)
	require.NoError(t, err)
	require.True(t, gas.Equal(felt.FromUint64(wantGas)))

	flag, err := mem.ReadFelt(responsePtr.Add(1))
	require.NoError(t, err)
	require.True(t, flag.IsOne())

	reasonStart, err := mem.ReadRelocatable(responsePtr.Add(2))
	require.NoError(t, err)
	reason, err := mem.ReadFelt(reasonStart)
	require.NoError(t, err)
	require.True(t, reason.Equal(felt.FromASCII(wantReason)))
}

func TestStorageWriteThenReadRoundTrip(t *testing.T) {
	t.Parallel()

	mem := fake.New()
	key := felt.FromUint64(5)
	value := felt.FromUint64(42)

	runner := scriptedRunner{
		calls: []scriptedCall{
			{name: "storage_write", writeArgs: func(mem vmmem.Memory, at vmmem.Relocatable) error {
				if err := mem.WriteFelt(at, felt.Zero); err != nil {
					return err
				}
				if err := mem.WriteFelt(at.Add(1), key); err != nil {
					return err
				}
				return mem.WriteFelt(at.Add(2), value)
			}},
			{name: "storage_read", writeArgs: writeReservedKeyArgs(felt.Zero, key)},
		},
	}

	host := newTestHost(t, runner)
	contract := felt.AddressFromFelt(felt.FromUint64(7))
	h := newRootHandler(t, host, mem, contract, nil)

	finalPtr, _, err := host.Runner.Run(h)
	require.NoError(t, err)
	require.NoError(t, h.PostRun(finalPtr))

	require.Len(t, h.Storage.ReadValues, 1)
	require.True(t, h.Storage.ReadValues[0].Equal(value))

	k := state.KeyFromFelt(key)
	require.Contains(t, h.Storage.AccessedKeys, k)
}

func TestStorageReadOfUnsetKeyDefaultsToZero(t *testing.T) {
	t.Parallel()

	mem := fake.New()
	key := felt.FromUint64(99)
	runner := scriptedRunner{calls: []scriptedCall{
		{name: "storage_read", writeArgs: writeReservedKeyArgs(felt.Zero, key)},
	}}
	host := newTestHost(t, runner)
	h := newRootHandler(t, host, mem, felt.AddressFromFelt(felt.FromUint64(1)), nil)

	_, _, err := host.Runner.Run(h)
	require.NoError(t, err)
	require.True(t, h.Storage.ReadValues[0].IsZero())
}

func TestStorageReadRejectsNonzeroReservedDomain(t *testing.T) {
	t.Parallel()

	mem := fake.New()
	host := newTestHost(t, scriptedRunner{})
	syscallPtr := mem.AddSegment()
	h, err := NewHandler(host, mem, HandlerInput{
		ContractAddress: felt.AddressFromFelt(felt.FromUint64(6)),
		CallerAddress:   felt.ZeroAddress,
		EntryPointType:  execution.EntryPointTypeExternal,
		CallType:        execution.CallTypeCall,
		InitialGas:      config.SyscallBase * 10,
	}, syscallPtr)
	require.NoError(t, err)

	ptr := h.SyscallPtr()
	require.NoError(t, mem.WriteFelt(ptr, SelectorForName("storage_read")))
	require.NoError(t, mem.WriteFelt(ptr.Add(1), felt.FromUint64(h.Meter.Remaining())))
	require.NoError(t, mem.WriteFelt(ptr.Add(2), felt.One))
	require.NoError(t, mem.WriteFelt(ptr.Add(3), felt.Zero))

	_, err = h.Dispatch(ptr)
	require.NoError(t, err)

	responsePtr := ptr.Add(2).Add(argCellCount["storage_read"])
	requireFailureResponse(t, mem, responsePtr, h.Meter.Remaining(), "Unsupported address domain")
	require.Empty(t, h.Storage.AccessedKeys)
}

func TestStorageWriteRejectsNonzeroReservedDomain(t *testing.T) {
	t.Parallel()

	mem := fake.New()
	host := newTestHost(t, scriptedRunner{})
	h := newRootHandler(t, host, mem, felt.AddressFromFelt(felt.FromUint64(7)), nil)

	ptr := h.SyscallPtr()
	require.NoError(t, mem.WriteFelt(ptr, SelectorForName("storage_write")))
	require.NoError(t, mem.WriteFelt(ptr.Add(1), felt.FromUint64(h.Meter.Remaining())))
	require.NoError(t, mem.WriteFelt(ptr.Add(2), felt.One))
	require.NoError(t, mem.WriteFelt(ptr.Add(3), felt.Zero))
	require.NoError(t, mem.WriteFelt(ptr.Add(4), felt.Zero))

	_, err := h.Dispatch(ptr)
	require.NoError(t, err)

	responsePtr := ptr.Add(2).Add(argCellCount["storage_write"])
	requireFailureResponse(t, mem, responsePtr, h.Meter.Remaining(), "Unsupported address domain")
	require.Empty(t, h.Storage.AccessedKeys)
}

func TestEmitEventOrderingAcrossMultipleCalls(t *testing.T) {
	t.Parallel()

	mem := fake.New()

	writeEmptyRange := func(mem vmmem.Memory, at vmmem.Relocatable) error {
		empty := mem.AddSegment()
		if err := mem.WriteRelocatable(at, empty); err != nil {
			return err
		}
		return mem.WriteRelocatable(at.Add(1), empty)
	}
	writeEventArgs := func(mem vmmem.Memory, at vmmem.Relocatable) error {
		if err := writeEmptyRange(mem, at); err != nil {
			return err
		}
		return writeEmptyRange(mem, at.Add(2))
	}

	runner := scriptedRunner{calls: []scriptedCall{
		{name: "emit_event", writeArgs: writeEventArgs},
		{name: "emit_event", writeArgs: writeEventArgs},
	}}
	host := newTestHost(t, runner)
	h := newRootHandler(t, host, mem, felt.AddressFromFelt(felt.FromUint64(2)), nil)

	_, _, err := host.Runner.Run(h)
	require.NoError(t, err)
	require.Len(t, h.Events, 2)
	require.Equal(t, uint64(0), h.Events[0].Order)
	require.Equal(t, uint64(1), h.Events[1].Order)
	require.Equal(t, uint64(2), host.Tx.NEmittedEvents)
}

func TestDispatchUnknownSelectorFails(t *testing.T) {
	t.Parallel()

	mem := fake.New()
	host := newTestHost(t, scriptedRunner{})
	h := newRootHandler(t, host, mem, felt.AddressFromFelt(felt.FromUint64(3)), nil)

	ptr := h.SyscallPtr()
	require.NoError(t, mem.WriteFelt(ptr, felt.FromASCII("not_a_syscall")))
	require.NoError(t, mem.WriteFelt(ptr.Add(1), felt.FromUint64(1000)))

	_, err := h.Dispatch(ptr)
	require.ErrorIs(t, err, ErrUnknownSelector)
}

func TestDispatchOutOfGasFails(t *testing.T) {
	t.Parallel()

	mem := fake.New()
	host := newTestHost(t, scriptedRunner{})
	syscallPtr := mem.AddSegment()
	h, err := NewHandler(host, mem, HandlerInput{
		ContractAddress: felt.AddressFromFelt(felt.FromUint64(4)),
		CallerAddress:   felt.ZeroAddress,
		EntryPointType:  execution.EntryPointTypeExternal,
		CallType:        execution.CallTypeCall,
		InitialGas:      1,
	}, syscallPtr)
	require.NoError(t, err)

	ptr := h.SyscallPtr()
	require.NoError(t, mem.WriteFelt(ptr, SelectorForName("storage_read")))
	require.NoError(t, mem.WriteFelt(ptr.Add(1), felt.FromUint64(1)))

	next, err := h.Dispatch(ptr)
	require.NoError(t, err)

	responsePtr := ptr.Add(2).Add(argCellCount["storage_read"])
	requireFailureResponse(t, mem, responsePtr, h.Meter.Remaining(), "Out of gas")
	require.Equal(t, responsePtr.Add(responseSize), next)
}

func TestPostRunRejectsMismatchedSyscallPtr(t *testing.T) {
	t.Parallel()

	mem := fake.New()
	host := newTestHost(t, scriptedRunner{})
	h := newRootHandler(t, host, mem, felt.AddressFromFelt(felt.FromUint64(5)), nil)

	bogus := mem.AddSegment()
	err := h.PostRun(bogus)
	require.ErrorIs(t, err, ErrSyscallPtrMismatch)
}
