package syscalls

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starknet-syscalls/syscallhost/felt"
	"github.com/starknet-syscalls/syscallhost/vmmem"
	"github.com/starknet-syscalls/syscallhost/vmmem/fake"
)

func noArgs(vmmem.Memory, vmmem.Relocatable) error { return nil }

func TestGetBlockNumberAndTimestamp(t *testing.T) {
	t.Parallel()

	mem := fake.New()
	runner := scriptedRunner{calls: []scriptedCall{
		{name: "get_block_number", writeArgs: noArgs},
		{name: "get_block_timestamp", writeArgs: noArgs},
	}}
	host := newTestHost(t, runner)
	host.Block.BlockNumber = 555
	host.Block.BlockTimestamp = 777
	h := newRootHandler(t, host, mem, felt.AddressFromFelt(felt.FromUint64(1)), nil)

	_, _, err := runner.Run(h)
	require.NoError(t, err)
}

func TestGetBlockHashRejectsTooRecentBlock(t *testing.T) {
	t.Parallel()

	mem := fake.New()
	runner := scriptedRunner{calls: []scriptedCall{
		{name: "get_block_hash", writeArgs: writeFeltArg(felt.FromUint64(999))},
	}}
	host := newTestHost(t, runner)
	host.Block.BlockNumber = 1000

	h := newRootHandler(t, host, mem, felt.AddressFromFelt(felt.FromUint64(1)), nil)
	ptr := h.SyscallPtr()
	_, _, err := runner.Run(h)
	require.NoError(t, err)

	responsePtr := ptr.Add(2).Add(argCellCount["get_block_hash"])
	requireFailureResponse(t, mem, responsePtr, h.Meter.Remaining(), "Block number out of range")
}

func TestGetBlockHashAcceptsBlockWithinWindow(t *testing.T) {
	t.Parallel()

	mem := fake.New()
	runner := scriptedRunner{calls: []scriptedCall{
		{name: "get_block_hash", writeArgs: writeFeltArg(felt.FromUint64(989))},
	}}
	host := newTestHost(t, runner)
	host.Block.BlockNumber = 1000

	h := newRootHandler(t, host, mem, felt.AddressFromFelt(felt.FromUint64(1)), nil)
	_, _, err := runner.Run(h)
	require.NoError(t, err)
}

func TestGetExecutionInfoBuildsNestedStructs(t *testing.T) {
	t.Parallel()

	mem := fake.New()
	runner := scriptedRunner{calls: []scriptedCall{
		{name: "get_execution_info", writeArgs: noArgs},
	}}
	host := newTestHost(t, runner)
	host.Tx.Signature = []felt.Felt{felt.FromUint64(1), felt.FromUint64(2)}
	host.Tx.Version = felt.FromUint64(1)

	h := newRootHandler(t, host, mem, felt.AddressFromFelt(felt.FromUint64(42)), nil)
	finalPtr, _, err := runner.Run(h)
	require.NoError(t, err)
	require.NoError(t, h.PostRun(finalPtr))
}

func TestReplaceClassUpdatesStateMapping(t *testing.T) {
	t.Parallel()

	mem := fake.New()
	var newHash felt.ClassHash
	newHash[0] = 0x9
	runner := scriptedRunner{calls: []scriptedCall{
		{name: "replace_class", writeArgs: writeFeltArg(newHash.Felt())},
	}}
	host := newTestHost(t, runner)
	contract := felt.AddressFromFelt(felt.FromUint64(50))
	h := newRootHandler(t, host, mem, contract, nil)

	_, _, err := runner.Run(h)
	require.NoError(t, err)

	got, err := host.State.GetClassHashAt(contract)
	require.NoError(t, err)
	require.Equal(t, newHash, got)
}
