package execution

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starknet-syscalls/syscallhost/felt"
)

func TestEmptyConstructorCallShape(t *testing.T) {
	t.Parallel()

	contract := felt.AddressFromFelt(felt.FromUint64(1))
	caller := felt.AddressFromFelt(felt.FromUint64(2))
	var classHash felt.ClassHash
	classHash[0] = 7

	info := EmptyConstructorCall(contract, caller, &classHash)
	require.Equal(t, EntryPointTypeConstructor, info.EntryPointType)
	require.Equal(t, CallTypeCall, info.CallType)
	require.Equal(t, contract, info.ContractAddr)
	require.Equal(t, caller, info.CallerAddress)
	require.Empty(t, info.Calldata)
	require.False(t, info.FailureFlag)
}

func TestCallInfoResultProjectsOutcome(t *testing.T) {
	t.Parallel()

	info := &CallInfo{
		GasConsumed: 42,
		FailureFlag: true,
		Retdata:     []felt.Felt{felt.FromUint64(1)},
	}
	result := info.Result()
	require.Equal(t, uint64(42), result.GasConsumed)
	require.False(t, result.IsSuccess)
	require.Len(t, result.Retdata, 1)
}
