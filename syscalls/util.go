package syscalls

import "github.com/starknet-syscalls/syscallhost/felt"

func feltFromUint64(v uint64) felt.Felt {
	return felt.FromUint64(v)
}
