package execution

import "github.com/starknet-syscalls/syscallhost/felt"

// OrderedEvent is an emitted event tagged with its position in the
// per-transaction emission order (invariant I1, spec §3).
type OrderedEvent struct {
	Order uint64
	Keys  []felt.Felt
	Data  []felt.Felt
}

// OrderedL2ToL1Message is a message to L1 tagged with its position in
// the per-transaction emission order (invariant I1, spec §3).
type OrderedL2ToL1Message struct {
	Order     uint64
	ToAddress felt.Felt
	Payload   []felt.Felt
}
