package execution

import "github.com/starknet-syscalls/syscallhost/felt"

// TransactionContext holds the per-transaction mutable counters and
// immutable metadata shared by every call frame in one transaction's
// call tree (spec §3). NEmittedEvents/NSentMessages are the monotonic
// counters invariant I1 depends on: they must be shared by reference
// across the whole tree, never copied.
type TransactionContext struct {
	Version           felt.Felt
	AccountAddress    felt.Address
	MaxFee            uint64
	Signature         []felt.Felt
	TransactionHash   felt.Felt
	Nonce             felt.Felt
	MaxNSteps         uint64
	SequencerAddress  felt.Address

	NEmittedEvents uint64
	NSentMessages  uint64
}

// NextEventOrder returns the order to assign the next emitted event and
// advances the counter (spec §4.4).
func (t *TransactionContext) NextEventOrder() uint64 {
	order := t.NEmittedEvents
	t.NEmittedEvents++
	return order
}

// NextMessageOrder returns the order to assign the next L2->L1 message
// and advances the counter (spec §4.4).
func (t *TransactionContext) NextMessageOrder() uint64 {
	order := t.NSentMessages
	t.NSentMessages++
	return order
}

// BlockContext holds per-block immutable metadata (spec §3).
type BlockContext struct {
	ChainID           felt.Felt
	SequencerAddress  felt.Address
	BlockNumber       uint64
	BlockTimestamp    uint64
	InvokeTxMaxNSteps uint64
	ValidateMaxNSteps uint64
}
