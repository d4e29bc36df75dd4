package execution

import "github.com/starknet-syscalls/syscallhost/felt"

// CallInfo is the per-call record forming the call tree rooted at the
// top-level entry point (spec §3).
type CallInfo struct {
	CallerAddress felt.Address
	ContractAddr  felt.Address
	CodeAddress   felt.Address
	ClassHash     *felt.ClassHash
	Selector      felt.Felt
	EntryPointType
	CallType

	Calldata []felt.Felt
	Retdata  []felt.Felt

	GasConsumed  uint64
	FailureFlag  bool
	RevertError  string
	HasRevert    bool

	Events              []OrderedEvent
	L2ToL1Messages      []OrderedL2ToL1Message
	StorageReadValues   []felt.Felt
	AccessedStorageKeys map[[32]byte]struct{}

	Children []*CallInfo
}

// EmptyConstructorCall builds the synthetic CallInfo recorded when a
// class declares no constructor and deploy calldata is empty (spec §4.8 step 5).
func EmptyConstructorCall(contractAddr, callerAddress felt.Address, classHash *felt.ClassHash) *CallInfo {
	return &CallInfo{
		CallerAddress:  callerAddress,
		ContractAddr:   contractAddr,
		CodeAddress:    contractAddr,
		ClassHash:      classHash,
		EntryPointType: EntryPointTypeConstructor,
		CallType:       CallTypeCall,
	}
}

// Result projects a CallInfo down to the bare fields the deploy/call
// helper path (§4.8) needs to decide gas accounting and response shape.
type Result struct {
	GasConsumed uint64
	IsSuccess   bool
	Retdata     []felt.Felt
}

// Result reports the CallInfo's outcome in the shape execute_constructor_entry_point returns.
func (c *CallInfo) Result() Result {
	return Result{
		GasConsumed: c.GasConsumed,
		IsSuccess:   !c.FailureFlag,
		Retdata:     c.Retdata,
	}
}
