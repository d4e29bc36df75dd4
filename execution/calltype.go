package execution

// CallType distinguishes a full cross-contract call from a library
// (delegate) call that swaps code while keeping the caller's storage and address.
type CallType int

const (
	// CallTypeCall executes callee's code against callee's own storage.
	CallTypeCall CallType = iota
	// CallTypeDelegate executes another class's code against the caller's storage.
	CallTypeDelegate
)

// String renders the call type for logs and diagnostics.
func (t CallType) String() string {
	switch t {
	case CallTypeCall:
		return "Call"
	case CallTypeDelegate:
		return "Delegate"
	default:
		return "Unknown"
	}
}

// EntryPointType distinguishes which dispatch table on a contract class
// an entry point comes from.
type EntryPointType int

const (
	// EntryPointTypeExternal is an ordinary externally-callable entry point.
	EntryPointTypeExternal EntryPointType = iota
	// EntryPointTypeConstructor is the special constructor entry point invoked at deploy time.
	EntryPointTypeConstructor
	// EntryPointTypeL1Handler handles an L1->L2 message.
	EntryPointTypeL1Handler
)

// String renders the entry point type for logs and diagnostics.
func (t EntryPointType) String() string {
	switch t {
	case EntryPointTypeExternal:
		return "External"
	case EntryPointTypeConstructor:
		return "Constructor"
	case EntryPointTypeL1Handler:
		return "L1Handler"
	default:
		return "Unknown"
	}
}
