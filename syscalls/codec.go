package syscalls

import (
	"github.com/starknet-syscalls/syscallhost/felt"
	"github.com/starknet-syscalls/syscallhost/vmmem"
)

// requestHeader is the fixed two-word prefix every syscall request
// begins with in VM memory: the selector felt, then the caller-supplied
// gas counter (spec §4.2).
type requestHeader struct {
	Selector felt.Felt
	GasLeft  uint64
}

// ResponseBody is the tagged Success/Failure variant every syscall
// response carries (spec §4.2). Exactly one of the two branches is
// populated; Failed reports which.
type ResponseBody struct {
	Failed bool

	// Success payload (when !Failed). Kept as a relocatable pair rather
	// than decoded felts: callers that want the actual values read them
	// from memory at [RetdataStart, RetdataEnd).
	RetdataStart vmmem.Relocatable
	RetdataEnd   vmmem.Relocatable

	// Failure payload (when Failed): same shape, pointing at either the
	// single-element [reason] array of a guest-visible protocol failure
	// or the retdata of a failed sub-call.
	FailureStart vmmem.Relocatable
	FailureEnd   vmmem.Relocatable
}

// SuccessBody builds a success ResponseBody from a retdata range.
func SuccessBody(start, end vmmem.Relocatable) ResponseBody {
	return ResponseBody{RetdataStart: start, RetdataEnd: end}
}

// FailureBody builds a failed ResponseBody from a reason-array range.
func FailureBody(start, end vmmem.Relocatable) ResponseBody {
	return ResponseBody{Failed: true, FailureStart: start, FailureEnd: end}
}

// Response is the tail every syscall writes back: remaining gas, then
// the tagged body (responseSize cells in all: gas, flag, start, end).
type Response struct {
	GasLeft uint64
	Body    ResponseBody
}
