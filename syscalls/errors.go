package syscalls

import "errors"

// The three error bands of spec §7. ValidationError and ExecutionError
// are returned from Dispatch/Handler methods as Go errors (wrapped with
// fmt.Errorf("%w: ...") for context); ContractError never surfaces as a
// Go error at all — it is recorded into the CallInfo as FailureFlag +
// RevertError and execution continues, mirroring how the teacher
// distinguishes a host-side runtime error (returned error) from a
// contract's own explicit failure (recorded in the output context).
var (
	// ErrUnknownSelector is returned when a raw selector does not match
	// any syscall name in the ambient table.
	ErrUnknownSelector = errors.New("syscalls: unknown selector")

	// ErrOutOfGas is returned when the remaining gas is insufficient to
	// cover a syscall's fixed cost.
	ErrOutOfGas = errors.New("syscalls: out of gas")

	// ErrReadOnlySegmentViolation is returned by the post-run validator
	// when guest code has written into a handler-owned read-only segment.
	ErrReadOnlySegmentViolation = errors.New("syscalls: read-only segment violation")

	// ErrSyscallPtrMismatch is returned by the post-run validator when the
	// final syscall pointer does not match the expected one.
	ErrSyscallPtrMismatch = errors.New("syscalls: syscall pointer mismatch")

	// ErrMalformedRequest is returned when a syscall's arguments are
	// readable but inconsistent: deploy supplying constructor calldata for
	// a class that declares no constructor. Memory read failures are
	// returned as the memory's own errors, not as this one.
	ErrMalformedRequest = errors.New("syscalls: malformed request")

	// ErrMaxNCallsExceeded is returned when nested call_contract/
	// library_call/deploy frames would go deeper than the host's
	// MaxRecursionDepth.
	ErrMaxNCallsExceeded = errors.New("syscalls: max recursive call depth exceeded")

	// ErrInvalidDeployFromZero is returned when deploy's deploy_from_zero
	// argument is anything other than the felts 0 or 1 (spec §4.8's
	// boundary case). Unlike the reserved ASCII failure strings, this one
	// is not in that list — it is a malformed request, not a guest Failure.
	ErrInvalidDeployFromZero = errors.New("syscalls: deploy_from_zero must be 0 or 1")
)
