package syscalls

import (
	"github.com/starknet-syscalls/syscallhost/felt"
)

// failureFromErrorMsg builds a guest-visible Failure body carrying a
// single felt-encoded ASCII reason string (spec §6's reserved-value
// error strings; SUPPLEMENTED FEATURES: the original's shared
// failure_from_error_msg helper used by storage_read/storage_write/
// keccak/get_block_hash/deploy). This band never surfaces as a Go
// error: the VM continues past it (spec §7).
func (h *Handler) failureFromErrorMsg(msg string) (ResponseBody, error) {
	start, err := h.AllocateSegment([]felt.Felt{felt.FromASCII(msg)})
	if err != nil {
		return ResponseBody{}, err
	}
	return FailureBody(start, start.Add(1)), nil
}
