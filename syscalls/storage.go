package syscalls

import (
	"github.com/starknet-syscalls/syscallhost/felt"
	"github.com/starknet-syscalls/syscallhost/state"
	"github.com/starknet-syscalls/syscallhost/vmmem"
)

// syscallStorageRead reads the contract's own storage at a caller-
// supplied key, behind a reserved address-domain argument that must be
// zero (spec §4.3). A key never written to and absent from the backing
// store reads as zero — storage reads never fail on a missing key, only
// on a transport-level memory error, matching the original business
// logic handler's error-swallowing _storage_read helper.
func (h *Handler) syscallStorageRead(argsPtr vmmem.Relocatable) (ResponseBody, vmmem.Relocatable, error) {
	reserved, err := h.Memory.ReadFelt(argsPtr)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	keyFelt, err := h.Memory.ReadFelt(argsPtr.Add(1))
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	next := argsPtr.Add(2)

	if !reserved.IsZero() {
		body, err := h.failureFromErrorMsg("Unsupported address domain")
		return body, next, err
	}

	key := state.KeyFromFelt(keyFelt)
	value, err := h.Storage.Read(key)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}

	start, err := h.AllocateSegment([]felt.Felt{value})
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	end := start.Add(1)
	return SuccessBody(start, end), next, nil
}

// syscallStorageWrite writes the contract's own storage at a caller-
// supplied key, behind the same reserved address-domain argument (spec
// §4.3). It always succeeds once past the domain check; there is no
// retdata.
func (h *Handler) syscallStorageWrite(argsPtr vmmem.Relocatable) (ResponseBody, vmmem.Relocatable, error) {
	reserved, err := h.Memory.ReadFelt(argsPtr)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	keyFelt, err := h.Memory.ReadFelt(argsPtr.Add(1))
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	value, err := h.Memory.ReadFelt(argsPtr.Add(2))
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	next := argsPtr.Add(3)

	if !reserved.IsZero() {
		body, err := h.failureFromErrorMsg("Unsupported address domain")
		return body, next, err
	}

	key := state.KeyFromFelt(keyFelt)
	h.Storage.Write(key, value)

	empty, err := h.AllocateSegment(nil)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	return SuccessBody(empty, empty), next, nil
}
