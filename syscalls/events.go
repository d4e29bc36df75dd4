package syscalls

import (
	"github.com/starknet-syscalls/syscallhost/execution"
	"github.com/starknet-syscalls/syscallhost/vmmem"
)

// syscallEmitEvent reads a (keys_start, keys_end, data_start, data_end)
// argument block, assigns it the next transaction-wide event order, and
// records it (spec §4.4, invariant I1).
func (h *Handler) syscallEmitEvent(argsPtr vmmem.Relocatable) (ResponseBody, vmmem.Relocatable, error) {
	keysStart, keysEnd, dataStart, dataEnd, next, err := h.readRangePairArgs(argsPtr)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}

	keys, err := h.Memory.ReadFeltRange(keysStart, keysEnd)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	data, err := h.Memory.ReadFeltRange(dataStart, dataEnd)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}

	h.Events = append(h.Events, execution.OrderedEvent{
		Order: h.host.Tx.NextEventOrder(),
		Keys:  keys,
		Data:  data,
	})

	empty, err := h.AllocateSegment(nil)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	return SuccessBody(empty, empty), next, nil
}

// syscallSendMessageToL1 reads a (to_address, payload_start, payload_end)
// argument block, assigns it the next transaction-wide message order,
// and records it (spec §4.4, invariant I1).
func (h *Handler) syscallSendMessageToL1(argsPtr vmmem.Relocatable) (ResponseBody, vmmem.Relocatable, error) {
	toAddress, err := h.Memory.ReadFelt(argsPtr)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	payloadStart, err := h.Memory.ReadRelocatable(argsPtr.Add(1))
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	payloadEnd, err := h.Memory.ReadRelocatable(argsPtr.Add(2))
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	payload, err := h.Memory.ReadFeltRange(payloadStart, payloadEnd)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}

	h.Messages = append(h.Messages, execution.OrderedL2ToL1Message{
		Order:     h.host.Tx.NextMessageOrder(),
		ToAddress: toAddress,
		Payload:   payload,
	})

	empty, err := h.AllocateSegment(nil)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	return SuccessBody(empty, empty), argsPtr.Add(3), nil
}

// readRangePairArgs reads the common (start1, end1, start2, end2)
// argument shape emit_event's keys/data ranges follow.
func (h *Handler) readRangePairArgs(argsPtr vmmem.Relocatable) (s1, e1, s2, e2, next vmmem.Relocatable, err error) {
	s1, err = h.Memory.ReadRelocatable(argsPtr)
	if err != nil {
		return
	}
	e1, err = h.Memory.ReadRelocatable(argsPtr.Add(1))
	if err != nil {
		return
	}
	s2, err = h.Memory.ReadRelocatable(argsPtr.Add(2))
	if err != nil {
		return
	}
	e2, err = h.Memory.ReadRelocatable(argsPtr.Add(3))
	if err != nil {
		return
	}
	next = argsPtr.Add(4)
	return
}
