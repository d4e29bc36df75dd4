package syscalls

import "github.com/starknet-syscalls/syscallhost/config"

// Meter tracks the remaining gas budget for one call frame and charges
// fixed per-syscall costs against it (spec §6). It is deliberately not
// safe for concurrent use: exactly one handler owns a Meter, the same
// way a teacher meteringContext is owned by a single vmHost.
type Meter struct {
	cost      *config.GasCost
	remaining uint64
}

// NewMeter builds a Meter seeded with an initial gas budget.
func NewMeter(cost *config.GasCost, initial uint64) *Meter {
	return &Meter{cost: cost, remaining: initial}
}

// Remaining reports the gas left in this frame.
func (m *Meter) Remaining() uint64 {
	return m.remaining
}

// Charge deducts a syscall's fixed cost, returning ErrOutOfGas without
// mutating the budget if it is insufficient.
func (m *Meter) Charge(syscallName string) error {
	cost, ok := m.cost.ForName(syscallName)
	if !ok {
		return ErrUnknownSelector
	}
	return m.chargeAmount(cost)
}

// ChargeKeccakRound debits a single Keccak-f[1600] permutation round's
// cost, returning ErrOutOfGas without mutating the budget if the
// remaining gas can't cover it (spec §4.7: the check and the debit both
// happen per round, not once for the whole input up front).
func (m *Meter) ChargeKeccakRound() error {
	return m.chargeAmount(m.cost.KeccakRoundCost)
}

// ChargeEntryPoint charges the fixed cost of invoking a nested entry
// point, separate from and in addition to the syscall that triggered it
// (call_contract/library_call/deploy each pay both, spec §4.8).
func (m *Meter) ChargeEntryPoint() error {
	return m.chargeAmount(m.cost.EntryPoint)
}

func (m *Meter) chargeAmount(amount uint64) error {
	if amount > m.remaining {
		return ErrOutOfGas
	}
	m.remaining -= amount
	return nil
}

// DebitConsumed saturates the remaining budget down by a completed
// sub-call's reported gas_consumed (spec §4.8's call-helper semantics:
// "remaining_gas = remaining_gas − call_info.gas_consumed, saturating").
// Unlike chargeAmount, this never fails — the sub-call already ran to
// completion on its own separate budget; this only reconciles the
// parent's view of what that cost it.
func (m *Meter) DebitConsumed(amount uint64) {
	if amount >= m.remaining {
		m.remaining = 0
		return
	}
	m.remaining -= amount
}

// EntryPointInitialBudget reports the schedule's configured initial
// entry point budget. ExecuteEntryPoint does not use it: a nested frame
// starts with its parent's remaining gas.
func EntryPointInitialBudget(cost *config.GasCost) uint64 {
	return cost.EntryPointInitialBudget
}
