package syscalls

import (
	"sync"

	"github.com/starknet-syscalls/syscallhost/felt"
)

// selectorNames is the ambient selector->syscall-name table (spec §5,
// SUPPLEMENTED FEATURES): each entry is the felt encoding of the
// syscall's ASCII name, keyed back to that name. Built once and reused,
// mirroring the teacher's lazily-initialized, package-level lookup
// tables in arwen/elrondapi.
var (
	selectorNamesOnce sync.Once
	selectorNames     map[felt.Felt]string
)

func loadSelectorNames() {
	names := []string{
		"call_contract",
		"deploy",
		"emit_event",
		"get_block_hash",
		"get_block_number",
		"get_block_timestamp",
		"get_execution_info",
		"keccak",
		"library_call",
		"replace_class",
		"send_message_to_l1",
		"storage_read",
		"storage_write",
	}

	selectorNames = make(map[felt.Felt]string, len(names))
	for _, name := range names {
		selectorNames[felt.FromASCII(name)] = name
	}
}

// NameForSelector resolves a raw selector felt to its syscall name,
// reporting false if the selector names no known syscall.
func NameForSelector(selector felt.Felt) (string, bool) {
	selectorNamesOnce.Do(loadSelectorNames)
	name, ok := selectorNames[selector]
	return name, ok
}

// SelectorForName encodes a syscall name into its selector felt, the
// inverse of NameForSelector.
func SelectorForName(name string) felt.Felt {
	return felt.FromASCII(name)
}
