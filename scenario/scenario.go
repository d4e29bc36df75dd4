// Package scenario decodes a JSON-described sequence of syscalls into a
// runnable ContractRunner, the CLI harness's stand-in for real compiled
// bytecode (spec §4.8's note that "running bytecode" is pluggable). It
// plays the same role the teacher's mandos-go test format plays for
// arwen: a declarative fixture a test runner can execute end to end.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/starknet-syscalls/syscallhost/felt"
	"github.com/starknet-syscalls/syscallhost/vmmem"
)

// Step is one syscall a scenario's contract issues, addressed by name
// with a flat argument list. Argument shapes follow each syscall's
// fixed layout (spec §4.2): felts are decimal strings, ranges are
// arrays of decimal strings.
type Step struct {
	Name string            `json:"syscall"`
	Args map[string]string   `json:"args"`
	List map[string][]string `json:"listArgs"`
}

// Scenario is a single entry point invocation plus the syscalls its
// (fictional) bytecode issues.
type Scenario struct {
	Name            string   `json:"name"`
	ContractAddress string   `json:"contractAddress"`
	CallerAddress   string   `json:"callerAddress"`
	Calldata        []string `json:"calldata"`
	Steps           []Step   `json:"steps"`
}

// Load reads and parses a scenario JSON file.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: reading %s: %w", path, err)
	}
	var s Scenario
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("scenario: parsing %s: %w", path, err)
	}
	return &s, nil
}

func parseFelt(s string) (felt.Felt, error) {
	var v int64
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return felt.Felt{}, fmt.Errorf("scenario: %q is not a decimal felt: %w", s, err)
	}
	if v < 0 {
		return felt.Felt{}, fmt.Errorf("scenario: %q: negative felts are not supported", s)
	}
	return felt.FromUint64(uint64(v)), nil
}

func parseFeltList(ss []string) ([]felt.Felt, error) {
	out := make([]felt.Felt, 0, len(ss))
	for _, s := range ss {
		f, err := parseFelt(s)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// writeRange allocates a fresh segment holding values and writes its
// [start, end) bounds at at/at+1.
func writeRange(mem vmmem.Memory, at vmmem.Relocatable, values []felt.Felt) error {
	start := mem.AddSegment()
	end, err := mem.WriteFeltRange(start, values)
	if err != nil {
		return err
	}
	if err := mem.WriteRelocatable(at, start); err != nil {
		return err
	}
	return mem.WriteRelocatable(at.Add(1), end)
}
