// Package config loads the gas-cost table of spec §6 from a TOML
// document, the same two-step "decode into a generic map, then shape
// into a typed struct" pipeline the teacher's config.CreateGasConfig
// performs on its own gas schedule, just swapping pelletier/go-toml's
// unmarshal for mapstructure's struct decode.
package config

import (
	_ "embed"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml"
)

//go:embed gasSchedule.toml
var defaultGasScheduleTOML []byte

// Step and SyscallBase are the base units the whole gas cost table of
// spec §6 is expressed in multiples of.
const (
	Step        uint64 = 100
	SyscallBase uint64 = 10000
)

// GasCost is the decoded, typed form of the syscall gas-cost table.
type GasCost struct {
	CallContract      uint64 `mapstructure:"CallContract"`
	LibraryCall       uint64 `mapstructure:"LibraryCall"`
	Deploy            uint64 `mapstructure:"Deploy"`
	GetExecutionInfo  uint64 `mapstructure:"GetExecutionInfo"`
	ReplaceClass      uint64 `mapstructure:"ReplaceClass"`
	StorageRead       uint64 `mapstructure:"StorageRead"`
	StorageWrite      uint64 `mapstructure:"StorageWrite"`
	SendMessageToL1   uint64 `mapstructure:"SendMessageToL1"`
	EmitEvent         uint64 `mapstructure:"EmitEvent"`
	GetBlockTimestamp uint64 `mapstructure:"GetBlockTimestamp"`
	Keccak            uint64 `mapstructure:"Keccak"`

	EntryPointInitialBudget uint64 `mapstructure:"EntryPointInitialBudget"`
	EntryPoint              uint64 `mapstructure:"EntryPoint"`

	KeccakRoundCost uint64 `mapstructure:"KeccakRoundCost"`
}

// ForName returns the fixed per-syscall gas cost for name, and whether
// name is a recognized syscall.
func (g *GasCost) ForName(name string) (uint64, bool) {
	switch name {
	case "call_contract":
		return g.CallContract, true
	case "library_call":
		return g.LibraryCall, true
	case "deploy":
		return g.Deploy, true
	case "get_execution_info":
		return g.GetExecutionInfo, true
	case "replace_class":
		return g.ReplaceClass, true
	case "storage_read":
		return g.StorageRead, true
	case "storage_write":
		return g.StorageWrite, true
	case "send_message_to_l1":
		return g.SendMessageToL1, true
	case "emit_event":
		return g.EmitEvent, true
	case "get_block_number":
		return 0, true
	case "get_block_timestamp":
		return g.GetBlockTimestamp, true
	case "get_block_hash":
		return 0, true
	case "keccak":
		return g.Keccak, true
	default:
		return 0, false
	}
}

// DefaultGasCost decodes the embedded default gas schedule.
func DefaultGasCost() (*GasCost, error) {
	raw, err := DecodeScheduleMap(defaultGasScheduleTOML)
	if err != nil {
		return nil, err
	}
	return CreateGasConfig(raw)
}

// DecodeScheduleMap parses a TOML gas-schedule document into a raw map,
// the shape the schedule travels through config distribution in before
// being shaped into a GasCost.
func DecodeScheduleMap(tomlDoc []byte) (map[string]interface{}, error) {
	tree, err := toml.LoadBytes(tomlDoc)
	if err != nil {
		return nil, fmt.Errorf("config: parsing gas schedule toml: %w", err)
	}
	return tree.ToMap(), nil
}

// CreateGasConfig shapes a raw decoded gas schedule map into a typed GasCost.
func CreateGasConfig(raw map[string]interface{}) (*GasCost, error) {
	section, ok := raw["SyscallGasCost"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("config: gas schedule missing [SyscallGasCost] section")
	}

	cost := &GasCost{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           cost,
	})
	if err != nil {
		return nil, fmt.Errorf("config: building gas schedule decoder: %w", err)
	}
	if err := decoder.Decode(section); err != nil {
		return nil, fmt.Errorf("config: decoding gas schedule: %w", err)
	}
	return cost, nil
}
