// Command syscallcli runs a JSON scenario file against the syscall
// handler and prints a one-line summary of the run (event, message and
// internal-call counts, gas left, retdata); with --graph it also writes
// the resulting call tree as Graphviz DOT. It is the CLI counterpart of
// the teacher's mandostestcli scenario runner.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/starknet-syscalls/syscallhost/config"
	"github.com/starknet-syscalls/syscallhost/execution"
	"github.com/starknet-syscalls/syscallhost/felt"
	"github.com/starknet-syscalls/syscallhost/scenario"
	"github.com/starknet-syscalls/syscallhost/state"
	"github.com/starknet-syscalls/syscallhost/syscalls"
	"github.com/starknet-syscalls/syscallhost/vmmem/fake"
)

func main() {
	app := &cli.App{
		Name:  "syscallcli",
		Usage: "run a JSON syscall scenario against the handler",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "graph", Usage: "write the resulting call tree as Graphviz DOT to this path"},
			&cli.Uint64Flag{Name: "block-number", Value: 1000, Usage: "current block number"},
			&cli.Uint64Flag{Name: "block-timestamp", Value: 0, Usage: "current block timestamp"},
			&cli.Uint64Flag{Name: "initial-gas", Value: config.SyscallBase * 1000, Usage: "entry point initial gas budget"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one argument: the path to a scenario JSON file")
	}
	path := c.Args().First()

	s, err := scenario.Load(path)
	if err != nil {
		return err
	}

	calldata := parseFeltListArg(s.Calldata)

	gasCost, err := config.DefaultGasCost()
	if err != nil {
		return fmt.Errorf("loading gas schedule: %w", err)
	}

	contractAddress := addressFromDecimal(s.ContractAddress)
	callerAddress := addressFromDecimal(s.CallerAddress)

	cs := state.NewCachedState(nil)
	tx := &execution.TransactionContext{}
	block := &execution.BlockContext{
		BlockNumber:    c.Uint64("block-number"),
		BlockTimestamp: c.Uint64("block-timestamp"),
	}
	runner := scenario.Runner{Steps: s.Steps}
	host := syscalls.NewHost(cs, tx, block, gasCost, runner)

	mem := fake.New()
	syscallPtr := mem.AddSegment()
	handler, err := syscalls.NewHandler(host, mem, syscalls.HandlerInput{
		ContractAddress: contractAddress,
		CallerAddress:   callerAddress,
		CodeAddress:     contractAddress,
		EntryPointType:  execution.EntryPointTypeExternal,
		CallType:        execution.CallTypeCall,
		Selector:        felt.FromASCII(s.Name),
		Calldata:        calldata,
		InitialGas:      c.Uint64("initial-gas"),
	}, syscallPtr)
	if err != nil {
		return fmt.Errorf("constructing handler: %w", err)
	}

	finalPtr, retdata, err := runner.Run(handler)
	if err != nil {
		return fmt.Errorf("running scenario: %w", err)
	}
	if err := handler.PostRun(finalPtr); err != nil {
		fmt.Printf("entry point reverted: %v\n", err)
	}

	fmt.Printf("scenario %q: events=%d messages=%d internal_calls=%d gas_left=%d retdata=%v\n",
		s.Name, len(handler.Events), len(handler.Messages), len(handler.InternalCalls), handler.Meter.Remaining(), retdata)

	if graphPath := c.String("graph"); graphPath != "" {
		root := buildRootCallInfo(handler, retdata)
		dot, err := scenario.BuildCallGraph(root)
		if err != nil {
			return fmt.Errorf("building call graph: %w", err)
		}
		if err := os.WriteFile(graphPath, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", graphPath, err)
		}
	}
	return nil
}

func parseFeltListArg(ss []string) []felt.Felt {
	out := make([]felt.Felt, 0, len(ss))
	for _, s := range ss {
		out = append(out, parseFeltDecimal(s))
	}
	return out
}

func parseFeltDecimal(s string) felt.Felt {
	if s == "" {
		return felt.Zero
	}
	var v uint64
	fmt.Sscanf(s, "%d", &v)
	return felt.FromUint64(v)
}

func addressFromDecimal(s string) felt.Address {
	return felt.AddressFromFelt(parseFeltDecimal(s))
}

func buildRootCallInfo(h *syscalls.Handler, retdata []felt.Felt) *execution.CallInfo {
	return &execution.CallInfo{
		ContractAddr:   h.ContractAddress,
		CallerAddress:  h.CallerAddress,
		EntryPointType: execution.EntryPointTypeExternal,
		CallType:       execution.CallTypeCall,
		Retdata:        retdata,
		Children:       h.InternalCalls,
	}
}
