package scenario

import (
	"fmt"

	"github.com/awalterschulze/gographviz"

	"github.com/starknet-syscalls/syscallhost/execution"
)

// BuildCallGraph renders a CallInfo tree as a Graphviz DOT document, one
// node per call frame labeled with its contract address and call type,
// an edge from each call to its children. Useful for eyeballing a
// scenario's call_contract/library_call/deploy nesting.
func BuildCallGraph(root *execution.CallInfo) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("calltree"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	counter := 0
	var visit func(info *execution.CallInfo, parentNode string) error
	visit = func(info *execution.CallInfo, parentNode string) error {
		nodeName := fmt.Sprintf("call%d", counter)
		counter++

		label := fmt.Sprintf("\"%s\\n%s(%s)\\ngas=%d\"", info.ContractAddr.String(), info.EntryPointType.String(), info.CallType.String(), info.GasConsumed)
		if info.FailureFlag {
			label = fmt.Sprintf("\"%s\\nREVERTED: %s\"", info.ContractAddr.String(), info.RevertError)
		}
		if err := g.AddNode("calltree", nodeName, map[string]string{"label": label}); err != nil {
			return err
		}
		if parentNode != "" {
			if err := g.AddEdge(parentNode, nodeName, true, nil); err != nil {
				return err
			}
		}

		for _, child := range info.Children {
			if err := visit(child, nodeName); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(root, ""); err != nil {
		return "", err
	}
	return g.String(), nil
}
