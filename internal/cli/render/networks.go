package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/trebuchet-org/zkdeploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out  io.Writer
	json bool
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, json bool) *NetworksRenderer {
	return &NetworksRenderer{out: out, json: json}
}

// RenderNetworkList renders configured targets and built-in networks
func (r *NetworksRenderer) RenderNetworkList(result *usecase.NetworkListResult) error {
	if r.json {
		return json.NewEncoder(r.out).Encode(result)
	}

	if len(result.Targets) == 0 {
		fmt.Fprintln(r.out, "No deployment targets declared in zkdeploy.toml [networks]")
	} else {
		fmt.Fprintln(r.out, "Deployment targets:")
		for _, target := range result.Targets {
			fmt.Fprintf(r.out, "  %s\n", target.Name)
			fmt.Fprintf(r.out, "    L1: %s\n", target.L1)
			fmt.Fprintf(r.out, "    L2: %s\n", target.L2)
		}
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Built-in settlement networks (usable as l1 by name):")
	for _, network := range result.KnownL1 {
		fmt.Fprintf(r.out, "  %s - Chain ID: %d\n", network.Name, network.ChainID)
	}

	return nil
}
