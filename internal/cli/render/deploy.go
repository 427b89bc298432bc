package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"github.com/fatih/color"

	"github.com/trebuchet-org/zkdeploy/internal/domain/models"
)

// DeployRenderer renders the result of a confirmed deployment
type DeployRenderer struct {
	out  io.Writer
	json bool
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, json bool) *DeployRenderer {
	return &DeployRenderer{out: out, json: json}
}

// RenderDeployment prints the confirmed deployment
func (r *DeployRenderer) RenderDeployment(artifact *models.Artifact, handle *models.ContractHandle, chainID *big.Int, registryID string) error {
	if r.json {
		return json.NewEncoder(r.out).Encode(map[string]any{
			"contract": artifact.FullyQualifiedName(),
			"address":  handle.Address.Hex(),
			"txHash":   handle.TxHash.Hex(),
			"chainId":  chainID.String(),
			"registry": registryID,
		})
	}

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed %s", artifact.FullyQualifiedName())))
	fmt.Fprintf(r.out, "  Address:  %s\n", addressStyle.Sprint(handle.Address.Hex()))
	fmt.Fprintf(r.out, "  Tx:       %s\n", handle.TxHash.Hex())
	fmt.Fprintf(r.out, "  Chain ID: %s\n", chainID.String())
	if deps := artifact.FactoryDeps.Len(); deps > 0 {
		fmt.Fprintf(r.out, "  Factory dependencies shipped: %d\n", deps)
	}
	if registryID != "" {
		fmt.Fprintf(r.out, "  Registry: %s\n", color.New(color.Faint).Sprint(registryID))
	}
	return nil
}
