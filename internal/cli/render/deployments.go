package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/trebuchet-org/zkdeploy/internal/domain/models"
)

// DeploymentsRenderer renders registry records
type DeploymentsRenderer struct {
	out  io.Writer
	json bool
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, json bool) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out, json: json}
}

// RenderDeploymentList renders the registry, optionally filtered by
// contract name
func (r *DeploymentsRenderer) RenderDeploymentList(deployments []*models.Deployment, contractFilter string) error {
	if contractFilter != "" {
		deployments = lo.Filter(deployments, func(d *models.Deployment, _ int) bool {
			return d.ContractName == contractFilter
		})
	}
	sort.Slice(deployments, func(i, j int) bool { return deployments[i].ID < deployments[j].ID })

	if r.json {
		return json.NewEncoder(r.out).Encode(deployments)
	}

	if len(deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Namespace", "Chain", "Contract", "Address", "Deployed"})
	for _, d := range deployments {
		t.AppendRow(table.Row{
			d.Namespace,
			d.ChainID,
			d.ContractName,
			d.Address,
			d.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	t.Render()
	return nil
}
