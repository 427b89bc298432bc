package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/trebuchet-org/zkdeploy/internal/domain/models"
	"github.com/trebuchet-org/zkdeploy/internal/usecase"
)

// ArtifactsRenderer renders artifact listings
type ArtifactsRenderer struct {
	out  io.Writer
	json bool
}

// NewArtifactsRenderer creates a new artifacts renderer
func NewArtifactsRenderer(out io.Writer, json bool) *ArtifactsRenderer {
	return &ArtifactsRenderer{out: out, json: json}
}

// RenderArtifactList renders the compiled artifacts as a table
func (r *ArtifactsRenderer) RenderArtifactList(result *usecase.ArtifactListResult) error {
	if r.json {
		rows := lo.Map(result.Artifacts, func(a *models.Artifact, _ int) map[string]any {
			return map[string]any{
				"contract":    a.FullyQualifiedName(),
				"factoryDeps": a.FactoryDeps.Len(),
			}
		})
		return json.NewEncoder(r.out).Encode(rows)
	}

	if len(result.Artifacts) == 0 {
		fmt.Fprintln(r.out, "No artifacts found - compile the project with zksolc first")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Contract", "Source", "Factory Deps"})
	for _, a := range result.Artifacts {
		t.AppendRow(table.Row{a.ContractName, a.SourceName, a.FactoryDeps.Len()})
	}
	t.Render()

	fmt.Fprintf(r.out, "%d artifacts, %d deployable\n", len(result.Artifacts), result.Deployable)
	return nil
}
