package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/zkdeploy/internal/cli/render"
)

// NewArtifactsCmd creates the artifacts command
func NewArtifactsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "artifacts",
		Aliases: []string{"ls"},
		Short:   "List compiled artifacts in the project",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListArtifacts.Run(cmd.Context())
			if err != nil {
				return err
			}

			renderer := render.NewArtifactsRenderer(cmd.OutOrStdout(), app.Config.JSON)
			return renderer.RenderArtifactList(result)
		},
	}
}
