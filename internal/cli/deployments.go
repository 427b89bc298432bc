package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/zkdeploy/internal/cli/render"
)

// NewDeploymentsCmd creates the deployments command
func NewDeploymentsCmd() *cobra.Command {
	var contractFilter string

	cmd := &cobra.Command{
		Use:   "deployments",
		Short: "List deployments recorded in the local registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			deployments, err := app.Registry.ListDeployments(cmd.Context())
			if err != nil {
				return err
			}

			renderer := render.NewDeploymentsRenderer(cmd.OutOrStdout(), app.Config.JSON)
			return renderer.RenderDeploymentList(deployments, contractFilter)
		},
	}

	cmd.Flags().StringVar(&contractFilter, "contract", "", "Filter by contract name")

	return cmd
}
