package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trebuchet-org/zkdeploy/internal/app"
	"github.com/trebuchet-org/zkdeploy/internal/cli/render"
	"github.com/trebuchet-org/zkdeploy/internal/usecase"
	"github.com/trebuchet-org/zkdeploy/pkg/zktx"
)

// NewEstimateCmd creates the estimate command
func NewEstimateCmd() *cobra.Command {
	var feeTokenFlag string

	cmd := &cobra.Command{
		Use:   "estimate <contract> [constructor-args...]",
		Short: "Estimate the fee for deploying a contract",
		Long: `Estimate the deployment fee without broadcasting anything.

The fee is the rollup's gas estimate multiplied by the current gas
price, denominated in the selected fee token.`,
		Example: `  # Estimate in the native token
  zkdeploy estimate Greeter -n testnet

  # Estimate with gas paid in an ERC-20
  zkdeploy estimate Greeter --fee-token 0x5C22...181A`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseApp, err := getApp(cmd)
			if err != nil {
				return err
			}
			v, err := getViper(cmd)
			if err != nil {
				return err
			}

			feeToken, err := parseFeeToken(feeTokenFlag)
			if err != nil {
				return err
			}

			artifact, err := resolveArtifact(cmd, baseApp, args[0])
			if err != nil {
				return err
			}
			ctorArgs, err := coerceConstructorArgs(artifact, args[1:])
			if err != nil {
				return err
			}

			sink := progressSink(baseApp.Config)
			deployApp, err := app.InitDeployApp(cmd.Context(), v, sink)
			if err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}
			defer deployApp.Close()

			fee, err := deployApp.EstimateDeployFee.Run(cmd.Context(), usecase.EstimateParams{
				Artifact: artifact,
				Args:     ctorArgs,
				FeeToken: feeToken,
			})
			if err != nil {
				return err
			}

			token := zktx.NativeToken
			if feeToken != nil {
				token = *feeToken
			}
			renderer := render.NewFeeRenderer(cmd.OutOrStdout(), baseApp.Config.JSON)
			return renderer.RenderFee(artifact, fee, token)
		},
	}

	cmd.Flags().StringVar(&feeTokenFlag, "fee-token", "", "ERC-20 address gas is paid in (defaults to the native token)")

	return cmd
}
