package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trebuchet-org/zkdeploy/internal/app"
	"github.com/trebuchet-org/zkdeploy/internal/cli/render"
	"github.com/trebuchet-org/zkdeploy/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var (
		feeTokenFlag string
		valueFlag    string
		noRegister   bool
	)

	cmd := &cobra.Command{
		Use:   "deploy <contract> [constructor-args...]",
		Short: "Deploy a zksolc-compiled contract to the rollup",
		Long: `Deploy a contract to the configured rollup network.

The contract is referenced by bare name (when unique) or by the
fully-qualified source.sol:Name form. Constructor arguments follow the
identifier and are coerced against the contract's ABI. Factory
dependencies declared in the artifact ship inside the same transaction.`,
		Example: `  # Deploy a contract with no constructor
  zkdeploy deploy Greeter -n testnet

  # Fully-qualified name plus constructor arguments
  zkdeploy deploy contracts/Token.sol:Token 0xf39F...2266 1000000

  # Pay gas in an ERC-20 instead of ETH
  zkdeploy deploy Greeter --fee-token 0x5C22...181A`,
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
			value, err := parseValue(valueFlag)
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

			handle, err := deployApp.DeployContract.Run(cmd.Context(), usecase.DeployParams{
				Artifact: artifact,
				Args:     ctorArgs,
				FeeToken: feeToken,
				Value:    value,
			})
			if err != nil {
				return err
			}

			chainID, err := deployApp.Context.L2().ChainID(cmd.Context())
			if err != nil {
				return err
			}

			var registryID string
			if !noRegister {
				record, err := deployApp.RegisterDeployment.Run(cmd.Context(), usecase.RegisterParams{
					Artifact: artifact,
					Handle:   handle,
					ChainID:  chainID.Uint64(),
					FeeToken: feeToken,
					Deployer: deployApp.Context.Wallet().Address(),
				})
				if err != nil {
					return err
				}
				registryID = record.ID
			}

			renderer := render.NewDeployRenderer(cmd.OutOrStdout(), baseApp.Config.JSON)
			return renderer.RenderDeployment(artifact, handle, chainID, registryID)
		},
	}

	cmd.Flags().StringVar(&feeTokenFlag, "fee-token", "", "ERC-20 address gas is paid in (defaults to the native token)")
	cmd.Flags().StringVar(&valueFlag, "value", "", "Native currency to send with the deployment, in wei")
	cmd.Flags().BoolVar(&noRegister, "no-register", false, "Skip recording the deployment in the local registry")

	return cmd
}
