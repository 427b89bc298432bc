package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/trebuchet-org/zkdeploy/internal/app"
	"github.com/trebuchet-org/zkdeploy/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
	// viperKey is the context key for the viper instance, kept so
	// commands that dial the network can build their own container
	viperKey contextKey = "viper"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zkdeploy",
		Short: "Smart contract deployer for zksolc-compiled rollup contracts",
		Long: `zkdeploy deploys zksolc-compiled smart contracts to an EVM-compatible
rollup, resolving factory dependencies and settling fees in the token of
your choice.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot)
			bindGlobalFlags(v, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			ctx = context.WithValue(ctx, viperKey, v)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output machine-readable JSON")
	rootCmd.PersistentFlags().StringP("namespace", "s", "", "Deployment namespace (defaults to 'default')")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Deployment target declared in zkdeploy.toml")
	rootCmd.PersistentFlags().String("artifacts", "", "Artifacts directory (defaults to artifacts-zk)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "deployment",
		Title: "Deployment Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "inspection",
		Title: "Inspection Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "deployment"
	rootCmd.AddCommand(deployCmd)

	estimateCmd := NewEstimateCmd()
	estimateCmd.GroupID = "deployment"
	rootCmd.AddCommand(estimateCmd)

	artifactsCmd := NewArtifactsCmd()
	artifactsCmd.GroupID = "inspection"
	rootCmd.AddCommand(artifactsCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "inspection"
	rootCmd.AddCommand(networksCmd)

	deploymentsCmd := NewDeploymentsCmd()
	deploymentsCmd.GroupID = "inspection"
	rootCmd.AddCommand(deploymentsCmd)

	versionCmd := NewVersionCmd()
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// bindGlobalFlags binds command flags to viper
func bindGlobalFlags(v *viper.Viper, cmd *cobra.Command) {
	// Only bind flags that exist and have been changed
	if f := cmd.Flag("debug"); f != nil && f.Changed {
		v.Set("debug", f.Value.String())
	}
	if f := cmd.Flag("non-interactive"); f != nil && f.Changed {
		v.Set("non_interactive", f.Value.String())
	}
	if f := cmd.Flag("json"); f != nil && f.Changed {
		v.Set("json", f.Value.String())
	}
	if f := cmd.Flag("namespace"); f != nil && f.Changed {
		v.Set("namespace", f.Value.String())
	}
	if f := cmd.Flag("network"); f != nil && f.Changed {
		v.Set("network", f.Value.String())
	}
	if f := cmd.Flag("artifacts"); f != nil && f.Changed {
		v.Set("artifacts", f.Value.String())
	}
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// getViper retrieves the viper instance from the command context
func getViper(cmd *cobra.Command) (*viper.Viper, error) {
	instance := cmd.Context().Value(viperKey)
	if instance == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	v, ok := instance.(*viper.Viper)
	if !ok {
		return nil, fmt.Errorf("invalid configuration instance")
	}

	return v, nil
}
