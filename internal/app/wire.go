//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/trebuchet-org/zkdeploy/internal/adapters/artifacts"
	"github.com/trebuchet-org/zkdeploy/internal/adapters/blockchain"
	"github.com/trebuchet-org/zkdeploy/internal/adapters/network"
	"github.com/trebuchet-org/zkdeploy/internal/adapters/registry"
	"github.com/trebuchet-org/zkdeploy/internal/config"
	"github.com/trebuchet-org/zkdeploy/internal/logging"
	"github.com/trebuchet-org/zkdeploy/internal/usecase"
)

var baseSet = wire.NewSet(
	config.Provider,
	logging.LoggingSet,
	artifacts.NewStore,
	wire.Bind(new(usecase.ArtifactStore), new(*artifacts.Store)),
	network.NewResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*network.Resolver)),
	registry.NewFileStore,
	wire.Bind(new(usecase.DeploymentRepository), new(*registry.FileStore)),
	usecase.NewLoadArtifact,
	usecase.NewExtractFactoryDeps,
	usecase.NewListArtifacts,
	usecase.NewListNetworks,
	NewApp,
)

// InitApp creates the offline application container.
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(baseSet)
	return nil, nil
}

// InitDeployApp creates the connected application container. The
// caller owns the returned container and must Close it.
func InitDeployApp(ctx context.Context, v *viper.Viper, sink usecase.ProgressSink) (*DeployApp, error) {
	wire.Build(
		baseSet,
		blockchain.NewDualContext,
		ProvideL2,
		ProvideWallet,
		usecase.NewEstimateDeployFee,
		usecase.NewDeployContract,
		usecase.NewRegisterDeployment,
		NewDeployApp,
	)
	return nil, nil
}
