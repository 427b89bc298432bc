// Package app assembles the use cases behind the CLI.
package app

import (
	"log/slog"

	"github.com/trebuchet-org/zkdeploy/internal/adapters/blockchain"
	"github.com/trebuchet-org/zkdeploy/internal/config"
	"github.com/trebuchet-org/zkdeploy/internal/usecase"
)

// App holds the use cases that work without a network connection.
type App struct {
	Config *config.RuntimeConfig
	Log    *slog.Logger

	LoadArtifact       *usecase.LoadArtifact
	ExtractFactoryDeps *usecase.ExtractFactoryDeps
	ListArtifacts      *usecase.ListArtifacts
	ListNetworks       *usecase.ListNetworks
	Registry           usecase.DeploymentRepository
}

// NewApp creates the offline application container.
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	loadArtifact *usecase.LoadArtifact,
	extractFactoryDeps *usecase.ExtractFactoryDeps,
	listArtifacts *usecase.ListArtifacts,
	listNetworks *usecase.ListNetworks,
	registry usecase.DeploymentRepository,
) *App {
	return &App{
		Config:             cfg,
		Log:                log,
		LoadArtifact:       loadArtifact,
		ExtractFactoryDeps: extractFactoryDeps,
		ListArtifacts:      listArtifacts,
		ListNetworks:       listNetworks,
		Registry:           registry,
	}
}

// DeployApp extends App with the dual-network context and the use
// cases that need it.
type DeployApp struct {
	*App

	Context            *blockchain.DualContext
	EstimateDeployFee  *usecase.EstimateDeployFee
	DeployContract     *usecase.DeployContract
	RegisterDeployment *usecase.RegisterDeployment
}

// NewDeployApp creates the connected application container.
func NewDeployApp(
	base *App,
	dualCtx *blockchain.DualContext,
	estimateDeployFee *usecase.EstimateDeployFee,
	deployContract *usecase.DeployContract,
	registerDeployment *usecase.RegisterDeployment,
) *DeployApp {
	return &DeployApp{
		App:                base,
		Context:            dualCtx,
		EstimateDeployFee:  estimateDeployFee,
		DeployContract:     deployContract,
		RegisterDeployment: registerDeployment,
	}
}

// Close releases the network connections.
func (a *DeployApp) Close() {
	if a.Context != nil {
		a.Context.Close()
	}
}

// ProvideL2 exposes the context's rollup connection to wire.
func ProvideL2(d *blockchain.DualContext) usecase.L2Client { return d.L2() }

// ProvideWallet exposes the context's wallet to wire.
func ProvideWallet(d *blockchain.DualContext) usecase.Wallet { return d.Wallet() }
