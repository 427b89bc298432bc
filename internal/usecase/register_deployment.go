package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/zkdeploy/internal/config"
	"github.com/trebuchet-org/zkdeploy/internal/domain/models"
)

// RegisterParams describe one confirmed deployment to record.
type RegisterParams struct {
	Artifact *models.Artifact
	Handle   *models.ContractHandle
	ChainID  uint64
	FeeToken *common.Address
	Deployer common.Address
}

// RegisterDeployment writes a confirmed deployment into the local
// registry so later invocations can find it.
type RegisterDeployment struct {
	cfg  *config.RuntimeConfig
	repo DeploymentRepository
	log  *slog.Logger
}

// NewRegisterDeployment creates a new RegisterDeployment use case.
func NewRegisterDeployment(cfg *config.RuntimeConfig, repo DeploymentRepository, log *slog.Logger) *RegisterDeployment {
	return &RegisterDeployment{cfg: cfg, repo: repo, log: log}
}

// Run saves the deployment record.
func (uc *RegisterDeployment) Run(ctx context.Context, params RegisterParams) (*models.Deployment, error) {
	deployment := &models.Deployment{
		ID:           fmt.Sprintf("%s/%d/%s", uc.cfg.Namespace, params.ChainID, params.Artifact.ContractName),
		Namespace:    uc.cfg.Namespace,
		ChainID:      params.ChainID,
		ContractName: params.Artifact.ContractName,
		Artifact:     params.Artifact.FullyQualifiedName(),
		Address:      params.Handle.Address.Hex(),
		TxHash:       params.Handle.TxHash.Hex(),
		Deployer:     params.Deployer.Hex(),
		CreatedAt:    time.Now().UTC(),
	}
	if params.FeeToken != nil {
		deployment.FeeToken = params.FeeToken.Hex()
	}

	if err := uc.repo.SaveDeployment(ctx, deployment); err != nil {
		return nil, fmt.Errorf("recording deployment %s: %w", deployment.ID, err)
	}
	uc.log.Debug("registered deployment", "id", deployment.ID, "address", deployment.Address)
	return deployment, nil
}
