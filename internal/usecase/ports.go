package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/zkdeploy/internal/domain"
	"github.com/trebuchet-org/zkdeploy/internal/domain/models"
	"github.com/trebuchet-org/zkdeploy/pkg/zktx"
)

// ArtifactStore provides access to compiled zksolc artifacts.
type ArtifactStore interface {
	// ReadArtifact resolves a bare or fully-qualified contract name.
	// Fails with domain.AmbiguousIdentifierError when a bare name
	// matches more than one contract.
	ReadArtifact(ctx context.Context, identifier string) (*models.Artifact, error)
	// ListArtifacts returns every indexed artifact.
	ListArtifacts(ctx context.Context) ([]*models.Artifact, error)
}

// L2Client is the rollup connection the estimator and executor talk to.
type L2Client interface {
	ChainID(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call zktx.CallMsg) (uint64, error)
	GasPrice(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error)
	WaitMined(ctx context.Context, txHash common.Hash) (*models.Receipt, error)
}

// L1Client is the settlement-layer view exposed for L1-native flows.
type L1Client interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)
}

// Wallet owns the deployer key. It is bound to both network
// connections at construction time and never rebound.
type Wallet interface {
	Address() common.Address
	SignTransaction(ctx context.Context, tx *zktx.Transaction) ([]byte, error)
}

// NetworkResolver resolves named networks and direct endpoints.
type NetworkResolver interface {
	ResolveL1(ctx context.Context, nameOrURL string) (*domain.Network, error)
	ResolveL2(ctx context.Context, url string) (*domain.Network, error)
	ListNetworks(ctx context.Context) []*domain.Network
}

// DeploymentRepository persists confirmed deployment records.
type DeploymentRepository interface {
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
	GetDeployment(ctx context.Context, id string) (*models.Deployment, error)
	ListDeployments(ctx context.Context) ([]*models.Deployment, error)
}

// ArtifactSelector disambiguates interactively when a bare name
// matches several contracts. Non-interactive runs skip it and surface
// the ambiguity error instead.
type ArtifactSelector interface {
	SelectArtifact(ctx context.Context, candidates []*models.Artifact, prompt string) (*models.Artifact, error)
}

// ProgressEvent represents a progress update.
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events.
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink.
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
