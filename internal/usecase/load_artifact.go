package usecase

import (
	"context"
	"log/slog"

	"github.com/trebuchet-org/zkdeploy/internal/domain"
	"github.com/trebuchet-org/zkdeploy/internal/domain/models"
)

// LoadArtifact resolves a contract identifier to a compiled artifact
// and verifies it was produced by the required compiler.
type LoadArtifact struct {
	store ArtifactStore
	log   *slog.Logger
}

// NewLoadArtifact creates a new LoadArtifact use case.
func NewLoadArtifact(store ArtifactStore, log *slog.Logger) *LoadArtifact {
	return &LoadArtifact{store: store, log: log}
}

// Run loads and verifies the artifact for the given identifier, either
// a bare contract name (unique across the project) or a fully-qualified
// source.sol:Name.
func (uc *LoadArtifact) Run(ctx context.Context, identifier string) (*models.Artifact, error) {
	artifact, err := uc.store.ReadArtifact(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if !artifact.IsZksolc() {
		return nil, &domain.IncompatibleCompilerError{
			Identifier: identifier,
			Format:     artifact.Format,
		}
	}

	uc.log.Debug("loaded artifact",
		"identifier", identifier,
		"contract", artifact.FullyQualifiedName(),
		"factoryDeps", artifact.FactoryDeps.Len(),
	)
	return artifact, nil
}
