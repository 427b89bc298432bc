package usecase

import (
	"context"
	"log/slog"

	"github.com/trebuchet-org/zkdeploy/internal/domain"
	"github.com/trebuchet-org/zkdeploy/internal/domain/models"
)

// ExtractFactoryDeps resolves every factory dependency declared on an
// artifact into a flat, ordered list of bytecodes.
type ExtractFactoryDeps struct {
	loader *LoadArtifact
	log    *slog.Logger
}

// NewExtractFactoryDeps creates a new ExtractFactoryDeps use case.
func NewExtractFactoryDeps(loader *LoadArtifact, log *slog.Logger) *ExtractFactoryDeps {
	return &ExtractFactoryDeps{loader: loader, log: log}
}

// Run returns the bytecode of each dependency in the order it was
// declared on the artifact. Only direct dependencies are resolved;
// dependencies of dependencies are not followed. Resolution is atomic:
// any load failure fails the whole call.
func (uc *ExtractFactoryDeps) Run(ctx context.Context, artifact *models.Artifact) ([]string, error) {
	entries := artifact.FactoryDeps.Entries()
	bytecodes := make([]string, 0, len(entries))

	for _, dep := range entries {
		depArtifact, err := uc.loader.Run(ctx, dep.Reference)
		if err != nil {
			return nil, &domain.DependencyResolutionError{
				Contract:  artifact.FullyQualifiedName(),
				Reference: dep.Reference,
				Err:       err,
			}
		}
		bytecodes = append(bytecodes, depArtifact.Bytecode)
	}

	uc.log.Debug("resolved factory dependencies",
		"contract", artifact.FullyQualifiedName(),
		"count", len(bytecodes),
	)
	return bytecodes, nil
}
