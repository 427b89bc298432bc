package usecase

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/trebuchet-org/zkdeploy/internal/domain/models"
)

// ArtifactListResult contains the result of listing artifacts.
type ArtifactListResult struct {
	Artifacts  []*models.Artifact
	Deployable int
}

// ListArtifacts lists every compiled artifact in the project.
type ListArtifacts struct {
	store ArtifactStore
}

// NewListArtifacts creates a new ListArtifacts use case.
func NewListArtifacts(store ArtifactStore) *ListArtifacts {
	return &ListArtifacts{store: store}
}

// Run returns all indexed artifacts sorted by fully-qualified name.
func (uc *ListArtifacts) Run(ctx context.Context) (*ArtifactListResult, error) {
	artifacts, err := uc.store.ListArtifacts(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].FullyQualifiedName() < artifacts[j].FullyQualifiedName()
	})

	deployable := lo.CountBy(artifacts, func(a *models.Artifact) bool {
		return a.Bytecode != "" && a.Bytecode != "0x"
	})

	return &ArtifactListResult{Artifacts: artifacts, Deployable: deployable}, nil
}
