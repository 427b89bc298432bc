package usecase

import (
	"context"
	"sort"

	"github.com/trebuchet-org/zkdeploy/internal/config"
	"github.com/trebuchet-org/zkdeploy/internal/domain"
)

// NetworkListResult contains the result of listing networks.
type NetworkListResult struct {
	// Targets are the L1/L2 pairs declared in configuration.
	Targets []*domain.NetworkTarget
	// KnownL1 are the well-known settlement networks resolvable by
	// name without configuration.
	KnownL1 []*domain.Network
}

// ListNetworks lists configured deployment targets and the built-in
// settlement networks.
type ListNetworks struct {
	cfg      *config.RuntimeConfig
	resolver NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case.
func NewListNetworks(cfg *config.RuntimeConfig, resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{cfg: cfg, resolver: resolver}
}

// Run returns the configured targets sorted by name plus the built-in
// L1 networks.
func (uc *ListNetworks) Run(ctx context.Context) (*NetworkListResult, error) {
	targets := make([]*domain.NetworkTarget, 0, len(uc.cfg.Networks))
	for _, t := range uc.cfg.Networks {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].Name < targets[j].Name })

	known := uc.resolver.ListNetworks(ctx)
	sort.Slice(known, func(i, j int) bool { return known[i].Name < known[j].Name })

	return &NetworkListResult{Targets: targets, KnownL1: known}, nil
}
