// Package network resolves network identifiers to RPC endpoints.
package network

import (
	"context"
	"fmt"
	"strings"

	"github.com/trebuchet-org/zkdeploy/internal/domain"
)

// Resolver maps settlement-layer names to well-known endpoints and
// passes direct RPC URLs through. Rollup endpoints have no named
// shortcut: they are always URLs.
type Resolver struct {
	l1Networks map[string]*domain.Network
}

// NewResolver creates a resolver seeded with the well-known public
// settlement networks.
func NewResolver() *Resolver {
	r := &Resolver{l1Networks: make(map[string]*domain.Network)}
	r.initializeDefaultNetworks()
	return r
}

func (r *Resolver) initializeDefaultNetworks() {
	defaults := []domain.Network{
		{ChainID: 1, Name: "mainnet", RPCURL: "https://ethereum-rpc.publicnode.com", ExplorerURL: "https://etherscan.io"},
		{ChainID: 11155111, Name: "sepolia", RPCURL: "https://ethereum-sepolia-rpc.publicnode.com", ExplorerURL: "https://sepolia.etherscan.io"},
		{ChainID: 17000, Name: "holesky", RPCURL: "https://ethereum-holesky-rpc.publicnode.com", ExplorerURL: "https://holesky.etherscan.io"},
		{ChainID: 31337, Name: "localhost", RPCURL: "http://localhost:8545"},
	}
	for _, network := range defaults {
		n := network
		r.l1Networks[n.Name] = &n
	}
}

// ResolveL1 resolves a settlement-layer identifier: a well-known name
// resolves to its default endpoint, anything else is treated as a
// direct RPC endpoint and left for dialing to validate.
func (r *Resolver) ResolveL1(ctx context.Context, nameOrURL string) (*domain.Network, error) {
	if nameOrURL == "" {
		return nil, fmt.Errorf("L1 network not specified")
	}

	if network, ok := r.l1Networks[strings.ToLower(nameOrURL)]; ok {
		return network, nil
	}

	return &domain.Network{Name: "custom", RPCURL: nameOrURL}, nil
}

// ResolveL2 accepts only a direct RPC endpoint URL.
func (r *Resolver) ResolveL2(ctx context.Context, url string) (*domain.Network, error) {
	if url == "" {
		return nil, fmt.Errorf("L2 endpoint not specified")
	}
	if !isRPCURL(url) {
		return nil, fmt.Errorf("L2 endpoint must be an RPC URL, got %q", url)
	}
	return &domain.Network{Name: "l2", RPCURL: url}, nil
}

// ListNetworks returns the built-in settlement networks.
func (r *Resolver) ListNetworks(ctx context.Context) []*domain.Network {
	networks := make([]*domain.Network, 0, len(r.l1Networks))
	for _, n := range r.l1Networks {
		networks = append(networks, n)
	}
	return networks
}

func isRPCURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "ws://") || strings.HasPrefix(s, "wss://")
}
