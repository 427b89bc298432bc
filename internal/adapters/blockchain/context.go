package blockchain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/zkdeploy/internal/config"
	"github.com/trebuchet-org/zkdeploy/internal/domain"
	"github.com/trebuchet-org/zkdeploy/internal/usecase"
)

// DualContext owns the two live connections of a deploying session and
// the wallet bound to both. The wallet-to-network binding is fixed at
// construction; targeting different networks means a new context.
type DualContext struct {
	target *domain.NetworkTarget
	l1     *L1RPC
	l2     *L2RPC
	wallet *KeyWallet
	log    *slog.Logger
}

// NewDualContext resolves both endpoints of the configured target,
// dials them and binds the wallet.
func NewDualContext(
	ctx context.Context,
	cfg *config.RuntimeConfig,
	resolver usecase.NetworkResolver,
	log *slog.Logger,
) (*DualContext, error) {
	if cfg.Target == nil {
		return nil, fmt.Errorf("no network selected: pass --network or set defaults.network in %s", config.ConfigFileName)
	}

	l1Network, err := resolver.ResolveL1(ctx, cfg.Target.L1)
	if err != nil {
		return nil, fmt.Errorf("resolving L1 for target %s: %w", cfg.Target.Name, err)
	}
	l2Network, err := resolver.ResolveL2(ctx, cfg.Target.L2)
	if err != nil {
		return nil, fmt.Errorf("resolving L2 for target %s: %w", cfg.Target.Name, err)
	}

	wallet, err := NewKeyWallet(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	l1, err := DialL1(ctx, l1Network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dialing L1 %s: %w", l1Network.RPCURL, err)
	}
	l2, err := DialL2(ctx, l2Network.RPCURL)
	if err != nil {
		l1.Close()
		return nil, fmt.Errorf("dialing L2 %s: %w", l2Network.RPCURL, err)
	}

	log.Debug("connected",
		"target", cfg.Target.Name,
		"l1", l1Network.Name,
		"l2", l2Network.RPCURL,
		"wallet", wallet.Address(),
	)
	return &DualContext{
		target: cfg.Target,
		l1:     l1,
		l2:     l2,
		wallet: wallet,
		log:    log,
	}, nil
}

// L1 returns the settlement-layer view.
func (d *DualContext) L1() usecase.L1Client { return d.l1 }

// L2 returns the rollup connection.
func (d *DualContext) L2() usecase.L2Client { return d.l2 }

// Wallet returns the session wallet.
func (d *DualContext) Wallet() usecase.Wallet { return d.wallet }

// Target returns the network pair this context was built for.
func (d *DualContext) Target() *domain.NetworkTarget { return d.target }

// Close drops both connections. The context is unusable afterwards.
func (d *DualContext) Close() {
	d.l2.Close()
	d.l1.Close()
}
