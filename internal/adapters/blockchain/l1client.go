package blockchain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// L1RPC is the settlement-layer connection. Deployments happen on the
// rollup; this view exists for L1-native flows such as funding checks.
type L1RPC struct {
	client *ethclient.Client
}

// DialL1 connects to a settlement-layer endpoint.
func DialL1(ctx context.Context, url string) (*L1RPC, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return &L1RPC{client: client}, nil
}

// Close tears down the connection.
func (c *L1RPC) Close() {
	c.client.Close()
}

// ChainID returns the settlement chain ID.
func (c *L1RPC) ChainID(ctx context.Context) (*big.Int, error) {
	return c.client.ChainID(ctx)
}

// BalanceAt returns the latest native-currency balance of an account.
func (c *L1RPC) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	return c.client.BalanceAt(ctx, account, nil)
}
