// Package blockchain owns the live network connections and the wallet
// bound to them.
package blockchain

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/trebuchet-org/zkdeploy/internal/domain/models"
	"github.com/trebuchet-org/zkdeploy/pkg/zktx"
)

// receiptPollInterval is how often WaitMined asks for a receipt.
const receiptPollInterval = 500 * time.Millisecond

// L2RPC is the rollup connection. It speaks the standard eth_
// namespace extended with the EIP-712 call metadata the rollup's gas
// estimation understands.
type L2RPC struct {
	client *rpc.Client
}

// NewL2RPC wraps an established RPC connection.
func NewL2RPC(client *rpc.Client) *L2RPC {
	return &L2RPC{client: client}
}

// DialL2 connects to a rollup endpoint.
func DialL2(ctx context.Context, url string) (*L2RPC, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return &L2RPC{client: client}, nil
}

// Close tears down the connection.
func (c *L2RPC) Close() {
	c.client.Close()
}

// ChainID returns the rollup chain ID.
func (c *L2RPC) ChainID(ctx context.Context) (*big.Int, error) {
	var result hexutil.Big
	if err := c.client.CallContext(ctx, &result, "eth_chainId"); err != nil {
		return nil, err
	}
	return (*big.Int)(&result), nil
}

// EstimateGas estimates gas for a call carrying EIP-712 metadata
// (factory dependencies, fee token, gas-per-pubdata limit).
func (c *L2RPC) EstimateGas(ctx context.Context, call zktx.CallMsg) (uint64, error) {
	var result hexutil.Uint64
	if err := c.client.CallContext(ctx, &result, "eth_estimateGas", call.ToRPC()); err != nil {
		return 0, err
	}
	return uint64(result), nil
}

// GasPrice returns the current gas price.
func (c *L2RPC) GasPrice(ctx context.Context) (*big.Int, error) {
	var result hexutil.Big
	if err := c.client.CallContext(ctx, &result, "eth_gasPrice"); err != nil {
		return nil, err
	}
	return (*big.Int)(&result), nil
}

// PendingNonceAt returns the next nonce for an account including
// pending transactions.
func (c *L2RPC) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	var result hexutil.Uint64
	if err := c.client.CallContext(ctx, &result, "eth_getTransactionCount", account, "pending"); err != nil {
		return 0, err
	}
	return uint64(result), nil
}

// SendRawTransaction broadcasts a signed transaction.
func (c *L2RPC) SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error) {
	var hash common.Hash
	if err := c.client.CallContext(ctx, &hash, "eth_sendRawTransaction", hexutil.Encode(raw)); err != nil {
		return common.Hash{}, err
	}
	return hash, nil
}

// WaitMined polls until the transaction has a receipt or the context
// is done. One confirmation is sufficient.
func (c *L2RPC) WaitMined(ctx context.Context, txHash common.Hash) (*models.Receipt, error) {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.transactionReceipt(ctx, txHash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil && !errors.Is(err, errReceiptNotFound) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

var errReceiptNotFound = errors.New("receipt not available yet")

func (c *L2RPC) transactionReceipt(ctx context.Context, txHash common.Hash) (*models.Receipt, error) {
	var receipt *models.Receipt
	if err := c.client.CallContext(ctx, &receipt, "eth_getTransactionReceipt", txHash); err != nil {
		return nil, err
	}
	if receipt == nil || receipt.BlockNumber == nil {
		return nil, errReceiptNotFound
	}
	return receipt, nil
}
