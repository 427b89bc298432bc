package blockchain

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/trebuchet-org/zkdeploy/pkg/zktx"
)

// KeyWallet signs rollup transactions with an in-memory secp256k1 key.
// It holds the only signing authority in a deploying session; nonce
// assignment stays with the network client.
type KeyWallet struct {
	key  *ecdsa.PrivateKey
	addr common.Address
}

// NewKeyWallet builds a wallet from a hex-encoded private key.
func NewKeyWallet(hexKey string) (*KeyWallet, error) {
	if hexKey == "" {
		return nil, fmt.Errorf("no deployer private key configured (set ZKDEPLOY_PRIVATE_KEY)")
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parsing deployer private key: %w", err)
	}
	return NewKeyWalletFromECDSA(key), nil
}

// NewKeyWalletFromECDSA wraps an existing key.
func NewKeyWalletFromECDSA(key *ecdsa.PrivateKey) *KeyWallet {
	return &KeyWallet{
		key:  key,
		addr: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// Address returns the wallet's account address, valid on both layers.
func (w *KeyWallet) Address() common.Address {
	return w.addr
}

// SignTransaction signs the EIP-712 digest of the transaction and
// returns the raw broadcastable form.
func (w *KeyWallet) SignTransaction(ctx context.Context, tx *zktx.Transaction) ([]byte, error) {
	if tx.From != (common.Address{}) && tx.From != w.addr {
		return nil, fmt.Errorf("transaction sender %s does not match wallet %s", tx.From, w.addr)
	}
	tx.From = w.addr
	return zktx.SignTx(tx, w.key)
}
