package zktx

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// SignTx signs the transaction's EIP-712 digest and returns the raw
// serialized transaction ready for broadcast. The signature's recovery
// id is shifted to the 27/28 convention the rollup expects.
func SignTx(tx *Transaction, key *ecdsa.PrivateKey) ([]byte, error) {
	digest, err := tx.Digest()
	if err != nil {
		return nil, err
	}

	sig, err := crypto.Sign(digest, key)
	if err != nil {
		return nil, fmt.Errorf("signing transaction digest: %w", err)
	}
	sig[64] += 27

	return tx.RawWithSignature(sig)
}

// RecoverSigner recovers the signing address from a raw transaction's
// signature. Intended for tests and diagnostics.
func RecoverSigner(tx *Transaction, sig []byte) ([]byte, error) {
	if len(sig) != 65 {
		return nil, fmt.Errorf("signature must be 65 bytes, got %d", len(sig))
	}
	digest, err := tx.Digest()
	if err != nil {
		return nil, err
	}
	norm := make([]byte, 65)
	copy(norm, sig)
	if norm[64] >= 27 {
		norm[64] -= 27
	}
	return crypto.Ecrecover(digest, norm)
}
