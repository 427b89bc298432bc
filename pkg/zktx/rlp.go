package zktx

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// txRLP is the wire layout of a signed type-0x71 transaction. The two
// empty fields sit where the legacy signature values (v, r, s) would;
// the EIP-712 signature travels in the tail instead.
type txRLP struct {
	Nonce                *big.Int
	MaxPriorityFeePerGas *big.Int
	MaxFeePerGas         *big.Int
	GasLimit             *big.Int
	To                   common.Address
	Value                *big.Int
	Data                 []byte
	ChainID1             *big.Int
	Empty1               []byte
	Empty2               []byte
	ChainID2             *big.Int
	From                 common.Address
	FeeToken             common.Address
	GasPerPubdata        *big.Int
	FactoryDeps          [][]byte
	Signature            []byte
}

// RawWithSignature serializes the transaction with its 65-byte
// secp256k1 signature into the raw form accepted by
// eth_sendRawTransaction: the type byte followed by the RLP payload.
func (tx *Transaction) RawWithSignature(sig []byte) ([]byte, error) {
	if len(sig) != 65 {
		return nil, fmt.Errorf("signature must be 65 bytes, got %d", len(sig))
	}
	if tx.ChainID == nil {
		return nil, fmt.Errorf("transaction has no chain ID")
	}

	gasPerPubdata := tx.GasPerPubdata
	if gasPerPubdata == nil {
		gasPerPubdata = new(big.Int).SetUint64(DefaultGasPerPubdata)
	}

	payload := txRLP{
		Nonce:                orZero(tx.Nonce),
		MaxPriorityFeePerGas: orZero(tx.GasTipCap),
		MaxFeePerGas:         orZero(tx.GasFeeCap),
		GasLimit:             orZero(tx.Gas),
		To:                   tx.To,
		Value:                orZero(tx.Value),
		Data:                 tx.Data,
		ChainID1:             tx.ChainID,
		Empty1:               []byte{},
		Empty2:               []byte{},
		ChainID2:             tx.ChainID,
		From:                 tx.From,
		FeeToken:             tx.FeeToken,
		GasPerPubdata:        gasPerPubdata,
		FactoryDeps:          tx.FactoryDeps,
		Signature:            sig,
	}

	var buf bytes.Buffer
	buf.WriteByte(TxType)
	if err := rlp.Encode(&buf, &payload); err != nil {
		return nil, fmt.Errorf("encoding transaction: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeRaw parses a raw type-0x71 transaction back into its unsigned
// form plus the signature. Used by tests and tooling that inspect what
// a wallet produced.
func DecodeRaw(raw []byte) (*Transaction, []byte, error) {
	if len(raw) < 1 || raw[0] != TxType {
		return nil, nil, fmt.Errorf("not a type-0x%02x transaction", TxType)
	}

	var payload txRLP
	if err := rlp.DecodeBytes(raw[1:], &payload); err != nil {
		return nil, nil, fmt.Errorf("decoding transaction: %w", err)
	}
	if payload.ChainID1.Cmp(payload.ChainID2) != 0 {
		return nil, nil, fmt.Errorf("chain ID mismatch: %s vs %s", payload.ChainID1, payload.ChainID2)
	}

	tx := &Transaction{
		Nonce:         payload.Nonce,
		GasTipCap:     payload.MaxPriorityFeePerGas,
		GasFeeCap:     payload.MaxFeePerGas,
		Gas:           payload.GasLimit,
		To:            payload.To,
		Value:         payload.Value,
		Data:          payload.Data,
		ChainID:       payload.ChainID1,
		From:          payload.From,
		FeeToken:      payload.FeeToken,
		GasPerPubdata: payload.GasPerPubdata,
		FactoryDeps:   payload.FactoryDeps,
	}
	return tx, payload.Signature, nil
}
