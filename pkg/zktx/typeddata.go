package zktx

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// eip712DomainName and eip712DomainVersion identify the rollup's
// signing domain. Only the chain ID varies between networks.
const (
	eip712DomainName    = "zkSync"
	eip712DomainVersion = "2"
)

var transactionTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
	},
	"Transaction": {
		{Name: "txType", Type: "uint256"},
		{Name: "from", Type: "uint256"},
		{Name: "to", Type: "uint256"},
		{Name: "gasLimit", Type: "uint256"},
		{Name: "gasPerPubdataByteLimit", Type: "uint256"},
		{Name: "maxFeePerGas", Type: "uint256"},
		{Name: "maxPriorityFeePerGas", Type: "uint256"},
		{Name: "feeToken", Type: "uint256"},
		{Name: "nonce", Type: "uint256"},
		{Name: "value", Type: "uint256"},
		{Name: "data", Type: "bytes"},
		{Name: "factoryDeps", Type: "bytes32[]"},
	},
}

// TypedData renders the transaction as the EIP-712 structure the
// rollup's signature check recovers against.
func (tx *Transaction) TypedData() (apitypes.TypedData, error) {
	if tx.ChainID == nil {
		return apitypes.TypedData{}, fmt.Errorf("transaction has no chain ID")
	}

	depHashes := make([]any, len(tx.FactoryDeps))
	for i, dep := range tx.FactoryDeps {
		hash, err := HashBytecode(dep)
		if err != nil {
			return apitypes.TypedData{}, fmt.Errorf("factory dependency %d: %w", i, err)
		}
		depHashes[i] = hexutil.Encode(hash[:])
	}

	gasPerPubdata := tx.GasPerPubdata
	if gasPerPubdata == nil {
		gasPerPubdata = new(big.Int).SetUint64(DefaultGasPerPubdata)
	}

	message := apitypes.TypedDataMessage{
		"txType":                 fmt.Sprintf("%d", TxType),
		"from":                   tx.From.Big().String(),
		"to":                     tx.To.Big().String(),
		"gasLimit":               orZero(tx.Gas).String(),
		"gasPerPubdataByteLimit": gasPerPubdata.String(),
		"maxFeePerGas":           orZero(tx.GasFeeCap).String(),
		"maxPriorityFeePerGas":   orZero(tx.GasTipCap).String(),
		"feeToken":               tx.FeeToken.Big().String(),
		"nonce":                  orZero(tx.Nonce).String(),
		"value":                  orZero(tx.Value).String(),
		"data":                   hexutil.Encode(tx.Data),
		"factoryDeps":            depHashes,
	}

	return apitypes.TypedData{
		Types:       transactionTypes,
		PrimaryType: "Transaction",
		Domain: apitypes.TypedDataDomain{
			Name:    eip712DomainName,
			Version: eip712DomainVersion,
			ChainId: (*math.HexOrDecimal256)(tx.ChainID),
		},
		Message: message,
	}, nil
}

// Digest returns the 32-byte EIP-712 signing hash of the transaction.
func (tx *Transaction) Digest() ([]byte, error) {
	typedData, err := tx.TypedData()
	if err != nil {
		return nil, err
	}
	digest, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return nil, fmt.Errorf("hashing typed data: %w", err)
	}
	return digest, nil
}
