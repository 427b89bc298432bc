// Package zktx implements the rollup's EIP-712 (type 0x71) transaction
// envelope: versioned bytecode hashing, typed-data signing, raw RLP
// serialization and the ContractDeployer calldata used to deploy
// contracts through the system deployer predeploy.
package zktx

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// TxType is the rollup's EIP-712 transaction envelope type byte.
const TxType = 0x71

// DefaultGasPerPubdata is the default limit of gas charged per byte of
// pubdata published to the settlement layer.
const DefaultGasPerPubdata = 50_000

// ContractDeployerAddress is the system predeploy every contract
// deployment is routed through.
var ContractDeployerAddress = common.HexToAddress("0x0000000000000000000000000000000000008006")

// NativeToken is the fee-token address denoting the network's native
// currency. Omitting a fee token is equivalent to choosing it.
var NativeToken = common.Address{}

// Transaction is an unsigned type-0x71 transaction. To is never nil:
// deployments target the ContractDeployer predeploy rather than the
// zero address.
type Transaction struct {
	Nonce     *big.Int
	GasTipCap *big.Int // maxPriorityFeePerGas
	GasFeeCap *big.Int // maxFeePerGas
	Gas       *big.Int
	To        common.Address
	Value     *big.Int
	Data      []byte
	ChainID   *big.Int

	From          common.Address
	FeeToken      common.Address
	GasPerPubdata *big.Int
	FactoryDeps   [][]byte
}

// Eip712Meta carries the rollup-specific fields of a call or
// transaction as they appear on the JSON-RPC wire.
type Eip712Meta struct {
	GasPerPubdata   *hexutil.Big    `json:"gasPerPubdata,omitempty"`
	FeeToken        *common.Address `json:"feeToken,omitempty"`
	FactoryDeps     []hexutil.Bytes `json:"factoryDeps,omitempty"`
	CustomSignature hexutil.Bytes   `json:"customSignature,omitempty"`
}

// CallMsg is a rollup call for gas estimation. It mirrors
// ethereum.CallMsg plus the EIP-712 metadata.
type CallMsg struct {
	From     common.Address
	To       *common.Address
	Gas      uint64
	GasPrice *big.Int
	Value    *big.Int
	Data     []byte
	Meta     *Eip712Meta
}

// ToRPC renders the call in the shape eth_estimateGas expects.
func (m CallMsg) ToRPC() map[string]any {
	arg := map[string]any{
		"from": m.From,
	}
	if m.To != nil {
		arg["to"] = *m.To
	}
	if len(m.Data) > 0 {
		arg["data"] = hexutil.Bytes(m.Data)
	}
	if m.Value != nil {
		arg["value"] = (*hexutil.Big)(m.Value)
	}
	if m.Gas != 0 {
		arg["gas"] = hexutil.Uint64(m.Gas)
	}
	if m.GasPrice != nil {
		arg["gasPrice"] = (*hexutil.Big)(m.GasPrice)
	}
	if m.Meta != nil {
		arg["eip712Meta"] = m.Meta
	}
	return arg
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
