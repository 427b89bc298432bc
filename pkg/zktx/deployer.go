package zktx

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// contractDeployerABIJSON is the slice of the ContractDeployer
// predeploy interface the deploy path calls.
const contractDeployerABIJSON = `[
	{
		"type": "function",
		"name": "create",
		"stateMutability": "payable",
		"inputs": [
			{"name": "_salt", "type": "bytes32"},
			{"name": "_bytecodeHash", "type": "bytes32"},
			{"name": "_input", "type": "bytes"}
		],
		"outputs": [{"name": "", "type": "address"}]
	},
	{
		"type": "function",
		"name": "create2",
		"stateMutability": "payable",
		"inputs": [
			{"name": "_salt", "type": "bytes32"},
			{"name": "_bytecodeHash", "type": "bytes32"},
			{"name": "_input", "type": "bytes"}
		],
		"outputs": [{"name": "", "type": "address"}]
	}
]`

var contractDeployerABI = mustParseABI(contractDeployerABIJSON)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return parsed
}

// EncodeCreate builds the ContractDeployer.create calldata for a
// deployment: a zero salt, the versioned hash of the bytecode being
// deployed, and the ABI-encoded constructor input.
func EncodeCreate(bytecodeHash [32]byte, constructorInput []byte) ([]byte, error) {
	var salt [32]byte
	data, err := contractDeployerABI.Pack("create", salt, bytecodeHash, constructorInput)
	if err != nil {
		return nil, fmt.Errorf("encoding create calldata: %w", err)
	}
	return data, nil
}
