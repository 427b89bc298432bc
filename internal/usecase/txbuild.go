package usecase

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/trebuchet-org/zkdeploy/internal/domain/models"
	"github.com/trebuchet-org/zkdeploy/pkg/zktx"
)

// parseArtifactABI parses the artifact's interface description.
func parseArtifactABI(artifact *models.Artifact) (abi.ABI, error) {
	parsed, err := abi.JSON(bytes.NewReader(artifact.ABI))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parsing ABI of '%s': %w", artifact.FullyQualifiedName(), err)
	}
	return parsed, nil
}

// encodeConstructorArgs validates the arguments against the artifact's
// constructor and ABI-encodes them.
func encodeConstructorArgs(artifact *models.Artifact, parsed abi.ABI, args []any) ([]byte, error) {
	inputs := parsed.Constructor.Inputs
	if len(args) != len(inputs) {
		return nil, fmt.Errorf("contract '%s' constructor takes %d argument(s), got %d",
			artifact.FullyQualifiedName(), len(inputs), len(args))
	}
	if len(inputs) == 0 {
		return nil, nil
	}
	encoded, err := parsed.Pack("", args...)
	if err != nil {
		return nil, fmt.Errorf("encoding constructor arguments for '%s': %w", artifact.FullyQualifiedName(), err)
	}
	return encoded, nil
}

// buildDeployCall assembles the ContractDeployer call shared by fee
// estimation and execution. The returned factory dependency list
// carries the contract's own bytecode first: the create calldata only
// references it by hash, so the bytecode itself must ship alongside.
func buildDeployCall(
	artifact *models.Artifact,
	args []any,
	feeToken *common.Address,
	depBytecodes []string,
	from common.Address,
) (zktx.CallMsg, [][]byte, error) {
	parsed, err := parseArtifactABI(artifact)
	if err != nil {
		return zktx.CallMsg{}, nil, err
	}

	ctorInput, err := encodeConstructorArgs(artifact, parsed, args)
	if err != nil {
		return zktx.CallMsg{}, nil, err
	}

	bytecode, err := hexutil.Decode(artifact.Bytecode)
	if err != nil {
		return zktx.CallMsg{}, nil, fmt.Errorf("decoding bytecode of '%s': %w", artifact.FullyQualifiedName(), err)
	}
	bytecodeHash, err := zktx.HashBytecode(bytecode)
	if err != nil {
		return zktx.CallMsg{}, nil, fmt.Errorf("hashing bytecode of '%s': %w", artifact.FullyQualifiedName(), err)
	}

	calldata, err := zktx.EncodeCreate(bytecodeHash, ctorInput)
	if err != nil {
		return zktx.CallMsg{}, nil, err
	}

	factoryDeps := make([][]byte, 0, len(depBytecodes)+1)
	factoryDeps = append(factoryDeps, bytecode)
	for i, dep := range depBytecodes {
		raw, err := hexutil.Decode(dep)
		if err != nil {
			return zktx.CallMsg{}, nil, fmt.Errorf("decoding factory dependency %d of '%s': %w",
				i, artifact.FullyQualifiedName(), err)
		}
		factoryDeps = append(factoryDeps, raw)
	}

	token := zktx.NativeToken
	if feeToken != nil {
		token = *feeToken
	}

	metaDeps := make([]hexutil.Bytes, len(factoryDeps))
	for i, dep := range factoryDeps {
		metaDeps[i] = dep
	}

	to := zktx.ContractDeployerAddress
	call := zktx.CallMsg{
		From: from,
		To:   &to,
		Data: calldata,
		Meta: &zktx.Eip712Meta{
			GasPerPubdata: (*hexutil.Big)(big.NewInt(zktx.DefaultGasPerPubdata)),
			FeeToken:      &token,
			FactoryDeps:   metaDeps,
		},
	}
	return call, factoryDeps, nil
}
