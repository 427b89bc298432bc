package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/zkdeploy/internal/domain"
	"github.com/trebuchet-org/zkdeploy/internal/domain/models"
	"github.com/trebuchet-org/zkdeploy/pkg/zktx"
)

// DeployParams are the inputs to a deployment.
type DeployParams struct {
	Artifact *models.Artifact
	Args     []any
	// FeeToken selects the currency gas costs are paid in; nil means
	// the network's native currency.
	FeeToken *common.Address
	// Value is the native currency sent along with the deployment,
	// zero when nil.
	Value *big.Int
}

// DeployContract builds, signs, broadcasts and confirms a deployment
// transaction, returning a handle to the live contract.
type DeployContract struct {
	deps   *ExtractFactoryDeps
	l2     L2Client
	wallet Wallet
	sink   ProgressSink
	log    *slog.Logger
}

// NewDeployContract creates a new DeployContract use case.
func NewDeployContract(
	deps *ExtractFactoryDeps,
	l2 L2Client,
	wallet Wallet,
	sink ProgressSink,
	log *slog.Logger,
) *DeployContract {
	return &DeployContract{deps: deps, l2: l2, wallet: wallet, sink: sink, log: log}
}

// Run deploys the contract and blocks until the rollup confirms it.
// No handle is returned unless confirmation succeeds; broadcast and
// confirmation failures surface unmodified.
func (uc *DeployContract) Run(ctx context.Context, params DeployParams) (*models.ContractHandle, error) {
	name := params.Artifact.FullyQualifiedName()
	from := uc.wallet.Address()

	depBytecodes, err := uc.deps.Run(ctx, params.Artifact)
	if err != nil {
		return nil, err
	}

	call, factoryDeps, err := buildDeployCall(params.Artifact, params.Args, params.FeeToken, depBytecodes, from)
	if err != nil {
		return nil, err
	}
	if params.Value != nil {
		call.Value = params.Value
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "preparing",
		Message: fmt.Sprintf("Preparing deployment of %s", name),
		Spinner: true,
	})

	chainID, err := uc.l2.ChainID(ctx)
	if err != nil {
		return nil, &domain.DeploymentError{Contract: name, Err: err}
	}
	nonce, err := uc.l2.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, &domain.DeploymentError{Contract: name, Err: err}
	}
	gas, err := uc.l2.EstimateGas(ctx, call)
	if err != nil {
		return nil, &domain.DeploymentError{Contract: name, Err: err}
	}
	gasPrice, err := uc.l2.GasPrice(ctx)
	if err != nil {
		return nil, &domain.DeploymentError{Contract: name, Err: err}
	}

	feeToken := zktx.NativeToken
	if params.FeeToken != nil {
		feeToken = *params.FeeToken
	}
	tx := &zktx.Transaction{
		Nonce:         new(big.Int).SetUint64(nonce),
		GasTipCap:     gasPrice,
		GasFeeCap:     gasPrice,
		Gas:           new(big.Int).SetUint64(gas),
		To:            zktx.ContractDeployerAddress,
		Value:         params.Value,
		Data:          call.Data,
		ChainID:       chainID,
		From:          from,
		FeeToken:      feeToken,
		GasPerPubdata: big.NewInt(zktx.DefaultGasPerPubdata),
		FactoryDeps:   factoryDeps,
	}

	raw, err := uc.wallet.SignTransaction(ctx, tx)
	if err != nil {
		return nil, &domain.DeploymentError{Contract: name, Err: err}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "broadcasting",
		Message: fmt.Sprintf("Broadcasting deployment of %s", name),
		Spinner: true,
	})
	txHash, err := uc.l2.SendRawTransaction(ctx, raw)
	if err != nil {
		return nil, &domain.DeploymentError{Contract: name, Err: err}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "confirming",
		Message: fmt.Sprintf("Waiting for confirmation of %s", txHash),
		Spinner: true,
	})
	receipt, err := uc.l2.WaitMined(ctx, txHash)
	if err != nil {
		return nil, &domain.DeploymentError{Contract: name, TxHash: txHash.Hex(), Err: err}
	}
	if !receipt.Succeeded() {
		return nil, &domain.DeploymentError{
			Contract: name,
			TxHash:   txHash.Hex(),
			Err:      fmt.Errorf("deployment transaction reverted"),
		}
	}

	parsed, err := parseArtifactABI(params.Artifact)
	if err != nil {
		return nil, err
	}

	uc.log.Info("contract deployed",
		"contract", name,
		"address", receipt.ContractAddress,
		"tx", txHash,
		"gasUsed", uint64(receipt.GasUsed),
	)
	return &models.ContractHandle{
		Name:    params.Artifact.ContractName,
		Address: receipt.ContractAddress,
		ABI:     parsed,
		TxHash:  txHash,
	}, nil
}
