package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/zkdeploy/internal/domain"
	"github.com/trebuchet-org/zkdeploy/internal/domain/models"
)

// EstimateParams are the inputs to a fee estimation.
type EstimateParams struct {
	Artifact *models.Artifact
	Args     []any
	// FeeToken selects the currency gas costs are denominated in; nil
	// means the network's native currency.
	FeeToken *common.Address
}

// EstimateDeployFee computes the cost of deploying a contract without
// broadcasting anything.
type EstimateDeployFee struct {
	deps   *ExtractFactoryDeps
	l2     L2Client
	wallet Wallet
	sink   ProgressSink
	log    *slog.Logger
}

// NewEstimateDeployFee creates a new EstimateDeployFee use case.
func NewEstimateDeployFee(
	deps *ExtractFactoryDeps,
	l2 L2Client,
	wallet Wallet,
	sink ProgressSink,
	log *slog.Logger,
) *EstimateDeployFee {
	return &EstimateDeployFee{deps: deps, l2: l2, wallet: wallet, sink: sink, log: log}
}

// Run builds the deployment transaction, queries the rollup for gas
// usage and gas price, and returns their product in the smallest
// denomination of the fee token. Network errors surface verbatim; the
// core never retries.
func (uc *EstimateDeployFee) Run(ctx context.Context, params EstimateParams) (*big.Int, error) {
	name := params.Artifact.FullyQualifiedName()

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "estimating",
		Message: fmt.Sprintf("Estimating deployment fee for %s", name),
		Spinner: true,
	})

	depBytecodes, err := uc.deps.Run(ctx, params.Artifact)
	if err != nil {
		return nil, err
	}

	call, _, err := buildDeployCall(params.Artifact, params.Args, params.FeeToken, depBytecodes, uc.wallet.Address())
	if err != nil {
		return nil, err
	}

	gas, err := uc.l2.EstimateGas(ctx, call)
	if err != nil {
		return nil, &domain.EstimationError{Contract: name, Err: err}
	}
	gasPrice, err := uc.l2.GasPrice(ctx)
	if err != nil {
		return nil, &domain.EstimationError{Contract: name, Err: err}
	}

	fee := new(big.Int).Mul(new(big.Int).SetUint64(gas), gasPrice)
	uc.log.Debug("estimated deployment fee",
		"contract", name,
		"gas", gas,
		"gasPrice", gasPrice,
		"fee", fee,
	)
	return fee, nil
}
