package models

import (
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Receipt is the subset of a rollup transaction receipt the deploy
// path consumes.
type Receipt struct {
	TxHash          common.Hash    `json:"transactionHash"`
	ContractAddress common.Address `json:"contractAddress"`
	BlockNumber     *hexutil.Big   `json:"blockNumber"`
	BlockHash       common.Hash    `json:"blockHash"`
	GasUsed         hexutil.Uint64 `json:"gasUsed"`
	Status          hexutil.Uint64 `json:"status"`
}

// Succeeded reports whether the transaction executed without revert.
func (r *Receipt) Succeeded() bool {
	return r.Status == 1
}

// ContractHandle is a live handle to a confirmed deployment: the
// on-chain address plus the artifact's parsed interface. It is only
// ever constructed after the network reports the deployment mined.
type ContractHandle struct {
	Name    string
	Address common.Address
	ABI     abi.ABI
	TxHash  common.Hash
}

// Deployment is a registry record of one confirmed deployment.
type Deployment struct {
	ID           string    `json:"id"`
	Namespace    string    `json:"namespace"`
	ChainID      uint64    `json:"chainId"`
	ContractName string    `json:"contractName"`
	Artifact     string    `json:"artifact"`
	Address      string    `json:"address"`
	TxHash       string    `json:"txHash"`
	FeeToken     string    `json:"feeToken,omitempty"`
	Deployer     string    `json:"deployer"`
	CreatedAt    time.Time `json:"createdAt"`
}
